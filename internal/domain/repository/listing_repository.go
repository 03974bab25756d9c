package repository

import (
	"context"

	"github.com/oksasatya/airbnb-listing-service/internal/domain/entity"
)

// ListingFilter narrows listing queries. Zero values add no predicate.
type ListingFilter struct {
	// NameContains is matched as a case-insensitive literal substring of name
	NameContains string
	PropertyType string
}

// UpdateMode selects how an update body is applied to the stored listing
type UpdateMode int

const (
	// UpdateReplace swaps the whole stored document for the body
	UpdateReplace UpdateMode = iota
	// UpdateMerge sets only the top-level fields present in the body
	UpdateMerge
)

// ListingRepository defines the storage operations for listings.
type ListingRepository interface {
	Count(ctx context.Context, f ListingFilter) (int64, error)
	Find(ctx context.Context, f ListingFilter, skip, limit int64) ([]*entity.Listing, error)
	GetByID(ctx context.Context, id string) (*entity.Listing, error)
	Create(ctx context.Context, l *entity.Listing) error
	Update(ctx context.Context, id string, l *entity.Listing, mode UpdateMode) (*entity.Listing, error)
	SetPictureURL(ctx context.Context, id, url string) (*entity.Listing, error)
	Delete(ctx context.Context, id string) (*entity.Listing, error)
}
