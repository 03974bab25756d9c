package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/airbnb-listing-service/internal/domain/entity"
	repo "github.com/oksasatya/airbnb-listing-service/internal/domain/repository"
	"github.com/oksasatya/airbnb-listing-service/pkg/mailer"
	"github.com/oksasatya/airbnb-listing-service/pkg/pagination"
	"github.com/oksasatya/airbnb-listing-service/pkg/validation"
)

var (
	ErrInvalidListing  = errors.New("invalid listing")
	ErrStorageDisabled = errors.New("image storage is not configured")
)

// EventPublisher queues listing change events
type EventPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// ImageUploader stores an image and returns its public URL
type ImageUploader interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

type ListingService struct {
	Repo   repo.ListingRepository
	Events EventPublisher
	Images ImageUploader
	Logger logrus.FieldLogger

	// ImagePath names the stored object for a listing upload
	ImagePath func(listingID, filename string) string
}

func NewListingService(r repo.ListingRepository, events EventPublisher, images ImageUploader, logger logrus.FieldLogger) *ListingService {
	return &ListingService{Repo: r, Events: events, Images: images, Logger: logger}
}

// NewListingID returns a fresh id for listings created without one
func NewListingID() string {
	return primitive.NewObjectID().Hex()
}

// Paginate counts then fetches one page. Nothing is fetched for a page
// outside [1, TotalPages]; the count and find are not atomic.
func (s *ListingService) Paginate(ctx context.Context, f repo.ListingFilter, p pagination.Params) (pagination.Page[*entity.Listing], error) {
	page := pagination.Page[*entity.Listing]{
		Items:   []*entity.Listing{},
		Page:    p.Page,
		PerPage: p.PerPage,
	}

	total, err := s.Repo.Count(ctx, f)
	if err != nil {
		return page, fmt.Errorf("count listings: %w", err)
	}
	page.Total = total
	page.TotalPages = pagination.TotalPages(total, p.PerPage)

	if !pagination.InRange(p.Page, page.TotalPages) {
		return page, nil
	}

	items, err := s.Repo.Find(ctx, f, p.Skip(), p.Limit())
	if err != nil {
		return page, fmt.Errorf("find listings: %w", err)
	}
	page.Items = items
	return page, nil
}

// List returns the first limit listings in id order
func (s *ListingService) List(ctx context.Context, limit int) ([]*entity.Listing, error) {
	if limit < 1 {
		return []*entity.Listing{}, nil
	}
	if limit > pagination.MaxPerPage {
		limit = pagination.MaxPerPage
	}
	items, err := s.Repo.Find(ctx, repo.ListingFilter{}, 0, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("find listings: %w", err)
	}
	return items, nil
}

func (s *ListingService) Get(ctx context.Context, id string) (*entity.Listing, error) {
	if !validation.ValidListingID(id) {
		return nil, repo.ErrNotFound
	}
	return s.Repo.GetByID(ctx, id)
}

// Create inserts l; an existing id is a repo.ErrDuplicate
func (s *ListingService) Create(ctx context.Context, l *entity.Listing, actor string) (*entity.Listing, error) {
	if !validation.ValidListingID(l.ID) {
		return nil, ErrInvalidListing
	}
	if err := s.Repo.Create(ctx, l); err != nil {
		return nil, err
	}
	s.publish(ctx, mailer.ListingCreated, l, actor)
	return l, nil
}

func (s *ListingService) Update(ctx context.Context, id string, l *entity.Listing, mode repo.UpdateMode, actor string) (*entity.Listing, error) {
	if !validation.ValidListingID(id) {
		return nil, repo.ErrNotFound
	}
	if l.ID != "" && l.ID != id {
		return nil, ErrInvalidListing
	}
	out, err := s.Repo.Update(ctx, id, l, mode)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, mailer.ListingUpdated, out, actor)
	return out, nil
}

// Delete removes the listing; a missing id is repo.ErrNotFound every time
func (s *ListingService) Delete(ctx context.Context, id, actor string) (*entity.Listing, error) {
	if !validation.ValidListingID(id) {
		return nil, repo.ErrNotFound
	}
	out, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, mailer.ListingDeleted, out, actor)
	return out, nil
}

// UploadImage stores the image and points images.picture_url at it
func (s *ListingService) UploadImage(ctx context.Context, id, filename, contentType string, r io.Reader, actor string) (*entity.Listing, error) {
	if s.Images == nil {
		return nil, ErrStorageDisabled
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}

	objectPath := id + "/" + filename
	if s.ImagePath != nil {
		objectPath = s.ImagePath(id, filename)
	}
	url, err := s.Images.Upload(ctx, objectPath, contentType, r)
	if err != nil {
		return nil, fmt.Errorf("upload image: %w", err)
	}

	out, err := s.Repo.SetPictureURL(ctx, id, url)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, mailer.ListingUpdated, out, actor)
	return out, nil
}

// publish never fails the mutation; delivery problems are logged
func (s *ListingService) publish(ctx context.Context, typ string, l *entity.Listing, actor string) {
	if s.Events == nil || l == nil {
		return
	}
	ev := mailer.ListingEvent{
		Type:       typ,
		ListingID:  l.ID,
		Name:       l.Name,
		Actor:      actor,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.Events.PublishJSON(ctx, ev); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("listing_id", l.ID).WithField("type", typ).Warn("publish listing event failed")
	}
}
