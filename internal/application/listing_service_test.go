package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/airbnb-listing-service/internal/domain/entity"
	repo "github.com/oksasatya/airbnb-listing-service/internal/domain/repository"
	"github.com/oksasatya/airbnb-listing-service/internal/testutils"
	"github.com/oksasatya/airbnb-listing-service/pkg/mailer"
	"github.com/oksasatya/airbnb-listing-service/pkg/pagination"
)

func seedListings(n int, name string) []*entity.Listing {
	out := make([]*entity.Listing, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, &entity.Listing{ID: fmt.Sprintf("%03d", i), Name: fmt.Sprintf("%s %d", name, i)})
	}
	return out
}

func TestListingService_Paginate(t *testing.T) {
	ctx := context.Background()
	r := testutils.NewListingRepo(seedListings(25, "Flat")...)
	svc := NewListingService(r, nil, nil, nil)

	page, err := svc.Paginate(ctx, repo.ListingFilter{}, pagination.New(3, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(25), page.Total)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Items, 5)
	assert.Equal(t, "021", page.Items[0].ID)

	page, err = svc.Paginate(ctx, repo.ListingFilter{}, pagination.New(2, 10))
	require.NoError(t, err)
	require.Len(t, page.Items, 10)
	assert.Equal(t, "011", page.Items[0].ID)
}

func TestListingService_PaginateOutOfRangeSkipsFind(t *testing.T) {
	ctx := context.Background()
	r := testutils.NewListingRepo(seedListings(5, "Flat")...)
	svc := NewListingService(r, nil, nil, nil)

	page, err := svc.Paginate(ctx, repo.ListingFilter{}, pagination.New(10, 2))
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 0, r.FindCalls)
}

func TestListingService_PaginateSearch(t *testing.T) {
	ctx := context.Background()
	seed := append(seedListings(5, "Villa"), seedListings(3, "Loft")...)
	for i, l := range seed[5:] {
		l.ID = fmt.Sprintf("L%02d", i)
	}
	r := testutils.NewListingRepo(seed...)
	svc := NewListingService(r, nil, nil, nil)

	page, err := svc.Paginate(ctx, repo.ListingFilter{NameContains: "villa"}, pagination.New(1, 2))
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, int64(5), page.Total)

	page, err = svc.Paginate(ctx, repo.ListingFilter{NameContains: "castle"}, pagination.New(1, 2))
	require.NoError(t, err)
	assert.Equal(t, 0, page.TotalPages)
	assert.Empty(t, page.Items)
}

func TestListingService_CreateGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	pub := &testutils.Publisher{}
	svc := NewListingService(testutils.NewListingRepo(), pub, nil, nil)

	in := &entity.Listing{ID: "abc-1", Name: "Harbour view", Price: 120, Amenities: []string{"Wifi"}}
	_, err := svc.Create(ctx, in, "alice")
	require.NoError(t, err)

	got, err := svc.Get(ctx, "abc-1")
	require.NoError(t, err)
	assert.Equal(t, "Harbour view", got.Name)
	assert.Equal(t, 120.0, got.Price)
	assert.Equal(t, []string{"Wifi"}, got.Amenities)

	require.Equal(t, 1, pub.Len())
	ev := pub.Events[0].(mailer.ListingEvent)
	assert.Equal(t, mailer.ListingCreated, ev.Type)
	assert.Equal(t, "alice", ev.Actor)
}

func TestListingService_CreateDuplicateAndInvalid(t *testing.T) {
	ctx := context.Background()
	svc := NewListingService(testutils.NewListingRepo(&entity.Listing{ID: "dup"}), nil, nil, nil)

	_, err := svc.Create(ctx, &entity.Listing{ID: "dup"}, "")
	assert.ErrorIs(t, err, repo.ErrDuplicate)

	_, err = svc.Create(ctx, &entity.Listing{Name: "no id"}, "")
	assert.ErrorIs(t, err, ErrInvalidListing)

	_, err = svc.Create(ctx, &entity.Listing{ID: "bad id!"}, "")
	assert.ErrorIs(t, err, ErrInvalidListing)
}

func TestListingService_UpdateModes(t *testing.T) {
	ctx := context.Background()
	r := testutils.NewListingRepo(&entity.Listing{ID: "1", Name: "Old", Summary: "keep me", Price: 50})
	svc := NewListingService(r, nil, nil, nil)

	out, err := svc.Update(ctx, "1", &entity.Listing{Name: "Merged"}, repo.UpdateMerge, "")
	require.NoError(t, err)
	assert.Equal(t, "Merged", out.Name)
	assert.Equal(t, "keep me", out.Summary)
	assert.Equal(t, 50.0, out.Price)

	out, err = svc.Update(ctx, "1", &entity.Listing{Name: "Replaced"}, repo.UpdateReplace, "")
	require.NoError(t, err)
	assert.Equal(t, "1", out.ID)
	assert.Equal(t, "Replaced", out.Name)
	assert.Empty(t, out.Summary)

	_, err = svc.Update(ctx, "1", &entity.Listing{ID: "2"}, repo.UpdateReplace, "")
	assert.ErrorIs(t, err, ErrInvalidListing)

	_, err = svc.Update(ctx, "missing", &entity.Listing{Name: "x"}, repo.UpdateMerge, "")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestListingService_DeleteMissingIsAlwaysNotFound(t *testing.T) {
	ctx := context.Background()
	svc := NewListingService(testutils.NewListingRepo(&entity.Listing{ID: "1"}), nil, nil, nil)

	_, err := svc.Delete(ctx, "1", "admin")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = svc.Delete(ctx, "1", "admin")
		assert.ErrorIs(t, err, repo.ErrNotFound)
	}
}

func TestListingService_PublishFailureDoesNotFailMutation(t *testing.T) {
	ctx := context.Background()
	pub := &testutils.Publisher{Err: errors.New("broker down")}
	svc := NewListingService(testutils.NewListingRepo(), pub, nil, nil)

	_, err := svc.Create(ctx, &entity.Listing{ID: "1"}, "")
	assert.NoError(t, err)
}

func TestListingService_UploadImage(t *testing.T) {
	ctx := context.Background()
	r := testutils.NewListingRepo(&entity.Listing{ID: "1", Images: &entity.Images{ThumbnailURL: "t"}})

	svc := NewListingService(r, nil, nil, nil)
	_, err := svc.UploadImage(ctx, "1", "a.png", "image/png", strings.NewReader("x"), "")
	assert.ErrorIs(t, err, ErrStorageDisabled)

	up := &testutils.Uploader{}
	svc = NewListingService(r, nil, up, nil)
	svc.ImagePath = func(id, name string) string { return "listings/" + id + "/" + name }

	out, err := svc.UploadImage(ctx, "1", "a.png", "image/png", strings.NewReader("png-bytes"), "")
	require.NoError(t, err)
	assert.Equal(t, "https://storage.test/listings/1/a.png", out.Images.PictureURL)
	assert.Equal(t, "t", out.Images.ThumbnailURL)
	assert.Equal(t, 9, up.Bytes)

	_, err = svc.UploadImage(ctx, "nope", "a.png", "image/png", strings.NewReader("x"), "")
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestListingService_List(t *testing.T) {
	ctx := context.Background()
	svc := NewListingService(testutils.NewListingRepo(seedListings(15, "Flat")...), nil, nil, nil)

	items, err := svc.List(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, items, 10)

	items, err = svc.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, items)
}
