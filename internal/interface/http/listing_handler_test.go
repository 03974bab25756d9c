package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/airbnb-listing-service/internal/domain/entity"
	"github.com/oksasatya/airbnb-listing-service/pkg/pagination"
)

func villaSeed() []*entity.Listing {
	return append(listings("v", "Sunny Villa", 5), listings("c", "City Loft", 3)...)
}

func TestListingHandler_SearchPaginates(t *testing.T) {
	h := newHarness(t, villaSeed())

	w := h.do(http.MethodGet, "/api/AirBnBs/search?name=villa&perPage=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	env := decode(t, w)
	var items []entity.Listing
	require.NoError(t, json.Unmarshal(env.Data, &items))
	var meta pagination.Meta
	require.NoError(t, json.Unmarshal(env.Meta, &meta))

	assert.Len(t, items, 2)
	assert.Equal(t, "v1", items[0].ID)
	assert.Equal(t, "v2", items[1].ID)
	assert.Equal(t, pagination.Meta{Page: 1, PerPage: 2, Total: 5, TotalPages: 3}, meta)
}

func TestListingHandler_SearchIsCaseInsensitiveAndLiteral(t *testing.T) {
	seed := []*entity.Listing{
		{ID: "a1", Name: "Loft (2BR)"},
		{ID: "a2", Name: "loft 2BR"},
	}
	h := newHarness(t, seed)

	w := h.do(http.MethodGet, "/api/AirBnBs/search?name=(2br)", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var items []entity.Listing
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "a1", items[0].ID)
}

func TestListingHandler_OutOfRangePageRedirects(t *testing.T) {
	h := newHarness(t, villaSeed())

	w := h.do(http.MethodGet, "/api/AirBnBs/search?name=villa&page=10&perPage=2", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/api/AirBnBs/search?name=villa&page=3&perPage=2", w.Header().Get("Location"))
	assert.Equal(t, 0, h.listings.FindCalls)

	w = h.do(http.MethodGet, "/api/AirBnBs?page=0", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/api/AirBnBs?page=1", w.Header().Get("Location"))
}

func TestListingHandler_EmptyResultIsNotFound(t *testing.T) {
	h := newHarness(t, villaSeed())

	w := h.do(http.MethodGet, "/api/AirBnBs/search?name=castle", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, decode(t, w).Success)
}

func TestListingHandler_NonIntegerPageIsBadRequest(t *testing.T) {
	h := newHarness(t, villaSeed())

	w := h.do(http.MethodGet, "/api/AirBnBs?page=two", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, string(decode(t, w).Error), "page")

	w = h.do(http.MethodGet, "/api/AirBnBs?perPage=1.5", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListingHandler_ListFiltersByPropertyType(t *testing.T) {
	seed := villaSeed()
	seed[0].PropertyType = "Apartment"
	h := newHarness(t, seed)

	w := h.do(http.MethodGet, "/api/AirBnBs?property_type=Apartment", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var items []entity.Listing
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "v1", items[0].ID)
}

func TestListingHandler_GetSummaryAndReviews(t *testing.T) {
	seed := []*entity.Listing{{
		ID:              "10006546",
		Name:            "Ribeira Charming Duplex",
		PropertyType:    "House",
		Accommodates:    8,
		Price:           80,
		NumberOfReviews: 1,
		ReviewScores:    &entity.ReviewScores{Value: 9},
		Reviews:         []entity.Review{{ID: "r1", Comments: "Great stay"}},
	}}
	h := newHarness(t, seed)

	w := h.do(http.MethodGet, "/api/AirBnBs/10006546", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary map[string]any
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &summary))
	assert.Equal(t, 9.0, summary["review_score_value"])
	assert.Equal(t, "House", summary["property_type"])
	assert.NotContains(t, summary, "name")

	w = h.do(http.MethodGet, "/api/AirBnBs/review/10006546", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var reviews listingReviews
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &reviews))
	assert.Equal(t, 1.0, reviews.NumberOfReviews)
	require.Len(t, reviews.Reviews, 1)
	assert.Equal(t, "Great stay", reviews.Reviews[0].Comment)
}

func TestListingHandler_GetMissingAndMalformed(t *testing.T) {
	h := newHarness(t, nil)

	assert.Equal(t, http.StatusNotFound, h.do(http.MethodGet, "/api/AirBnBs/nope", nil).Code)
	assert.Equal(t, http.StatusBadRequest, h.do(http.MethodGet, "/api/AirBnBs/bad$id", nil).Code)
}

func TestListingHandler_CreateRequiresAuth(t *testing.T) {
	h := newHarness(t, nil)

	w := h.do(http.MethodPost, "/api/AirBnBs", jsonBody(`{"_id":"n1","name":"New"}`))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 0, h.events.Len())
}

func TestListingHandler_Create(t *testing.T) {
	h := newHarness(t, nil)
	tok, _ := h.account(t, "alice")

	w := h.do(http.MethodPost, "/api/AirBnBs", jsonBody(`{"name":"No id"}`), bearer(tok))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, string(decode(t, w).Error), "_id")

	w = h.do(http.MethodPost, "/api/AirBnBs", jsonBody(`{"_id":"bad id","name":"New"}`), bearer(tok))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, string(decode(t, w).Error), "_id")
	assert.Equal(t, 0, h.events.Len())

	w = h.do(http.MethodPost, "/api/AirBnBs", jsonBody(`{"_id":"n1","name":"New","price":120}`), bearer(tok))
	require.Equal(t, http.StatusCreated, w.Code)
	got, err := h.listings.GetByID(context.Background(), "n1")
	require.NoError(t, err)
	assert.Equal(t, 120.0, got.Price)
	assert.Equal(t, 1, h.events.Len())

	w = h.do(http.MethodPost, "/api/AirBnBs", jsonBody(`{"_id":"n1","name":"Again"}`), bearer(tok))
	assert.Equal(t, http.StatusConflict, w.Code)

	w = h.do(http.MethodPost, "/api/AirBnBs", jsonBody(`{"_id":"n2","price":-1}`), bearer(tok))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListingHandler_CreateWithAPIKey(t *testing.T) {
	h := newHarness(t, nil)
	_, key := h.account(t, "bob")

	w := h.do(http.MethodPost, "/api/AirBnBs", jsonBody(`{"_id":"k1","name":"Keyed"}`), apiKey(key))
	assert.Equal(t, http.StatusCreated, w.Code)

	w = h.do(http.MethodPost, "/api/AirBnBs", jsonBody(`{"_id":"k2","name":"Keyed"}`), apiKey("not-a-key"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListingHandler_ReplaceAndPatch(t *testing.T) {
	seed := []*entity.Listing{{ID: "p1", Name: "Old", Summary: "Keep me", Price: 50}}
	h := newHarness(t, seed)
	tok, _ := h.account(t, "alice")

	w := h.do(http.MethodPatch, "/api/AirBnBs/p1", jsonBody(`{"name":"Patched"}`), bearer(tok))
	require.Equal(t, http.StatusOK, w.Code)
	got, _ := h.listings.GetByID(context.Background(), "p1")
	assert.Equal(t, "Patched", got.Name)
	assert.Equal(t, "Keep me", got.Summary)
	assert.Equal(t, 50.0, got.Price)

	w = h.do(http.MethodPut, "/api/AirBnBs/p1", jsonBody(`{"name":"Replaced"}`), bearer(tok))
	require.Equal(t, http.StatusOK, w.Code)
	got, _ = h.listings.GetByID(context.Background(), "p1")
	assert.Equal(t, "Replaced", got.Name)
	assert.Empty(t, got.Summary)
	assert.Equal(t, "p1", got.ID)

	w = h.do(http.MethodPut, "/api/AirBnBs/p1", jsonBody(`{"_id":"other","name":"x"}`), bearer(tok))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = h.do(http.MethodPatch, "/api/AirBnBs/missing", jsonBody(`{"name":"x"}`), bearer(tok))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListingHandler_DeleteRequiresAdmin(t *testing.T) {
	h := newHarness(t, villaSeed())
	userTok, _ := h.account(t, "alice")
	adminTok, _ := h.account(t, "root", entity.RoleAdmin, entity.RoleUser)

	w := h.do(http.MethodDelete, "/api/AirBnBs/v1", nil, bearer(userTok))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = h.do(http.MethodDelete, "/api/AirBnBs/v1", nil, bearer(adminTok))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"_id":"v1"}`, string(decode(t, w).Data))

	w = h.do(http.MethodDelete, "/api/AirBnBs/v1", nil, bearer(adminTok))
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = h.do(http.MethodDelete, "/api/AirBnBs/v1", nil, bearer(adminTok))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func imageUpload(t *testing.T, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	hdr.Set("Content-Type", contentType)
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestListingHandler_UploadImage(t *testing.T) {
	h := newHarness(t, villaSeed(), withUploads())
	tok, _ := h.account(t, "alice")

	body, ct := imageUpload(t, "front.png", "image/png", []byte("\x89PNG fake"))
	w := h.do(http.MethodPost, "/api/AirBnBs/v1/images", body, bearer(tok), contentType(ct))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Len(t, h.images.Paths, 1)

	got, _ := h.listings.GetByID(context.Background(), "v1")
	require.NotNil(t, got.Images)
	assert.Equal(t, "https://storage.test/"+h.images.Paths[0], got.Images.PictureURL)

	body, ct = imageUpload(t, "notes.txt", "text/plain", []byte("hello"))
	w = h.do(http.MethodPost, "/api/AirBnBs/v1/images", body, bearer(tok), contentType(ct))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListingHandler_UploadImageWithoutStorage(t *testing.T) {
	h := newHarness(t, villaSeed())
	tok, _ := h.account(t, "alice")

	body, ct := imageUpload(t, "front.png", "image/png", []byte("png"))
	w := h.do(http.MethodPost, "/api/AirBnBs/v1/images", body, bearer(tok), contentType(ct))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
