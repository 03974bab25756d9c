package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/airbnb-listing-service/internal/application"
	"github.com/oksasatya/airbnb-listing-service/internal/domain/entity"
	"github.com/oksasatya/airbnb-listing-service/internal/domain/repository"
	"github.com/oksasatya/airbnb-listing-service/internal/interface/middleware"
	"github.com/oksasatya/airbnb-listing-service/pkg/pagination"
	"github.com/oksasatya/airbnb-listing-service/pkg/response"
	"github.com/oksasatya/airbnb-listing-service/pkg/validation"
)

// MaxImageBytes caps a single listing image upload
const MaxImageBytes = 10 << 20

type ListingHandler struct {
	Svc    *application.ListingService
	Logger logrus.FieldLogger
}

func NewListingHandler(svc *application.ListingService, logger logrus.FieldLogger) *ListingHandler {
	return &ListingHandler{Svc: svc, Logger: logger}
}

// listingSummary is the single-listing view of GET /AirBnBs/:id
type listingSummary struct {
	ListingURL           string         `json:"listing_url,omitempty"`
	Description          string         `json:"description,omitempty"`
	NeighborhoodOverview string         `json:"neighborhood_overview,omitempty"`
	CancellationPolicy   string         `json:"cancellation_policy,omitempty"`
	PropertyType         string         `json:"property_type,omitempty"`
	RoomType             string         `json:"room_type,omitempty"`
	Accommodates         float64        `json:"accommodates"`
	Price                float64        `json:"price"`
	Images               *entity.Images `json:"images,omitempty"`
	ReviewScoreValue     float64        `json:"review_score_value"`
}

func toSummary(l *entity.Listing) listingSummary {
	return listingSummary{
		ListingURL:           l.ListingURL,
		Description:          l.Description,
		NeighborhoodOverview: l.NeighborhoodOverview,
		CancellationPolicy:   l.CancellationPolicy,
		PropertyType:         l.PropertyType,
		RoomType:             l.RoomType,
		Accommodates:         l.Accommodates,
		Price:                l.Price,
		Images:               l.Images,
		ReviewScoreValue:     l.ReviewScoreValue(),
	}
}

type reviewItem struct {
	ReviewDate *time.Time `json:"review_date,omitempty"`
	Comment    string     `json:"comment"`
}

type listingReviews struct {
	NumberOfReviews float64      `json:"number_of_reviews"`
	FirstReview     *time.Time   `json:"first_review,omitempty"`
	LastReview      *time.Time   `json:"last_review,omitempty"`
	Reviews         []reviewItem `json:"reviews"`
}

func toReviews(l *entity.Listing) listingReviews {
	out := listingReviews{
		NumberOfReviews: l.NumberOfReviews,
		FirstReview:     l.FirstReview,
		LastReview:      l.LastReview,
		Reviews:         make([]reviewItem, 0, len(l.Reviews)),
	}
	for _, r := range l.Reviews {
		out.Reviews = append(out.Reviews, reviewItem{ReviewDate: r.Date, Comment: r.Comments})
	}
	return out
}

// List serves GET /AirBnBs with optional property_type and name filters
func (h *ListingHandler) List(c *gin.Context) {
	h.paginate(c, repository.ListingFilter{
		PropertyType: c.Query("property_type"),
		NameContains: c.Query("name"),
	})
}

// Search serves GET /AirBnBs/search?name=
func (h *ListingHandler) Search(c *gin.Context) {
	h.paginate(c, repository.ListingFilter{NameContains: c.Query("name")})
}

// paginate answers 404 for an empty result set and redirects out-of-range pages
// to the nearest valid one.
func (h *ListingHandler) paginate(c *gin.Context, f repository.ListingFilter) {
	p, ok := pageParams(c, "perPage")
	if !ok {
		return
	}
	page, err := h.Svc.Paginate(c.Request.Context(), f, p)
	if err != nil {
		writeError(c, h.Logger, "listing", err)
		return
	}
	if page.TotalPages == 0 {
		response.Error(c, http.StatusNotFound, "no listings found", nil)
		return
	}
	if target, changed := pagination.Clamp(p.Page, page.TotalPages); changed {
		c.Redirect(http.StatusFound, withPage(c.Request.URL, target))
		return
	}
	response.Success(c, http.StatusOK, page.Items, "listings", page.Meta())
}

func (h *ListingHandler) Get(c *gin.Context) {
	id, ok := listingID(c)
	if !ok {
		return
	}
	l, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.Logger, "listing", err)
		return
	}
	response.Success(c, http.StatusOK, toSummary(l), "listing", nil)
}

func (h *ListingHandler) Reviews(c *gin.Context) {
	id, ok := listingID(c)
	if !ok {
		return
	}
	l, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.Logger, "listing", err)
		return
	}
	response.Success(c, http.StatusOK, toReviews(l), "reviews", nil)
}

func (h *ListingHandler) Create(c *gin.Context) {
	var req entity.Listing
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if req.ID == "" {
		response.Error(c, http.StatusBadRequest, "invalid payload", map[string]string{"_id": "is required"})
		return
	}
	l, err := h.Svc.Create(c.Request.Context(), &req, middleware.ActorName(c))
	if err != nil {
		writeError(c, h.Logger, "listing", err)
		return
	}
	response.Success(c, http.StatusCreated, l, "listing created", nil)
}

// Replace serves PUT: the body becomes the whole stored document
func (h *ListingHandler) Replace(c *gin.Context) {
	h.update(c, repository.UpdateReplace)
}

// Patch serves PATCH: only non-empty top-level fields are applied
func (h *ListingHandler) Patch(c *gin.Context) {
	h.update(c, repository.UpdateMerge)
}

func (h *ListingHandler) update(c *gin.Context, mode repository.UpdateMode) {
	id, ok := listingID(c)
	if !ok {
		return
	}
	var req entity.Listing
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	l, err := h.Svc.Update(c.Request.Context(), id, &req, mode, middleware.ActorName(c))
	if err != nil {
		writeError(c, h.Logger, "listing", err)
		return
	}
	response.Success(c, http.StatusOK, l, "listing updated", nil)
}

func (h *ListingHandler) Delete(c *gin.Context) {
	id, ok := listingID(c)
	if !ok {
		return
	}
	l, err := h.Svc.Delete(c.Request.Context(), id, middleware.ActorName(c))
	if err != nil {
		writeError(c, h.Logger, "listing", err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"_id": l.ID}, "listing deleted", nil)
}

// UploadImage accepts a multipart "image" file and sets it as the listing picture
func (h *ListingHandler) UploadImage(c *gin.Context) {
	id, ok := listingID(c)
	if !ok {
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxImageBytes+1<<20)
	fh, err := c.FormFile("image")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", map[string]string{"image": "is required"})
		return
	}
	if fh.Size > MaxImageBytes {
		response.Error(c, http.StatusRequestEntityTooLarge, "image too large", nil)
		return
	}
	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		response.Error(c, http.StatusBadRequest, "invalid payload", map[string]string{"image": "must be an image"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		writeError(c, h.Logger, "listing", err)
		return
	}
	defer f.Close()

	l, err := h.Svc.UploadImage(c.Request.Context(), id, fh.Filename, contentType, f, middleware.ActorName(c))
	if err != nil {
		writeError(c, h.Logger, "listing", err)
		return
	}
	response.Success(c, http.StatusOK, toSummary(l), "image uploaded", nil)
}
