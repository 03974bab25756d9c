package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/airbnb-listing-service/internal/application"
	"github.com/oksasatya/airbnb-listing-service/internal/domain/entity"
	"github.com/oksasatya/airbnb-listing-service/internal/domain/repository"
	"github.com/oksasatya/airbnb-listing-service/internal/interface/middleware"
	"github.com/oksasatya/airbnb-listing-service/pkg/helpers"
	"github.com/oksasatya/airbnb-listing-service/pkg/pagination"
	"github.com/oksasatya/airbnb-listing-service/pkg/validation"
	"github.com/oksasatya/airbnb-listing-service/web"
)

const noSearchResults = "No listings found with the provided name."

// PageHandler serves the server-rendered browser routes
type PageHandler struct {
	Listings *application.ListingService
	Users    *application.UserService
	Cookies  *helpers.Manager
	Logger   logrus.FieldLogger
}

func NewPageHandler(listings *application.ListingService, users *application.UserService, cookies *helpers.Manager, logger logrus.FieldLogger) *PageHandler {
	return &PageHandler{Listings: listings, Users: users, Cookies: cookies, Logger: logger}
}

type listingForm struct {
	ID        string  `form:"_id" binding:"omitempty,listingid"`
	Name      string  `form:"name" binding:"max=500"`
	Summary   string  `form:"summary"`
	Price     float64 `form:"price" binding:"gte=0"`
	Bedrooms  float64 `form:"bedrooms" binding:"gte=0"`
	Beds      float64 `form:"beds" binding:"gte=0"`
	Bathrooms float64 `form:"bathrooms" binding:"gte=0"`
	Amenities string  `form:"amenities"`
}

func (f listingForm) toListing() *entity.Listing {
	return &entity.Listing{
		ID:        strings.TrimSpace(f.ID),
		Name:      strings.TrimSpace(f.Name),
		Summary:   strings.TrimSpace(f.Summary),
		Price:     f.Price,
		Bedrooms:  f.Bedrooms,
		Beds:      f.Beds,
		Bathrooms: f.Bathrooms,
		Amenities: splitAmenities(f.Amenities),
	}
}

func splitAmenities(raw string) []string {
	var out []string
	for _, a := range strings.Split(raw, ",") {
		if a = strings.TrimSpace(a); a != "" {
			out = append(out, a)
		}
	}
	return out
}

type loginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
	Next     string `form:"next"`
}

// view builds the data every template shares
func view(c *gin.Context, title string) gin.H {
	u, _ := middleware.CurrentUser(c)
	return gin.H{
		"Title":      title,
		"User":       u,
		"IsAdmin":    u != nil && u.HasAnyRole(entity.RoleAdmin),
		"SearchName": c.Query("name"),
	}
}

func (h *PageHandler) renderError(c *gin.Context, status int, msg string) {
	data := view(c, http.StatusText(status))
	data["Status"] = status
	data["Message"] = msg
	c.HTML(status, web.ErrorTemplate, data)
}

// fail renders err as an error page, logging server-side failures
func (h *PageHandler) fail(c *gin.Context, err error) {
	status, msg := statusFor("listing", err)
	if status >= http.StatusInternalServerError && h.Logger != nil {
		h.Logger.WithError(err).WithField("path", c.Request.URL.Path).Error("page failed")
	}
	h.renderError(c, status, msg)
}

// lenientInt reads an integer query parameter, ignoring malformed values
func lenientInt(c *gin.Context, key string, def int) int {
	if n, err := strconv.Atoi(c.Query(key)); err == nil {
		return n
	}
	return def
}

// page fetches the requested page as is; an out-of-range page renders empty
func (h *PageHandler) page(c *gin.Context, f repository.ListingFilter) (pagination.Page[*entity.Listing], error) {
	p := pagination.New(lenientInt(c, "page", 1), lenientInt(c, "limit", pagination.DefaultPerPage))
	return h.Listings.Paginate(c.Request.Context(), f, p)
}

func pageData(data gin.H, res pagination.Page[*entity.Listing], base string) gin.H {
	data["Listings"] = res.Items
	data["Page"] = res.Page
	data["Limit"] = res.PerPage
	data["TotalPages"] = res.TotalPages
	data["HasPrev"] = res.HasPrev()
	data["HasNext"] = res.HasNext()
	data["BasePath"] = base
	return data
}

// Home serves GET /
func (h *PageHandler) Home(c *gin.Context) {
	res, err := h.page(c, repository.ListingFilter{})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.HTML(http.StatusOK, "root.html", pageData(view(c, ""), res, "/?"))
}

// Search serves GET /search?name=
func (h *PageHandler) Search(c *gin.Context) {
	name := c.Query("name")
	res, err := h.page(c, repository.ListingFilter{NameContains: name})
	if err != nil {
		h.fail(c, err)
		return
	}
	if res.Total == 0 {
		h.renderError(c, http.StatusNotFound, noSearchResults)
		return
	}
	c.HTML(http.StatusOK, "search.html", pageData(view(c, "Search"), res, "/search?name="+url.QueryEscape(name)+"&"))
}

// View serves GET /airbnb/:id
func (h *PageHandler) View(c *gin.Context) {
	l, ok := h.load(c)
	if !ok {
		return
	}
	data := view(c, l.Name)
	data["Listing"] = l
	c.HTML(http.StatusOK, "view.html", data)
}

func (h *PageHandler) load(c *gin.Context) (*entity.Listing, bool) {
	id := c.Param("id")
	if !validation.ValidListingID(id) {
		h.renderError(c, http.StatusBadRequest, "invalid listing id")
		return nil, false
	}
	l, err := h.Listings.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return nil, false
	}
	return l, true
}

func (h *PageHandler) AddForm(c *gin.Context) {
	c.HTML(http.StatusOK, "add.html", view(c, "Add listing"))
}

// Add serves POST /addnewairbnb; a listing without an id gets a generated one
func (h *PageHandler) Add(c *gin.Context) {
	var form listingForm
	if err := c.ShouldBind(&form); err != nil {
		data := view(c, "Add listing")
		data["Error"] = "Please check the form values."
		c.HTML(http.StatusBadRequest, "add.html", data)
		return
	}
	l := form.toListing()
	if l.ID == "" {
		l.ID = application.NewListingID()
	}
	created, err := h.Listings.Create(c.Request.Context(), l, middleware.ActorName(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/airbnb/"+created.ID)
}

func (h *PageHandler) UpdateForm(c *gin.Context) {
	l, ok := h.load(c)
	if !ok {
		return
	}
	data := view(c, "Edit "+l.Name)
	data["Listing"] = l
	c.HTML(http.StatusOK, "update.html", data)
}

// Update serves POST /update/airbnb/:id; empty fields keep their stored values
func (h *PageHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if !validation.ValidListingID(id) {
		h.renderError(c, http.StatusBadRequest, "invalid listing id")
		return
	}
	var form listingForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderError(c, http.StatusBadRequest, "Please check the form values.")
		return
	}
	l := form.toListing()
	l.ID = ""
	if _, err := h.Listings.Update(c.Request.Context(), id, l, repository.UpdateMerge, middleware.ActorName(c)); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/airbnb/"+id)
}

// Delete serves POST /delete/airbnb/:id
func (h *PageHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if !validation.ValidListingID(id) {
		h.renderError(c, http.StatusBadRequest, "invalid listing id")
		return
	}
	if _, err := h.Listings.Delete(c.Request.Context(), id, middleware.ActorName(c)); err != nil {
		h.fail(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *PageHandler) LoginForm(c *gin.Context) {
	data := view(c, "Log in")
	data["Next"] = safeNext(c.Query("next"))
	c.HTML(http.StatusOK, "login.html", data)
}

// Login serves POST /login, setting the session cookie and returning to next
func (h *PageHandler) Login(c *gin.Context) {
	var form loginForm
	bindErr := c.ShouldBind(&form)
	next := safeNext(form.Next)
	if bindErr == nil {
		res, err := h.Users.Login(c.Request.Context(), form.Username, form.Password)
		if err == nil {
			h.Cookies.SetSession(c, res.Token, res.ExpiresAt)
			c.Redirect(http.StatusSeeOther, next)
			return
		}
		if !errors.Is(err, application.ErrInvalidCredentials) {
			h.fail(c, err)
			return
		}
	}
	data := view(c, "Log in")
	data["Next"] = next
	data["Error"] = "Invalid username or password."
	c.HTML(http.StatusUnauthorized, "login.html", data)
}

func (h *PageHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c)
	c.Redirect(http.StatusSeeOther, "/")
}

// safeNext keeps redirects on this host
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}
