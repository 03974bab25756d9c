package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/airbnb-listing-service/pkg/pagination"
	"github.com/oksasatya/airbnb-listing-service/pkg/response"
	"github.com/oksasatya/airbnb-listing-service/pkg/validation"
)

// queryInt reads an optional integer query parameter
func queryInt(c *gin.Context, key string, def int) (int, bool) {
	raw, ok := c.GetQuery(key)
	if !ok || raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}

// pageParams reads page and the per-page key, writing a 400 when either is not an integer
func pageParams(c *gin.Context, perPageKey string) (pagination.Params, bool) {
	page, okPage := queryInt(c, "page", 1)
	perPage, okPer := queryInt(c, perPageKey, pagination.DefaultPerPage)
	if !okPage || !okPer {
		details := map[string]string{}
		if !okPage {
			details["page"] = "must be an integer"
		}
		if !okPer {
			details[perPageKey] = "must be an integer"
		}
		response.Error(c, http.StatusBadRequest, "invalid query", details)
		return pagination.Params{}, false
	}
	return pagination.New(page, perPage), true
}

// listingID validates the :id path parameter, writing a 400 when malformed
func listingID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if !validation.ValidListingID(id) {
		response.Error(c, http.StatusBadRequest, "invalid id", map[string]string{"id": "must be 1-64 letters, digits, '-' or '_'"})
		return "", false
	}
	return id, true
}

// withPage returns the request URI with page replaced, other parameters kept
func withPage(u *url.URL, page int) string {
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	out := *u
	out.RawQuery = q.Encode()
	return out.RequestURI()
}
