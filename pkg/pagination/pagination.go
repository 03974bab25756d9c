// Package pagination holds the page arithmetic shared by the JSON API and
// the browser pages.
package pagination

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// Params is a validated page request. Page is 1-based.
type Params struct {
	Page    int
	PerPage int
}

// New guards perPage into [1, MaxPerPage]; page is kept as given so callers
// can detect out-of-range requests.
func New(page, perPage int) Params {
	if perPage < 1 {
		perPage = 1
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}
	return Params{Page: page, PerPage: perPage}
}

// Skip is the number of records before this page, never negative
func (p Params) Skip() int64 {
	if p.Page < 1 {
		return 0
	}
	return int64(p.Page-1) * int64(p.PerPage)
}

func (p Params) Limit() int64 { return int64(p.PerPage) }

// TotalPages is ceil(total/perPage); zero records means zero pages
func TotalPages(total int64, perPage int) int {
	if total <= 0 || perPage < 1 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

// InRange reports whether page addresses an existing page
func InRange(page, totalPages int) bool {
	return page >= 1 && page <= totalPages
}

// Clamp returns the nearest valid page and whether it differs from page.
// With no pages at all the result is 1.
func Clamp(page, totalPages int) (int, bool) {
	switch {
	case totalPages < 1:
		return 1, page != 1
	case page < 1:
		return 1, true
	case page > totalPages:
		return totalPages, true
	}
	return page, false
}

// Page is one slice of a filtered, id-ordered result set
type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	PerPage    int   `json:"perPage"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// Meta is the pagination block of the response envelope
type Meta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"perPage"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

func (p Page[T]) Meta() Meta {
	return Meta{Page: p.Page, PerPage: p.PerPage, Total: p.Total, TotalPages: p.TotalPages}
}

// HasPrev and HasNext drive the browser pager
func (p Page[T]) HasPrev() bool { return p.Page > 1 }
func (p Page[T]) HasNext() bool { return p.Page < p.TotalPages }
