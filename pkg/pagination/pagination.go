package pagination

import (
	"net/http"
	"strconv"
)

// Params holds pagination parameters extracted from query strings.
type Params struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// FromRequest reads the "page" query parameter. Missing, malformed, or
// non-positive values fall back to page 1. PerPage is fixed by the caller.
func FromRequest(r *http.Request, perPage int) Params {
	p := Params{Page: 1, PerPage: perPage}
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		p.Page = v
	}
	return p
}

// Normalize clamps Page to at least 1 and PerPage to at least 1.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = 1
	}
	return p
}

// Offset returns the index of the first item on the page.
func (p Params) Offset() int {
	p = p.Normalize()
	return (p.Page - 1) * p.PerPage
}

// Bounds returns the half-open [start, end) window of the page over total
// items, clipped to total. Pages past the end yield an empty window.
func (p Params) Bounds(total int) (start, end int) {
	p = p.Normalize()
	if total <= 0 {
		return 0, 0
	}
	// Compare page indexes before multiplying so huge pages cannot overflow.
	if p.Page-1 > (total-1)/p.PerPage {
		return total, total
	}
	start = p.Offset()
	end = min(start+p.PerPage, total)
	return start, end
}

// TotalPages returns ceil(total / perPage), 0 when total is 0.
func TotalPages(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}
