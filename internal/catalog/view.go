package catalog

import (
	"github.com/utafrali/storefront/internal/domain"
)

// Browse is one rendered page of the filtered catalog.
type Browse struct {
	Items       []domain.Product      `json:"items"`
	Criteria    domain.FilterCriteria `json:"criteria"`
	Page        int                   `json:"page"`
	PageSize    int                   `json:"page_size"`
	TotalItems  int                   `json:"total_items"`
	TotalPages  int                   `json:"total_pages"`
	PageNumbers []PageLabel           `json:"page_numbers"`
	HasNext     bool                  `json:"has_next"`
	HasPrev     bool                  `json:"has_prev"`
	// FirstIndex and LastIndex are the 1-based positions shown as
	// "Showing X–Y of Z"; both are 0 for an empty result.
	FirstIndex int `json:"first_index"`
	LastIndex  int `json:"last_index"`
}

// BrowseProducts filters products and renders the requested page. It keeps
// no state between calls.
func BrowseProducts(products []domain.Product, criteria domain.FilterCriteria, page, pageSize int) Browse {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}

	filtered := Filter(products, criteria)
	items, totalPages := Paginate(filtered, page, pageSize)

	b := Browse{
		Items:       items,
		Criteria:    criteria,
		Page:        page,
		PageSize:    pageSize,
		TotalItems:  len(filtered),
		TotalPages:  totalPages,
		PageNumbers: PageNumbers(page, totalPages),
		HasNext:     page < totalPages,
		HasPrev:     page > 1 && totalPages > 0,
	}
	if len(items) > 0 {
		b.FirstIndex = (page-1)*pageSize + 1
		b.LastIndex = b.FirstIndex + len(items) - 1
	}
	return b
}

// Browse runs BrowseProducts over the whole catalog.
func (c *Catalog) Browse(criteria domain.FilterCriteria, page, pageSize int) Browse {
	return BrowseProducts(c.products, criteria, page, pageSize)
}

// View is a stateful browsing session: criteria plus current page. Changing
// the criteria resets the page to 1.
type View struct {
	catalog  *Catalog
	criteria domain.FilterCriteria
	page     int
	pageSize int
}

// NewView starts a session on page 1 with the default criteria.
func NewView(c *Catalog, pageSize int) *View {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &View{catalog: c, criteria: domain.DefaultCriteria(), page: 1, pageSize: pageSize}
}

// Criteria returns the active filter.
func (v *View) Criteria() domain.FilterCriteria {
	return v.criteria
}

// Page returns the current page number.
func (v *View) Page() int {
	return v.page
}

// SetCriteria replaces the filter and returns to page 1.
func (v *View) SetCriteria(criteria domain.FilterCriteria) {
	v.criteria = criteria
	v.page = 1
}

// SetPage moves to page, clamped to [1, totalPages].
func (v *View) SetPage(page int) {
	v.page = max(1, min(page, v.totalPages()))
}

// Next advances one page if possible.
func (v *View) Next() {
	v.SetPage(v.page + 1)
}

// Previous goes back one page if possible.
func (v *View) Previous() {
	v.SetPage(v.page - 1)
}

// Result renders the current page.
func (v *View) Result() Browse {
	return v.catalog.Browse(v.criteria, v.page, v.pageSize)
}

func (v *View) totalPages() int {
	_, total := Paginate(Filter(v.catalog.products, v.criteria), 1, v.pageSize)
	return total
}
