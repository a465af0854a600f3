package catalog

import (
	"encoding/json"
	"strconv"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/pkg/pagination"
)

// DefaultPageSize is the number of products shown per page.
const DefaultPageSize = 9

// Ellipsis marks a gap in the page-number list.
const Ellipsis = "…"

// Filter returns the products matching criteria in their original order.
func Filter(products []domain.Product, criteria domain.FilterCriteria) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if criteria.Matches(p) {
			out = append(out, p)
		}
	}
	return out
}

// Paginate returns the page-th slice of size pageSize and the page count.
// Pages below 1 are treated as 1; pages past the end are empty.
func Paginate[T any](items []T, page, pageSize int) ([]T, int) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	start, end := pagination.Params{Page: page, PerPage: pageSize}.Bounds(len(items))
	return items[start:end], pagination.TotalPages(len(items), pageSize)
}

// PageLabel is a page number or the ellipsis marker. It encodes as a JSON
// number or the string "…".
type PageLabel struct {
	Number   int
	Ellipsis bool
}

func (l PageLabel) String() string {
	if l.Ellipsis {
		return Ellipsis
	}
	return strconv.Itoa(l.Number)
}

// MarshalJSON implements json.Marshaler.
func (l PageLabel) MarshalJSON() ([]byte, error) {
	if l.Ellipsis {
		return json.Marshal(Ellipsis)
	}
	return json.Marshal(l.Number)
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *PageLabel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = PageLabel{Ellipsis: true}
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*l = PageLabel{Number: n}
	return nil
}

// PageNumbers lays out the compact pagination control for current of total.
func PageNumbers(current, total int) []PageLabel {
	if total <= 0 {
		return []PageLabel{}
	}
	if total <= 5 {
		return pages(1, total)
	}

	gap := PageLabel{Ellipsis: true}
	switch {
	case current <= 3:
		return append(pages(1, 5), gap, PageLabel{Number: total})
	case current >= total-2:
		return append([]PageLabel{{Number: 1}, gap}, pages(total-4, total)...)
	default:
		out := []PageLabel{{Number: 1}, gap}
		out = append(out, pages(current-1, current+1)...)
		return append(out, gap, PageLabel{Number: total})
	}
}

func pages(from, to int) []PageLabel {
	out := make([]PageLabel, 0, to-from+1)
	for n := from; n <= to; n++ {
		out = append(out, PageLabel{Number: n})
	}
	return out
}
