package pagination

import (
	"math"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRequest(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"missing", "", 1},
		{"valid", "?page=3", 3},
		{"zero", "?page=0", 1},
		{"negative", "?page=-2", 1},
		{"garbage", "?page=abc", 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := FromRequest(httptest.NewRequest("GET", "/api/v1/products"+tc.query, nil), 9)
			assert.Equal(t, tc.want, p.Page)
			assert.Equal(t, 9, p.PerPage)
		})
	}
}

func TestBounds(t *testing.T) {
	tests := []struct {
		name       string
		params     Params
		total      int
		start, end int
	}{
		{"first page", Params{Page: 1, PerPage: 9}, 20, 0, 9},
		{"last partial page", Params{Page: 3, PerPage: 9}, 20, 18, 20},
		{"past the end", Params{Page: 4, PerPage: 9}, 20, 20, 20},
		{"page below one", Params{Page: 0, PerPage: 9}, 20, 0, 9},
		{"empty", Params{Page: 1, PerPage: 9}, 0, 0, 0},
		{"exactly one page past", Params{Page: 3, PerPage: 9}, 18, 18, 18},
		{"huge page", Params{Page: 2000000000000000000, PerPage: 9}, 20, 20, 20},
		{"max int page", Params{Page: math.MaxInt, PerPage: 9}, 20, 20, 20},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			start, end := tc.params.Bounds(tc.total)
			assert.Equal(t, tc.start, start)
			assert.Equal(t, tc.end, end)
		})
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 9))
	assert.Equal(t, 1, TotalPages(1, 9))
	assert.Equal(t, 1, TotalPages(9, 9))
	assert.Equal(t, 2, TotalPages(10, 9))
	assert.Equal(t, 3, TotalPages(20, 9))
	assert.Equal(t, 0, TotalPages(5, 0))
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 18, Params{Page: 3, PerPage: 9}.Offset())
	assert.Equal(t, 0, Params{Page: -1, PerPage: 9}.Offset())
}
