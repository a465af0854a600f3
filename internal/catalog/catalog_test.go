package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

func product(id int, price int64, category domain.Category) domain.Product {
	return domain.Product{
		ID:            id,
		Name:          "Product " + string(rune('A'+id-1)),
		Category:      category,
		Price:         price,
		OriginalPrice: price,
		Stock:         5,
		InStock:       true,
	}
}

func ids(products []domain.Product) []int {
	out := make([]int, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func numbered(n int) []domain.Product {
	out := make([]domain.Product, n)
	for i := range out {
		out[i] = product(i+1, 100, domain.CategoryHome)
	}
	return out
}

// ============================================================================
// Loading
// ============================================================================

func TestDefault_LoadsEmbeddedCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Equal(t, 24, c.Len())
	first, err := c.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "Wireless Noise-Cancelling Headphones", first.Name)
	for _, p := range c.All() {
		assert.GreaterOrEqual(t, p.OriginalPrice, p.Price, "product %d", p.ID)
		assert.Equal(t, p.Stock > 0, p.InStock, "product %d", p.ID)
	}
}

func TestNew_RejectsInvalidCatalogs(t *testing.T) {
	bad := product(2, 100, domain.CategoryHome)
	bad.OriginalPrice = 50

	_, err := New([]domain.Product{product(1, 100, domain.CategoryHome), bad})
	assert.ErrorContains(t, err, "original price")

	_, err = New([]domain.Product{product(1, 100, domain.CategoryHome), product(1, 200, domain.CategoryHome)})
	assert.ErrorContains(t, err, "duplicate product id 1")
}

func TestLoad_JSONAndYAML(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "catalog.json")
	raw, err := json.Marshal([]domain.Product{product(1, 100, domain.CategorySports)})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(jsonPath, raw, 0o600))

	yamlPath := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
- id: 10
  name: Cricket Bat
  category: sports
  price: 1500
  original_price: 1800
  rating: 4.2
  reviews: 12
  features: [English willow]
  stock: 3
  in_stock: true
- id: 11
  name: Tennis Balls
  category: sports
  price: 300
  original_price: 300
  stock: 0
  in_stock: false
`), 0o600))

	fromJSON, err := Load(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, ids(fromJSON.All()))

	fromYAML, err := Load(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 11}, ids(fromYAML.All()))
	bat, err := fromYAML.Get(10)
	require.NoError(t, err)
	assert.Equal(t, int64(1800), bat.OriginalPrice)
	assert.Equal(t, 17, bat.DiscountPercent())
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	broken := filepath.Join(dir, "broken.json")
	require.NoError(t, os.WriteFile(broken, []byte(`[{"id": "x"}]`), 0o600))
	_, err = Load(broken)
	assert.ErrorContains(t, err, "decode catalog")

	defaults, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 24, defaults.Len())
}

// ============================================================================
// Lookups
// ============================================================================

func TestGet_NotFound(t *testing.T) {
	c, err := New(numbered(3))
	require.NoError(t, err)

	_, err = c.Get(99)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRelated(t *testing.T) {
	c, err := New([]domain.Product{
		product(1, 100, domain.CategoryElectronics),
		product(2, 100, domain.CategoryHome),
		product(3, 100, domain.CategoryElectronics),
		product(4, 100, domain.CategoryElectronics),
		product(5, 100, domain.CategoryElectronics),
		product(6, 100, domain.CategoryElectronics),
		product(7, 100, domain.CategoryElectronics),
	})
	require.NoError(t, err)

	p, _ := c.Get(3)
	assert.Equal(t, []int{1, 4, 5, 6}, ids(c.Related(p, 4)))

	home, _ := c.Get(2)
	assert.Empty(t, c.Related(home, 4))
}

func TestFeatured(t *testing.T) {
	c, err := New(numbered(12))
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8}, ids(c.Featured(8)))

	small, err := New(numbered(3))
	require.NoError(t, err)
	assert.Len(t, small.Featured(8), 3)
}

// ============================================================================
// Query engine
// ============================================================================

func TestFilter_PreservesOrder(t *testing.T) {
	a := product(1, 100, domain.CategoryElectronics)
	b := product(2, 5000, domain.CategoryClothing)
	c := product(3, 150, domain.CategoryElectronics)

	got := Filter([]domain.Product{a, b, c}, domain.FilterCriteria{Category: domain.CategoryElectronics, MaxPrice: 200})

	if diff := cmp.Diff([]domain.Product{a, c}, got); diff != "" {
		t.Errorf("Filter mismatch (-want +got):\n%s", diff)
	}
}

func TestFilter_SearchAndDefaults(t *testing.T) {
	products := []domain.Product{
		{ID: 1, Name: "Yoga Mat", Description: "non-slip", Category: domain.CategorySports, Price: 1199},
		{ID: 2, Name: "Lamp", Description: "Ceramic YOGA-room lamp", Category: domain.CategoryHome, Price: 1899},
		{ID: 3, Name: "Laptop", Description: "fast", Category: domain.CategoryElectronics, Price: 54999},
	}

	assert.Equal(t, []int{1, 2}, ids(Filter(products, domain.DefaultCriteria())))

	search := domain.DefaultCriteria()
	search.SearchTerm = "yoga"
	assert.Equal(t, []int{1, 2}, ids(Filter(products, search)))

	search.MaxPrice = 60000
	search.SearchTerm = "LAP"
	assert.Equal(t, []int{3}, ids(Filter(products, search)))

	assert.Empty(t, Filter(nil, domain.DefaultCriteria()))
}

func TestPaginate(t *testing.T) {
	items := numbered(20)

	page1, total := Paginate(items, 1, 9)
	assert.Equal(t, 3, total)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9}, ids(page1))

	page2, _ := Paginate(items, 2, 9)
	if diff := cmp.Diff(items[9:18], page2); diff != "" {
		t.Errorf("page 2 mismatch (-want +got):\n%s", diff)
	}

	page3, _ := Paginate(items, 3, 9)
	assert.Len(t, page3, 2)

	beyond, _ := Paginate(items, 7, 9)
	assert.Empty(t, beyond)

	huge, total := Paginate(items, 2000000000000000000, 9)
	assert.Empty(t, huge)
	assert.Equal(t, 3, total)

	below, _ := Paginate(items, 0, 9)
	assert.Equal(t, ids(page1), ids(below))

	empty, total := Paginate([]domain.Product{}, 1, 9)
	assert.Empty(t, empty)
	assert.Equal(t, 0, total)
}

func labels(ls []PageLabel) []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.String()
	}
	return out
}

func TestPageNumbers(t *testing.T) {
	tests := []struct {
		current, total int
		want           []string
	}{
		{1, 0, []string{}},
		{1, 1, []string{"1"}},
		{2, 5, []string{"1", "2", "3", "4", "5"}},
		{1, 10, []string{"1", "2", "3", "4", "5", "…", "10"}},
		{3, 10, []string{"1", "2", "3", "4", "5", "…", "10"}},
		{4, 10, []string{"1", "…", "3", "4", "5", "…", "10"}},
		{7, 10, []string{"1", "…", "6", "7", "8", "…", "10"}},
		{8, 10, []string{"1", "…", "6", "7", "8", "9", "10"}},
		{10, 10, []string{"1", "…", "6", "7", "8", "9", "10"}},
		{4, 6, []string{"1", "…", "2", "3", "4", "5", "6"}},
	}

	for _, tc := range tests {
		got := labels(PageNumbers(tc.current, tc.total))
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Errorf("PageNumbers(%d, %d) mismatch (-want +got):\n%s", tc.current, tc.total, diff)
		}
	}
}

func TestPageLabel_JSON(t *testing.T) {
	raw, err := json.Marshal(PageNumbers(10, 10))
	require.NoError(t, err)
	assert.JSONEq(t, `[1,"…",6,7,8,9,10]`, string(raw))

	var back []PageLabel
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, PageNumbers(10, 10), back)
}

// ============================================================================
// Browse / View
// ============================================================================

func TestBrowseProducts(t *testing.T) {
	b := BrowseProducts(numbered(20), domain.DefaultCriteria(), 3, 9)

	assert.Equal(t, []int{19, 20}, ids(b.Items))
	assert.Equal(t, 20, b.TotalItems)
	assert.Equal(t, 3, b.TotalPages)
	assert.Equal(t, 19, b.FirstIndex)
	assert.Equal(t, 20, b.LastIndex)
	assert.False(t, b.HasNext)
	assert.True(t, b.HasPrev)

	far := BrowseProducts(numbered(20), domain.DefaultCriteria(), 2000000000000000000, 9)
	assert.Empty(t, far.Items)
	assert.Equal(t, 0, far.FirstIndex)
	assert.False(t, far.HasNext)

	empty := BrowseProducts(nil, domain.DefaultCriteria(), 1, 9)
	assert.Equal(t, 0, empty.TotalPages)
	assert.Equal(t, 0, empty.FirstIndex)
	assert.Equal(t, 0, empty.LastIndex)
	assert.Empty(t, empty.PageNumbers)
	assert.False(t, empty.HasPrev)
}

func TestView_NavigationAndReset(t *testing.T) {
	c, err := New(numbered(20))
	require.NoError(t, err)
	v := NewView(c, 9)

	v.Next()
	v.Next()
	assert.Equal(t, 3, v.Page())
	v.Next()
	assert.Equal(t, 3, v.Page(), "clamped to last page")

	v.SetPage(-5)
	assert.Equal(t, 1, v.Page())
	v.Previous()
	assert.Equal(t, 1, v.Page())

	v.SetPage(2)
	criteria := domain.DefaultCriteria()
	criteria.SearchTerm = "product"
	v.SetCriteria(criteria)
	assert.Equal(t, 1, v.Page(), "criteria change resets the page")
	assert.Equal(t, criteria, v.Criteria())

	res := v.Result()
	assert.Equal(t, 1, res.FirstIndex)
	assert.Equal(t, 9, res.LastIndex)
}

func TestView_EmptyResultStaysOnFirstPage(t *testing.T) {
	c, err := New(numbered(5))
	require.NoError(t, err)
	v := NewView(c, 9)

	v.SetCriteria(domain.FilterCriteria{SearchTerm: "nothing", Category: domain.CategoryAll, MaxPrice: 20000})
	v.SetPage(4)

	assert.Equal(t, 1, v.Page())
	assert.Empty(t, v.Result().Items)
}
