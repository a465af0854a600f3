package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// Defaults from the storefront pages.
const (
	DefaultRelatedLimit  = 4
	DefaultFeaturedCount = 8
)

//go:embed data/products.json
var defaultProducts []byte

// Catalog is the ordered, read-only product collection.
type Catalog struct {
	products []domain.Product
	index    map[int]int
}

// New validates products and builds a catalog preserving their order.
func New(products []domain.Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]domain.Product, 0, len(products)),
		index:    make(map[int]int, len(products)),
	}
	for _, p := range products {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("invalid catalog: %w", err)
		}
		if _, dup := c.index[p.ID]; dup {
			return nil, fmt.Errorf("invalid catalog: duplicate product id %d", p.ID)
		}
		c.index[p.ID] = len(c.products)
		c.products = append(c.products, p.Clone())
	}
	return c, nil
}

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	products, err := decodeJSON(defaultProducts)
	if err != nil {
		return nil, fmt.Errorf("decode embedded catalog: %w", err)
	}
	return New(products)
}

// Load reads a catalog file. ".yaml" and ".yml" files are decoded as YAML,
// everything else as JSON. An empty path returns the default catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	var products []domain.Product
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &products)
	default:
		products, err = decodeJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", path, err)
	}
	return New(products)
}

func decodeJSON(data []byte) ([]domain.Product, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var products []domain.Product
	if err := dec.Decode(&products); err != nil {
		return nil, err
	}
	return products, nil
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// All returns the products in catalog order. Callers must not modify the
// returned slice.
func (c *Catalog) All() []domain.Product {
	return c.products
}

// Get returns the product with id.
func (c *Catalog) Get(id int) (domain.Product, error) {
	i, ok := c.index[id]
	if !ok {
		return domain.Product{}, apperrors.NotFound("product", strconv.Itoa(id))
	}
	return c.products[i].Clone(), nil
}

// Related returns up to limit other products of p's category in catalog order.
func (c *Catalog) Related(p domain.Product, limit int) []domain.Product {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}
	out := make([]domain.Product, 0, limit)
	for _, q := range c.products {
		if len(out) == limit {
			break
		}
		if q.Category == p.Category && q.ID != p.ID {
			out = append(out, q.Clone())
		}
	}
	return out
}

// Featured returns the first n products.
func (c *Catalog) Featured(n int) []domain.Product {
	if n <= 0 {
		n = DefaultFeaturedCount
	}
	n = min(n, len(c.products))
	out := make([]domain.Product, n)
	for i := range out {
		out[i] = c.products[i].Clone()
	}
	return out
}
