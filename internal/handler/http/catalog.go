package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/storefront/internal/catalog"
	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/pagination"
)

// CatalogHandler serves the read-only product catalog.
type CatalogHandler struct {
	catalog         *catalog.Catalog
	cart            *service.CartStore
	wishlist        *service.WishlistStore
	pageSize        int
	defaultMaxPrice int64
	logger          *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(c *catalog.Catalog, cart *service.CartStore, wishlist *service.WishlistStore, pageSize int, defaultMaxPrice int64, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog:         c,
		cart:            cart,
		wishlist:        wishlist,
		pageSize:        pageSize,
		defaultMaxPrice: defaultMaxPrice,
		logger:          logger,
	}
}

// ProductDetail is the product page payload.
type ProductDetail struct {
	Product         domain.Product   `json:"product"`
	HasDiscount     bool             `json:"has_discount"`
	DiscountPercent int              `json:"discount_percent"`
	InCart          bool             `json:"in_cart"`
	CartQuantity    int              `json:"cart_quantity"`
	InWishlist      bool             `json:"in_wishlist"`
	Related         []domain.Product `json:"related"`
}

// ListCategories handles GET /api/v1/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	writeData(w, r, http.StatusOK, domain.Categories())
}

// ListProducts handles GET /api/v1/products?q=&category=&max_price=&page=
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria := domain.FilterCriteria{
		SearchTerm: strings.TrimSpace(q.Get("q")),
		Category:   domain.CategoryAll,
		MaxPrice:   h.defaultMaxPrice,
	}
	if v := q.Get("category"); v != "" {
		criteria.Category = domain.Category(strings.ToLower(v))
	}
	if v := q.Get("max_price"); v != "" {
		maxPrice, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
				Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: "invalid max_price: " + v},
			})
			return
		}
		criteria.MaxPrice = maxPrice
	}
	if err := criteria.Validate(); err != nil {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_PARAMETER", Message: err.Error()},
		})
		return
	}

	params := pagination.FromRequest(r, h.pageSize)
	writeData(w, r, http.StatusOK, h.catalog.Browse(criteria, params.Page, params.PerPage))
}

// Featured handles GET /api/v1/products/featured
func (h *CatalogHandler) Featured(w http.ResponseWriter, r *http.Request) {
	writeData(w, r, http.StatusOK, h.catalog.Featured(catalog.DefaultFeaturedCount))
}

// GetProduct handles GET /api/v1/products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, "product id", chi.URLParam(r, "id"))
	if !ok {
		return
	}

	p, err := h.catalog.Get(id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	writeData(w, r, http.StatusOK, ProductDetail{
		Product:         p,
		HasDiscount:     p.HasDiscount(),
		DiscountPercent: p.DiscountPercent(),
		InCart:          h.cart.IsInCart(id),
		CartQuantity:    h.cart.Quantity(id),
		InWishlist:      h.wishlist.IsInWishlist(id),
		Related:         h.catalog.Related(p, catalog.DefaultRelatedLimit),
	})
}
