package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/storefront/internal/catalog"
	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/pkg/httputil"
	"github.com/utafrali/storefront/pkg/validator"
)

// CartHandler handles HTTP requests for cart endpoints. Stock limits are
// enforced here; the cart store itself does not check them.
type CartHandler struct {
	cart    *service.CartStore
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(cart *service.CartStore, c *catalog.Catalog, logger *slog.Logger) *CartHandler {
	return &CartHandler{cart: cart, catalog: c, logger: logger}
}

// --- Request DTOs ---

// AddItemRequest is the JSON request body for adding a product to the cart.
// Quantity defaults to 1.
type AddItemRequest struct {
	ProductID int `json:"product_id" validate:"required,gt=0"`
	Quantity  int `json:"quantity" validate:"gte=0,lte=100"`
}

// UpdateQuantityRequest is the JSON request body for updating a line's quantity.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

// CartView is the cart payload.
type CartView struct {
	Lines   []domain.CartLine   `json:"lines"`
	Count   int                 `json:"count"`
	Total   int64               `json:"total"`
	Summary domain.OrderSummary `json:"summary"`
}

func (h *CartHandler) view() CartView {
	lines := h.cart.Lines()
	cart := domain.NewCart(lines)
	return CartView{
		Lines:   lines,
		Count:   cart.Count(),
		Total:   cart.Total(),
		Summary: domain.Summarize(lines),
	}
}

// --- Handlers ---

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeData(w, r, http.StatusOK, h.view())
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		writeRequestError(w, r, err, h.logger)
		return
	}

	p, err := h.catalog.Get(req.ProductID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if _, err := service.AddWithinStock(r.Context(), h.cart, p, req.Quantity); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	writeData(w, r, http.StatusOK, h.view())
}

// UpdateItemQuantity handles PUT /api/v1/cart/items/{productId}
func (h *CartHandler) UpdateItemQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, "product id", chi.URLParam(r, "productId"))
	if !ok {
		return
	}

	var req UpdateQuantityRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		writeRequestError(w, r, err, h.logger)
		return
	}

	quantity := req.Quantity
	if p, err := h.catalog.Get(id); err == nil {
		quantity = service.ClampToStock(p, quantity)
	}
	h.cart.UpdateQuantity(r.Context(), id, quantity)

	writeData(w, r, http.StatusOK, h.view())
}

// RemoveItem handles DELETE /api/v1/cart/items/{productId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, "product id", chi.URLParam(r, "productId"))
	if !ok {
		return
	}

	h.cart.RemoveFromCart(r.Context(), id)
	writeData(w, r, http.StatusOK, h.view())
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.cart.Clear(r.Context())
	writeData(w, r, http.StatusOK, h.view())
}
