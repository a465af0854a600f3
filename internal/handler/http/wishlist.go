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

// WishlistHandler handles HTTP requests for wishlist endpoints.
type WishlistHandler struct {
	wishlist *service.WishlistStore
	catalog  *catalog.Catalog
	logger   *slog.Logger
}

// NewWishlistHandler creates a new wishlist HTTP handler.
func NewWishlistHandler(wishlist *service.WishlistStore, c *catalog.Catalog, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{wishlist: wishlist, catalog: c, logger: logger}
}

// AddWishlistItemRequest is the JSON request body for saving a product.
type AddWishlistItemRequest struct {
	ProductID int `json:"product_id" validate:"required,gt=0"`
}

// WishlistView is the wishlist payload.
type WishlistView struct {
	Items []domain.Product `json:"items"`
	Count int              `json:"count"`
}

// ToggleResult reports the state of a product after a toggle.
type ToggleResult struct {
	ProductID  int          `json:"product_id"`
	InWishlist bool         `json:"in_wishlist"`
	Wishlist   WishlistView `json:"wishlist"`
}

func (h *WishlistHandler) view() WishlistView {
	items := h.wishlist.Items()
	return WishlistView{Items: items, Count: len(items)}
}

// GetWishlist handles GET /api/v1/wishlist
func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	writeData(w, r, http.StatusOK, h.view())
}

// AddItem handles POST /api/v1/wishlist/items
func (h *WishlistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddWishlistItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		writeRequestError(w, r, err, h.logger)
		return
	}

	p, err := h.catalog.Get(req.ProductID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.wishlist.Add(r.Context(), p)
	writeData(w, r, http.StatusOK, h.view())
}

// ToggleItem handles POST /api/v1/wishlist/items/{productId}/toggle
func (h *WishlistHandler) ToggleItem(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, "product id", chi.URLParam(r, "productId"))
	if !ok {
		return
	}

	p, err := h.catalog.Get(id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	saved := h.wishlist.Toggle(r.Context(), p)
	writeData(w, r, http.StatusOK, ToggleResult{ProductID: id, InWishlist: saved, Wishlist: h.view()})
}

// RemoveItem handles DELETE /api/v1/wishlist/items/{productId}
func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.ParseID(w, "product id", chi.URLParam(r, "productId"))
	if !ok {
		return
	}

	h.wishlist.Remove(r.Context(), id)
	writeData(w, r, http.StatusOK, h.view())
}

// ClearWishlist handles DELETE /api/v1/wishlist
func (h *WishlistHandler) ClearWishlist(w http.ResponseWriter, r *http.Request) {
	h.wishlist.Clear(r.Context())
	writeData(w, r, http.StatusOK, h.view())
}
