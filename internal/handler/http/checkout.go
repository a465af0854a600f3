package http

import (
	"log/slog"
	"net/http"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/pkg/validator"
)

// CheckoutHandler handles HTTP requests for checkout endpoints.
type CheckoutHandler struct {
	checkout *service.CheckoutService
	logger   *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(checkout *service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout, logger: logger}
}

// GetSummary handles GET /api/v1/checkout/summary
func (h *CheckoutHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	writeData(w, r, http.StatusOK, h.checkout.Summary())
}

// PlaceOrder handles POST /api/v1/checkout
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req domain.CheckoutDetails
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		writeRequestError(w, r, err, h.logger)
		return
	}

	order, err := h.checkout.PlaceOrder(r.Context(), req)
	if err != nil {
		writeRequestError(w, r, err, h.logger)
		return
	}

	writeData(w, r, http.StatusCreated, order)
}
