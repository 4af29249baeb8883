package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/internal/service"
	"github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/pkg/httputil"
	"github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/pkg/validator"
)

// CartHandler handles HTTP requests for cart endpoints.
type CartHandler struct {
	service *service.CartService
	logger  *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(svc *service.CartService, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// AddItemRequest is the JSON request body for adding an item to the cart.
// The price is taken from the catalog, not from the client.
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required,max=64"`
	Variant   string `json:"variant" validate:"max=16"`
	Quantity  int    `json:"quantity" validate:"required,gte=1,lte=99"`
}

// UpdateQuantityRequest is the JSON request body for setting a line's
// quantity. Zero or less removes the line.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required,lte=99"`
}

// --- Handlers ---

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.service.GetCart(r.Context(), sessionID(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, cart)
}

// GetTotals handles GET /api/v1/cart/totals
func (h *CartHandler) GetTotals(w http.ResponseWriter, r *http.Request) {
	totals, err := h.service.Totals(r.Context(), sessionID(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, totals)
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	cart, err := h.service.AddItem(r.Context(), sessionID(r), service.AddItemInput{
		ProductID: req.ProductID,
		Variant:   req.Variant,
		Quantity:  req.Quantity,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, cart)
}

// UpdateItemQuantity handles PUT /api/v1/cart/items/{productId}?variant=
func (h *CartHandler) UpdateItemQuantity(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuantityRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	productID, variant := lineKey(r)
	cart, err := h.service.UpdateQuantity(r.Context(), sessionID(r), productID, variant, *req.Quantity)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, cart)
}

// RemoveItem handles DELETE /api/v1/cart/items/{productId}?variant=
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, variant := lineKey(r)
	cart, err := h.service.RemoveItem(r.Context(), sessionID(r), productID, variant)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, cart)
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	cart, err := h.service.Clear(r.Context(), sessionID(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, cart)
}

// OpenCart handles POST /api/v1/cart/open
func (h *CartHandler) OpenCart(w http.ResponseWriter, r *http.Request) {
	h.visibility(w, r, h.service.Open)
}

// CloseCart handles POST /api/v1/cart/close
func (h *CartHandler) CloseCart(w http.ResponseWriter, r *http.Request) {
	h.visibility(w, r, h.service.Close)
}

// ToggleCart handles POST /api/v1/cart/toggle
func (h *CartHandler) ToggleCart(w http.ResponseWriter, r *http.Request) {
	h.visibility(w, r, h.service.Toggle)
}

func (h *CartHandler) visibility(w http.ResponseWriter, r *http.Request, op func(context.Context, string) (service.CartView, error)) {
	cart, err := op(r.Context(), sessionID(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, cart)
}

// lineKey reads the line identity from the path and the variant query parameter.
func lineKey(r *http.Request) (productID, variant string) {
	return chi.URLParam(r, "productId"), r.URL.Query().Get("variant")
}
