package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/state"
	"github.com/utafrali/storefront/pkg/httputil"
)

// CartHandler handles the cart endpoints.
type CartHandler struct {
	cart   Carts
	logger *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(cart Carts, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		cart:   cart,
		logger: logger,
	}
}

// --- Request DTOs ---

// SetItemRequest sets the absolute quantity of a line.
type SetItemRequest struct {
	ProductID     string `json:"productId" validate:"required"`
	Quantity      int    `json:"quantity" validate:"required,gte=1"`
	SelectedColor string `json:"selectedColor"`
	SelectedSize  string `json:"selectedSize"`
}

// IncrementRequest moves a line's quantity by Delta. Color and size default
// to the line's current selection.
type IncrementRequest struct {
	Delta         int    `json:"delta" validate:"required"`
	SelectedColor string `json:"selectedColor"`
	SelectedSize  string `json:"selectedSize"`
}

// CartView is the cart as rendered to the UI.
type CartView struct {
	Items  []domain.CartItem `json:"items"`
	Total  int               `json:"total"`
	Exists bool              `json:"exists"`
}

// IsEmpty reports whether the cart has no lines.
func (c CartView) IsEmpty() bool { return len(c.Items) == 0 }

func newCartView(c state.Cart) CartView {
	return CartView{Items: c.Items(), Total: c.Total, Exists: c.Exists}
}

// --- Handlers ---

// GetCart handles GET /api/v1/cart. It refreshes the local cart from the
// server; ?local=true renders the local mirror without a request.
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("local") == "true" {
		writeResource(w, r, newCartView(h.cart.Snapshot()), nil)
		return
	}

	c, err := h.cart.Fetch(r.Context())
	writeResource(w, r, newCartView(c), err)
}

// SetItem handles POST /api/v1/cart/items
func (h *CartHandler) SetItem(w http.ResponseWriter, r *http.Request) {
	var req SetItemRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	c, err := h.cart.AddOrSetQuantity(r.Context(), req.ProductID, req.Quantity, req.SelectedColor, req.SelectedSize)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newCartView(c)})
}

// Increment handles POST /api/v1/cart/items/{productId}/increment
func (h *CartHandler) Increment(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.PathParam(w, chi.URLParam(r, "productId"), "productId")
	if !ok {
		return
	}

	var req IncrementRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	c, err := h.cart.Increment(r.Context(), productID, req.Delta, req.SelectedColor, req.SelectedSize)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newCartView(c)})
}

// RemoveItem handles DELETE /api/v1/cart/items/{productId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := httputil.PathParam(w, chi.URLParam(r, "productId"), "productId")
	if !ok {
		return
	}

	c, err := h.cart.RemoveItem(r.Context(), productID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newCartView(c)})
}

// ClearCart handles DELETE /api/v1/cart. Only the local mirror is reset.
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	c := h.cart.Clear()
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newCartView(c)})
}
