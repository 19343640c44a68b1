package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/pkg/httputil"
)

// OrderHandler handles checkout and the order listings of every role.
type OrderHandler struct {
	orders Orders
	cart   Carts
	logger *slog.Logger
}

// NewOrderHandler creates a new order HTTP handler.
func NewOrderHandler(orders Orders, cart Carts, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		cart:   cart,
		logger: logger,
	}
}

// CreateOrder handles POST /api/v1/orders. The local cart is cleared once the
// server has accepted the order.
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req domain.NewOrder
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	order, err := h.orders.CreateOrder(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	h.cart.Clear()

	h.logger.InfoContext(r.Context(), "order placed", slog.String("order_id", order.ID))
	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: order})
}

// MyOrders handles GET /api/v1/orders
func (h *OrderHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.MyOrders(r.Context())
	writeResource(w, r, orders, err)
}

// StoreOrders handles GET /api/v1/store/orders
func (h *OrderHandler) StoreOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.StoreOrders(r.Context())
	writeResource(w, r, orders, err)
}

// SetStoreOrderStatus handles PUT /api/v1/store/orders/{orderId}/status
func (h *OrderHandler) SetStoreOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, ok := httputil.PathParam(w, chi.URLParam(r, "orderId"), "orderId")
	if !ok {
		return
	}

	var req domain.StoreStatusUpdate
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	order, err := h.orders.SetStoreOrderStatus(r.Context(), orderID, req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: order})
}

// SetOrderStatus handles PUT /api/v1/admin/orders/{orderId}/status
func (h *OrderHandler) SetOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, ok := httputil.PathParam(w, chi.URLParam(r, "orderId"), "orderId")
	if !ok {
		return
	}

	var req domain.AdminStatusUpdate
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	order, err := h.orders.SetOrderStatus(r.Context(), orderID, req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: order})
}

// SuccessfulOrders handles GET /api/v1/store/orders/successful
func (h *OrderHandler) SuccessfulOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.SuccessfulOrders(r.Context())
	writeResource(w, r, orders, err)
}

// SuccessfulOrder handles GET /api/v1/store/orders/successful/{orderId}
func (h *OrderHandler) SuccessfulOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := httputil.PathParam(w, chi.URLParam(r, "orderId"), "orderId")
	if !ok {
		return
	}
	order, err := h.orders.SuccessfulOrder(r.Context(), orderID)
	writeResource(w, r, order, err)
}

// Invoices handles GET /api/v1/store/invoices
func (h *OrderHandler) Invoices(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.orders.Invoices(r.Context())
	writeResource(w, r, invoices, err)
}

// Invoice handles GET /api/v1/store/invoices/{orderId}
func (h *OrderHandler) Invoice(w http.ResponseWriter, r *http.Request) {
	orderID, ok := httputil.PathParam(w, chi.URLParam(r, "orderId"), "orderId")
	if !ok {
		return
	}
	invoice, err := h.orders.Invoice(r.Context(), orderID)
	writeResource(w, r, invoice, err)
}
