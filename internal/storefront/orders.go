package storefront

import (
	"context"
	"net/http"
	"net/url"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/pkg/validator"
)

// CreateOrder places an order for the session's cart.
func (cl *Client) CreateOrder(ctx context.Context, in domain.NewOrder) (domain.Order, error) {
	if err := validator.Input(in); err != nil {
		return domain.Order{}, err
	}
	return cl.order(ctx, call{
		method:   http.MethodPost,
		path:     "/api/createOrder",
		body:     in,
		auth:     authRequired,
		rejected: "could not place order",
	})
}

// MyOrders lists the orders of the session's user.
func (cl *Client) MyOrders(ctx context.Context) ([]domain.Order, error) {
	return cl.orders(ctx, call{
		method:   http.MethodGet,
		path:     "/api/orders/getUserOrders",
		auth:     authRequired,
		rejected: "could not load orders",
	})
}

// StoreOrders lists the orders placed with the session's store.
func (cl *Client) StoreOrders(ctx context.Context) ([]domain.Order, error) {
	return cl.orders(ctx, call{
		method:   http.MethodGet,
		path:     "/api/store/orders",
		auth:     authRequired,
		rejected: "could not load store orders",
	})
}

// SetOrderStatus changes an order status as an administrator.
func (cl *Client) SetOrderStatus(ctx context.Context, orderID string, in domain.AdminStatusUpdate) (domain.Order, error) {
	if err := validator.Input(in); err != nil {
		return domain.Order{}, err
	}
	return cl.order(ctx, call{
		method:   http.MethodPut,
		path:     "/api/" + url.PathEscape(orderID) + "/status",
		body:     in,
		auth:     authRequired,
		rejected: "could not update order status",
	})
}

// SetStoreOrderStatus changes an order status as the merchant.
func (cl *Client) SetStoreOrderStatus(ctx context.Context, orderID string, in domain.StoreStatusUpdate) (domain.Order, error) {
	if err := validator.Input(in); err != nil {
		return domain.Order{}, err
	}
	return cl.order(ctx, call{
		method:   http.MethodPut,
		path:     "/api/store/order/" + url.PathEscape(orderID) + "/status",
		body:     in,
		auth:     authRequired,
		rejected: "could not update order status",
	})
}

// SuccessfulOrders lists the store's completed orders.
func (cl *Client) SuccessfulOrders(ctx context.Context) ([]domain.Order, error) {
	return cl.orders(ctx, call{
		method:   http.MethodGet,
		path:     "/api/store/orders/successful",
		auth:     authRequired,
		timeout:  cl.detailTimeout,
		rejected: "could not load successful orders",
	})
}

// SuccessfulOrder fetches one completed order of the store.
func (cl *Client) SuccessfulOrder(ctx context.Context, orderID string) (domain.Order, error) {
	return cl.order(ctx, call{
		method:   http.MethodGet,
		path:     "/api/store/orders/successful/" + url.PathEscape(orderID),
		auth:     authRequired,
		timeout:  cl.detailTimeout,
		rejected: "could not load order",
	})
}

// Invoices lists the store's invoices.
func (cl *Client) Invoices(ctx context.Context) ([]domain.Invoice, error) {
	const path = "/api/store/invoices"
	body, err := cl.do(ctx, call{
		method:   http.MethodGet,
		path:     path,
		auth:     authRequired,
		rejected: "could not load invoices",
	})
	if err != nil {
		return nil, err
	}
	out := []domain.Invoice{}
	if err := decodeField(path, body, &out, "invoices", "data"); err != nil {
		return nil, err
	}
	return out, nil
}

// Invoice fetches the invoice of one order.
func (cl *Client) Invoice(ctx context.Context, orderID string) (domain.Invoice, error) {
	path := "/api/store/invoice/" + url.PathEscape(orderID)
	body, err := cl.do(ctx, call{
		method:   http.MethodGet,
		path:     path,
		auth:     authRequired,
		timeout:  cl.detailTimeout,
		rejected: "could not load invoice",
	})
	if err != nil {
		return domain.Invoice{}, err
	}
	var inv domain.Invoice
	if err := decodeOne(path, body, &inv, "invoice", "data"); err != nil {
		return domain.Invoice{}, err
	}
	return inv, nil
}

func (cl *Client) order(ctx context.Context, c call) (domain.Order, error) {
	body, err := cl.do(ctx, c)
	if err != nil {
		return domain.Order{}, err
	}
	var o domain.Order
	if err := decodeOne(c.path, body, &o, "order", "data"); err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

func (cl *Client) orders(ctx context.Context, c call) ([]domain.Order, error) {
	body, err := cl.do(ctx, c)
	if err != nil {
		return nil, err
	}
	out := []domain.Order{}
	if err := decodeField(c.path, body, &out, "orders", "data"); err != nil {
		return nil, err
	}
	return out, nil
}
