package storefront

import (
	"context"
	"fmt"
	"net/http"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// Cart endpoints.
const (
	pathMyCart     = "/api/myCart/my"
	pathCreateCart = "/api/createCart"
	pathAddToCart  = "/api/addToCart"
	pathUpdateCart = "/api/updateCart"
)

// GetCart fetches the session's cart. A missing cart is an ErrNotFound error.
func (cl *Client) GetCart(ctx context.Context) (domain.CartPayload, error) {
	return cl.cartCall(ctx, call{
		method:   http.MethodGet,
		path:     pathMyCart,
		rejected: "could not load cart",
	})
}

// CreateCart creates an empty cart for the session.
func (cl *Client) CreateCart(ctx context.Context) (domain.CartPayload, error) {
	return cl.cartCall(ctx, call{
		method:   http.MethodPost,
		path:     pathCreateCart,
		body:     map[string]any{"items": []domain.CartItem{}},
		rejected: "could not create cart",
	})
}

// AddToCart sets the absolute quantity of a product in the cart.
func (cl *Client) AddToCart(ctx context.Context, item domain.CartItem) (domain.CartPayload, error) {
	return cl.cartCall(ctx, call{
		method:   http.MethodPatch,
		path:     pathAddToCart,
		body:     item,
		rejected: "could not add item to cart",
	})
}

// UpdateCart changes a line of the cart; quantity 0 removes it.
func (cl *Client) UpdateCart(ctx context.Context, item domain.CartItem) (domain.CartPayload, error) {
	return cl.cartCall(ctx, call{
		method:   http.MethodPatch,
		path:     pathUpdateCart,
		body:     item,
		rejected: "could not update cart",
	})
}

func (cl *Client) cartCall(ctx context.Context, c call) (domain.CartPayload, error) {
	c.auth = authRequired
	body, err := cl.do(ctx, c)
	if err != nil {
		return domain.CartPayload{}, err
	}
	payload, err := domain.DecodeCart(body)
	if err != nil {
		return domain.CartPayload{}, apperrors.Internal(fmt.Errorf("%s: %w", c.path, err))
	}
	return payload, nil
}
