// Package cart keeps the local mirror of the server cart. Every mutation is
// confirmed by the API before the local state changes.
package cart

import (
	"context"
	"errors"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/state"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// wholeCart is the latch key of operations on the cart as a whole.
const wholeCart = "cart"

var inFlightRejections = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "storefront_cart_inflight_rejections_total",
		Help: "Cart operations refused because the same operation was still in flight",
	},
	[]string{"operation"},
)

// API is the part of the storefront API the cart talks to.
type API interface {
	GetCart(ctx context.Context) (domain.CartPayload, error)
	CreateCart(ctx context.Context) (domain.CartPayload, error)
	AddToCart(ctx context.Context, item domain.CartItem) (domain.CartPayload, error)
	UpdateCart(ctx context.Context, item domain.CartItem) (domain.CartPayload, error)
}

// Container runs cart operations against the API and applies confirmed
// results to the application state.
type Container struct {
	api    API
	store  *state.Store
	latch  *Latch
	logger *slog.Logger
}

// NewContainer creates a cart container.
func NewContainer(api API, store *state.Store, logger *slog.Logger) *Container {
	return &Container{
		api:    api,
		store:  store,
		latch:  NewLatch(),
		logger: logger,
	}
}

// Snapshot returns the local cart.
func (c *Container) Snapshot() state.Cart {
	return c.store.Snapshot().Cart
}

// Fetch replaces the local cart with the server cart. A server without a cart
// for the session leaves an empty local cart marked as not existing.
func (c *Container) Fetch(ctx context.Context) (state.Cart, error) {
	release, err := c.acquire(wholeCart, "fetch")
	if err != nil {
		return state.Cart{}, err
	}
	defer release()

	payload, err := c.api.GetCart(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.logger.DebugContext(ctx, "no server cart for session")
			return c.store.Dispatch(state.CartMissing{}).Cart, nil
		}
		return state.Cart{}, err
	}
	return c.store.Dispatch(state.CartReplaced{Payload: payload}).Cart, nil
}

// CreateEmpty creates an empty server cart and mirrors it.
func (c *Container) CreateEmpty(ctx context.Context) (state.Cart, error) {
	release, err := c.acquire(wholeCart, "create")
	if err != nil {
		return state.Cart{}, err
	}
	defer release()

	payload, err := c.api.CreateCart(ctx)
	if err != nil {
		return state.Cart{}, err
	}
	return c.store.Dispatch(state.CartReplaced{Payload: payload}).Cart, nil
}

// AddOrSetQuantity sets the absolute quantity of a product, creating the
// server cart first when none is known to exist.
func (c *Container) AddOrSetQuantity(ctx context.Context, productID string, quantity int, color, size string) (state.Cart, error) {
	if productID == "" {
		return state.Cart{}, apperrors.InvalidInput("product id is required")
	}
	if quantity <= 0 {
		return state.Cart{}, apperrors.InvalidInput("quantity must be greater than 0")
	}

	release, err := c.acquire(productID, "set_quantity")
	if err != nil {
		return state.Cart{}, err
	}
	defer release()

	return c.setQuantity(ctx, domain.CartItem{
		ProductID:     productID,
		Quantity:      quantity,
		SelectedColor: color,
		SelectedSize:  size,
	})
}

// Increment moves a line's quantity by delta from its local value. A result
// of zero or less removes the line.
func (c *Container) Increment(ctx context.Context, productID string, delta int, color, size string) (state.Cart, error) {
	if productID == "" {
		return state.Cart{}, apperrors.InvalidInput("product id is required")
	}

	release, err := c.acquire(productID, "increment")
	if err != nil {
		return state.Cart{}, err
	}
	defer release()

	line, _ := c.Snapshot().Line(productID)
	if color == "" {
		color = line.SelectedColor
	}
	if size == "" {
		size = line.SelectedSize
	}

	target := line.Quantity + delta
	if target <= 0 {
		if line.Quantity == 0 {
			return c.Snapshot(), nil
		}
		return c.remove(ctx, productID)
	}
	return c.setQuantity(ctx, domain.CartItem{
		ProductID:     productID,
		Quantity:      target,
		SelectedColor: color,
		SelectedSize:  size,
	})
}

// RemoveItem deletes a product's line from the server cart.
func (c *Container) RemoveItem(ctx context.Context, productID string) (state.Cart, error) {
	if productID == "" {
		return state.Cart{}, apperrors.InvalidInput("product id is required")
	}

	release, err := c.acquire(productID, "remove")
	if err != nil {
		return state.Cart{}, err
	}
	defer release()

	return c.remove(ctx, productID)
}

// Clear empties the local cart without calling the API. Used after an order
// is placed and on logout.
func (c *Container) Clear() state.Cart {
	return c.store.Dispatch(state.CartCleared{}).Cart
}

func (c *Container) setQuantity(ctx context.Context, item domain.CartItem) (state.Cart, error) {
	if !c.Snapshot().Exists {
		if err := c.ensureCart(ctx); err != nil {
			return state.Cart{}, err
		}
	}

	payload, err := c.api.AddToCart(ctx, item)
	if err != nil {
		return state.Cart{}, err
	}
	return c.store.Dispatch(state.CartReplaced{Payload: payload}).Cart, nil
}

func (c *Container) remove(ctx context.Context, productID string) (state.Cart, error) {
	payload, err := c.api.UpdateCart(ctx, domain.CartItem{ProductID: productID, Quantity: 0})
	if err != nil {
		return state.Cart{}, err
	}
	return c.store.Dispatch(state.CartReplaced{Payload: payload}).Cart, nil
}

// ensureCart creates the server cart. A conflict means the server already has
// one, which is what the caller needs.
func (c *Container) ensureCart(ctx context.Context) error {
	payload, err := c.api.CreateCart(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			c.logger.DebugContext(ctx, "server cart already exists")
			return nil
		}
		return err
	}
	c.store.Dispatch(state.CartReplaced{Payload: payload})
	return nil
}

func (c *Container) acquire(key, op string) (func(), error) {
	release, ok := c.latch.Acquire(key)
	if !ok {
		inFlightRejections.WithLabelValues(op).Inc()
		c.logger.Debug("cart operation already in flight",
			slog.String("operation", op),
			slog.String("key", key),
		)
		return nil, apperrors.InFlight()
	}
	return release, nil
}
