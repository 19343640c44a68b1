package state

import (
	"github.com/utafrali/storefront/internal/domain"
)

// Action is a tagged state mutation applied by Reduce.
type Action interface {
	Kind() string
}

// SessionStarted replaces the session wholesale.
type SessionStarted struct {
	User  domain.User
	Token string
}

// SessionCleared resets the session to logged out.
type SessionCleared struct{}

// RoleUpdated patches only the role of the current user.
type RoleUpdated struct {
	Role string
}

// CartReplaced replaces the cart with a server-confirmed payload.
type CartReplaced struct {
	Payload domain.CartPayload
}

// CartCleared empties the local cart without touching the server.
type CartCleared struct{}

// CartMissing records that the server has no cart for the session.
type CartMissing struct{}

// WishlistLoaded performs the initial population of the wishlist.
type WishlistLoaded struct {
	IDs []string
}

// WishlistAdded adds a product id to the wishlist.
type WishlistAdded struct {
	ID string
}

// WishlistRemoved removes a product id from the wishlist.
type WishlistRemoved struct {
	ID string
}

// WishlistToggled adds a product id when absent and removes it otherwise.
type WishlistToggled struct {
	ID string
}

// WishlistCleared empties the wishlist.
type WishlistCleared struct{}

func (SessionStarted) Kind() string  { return "session/started" }
func (SessionCleared) Kind() string  { return "session/cleared" }
func (RoleUpdated) Kind() string     { return "session/role_updated" }
func (CartReplaced) Kind() string    { return "cart/replaced" }
func (CartCleared) Kind() string     { return "cart/cleared" }
func (CartMissing) Kind() string     { return "cart/missing" }
func (WishlistLoaded) Kind() string  { return "wishlist/loaded" }
func (WishlistAdded) Kind() string   { return "wishlist/added" }
func (WishlistRemoved) Kind() string { return "wishlist/removed" }
func (WishlistToggled) Kind() string { return "wishlist/toggled" }
func (WishlistCleared) Kind() string { return "wishlist/cleared" }
