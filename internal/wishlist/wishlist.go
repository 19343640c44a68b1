// Package wishlist is the in-memory wishlist container. It holds product ids
// only and never talks to the API.
package wishlist

import (
	"github.com/utafrali/storefront/internal/state"
)

// Container reads and mutates the wishlist part of the application state.
type Container struct {
	store *state.Store
}

// NewContainer creates a wishlist container over store.
func NewContainer(store *state.Store) *Container {
	return &Container{store: store}
}

// Load populates the wishlist on first use. Later calls are ignored until
// Clear runs.
func (c *Container) Load(ids []string) []string {
	return c.store.Dispatch(state.WishlistLoaded{IDs: ids}).Wishlist.Items()
}

// Add appends id unless it is already present.
func (c *Container) Add(id string) []string {
	return c.store.Dispatch(state.WishlistAdded{ID: id}).Wishlist.Items()
}

// Remove drops id if present.
func (c *Container) Remove(id string) []string {
	return c.store.Dispatch(state.WishlistRemoved{ID: id}).Wishlist.Items()
}

// Toggle adds id when absent and removes it otherwise. It reports whether id
// is on the wishlist afterwards.
func (c *Container) Toggle(id string) bool {
	return c.store.Dispatch(state.WishlistToggled{ID: id}).Wishlist.Contains(id)
}

func (c *Container) Clear() {
	c.store.Dispatch(state.WishlistCleared{})
}

func (c *Container) Contains(id string) bool {
	return c.store.Snapshot().Wishlist.Contains(id)
}

// Items returns the ids in insertion order.
func (c *Container) Items() []string {
	return c.store.Snapshot().Wishlist.Items()
}

func (c *Container) Count() int {
	return c.store.Snapshot().Wishlist.Count()
}
