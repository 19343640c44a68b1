// Package state holds the single application state and the pure reducers
// that are the only way to change it.
package state

import (
	"sort"

	"github.com/utafrali/storefront/internal/domain"
)

// Session is the locally cached credential. IsAuthenticated is true exactly
// when both User and Token are set.
type Session struct {
	User            *domain.User `json:"user"`
	Token           string       `json:"-"`
	IsAuthenticated bool         `json:"isAuthenticated"`
}

// Line is the local view of one cart line.
type Line struct {
	Quantity      int    `json:"quantity"`
	SelectedColor string `json:"selectedColor,omitempty"`
	SelectedSize  string `json:"selectedSize,omitempty"`
}

// Cart mirrors the server cart. Every line has a positive quantity. Exists is
// false until the server has confirmed a cart for the session.
type Cart struct {
	Lines  map[string]Line `json:"lines"`
	Total  int             `json:"total"`
	Exists bool            `json:"exists"`
}

// Line returns the line for productID, if any.
func (c Cart) Line(productID string) (Line, bool) {
	l, ok := c.Lines[productID]
	return l, ok
}

// Items returns the lines as cart items ordered by product id.
func (c Cart) Items() []domain.CartItem {
	items := make([]domain.CartItem, 0, len(c.Lines))
	for id, l := range c.Lines {
		items = append(items, domain.CartItem{
			ProductID:     id,
			Quantity:      l.Quantity,
			SelectedColor: l.SelectedColor,
			SelectedSize:  l.SelectedSize,
		})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })
	return items
}

// Wishlist is an insertion-ordered set of product ids.
type Wishlist struct {
	IDs    []string `json:"items"`
	Loaded bool     `json:"-"`
}

// Contains reports whether id is on the wishlist.
func (w Wishlist) Contains(id string) bool {
	for _, v := range w.IDs {
		if v == id {
			return true
		}
	}
	return false
}

// Items returns a copy of the ids in insertion order.
func (w Wishlist) Items() []string {
	out := make([]string, len(w.IDs))
	copy(out, w.IDs)
	return out
}

// Count returns the number of ids on the wishlist.
func (w Wishlist) Count() int {
	return len(w.IDs)
}

// State is the whole application state. Values handed out by a Store are
// snapshots and must not be mutated.
type State struct {
	Session  Session  `json:"session"`
	Cart     Cart     `json:"cart"`
	Wishlist Wishlist `json:"wishlist"`
}

// Initial returns the state of a fresh process before any session is restored.
func Initial() State {
	return State{
		Cart:     Cart{Lines: map[string]Line{}},
		Wishlist: Wishlist{IDs: []string{}},
	}
}
