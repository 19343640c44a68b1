package state

import (
	"github.com/utafrali/storefront/internal/domain"
)

// Reduce returns the state that results from applying a to s. It never
// mutates s; maps and slices are copied when they change. Unknown actions
// return s unchanged.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SessionStarted:
		if a.Token == "" {
			s.Session = Session{}
			return s
		}
		u := a.User
		s.Session = Session{User: &u, Token: a.Token, IsAuthenticated: true}

	case SessionCleared:
		s.Session = Session{}

	case RoleUpdated:
		if s.Session.User == nil {
			return s
		}
		u := *s.Session.User
		u.Role = a.Role
		s.Session.User = &u

	case CartReplaced:
		s.Cart = cartFromPayload(a.Payload)

	case CartCleared:
		s.Cart = Cart{Lines: map[string]Line{}}

	case CartMissing:
		s.Cart = Cart{Lines: map[string]Line{}}

	case WishlistLoaded:
		if s.Wishlist.Loaded {
			return s
		}
		ids := make([]string, 0, len(a.IDs))
		w := Wishlist{IDs: ids, Loaded: true}
		for _, id := range a.IDs {
			if id != "" && !w.Contains(id) {
				w.IDs = append(w.IDs, id)
			}
		}
		s.Wishlist = w

	case WishlistAdded:
		s.Wishlist = wishlistAdd(s.Wishlist, a.ID)

	case WishlistRemoved:
		s.Wishlist = wishlistRemove(s.Wishlist, a.ID)

	case WishlistToggled:
		if s.Wishlist.Contains(a.ID) {
			s.Wishlist = wishlistRemove(s.Wishlist, a.ID)
		} else {
			s.Wishlist = wishlistAdd(s.Wishlist, a.ID)
		}

	case WishlistCleared:
		s.Wishlist = Wishlist{IDs: []string{}}
	}
	return s
}

func wishlistAdd(w Wishlist, id string) Wishlist {
	if id == "" || w.Contains(id) {
		return w
	}
	ids := make([]string, len(w.IDs), len(w.IDs)+1)
	copy(ids, w.IDs)
	w.IDs = append(ids, id)
	return w
}

func wishlistRemove(w Wishlist, id string) Wishlist {
	if !w.Contains(id) {
		return w
	}
	ids := make([]string, 0, len(w.IDs)-1)
	for _, v := range w.IDs {
		if v != id {
			ids = append(ids, v)
		}
	}
	w.IDs = ids
	return w
}

// cartFromPayload builds the local cart from a server response. Lines with a
// non-positive quantity are dropped. The server total is authoritative; the
// sum of kept quantities is used only when the server sent none.
func cartFromPayload(p domain.CartPayload) Cart {
	c := Cart{Lines: make(map[string]Line, len(p.Items)), Exists: true}
	for _, it := range p.Items {
		if it.ProductID == "" || it.Quantity <= 0 {
			continue
		}
		c.Lines[it.ProductID] = Line{
			Quantity:      it.Quantity,
			SelectedColor: it.SelectedColor,
			SelectedSize:  it.SelectedSize,
		}
	}

	if p.Total != nil {
		c.Total = *p.Total
		return c
	}
	for _, l := range c.Lines {
		c.Total += l.Quantity
	}
	return c
}
