package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// CartItem is one line of the server cart after normalization.
type CartItem struct {
	ProductID     string `json:"productId"`
	Quantity      int    `json:"quantity"`
	SelectedColor string `json:"selectedColor,omitempty"`
	SelectedSize  string `json:"selectedSize,omitempty"`
}

// CartPayload is the normalized cart carried by a cart endpoint response.
// Total is nil when the server did not report one.
type CartPayload struct {
	Items []CartItem
	Total *int
}

type wireCartItem struct {
	ProductID     json.RawMessage `json:"productId"`
	Product       json.RawMessage `json:"product"`
	Quantity      FlexInt         `json:"quantity"`
	SelectedColor string          `json:"selectedColor"`
	SelectedSize  string          `json:"selectedSize"`
}

func (w wireCartItem) normalize(fallbackID string) CartItem {
	id := ParseID(w.ProductID)
	if id == "" {
		id = ParseID(w.Product)
	}
	if id == "" {
		id = fallbackID
	}
	return CartItem{
		ProductID:     id,
		Quantity:      int(w.Quantity),
		SelectedColor: w.SelectedColor,
		SelectedSize:  w.SelectedSize,
	}
}

// DecodeCartItems accepts the item list as an array of lines or as an object
// keyed by product id whose values are either a line or a bare quantity.
// Lines without a product id are dropped. Map input is returned in key order.
func DecodeCartItems(raw json.RawMessage) ([]CartItem, error) {
	if isEmptyJSON(raw) {
		return []CartItem{}, nil
	}

	var list []wireCartItem
	if err := json.Unmarshal(raw, &list); err == nil {
		items := make([]CartItem, 0, len(list))
		for _, w := range list {
			if it := w.normalize(""); it.ProductID != "" {
				items = append(items, it)
			}
		}
		return items, nil
	}

	var byID map[string]json.RawMessage
	if err := json.Unmarshal(raw, &byID); err != nil {
		return nil, fmt.Errorf("decode cart items: unsupported shape")
	}

	keys := make([]string, 0, len(byID))
	for k := range byID {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	items := make([]CartItem, 0, len(byID))
	for _, id := range keys {
		if v := byID[id]; len(v) > 0 && v[0] != '{' {
			qty, err := bareQuantity(v)
			if err != nil {
				return nil, fmt.Errorf("decode cart item %s: %w", id, err)
			}
			items = append(items, CartItem{ProductID: id, Quantity: qty})
			continue
		}
		var w wireCartItem
		if err := json.Unmarshal(byID[id], &w); err != nil {
			return nil, fmt.Errorf("decode cart item %s: %w", id, err)
		}
		items = append(items, w.normalize(id))
	}
	return items, nil
}

// bareQuantity reads a map value that is a quantity instead of a line object:
// a JSON number, a numeric string or null.
func bareQuantity(v json.RawMessage) (int, error) {
	var x any
	if err := json.Unmarshal(v, &x); err != nil {
		return 0, err
	}
	switch q := x.(type) {
	case nil:
		return 0, nil
	case float64:
		return int(q), nil
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(q), 64)
		if err != nil {
			return 0, fmt.Errorf("quantity %q is not a number", q)
		}
		return int(n), nil
	}
	return 0, fmt.Errorf("quantity must be a number, got %s", string(v))
}

type wireCart struct {
	Items         json.RawMessage `json:"items"`
	Total         *FlexInt        `json:"total"`
	TotalQuantity *FlexInt        `json:"totalQuantity"`
	TotalItems    *FlexInt        `json:"totalItems"`
}

func (w wireCart) total() *int {
	for _, t := range []*FlexInt{w.Total, w.TotalQuantity, w.TotalItems} {
		if t != nil {
			n := int(*t)
			return &n
		}
	}
	return nil
}

// DecodeCart reads a cart response body. The cart may be at the top level or
// nested under "cart"; a total at the top level wins over a nested one.
func DecodeCart(body []byte) (CartPayload, error) {
	var top struct {
		wireCart
		Cart *wireCart `json:"cart"`
	}
	if err := json.Unmarshal(body, &top); err != nil {
		return CartPayload{}, fmt.Errorf("decode cart: %w", err)
	}

	src := top.wireCart
	total := src.total()
	if top.Cart != nil && isEmptyJSON(src.Items) {
		src = *top.Cart
		if total == nil {
			total = src.total()
		}
	}

	items, err := DecodeCartItems(src.Items)
	if err != nil {
		return CartPayload{}, err
	}
	return CartPayload{Items: items, Total: total}, nil
}
