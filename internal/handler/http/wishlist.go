package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/storefront/pkg/httputil"
)

// WishlistHandler handles the wishlist endpoints. The wishlist lives only in
// the application state.
type WishlistHandler struct {
	wishlist Wishlists
	logger   *slog.Logger
}

// NewWishlistHandler creates a new wishlist HTTP handler.
func NewWishlistHandler(wishlist Wishlists, logger *slog.Logger) *WishlistHandler {
	return &WishlistHandler{
		wishlist: wishlist,
		logger:   logger,
	}
}

// LoadWishlistRequest is the initial population of the wishlist.
type LoadWishlistRequest struct {
	Items []string `json:"items" validate:"dive,required"`
}

type wishlistView struct {
	Items []string `json:"items"`
	Count int      `json:"count"`
}

type toggleView struct {
	ProductID string `json:"productId"`
	Wished    bool   `json:"wished"`
}

func newWishlistView(ids []string) wishlistView {
	return wishlistView{Items: ids, Count: len(ids)}
}

// GetWishlist handles GET /api/v1/wishlist
func (h *WishlistHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	writeResource(w, r, h.wishlist.Items(), nil)
}

// LoadWishlist handles PUT /api/v1/wishlist. Only the first load after a
// clear takes effect.
func (h *WishlistHandler) LoadWishlist(w http.ResponseWriter, r *http.Request) {
	var req LoadWishlistRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newWishlistView(h.wishlist.Load(req.Items))})
}

// Contains handles GET /api/v1/wishlist/{productId}
func (h *WishlistHandler) Contains(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.PathParam(w, chi.URLParam(r, "productId"), "productId")
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: toggleView{ProductID: id, Wished: h.wishlist.Contains(id)}})
}

// AddItem handles PUT /api/v1/wishlist/{productId}
func (h *WishlistHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.PathParam(w, chi.URLParam(r, "productId"), "productId")
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newWishlistView(h.wishlist.Add(id))})
}

// RemoveItem handles DELETE /api/v1/wishlist/{productId}
func (h *WishlistHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.PathParam(w, chi.URLParam(r, "productId"), "productId")
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: newWishlistView(h.wishlist.Remove(id))})
}

// Toggle handles POST /api/v1/wishlist/{productId}/toggle
func (h *WishlistHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.PathParam(w, chi.URLParam(r, "productId"), "productId")
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: toggleView{ProductID: id, Wished: h.wishlist.Toggle(id)}})
}

// ClearWishlist handles DELETE /api/v1/wishlist
func (h *WishlistHandler) ClearWishlist(w http.ResponseWriter, r *http.Request) {
	h.wishlist.Clear()
	w.WriteHeader(http.StatusNoContent)
}
