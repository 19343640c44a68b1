package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/httputil"
)

// CatalogHandler forwards the public catalog reads.
type CatalogHandler struct {
	catalog Catalog
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog HTTP handler.
func NewCatalogHandler(catalog Catalog, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
		logger:  logger,
	}
}

// ListCategories handles GET /api/v1/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.catalog.Categories(r.Context())
	writeResource(w, r, cats, err)
}

// ListProducts handles GET /api/v1/products
// Query parameters: category, search, store, page, limit.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := intParam(q.Get("page"), "page")
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	limit, err := intParam(q.Get("limit"), "limit")
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	products, err := h.catalog.Products(r.Context(), domain.ProductQuery{
		Category: q.Get("category"),
		Search:   q.Get("search"),
		StoreID:  q.Get("store"),
		Page:     page,
		Limit:    limit,
	})
	writeResource(w, r, products, err)
}

// GetProduct handles GET /api/v1/products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := httputil.PathParam(w, chi.URLParam(r, "id"), "id")
	if !ok {
		return
	}

	p, err := h.catalog.Product(r.Context(), id)
	writeResource(w, r, p, err)
}

// intParam parses an optional non-negative query integer.
func intParam(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, apperrors.InvalidInput(name + " must be a non-negative integer")
	}
	return n, nil
}
