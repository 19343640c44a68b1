package storefront

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/pkg/validator"
)

// Categories lists the catalog categories. No session is required.
func (cl *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	const path = "/api/getAllCategories"
	body, err := cl.do(ctx, call{
		method:   http.MethodGet,
		path:     path,
		auth:     authOptional,
		rejected: "could not load categories",
	})
	if err != nil {
		return nil, err
	}

	cats := []domain.Category{}
	if err := decodeField(path, body, &cats, "categories", "data"); err != nil {
		return nil, err
	}
	return cats, nil
}

// Products lists one page of products. No session is required.
func (cl *Client) Products(ctx context.Context, q domain.ProductQuery) (domain.ProductPage, error) {
	const path = "/api/get/products"
	if err := validator.Input(q); err != nil {
		return domain.ProductPage{}, err
	}

	params := url.Values{}
	if q.Category != "" {
		params.Set("category", q.Category)
	}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.StoreID != "" {
		params.Set("store", q.StoreID)
	}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	body, err := cl.do(ctx, call{
		method:   http.MethodGet,
		path:     path,
		query:    params,
		auth:     authOptional,
		rejected: "could not load products",
	})
	if err != nil {
		return domain.ProductPage{}, err
	}

	page := domain.ProductPage{Products: []domain.Product{}}
	if err := decodeField(path, body, &page.Products, "products", "data"); err != nil {
		return domain.ProductPage{}, err
	}

	var meta struct {
		Total      domain.FlexInt `json:"total"`
		Page       domain.FlexInt `json:"page"`
		TotalPages domain.FlexInt `json:"totalPages"`
	}
	if isObject(body) {
		if err := decode(path, body, &meta); err != nil {
			return domain.ProductPage{}, err
		}
	}
	page.Total = int(meta.Total)
	if page.Total == 0 {
		page.Total = len(page.Products)
	}
	page.Page = max(int(meta.Page), 1)
	page.TotalPages = max(int(meta.TotalPages), 1)
	return page, nil
}

// Product fetches one product by id. No session is required.
func (cl *Client) Product(ctx context.Context, id string) (domain.Product, error) {
	path := "/api/get/products/" + url.PathEscape(id)
	body, err := cl.do(ctx, call{
		method:   http.MethodGet,
		path:     path,
		auth:     authOptional,
		rejected: "could not load product",
	})
	if err != nil {
		return domain.Product{}, err
	}

	var p domain.Product
	if err := decodeOne(path, body, &p, "product", "data"); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}
