package storefront

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/httpclient"
	"github.com/utafrali/storefront/pkg/validator"
)

// Upload limits enforced before a multipart request is built.
const (
	MaxProductImages = 5
	MaxImageBytes    = 5 << 20
)

// MsgImagesTooLarge is shown when the API refuses an upload as too large.
const MsgImagesTooLarge = "images are too large"

// CreateProduct creates a product in the session's store. Images are sent as
// multipart file parts under "images".
func (cl *Client) CreateProduct(ctx context.Context, in domain.NewProduct) (domain.Product, error) {
	if err := validator.Input(in); err != nil {
		return domain.Product{}, err
	}
	if !in.Price.IsPositive() {
		return domain.Product{}, apperrors.InvalidInput("price must be greater than zero")
	}
	if len(in.Images) > MaxProductImages {
		return domain.Product{}, apperrors.InvalidInput(fmt.Sprintf("at most %d images are allowed", MaxProductImages))
	}
	for _, img := range in.Images {
		if len(img.Data) > MaxImageBytes {
			return domain.Product{}, apperrors.TooLarge(MsgImagesTooLarge)
		}
	}

	form := &multipartBody{}
	form.field("name", in.Name)
	form.field("description", in.Description)
	form.field("price", in.Price.String())
	form.field("category", in.CategoryID)
	form.field("stock", strconv.Itoa(in.Stock))
	sizes, err := json.Marshal(nonNil(in.Sizes))
	if err != nil {
		return domain.Product{}, apperrors.Internal(err)
	}
	colors, err := json.Marshal(nonNil(in.Colors))
	if err != nil {
		return domain.Product{}, apperrors.Internal(err)
	}
	form.field("sizes", string(sizes))
	form.field("colors", string(colors))
	for _, img := range in.Images {
		img.FieldName = "images"
		form.files = append(form.files, img)
	}

	const path = "/api/store/products"
	body, err := cl.do(ctx, call{
		method:    http.MethodPost,
		path:      path,
		multipart: form,
		auth:      authRequired,
		overrides: httpclient.StatusMessages{
			http.StatusRequestEntityTooLarge: MsgImagesTooLarge,
		},
		rejected: "could not create product",
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

// UploadLogo replaces the logo of the session's store.
func (cl *Client) UploadLogo(ctx context.Context, logo domain.Upload) (domain.Store, error) {
	if len(logo.Data) == 0 {
		return domain.Store{}, apperrors.InvalidInput("logo file is required")
	}
	if len(logo.Data) > MaxImageBytes {
		return domain.Store{}, apperrors.TooLarge(MsgImagesTooLarge)
	}
	logo.FieldName = "logo"

	const path = "/api/store/logo"
	body, err := cl.do(ctx, call{
		method:    http.MethodPost,
		path:      path,
		multipart: &multipartBody{files: []domain.Upload{logo}},
		auth:      authRequired,
		overrides: httpclient.StatusMessages{
			http.StatusRequestEntityTooLarge: MsgImagesTooLarge,
		},
		rejected: "could not upload logo",
	})
	if err != nil {
		return domain.Store{}, err
	}

	var s domain.Store
	if err := decodeOne(path, body, &s, "store", "data"); err != nil {
		return domain.Store{}, err
	}
	return s, nil
}

// StoreAnalytics fetches the sales report of the session's store.
func (cl *Client) StoreAnalytics(ctx context.Context) (domain.Analytics, error) {
	return cl.analytics(ctx, call{
		method:   http.MethodGet,
		path:     "/api/store/analytics",
		auth:     authRequired,
		rejected: "could not load analytics",
	}, "analytics")
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
