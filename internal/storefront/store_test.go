package storefront

import (
	"context"
	"io"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

func sampleProduct() domain.NewProduct {
	return domain.NewProduct{
		Name:       "Linen Shirt",
		Price:      decimal.RequireFromString("49.90"),
		CategoryID: "c1",
		Stock:      3,
		Sizes:      []string{"S", "M"},
		Images: []domain.Upload{
			{FileName: "front.jpg", Data: []byte("jpeg-bytes")},
		},
	}
}

func TestCreateProduct_Multipart(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/store/products", r.URL.Path)
		assert.Equal(t, "t.t.t", r.Header.Get("token"))
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		assert.Equal(t, "Linen Shirt", r.FormValue("name"))
		assert.Equal(t, "49.9", r.FormValue("price"))
		assert.Equal(t, "c1", r.FormValue("category"))
		assert.Equal(t, `["S","M"]`, r.FormValue("sizes"))
		assert.Equal(t, `[]`, r.FormValue("colors"))

		files := r.MultipartForm.File["images"]
		if assert.Len(t, files, 1) {
			assert.Equal(t, "front.jpg", files[0].Filename)
			f, err := files[0].Open()
			if assert.NoError(t, err) {
				data, _ := io.ReadAll(f)
				_ = f.Close()
				assert.Equal(t, "jpeg-bytes", string(data))
			}
		}
		writeJSON(w, http.StatusCreated, `{"success":true,"product":{"_id":"p1","name":"Linen Shirt","sizes":"S,M"}}`)
	}, &fakeTokens{token: "t.t.t"})

	p, err := c.CreateProduct(context.Background(), sampleProduct())
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, []string{"S", "M"}, p.Sizes)
}

func TestCreateProduct_PayloadTooLarge(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		writeJSON(w, http.StatusRequestEntityTooLarge, `{"message":"File too large"}`)
	}, &fakeTokens{token: "t.t.t"})

	p, err := c.CreateProduct(context.Background(), sampleProduct())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrPayloadTooLarge)
	assert.Equal(t, "images are too large", apperrors.Message(err))
	assert.Empty(t, p.ID)
}

func TestCreateProduct_LocalChecks(t *testing.T) {
	c, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {}, &fakeTokens{token: "t.t.t"})
	ctx := context.Background()

	noName := sampleProduct()
	noName.Name = ""
	_, err := c.CreateProduct(ctx, noName)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	free := sampleProduct()
	free.Price = decimal.Zero
	_, err = c.CreateProduct(ctx, free)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	huge := sampleProduct()
	huge.Images = []domain.Upload{{FileName: "big.jpg", Data: make([]byte, MaxImageBytes+1)}}
	_, err = c.CreateProduct(ctx, huge)
	assert.ErrorIs(t, err, apperrors.ErrPayloadTooLarge)
	assert.Equal(t, MsgImagesTooLarge, apperrors.Message(err))

	assert.Equal(t, int32(0), atomic.LoadInt32(hits))
}

func TestUploadLogo(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/store/logo", r.URL.Path)
		if assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			assert.Len(t, r.MultipartForm.File["logo"], 1)
		}
		writeJSON(w, http.StatusOK, `{"success":true,"store":{"_id":"s1","name":"Ada's","logo":"/uploads/logo.png"}}`)
	}, &fakeTokens{token: "t.t.t"})

	s, err := c.UploadLogo(context.Background(), domain.Upload{FileName: "logo.png", Data: []byte("png")})
	require.NoError(t, err)
	assert.Equal(t, "s1", s.ID)
	assert.Equal(t, "/uploads/logo.png", s.LogoURL)

	_, err = c.UploadLogo(context.Background(), domain.Upload{FileName: "empty.png"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestStoreAnalytics(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"success":true,"analytics":{
			"salesByDate":[{"_id":"2024-01-01","total":12.5}],
			"statusCounts":[{"_id":"READY","count":2},{"_id":"PENDING","count":"1"}],
			"topProducts":[{"product":{"_id":"p1"},"name":"Hat","totalSold":4}]
		}}`)
	}, &fakeTokens{token: "t.t.t"})

	a, err := c.StoreAnalytics(context.Background())
	require.NoError(t, err)
	require.Len(t, a.Revenue, 1)
	assert.Equal(t, "2024-01-01", a.Revenue[0].Date)
	assert.True(t, decimal.RequireFromString("12.5").Equal(a.Revenue[0].Value))
	assert.Equal(t, map[string]int{"READY": 2, "PENDING": 1}, a.StatusCounts)
	require.Len(t, a.TopProducts, 1)
	assert.Equal(t, "p1", a.TopProducts[0].ProductID)
	assert.Equal(t, 4, a.TopProducts[0].Quantity)
}
