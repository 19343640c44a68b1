package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/utafrali/storefront/internal/analytics"
	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/storefront"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/httputil"
)

// maxUploadBytes bounds a whole multipart request: every image at its limit
// plus the form fields.
const maxUploadBytes = storefront.MaxProductImages*storefront.MaxImageBytes + 1<<20

// StoreHandler handles the merchant console of the signed-in seller.
type StoreHandler struct {
	merchant Merchant
	logger   *slog.Logger
}

// NewStoreHandler creates a new store HTTP handler.
func NewStoreHandler(merchant Merchant, logger *slog.Logger) *StoreHandler {
	return &StoreHandler{
		merchant: merchant,
		logger:   logger,
	}
}

// CreateProduct handles POST /api/v1/store/products (multipart/form-data).
// Fields: name, description, price, categoryId, stock, sizes, colors; files
// under "images". Sizes and colors accept a JSON array or a comma list.
func (h *StoreHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		httputil.WriteError(w, r, formError(err), h.logger)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	price, err := decimal.NewFromString(strings.TrimSpace(r.FormValue("price")))
	if err != nil {
		httputil.WriteError(w, r, apperrors.InvalidInput("price must be a number"), h.logger)
		return
	}
	stock := 0
	if raw := strings.TrimSpace(r.FormValue("stock")); raw != "" {
		if stock, err = strconv.Atoi(raw); err != nil {
			httputil.WriteError(w, r, apperrors.InvalidInput("stock must be an integer"), h.logger)
			return
		}
	}

	images, err := readUploads(r.MultipartForm.File["images"])
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	product, err := h.merchant.CreateProduct(r.Context(), domain.NewProduct{
		Name:        strings.TrimSpace(r.FormValue("name")),
		Description: r.FormValue("description"),
		Price:       price,
		CategoryID:  r.FormValue("categoryId"),
		Stock:       stock,
		Sizes:       formList(r.FormValue("sizes")),
		Colors:      formList(r.FormValue("colors")),
		Images:      images,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: product})
}

// UploadLogo handles POST /api/v1/store/logo (multipart/form-data, file "logo").
func (h *StoreHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, storefront.MaxImageBytes+1<<20)
	if err := r.ParseMultipartForm(8 << 20); err != nil {
		httputil.WriteError(w, r, formError(err), h.logger)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	uploads, err := readUploads(r.MultipartForm.File["logo"])
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	if len(uploads) != 1 {
		httputil.WriteError(w, r, apperrors.InvalidInput("exactly one logo file is required"), h.logger)
		return
	}

	s, err := h.merchant.UploadLogo(r.Context(), uploads[0])
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: s})
}

// Analytics handles GET /api/v1/store/analytics?top=N
func (h *StoreHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	topN, err := topParam(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	raw, err := h.merchant.StoreAnalytics(r.Context())
	var report analytics.Report
	if err == nil {
		report = analytics.Build(raw, topN)
	}
	writeResource(w, r, report, err)
}

func topParam(r *http.Request) (int, error) {
	n, err := intParam(r.URL.Query().Get("top"), "top")
	if err != nil {
		return 0, err
	}
	if n == 0 {
		n = analytics.DefaultTopN
	}
	return n, nil
}

func readUploads(headers []*multipart.FileHeader) ([]domain.Upload, error) {
	uploads := make([]domain.Upload, 0, len(headers))
	for _, fh := range headers {
		if fh.Size > storefront.MaxImageBytes {
			return nil, apperrors.TooLarge(storefront.MsgImagesTooLarge)
		}
		f, err := fh.Open()
		if err != nil {
			return nil, apperrors.InvalidInput("could not read " + fh.Filename)
		}
		data, err := io.ReadAll(io.LimitReader(f, storefront.MaxImageBytes+1))
		_ = f.Close()
		if err != nil {
			return nil, apperrors.InvalidInput("could not read " + fh.Filename)
		}
		uploads = append(uploads, domain.Upload{FileName: fh.Filename, Data: data})
	}
	return uploads, nil
}

func formError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apperrors.TooLarge(storefront.MsgImagesTooLarge)
	}
	return apperrors.InvalidInput("request must be multipart/form-data")
}

// formList reads a list field sent either as a JSON array or comma separated.
func formList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	return domain.ParseStringList(json.RawMessage(strconv.Quote(raw)))
}
