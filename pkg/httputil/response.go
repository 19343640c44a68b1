package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/logger"
	"github.com/utafrali/storefront/pkg/validator"
)

// Response is the JSON envelope of every companion endpoint.
type Response struct {
	Data  any            `json:"data,omitempty"`
	Error *ErrorResponse `json:"error,omitempty"`
}

// ErrorResponse represents an error in the standard response format.
type ErrorResponse struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; nothing meaningful can be done if encoding fails.
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes err as an error envelope. AppErrors keep their code,
// status and user-facing message; validation failures also list the fields.
// Anything else is reported as an internal error and logged.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback *slog.Logger) {
	l := logger.FromContext(r.Context())
	if l == slog.Default() {
		l = fallback
	}
	requestID := logger.CorrelationIDFromContext(r.Context())

	var fields map[string]string
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		fields = valErr.Fields()
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Status >= http.StatusInternalServerError {
			l.ErrorContext(r.Context(), "request failed",
				slog.String("code", appErr.Code),
				slog.String("error", err.Error()),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)
		}
		WriteJSON(w, appErr.Status, Response{
			Error: &ErrorResponse{Code: appErr.Code, Message: appErr.Message, Fields: fields, RequestID: requestID},
		})
		return
	}

	if fields != nil {
		WriteJSON(w, http.StatusBadRequest, Response{
			Error: &ErrorResponse{Code: "VALIDATION_ERROR", Message: "request validation failed", Fields: fields, RequestID: requestID},
		})
		return
	}

	status := apperrors.HTTPStatus(err)
	code := "INTERNAL_ERROR"
	message := "an internal error occurred"

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		code, message = "NOT_FOUND", "resource not found"
	case errors.Is(err, apperrors.ErrInvalidInput):
		code, message = "INVALID_INPUT", err.Error()
	case errors.Is(err, apperrors.ErrNoToken):
		code, message = "NO_TOKEN", apperrors.MsgNoToken
	}

	if status == http.StatusInternalServerError {
		l.ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
	}

	WriteJSON(w, status, Response{
		Error: &ErrorResponse{Code: code, Message: message, RequestID: requestID},
	})
}

// PaginatedResponse is a page of a listing as reported by the storefront API.
type PaginatedResponse[T any] struct {
	Data       []T  `json:"data"`
	TotalCount int  `json:"total_count"`
	Page       int  `json:"page"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
}

// NewPaginatedResponse builds a page envelope. The page count comes from the
// server and is never recomputed here.
func NewPaginatedResponse[T any](data []T, totalCount, page, totalPages int) PaginatedResponse[T] {
	if data == nil {
		data = []T{}
	}
	return PaginatedResponse[T]{
		Data:       data,
		TotalCount: totalCount,
		Page:       page,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
	}
}

// DecodeJSON decodes the request body into dst and validates it. A body that
// is not JSON is reported as invalid input.
func DecodeJSON(r *http.Request, dst any) error {
	if err := validator.DecodeAndValidate(r, dst); err != nil {
		var valErr *validator.ValidationError
		if errors.As(err, &valErr) {
			return err
		}
		return apperrors.InvalidInput("request body must be valid JSON")
	}
	return nil
}

// PathParam returns a required path parameter. When it is empty a 400 is
// written and ok is false.
func PathParam(w http.ResponseWriter, value, name string) (string, bool) {
	if value == "" {
		WriteJSON(w, http.StatusBadRequest, Response{
			Error: &ErrorResponse{
				Code:    "INVALID_PARAMETER",
				Message: name + " is required",
			},
		})
		return "", false
	}
	return value, true
}
