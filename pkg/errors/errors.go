package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for the failure classes a storefront call can end in.
var (
	ErrNotFound        = errors.New("resource not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrConflict        = errors.New("conflict")
	ErrPayloadTooLarge = errors.New("payload too large")
	ErrInternal        = errors.New("internal error")
	ErrServiceUnavail  = errors.New("service unavailable")
	ErrNoToken         = errors.New("no token")
	ErrTimeout         = errors.New("timeout")
	ErrNetwork         = errors.New("network unreachable")
	ErrRejected        = errors.New("rejected by server")
	ErrInFlight        = errors.New("operation in flight")
)

// Messages shown to the user for the fixed error classes.
const (
	MsgNoToken      = "no token found, please log in"
	MsgUnauthorized = "authentication failed, please log in again"
	MsgInvalidData  = "invalid data"
	MsgConflict     = "conflict: resource already exists"
	MsgTooLarge     = "payload too large"
	MsgTimeout      = "request timed out"
	MsgInFlight     = "operation already in progress"
)

// AppError represents a structured application error with HTTP status mapping.
// Message is always safe to show to the end user.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound creates a 404 error.
func NotFound(resource, id string) *AppError {
	return &AppError{
		Code:    "NOT_FOUND",
		Message: fmt.Sprintf("%s with id %s not found", resource, id),
		Status:  http.StatusNotFound,
		Err:     ErrNotFound,
	}
}

// InvalidInput creates a 400 error.
func InvalidInput(message string) *AppError {
	return &AppError{
		Code:    "INVALID_INPUT",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidInput,
	}
}

// Unauthorized creates a 401 error.
func Unauthorized(message string) *AppError {
	return &AppError{
		Code:    "UNAUTHORIZED",
		Message: message,
		Status:  http.StatusUnauthorized,
		Err:     ErrUnauthorized,
	}
}

// Forbidden creates a 403 error.
func Forbidden(message string) *AppError {
	return &AppError{
		Code:    "FORBIDDEN",
		Message: message,
		Status:  http.StatusForbidden,
		Err:     ErrForbidden,
	}
}

// Conflict creates a 409 error.
func Conflict(message string) *AppError {
	return &AppError{
		Code:    "CONFLICT",
		Message: message,
		Status:  http.StatusConflict,
		Err:     ErrConflict,
	}
}

// TooLarge creates a 413 error.
func TooLarge(message string) *AppError {
	return &AppError{
		Code:    "PAYLOAD_TOO_LARGE",
		Message: message,
		Status:  http.StatusRequestEntityTooLarge,
		Err:     ErrPayloadTooLarge,
	}
}

// NoToken is returned before any request is issued when no usable session token exists.
func NoToken() *AppError {
	return &AppError{
		Code:    "NO_TOKEN",
		Message: MsgNoToken,
		Status:  http.StatusUnauthorized,
		Err:     ErrNoToken,
	}
}

// Timeout is returned when a client-side deadline aborted the request.
func Timeout(endpoint string) *AppError {
	return &AppError{
		Code:    "TIMEOUT",
		Message: MsgTimeout,
		Status:  http.StatusGatewayTimeout,
		Err:     fmt.Errorf("%s: %w", endpoint, ErrTimeout),
	}
}

// Network is returned when the transport failed before any response arrived.
// The endpoint is part of the message for diagnostics.
func Network(endpoint string, err error) *AppError {
	return &AppError{
		Code:    "NETWORK_ERROR",
		Message: fmt.Sprintf("unable to reach server (%s)", endpoint),
		Status:  http.StatusBadGateway,
		Err:     fmt.Errorf("%w: %v", ErrNetwork, err),
	}
}

// Rejected wraps a success:false envelope. An empty server message falls back to def.
func Rejected(message, def string) *AppError {
	if message == "" {
		message = def
	}
	return &AppError{
		Code:    "REJECTED",
		Message: message,
		Status:  http.StatusUnprocessableEntity,
		Err:     ErrRejected,
	}
}

// InFlight is returned when a latched operation is invoked while a previous call is pending.
func InFlight() *AppError {
	return &AppError{
		Code:    "IN_FLIGHT",
		Message: MsgInFlight,
		Status:  http.StatusConflict,
		Err:     ErrInFlight,
	}
}

// Internal creates a 500 error.
func Internal(err error) *AppError {
	return &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// Message returns the user-facing message carried by err. Errors that are not
// AppErrors produce a generic message so raw transport text never reaches the UI.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "something went wrong, please try again"
}

// HTTPStatus returns the HTTP status code for the given error.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict), errors.Is(err, ErrInFlight):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrNoToken):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrPayloadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrTimeout):
		return http.StatusGatewayTimeout
	case errors.Is(err, ErrNetwork):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
