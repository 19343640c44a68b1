package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// Envelope is the body shape shared by every storefront endpoint: a success
// flag plus an optional human-readable message.
type Envelope struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Failed reports whether the envelope explicitly signals success:false.
func (e Envelope) Failed() bool {
	return e.Success != nil && !*e.Success
}

// Text returns the server-provided message, preferring message over error.
func (e Envelope) Text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// StatusMessages lets a call site override the message for specific statuses,
// e.g. 413 on an image upload.
type StatusMessages map[int]string

// ResponseMessage reads the body of a non-2xx response and returns its
// server message, or "". The body is fully consumed and closed.
func ResponseMessage(resp *http.Response) string {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return ""
	}
	return ServerMessage(body)
}

// ServerMessage extracts message (or error) from a JSON body, or "".
func ServerMessage(body []byte) string {
	var env Envelope
	if json.Unmarshal(body, &env) != nil {
		return ""
	}
	return strings.TrimSpace(env.Text())
}

// MapStatus maps a non-2xx status to the error taxonomy. Message precedence is
// call-site override, then server message, then "HTTP <code>: <text>". A 401
// always carries the fixed re-login message.
func MapStatus(status int, serverMsg string, overrides StatusMessages) error {
	return mapStatus(status, serverMsg, overrides, true)
}

// MapSessionlessStatus is MapStatus for a call that sent no session token.
// A 401 there rejects the request's own credentials, so it keeps the
// override or server message.
func MapSessionlessStatus(status int, serverMsg string, overrides StatusMessages) error {
	return mapStatus(status, serverMsg, overrides, false)
}

func mapStatus(status int, serverMsg string, overrides StatusMessages, withSession bool) error {
	msg := overrides[status]
	if msg == "" {
		msg = serverMsg
	}
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status))
	}

	switch {
	case status == http.StatusUnauthorized && withSession:
		return apperrors.Unauthorized(apperrors.MsgUnauthorized)
	case status == http.StatusUnauthorized:
		return apperrors.Unauthorized(msg)
	case status == http.StatusBadRequest:
		return apperrors.InvalidInput(msg)
	case status == http.StatusForbidden:
		return apperrors.Forbidden(msg)
	case status == http.StatusNotFound:
		return &apperrors.AppError{Code: "NOT_FOUND", Message: msg, Status: status, Err: apperrors.ErrNotFound}
	case status == http.StatusConflict:
		return apperrors.Conflict(msg)
	case status == http.StatusRequestEntityTooLarge:
		return apperrors.TooLarge(msg)
	case status >= 500:
		return &apperrors.AppError{
			Code:    "UPSTREAM_ERROR",
			Message: msg,
			Status:  http.StatusBadGateway,
			Err:     apperrors.ErrServiceUnavail,
		}
	default:
		return &apperrors.AppError{Code: "HTTP_ERROR", Message: msg, Status: status}
	}
}

// IsClientError returns true if the HTTP status code is a 4xx client error.
func IsClientError(status int) bool {
	return status >= 400 && status < 500
}
