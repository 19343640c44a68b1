// Package view turns fetch results into the render states a page shows. A
// failed fetch is always an error state and never an empty list.
package view

import (
	"errors"
	"reflect"

	apperrors "github.com/utafrali/storefront/pkg/errors"
)

// Status is the render state of a resource.
type Status string

const (
	StatusLoading Status = "loading"
	StatusError   Status = "error"
	StatusEmpty   Status = "empty"
	StatusReady   Status = "ready"
)

// Failure describes an error state. Retry is the link that repeats the fetch.
type Failure struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
	Retry     string `json:"retry,omitempty"`
}

// Resource is exactly one of loading, error, empty or ready. Data is set for
// empty and ready; Error only for error.
type Resource[T any] struct {
	Status Status   `json:"status"`
	Data   *T       `json:"data,omitempty"`
	Error  *Failure `json:"error,omitempty"`
}

// Pending returns a loading resource.
func Pending[T any]() Resource[T] {
	return Resource[T]{Status: StatusLoading}
}

// Load converts a fetch result into a resource. A fetch refused because the
// same read is still in flight renders as loading.
func Load[T any](v T, err error, retry string) Resource[T] {
	if err != nil {
		if errors.Is(err, apperrors.ErrInFlight) {
			return Pending[T]()
		}
		return Failed[T](err, retry)
	}
	if isEmpty(v) {
		return Resource[T]{Status: StatusEmpty, Data: &v}
	}
	return Resource[T]{Status: StatusReady, Data: &v}
}

// Failed returns an error resource for err.
func Failed[T any](err error, retry string) Resource[T] {
	code := "INTERNAL_ERROR"
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		code = appErr.Code
	}
	return Resource[T]{
		Status: StatusError,
		Error: &Failure{
			Code:      code,
			Message:   apperrors.Message(err),
			Retryable: true,
			Retry:     retry,
		},
	}
}

// Err returns the failure, or nil when r is not an error state.
func (r Resource[T]) Err() *Failure {
	if r.Status != StatusError {
		return nil
	}
	return r.Error
}

type emptier interface {
	IsEmpty() bool
}

func isEmpty(v any) bool {
	if e, ok := v.(emptier); ok {
		return e.IsEmpty()
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Invalid:
		return true
	case reflect.Slice, reflect.Map, reflect.Array, reflect.String:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
