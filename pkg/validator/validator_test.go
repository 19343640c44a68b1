package validator

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/utafrali/storefront/pkg/errors"
)

type statusInput struct {
	OrderID string `json:"orderId" validate:"required"`
	Status  string `json:"status" validate:"required,oneof=PENDING READY PICKED_UP"`
}

type quantityInput struct {
	Quantity int `json:"quantity" validate:"gte=0,lte=100"`
}

func TestValidate_Success(t *testing.T) {
	assert.NoError(t, Validate(statusInput{OrderID: "o-1", Status: "READY"}))
}

func TestValidate_FieldsUseJSONNames(t *testing.T) {
	err := Validate(statusInput{Status: "SHIPPED"})
	require.Error(t, err)

	var valErr *ValidationError
	require.ErrorAs(t, err, &valErr)
	fields := valErr.Fields()
	assert.Equal(t, "is required", fields["orderId"])
	assert.Equal(t, "must be one of: PENDING READY PICKED_UP", fields["status"])
}

func TestValidate_OutOfRange(t *testing.T) {
	err := Validate(quantityInput{Quantity: -1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "field 'quantity' must be greater than or equal to 0")
}

func TestInput_ReturnsAppError(t *testing.T) {
	err := Input(statusInput{OrderID: "o-1", Status: "LOST"})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INVALID_INPUT", appErr.Code)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))

	var valErr *ValidationError
	assert.ErrorAs(t, err, &valErr)
}

func TestInput_Valid(t *testing.T) {
	assert.NoError(t, Input(quantityInput{Quantity: 3}))
}

func TestDecodeAndValidate(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"orderId":"o-9","status":"PICKED_UP"}`))
	var in statusInput
	require.NoError(t, DecodeAndValidate(r, &in))
	assert.Equal(t, "o-9", in.OrderID)

	bad := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	err := DecodeAndValidate(bad, &in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode request body")
}
