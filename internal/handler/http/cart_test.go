package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/state"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

func sampleCart() state.Cart {
	return state.Cart{
		Lines: map[string]state.Line{
			"p2": {Quantity: 1},
			"p1": {Quantity: 2, SelectedSize: "M"},
		},
		Total:  3,
		Exists: true,
	}
}

func TestCart_RequiresSession(t *testing.T) {
	f := newFixture(t)
	f.signOut()

	rec := f.do(http.MethodGet, "/api/v1/cart", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	env := decode(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NO_TOKEN", env.Error.Code)
	assert.Equal(t, apperrors.MsgNoToken, env.Error.Message)
}

func TestGetCart_Ready(t *testing.T) {
	f := newFixture(t)
	f.signIn(domain.RoleCustomer)
	f.cart.On("Fetch", mock.Anything).Return(sampleCart(), nil)

	rec := f.do(http.MethodGet, "/api/v1/cart", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	res := decodeResource(t, rec)
	assert.Equal(t, "ready", res.Status)

	var v CartView
	require.NoError(t, json.Unmarshal(res.Data, &v))
	assert.Equal(t, 3, v.Total)
	require.Len(t, v.Items, 2)
	assert.Equal(t, "p1", v.Items[0].ProductID)
	assert.Equal(t, "M", v.Items[0].SelectedSize)
}

func TestGetCart_Empty(t *testing.T) {
	f := newFixture(t)
	f.signIn(domain.RoleCustomer)
	f.cart.On("Fetch", mock.Anything).Return(state.Cart{Lines: map[string]state.Line{}}, nil)

	rec := f.do(http.MethodGet, "/api/v1/cart", nil)

	assert.Equal(t, "empty", decodeResource(t, rec).Status)
}

func TestGetCart_ErrorIsNeverEmpty(t *testing.T) {
	f := newFixture(t)
	f.signIn(domain.RoleCustomer)
	f.cart.On("Fetch", mock.Anything).Return(state.Cart{}, apperrors.Timeout("/api/myCart/my"))

	rec := f.do(http.MethodGet, "/api/v1/cart", nil)

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	res := decodeResource(t, rec)
	assert.Equal(t, "error", res.Status)
	require.NotNil(t, res.Error)
	assert.True(t, res.Error.Retryable)
	assert.Equal(t, "/api/v1/cart", res.Error.Retry)
	assert.Equal(t, apperrors.MsgTimeout, res.Error.Message)
}

func TestGetCart_InFlightRendersLoading(t *testing.T) {
	f := newFixture(t)
	f.signIn(domain.RoleCustomer)
	f.cart.On("Fetch", mock.Anything).Return(state.Cart{}, apperrors.InFlight())

	rec := f.do(http.MethodGet, "/api/v1/cart", nil)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "loading", decodeResource(t, rec).Status)
}

func TestGetCart_LocalSkipsFetch(t *testing.T) {
	f := newFixture(t)
	f.signIn(domain.RoleCustomer)
	f.cart.On("Snapshot").Return(sampleCart())

	rec := f.do(http.MethodGet, "/api/v1/cart?local=true", nil)

	assert.Equal(t, "ready", decodeResource(t, rec).Status)
	f.cart.AssertNotCalled(t, "Fetch", mock.Anything)
}

func TestSetItem(t *testing.T) {
	f := newFixture(t)
	f.signIn(domain.RoleCustomer)
	f.cart.On("AddOrSetQuantity", mock.Anything, "p1", 2, "red", "M").Return(sampleCart(), nil)

	rec := f.do(http.MethodPost, "/api/v1/cart/items",
		SetItemRequest{ProductID: "p1", Quantity: 2, SelectedColor: "red", SelectedSize: "M"})

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSetItem_ZeroQuantityRejected(t *testing.T) {
	f := newFixture(t)
	f.signIn(domain.RoleCustomer)

	rec := f.do(http.MethodPost, "/api/v1/cart/items", SetItemRequest{ProductID: "p1"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	f.cart.AssertNotCalled(t, "AddOrSetQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSetItem_InFlightConflict(t *testing.T) {
	f := newFixture(t)
	f.signIn(domain.RoleCustomer)
	f.cart.On("AddOrSetQuantity", mock.Anything, "p1", 1, "", "").Return(state.Cart{}, apperrors.InFlight())

	rec := f.do(http.MethodPost, "/api/v1/cart/items", SetItemRequest{ProductID: "p1", Quantity: 1})

	assert.Equal(t, http.StatusConflict, rec.Code)
	env := decode(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "IN_FLIGHT", env.Error.Code)
}

func TestIncrement(t *testing.T) {
	f := newFixture(t)
	f.signIn(domain.RoleCustomer)
	f.cart.On("Increment", mock.Anything, "p1", -1, "", "").Return(sampleCart(), nil)

	rec := f.do(http.MethodPost, "/api/v1/cart/items/p1/increment", IncrementRequest{Delta: -1})

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRemoveItem(t *testing.T) {
	f := newFixture(t)
	f.signIn(domain.RoleCustomer)
	f.cart.On("RemoveItem", mock.Anything, "p2").Return(state.Cart{Lines: map[string]state.Line{}}, nil)

	rec := f.do(http.MethodDelete, "/api/v1/cart/items/p2", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var v CartView
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &v))
	assert.Empty(t, v.Items)
}

func TestClearCart(t *testing.T) {
	f := newFixture(t)
	f.signIn(domain.RoleCustomer)
	f.cart.On("Clear").Return(state.Cart{Lines: map[string]state.Line{}})

	rec := f.do(http.MethodDelete, "/api/v1/cart", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}
