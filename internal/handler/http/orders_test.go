package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/state"
	apperrors "github.com/utafrali/storefront/pkg/errors"
)

func TestCreateOrder_ClearsCartOnSuccess(t *testing.T) {
	f := newFixture(t)
	f.signIn(domain.RoleCustomer)
	in := domain.NewOrder{AddressID: "a1", PaymentMethod: "COD"}
	f.api.On("CreateOrder", mock.Anything, in).Return(domain.Order{ID: "o1"}, nil)
	f.cart.On("Clear").Return(state.Cart{Lines: map[string]state.Line{}}).Once()

	rec := f.do(http.MethodPost, "/api/v1/orders", in)

	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCreateOrder_FailureKeepsCart(t *testing.T) {
	f := newFixture(t)
	f.signIn(domain.RoleCustomer)
	f.api.On("CreateOrder", mock.Anything, mock.Anything).
		Return(domain.Order{}, apperrors.Rejected("", "could not place order"))

	rec := f.do(http.MethodPost, "/api/v1/orders", domain.NewOrder{AddressID: "a1", PaymentMethod: "CARD"})

	assert.NotEqual(t, http.StatusCreated, rec.Code)
	f.cart.AssertNotCalled(t, "Clear")
}

func TestCreateOrder_UnknownPaymentMethod(t *testing.T) {
	f := newFixture(t)
	f.signIn(domain.RoleCustomer)

	rec := f.do(http.MethodPost, "/api/v1/orders", domain.NewOrder{AddressID: "a1", PaymentMethod: "BARTER"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMyOrders_Empty(t *testing.T) {
	f := newFixture(t)
	f.signIn(domain.RoleCustomer)
	f.api.On("MyOrders", mock.Anything).Return([]domain.Order{}, nil)

	rec := f.do(http.MethodGet, "/api/v1/orders", nil)

	assert.Equal(t, "empty", decodeResource(t, rec).Status)
}

func TestStoreRoutes_RequireSeller(t *testing.T) {
	f := newFixture(t)
	f.signIn(domain.RoleCustomer)

	rec := f.do(http.MethodGet, "/api/v1/store/orders", nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSetStoreOrderStatus(t *testing.T) {
	f := newFixture(t)
	f.signIn(domain.RoleSeller)
	in := domain.StoreStatusUpdate{Status: domain.StoreStatusReady}
	f.api.On("SetStoreOrderStatus", mock.Anything, "o1", in).Return(domain.Order{ID: "o1", Status: domain.StoreStatusReady}, nil)

	rec := f.do(http.MethodPut, "/api/v1/store/orders/o1/status", in)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSetStoreOrderStatus_OutsideClosedSet(t *testing.T) {
	f := newFixture(t)
	f.signIn(domain.RoleSeller)

	rec := f.do(http.MethodPut, "/api/v1/store/orders/o1/status", domain.StoreStatusUpdate{Status: domain.OrderStatusShipped})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Fields, "status")
}

func TestInvoice_DetailTimeout(t *testing.T) {
	f := newFixture(t)
	f.signIn(domain.RoleSeller)
	f.api.On("Invoice", mock.Anything, "o1").Return(domain.Invoice{}, apperrors.Timeout("/api/store/invoice/o1"))

	rec := f.do(http.MethodGet, "/api/v1/store/invoices/o1", nil)

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
	res := decodeResource(t, rec)
	require.NotNil(t, res.Error)
	assert.Equal(t, "/api/v1/store/invoices/o1", res.Error.Retry)
}

func TestSuccessfulOrders(t *testing.T) {
	f := newFixture(t)
	f.signIn(domain.RoleSeller)
	f.api.On("SuccessfulOrders", mock.Anything).Return([]domain.Order{{ID: "o1"}}, nil)
	f.api.On("SuccessfulOrder", mock.Anything, "o1").Return(domain.Order{ID: "o1"}, nil)

	rec := f.do(http.MethodGet, "/api/v1/store/orders/successful", nil)
	assert.Equal(t, "ready", decodeResource(t, rec).Status)

	rec = f.do(http.MethodGet, "/api/v1/store/orders/successful/o1", nil)
	assert.Equal(t, "ready", decodeResource(t, rec).Status)
}
