package http

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/state"
)

// ============================================================================
// Mock API
// ============================================================================

type mockAPI struct {
	mock.Mock
}

func (m *mockAPI) Categories(ctx context.Context) ([]domain.Category, error) {
	args := m.Called(ctx)
	cats, _ := args.Get(0).([]domain.Category)
	return cats, args.Error(1)
}

func (m *mockAPI) Products(ctx context.Context, q domain.ProductQuery) (domain.ProductPage, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(domain.ProductPage), args.Error(1)
}

func (m *mockAPI) Product(ctx context.Context, id string) (domain.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *mockAPI) CreateOrder(ctx context.Context, in domain.NewOrder) (domain.Order, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *mockAPI) MyOrders(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]domain.Order)
	return orders, args.Error(1)
}

func (m *mockAPI) StoreOrders(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]domain.Order)
	return orders, args.Error(1)
}

func (m *mockAPI) SetOrderStatus(ctx context.Context, orderID string, in domain.AdminStatusUpdate) (domain.Order, error) {
	args := m.Called(ctx, orderID, in)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *mockAPI) SetStoreOrderStatus(ctx context.Context, orderID string, in domain.StoreStatusUpdate) (domain.Order, error) {
	args := m.Called(ctx, orderID, in)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *mockAPI) SuccessfulOrders(ctx context.Context) ([]domain.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]domain.Order)
	return orders, args.Error(1)
}

func (m *mockAPI) SuccessfulOrder(ctx context.Context, orderID string) (domain.Order, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(domain.Order), args.Error(1)
}

func (m *mockAPI) Invoices(ctx context.Context) ([]domain.Invoice, error) {
	args := m.Called(ctx)
	inv, _ := args.Get(0).([]domain.Invoice)
	return inv, args.Error(1)
}

func (m *mockAPI) Invoice(ctx context.Context, orderID string) (domain.Invoice, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(domain.Invoice), args.Error(1)
}

func (m *mockAPI) CreateProduct(ctx context.Context, in domain.NewProduct) (domain.Product, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (m *mockAPI) UploadLogo(ctx context.Context, logo domain.Upload) (domain.Store, error) {
	args := m.Called(ctx, logo)
	return args.Get(0).(domain.Store), args.Error(1)
}

func (m *mockAPI) StoreAnalytics(ctx context.Context) (domain.Analytics, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Analytics), args.Error(1)
}

func (m *mockAPI) AdminSummary(ctx context.Context) (domain.AdminSummary, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.AdminSummary), args.Error(1)
}

func (m *mockAPI) AdminDashboard(ctx context.Context) (domain.Analytics, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Analytics), args.Error(1)
}

func (m *mockAPI) Users(ctx context.Context) ([]domain.AccountSummary, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]domain.AccountSummary)
	return users, args.Error(1)
}

func (m *mockAPI) SetUserRole(ctx context.Context, userID string, in domain.RoleUpdate) (domain.AccountSummary, error) {
	args := m.Called(ctx, userID, in)
	return args.Get(0).(domain.AccountSummary), args.Error(1)
}

func (m *mockAPI) ToggleUser(ctx context.Context, userID string) (domain.AccountSummary, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(domain.AccountSummary), args.Error(1)
}

// ============================================================================
// Mock Sessions
// ============================================================================

type mockSessions struct {
	mock.Mock
}

func (m *mockSessions) Current() state.Session {
	return m.Called().Get(0).(state.Session)
}

func (m *mockSessions) Authenticate(ctx context.Context, creds domain.Credentials) (domain.User, error) {
	args := m.Called(ctx, creds)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockSessions) Register(ctx context.Context, input domain.Registration) (domain.User, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *mockSessions) Logout(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockSessions) Restore(ctx context.Context) (state.Session, error) {
	args := m.Called(ctx)
	return args.Get(0).(state.Session), args.Error(1)
}

func (m *mockSessions) UpdateRole(ctx context.Context, role string) error {
	return m.Called(ctx, role).Error(0)
}

// ============================================================================
// Mock Carts
// ============================================================================

type mockCarts struct {
	mock.Mock
}

func (m *mockCarts) Snapshot() state.Cart {
	return m.Called().Get(0).(state.Cart)
}

func (m *mockCarts) Fetch(ctx context.Context) (state.Cart, error) {
	args := m.Called(ctx)
	return args.Get(0).(state.Cart), args.Error(1)
}

func (m *mockCarts) AddOrSetQuantity(ctx context.Context, productID string, quantity int, color, size string) (state.Cart, error) {
	args := m.Called(ctx, productID, quantity, color, size)
	return args.Get(0).(state.Cart), args.Error(1)
}

func (m *mockCarts) Increment(ctx context.Context, productID string, delta int, color, size string) (state.Cart, error) {
	args := m.Called(ctx, productID, delta, color, size)
	return args.Get(0).(state.Cart), args.Error(1)
}

func (m *mockCarts) RemoveItem(ctx context.Context, productID string) (state.Cart, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(state.Cart), args.Error(1)
}

func (m *mockCarts) Clear() state.Cart {
	return m.Called().Get(0).(state.Cart)
}
