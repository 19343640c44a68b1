package http

import (
	"context"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/internal/state"
)

// Sessions is the session container as seen by the handlers.
type Sessions interface {
	Current() state.Session
	Authenticate(ctx context.Context, creds domain.Credentials) (domain.User, error)
	Register(ctx context.Context, input domain.Registration) (domain.User, error)
	Logout(ctx context.Context) error
	Restore(ctx context.Context) (state.Session, error)
	UpdateRole(ctx context.Context, role string) error
}

// Carts is the cart container as seen by the handlers.
type Carts interface {
	Snapshot() state.Cart
	Fetch(ctx context.Context) (state.Cart, error)
	AddOrSetQuantity(ctx context.Context, productID string, quantity int, color, size string) (state.Cart, error)
	Increment(ctx context.Context, productID string, delta int, color, size string) (state.Cart, error)
	RemoveItem(ctx context.Context, productID string) (state.Cart, error)
	Clear() state.Cart
}

// Wishlists is the wishlist container as seen by the handlers.
type Wishlists interface {
	Load(ids []string) []string
	Add(id string) []string
	Remove(id string) []string
	Toggle(id string) bool
	Clear()
	Contains(id string) bool
	Items() []string
}

// Catalog covers the public catalog reads.
type Catalog interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	Products(ctx context.Context, q domain.ProductQuery) (domain.ProductPage, error)
	Product(ctx context.Context, id string) (domain.Product, error)
}

// Orders covers checkout and every order listing.
type Orders interface {
	CreateOrder(ctx context.Context, in domain.NewOrder) (domain.Order, error)
	MyOrders(ctx context.Context) ([]domain.Order, error)
	StoreOrders(ctx context.Context) ([]domain.Order, error)
	SetOrderStatus(ctx context.Context, orderID string, in domain.AdminStatusUpdate) (domain.Order, error)
	SetStoreOrderStatus(ctx context.Context, orderID string, in domain.StoreStatusUpdate) (domain.Order, error)
	SuccessfulOrders(ctx context.Context) ([]domain.Order, error)
	SuccessfulOrder(ctx context.Context, orderID string) (domain.Order, error)
	Invoices(ctx context.Context) ([]domain.Invoice, error)
	Invoice(ctx context.Context, orderID string) (domain.Invoice, error)
}

// Merchant covers the seller's store management.
type Merchant interface {
	CreateProduct(ctx context.Context, in domain.NewProduct) (domain.Product, error)
	UploadLogo(ctx context.Context, logo domain.Upload) (domain.Store, error)
	StoreAnalytics(ctx context.Context) (domain.Analytics, error)
}

// Admin covers the administrator console.
type Admin interface {
	AdminSummary(ctx context.Context) (domain.AdminSummary, error)
	AdminDashboard(ctx context.Context) (domain.Analytics, error)
	Users(ctx context.Context) ([]domain.AccountSummary, error)
	SetUserRole(ctx context.Context, userID string, in domain.RoleUpdate) (domain.AccountSummary, error)
	ToggleUser(ctx context.Context, userID string) (domain.AccountSummary, error)
}

// API is everything the handlers forward to the storefront API.
type API interface {
	Catalog
	Orders
	Merchant
	Admin
}
