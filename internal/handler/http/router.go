package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/storefront/internal/domain"
	"github.com/utafrali/storefront/pkg/health"
	"github.com/utafrali/storefront/pkg/middleware"
)

// serviceName labels metrics and spans of the companion service.
const serviceName = "storefront"

// catalogMaxAge is how long the UI may reuse catalog reads, in seconds.
const catalogMaxAge = 60

// Deps are the collaborators the router dispatches to.
type Deps struct {
	API      API
	Sessions Sessions
	Cart     Carts
	Wishlist Wishlists
	Health   *health.Handler
	Logger   *slog.Logger

	CORS       middleware.CORSConfig
	PprofCIDRs []string
}

// NewRouter creates a chi router with all companion routes registered.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.CORS(d.CORS))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(d.Logger))
	r.Use(middleware.PrometheusMetrics(serviceName))
	r.Use(middleware.Tracing(serviceName))
	r.Use(middleware.RequestLogger(d.Logger))

	// Health check endpoints
	r.Get("/health/live", d.Health.LivenessHandler())
	r.Get("/health/ready", d.Health.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	middleware.RegisterPprof(r, d.PprofCIDRs, d.Logger)

	sessionHandler := NewSessionHandler(d.Sessions, d.Logger)
	catalogHandler := NewCatalogHandler(d.API, d.Logger)
	cartHandler := NewCartHandler(d.Cart, d.Logger)
	wishlistHandler := NewWishlistHandler(d.Wishlist, d.Logger)
	orderHandler := NewOrderHandler(d.API, d.Cart, d.Logger)
	storeHandler := NewStoreHandler(d.API, d.Logger)
	adminHandler := NewAdminHandler(d.API, d.Sessions, d.Logger)

	signedIn := middleware.RequireSession(principalFrom(d.Sessions))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Group(func(r chi.Router) {
			r.Use(middleware.CacheControl(catalogMaxAge))

			r.Get("/categories", catalogHandler.ListCategories)
			r.Get("/products", catalogHandler.ListProducts)
			r.Get("/products/{id}", catalogHandler.GetProduct)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.NoStore)

			r.Route("/session", func(r chi.Router) {
				r.Get("/", sessionHandler.Me)
				r.Post("/login", sessionHandler.Login)
				r.Post("/register", sessionHandler.Register)
				r.Post("/logout", sessionHandler.Logout)
				r.Post("/restore", sessionHandler.Restore)
			})

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", wishlistHandler.GetWishlist)
				r.Put("/", wishlistHandler.LoadWishlist)
				r.Delete("/", wishlistHandler.ClearWishlist)
				r.Get("/{productId}", wishlistHandler.Contains)
				r.Put("/{productId}", wishlistHandler.AddItem)
				r.Delete("/{productId}", wishlistHandler.RemoveItem)
				r.Post("/{productId}/toggle", wishlistHandler.Toggle)
			})

			r.Group(func(r chi.Router) {
				r.Use(signedIn)

				r.Route("/cart", func(r chi.Router) {
					r.Get("/", cartHandler.GetCart)
					r.Delete("/", cartHandler.ClearCart)
					r.Post("/items", cartHandler.SetItem)
					r.Post("/items/{productId}/increment", cartHandler.Increment)
					r.Delete("/items/{productId}", cartHandler.RemoveItem)
				})

				r.Route("/orders", func(r chi.Router) {
					r.Get("/", orderHandler.MyOrders)
					r.Post("/", orderHandler.CreateOrder)
				})

				r.Route("/store", func(r chi.Router) {
					r.Use(middleware.RequireRole(domain.RoleSeller))

					r.Get("/orders", orderHandler.StoreOrders)
					r.Put("/orders/{orderId}/status", orderHandler.SetStoreOrderStatus)
					r.Get("/orders/successful", orderHandler.SuccessfulOrders)
					r.Get("/orders/successful/{orderId}", orderHandler.SuccessfulOrder)
					r.Get("/invoices", orderHandler.Invoices)
					r.Get("/invoices/{orderId}", orderHandler.Invoice)
					r.Post("/products", storeHandler.CreateProduct)
					r.Post("/logo", storeHandler.UploadLogo)
					r.Get("/analytics", storeHandler.Analytics)
				})

				r.Route("/admin", func(r chi.Router) {
					r.Use(middleware.RequireRole(domain.RoleAdmin))

					r.Get("/summary", adminHandler.Summary)
					r.Get("/dashboard", adminHandler.Dashboard)
					r.Get("/users", adminHandler.ListUsers)
					r.Put("/users/{id}/role", adminHandler.SetRole)
					r.Patch("/users/{id}/toggle", adminHandler.ToggleUser)
					r.Put("/orders/{orderId}/status", orderHandler.SetOrderStatus)
				})
			})
		})
	})

	return r
}
