package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jewelmandi/jewelmandi-backend/api/controllers"
	"github.com/jewelmandi/jewelmandi-backend/api/middleware"
	authsvc "github.com/jewelmandi/jewelmandi-backend/internal/auth"
	"github.com/jewelmandi/jewelmandi-backend/internal/catalog"
	"github.com/jewelmandi/jewelmandi-backend/internal/customers"
	"github.com/jewelmandi/jewelmandi-backend/internal/dashboard"
	"github.com/jewelmandi/jewelmandi-backend/internal/orders"
	"github.com/jewelmandi/jewelmandi-backend/internal/variants"
	"github.com/jewelmandi/jewelmandi-backend/pkg/auth/session"
	"github.com/jewelmandi/jewelmandi-backend/pkg/config"
	"github.com/jewelmandi/jewelmandi-backend/pkg/logger"
	"github.com/jewelmandi/jewelmandi-backend/pkg/redis"
)

// Services bundles everything the router hands to controllers.
type Services struct {
	Auth      authsvc.Service
	Catalog   catalog.Service
	Variants  variants.Service
	Customers customers.Service
	Orders    orders.Service
	Dashboard dashboard.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisClient *redis.Client,
	sessions session.AccessSessionChecker,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, redisClient, logg))
	})

	r.Route("/api/auth", func(r chi.Router) {
		r.With(middleware.Idempotency(redisClient, logg)).Post("/register", controllers.Register(svcs.Auth, logg))
		r.Post("/login", controllers.Login(svcs.Auth, logg))
		r.Post("/refresh", controllers.Refresh(svcs.Auth, logg))
		r.With(middleware.Auth(cfg.JWT, sessions, logg)).Post("/logout", controllers.Logout(svcs.Auth, logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessions, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		admin := middleware.RequireAdmin(logg)

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.ListCategories(svcs.Catalog, logg))
			r.With(admin).Post("/", controllers.CreateCategory(svcs.Catalog, logg))
			r.With(admin).Put("/{id}", controllers.UpdateCategory(svcs.Catalog, logg))
			r.With(admin).Delete("/{id}", controllers.DeleteCategory(svcs.Catalog, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(svcs.Catalog, logg))
			r.Get("/{id}", controllers.GetProduct(svcs.Catalog, logg))
			r.With(admin).Post("/", controllers.CreateProduct(svcs.Catalog, logg))
			r.With(admin).Put("/{id}", controllers.UpdateProduct(svcs.Catalog, logg))
			r.With(admin).Delete("/{id}", controllers.DeleteProduct(svcs.Catalog, logg))
		})

		r.Route("/variants", func(r chi.Router) {
			r.Get("/", controllers.ListVariants(svcs.Variants, logg))
			r.Get("/{id}", controllers.GetVariant(svcs.Variants, logg))
			r.Get("/{id}/quote", controllers.QuoteVariant(svcs.Variants, logg))
			r.With(admin).Post("/", controllers.CreateVariant(svcs.Variants, logg))
			r.With(admin).Put("/{id}", controllers.UpdateVariant(svcs.Variants, logg))
			r.With(admin).Delete("/{id}", controllers.DeleteVariant(svcs.Variants, logg))
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", controllers.ListCustomers(svcs.Customers, logg))
			r.Get("/{id}", controllers.GetCustomer(svcs.Customers, logg))
			r.With(admin).Post("/", controllers.CreateCustomer(svcs.Customers, logg))
			r.With(admin).Put("/{id}", controllers.UpdateCustomer(svcs.Customers, logg))
			r.With(admin).Delete("/{id}", controllers.DeleteCustomer(svcs.Customers, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(svcs.Orders, logg))
			r.Get("/{id}", controllers.GetOrder(svcs.Orders, logg))
			r.With(admin).Post("/", controllers.CreateOrder(svcs.Orders, logg))
			r.With(admin).Put("/{id}", controllers.UpdateOrder(svcs.Orders, logg))
			// DELETE cancels; orders are never hard-deleted.
			r.With(admin).Delete("/{id}", controllers.CancelOrder(svcs.Orders, logg))
		})

		r.Get("/dashboard", controllers.Dashboard(svcs.Dashboard, logg))
	})

	return r
}
