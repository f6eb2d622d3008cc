package router

import (
	"net/http"

	"trimmers-api/internal/handler"
	"trimmers-api/internal/middleware"
	"trimmers-api/internal/model"
	"trimmers-api/internal/response"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// APIPrefix is the path prefix of every API route.
const APIPrefix = "/api/v1"

// Options wires the router.
type Options struct {
	Products *handler.ProductHandler
	Reviews  *handler.ReviewHandler
	Auth     *handler.AuthHandler
	Orders   *handler.OrderHandler

	// Tokens validates session tokens for authenticated routes.
	Tokens middleware.TokenParser

	// Metrics records request metrics; nil disables them.
	Metrics *middleware.HTTPMetrics
	// Gatherer backs /metrics; nil disables the endpoint.
	Gatherer prometheus.Gatherer

	// UploadDir is served under /uploads/ when set.
	UploadDir string
}

// New creates a new HTTP router with all routes and middleware configured.
func New(opts Options, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Apply middleware in order: Recovery -> Logging -> CORS -> Metrics
	r.Use(
		middleware.Recovery(logger),
		middleware.Logging(logger),
		middleware.CORS,
		opts.Metrics.Middleware,
	)

	// Set before any Route call so sub-routers inherit them.
	r.NotFound(response.NotFound)
	r.MethodNotAllowed(response.NotFound)

	h := func(fn handler.Func) http.HandlerFunc {
		return handler.Handle(fn, logger)
	}
	authenticate := middleware.Authenticate(opts.Tokens, logger)
	adminOnly := middleware.AuthorizeRoles(logger, model.RoleAdmin)

	r.Get("/health", h(handler.Health))

	if opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	if opts.UploadDir != "" {
		r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(opts.UploadDir))))
	}

	r.Route(APIPrefix, func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h(opts.Auth.Register))
			r.Post("/login", h(opts.Auth.Login))
			r.Get("/logout", h(opts.Auth.Logout))
		})

		r.With(authenticate).Get("/users/showMe", h(opts.Auth.ShowMe))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h(opts.Products.List))
			r.With(authenticate, adminOnly).Post("/", h(opts.Products.Create))
			r.With(authenticate, adminOnly).Post("/uploadImage", h(opts.Products.UploadImage))
			r.Get("/{id}", h(opts.Products.Get))
			r.With(authenticate, adminOnly).Patch("/{id}", h(opts.Products.Update))
			r.With(authenticate, adminOnly).Delete("/{id}", h(opts.Products.Delete))
			r.Get("/{id}/reviews", h(opts.Reviews.ListByProduct))
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", h(opts.Reviews.List))
			r.With(authenticate).Post("/", h(opts.Reviews.Create))
			r.Get("/{id}", h(opts.Reviews.Get))
			r.With(authenticate).Patch("/{id}", h(opts.Reviews.Update))
			r.With(authenticate).Delete("/{id}", h(opts.Reviews.Delete))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Use(authenticate)
			r.With(adminOnly).Get("/", h(opts.Orders.List))
			r.Post("/", h(opts.Orders.Create))
			r.Get("/showAllMyOrders", h(opts.Orders.ListMine))
			r.Get("/{id}", h(opts.Orders.Get))
			r.Patch("/{id}", h(opts.Orders.Update))
		})
	})

	return r
}
