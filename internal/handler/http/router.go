package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/storefront/internal/catalog"
	"github.com/utafrali/storefront/internal/service"
	"github.com/utafrali/storefront/pkg/health"
	"github.com/utafrali/storefront/pkg/middleware"
)

// catalogMaxAge is how long clients may cache catalog responses.
const catalogMaxAge = 5 * time.Minute

// Deps bundles everything the router serves.
type Deps struct {
	Catalog         *catalog.Catalog
	Cart            *service.CartStore
	Wishlist        *service.WishlistStore
	Checkout        *service.CheckoutService
	Health          *health.Handler
	CORS            middleware.CORSConfig
	RateLimitRPS    float64
	RateLimitBurst  int
	PageSize        int
	DefaultMaxPrice int64
	ServiceName     string
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(deps Deps, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.CORS(deps.CORS))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics(deps.ServiceName))
	r.Use(middleware.Tracing(deps.ServiceName))
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", deps.Health.LivenessHandler())
	r.Get("/health/ready", deps.Health.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	catalogHandler := NewCatalogHandler(deps.Catalog, deps.Cart, deps.Wishlist, deps.PageSize, deps.DefaultMaxPrice, logger)
	cartHandler := NewCartHandler(deps.Cart, deps.Catalog, logger)
	wishlistHandler := NewWishlistHandler(deps.Wishlist, deps.Catalog, logger)
	checkoutHandler := NewCheckoutHandler(deps.Checkout, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(deps.RateLimitRPS, deps.RateLimitBurst, logger))
		r.Use(ContentTypeJSON)
		r.Use(CollectNotifications)

		r.Group(func(r chi.Router) {
			r.Use(middleware.CacheControl(catalogMaxAge))

			r.Get("/categories", catalogHandler.ListCategories)
			r.Get("/products", catalogHandler.ListProducts)
			r.Get("/products/featured", catalogHandler.Featured)
		})
		// Product detail carries cart and wishlist state.
		r.With(middleware.NoStore).Get("/products/{id}", catalogHandler.GetProduct)

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.NoStore)

			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{productId}", cartHandler.UpdateItemQuantity)
			r.Delete("/items/{productId}", cartHandler.RemoveItem)
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Use(middleware.NoStore)

			r.Get("/", wishlistHandler.GetWishlist)
			r.Delete("/", wishlistHandler.ClearWishlist)
			r.Post("/items", wishlistHandler.AddItem)
			r.Post("/items/{productId}/toggle", wishlistHandler.ToggleItem)
			r.Delete("/items/{productId}", wishlistHandler.RemoveItem)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Use(middleware.NoStore)

			r.Get("/summary", checkoutHandler.GetSummary)
			r.Post("/", checkoutHandler.PlaceOrder)
		})
	})

	return r
}
