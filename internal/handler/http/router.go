package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/internal/catalog"
	"github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/internal/service"
	"github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/pkg/health"
	"github.com/Durgaprasad-77/Vrunda-Vihas-Opus-Edition-sub001/pkg/middleware"
)

// ServiceName labels metrics and spans emitted by the router.
const ServiceName = "storefront"

// RouterConfig holds the transport settings of the router.
type RouterConfig struct {
	CORS            middleware.CORSConfig
	Session         SessionConfig
	RequestTimeout  time.Duration
	CatalogCacheAge int // seconds
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(
	cartService *service.CartService,
	catalogService *catalog.Service,
	healthHandler *health.Handler,
	cfg RouterConfig,
	logger *slog.Logger,
) http.Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(cfg.RequestTimeout))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics(ServiceName))
	r.Use(middleware.Tracing(ServiceName))
	r.Use(middleware.CORS(cfg.CORS))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	cartHandler := NewCartHandler(cartService, logger)
	catalogHandler := NewCatalogHandler(catalogService, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(Session(cfg.Session))
		r.Use(middleware.RequestLogger(logger))

		r.Route("/products", func(r chi.Router) {
			if cfg.CatalogCacheAge > 0 {
				r.Use(middleware.CacheControl(cfg.CatalogCacheAge))
			}
			r.Get("/", catalogHandler.ListProducts)
			r.Get("/slug/{slug}", catalogHandler.GetProductBySlug)
			r.Get("/{id}", catalogHandler.GetProduct)
			r.Get("/{id}/related", catalogHandler.RelatedProducts)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.NoStore)
			r.Use(ContentTypeJSON)

			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Get("/totals", cartHandler.GetTotals)

			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{productId}", cartHandler.UpdateItemQuantity)
			r.Delete("/items/{productId}", cartHandler.RemoveItem)

			r.Post("/open", cartHandler.OpenCart)
			r.Post("/close", cartHandler.CloseCart)
			r.Post("/toggle", cartHandler.ToggleCart)
		})
	})

	return r
}
