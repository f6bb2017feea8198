package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/utafrali/reviews-service/internal/service"
	"github.com/utafrali/reviews-service/pkg/health"
	"github.com/utafrali/reviews-service/pkg/middleware"
)

// catalogMaxAge is the Cache-Control lifetime for the slow-moving attribute
// and characteristic catalogs, in seconds.
const catalogMaxAge = 300

// NewRouter creates a chi router with all review service routes registered.
func NewRouter(
	reviewService *service.ReviewService,
	catalogService *service.CatalogService,
	healthHandler *health.Handler,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics("reviews-service"))

	// Health check and metrics endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	reviewHandler := NewReviewHandler(reviewService, logger)
	catalogHandler := NewCatalogHandler(catalogService, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", reviewHandler.ListReviews)
			r.Get("/verified", reviewHandler.ListVerifiedReviews)
			r.Get("/batch", reviewHandler.BatchReviews)
			r.Get("/counts/legacy", reviewHandler.GetLegacyReviewCounts)
			r.Get("/{reviewID}", reviewHandler.GetReview)
			r.Get("/{reviewID}/ratings/{attributeID}", reviewHandler.GetReviewAttributeRating)
		})

		r.Route("/products/{productID}", func(r chi.Router) {
			r.Get("/reviews", reviewHandler.ListProductReviews)
			r.Get("/reviews/count", reviewHandler.GetProductReviewCount)
			r.Post("/reviews/sort", reviewHandler.SortReviews)
			r.With(middleware.CacheControl(catalogMaxAge)).Get("/attributes", catalogHandler.ListProductAttributes)
		})

		r.Route("/authors/{authorID}", func(r chi.Router) {
			r.Get("/reviews", reviewHandler.ListAuthorReviews)
			r.Get("/characteristics", catalogHandler.ListAuthorCharacteristics)
		})

		r.Route("/attributes", func(r chi.Router) {
			r.Use(middleware.CacheControl(catalogMaxAge))

			r.Get("/", catalogHandler.ListAttributes)
			r.Get("/{attributeID}", catalogHandler.GetAttribute)
		})

		r.Route("/characteristics", func(r chi.Router) {
			r.Use(middleware.CacheControl(catalogMaxAge))

			r.Get("/", catalogHandler.ListCharacteristics)
			r.Get("/{charstcsID}", catalogHandler.GetCharacteristic)
		})

		r.Get("/tables", ListTables)
	})

	return r
}
