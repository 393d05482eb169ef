package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dreshoplabs/dreshop-backend/api/controllers"
	"github.com/dreshoplabs/dreshop-backend/api/middleware"
	"github.com/dreshoplabs/dreshop-backend/internal/catalog"
	checkoutsvc "github.com/dreshoplabs/dreshop-backend/internal/checkout"
	sessionsvc "github.com/dreshoplabs/dreshop-backend/internal/session"
	"github.com/dreshoplabs/dreshop-backend/pkg/auth/session"
	"github.com/dreshoplabs/dreshop-backend/pkg/config"
	"github.com/dreshoplabs/dreshop-backend/pkg/db"
	"github.com/dreshoplabs/dreshop-backend/pkg/logger"
	"github.com/dreshoplabs/dreshop-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessionManager *session.Manager,
	catalogService catalog.Service,
	sessionService sessionsvc.Service,
	checkoutService checkoutsvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(
			middleware.Session(sessionManager, logg),
			middleware.Idempotency(redisClient, logg),
		)

		r.Get("/ping", controllers.SessionPing())

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(catalogService, logg))
			r.Get("/facets", controllers.ProductFacets(catalogService, cfg, logg))
			r.Get("/{productID}", controllers.ProductDetail(catalogService, logg))
		})

		r.Get("/search", controllers.Search(catalogService, sessionService, logg))
		r.Route("/search-history", func(r chi.Router) {
			r.Get("/", controllers.SearchHistory(sessionService, logg))
			r.Delete("/", controllers.ClearSearchHistory(sessionService, logg))
		})

		r.Route("/state", func(r chi.Router) {
			r.Get("/", controllers.StateGet(sessionService, logg))
			r.Delete("/", controllers.StateReset(sessionService, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(sessionService, logg))
			r.Delete("/", controllers.CartClear(sessionService, logg))
			r.Post("/items", controllers.CartAddItem(sessionService, logg))
			r.Put("/items/{productID}", controllers.CartUpdateItem(sessionService, logg))
			r.Delete("/items/{productID}", controllers.CartRemoveItem(sessionService, logg))
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", controllers.WishlistGet(sessionService, logg))
			r.Post("/items", controllers.WishlistAddItem(sessionService, logg))
			r.Delete("/items/{productID}", controllers.WishlistRemoveItem(sessionService, logg))
		})

		r.Route("/comparison", func(r chi.Router) {
			r.Get("/", controllers.ComparisonGet(sessionService, logg))
			r.Delete("/", controllers.ComparisonClear(sessionService, logg))
			r.Post("/items", controllers.ComparisonAddItem(sessionService, logg))
			r.Delete("/items/{productID}", controllers.ComparisonRemoveItem(sessionService, logg))
		})

		r.Route("/recently-viewed", func(r chi.Router) {
			r.Get("/", controllers.RecentlyViewedGet(sessionService, logg))
			r.Post("/", controllers.RecentlyViewedRecord(sessionService, logg))
			r.Delete("/", controllers.RecentlyViewedClear(sessionService, logg))
		})

		r.Route("/preferences", func(r chi.Router) {
			r.Get("/", controllers.PreferencesGet(sessionService, logg))
			r.Patch("/", controllers.PreferencesUpdate(sessionService, logg))
		})

		r.Post("/checkout", controllers.Checkout(checkoutService, logg))
	})

	return r
}
