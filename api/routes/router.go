package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nayeemjohny/pcbuilder-backend/api/controllers"
	"github.com/nayeemjohny/pcbuilder-backend/api/middleware"
	"github.com/nayeemjohny/pcbuilder-backend/internal/builder"
	"github.com/nayeemjohny/pcbuilder-backend/internal/builds"
	"github.com/nayeemjohny/pcbuilder-backend/internal/catalog"
	"github.com/nayeemjohny/pcbuilder-backend/internal/compat"
	"github.com/nayeemjohny/pcbuilder-backend/pkg/config"
	"github.com/nayeemjohny/pcbuilder-backend/pkg/db"
	"github.com/nayeemjohny/pcbuilder-backend/pkg/logger"
	"github.com/nayeemjohny/pcbuilder-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	registry *prometheus.Registry,
	catalogService catalog.Service,
	compatService compat.Service,
	builderService builder.Service,
	buildsService builds.Service,
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
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/catalog", func(r chi.Router) {
		r.Get("/products", controllers.ListProducts(catalogService, logg))
		r.Get("/products/{productId}", controllers.GetProduct(catalogService, logg))
	})

	r.Route("/api/v1/compat", func(r chi.Router) {
		r.Get("/cpu/{productId}/motherboards", controllers.CompatMotherboards(compatService, logg))
		r.Get("/motherboard/{productId}/memory", controllers.CompatMemory(compatService, logg))
	})

	r.Route("/api/v1/builder", func(r chi.Router) {
		r.Get("/policies", controllers.BuilderPolicies())
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", controllers.CreateBuilderSession(builderService, logg))
			r.Route("/{sessionId}", func(r chi.Router) {
				r.Get("/", controllers.GetBuilderSession(builderService, logg))
				r.Delete("/", controllers.DeleteBuilderSession(builderService, logg))
				r.Post("/clear", controllers.ClearBuilderSession(builderService, logg))
				r.Put("/mode", controllers.SetBuilderMode(builderService, logg))
				r.Get("/summary", controllers.BuilderSummary(builderService, logg))
				r.Get("/candidates", controllers.BuilderCandidates(builderService, logg))
				r.Route("/slots", func(r chi.Router) {
					r.Post("/", controllers.AddBuilderSlot(builderService, logg))
					r.Delete("/{slotId}", controllers.RemoveBuilderSlot(builderService, logg))
					r.Post("/{slotId}/select", controllers.SelectBuilderSlot(builderService, logg))
					r.Patch("/{slotId}", controllers.UpdateBuilderSlot(builderService, logg))
				})
			})
		})
	})

	r.Route("/api/v1/builds", func(r chi.Router) {
		r.Get("/", controllers.BuildFeed(buildsService, logg))
		r.Post("/", controllers.PublishBuild(buildsService, logg))
		r.Get("/{buildId}", controllers.GetBuild(buildsService, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.AdminAuth(cfg.AdminAuth, logg))
		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.AdminCreateProduct(catalogService, logg))
			r.Patch("/{productId}", controllers.AdminUpdateProduct(catalogService, logg))
			r.Delete("/{productId}", controllers.AdminDeleteProduct(catalogService, logg))
			r.Put("/{productId}/prices", controllers.AdminReplacePrices(catalogService, logg))
		})
	})

	return r
}
