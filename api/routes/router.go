package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mateovilla/tradein-backend/api/controllers"
	"github.com/mateovilla/tradein-backend/api/middleware"
	"github.com/mateovilla/tradein-backend/internal/catalog"
	"github.com/mateovilla/tradein-backend/internal/catalogcsv"
	"github.com/mateovilla/tradein-backend/internal/criteria"
	"github.com/mateovilla/tradein-backend/internal/lookup"
	"github.com/mateovilla/tradein-backend/internal/pricing"
	"github.com/mateovilla/tradein-backend/pkg/config"
	"github.com/mateovilla/tradein-backend/pkg/db"
	"github.com/mateovilla/tradein-backend/pkg/logger"
	"github.com/mateovilla/tradein-backend/pkg/metrics"
	"github.com/mateovilla/tradein-backend/pkg/redis"
)

// Services bundles everything the router hands to controllers.
type Services struct {
	Lookup   lookup.Service
	Pricing  pricing.Service
	Catalog  catalog.Service
	Criteria criteria.Service
	Importer *catalogcsv.Importer
	Exporter *catalogcsv.Exporter
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisP redis.Pinger,
	httpMetrics *metrics.HTTPMetrics,
	gatherer prometheus.Gatherer,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/devices", controllers.SearchDevices(svcs.Lookup, logg))
		r.Get("/devices/{deviceID}/attributes", controllers.DeviceAttributes(svcs.Lookup, logg))
		r.Get("/criteria", controllers.CriteriaForBrand(svcs.Lookup, logg))
		r.Post("/devices/{deviceID}/estimate/attributes", controllers.EstimateByAttributes(svcs.Pricing, logg))
		r.Post("/devices/{deviceID}/estimate/criteria", controllers.EstimateByCriteria(svcs.Pricing, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.RequireAdmin(logg))

		r.Post("/devices", controllers.AdminCreateDevice(svcs.Catalog, logg))
		r.Get("/devices/{deviceID}", controllers.AdminGetDevice(svcs.Catalog, logg))
		r.Patch("/devices/{deviceID}", controllers.AdminUpdateDevice(svcs.Catalog, logg))
		r.Delete("/devices/{deviceID}", controllers.AdminDeleteDevice(svcs.Catalog, logg))

		r.Post("/devices/{deviceID}/attributes", controllers.AdminCreateAttribute(svcs.Catalog, logg))
		r.Patch("/attributes/{attributeID}", controllers.AdminUpdateAttribute(svcs.Catalog, logg))
		r.Delete("/attributes/{attributeID}", controllers.AdminDeleteAttribute(svcs.Catalog, logg))

		r.Post("/attributes/{attributeID}/options", controllers.AdminCreateOption(svcs.Catalog, logg))
		r.Patch("/options/{optionID}", controllers.AdminUpdateOption(svcs.Catalog, logg))
		r.Delete("/options/{optionID}", controllers.AdminDeleteOption(svcs.Catalog, logg))

		r.Get("/criteria", controllers.AdminListCriteria(svcs.Criteria, logg))
		r.Post("/criteria", controllers.AdminCreateCriterion(svcs.Criteria, logg))
		r.Put("/criteria/{criterionID}", controllers.AdminUpdateCriterion(svcs.Criteria, logg))
		r.Delete("/criteria/{criterionID}", controllers.AdminDeleteCriterion(svcs.Criteria, logg))

		r.Post("/catalog/import", controllers.AdminImportCatalog(svcs.Importer, logg))
		r.Get("/catalog/export", controllers.AdminExportCatalog(svcs.Exporter, logg))
	})

	return r
}
