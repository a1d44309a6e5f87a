package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mateovilla/tradein-backend/api/routes"
	"github.com/mateovilla/tradein-backend/internal/catalog"
	"github.com/mateovilla/tradein-backend/internal/catalogcsv"
	"github.com/mateovilla/tradein-backend/internal/criteria"
	"github.com/mateovilla/tradein-backend/internal/lookup"
	"github.com/mateovilla/tradein-backend/internal/pricing"
	"github.com/mateovilla/tradein-backend/pkg/config"
	"github.com/mateovilla/tradein-backend/pkg/db"
	"github.com/mateovilla/tradein-backend/pkg/logger"
	"github.com/mateovilla/tradein-backend/pkg/metrics"
	"github.com/mateovilla/tradein-backend/pkg/migrate"
	"github.com/mateovilla/tradein-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	searchCache := lookup.NewSearchCache(redisClient, cfg.Search.CacheTTL, logg)

	catalogRepo := catalog.NewRepository(dbClient.DB())
	criteriaRepo := criteria.NewRepository(dbClient.DB())

	svcs := routes.Services{
		Lookup:   lookup.NewService(catalogRepo, criteriaRepo, searchCache, cfg.Search.Timeout, logg),
		Pricing:  pricing.NewService(catalogRepo, criteriaRepo, logg),
		Catalog:  catalog.NewService(dbClient, catalogRepo, searchCache, logg),
		Criteria: criteria.NewService(criteriaRepo),
		Importer: catalogcsv.NewImporter(catalogRepo, criteriaRepo, searchCache, logg),
		Exporter: catalogcsv.NewExporter(catalogRepo, criteriaRepo),
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, httpMetrics, registry, svcs),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
