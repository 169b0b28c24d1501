package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/nayeemjohny/pcbuilder-backend/api/routes"
	"github.com/nayeemjohny/pcbuilder-backend/internal/builder"
	"github.com/nayeemjohny/pcbuilder-backend/internal/builds"
	"github.com/nayeemjohny/pcbuilder-backend/internal/catalog"
	"github.com/nayeemjohny/pcbuilder-backend/internal/compat"
	"github.com/nayeemjohny/pcbuilder-backend/pkg/config"
	"github.com/nayeemjohny/pcbuilder-backend/pkg/db"
	"github.com/nayeemjohny/pcbuilder-backend/pkg/logger"
	"github.com/nayeemjohny/pcbuilder-backend/pkg/metrics"
	"github.com/nayeemjohny/pcbuilder-backend/pkg/migrate"
	"github.com/nayeemjohny/pcbuilder-backend/pkg/redis"
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
	builderMetrics := metrics.NewBuilderMetrics(registry)

	catalogRepo := catalog.NewRepository(dbClient.DB())
	catalogService, err := catalog.NewService(catalogRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	compatService, err := compat.NewService(catalogRepo, builderMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create compat service", err)
		os.Exit(1)
	}

	sessionStore, err := builder.NewSessionStore(redisClient, cfg.Builder.SessionTTL())
	if err != nil {
		logg.Error(context.Background(), "failed to create session store", err)
		os.Exit(1)
	}
	builderService, err := builder.NewService(sessionStore, catalogRepo, compatService, builderMetrics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create builder service", err)
		os.Exit(1)
	}

	buildsService, err := builds.NewService(builds.NewRepository(dbClient.DB()), builderService, builderMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create builds service", err)
		os.Exit(1)
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
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			registry,
			catalogService,
			compatService,
			builderService,
			buildsService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
