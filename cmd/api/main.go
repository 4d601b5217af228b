package main

import (
	"context"
	"fmt"

	"github.com/UMwai/um-biotech-catalyst-radar/config"
	configPostgre "github.com/UMwai/um-biotech-catalyst-radar/config/postgre"
	configRedis "github.com/UMwai/um-biotech-catalyst-radar/config/redis"
	alertingRepo "github.com/UMwai/um-biotech-catalyst-radar/internal/alerting/repository/postgre"
	alertingUsecase "github.com/UMwai/um-biotech-catalyst-radar/internal/alerting/usecase"
	feedRepo "github.com/UMwai/um-biotech-catalyst-radar/internal/feed/postgre"
	"github.com/UMwai/um-biotech-catalyst-radar/internal/httpserver"
	searchRepo "github.com/UMwai/um-biotech-catalyst-radar/internal/search/repository/postgre"
	searchUsecase "github.com/UMwai/um-biotech-catalyst-radar/internal/search/usecase"
	"github.com/UMwai/um-biotech-catalyst-radar/pkg/log"
	pkgRedis "github.com/UMwai/um-biotech-catalyst-radar/pkg/redis"
	"github.com/UMwai/um-biotech-catalyst-radar/pkg/scope"
)

// @Name Biotech Catalyst Radar API
// @description Alert surface for the catalyst alert engine.
// @version 1
// @host localhost:8080
// @schemes http
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// Initialize logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	// Initialize PostgreSQL
	ctx := context.Background()
	postgresDB, err := configPostgre.Connect(ctx, cfg.Postgres)
	if err != nil {
		logger.Error(ctx, "Failed to connect to PostgreSQL: ", err)
		return
	}
	defer configPostgre.Disconnect(ctx, postgresDB)
	logger.Infof(ctx, "PostgreSQL connected successfully to %s:%d/%s", cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)

	// Initialize Redis (optional: gating degrades to Postgres without it)
	var redisClient pkgRedis.IRedis
	if cfg.Redis.Enabled {
		redisClient, err = configRedis.Connect(ctx, cfg.Redis)
		if err != nil {
			logger.Warnf(ctx, "Redis unavailable, continuing without it: %v", err)
		} else {
			defer configRedis.Disconnect(redisClient)
			logger.Info(ctx, "Redis client initialized")
		}
	}

	// JWT manager (verifies bearer tokens from the subscription system)
	jwtManager := scope.New(cfg.JWT.SecretKey)

	// Repositories
	alertStore := alertingRepo.New(logger, postgresDB)
	searchStore := searchRepo.New(logger, postgresDB)
	feedStore := feedRepo.New(logger, postgresDB)

	// Usecases. The API never dispatches, so no channel senders are wired.
	alertingUC := alertingUsecase.New(logger, alertStore, redisClient, nil, nil, nil)
	searchUC := searchUsecase.New(logger, feedStore, searchStore)

	// Initialize HTTP server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,

		AlertingUC: alertingUC,
		SearchUC:   searchUC,

		JWTManager: jwtManager,

		DB:    postgresDB,
		Redis: redisClient,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// Run blocks until SIGINT/SIGTERM and drains in-flight requests.
	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}
}
