package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/UMwai/um-biotech-catalyst-radar/config"
	configPostgre "github.com/UMwai/um-biotech-catalyst-radar/config/postgre"
	configRedis "github.com/UMwai/um-biotech-catalyst-radar/config/redis"
	alertingRepo "github.com/UMwai/um-biotech-catalyst-radar/internal/alerting/repository/postgre"
	alertingUsecase "github.com/UMwai/um-biotech-catalyst-radar/internal/alerting/usecase"
	feedRepo "github.com/UMwai/um-biotech-catalyst-radar/internal/feed/postgre"
	searchRepo "github.com/UMwai/um-biotech-catalyst-radar/internal/search/repository/postgre"
	searchUsecase "github.com/UMwai/um-biotech-catalyst-radar/internal/search/usecase"
	"github.com/UMwai/um-biotech-catalyst-radar/internal/sweep"
	sweepUsecase "github.com/UMwai/um-biotech-catalyst-radar/internal/sweep/usecase"
	userRepo "github.com/UMwai/um-biotech-catalyst-radar/internal/user/repository/postgre"
	userUsecase "github.com/UMwai/um-biotech-catalyst-radar/internal/user/usecase"
	"github.com/UMwai/um-biotech-catalyst-radar/internal/watchlist"
	watchlistRepo "github.com/UMwai/um-biotech-catalyst-radar/internal/watchlist/repository/postgre"
	watchlistUsecase "github.com/UMwai/um-biotech-catalyst-radar/internal/watchlist/usecase"
	"github.com/UMwai/um-biotech-catalyst-radar/pkg/log"
	pkgRedis "github.com/UMwai/um-biotech-catalyst-radar/pkg/redis"
	"github.com/UMwai/um-biotech-catalyst-radar/pkg/sendgrid"
	"github.com/UMwai/um-biotech-catalyst-radar/pkg/slack"
	"github.com/UMwai/um-biotech-catalyst-radar/pkg/twilio"
)

func main() {
	runOnce := flag.Bool("once", false, "run both sweeps once and exit")
	flag.Parse()

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

	ctx := context.Background()
	logger.Info(ctx, "Starting catalyst alert worker...")

	// Initialize PostgreSQL
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

	// Channel senders. Unconfigured channels stay nil and are skipped
	// at dispatch.
	var emailSender sendgrid.ISendGrid
	if cfg.SendGrid.APIKey != "" {
		emailSender, err = sendgrid.New(logger, sendgrid.Config{
			APIKey:    cfg.SendGrid.APIKey,
			FromEmail: cfg.SendGrid.FromEmail,
			FromName:  cfg.SendGrid.FromName,
			Timeout:   cfg.Engine.ChannelTimeout,
		})
		if err != nil {
			logger.Warnf(ctx, "SendGrid not configured: %v", err)
		}
	}

	var smsSender twilio.ITwilio
	if cfg.Twilio.AccountSID != "" {
		smsSender, err = twilio.New(logger, twilio.Config{
			AccountSID: cfg.Twilio.AccountSID,
			AuthToken:  cfg.Twilio.AuthToken,
			FromNumber: cfg.Twilio.FromNumber,
			Timeout:    cfg.Engine.ChannelTimeout,
		})
		if err != nil {
			logger.Warnf(ctx, "Twilio not configured: %v", err)
		}
	}

	slackSender := slack.New(logger, cfg.Engine.ChannelTimeout)

	// Repositories
	alertStore := alertingRepo.New(logger, postgresDB)
	searchStore := searchRepo.New(logger, postgresDB)
	feedStore := feedRepo.New(logger, postgresDB)
	userStore := userRepo.New(logger, postgresDB)
	watchlistStore := watchlistRepo.New(logger, postgresDB)

	// Usecases
	alertingUC := alertingUsecase.New(logger, alertStore, redisClient, emailSender, smsSender, slackSender)
	searchUC := searchUsecase.New(logger, feedStore, searchStore)
	userUC := userUsecase.New(logger, userStore)

	watchlistUC, err := watchlistUsecase.New(logger, feedStore, alertStore, redisClient, watchlist.Config{
		Staircase:          watchlist.DefaultStaircase,
		StaircaseRetention: cfg.Engine.StaircaseRetention,
		RedFlagDedupWindow: cfg.Engine.RedFlagDedupWindow,
		Horizon:            cfg.Engine.WatchlistHorizon,
	})
	if err != nil {
		logger.Error(ctx, "Failed to build watchlist usecase: ", err)
		return
	}

	sweepUC := sweepUsecase.New(logger, searchStore, searchUC, userUC, alertStore, alertingUC, watchlistUC, watchlistStore)

	if *runOnce {
		scheduler := sweep.NewScheduler(logger, sweepUC)
		if err := scheduler.RunOnce(ctx); err != nil {
			logger.Error(ctx, "One-shot sweep failed: ", err)
			os.Exit(1)
		}
		return
	}

	// Start cron-driven sweeps
	scheduler := sweep.NewScheduler(logger, sweepUC)
	if err := scheduler.Start(cfg.Scheduler.SearchSweepSpec, cfg.Scheduler.WatchlistSweepSpec); err != nil {
		logger.Error(ctx, "Failed to start scheduler: ", err)
		return
	}
	logger.Infof(ctx, "Scheduler started (search: %q, watchlist: %q)",
		cfg.Scheduler.SearchSweepSpec, cfg.Scheduler.WatchlistSweepSpec)

	// Wait for shutdown signal
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	logger.Info(ctx, <-ch)
	logger.Info(ctx, "Stopping worker...")

	scheduler.Stop()
	logger.Info(ctx, "Worker stopped gracefully")
}
