package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"anoa.com/leadercircle/internal/config"
	"anoa.com/leadercircle/internal/devapi"
	"anoa.com/leadercircle/pkg/database"
	"anoa.com/leadercircle/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error().Err(err).Msg("failed to load config")
		os.Exit(1)
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(cfg.LogLevel),
		Pretty: cfg.LogPretty,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error().Err(err).Msg("devapi stopped")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	if err := devapi.Migrate(db); err != nil {
		return err
	}
	if cfg.IsDevelopment() {
		if err := devapi.Seed(db); err != nil {
			return err
		}
	}

	rdb, err := devapi.OpenRedis(ctx, cfg.RedisURL)
	if err != nil {
		logger.Warn().Err(err).Msg("redis unavailable, message rate limiting disabled")
		rdb = nil
	}

	deps := devapi.Deps{DB: db, Redis: rdb}
	if cfg.MeiliSearchHost != "" {
		deps.Search = devapi.NewMeiliSearch(cfg.MeiliSearchHost, cfg.MeiliMasterKey)
		if err := devapi.IndexAll(ctx, devapi.NewStore(db), deps.Search); err != nil {
			logger.Warn().Err(err).Msg("initial search indexing failed")
		}
	}

	server := devapi.NewServer(cfg, deps)
	defer server.Close()

	return server.Run(ctx, ":"+cfg.Port)
}
