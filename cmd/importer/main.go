package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"hotel_booking/internal/adapters/catalogfeed"
	"hotel_booking/internal/adapters/observability"
	redisad "hotel_booking/internal/adapters/redis"
	"hotel_booking/internal/app"
	"hotel_booking/internal/domain"
	"hotel_booking/internal/shared"
	"hotel_booking/internal/storage/sqlstore"
)

func main() {
	cfg := shared.Load()

	var (
		location = flag.String("catalog", "", "catalog JSON file path or http(s) URL")
		token    = flag.String("token", os.Getenv("CATALOG_TOKEN"), "bearer token for remote catalogs")
		workers  = flag.Int("workers", cfg.ImportWorkers, "hotels imported concurrently")
	)
	flag.Parse()
	if *location == "" && flag.NArg() > 0 {
		*location = flag.Arg(0)
	}

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	if *location == "" {
		log.Fatal().Msg("usage: importer -catalog <file|url>")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, cfg, *location, *token, *workers)
	stop()
	if err != nil {
		log.Error().Err(err).Msg("import failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg shared.Config, location, token string, workers int) error {
	log.Info().
		Str("catalog", location).
		Int("workers", workers).
		Str("driver", cfg.DBDriver).
		Msg("importer starting")

	dialect, err := sqlstore.ParseDialect(cfg.DBDriver)
	if err != nil {
		return err
	}
	repo, err := sqlstore.Open(ctx, dialect, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("database init: %w", err)
	}
	defer repo.Close()

	src, err := catalogfeed.Source(location, token, cfg.FeedRPS)
	if err != nil {
		return err
	}

	var cache domain.Cache = app.NopCache{}
	if cfg.RedisAddr != "" {
		rc := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		defer rc.Close()
		cache = rc
	}

	fctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	cat, err := src.FetchCatalog(fctx)
	cancel()
	if err != nil {
		return fmt.Errorf("fetch catalog: %w", err)
	}
	log.Info().Int("hotels", len(cat.Hotels)).Msg("catalog loaded")

	imp := app.NewCatalogImporter(repo, cache)
	sum, err := imp.ImportCatalog(ctx, cat, workers)
	log.Info().
		Int("inserted", sum.Inserted).
		Int("skipped", sum.Skipped).
		Int("failed", sum.Failed).
		Msg("import completed")
	if err != nil {
		return fmt.Errorf("import interrupted: %w", err)
	}
	if sum.Failed > 0 {
		return fmt.Errorf("%d of %d hotels failed", sum.Failed, len(cat.Hotels))
	}
	return nil
}
