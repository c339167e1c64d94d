package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mediroute-service/internal/adapters/cache"
	"mediroute-service/internal/adapters/geocode"
	"mediroute-service/internal/adapters/notify"
	"mediroute-service/internal/api"
	"mediroute-service/internal/config"
	"mediroute-service/internal/platform/db"
	"mediroute-service/internal/platform/obs"
	"mediroute-service/internal/ports"
	"mediroute-service/internal/services"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// main is the application composition root.
// It wires concrete adapters (Nominatim, caches, Kafka) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := obs.NewLogger(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	obs.SetLogger(logger)

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	placeCache, closeCache, err := openPlaceCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	searcher, err := geocode.NewNominatimSearcher(geocode.Options{
		BaseURL:        cfg.Nominatim.BaseURL,
		UserAgent:      cfg.Nominatim.UserAgent,
		AcceptLanguage: cfg.Nominatim.AcceptLanguage,
		Delta:          cfg.Search.DeltaDegrees,
		Limit:          cfg.Search.ResultLimit,
		Timeout:        cfg.Nominatim.Timeout,
		Cache:          placeCache,
	})
	if err != nil {
		return err
	}

	finder, err := services.NewRouteFinder(searcher, services.RouteFinderOptions{
		Categories: cfg.Search.Categories,
		ETA: services.ETAConfig{
			KmPerMinute:   cfg.ETA.KmPerMinute,
			BufferMinutes: cfg.ETA.BufferMinutes,
			MinMinutes:    cfg.ETA.MinMinutes,
			TrafficStatus: cfg.ETA.TrafficStatus,
		},
		EscalateUpstreamFailures: cfg.Search.EscalateUpstreamFailures,
	})
	if err != nil {
		return err
	}

	notifier, closeNotifier, err := openSOSNotifier(cfg, logger)
	if err != nil {
		return err
	}
	defer closeNotifier()

	sos, err := services.NewSOSService(notifier)
	if err != nil {
		return err
	}

	router := api.NewRouter(api.Deps{
		Finder:  finder,
		Tracker: services.NewRequestTracker(),
		SOS:     sos,
	})

	// Write timeout covers a cold-cache search with upstream retries.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("cache", cfg.Cache.Backend),
			zap.Strings("categories", finder.Categories()),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openPlaceCache returns the configured cache, or nil for "none".
func openPlaceCache(ctx context.Context, cfg *config.Config) (ports.PlaceCache, func(), error) {
	noop := func() {}

	switch cfg.Cache.Backend {
	case "none":
		return nil, noop, nil

	case "redis":
		client, err := cache.OpenRedis(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, noop, err
		}
		return cache.NewRedisPlaceCache(client, cfg.Cache.TTL), func() { _ = client.Close() }, nil

	case "postgres":
		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		if err := cache.InitPostgresSchema(ctx, conn); err != nil {
			_ = conn.Close()
			return nil, noop, err
		}
		return cache.NewSQLPlaceCache(conn, cfg.Cache.TTL), func() { _ = conn.Close() }, nil

	case "sqlite":
		conn, err := db.OpenSqlite(cfg.SqlitePath)
		if err != nil {
			return nil, noop, err
		}
		if err := cache.InitSqliteSchema(ctx, conn); err != nil {
			_ = conn.Close()
			return nil, noop, err
		}
		return cache.NewSqlitePlaceCache(conn, cfg.Cache.TTL), func() { _ = conn.Close() }, nil
	}

	return nil, noop, fmt.Errorf("open place cache: unknown backend %q", cfg.Cache.Backend)
}

// openSOSNotifier publishes to Kafka when brokers are configured and
// otherwise only logs alerts.
func openSOSNotifier(cfg *config.Config, logger *zap.Logger) (ports.SOSNotifier, func(), error) {
	if len(cfg.Kafka.Brokers) == 0 {
		logger.Warn("KAFKA_BROKERS not set, SOS alerts will only be logged")
		return notify.LogSOSNotifier{Logger: logger}, func() {}, nil
	}

	k, err := notify.NewKafkaSOSNotifier(cfg.Kafka.Brokers, cfg.Kafka.SOSTopic)
	if err != nil {
		return nil, func() {}, err
	}
	return k, func() { _ = k.Close() }, nil
}
