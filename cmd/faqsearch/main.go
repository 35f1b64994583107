package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/faqsearch/internal/config"
	"github.com/kailas-cloud/faqsearch/internal/db"
	dbRedis "github.com/kailas-cloud/faqsearch/internal/db/redis"
	logpkg "github.com/kailas-cloud/faqsearch/internal/logger"
	"github.com/kailas-cloud/faqsearch/internal/metrics"
	faqrepo "github.com/kailas-cloud/faqsearch/internal/repository/faq"
	chiTransport "github.com/kailas-cloud/faqsearch/internal/transport/chi"
	cataloguc "github.com/kailas-cloud/faqsearch/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/faqsearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/faqsearch/internal/usecase/search"
	"github.com/kailas-cloud/faqsearch/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting faqsearch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("catalog_source", cfg.Catalog.Source),
	)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	metrics.RegisterSearchMetrics()

	// Catalog source; the store is only dialed when the catalog lives there.
	var (
		source   cataloguc.Source
		dbPinger healthuc.DBPinger
	)
	switch cfg.Catalog.Source {
	case config.SourceStore:
		store := mustConnect(ctx, cfg.Database, logger)
		defer store.Close()
		source = faqrepo.NewStoreSource(store, cfg.Catalog.Key)
		dbPinger = store
		logger.Info("Catalog source: store", zap.String("key", cfg.Catalog.Key))
	default:
		source = faqrepo.NewFileSource(cfg.Catalog.Path)
		logger.Info("Catalog source: file", zap.String("path", cfg.Catalog.Path))
	}

	catalogSvc := cataloguc.New(source, logger)
	if err := catalogSvc.Load(ctx); err != nil {
		logger.Fatal("Failed to load FAQ catalog", zap.Error(err))
	}

	searchSvc := searchuc.New(catalogSvc)
	healthSvc := healthuc.New(catalogSvc, dbPinger)

	server := chiTransport.NewServer(searchSvc, catalogSvc, healthSvc, logger).
		WithLimits(cfg.Search.DefaultLimit, cfg.Search.MaxLimit)
	router := chiTransport.NewRouter(server, chiTransport.RouterConfig{AdminAPIKeys: cfg.Auth.APIKeys})

	// Periodic reload (disabled when the interval is 0)
	go catalogSvc.Watch(ctx, time.Duration(cfg.Catalog.ReloadIntervalSec)*time.Second)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// SIGHUP reloads the catalog; SIGINT/SIGTERM shut down.
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	for running := true; running; {
		select {
		case <-hup:
			logger.Info("Received SIGHUP, reloading catalog")
			// failures are logged by the catalog; the previous snapshot stays active
			_, _ = catalogSvc.Reload(ctx)
		case <-quit:
			running = false
		}
	}
	logger.Info("Received shutdown signal")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// mustConnect dials Valkey/Redis and waits until it answers PING.
// Both drivers speak RESP and share the rueidis client.
func mustConnect(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) db.Store {
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Addrs,
		Password: cfg.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create database store", zap.Error(err))
	}

	if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Database not ready", zap.Error(err))
	}
	logger.Info("Connected to database",
		zap.String("driver", cfg.Driver),
		zap.Strings("addrs", cfg.Addrs),
	)
	return store
}
