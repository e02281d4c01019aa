package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/roeliffah/freestay-live-sub000/internal/config"
	"github.com/roeliffah/freestay-live-sub000/internal/fixture"
	"github.com/roeliffah/freestay-live-sub000/internal/handler"
	"github.com/roeliffah/freestay-live-sub000/internal/middleware"
	"github.com/roeliffah/freestay-live-sub000/internal/obs"
	"github.com/roeliffah/freestay-live-sub000/internal/ratelimit"
	"github.com/roeliffah/freestay-live-sub000/internal/search"
	"github.com/roeliffah/freestay-live-sub000/internal/search/cache"
	"github.com/roeliffah/freestay-live-sub000/internal/sunhotels"
)

// Run initializes and runs the gateway.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	fixtures, err := fixture.Load()
	if err != nil {
		return err
	}

	metrics := obs.NewMetrics(logger)

	inventory := sunhotels.New(sunhotels.Config{
		BaseURL:         cfg.SunHotelsURL,
		Username:        cfg.SunHotelsUser,
		Password:        cfg.SunHotelsPassword,
		DefaultCurrency: cfg.DefaultCurrency,
		Timeout:         cfg.UpstreamTimeout(),
	}, logger)

	service := search.NewService(inventory, fixtures, metrics, logger)

	searchCache := cache.New(cfg.CacheTTL())
	defer searchCache.Close()

	limiter := ratelimit.New(cfg.MaxRequestsPerMin, time.Minute)
	defer limiter.Close()

	h := handler.New(service, searchCache, limiter, metrics, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /search", h.SearchHandler)
	mux.HandleFunc("GET /hotels/{id}", h.HotelDetailHandler)
	mux.HandleFunc("GET /healthz", obs.HealthHandler(logger))
	mux.HandleFunc("GET /metrics", metrics.MetricsHandler())

	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      middleware.Logging(logger)(mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
		return err
	}

	logger.Info("server stopped")
	return nil
}

// newLogger builds the zap logger: JSON in production, console with
// colored levels otherwise.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.IsProduction() {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}

	if level, err := zap.ParseAtomicLevel(cfg.LogLevel); err == nil {
		zcfg.Level = level
	}
	return zcfg.Build()
}
