package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"loan-amortizer/config"
	httpLayer "loan-amortizer/http"
	"loan-amortizer/repository"
	"loan-amortizer/service"
)

func main() {
	// .env is optional outside local development
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	level, _ := cfg.SlogLevel()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	loanRepo := repository.NewLoanRepositoryMemory(cfg.HistorySize)

	var cache repository.CacheRepository
	switch cfg.CacheBackend {
	case config.CacheRedis:
		redisCache := repository.NewRedisCache(cfg.RedisAddr, cfg.CacheTTL)

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := redisCache.Ping(pingCtx)
		cancel()
		if err != nil {
			logger.Error("Failed to connect to Redis", "error", err, "addr", cfg.RedisAddr)
			_ = redisCache.Close()
			os.Exit(1)
		}
		defer redisCache.Close()
		cache = redisCache
	default:
		cache = repository.NewMemoryCache(cfg.CacheTTL)
	}
	logger.Info("Initialized schedule cache", "backend", cfg.CacheBackend, "ttl", cfg.CacheTTL)

	loanService := service.NewLoanService(loanRepo, cache, service.Limits{
		MaxLoanAmount:   cfg.MaxLoanAmount,
		MaxInterestRate: cfg.MaxInterestRate,
		MaxTermPeriods:  cfg.MaxTermPeriods,
	})
	loanHandler := httpLayer.NewLoanHandler(loanService)

	scenarioService := service.NewScenarioService(loanService)
	scenarioHandler := httpLayer.NewScenarioHandler(scenarioService)

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimitCapacity, cfg.RateLimitWindow)
	defer rateLimiter.Stop()

	limited := func(h http.HandlerFunc) http.Handler {
		return httpLayer.RateLimitMiddleware(rateLimiter, h)
	}

	mux := http.NewServeMux()
	mux.Handle("/loan/schedule", limited(loanHandler.CalculateSchedule))
	mux.Handle("/loan/compare-extra", limited(scenarioHandler.CompareExtraPayments))
	mux.Handle("/loan/calculations/{id}", limited(loanHandler.GetCalculation))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	server := &http.Server{
		Addr:           cfg.Addr,
		Handler:        httpLayer.LoggingMiddleware(mux),
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting loan-amortizer server", "addr", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		logger.Error("Server error", "error", err, "addr", cfg.Addr)
		return
	case sig := <-quit:
		logger.Info("Shutdown signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped gracefully")
}
