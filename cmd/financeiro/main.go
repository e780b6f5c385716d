package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/meu-financeiro/core-api/internal/config"
	"github.com/meu-financeiro/core-api/internal/domain"
	"github.com/meu-financeiro/core-api/internal/handler"
	"github.com/meu-financeiro/core-api/internal/infra/cache"
	"github.com/meu-financeiro/core-api/internal/infra/memory"
	"github.com/meu-financeiro/core-api/internal/infra/observability"
	"github.com/meu-financeiro/core-api/internal/infra/resilience"
	"github.com/meu-financeiro/core-api/internal/infra/supabase"
	"github.com/meu-financeiro/core-api/internal/port"
	"github.com/meu-financeiro/core-api/internal/service"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = godotenv.Load()

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.Bool("use_supabase", cfg.UseSupabase),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "meu-financeiro-core")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Cache ---
	balanceCache := cache.New[[]domain.AccountBalance](cfg.CacheTTL)

	// --- Store ---
	var store port.FinanceStore
	if cfg.UseSupabase && cfg.SupabaseURL != "" {
		logger.Info("using Supabase as data backend",
			zap.String("supabase_url", cfg.SupabaseURL),
		)
		resilienceCfg := resilience.Config{
			MaxRetries:     cfg.MaxRetries,
			InitialBackoff: cfg.InitialBackoff,
			MaxConcurrency: cfg.MaxConcurrency,
		}
		cb := resilience.NewCircuitBreaker("supabase")
		httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
		store = supabase.NewStore(supabase.NewClient(
			httpClient,
			cfg.SupabaseURL,
			cfg.SupabaseAnonKey,
			cfg.SupabaseServiceKey,
			cb,
			resilienceCfg,
			metrics,
			logger,
		))
	} else {
		logger.Warn("Supabase not configured, using in-memory store (data is not persisted)")
		store = memory.NewStore()
	}

	// --- Services ---
	svc := service.NewFinanceService(store, balanceCache, metrics, logger)

	// Materialize overdue recurring transactions on boot.
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	if posted, err := svc.ReconcileRecurring(startupCtx); err != nil {
		logger.Warn("recurring sweep failed on startup", zap.Error(err))
	} else if posted > 0 {
		logger.Info("recurring sweep on startup", zap.Int("posted", posted))
	}
	cancelStartup()

	// --- Router ---
	router := handler.NewRouter(svc, metrics, logger)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
