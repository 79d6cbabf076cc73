// cmd/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"go_4_vocab_trainer/internal/config"
	"go_4_vocab_trainer/internal/handlers"
	"go_4_vocab_trainer/internal/jobs"
	"go_4_vocab_trainer/internal/repository"
	"go_4_vocab_trainer/internal/service"
	"go_4_vocab_trainer/internal/tracing"
)

func newLogger(level string, tempLogger *slog.Logger) *slog.Logger {
	logLevel := new(slog.LevelVar)
	switch strings.ToLower(level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		tempLogger.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", level))
	}

	var handler slog.Handler
	appEnv := os.Getenv("APP_ENV")
	if strings.ToLower(appEnv) == "dev" {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		})
		tempLogger.Info("Using TINT log handler", slog.String("APP_ENV", appEnv))
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		})
		tempLogger.Info("Using JSON log handler", slog.String("APP_ENV", appEnv))
	}
	return slog.New(handler)
}

func main() {
	// 設定ファイル読み込み用の一時的なロガー
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)

	configDir := os.Getenv("APP_CONFIG_DIR")
	if configDir == "" {
		configDir = "configs"
	}
	if err := config.LoadConfig(configDir); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := newLogger(config.Cfg.Log.Level, tempLogger)
	slog.SetDefault(logger)
	slog.Info("Application starting...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Tracing
	shutdownTracing, err := tracing.Init(ctx, config.Cfg.Tracing, logger)
	if err != nil {
		slog.Error("Error initializing tracing", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			slog.Error("Error shutting down tracer provider", slog.Any("error", err))
		}
	}()

	// 2. Database (GORM)
	db, err := repository.NewDB(config.Cfg.Database, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()

	// 3. 「前回間違えた」の保存先 (Redis が有効ならそちら)
	lastMissed := repository.NewGormLastMissedSet(db)
	if config.Cfg.Redis.Enabled {
		rdb, err := repository.NewRedisClient(ctx, config.Cfg.Redis.Addr)
		if err != nil {
			slog.Error("Error connecting to redis", slog.String("addr", config.Cfg.Redis.Addr), slog.Any("error", err))
			os.Exit(1)
		}
		defer rdb.Close()
		lastMissed = repository.NewRedisLastMissedSet(rdb, config.Cfg.Redis.Prefix)
		slog.Info("Using redis for last missed set", slog.String("addr", config.Cfg.Redis.Addr))
	}

	// 4. Dependency Injection
	cardRepo := repository.NewGormCardRepository()
	progressRepo := repository.NewGormProgressRepository()
	summaryRepo := repository.NewGormSessionSummaryRepository()

	cardService := service.NewCardService(db, cardRepo, progressRepo, lastMissed)
	reviewService := service.NewReviewService(db, cardRepo, progressRepo, lastMissed, summaryRepo, &config.Cfg)
	statsService := service.NewStatsService(db, progressRepo, summaryRepo)

	h := handlers.Handlers{
		Card:   handlers.NewCardHandler(cardService, logger),
		Review: handlers.NewReviewHandler(reviewService, logger),
		Stats:  handlers.NewStatsHandler(statsService, logger),
	}

	// 5. Router
	r := handlers.NewRouter(h, handlers.RouterOptions{
		Logger: logger,
		Auth:   handlers.AuthMiddleware(&config.Cfg, logger),
		CORS:   config.Cfg.CORS,
		Health: func(ctx context.Context) error {
			return sqlDB.PingContext(ctx)
		},
	})
	var root http.Handler = r
	if config.Cfg.Tracing.Enabled {
		root = otelhttp.NewHandler(r, "vocab-trainer-api")
	}

	// 6. Jobs
	scheduler := jobs.New(reviewService, config.Cfg.App.LastMissedRetentionDays, config.Cfg.App.PruneAt, logger)
	if err := scheduler.Start(); err != nil {
		slog.Error("Error starting scheduler", slog.Any("error", err))
		os.Exit(1)
	}
	defer scheduler.Stop()

	// 7. Server
	server := &http.Server{
		Addr:         config.Cfg.Server.Port,
		Handler:      root,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server listening", slog.String("port", config.Cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Graceful Shutdown
	select {
	case <-ctx.Done():
		slog.Info("Shutting down server...")
	case err := <-serverErr:
		slog.Error("Could not listen on port", slog.String("port", config.Cfg.Server.Port), slog.Any("error", err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
}
