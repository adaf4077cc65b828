// Package main is the entry point for the verdant API server.
//
// It loads configuration, connects the Postgres pool, wires the weather
// provider, the AI inference service, the adjustment evaluator and the
// repositories into the HTTP server, and serves until SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"verdant/internal/adjust"
	"verdant/internal/api"
	"verdant/internal/calcache"
	"verdant/internal/config"
	"verdant/internal/db"
	"verdant/internal/external"
	"verdant/internal/plantintel"
	"verdant/internal/types"
	"verdant/internal/weather"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// run encapsulates the startup lifecycle so main() can cleanly exit on
// error.
func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger := newLogger(cfg.LogLevel)
	logger.Info("verdant API starting",
		"environment", cfg.Environment,
		"port", cfg.Server.Port,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := newPool(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()

	clock := types.RealClock{}
	calendar := calcache.New[*api.CalendarMonth](calcache.DefaultTTL, calcache.DefaultMaxEntries, clock)

	reminderRepo := db.NewReminderRepository(pool, clock, calendar)
	plantRepo := db.NewPlantRepository(pool, calendar)
	profileRepo := db.NewProfileRepository(pool)

	weatherProvider := weather.NewOpenWeatherProvider(
		cfg.Weather.APIKey,
		logger,
		weather.WithBaseURL(cfg.Weather.BaseURL),
		weather.WithBaseClient(external.NewBaseClient(
			&http.Client{Timeout: cfg.Weather.Timeout},
			"openweather",
			external.DefaultRetryPolicy(),
			"verdant/1.0",
		)),
	)

	var provider types.CharacteristicProvider
	if cfg.AI.Enabled && cfg.AI.APIKey.Unmask() != "" {
		provider = plantintel.NewOpenAIProvider(
			cfg.AI.APIKey.Unmask(),
			cfg.AI.BaseURL,
			cfg.AI.Model,
			&http.Client{Timeout: cfg.AI.Timeout},
		)
	} else {
		logger.Warn("AI inference disabled, characteristics fall back to defaults")
	}
	intel := plantintel.NewService(provider, plantintel.NewInferenceCache(cfg.Adjust.CacheTTL, clock), logger,
		plantintel.WithZoneResolver(weatherProvider))

	evaluator := adjust.NewEvaluator(weatherProvider, intel, plantintel.LightAdjustmentFactor, clock, logger)

	server := api.NewServer(api.ServerDeps{
		Reminders: reminderRepo,
		Plants:    plantRepo,
		Profiles:  profileRepo,
		Weather:   weatherProvider,
		Intel:     intel,
		Evaluator: evaluator,
		Calendar:  calendar,
		Auth: api.SingleUserAuthenticator{
			Token:  cfg.Auth.Token,
			UserID: cfg.Auth.UserID,
		},
		Clock:  clock,
		Logger: logger,
	})

	httpServer := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      server.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

// newPool builds the pgx connection pool from config and verifies
// connectivity before returning.
func newPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.Database.URL.Unmask())
	if err != nil {
		return nil, fmt.Errorf("parsing database url: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.Database.MaxConns)
	poolCfg.MinConns = int32(cfg.Database.MinConns)
	poolCfg.MaxConnLifetime = cfg.Database.MaxConnLifetime
	poolCfg.HealthCheckPeriod = cfg.Database.HealthCheckPeriod

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return pool, nil
}

// newLogger builds a JSON slog logger at the configured level.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
