// Package main is the batch weather adjustment worker. It is intended to
// run once per scheduling period (cron or a systemd timer): it finds every
// user with outdoor weather-sensitive plants, evaluates their due
// reminders against current conditions, and persists any automatic
// adjustments.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"verdant/internal/adjust"
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

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logger := newLogger(cfg.LogLevel)
	logger.Info("adjustment worker starting", "environment", cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	poolCfg, err := pgxpool.ParseConfig(cfg.Database.URL.Unmask())
	if err != nil {
		return fmt.Errorf("parsing database url: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()

	clock := types.RealClock{}
	reminders := db.NewReminderRepository(pool, clock, nil)
	plants := db.NewPlantRepository(pool, nil)
	profiles := db.NewProfileRepository(pool)

	weatherProvider := weather.NewOpenWeatherProvider(
		cfg.Weather.APIKey,
		logger,
		weather.WithBaseURL(cfg.Weather.BaseURL),
		weather.WithBaseClient(external.NewBaseClient(
			&http.Client{Timeout: cfg.Weather.Timeout},
			"openweather",
			external.DefaultRetryPolicy(),
			"verdant-adjuster/1.0",
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
	}
	intel := plantintel.NewService(provider, plantintel.NewInferenceCache(cfg.Adjust.CacheTTL, clock), logger,
		plantintel.WithZoneResolver(weatherProvider))
	evaluator := adjust.NewEvaluator(weatherProvider, intel, plantintel.LightAdjustmentFactor, clock, logger)

	userIDs, err := reminders.UserIDsWithOutdoorPlants(ctx)
	if err != nil {
		return fmt.Errorf("listing candidate users: %w", err)
	}
	logger.Info("evaluating users", "count", len(userIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Adjust.UserConcurrency)
	for _, userID := range userIDs {
		g.Go(func() error {
			adjustUser(gctx, logger, evaluator, reminders, plants, profiles, userID)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("adjustment worker finished")
	return nil
}

// adjustUser evaluates one user's due reminders. Failures are logged and
// swallowed so one user's bad data never stalls the batch.
func adjustUser(
	ctx context.Context,
	logger *slog.Logger,
	evaluator *adjust.Evaluator,
	reminders *db.ReminderRepository,
	plants *db.PlantRepository,
	profiles *db.ProfileRepository,
	userID string,
) {
	city, err := profiles.DefaultCity(ctx, userID)
	if err != nil {
		logger.WarnContext(ctx, "profile lookup failed", "user_id", userID, "error", err)
		return
	}
	if city == "" {
		return
	}

	due, err := reminders.DueToday(ctx, userID)
	if err != nil {
		logger.WarnContext(ctx, "due reminder lookup failed", "user_id", userID, "error", err)
		return
	}
	if len(due) == 0 {
		return
	}

	ids := make([]string, 0, len(due))
	seen := make(map[string]struct{}, len(due))
	for _, reminder := range due {
		if _, ok := seen[reminder.PlantID]; ok {
			continue
		}
		seen[reminder.PlantID] = struct{}{}
		ids = append(ids, reminder.PlantID)
	}
	plantsByID, err := plants.MapByIDs(ctx, userID, ids)
	if err != nil {
		logger.WarnContext(ctx, "plant lookup failed", "user_id", userID, "error", err)
		return
	}

	adjusted := evaluator.ApplyAutomaticAdjustments(ctx, reminders, due, plantsByID, city)

	// Reminders postponed past today drop out of the returned set; the
	// rest carry their adjustment inline.
	applied := len(due) - len(adjusted)
	for _, ar := range adjusted {
		if ar.Adjustment != nil {
			applied++
		}
	}
	logger.InfoContext(ctx, "user evaluated",
		"user_id", userID, "due", len(due), "applied", applied)
}

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
