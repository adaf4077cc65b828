package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"verdant/internal/adjust"
	"verdant/internal/calcache"
	"verdant/internal/db"
	"verdant/internal/types"
)

// ReminderStore is the reminder persistence surface the handlers use.
// Implemented by db.ReminderRepository.
type ReminderStore interface {
	adjust.AdjustmentStore

	Create(ctx context.Context, r *types.Reminder) error
	GetByID(ctx context.Context, id, userID string) (*types.Reminder, error)
	List(ctx context.Context, userID string, params db.ListRemindersParams) ([]*types.Reminder, error)
	DueToday(ctx context.Context, userID string) ([]*types.Reminder, error)
	Upcoming(ctx context.Context, userID string, days int) ([]*types.Reminder, error)
	ForMonth(ctx context.Context, userID string, year int, month time.Month) ([]*types.Reminder, error)
	Complete(ctx context.Context, id, userID string) (*types.Reminder, error)
	Snooze(ctx context.Context, id, userID string, days int) error
	Update(ctx context.Context, r *types.Reminder) error
	Delete(ctx context.Context, id, userID string) error
	ClearWeatherAdjustment(ctx context.Context, id, userID string) error
	Stats(ctx context.Context, userID string) (*db.ReminderStats, error)
}

// PlantStore is the plant persistence surface. Implemented by
// db.PlantRepository.
type PlantStore interface {
	Create(ctx context.Context, p *types.Plant) error
	GetByID(ctx context.Context, id, userID string) (*types.Plant, error)
	ListByUser(ctx context.Context, userID string) ([]*types.Plant, error)
	MapByIDs(ctx context.Context, userID string, ids []string) (map[string]*types.Plant, error)
	Update(ctx context.Context, p *types.Plant) error
	Delete(ctx context.Context, id, userID string) error
}

// ProfileStore is the user profile surface. Implemented by
// db.ProfileRepository.
type ProfileStore interface {
	GetByUserID(ctx context.Context, userID string) (*types.UserProfile, error)
	DefaultCity(ctx context.Context, userID string) (string, error)
	SetDefaultCity(ctx context.Context, userID, city string) error
}

// CalendarCache caches calendar month payloads per user.
type CalendarCache = calcache.Cache[*CalendarMonth]

// Server wires the HTTP layer together. All dependencies are injected so
// tests can substitute fakes.
type Server struct {
	reminders ReminderStore
	plants    PlantStore
	profiles  ProfileStore
	weather   types.WeatherProvider
	intel     adjust.CharacteristicService
	evaluator *adjust.Evaluator
	calendar  *CalendarCache
	auth      Authenticator
	clock     types.Clock
	logger    *slog.Logger
	validate  *validator.Validate

	router *chi.Mux
}

// ServerDeps collects the constructor inputs for Server.
type ServerDeps struct {
	Reminders ReminderStore
	Plants    PlantStore
	Profiles  ProfileStore
	Weather   types.WeatherProvider
	Intel     adjust.CharacteristicService
	Evaluator *adjust.Evaluator
	Calendar  *CalendarCache
	Auth      Authenticator
	Clock     types.Clock
	Logger    *slog.Logger
}

// NewServer builds the server and mounts all routes.
func NewServer(deps ServerDeps) *Server {
	if deps.Clock == nil {
		deps.Clock = types.RealClock{}
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Calendar == nil {
		deps.Calendar = calcache.New[*CalendarMonth](calcache.DefaultTTL, calcache.DefaultMaxEntries, deps.Clock)
	}

	s := &Server{
		reminders: deps.Reminders,
		plants:    deps.Plants,
		profiles:  deps.Profiles,
		weather:   deps.Weather,
		intel:     deps.Intel,
		evaluator: deps.Evaluator,
		calendar:  deps.Calendar,
		auth:      deps.Auth,
		clock:     deps.Clock,
		logger:    deps.Logger,
		validate:  validator.New(),
		router:    chi.NewRouter(),
	}
	s.mountRoutes()
	return s
}

// Handler returns the router for http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) mountRoutes() {
	s.router.Use(s.Recoverer)
	s.router.Use(RequestIDMiddleware)
	s.router.Use(RequestLogger(s.logger))

	s.router.Get("/health", s.handleHealth)

	s.router.Route("/v1", func(r chi.Router) {
		r.Use(s.AuthMiddleware)

		r.Route("/reminders", func(r chi.Router) {
			r.Get("/", s.handleListReminders)
			r.Post("/", s.handleCreateReminder)
			r.Get("/stats", s.handleReminderStats)
			r.Get("/due-today", s.handleDueToday)
			r.Get("/upcoming", s.handleUpcoming)
			r.Get("/suggestions", s.handleSuggestions)

			r.Route("/{reminderID}", func(r chi.Router) {
				r.Get("/", s.handleGetReminder)
				r.Patch("/", s.handleUpdateReminder)
				r.Delete("/", s.handleDeleteReminder)
				r.Post("/complete", s.handleCompleteReminder)
				r.Post("/snooze", s.handleSnoozeReminder)
				r.Post("/clear-adjustment", s.handleClearAdjustment)
			})
		})

		r.Route("/plants", func(r chi.Router) {
			r.Get("/", s.handleListPlants)
			r.Post("/", s.handleCreatePlant)

			r.Route("/{plantID}", func(r chi.Router) {
				r.Get("/", s.handleGetPlant)
				r.Patch("/", s.handleUpdatePlant)
				r.Delete("/", s.handleDeletePlant)
				r.Get("/characteristics", s.handlePlantCharacteristics)
				r.Get("/watering-recommendation", s.handleWateringRecommendation)
			})
		})

		r.Get("/calendar/{year}/{month}", s.handleCalendarMonth)
		r.Get("/weather", s.handleCurrentWeather)
		r.Get("/profile", s.handleGetProfile)
		r.Put("/profile/city", s.handleSetDefaultCity)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	JSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
