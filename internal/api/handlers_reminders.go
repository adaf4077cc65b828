package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"verdant/internal/db"
	"verdant/internal/types"
)

type createReminderRequest struct {
	PlantID               string `json:"plant_id" validate:"required"`
	ReminderType          string `json:"reminder_type" validate:"required"`
	Title                 string `json:"title" validate:"required"`
	Frequency             string `json:"frequency" validate:"required"`
	CustomIntervalDays    int    `json:"custom_interval_days,omitempty"`
	Notes                 string `json:"notes,omitempty"`
	SkipWeatherAdjustment bool   `json:"skip_weather_adjustment,omitempty"`
}

type updateReminderRequest struct {
	Title                 *string `json:"title,omitempty"`
	ReminderType          *string `json:"reminder_type,omitempty"`
	Frequency             *string `json:"frequency,omitempty"`
	CustomIntervalDays    *int    `json:"custom_interval_days,omitempty"`
	Notes                 *string `json:"notes,omitempty"`
	NextDue               *string `json:"next_due,omitempty"`
	SkipWeatherAdjustment *bool   `json:"skip_weather_adjustment,omitempty"`
	IsActive              *bool   `json:"is_active,omitempty"`
}

type snoozeRequest struct {
	Days int `json:"days"`
}

func (s *Server) handleCreateReminder(w http.ResponseWriter, r *http.Request) {
	userID := types.GetUserID(r.Context())

	var req createReminderRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		Error(w, r, err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		Error(w, r, types.NewAppError(types.ErrCodeValidationMissingField, "plant_id, reminder_type, title and frequency are required", err))
		return
	}

	// Ownership check before creating anything against the plant.
	if _, err := s.plants.GetByID(r.Context(), req.PlantID, userID); err != nil {
		Error(w, r, err)
		return
	}

	reminder := &types.Reminder{
		UserID:                userID,
		PlantID:               req.PlantID,
		Type:                  types.RepairReminderType(req.ReminderType),
		Title:                 req.Title,
		Frequency:             types.Frequency(req.Frequency),
		CustomIntervalDays:    req.CustomIntervalDays,
		Notes:                 req.Notes,
		SkipWeatherAdjustment: req.SkipWeatherAdjustment,
	}
	if err := s.reminders.Create(r.Context(), reminder); err != nil {
		Error(w, r, err)
		return
	}

	JSON(w, r, http.StatusCreated, APIResponse{Data: reminder})
}

func (s *Server) handleListReminders(w http.ResponseWriter, r *http.Request) {
	userID := types.GetUserID(r.Context())
	params := db.ListRemindersParams{
		PlantID:    r.URL.Query().Get("plant_id"),
		ActiveOnly: r.URL.Query().Get("include_inactive") != "true",
	}

	reminders, err := s.reminders.List(r.Context(), userID, params)
	if err != nil {
		Error(w, r, err)
		return
	}
	JSON(w, r, http.StatusOK, APIResponse{Data: reminders})
}

func (s *Server) handleGetReminder(w http.ResponseWriter, r *http.Request) {
	userID := types.GetUserID(r.Context())
	reminder, err := s.reminders.GetByID(r.Context(), chi.URLParam(r, "reminderID"), userID)
	if err != nil {
		Error(w, r, err)
		return
	}
	JSON(w, r, http.StatusOK, APIResponse{Data: reminder})
}

func (s *Server) handleUpdateReminder(w http.ResponseWriter, r *http.Request) {
	userID := types.GetUserID(r.Context())

	reminder, err := s.reminders.GetByID(r.Context(), chi.URLParam(r, "reminderID"), userID)
	if err != nil {
		Error(w, r, err)
		return
	}

	var req updateReminderRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		Error(w, r, err)
		return
	}

	if req.Title != nil {
		reminder.Title = *req.Title
	}
	if req.ReminderType != nil {
		reminder.Type = types.RepairReminderType(*req.ReminderType)
	}
	if req.Frequency != nil {
		reminder.Frequency = types.Frequency(*req.Frequency)
	}
	if req.CustomIntervalDays != nil {
		reminder.CustomIntervalDays = *req.CustomIntervalDays
	}
	if req.Notes != nil {
		reminder.Notes = *req.Notes
	}
	if req.NextDue != nil {
		due, parseErr := time.Parse("2006-01-02", *req.NextDue)
		if parseErr != nil {
			Error(w, r, types.NewAppError(types.ErrCodeValidationInvalidDate, "next_due must be YYYY-MM-DD", parseErr))
			return
		}
		reminder.NextDue = due
	}
	if req.SkipWeatherAdjustment != nil {
		reminder.SkipWeatherAdjustment = *req.SkipWeatherAdjustment
	}
	if req.IsActive != nil {
		reminder.IsActive = *req.IsActive
	}

	if err := s.reminders.Update(r.Context(), reminder); err != nil {
		Error(w, r, err)
		return
	}
	JSON(w, r, http.StatusOK, APIResponse{Data: reminder})
}

func (s *Server) handleDeleteReminder(w http.ResponseWriter, r *http.Request) {
	userID := types.GetUserID(r.Context())
	if err := s.reminders.Delete(r.Context(), chi.URLParam(r, "reminderID"), userID); err != nil {
		Error(w, r, err)
		return
	}
	JSON(w, r, http.StatusOK, APIResponse{Data: map[string]bool{"deleted": true}})
}

func (s *Server) handleCompleteReminder(w http.ResponseWriter, r *http.Request) {
	userID := types.GetUserID(r.Context())
	reminder, err := s.reminders.Complete(r.Context(), chi.URLParam(r, "reminderID"), userID)
	if err != nil {
		Error(w, r, err)
		return
	}
	JSON(w, r, http.StatusOK, APIResponse{Data: reminder})
}

func (s *Server) handleSnoozeReminder(w http.ResponseWriter, r *http.Request) {
	userID := types.GetUserID(r.Context())

	req := snoozeRequest{Days: 1}
	if r.ContentLength > 0 {
		if err := DecodeJSON(w, r, &req); err != nil {
			Error(w, r, err)
			return
		}
	}

	if err := s.reminders.Snooze(r.Context(), chi.URLParam(r, "reminderID"), userID, req.Days); err != nil {
		Error(w, r, err)
		return
	}
	JSON(w, r, http.StatusOK, APIResponse{Data: map[string]any{"snoozed_days": req.Days}})
}

func (s *Server) handleClearAdjustment(w http.ResponseWriter, r *http.Request) {
	userID := types.GetUserID(r.Context())
	if err := s.reminders.ClearWeatherAdjustment(r.Context(), chi.URLParam(r, "reminderID"), userID); err != nil {
		Error(w, r, err)
		return
	}
	JSON(w, r, http.StatusOK, APIResponse{Data: map[string]bool{"cleared": true}})
}

func (s *Server) handleReminderStats(w http.ResponseWriter, r *http.Request) {
	userID := types.GetUserID(r.Context())
	stats, err := s.reminders.Stats(r.Context(), userID)
	if err != nil {
		Error(w, r, err)
		return
	}
	JSON(w, r, http.StatusOK, APIResponse{Data: stats})
}

// handleDueToday returns the reminders due today after applying automatic
// weather adjustments. Without a configured city, reminders are returned
// unadjusted.
func (s *Server) handleDueToday(w http.ResponseWriter, r *http.Request) {
	userID := types.GetUserID(r.Context())

	due, err := s.reminders.DueToday(r.Context(), userID)
	if err != nil {
		Error(w, r, err)
		return
	}

	city, err := s.profiles.DefaultCity(r.Context(), userID)
	if err != nil {
		Error(w, r, err)
		return
	}

	if city == "" || s.evaluator == nil {
		out := make([]adjustedReminderPayload, 0, len(due))
		for _, reminder := range due {
			out = append(out, adjustedReminderPayload{Reminder: reminder})
		}
		JSON(w, r, http.StatusOK, APIResponse{Data: out})
		return
	}

	plants, err := s.plantMapFor(r, userID, due)
	if err != nil {
		Error(w, r, err)
		return
	}

	adjusted := s.evaluator.ApplyAutomaticAdjustments(r.Context(), s.reminders, due, plants, city)
	out := make([]adjustedReminderPayload, 0, len(adjusted))
	for _, ar := range adjusted {
		out = append(out, adjustedReminderPayload{Reminder: ar.Reminder, Adjustment: ar.Adjustment})
	}
	JSON(w, r, http.StatusOK, APIResponse{Data: out})
}

func (s *Server) handleUpcoming(w http.ResponseWriter, r *http.Request) {
	userID := types.GetUserID(r.Context())
	reminders, err := s.reminders.Upcoming(r.Context(), userID, 7)
	if err != nil {
		Error(w, r, err)
		return
	}
	JSON(w, r, http.StatusOK, APIResponse{Data: reminders})
}

// handleSuggestions returns suggestion-mode adjustment proposals for the
// user's due reminders. An unset city yields an empty list.
func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	userID := types.GetUserID(r.Context())

	city, err := s.profiles.DefaultCity(r.Context(), userID)
	if err != nil {
		Error(w, r, err)
		return
	}
	if city == "" || s.evaluator == nil {
		JSON(w, r, http.StatusOK, APIResponse{Data: []types.Suggestion{}})
		return
	}

	due, err := s.reminders.DueToday(r.Context(), userID)
	if err != nil {
		Error(w, r, err)
		return
	}

	plants, err := s.plantMapFor(r, userID, due)
	if err != nil {
		Error(w, r, err)
		return
	}

	suggestions := s.evaluator.GetAdjustmentSuggestions(r.Context(), due, plants, city)
	JSON(w, r, http.StatusOK, APIResponse{Data: suggestions})
}

// adjustedReminderPayload pairs a reminder with an applied adjustment for
// the due-today response.
type adjustedReminderPayload struct {
	Reminder   *types.Reminder           `json:"reminder"`
	Adjustment *types.AdjustmentDecision `json:"adjustment,omitempty"`
}

func (s *Server) plantMapFor(r *http.Request, userID string, reminders []*types.Reminder) (map[string]*types.Plant, error) {
	ids := make([]string, 0, len(reminders))
	seen := make(map[string]struct{}, len(reminders))
	for _, reminder := range reminders {
		if _, ok := seen[reminder.PlantID]; ok {
			continue
		}
		seen[reminder.PlantID] = struct{}{}
		ids = append(ids, reminder.PlantID)
	}
	return s.plants.MapByIDs(r.Context(), userID, ids)
}
