package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"verdant/internal/types"
)

// CalendarMonth is the cached month view: reminders grouped by due date.
type CalendarMonth struct {
	Year  int                          `json:"year"`
	Month int                          `json:"month"`
	Days  map[string][]*types.Reminder `json:"days"`
	Total int                          `json:"total"`
}

// handleCalendarMonth serves a month of reminders grouped by day, cached
// per user and month. Write paths invalidate the cache, so a hit is
// always consistent within the TTL.
func (s *Server) handleCalendarMonth(w http.ResponseWriter, r *http.Request) {
	userID := types.GetUserID(r.Context())

	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < 2000 || year > 2200 {
		Error(w, r, types.NewAppError(types.ErrCodeValidationInvalidDate, "year must be a four-digit year", err))
		return
	}
	monthNum, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || monthNum < 1 || monthNum > 12 {
		Error(w, r, types.NewAppError(types.ErrCodeValidationInvalidDate, "month must be 1-12", err))
		return
	}
	month := time.Month(monthNum)

	if cached, ok := s.calendar.Get(userID, year, month); ok {
		JSON(w, r, http.StatusOK, APIResponse{Data: cached})
		return
	}

	reminders, err := s.reminders.ForMonth(r.Context(), userID, year, month)
	if err != nil {
		Error(w, r, err)
		return
	}

	payload := &CalendarMonth{
		Year:  year,
		Month: monthNum,
		Days:  make(map[string][]*types.Reminder),
		Total: len(reminders),
	}
	for _, reminder := range reminders {
		day := types.DateOnly(reminder.EffectiveDue()).Format("2006-01-02")
		payload.Days[day] = append(payload.Days[day], reminder)
	}

	s.calendar.Put(userID, year, month, payload)
	JSON(w, r, http.StatusOK, APIResponse{Data: payload})
}
