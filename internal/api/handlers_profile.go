package api

import (
	"net/http"
	"strings"

	"verdant/internal/types"
)

type setCityRequest struct {
	City string `json:"city" validate:"required"`
}

// handleCurrentWeather returns current conditions plus the derived
// seasonal pattern for the requested city, defaulting to the profile
// city. The seasonal lookup never fails, but current conditions do when
// the city cannot be resolved.
func (s *Server) handleCurrentWeather(w http.ResponseWriter, r *http.Request) {
	userID := types.GetUserID(r.Context())

	city := r.URL.Query().Get("city")
	if city == "" {
		var err error
		city, err = s.profiles.DefaultCity(r.Context(), userID)
		if err != nil {
			Error(w, r, err)
			return
		}
	}
	if city == "" {
		Error(w, r, types.NewAppError(types.ErrCodeValidationInvalidCity, "no city provided and no default city configured", nil))
		return
	}

	snapshot, err := s.weather.CurrentWeather(r.Context(), city)
	if err != nil {
		Error(w, r, err)
		return
	}

	payload := map[string]any{"current": snapshot}
	if pattern, patternErr := s.weather.SeasonalPattern(r.Context(), city); patternErr == nil {
		payload["seasonal"] = pattern
	}
	JSON(w, r, http.StatusOK, APIResponse{Data: payload})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID := types.GetUserID(r.Context())
	profile, err := s.profiles.GetByUserID(r.Context(), userID)
	if err != nil {
		Error(w, r, err)
		return
	}
	JSON(w, r, http.StatusOK, APIResponse{Data: profile})
}

// handleSetDefaultCity stores the user's default city after normalizing
// whitespace. Weather lookups pick up the new city immediately.
func (s *Server) handleSetDefaultCity(w http.ResponseWriter, r *http.Request) {
	userID := types.GetUserID(r.Context())

	var req setCityRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		Error(w, r, err)
		return
	}
	city := strings.TrimSpace(req.City)
	if city == "" {
		Error(w, r, types.NewAppError(types.ErrCodeValidationInvalidCity, "city must not be empty", nil))
		return
	}

	if err := s.profiles.SetDefaultCity(r.Context(), userID, city); err != nil {
		Error(w, r, err)
		return
	}
	JSON(w, r, http.StatusOK, APIResponse{Data: map[string]string{"default_city": city}})
}
