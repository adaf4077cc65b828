package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"verdant/internal/types"
	"verdant/internal/watering"
)

type createPlantRequest struct {
	Name     string `json:"name" validate:"required"`
	Nickname string `json:"nickname,omitempty"`
	Species  string `json:"species,omitempty"`
	Location string `json:"location,omitempty"`
	Light    string `json:"light,omitempty"`
	Notes    string `json:"notes,omitempty"`
	PhotoURL string `json:"photo_url,omitempty"`
}

type updatePlantRequest struct {
	Name     *string `json:"name,omitempty"`
	Nickname *string `json:"nickname,omitempty"`
	Species  *string `json:"species,omitempty"`
	Location *string `json:"location,omitempty"`
	Light    *string `json:"light,omitempty"`
	Notes    *string `json:"notes,omitempty"`
	PhotoURL *string `json:"photo_url,omitempty"`
}

func (s *Server) handleCreatePlant(w http.ResponseWriter, r *http.Request) {
	userID := types.GetUserID(r.Context())

	var req createPlantRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		Error(w, r, err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		Error(w, r, types.NewAppError(types.ErrCodeValidationMissingField, "name is required", err))
		return
	}

	plant := &types.Plant{
		UserID:   userID,
		Name:     req.Name,
		Nickname: req.Nickname,
		Species:  req.Species,
		Location: types.PlantLocation(req.Location),
		Light:    types.LightExposure(req.Light),
		Notes:    req.Notes,
		PhotoURL: req.PhotoURL,
	}
	if err := s.plants.Create(r.Context(), plant); err != nil {
		Error(w, r, err)
		return
	}
	JSON(w, r, http.StatusCreated, APIResponse{Data: plant})
}

func (s *Server) handleListPlants(w http.ResponseWriter, r *http.Request) {
	userID := types.GetUserID(r.Context())
	plants, err := s.plants.ListByUser(r.Context(), userID)
	if err != nil {
		Error(w, r, err)
		return
	}
	JSON(w, r, http.StatusOK, APIResponse{Data: plants})
}

func (s *Server) handleGetPlant(w http.ResponseWriter, r *http.Request) {
	userID := types.GetUserID(r.Context())
	plant, err := s.plants.GetByID(r.Context(), chi.URLParam(r, "plantID"), userID)
	if err != nil {
		Error(w, r, err)
		return
	}
	JSON(w, r, http.StatusOK, APIResponse{Data: plant})
}

func (s *Server) handleUpdatePlant(w http.ResponseWriter, r *http.Request) {
	userID := types.GetUserID(r.Context())

	plant, err := s.plants.GetByID(r.Context(), chi.URLParam(r, "plantID"), userID)
	if err != nil {
		Error(w, r, err)
		return
	}

	var req updatePlantRequest
	if err := DecodeJSON(w, r, &req); err != nil {
		Error(w, r, err)
		return
	}

	if req.Name != nil {
		plant.Name = *req.Name
	}
	if req.Nickname != nil {
		plant.Nickname = *req.Nickname
	}
	if req.Species != nil {
		plant.Species = *req.Species
	}
	if req.Location != nil {
		plant.Location = types.PlantLocation(*req.Location)
	}
	if req.Light != nil {
		plant.Light = types.LightExposure(*req.Light)
	}
	if req.Notes != nil {
		plant.Notes = *req.Notes
	}
	if req.PhotoURL != nil {
		plant.PhotoURL = *req.PhotoURL
	}

	if err := s.plants.Update(r.Context(), plant); err != nil {
		Error(w, r, err)
		return
	}
	JSON(w, r, http.StatusOK, APIResponse{Data: plant})
}

func (s *Server) handleDeletePlant(w http.ResponseWriter, r *http.Request) {
	userID := types.GetUserID(r.Context())
	if err := s.plants.Delete(r.Context(), chi.URLParam(r, "plantID"), userID); err != nil {
		Error(w, r, err)
		return
	}
	JSON(w, r, http.StatusOK, APIResponse{Data: map[string]bool{"deleted": true}})
}

// handlePlantCharacteristics returns the inferred (possibly cached)
// characteristics for a plant.
func (s *Server) handlePlantCharacteristics(w http.ResponseWriter, r *http.Request) {
	userID := types.GetUserID(r.Context())

	plant, err := s.plants.GetByID(r.Context(), chi.URLParam(r, "plantID"), userID)
	if err != nil {
		Error(w, r, err)
		return
	}

	city, err := s.profiles.DefaultCity(r.Context(), userID)
	if err != nil {
		Error(w, r, err)
		return
	}

	chars := s.intel.InferCharacteristics(r.Context(), plant, city, "")
	JSON(w, r, http.StatusOK, APIResponse{Data: chars})
}

// handleWateringRecommendation composes the eligibility gate and the
// stress engine for one plant. Watering/rain history comes from query
// parameters since the engine itself keeps no journal.
func (s *Server) handleWateringRecommendation(w http.ResponseWriter, r *http.Request) {
	userID := types.GetUserID(r.Context())

	plant, err := s.plants.GetByID(r.Context(), chi.URLParam(r, "plantID"), userID)
	if err != nil {
		Error(w, r, err)
		return
	}

	q := r.URL.Query()
	in := watering.RecommendationInput{
		PlantName:         plant.DisplayName(),
		PlantType:         plantTypeFor(plant, q.Get("plant_type")),
		HoursSinceWatered: parseFloatParam(q.Get("hours_since_watered")),
		HoursSinceRain:    parseFloatParam(q.Get("hours_since_rain")),
		PlantAgeWeeks:     parseIntParam(q.Get("age_weeks")),
		RecentRain:        q.Get("recent_rain") == "true",
		RainExpected:      q.Get("rain_expected") == "true",
		InSkipWindow:      q.Get("in_skip_window") == "true",
	}

	city := q.Get("city")
	if city == "" {
		city, err = s.profiles.DefaultCity(r.Context(), userID)
		if err != nil {
			Error(w, r, err)
			return
		}
	}
	if city != "" {
		snapshot, weatherErr := s.weather.CurrentWeather(r.Context(), city)
		if weatherErr != nil {
			s.logger.WarnContext(r.Context(), "weather unavailable for recommendation",
				"city", city, "error", weatherErr)
		} else {
			in.Weather = snapshot
		}
	}

	rec := watering.GenerateRecommendation(in)

	payload := map[string]any{"recommendation": rec}
	if rec.ShouldWater && in.Weather != nil {
		payload["instructions"] = watering.Instructions(in.PlantType, in.Weather)
	}
	JSON(w, r, http.StatusOK, APIResponse{Data: payload})
}

// plantTypeFor maps a plant's location to a stress-engine category unless
// the caller pinned one explicitly.
func plantTypeFor(plant *types.Plant, override string) types.PlantType {
	if override != "" {
		return types.RepairPlantType(override)
	}
	if plant.Location.IsOutdoor() {
		return types.PlantOutdoorShrub
	}
	return types.PlantHouseplant
}

func parseFloatParam(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseIntParam(s string) *int {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}
