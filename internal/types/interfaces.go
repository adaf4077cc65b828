package types

import (
	"context"
	"time"
)

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the real system time (always UTC).
type RealClock struct{}

// Now returns the current time in UTC.
func (RealClock) Now() time.Time { return time.Now().UTC() }

// WeatherProvider retrieves weather data for a city. Implementations must
// treat failures as recoverable: callers fail open and leave schedules
// untouched when weather is unavailable.
type WeatherProvider interface {
	// CurrentWeather returns current conditions for a city.
	CurrentWeather(ctx context.Context, city string) (*WeatherSnapshot, error)

	// PrecipForecast24h returns expected precipitation over the next 24
	// hours, in inches.
	PrecipForecast24h(ctx context.Context, city string) (float64, error)

	// TempExtremes returns forecast min/max temperatures and freeze risk
	// over the given number of hours.
	TempExtremes(ctx context.Context, city string, hours int) (*TempExtremes, error)

	// SeasonalPattern derives the season and dormancy summary for a city,
	// falling back to the calendar when forecast data is unavailable.
	SeasonalPattern(ctx context.Context, city string) (*SeasonalPattern, error)
}

// InferenceRequest is the input to plant characteristic inference.
type InferenceRequest struct {
	Species       string
	Location      string
	Notes         string
	Light         string
	City          string
	HardinessZone string
}

// CharacteristicProvider infers plant characteristics from descriptive
// plant data. Best effort: malformed responses are repaired, missing ones
// surface as errors the caller converts to defaults.
type CharacteristicProvider interface {
	Infer(ctx context.Context, req InferenceRequest) (*PlantCharacteristics, error)
}
