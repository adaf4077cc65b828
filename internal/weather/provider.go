// Package weather implements the OpenWeather-backed types.WeatherProvider.
//
// The provider resolves user-entered city names (with a geocoding fallback
// when name lookup fails), fetches current conditions, sums 24-hour
// precipitation from the 3-hourly forecast, derives temperature extremes
// with freeze risk, and infers seasonal patterns with a calendar fallback
// when forecast data is unavailable.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"time"

	"verdant/internal/external"
	"verdant/internal/types"
)

const (
	// DefaultBaseURL is the OpenWeather API root. The weather, forecast,
	// and geocoding endpoints all hang off it.
	DefaultBaseURL = "https://api.openweathermap.org"

	weatherPath  = "/data/2.5/weather"
	forecastPath = "/data/2.5/forecast"
	geocodePath  = "/geo/1.0/direct"

	// freezePointF marks freeze risk in forecast extremes.
	freezePointF = 32.0

	mmPerInch = 25.4

	defaultTimeout = 10 * time.Second
)

// OpenWeatherProvider implements types.WeatherProvider against the
// OpenWeather REST API.
type OpenWeatherProvider struct {
	base    *external.BaseClient
	apiKey  types.SecretString
	baseURL string
	clock   types.Clock
	logger  *slog.Logger
}

// ProviderOption configures an OpenWeatherProvider.
type ProviderOption func(*OpenWeatherProvider)

// WithBaseURL overrides the API root, used by tests to point at a local
// server.
func WithBaseURL(u string) ProviderOption {
	return func(p *OpenWeatherProvider) { p.baseURL = u }
}

// WithClock overrides the time source.
func WithClock(c types.Clock) ProviderOption {
	return func(p *OpenWeatherProvider) { p.clock = c }
}

// WithBaseClient overrides the resilient HTTP client.
func WithBaseClient(bc *external.BaseClient) ProviderOption {
	return func(p *OpenWeatherProvider) { p.base = bc }
}

// NewOpenWeatherProvider builds a provider with circuit breaking and
// retries inherited from external.BaseClient.
func NewOpenWeatherProvider(apiKey types.SecretString, logger *slog.Logger, opts ...ProviderOption) *OpenWeatherProvider {
	if logger == nil {
		logger = slog.Default()
	}
	p := &OpenWeatherProvider{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		clock:   types.RealClock{},
		logger:  logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.base == nil {
		p.base = external.NewBaseClient(
			&http.Client{Timeout: defaultTimeout},
			"openweather",
			external.DefaultRetryPolicy(),
			"verdant/1.0",
		)
	}
	return p
}

// currentResponse mirrors the subset of the /weather payload we consume.
// Requested with units=imperial, so temp is °F and wind speed is mph.
type currentResponse struct {
	Name string `json:"name"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

// forecastResponse mirrors the 3-hourly /forecast payload. Requested with
// units=metric, so temps are °C and precipitation volumes are mm.
type forecastResponse struct {
	List []forecastPeriod `json:"list"`
}

type forecastPeriod struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Rain map[string]float64 `json:"rain"`
	Snow map[string]float64 `json:"snow"`
}

type geocodeEntry struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// CurrentWeather fetches current conditions for a user-entered city.
// Name lookup is tried first; on failure the city is geocoded and the
// query retried by coordinates.
func (p *OpenWeatherProvider) CurrentWeather(ctx context.Context, city string) (*types.WeatherSnapshot, error) {
	if city == "" {
		return nil, types.NewAppError(types.ErrCodeValidationInvalidCity, "city is required for weather lookup", nil)
	}

	q := url.Values{}
	q.Set("q", NormalizeCity(city))
	q.Set("units", "imperial")

	var cur currentResponse
	err := p.get(ctx, weatherPath, q, &cur)
	if err != nil {
		loc, geoErr := p.geocode(ctx, city)
		if geoErr != nil {
			return nil, err
		}
		q = url.Values{}
		q.Set("lat", formatCoord(loc.Lat))
		q.Set("lon", formatCoord(loc.Lon))
		q.Set("units", "imperial")
		if err = p.get(ctx, weatherPath, q, &cur); err != nil {
			return nil, err
		}
		if cur.Name == "" {
			cur.Name = loc.Name
		}
	}

	name := cur.Name
	if name == "" {
		name = city
	}
	conditions := ""
	if len(cur.Weather) > 0 {
		conditions = cur.Weather[0].Description
	}

	tempC := fahrenheitToCelsius(cur.Main.Temp)
	dew := round1(dewpointF(tempC, cur.Main.Humidity))
	return &types.WeatherSnapshot{
		City:       name,
		TempF:      cur.Main.Temp,
		TempC:      round1(tempC),
		Humidity:   cur.Main.Humidity,
		WindMPH:    cur.Wind.Speed,
		DewpointF:  &dew,
		Conditions: conditions,
	}, nil
}

// PrecipForecast24h sums rain and snow volumes from forecast periods in
// the next 24 hours and converts from millimeters to inches.
func (p *OpenWeatherProvider) PrecipForecast24h(ctx context.Context, city string) (float64, error) {
	periods, err := p.forecast(ctx, city)
	if err != nil {
		return 0, err
	}

	now := p.clock.Now()
	cutoff := now.Add(24 * time.Hour)

	var totalMM float64
	for _, period := range periods {
		t := time.Unix(period.Dt, 0).UTC()
		if t.Before(now) || t.After(cutoff) {
			continue
		}
		totalMM += period.Rain["3h"]
		totalMM += period.Snow["3h"]
	}

	return round2(totalMM / mmPerInch), nil
}

// TempExtremes scans the forecast over the given horizon for minimum and
// maximum temperatures. FreezeRisk is set when the minimum reaches 32°F.
func (p *OpenWeatherProvider) TempExtremes(ctx context.Context, city string, hours int) (*types.TempExtremes, error) {
	periods, err := p.forecast(ctx, city)
	if err != nil {
		return nil, err
	}
	if hours <= 0 {
		hours = 48
	}

	now := p.clock.Now()
	cutoff := now.Add(time.Duration(hours) * time.Hour)

	minC := math.Inf(1)
	maxC := math.Inf(-1)
	found := false
	for _, period := range periods {
		t := time.Unix(period.Dt, 0).UTC()
		if t.Before(now) || t.After(cutoff) {
			continue
		}
		found = true
		minC = math.Min(minC, period.Main.Temp)
		maxC = math.Max(maxC, period.Main.Temp)
	}
	if !found {
		return nil, types.NewAppError(types.ErrCodeUpstreamWeather, "forecast contained no periods in horizon", nil)
	}

	minF := celsiusToFahrenheit(minC)
	maxF := celsiusToFahrenheit(maxC)
	return &types.TempExtremes{
		TempMinF:   round1(minF),
		TempMaxF:   round1(maxF),
		TempMinC:   round1(minC),
		TempMaxC:   round1(maxC),
		FreezeRisk: minF <= freezePointF,
	}, nil
}

// forecast fetches the 3-hourly forecast for a city in metric units.
func (p *OpenWeatherProvider) forecast(ctx context.Context, city string) ([]forecastPeriod, error) {
	if city == "" {
		return nil, types.NewAppError(types.ErrCodeValidationInvalidCity, "city is required for forecast lookup", nil)
	}

	q := url.Values{}
	q.Set("q", NormalizeCity(city))
	q.Set("units", "metric")

	var fc forecastResponse
	if err := p.get(ctx, forecastPath, q, &fc); err != nil {
		return nil, err
	}
	return fc.List, nil
}

// geocode resolves a city name to coordinates via the geocoding API.
func (p *OpenWeatherProvider) geocode(ctx context.Context, city string) (*geocodeEntry, error) {
	q := url.Values{}
	q.Set("q", NormalizeCity(city))
	q.Set("limit", "1")

	var entries []geocodeEntry
	if err := p.get(ctx, geocodePath, q, &entries); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, types.NewAppError(
			types.ErrCodeValidationInvalidCity,
			fmt.Sprintf("no location found for %q", city),
			nil,
		)
	}
	return &entries[0], nil
}

// get performs an authenticated GET against the OpenWeather API and
// decodes the JSON response into out.
func (p *OpenWeatherProvider) get(ctx context.Context, path string, q url.Values, out any) error {
	q.Set("appid", p.apiKey.Unmask())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return types.NewAppError(types.ErrCodeInternalUnexpected, "failed to build weather request", err)
	}

	resp, err := p.base.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return types.NewAppError(
			types.ErrCodeUpstreamWeather,
			fmt.Sprintf("weather API returned %d for %s", resp.StatusCode, path),
			nil,
		)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return types.NewAppError(types.ErrCodeUpstreamWeather, "failed to decode weather response", err)
	}
	return nil
}

func fahrenheitToCelsius(f float64) float64 { return (f - 32) * 5 / 9 }

func celsiusToFahrenheit(c float64) float64 { return c*9/5 + 32 }

// dewpointF approximates the dewpoint from temperature and relative
// humidity using the Magnus formula. The current-conditions endpoint does
// not report dewpoint directly.
func dewpointF(tempC, humidityPct float64) float64 {
	if humidityPct <= 0 {
		humidityPct = 1
	}
	const a, b = 17.62, 243.12
	gamma := math.Log(humidityPct/100) + a*tempC/(b+tempC)
	dpC := b * gamma / (a - gamma)
	return celsiusToFahrenheit(dpC)
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func formatCoord(v float64) string { return fmt.Sprintf("%.4f", v) }
