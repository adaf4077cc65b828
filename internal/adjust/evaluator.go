package adjust

import (
	"context"
	"log/slog"

	"verdant/internal/types"
)

// extremesHorizonHours is the forecast window consulted for freeze and
// extreme-heat checks.
const extremesHorizonHours = 48

// CharacteristicService resolves (possibly cached) plant characteristics.
// Implemented by plantintel.Service.
type CharacteristicService interface {
	InferCharacteristics(ctx context.Context, plant *types.Plant, city, hardinessZone string) *types.PlantCharacteristics
}

// LightFactorFunc computes the light adjustment factor for a plant.
type LightFactorFunc func(plant *types.Plant, seasonal *types.SeasonalPattern, weather *types.WeatherSnapshot) float64

// Evaluator is the central decision engine. All weather and AI failures
// fail open to "no adjustment"; a reminder is never blocked by missing
// data.
type Evaluator struct {
	weather     types.WeatherProvider
	intel       CharacteristicService
	lightFactor LightFactorFunc
	rules       []Rule
	clock       types.Clock
	logger      *slog.Logger
}

// NewEvaluator wires the evaluator with the default rule list.
func NewEvaluator(weather types.WeatherProvider, intel CharacteristicService, lightFactor LightFactorFunc, clock types.Clock, logger *slog.Logger) *Evaluator {
	if clock == nil {
		clock = types.RealClock{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Evaluator{
		weather:     weather,
		intel:       intel,
		lightFactor: lightFactor,
		rules:       defaultRules(),
		clock:       clock,
		logger:      logger,
	}
}

// EvaluateReminderAdjustment decides what, if anything, should happen to
// one reminder's schedule. Short-circuits to no adjustment when the
// reminder opted out, is not weather sensitive, the plant is not outdoors,
// no city is known, or a prior adjustment is still in the future.
func (e *Evaluator) EvaluateReminderAdjustment(ctx context.Context, reminder *types.Reminder, plant *types.Plant, city string) types.AdjustmentDecision {
	if reminder == nil || reminder.SkipWeatherAdjustment {
		return types.NoAdjustment()
	}
	if !reminder.Type.WeatherSensitive() {
		return types.NoAdjustment()
	}
	if plant == nil || !plant.Location.IsOutdoor() {
		return types.NoAdjustment()
	}
	if city == "" {
		return types.NoAdjustment()
	}

	// A prior adjustment stands while its date is still in the future.
	// Once it arrives the reminder is re-evaluated as if unadjusted, so a
	// persisting hazard re-fires.
	today := types.DateOnly(e.clock.Now())
	if reminder.WeatherAdjustedDue != nil && types.DateOnly(*reminder.WeatherAdjustedDue).After(today) {
		return types.NoAdjustment()
	}

	sig, ok := e.gatherSignals(ctx, plant, city)
	if !ok {
		return types.NoAdjustment()
	}

	// Rules are ordered by ascending priority rank; the first that fires
	// wins.
	for _, rule := range e.rules {
		if decision := rule.Evaluate(plant, sig); decision != nil {
			return *decision
		}
	}
	return types.NoAdjustment()
}

// gatherSignals resolves all environmental inputs. Current weather is
// required; every other signal degrades to nil on failure.
func (e *Evaluator) gatherSignals(ctx context.Context, plant *types.Plant, city string) (*Signals, bool) {
	weather, err := e.weather.CurrentWeather(ctx, city)
	if err != nil || weather == nil {
		e.logger.WarnContext(ctx, "weather unavailable, skipping adjustment", "city", city, "error", err)
		return nil, false
	}

	sig := &Signals{Weather: weather, LightFactor: 1.0, Month: e.clock.Now().UTC().Month()}

	if inches, err := e.weather.PrecipForecast24h(ctx, city); err == nil {
		sig.PrecipInches24h = &inches
	} else {
		e.logger.WarnContext(ctx, "precipitation forecast unavailable", "city", city, "error", err)
	}

	if extremes, err := e.weather.TempExtremes(ctx, city, extremesHorizonHours); err == nil {
		sig.Extremes = extremes
	} else {
		e.logger.WarnContext(ctx, "temperature extremes unavailable", "city", city, "error", err)
	}

	if seasonal, err := e.weather.SeasonalPattern(ctx, city); err == nil {
		sig.Seasonal = seasonal
	}

	if e.intel != nil {
		sig.Characteristics = e.intel.InferCharacteristics(ctx, plant, city, "")
	}

	if e.lightFactor != nil {
		sig.LightFactor = e.lightFactor(plant, sig.Seasonal, weather)
	}

	return sig, true
}
