package plantintel

import (
	"strings"

	"verdant/internal/types"
)

// Light adjustment factors: multiplicative modifiers to watering
// frequency. 1.0 means no change.
const (
	factorBaseline         = 1.0
	factorIndoorSummer     = 1.1
	factorIndoorWinter     = 0.9
	factorFullSunSummer    = 1.3
	factorFullSunWinter    = 0.9
	factorPartialSunSummer = 1.1
	factorShade            = 0.8
	factorDormancy         = 0.6
)

// Season inference bounds when only a temperature reading is available.
const (
	summerTempF = 78.0
	winterTempF = 50.0
)

// LightAdjustmentFactor maps (location, light exposure, season, dormancy)
// to a multiplicative watering-frequency factor. Grow lights remove
// seasonality entirely; dormancy overrides everything else. seasonal and
// weather are optional; weather is used to infer a season when no seasonal
// pattern is given.
func LightAdjustmentFactor(plant *types.Plant, seasonal *types.SeasonalPattern, weather *types.WeatherSnapshot) float64 {
	if plant == nil {
		return factorBaseline
	}

	if usesGrowLight(plant.Notes) {
		return factorBaseline
	}

	if seasonal != nil && seasonal.IsDormancyPeriod {
		return factorDormancy
	}

	season := resolveSeason(seasonal, weather)

	if !plant.Location.IsOutdoor() {
		switch season {
		case types.SeasonSummer:
			return factorIndoorSummer
		case types.SeasonWinter:
			return factorIndoorWinter
		default:
			return factorBaseline
		}
	}

	switch plant.Light {
	case types.LightFullSun:
		switch season {
		case types.SeasonSummer:
			return factorFullSunSummer
		case types.SeasonWinter:
			return factorFullSunWinter
		default:
			return factorBaseline
		}
	case types.LightPartialSun:
		if season == types.SeasonSummer {
			return factorPartialSunSummer
		}
		return factorBaseline
	case types.LightShade:
		return factorShade
	default:
		return factorBaseline
	}
}

func usesGrowLight(notes string) bool {
	n := strings.ToLower(notes)
	return strings.Contains(n, "grow light") || strings.Contains(n, "grow-light") ||
		strings.Contains(n, "growlight")
}

// resolveSeason prefers the seasonal pattern; falls back to a coarse
// temperature read, and returns "" when neither is available.
func resolveSeason(seasonal *types.SeasonalPattern, weather *types.WeatherSnapshot) types.Season {
	if seasonal != nil {
		return seasonal.Season
	}
	if weather != nil {
		switch {
		case weather.TempF >= summerTempF:
			return types.SeasonSummer
		case weather.TempF <= winterTempF:
			return types.SeasonWinter
		}
	}
	return ""
}
