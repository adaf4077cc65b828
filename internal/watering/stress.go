// Package watering implements the stress-scored watering engine: a pure
// stress score calculator, an eligibility gate enforcing minimum-interval
// and rain-exclusion rules, and the recommendation engine composing both
// against plant-type thresholds.
package watering

import (
	"fmt"
	"strings"

	"verdant/internal/types"
)

// Heat tiers in °F. Outdoor wildflowers scorch earlier, so their very-hot
// tier starts lower and they collect an extra point once conditions are hot.
const (
	heatWarmF        = 83.0
	heatHotF         = 89.0
	heatVeryHotF     = 95.0
	wildflowerHotF   = 92.0
	windBreezyMPH    = 20.0
	seedlingWindMPH  = 15.0
	drySpellHours    = 168.0
	dryDewpointF     = 45.0
	lowHumidityPct   = 25.0
	sunBoostTempF    = 85.0
	germinationWeeks = 3
)

// CalculateStressScore scores current weather against plant-type
// sensitivity. Categories are independent and additive. hoursSinceRain and
// plantAgeWeeks are optional; nil means unknown and the related checks are
// skipped.
func CalculateStressScore(w *types.WeatherSnapshot, plantType types.PlantType, hoursSinceRain *float64, plantAgeWeeks *int) types.StressScoreResult {
	var result types.StressScoreResult
	if w == nil {
		return result
	}

	germinating := plantType == types.PlantOutdoorWildflower &&
		plantAgeWeeks != nil && *plantAgeWeeks <= germinationWeeks

	// Heat.
	veryHot := heatVeryHotF
	if plantType == types.PlantOutdoorWildflower {
		veryHot = wildflowerHotF
	}
	switch {
	case w.TempF >= veryHot:
		result.Breakdown.Heat = 3
		result.Factors = append(result.Factors, fmt.Sprintf("very hot (%.0f°F)", w.TempF))
	case w.TempF >= heatHotF:
		result.Breakdown.Heat = 2
		result.Factors = append(result.Factors, fmt.Sprintf("hot (%.0f°F)", w.TempF))
	case w.TempF >= heatWarmF:
		result.Breakdown.Heat = 1
		result.Factors = append(result.Factors, fmt.Sprintf("warm (%.0f°F)", w.TempF))
	}
	if plantType == types.PlantOutdoorWildflower && w.TempF >= heatHotF {
		result.Breakdown.Heat++
		result.Factors = append(result.Factors, "heat-sensitive wildflower")
	}

	// Wind. Houseplants are sheltered; seedlings feel it sooner.
	if plantType != types.PlantHouseplant {
		if w.WindMPH >= windBreezyMPH {
			result.Breakdown.Wind++
			result.Factors = append(result.Factors, fmt.Sprintf("breezy (%.0fmph)", w.WindMPH))
		}
		if germinating && w.WindMPH >= seedlingWindMPH {
			result.Breakdown.Wind++
			result.Factors = append(result.Factors, fmt.Sprintf("gusty for seedlings (%.0fmph)", w.WindMPH))
		}
	}

	// Dry spell, outdoor types only.
	if plantType.IsOutdoorType() && hoursSinceRain != nil && *hoursSinceRain >= drySpellHours {
		result.Breakdown.DrySpell = 2
		result.Factors = append(result.Factors, fmt.Sprintf("dry spell (%.0fh since rain)", *hoursSinceRain))
	}

	// Air dryness: dewpoint and humidity are independent checks.
	if w.DewpointF != nil && *w.DewpointF <= dryDewpointF {
		result.Breakdown.AirDryness++
		result.Factors = append(result.Factors, fmt.Sprintf("dry air (dewpoint %.0f°F)", *w.DewpointF))
	}
	if w.Humidity <= lowHumidityPct {
		result.Breakdown.AirDryness++
		result.Factors = append(result.Factors, fmt.Sprintf("low humidity (%.0f%%)", w.Humidity))
	}

	// Sun / evapotranspiration.
	if isClear(w.Conditions) {
		if w.TempF >= sunBoostTempF {
			result.Breakdown.SunET += 2
			result.Factors = append(result.Factors, fmt.Sprintf("strong sun (%.0f°F, clear)", w.TempF))
		}
		if germinating {
			result.Breakdown.SunET++
			result.Factors = append(result.Factors, "seedling evaporation risk (clear sky)")
		}
	}

	result.TotalScore = result.Breakdown.Heat + result.Breakdown.Wind +
		result.Breakdown.DrySpell + result.Breakdown.AirDryness + result.Breakdown.SunET
	return result
}

func isClear(conditions string) bool {
	c := strings.ToLower(conditions)
	return strings.Contains(c, "clear") || strings.Contains(c, "sunny")
}
