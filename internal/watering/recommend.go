package watering

import (
	"fmt"
	"strings"

	"verdant/internal/types"
)

// noWeatherLongGapHours is the elapsed time after which watering is likely
// needed even without weather data.
const noWeatherLongGapHours = 168.0

// maxFactorsInText caps how many stress factors appear in the
// recommendation text.
const maxFactorsInText = 3

// RecommendationInput carries everything the recommendation engine needs
// for one plant. Pointer fields are nil when unknown.
type RecommendationInput struct {
	PlantName         string
	HoursSinceWatered *float64
	Weather           *types.WeatherSnapshot
	PlantType         types.PlantType
	PlantAgeWeeks     *int

	// Gate inputs, derived by the caller from watering/rain history.
	RecentRain     bool
	RainExpected   bool
	InSkipWindow   bool
	HoursSinceRain *float64
}

// WateringThreshold returns the stress score at which watering is
// recommended. Established wildflowers tolerate more stress than seedlings
// or potted plants.
func WateringThreshold(plantType types.PlantType, plantAgeWeeks *int) int {
	if plantType == types.PlantOutdoorWildflower {
		if plantAgeWeeks != nil && *plantAgeWeeks > germinationWeeks {
			return 3
		}
	}
	return 2
}

// DetermineRecommendation applies the plant-type threshold to a stress
// score and returns the verdict with a short explanation.
func DetermineRecommendation(stressScore int, plantType types.PlantType, plantAgeWeeks *int) (bool, string) {
	threshold := WateringThreshold(plantType, plantAgeWeeks)
	if stressScore >= threshold {
		return true, fmt.Sprintf("stress score %d reached (threshold: %d)", stressScore, threshold)
	}
	return false, fmt.Sprintf("stress score %d below cutoff (threshold: %d)", stressScore, threshold)
}

// GenerateRecommendation composes the eligibility gate and the stress
// engine into a complete should-water verdict with a human-readable
// recommendation line.
func GenerateRecommendation(in RecommendationInput) types.WateringRecommendation {
	eligible, reason := CheckEligibility(in.HoursSinceWatered, in.RecentRain, in.RainExpected, in.InSkipWindow)
	if !eligible {
		return types.WateringRecommendation{
			ShouldWater:    false,
			Eligible:       false,
			Reason:         reason,
			Recommendation: "⏳ NOT YET - " + reason,
		}
	}

	// No weather data: fall back to elapsed-time heuristics.
	if in.Weather == nil {
		if in.HoursSinceWatered == nil {
			return types.WateringRecommendation{
				ShouldWater:    true,
				Eligible:       true,
				Recommendation: "🤔 CHECK SOIL - no weather data; water if the top inch is dry",
			}
		}
		if *in.HoursSinceWatered > noWeatherLongGapHours {
			return types.WateringRecommendation{
				ShouldWater: true,
				Eligible:    true,
				Recommendation: fmt.Sprintf("💧 LIKELY YES - %.0fh since last watering and no weather data",
					*in.HoursSinceWatered),
			}
		}
		return types.WateringRecommendation{
			ShouldWater:    false,
			Eligible:       true,
			Recommendation: "⏳ NOT YET - no weather data and watered recently",
		}
	}

	stress := CalculateStressScore(in.Weather, in.PlantType, in.HoursSinceRain, in.PlantAgeWeeks)
	shouldWater, explanation := DetermineRecommendation(stress.TotalScore, in.PlantType, in.PlantAgeWeeks)

	rec := types.WateringRecommendation{
		ShouldWater:   shouldWater,
		Eligible:      true,
		StressScore:   stress.TotalScore,
		StressFactors: stress.Factors,
	}
	if shouldWater {
		rec.Recommendation = "💧 YES - water now"
		if len(stress.Factors) > 0 {
			top := stress.Factors
			if len(top) > maxFactorsInText {
				top = top[:maxFactorsInText]
			}
			rec.Recommendation += " (" + strings.Join(top, ", ") + ")"
		}
	} else {
		rec.Recommendation = "⏳ NOT YET - " + explanation
	}
	return rec
}
