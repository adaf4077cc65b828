package watering

import (
	"strings"
	"testing"

	"verdant/internal/types"

	"github.com/stretchr/testify/assert"
)

func TestHouseplantThreshold(t *testing.T) {
	should, explanation := DetermineRecommendation(2, types.PlantHouseplant, nil)
	assert.True(t, should)
	assert.Contains(t, explanation, "threshold: 2")

	should, _ = DetermineRecommendation(1, types.PlantHouseplant, nil)
	assert.False(t, should)
}

func TestShrubThreshold(t *testing.T) {
	should, _ := DetermineRecommendation(2, types.PlantOutdoorShrub, nil)
	assert.True(t, should)
}

func TestWildflowerGerminationThreshold(t *testing.T) {
	should, _ := DetermineRecommendation(2, types.PlantOutdoorWildflower, ptrI(2))
	assert.True(t, should)
}

func TestWildflowerEstablishedThreshold(t *testing.T) {
	should, _ := DetermineRecommendation(2, types.PlantOutdoorWildflower, ptrI(5))
	assert.False(t, should)

	should, _ = DetermineRecommendation(3, types.PlantOutdoorWildflower, ptrI(5))
	assert.True(t, should)
}

func TestGenerateNotEligibleRecentWatering(t *testing.T) {
	res := GenerateRecommendation(RecommendationInput{
		PlantName:         "Monstera",
		HoursSinceWatered: ptrF(30),
		Weather:           snapshot(95, 20, 25, 35, "clear"),
		PlantType:         types.PlantHouseplant,
	})
	assert.False(t, res.ShouldWater)
	assert.False(t, res.Eligible)
	assert.Contains(t, res.Reason, "Last watered 30.0h ago")
}

func TestGenerateEligibleAndHighStress(t *testing.T) {
	res := GenerateRecommendation(RecommendationInput{
		PlantName:         "Monstera",
		HoursSinceWatered: ptrF(60),
		Weather:           snapshot(95, 20, 5, 35, "clear"),
		PlantType:         types.PlantHouseplant,
	})
	assert.True(t, res.ShouldWater)
	assert.True(t, res.Eligible)
	assert.Contains(t, res.Recommendation, "💧")
	assert.Contains(t, res.Recommendation, "YES")
	assert.GreaterOrEqual(t, res.StressScore, 2)
}

func TestGenerateEligibleButLowStress(t *testing.T) {
	res := GenerateRecommendation(RecommendationInput{
		PlantName:         "Monstera",
		HoursSinceWatered: ptrF(60),
		Weather:           snapshot(70, 50, 5, 55, "cloudy"),
		PlantType:         types.PlantHouseplant,
	})
	assert.False(t, res.ShouldWater)
	assert.True(t, res.Eligible)
	assert.Contains(t, res.Recommendation, "NOT YET")
}

func TestGenerateNeverWateredNoWeather(t *testing.T) {
	res := GenerateRecommendation(RecommendationInput{
		PlantName: "Monstera",
		PlantType: types.PlantHouseplant,
	})
	assert.True(t, res.ShouldWater)
	assert.Contains(t, res.Recommendation, "CHECK SOIL")
}

func TestGenerateLongTimeNoWeather(t *testing.T) {
	res := GenerateRecommendation(RecommendationInput{
		PlantName:         "Monstera",
		HoursSinceWatered: ptrF(200),
		PlantType:         types.PlantHouseplant,
	})
	assert.True(t, res.ShouldWater)
	assert.Contains(t, res.Recommendation, "LIKELY YES")
}

func TestGenerateIncludesTopStressFactors(t *testing.T) {
	res := GenerateRecommendation(RecommendationInput{
		PlantName:         "Monstera",
		HoursSinceWatered: ptrF(60),
		Weather:           snapshot(95, 15, 28, 30, "clear"),
		PlantType:         types.PlantOutdoorShrub,
	})
	assert.True(t, res.ShouldWater)
	assert.NotEmpty(t, res.StressFactors)
	assert.True(t, strings.Contains(res.Recommendation, "very hot"),
		"recommendation should surface the leading factor: %s", res.Recommendation)
}
