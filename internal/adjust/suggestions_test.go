package adjust

import (
	"strings"
	"testing"

	"verdant/internal/types"

	"github.com/stretchr/testify/assert"
)

func TestPostponeSuggestionRecord(t *testing.T) {
	reminder := &types.Reminder{ID: "r1", Type: types.ReminderWatering}
	plant := &types.Plant{Name: "Tomato Plant"}
	decision := types.AdjustmentDecision{
		Action: types.ActionPostpone,
		Days:   2,
		Reason: "Light rain expected (0.3 inches).",
	}

	s := NewSuggestion(reminder, plant, decision)

	assert.Equal(t, "r1", s.ReminderID)
	assert.Equal(t, "Tomato Plant", s.PlantName)
	assert.Equal(t, SuggestionPostponeWatering, s.SuggestionType)
	assert.Contains(t, strings.ToLower(s.Message), "postponing")
	assert.Contains(t, s.Message, "2 days")
	assert.Equal(t, "Postpone 2 days", s.ActionLabel)
	assert.Equal(t, 2, s.Days)
}

func TestAdvanceSuggestionRecord(t *testing.T) {
	reminder := &types.Reminder{ID: "r2", Type: types.ReminderWatering}
	plant := &types.Plant{Name: "Rose Bush"}
	decision := types.AdjustmentDecision{
		Action: types.ActionAdvance,
		Days:   -1,
		Reason: "Extreme heat expected.",
	}

	s := NewSuggestion(reminder, plant, decision)

	assert.Equal(t, SuggestionAdvanceWatering, s.SuggestionType)
	assert.Contains(t, strings.ToLower(s.Message), "advancing")
	assert.Equal(t, "Advance 1 day", s.ActionLabel)
	assert.Equal(t, -1, s.Days)
}

func TestSuggestionFallsBackToGenericPlantName(t *testing.T) {
	reminder := &types.Reminder{ID: "r3", Type: types.ReminderMisting}
	s := NewSuggestion(reminder, nil, types.AdjustmentDecision{Action: types.ActionPostpone, Days: 1})
	assert.Equal(t, "your plant", s.PlantName)
	assert.Equal(t, "Postpone 1 day", s.ActionLabel)
}
