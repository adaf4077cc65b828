package adjust

import (
	"fmt"

	"verdant/internal/types"
)

// Suggestion types surfaced to the UI.
const (
	SuggestionPostponeWatering = "postpone_watering"
	SuggestionAdvanceWatering  = "advance_watering"
)

// NewSuggestion builds the user-facing record for a suggestion-mode
// decision: a friendly message, an action label like "Postpone 2 days",
// and the signed day delta for the accept endpoint.
func NewSuggestion(reminder *types.Reminder, plant *types.Plant, decision types.AdjustmentDecision) types.Suggestion {
	name := "your plant"
	if plant != nil {
		name = plant.DisplayName()
	} else if reminder.Plant != nil {
		name = reminder.Plant.DisplayName()
	}

	magnitude := decision.Days
	if magnitude < 0 {
		magnitude = -magnitude
	}

	s := types.Suggestion{
		ReminderID: reminder.ID,
		PlantName:  name,
		Days:       decision.Days,
		Reason:     decision.Reason,
	}

	switch decision.Action {
	case types.ActionAdvance:
		s.SuggestionType = SuggestionAdvanceWatering
		s.ActionLabel = fmt.Sprintf("Advance %s", dayWord(magnitude))
		s.Message = fmt.Sprintf("Weather suggests advancing %s for %s by %s. %s",
			reminder.Type.DisplayName(), name, dayWord(magnitude), decision.Reason)
	default:
		s.SuggestionType = SuggestionPostponeWatering
		s.ActionLabel = fmt.Sprintf("Postpone %s", dayWord(magnitude))
		s.Message = fmt.Sprintf("Weather suggests postponing %s for %s by %s. %s",
			reminder.Type.DisplayName(), name, dayWord(magnitude), decision.Reason)
	}
	return s
}

func dayWord(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
