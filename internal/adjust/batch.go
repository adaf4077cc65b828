package adjust

import (
	"context"
	"time"

	"verdant/internal/types"
)

// AdjustmentStore persists applied automatic adjustments. Implemented by
// the reminder repository.
type AdjustmentStore interface {
	ApplyWeatherAdjustment(ctx context.Context, reminderID string, due time.Time, reason string) error
}

// AdjustedReminder pairs a reminder with the decision attached to it
// during batch processing. Adjustment is nil when nothing was applied.
type AdjustedReminder struct {
	Reminder   *types.Reminder
	Adjustment *types.AdjustmentDecision
}

// ApplyAutomaticAdjustments evaluates every due reminder and applies
// automatic-mode decisions: the new due date is persisted and the reminder
// is dropped from the returned due set if the adjustment moved it to the
// future. Reminders advanced to today stay, with the adjustment attached.
// Suggestion-mode decisions leave reminders untouched.
//
// A persistence failure is logged and does not suppress the decision; the
// adjusted reminder is still reported to the caller.
func (e *Evaluator) ApplyAutomaticAdjustments(ctx context.Context, store AdjustmentStore, reminders []*types.Reminder, plantsByID map[string]*types.Plant, city string) []AdjustedReminder {
	today := types.DateOnly(e.clock.Now())
	result := make([]AdjustedReminder, 0, len(reminders))

	for _, reminder := range reminders {
		plant := plantsByID[reminder.PlantID]
		decision := e.EvaluateReminderAdjustment(ctx, reminder, plant, city)

		if decision.Action == types.ActionNone || decision.Mode != types.ModeAutomatic {
			result = append(result, AdjustedReminder{Reminder: reminder})
			continue
		}

		newDue := types.DateOnly(reminder.EffectiveDue()).AddDate(0, 0, decision.Days)
		decision.AdjustedDue = &newDue

		if store != nil {
			if err := store.ApplyWeatherAdjustment(ctx, reminder.ID, newDue, decision.Reason); err != nil {
				e.logger.ErrorContext(ctx, "failed to persist weather adjustment",
					"reminder_id", reminder.ID, "error", err)
			}
		}

		reminder.WeatherAdjustedDue = &newDue
		reminder.WeatherAdjustmentReason = decision.Reason

		// Moved to the future: no longer due today.
		if newDue.After(today) {
			continue
		}
		result = append(result, AdjustedReminder{Reminder: reminder, Adjustment: &decision})
	}

	return result
}

// GetAdjustmentSuggestions evaluates reminders and collects user-facing
// suggestion records for every suggestion-mode decision. Automatic
// decisions are excluded; they are applied, not proposed.
func (e *Evaluator) GetAdjustmentSuggestions(ctx context.Context, reminders []*types.Reminder, plantsByID map[string]*types.Plant, city string) []types.Suggestion {
	suggestions := make([]types.Suggestion, 0)
	for _, reminder := range reminders {
		plant := plantsByID[reminder.PlantID]
		decision := e.EvaluateReminderAdjustment(ctx, reminder, plant, city)
		if decision.Action == types.ActionNone || decision.Mode != types.ModeSuggestion {
			continue
		}
		suggestions = append(suggestions, NewSuggestion(reminder, plant, decision))
	}
	return suggestions
}
