// Package adjust implements the weather-aware reminder adjustment engine:
// a rule-based evaluator that decides whether to leave a reminder's
// schedule untouched, shift it automatically, or surface a suggestion, and
// the batch orchestrator that applies those decisions across a user's due
// reminders.
package adjust

import (
	"fmt"
	"time"

	"verdant/internal/types"
)

// Rule thresholds.
const (
	heavyRainInches   = 0.5
	lightRainInches   = 0.25
	extremeHeatF      = 95.0
	freezePostponeDay = 2
	heavyPostponeDays = 2
	lightPostponeDays = 1
	dormancyPostpone  = 2
)

// Signals bundles the environmental inputs one evaluation consumes.
// Nil fields mean the signal could not be resolved; rules treat missing
// data as "does not fire".
type Signals struct {
	Weather         *types.WeatherSnapshot
	PrecipInches24h *float64
	Extremes        *types.TempExtremes
	Seasonal        *types.SeasonalPattern
	Characteristics *types.PlantCharacteristics
	LightFactor     float64
	Month           time.Month
}

// Rule is one candidate adjustment. Evaluate returns nil when the rule
// does not fire. Rules are kept in a slice ordered by ascending priority
// rank; the first non-nil decision wins, so adding a hazard is a matter of
// inserting one entry.
type Rule struct {
	Name     string
	Priority types.AdjustmentPriority
	Evaluate func(plant *types.Plant, sig *Signals) *types.AdjustmentDecision
}

// defaultRules returns the rule list in priority order:
// safety (freeze, extreme heat) > precipitation > seasonal dormancy.
func defaultRules() []Rule {
	return []Rule{
		{
			Name:     "freeze_risk",
			Priority: types.PrioritySafety,
			Evaluate: evaluateFreeze,
		},
		{
			Name:     "extreme_heat",
			Priority: types.PrioritySafety,
			Evaluate: evaluateExtremeHeat,
		},
		{
			Name:     "precipitation",
			Priority: types.PriorityPrecipitation,
			Evaluate: evaluatePrecipitation,
		},
		{
			Name:     "dormancy",
			Priority: types.PrioritySeasonal,
			Evaluate: evaluateDormancy,
		},
	}
}

// evaluateFreeze postpones watering automatically when the forecast low
// reaches freezing. Watering before a freeze damages roots.
func evaluateFreeze(_ *types.Plant, sig *Signals) *types.AdjustmentDecision {
	if sig.Extremes == nil || !sig.Extremes.FreezeRisk {
		return nil
	}
	return &types.AdjustmentDecision{
		Action:   types.ActionPostpone,
		Mode:     types.ModeAutomatic,
		Days:     freezePostponeDay,
		Priority: types.PrioritySafety,
		Reason:   fmt.Sprintf("Freeze risk in the forecast (low %.0f°F); watering postponed 2 days.", sig.Extremes.TempMinF),
		Details: map[string]any{
			"temp_min_f": sig.Extremes.TempMinF,
		},
	}
}

// evaluateExtremeHeat suggests watering a day early when a tender plant
// faces extreme heat. Suggestion only: the user knows their microclimate.
func evaluateExtremeHeat(_ *types.Plant, sig *Signals) *types.AdjustmentDecision {
	if sig.Extremes == nil || sig.Extremes.TempMaxF < extremeHeatF {
		return nil
	}
	if sig.Characteristics == nil || sig.Characteristics.ColdTolerance != types.ColdTender {
		return nil
	}
	return &types.AdjustmentDecision{
		Action:   types.ActionAdvance,
		Mode:     types.ModeSuggestion,
		Days:     -1,
		Priority: types.PrioritySafety,
		Reason:   fmt.Sprintf("Extreme heat expected (high %.0f°F) for a tender plant; consider watering a day early.", sig.Extremes.TempMaxF),
		Details: map[string]any{
			"temp_max_f": sig.Extremes.TempMaxF,
		},
	}
}

// evaluatePrecipitation postpones watering when meaningful rain is
// forecast. Heavy rain is applied automatically; light rain is only a
// suggestion. Outdoor-only, enforced by the evaluator's short circuits.
func evaluatePrecipitation(plant *types.Plant, sig *Signals) *types.AdjustmentDecision {
	if sig.PrecipInches24h == nil || plant == nil || !plant.Location.IsOutdoor() {
		return nil
	}
	inches := *sig.PrecipInches24h
	switch {
	case inches >= heavyRainInches:
		return &types.AdjustmentDecision{
			Action:   types.ActionPostpone,
			Mode:     types.ModeAutomatic,
			Days:     heavyPostponeDays,
			Priority: types.PriorityPrecipitation,
			Reason:   fmt.Sprintf("Heavy rain expected (%.1f inches); watering postponed 2 days.", inches),
			Details: map[string]any{
				"precipitation_inches": inches,
			},
		}
	case inches >= lightRainInches:
		return &types.AdjustmentDecision{
			Action:   types.ActionPostpone,
			Mode:     types.ModeSuggestion,
			Days:     lightPostponeDays,
			Priority: types.PriorityPrecipitation,
			Reason:   fmt.Sprintf("Light rain expected (%.1f inches); consider postponing watering 1 day.", inches),
			Details: map[string]any{
				"precipitation_inches": inches,
			},
		}
	default:
		return nil
	}
}

// evaluateDormancy suggests postponing for perennials in a dormancy
// period, when water demand is biologically reduced. Dormancy is detected
// either from the city's seasonal pattern or from the plant's own inferred
// dormancy months; a species can go dormant outside the local winter.
func evaluateDormancy(_ *types.Plant, sig *Signals) *types.AdjustmentDecision {
	if sig.Characteristics == nil || sig.Characteristics.Lifecycle != types.LifecyclePerennial {
		return nil
	}

	seasonalDormancy := sig.Seasonal != nil && sig.Seasonal.IsDormancyPeriod
	speciesDormancy := containsMonth(sig.Characteristics.DormancyMonths, sig.Month)
	if !seasonalDormancy && !speciesDormancy {
		return nil
	}

	details := map[string]any{}
	if sig.Seasonal != nil {
		details["season"] = string(sig.Seasonal.Season)
	}
	if speciesDormancy {
		details["dormancy_month"] = sig.Month.String()
	}
	return &types.AdjustmentDecision{
		Action:   types.ActionPostpone,
		Mode:     types.ModeSuggestion,
		Days:     dormancyPostpone,
		Priority: types.PrioritySeasonal,
		Reason:   "Dormancy period detected; water demand is reduced, consider postponing.",
		Details:  details,
	}
}

func containsMonth(months []time.Month, m time.Month) bool {
	for _, candidate := range months {
		if candidate == m {
			return true
		}
	}
	return false
}
