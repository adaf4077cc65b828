package types

import (
	"time"
)

// Reminder is the core scheduling entity. next_due is a calendar date
// stored at UTC midnight; WeatherAdjustedDue, when set, overrides it for
// due-date computation while it lies in the future.
type Reminder struct {
	ID      string `json:"id" db:"id"`
	UserID  string `json:"user_id" db:"user_id"`
	PlantID string `json:"plant_id" db:"plant_id"`

	Type               ReminderType `json:"reminder_type" db:"reminder_type"`
	Title              string       `json:"title" db:"title"`
	Frequency          Frequency    `json:"frequency" db:"frequency"`
	CustomIntervalDays int          `json:"custom_interval_days,omitempty" db:"custom_interval_days"`
	Notes              string       `json:"notes,omitempty" db:"notes"`

	NextDue time.Time `json:"next_due" db:"next_due"`

	// Weather adjustment fields, mutated exclusively by the adjustment
	// engine and cleared explicitly by the user.
	WeatherAdjustedDue      *time.Time `json:"weather_adjusted_due,omitempty" db:"weather_adjusted_due"`
	WeatherAdjustmentReason string     `json:"weather_adjustment_reason,omitempty" db:"weather_adjustment_reason"`
	SkipWeatherAdjustment   bool       `json:"skip_weather_adjustment" db:"skip_weather_adjustment"`

	IsActive        bool       `json:"is_active" db:"is_active"`
	IsRecurring     bool       `json:"is_recurring" db:"is_recurring"`
	LastCompletedAt *time.Time `json:"last_completed_at,omitempty" db:"last_completed_at"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Hydrated from the plants join on list queries; nil on bare reads.
	Plant *Plant `json:"plant,omitempty" db:"-"`
}

// EffectiveDue returns the date that governs "due" status: the weather
// adjusted date when set, otherwise next_due.
func (r *Reminder) EffectiveDue() time.Time {
	if r.WeatherAdjustedDue != nil {
		return *r.WeatherAdjustedDue
	}
	return r.NextDue
}

// DueOn reports whether the reminder is due on (or before) the given day.
func (r *Reminder) DueOn(day time.Time) bool {
	return !DateOnly(r.EffectiveDue()).After(DateOnly(day))
}

// Plant is a read-only input to the decision engines.
type Plant struct {
	ID       string        `json:"id" db:"id"`
	UserID   string        `json:"user_id" db:"user_id"`
	Name     string        `json:"name" db:"name"`
	Nickname string        `json:"nickname,omitempty" db:"nickname"`
	Species  string        `json:"species,omitempty" db:"species"`
	Location PlantLocation `json:"location" db:"location"`
	Light    LightExposure `json:"light,omitempty" db:"light"`
	Notes    string        `json:"notes,omitempty" db:"notes"`
	PhotoURL string        `json:"photo_url,omitempty" db:"photo_url"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// DisplayName prefers the nickname over the formal name.
func (p *Plant) DisplayName() string {
	if p.Nickname != "" {
		return p.Nickname
	}
	return p.Name
}

// UserProfile carries the per-user settings the engines need, chiefly the
// default city for weather lookups.
type UserProfile struct {
	UserID      string    `json:"user_id" db:"user_id"`
	Email       string    `json:"email" db:"email"`
	DefaultCity string    `json:"default_city,omitempty" db:"default_city"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// WeatherSnapshot is the current-conditions payload. Fetched fresh per
// evaluation and never persisted. DewpointF is a pointer so a genuine
// 0°F dewpoint is distinguishable from "not derived".
type WeatherSnapshot struct {
	City       string   `json:"city"`
	TempF      float64  `json:"temp_f"`
	TempC      float64  `json:"temp_c"`
	Humidity   float64  `json:"humidity"`
	WindMPH    float64  `json:"wind_mph"`
	DewpointF  *float64 `json:"dewpoint,omitempty"`
	Conditions string   `json:"conditions"`
}

// TempExtremes summarizes forecast temperature bounds over a horizon.
type TempExtremes struct {
	TempMinF   float64 `json:"temp_min_f"`
	TempMaxF   float64 `json:"temp_max_f"`
	TempMinC   float64 `json:"temp_min_c"`
	TempMaxC   float64 `json:"temp_max_c"`
	FreezeRisk bool    `json:"freeze_risk"`
}

// SeasonalPattern is the derived season/dormancy summary for a city.
type SeasonalPattern struct {
	Season           Season       `json:"season"`
	IsDormancyPeriod bool         `json:"is_dormancy_period"`
	FrostRisk        bool         `json:"frost_risk"`
	AvgTemp7dF       *float64     `json:"avg_temp_7d"`
	Method           SeasonMethod `json:"method"`
}

// PlantCharacteristics is the (possibly cached) inference result for a
// plant. Enum fields are always one of the allowed values; repair happens
// at ingestion.
type PlantCharacteristics struct {
	Origin        PlantOrigin          `json:"origin"`
	Lifecycle     Lifecycle            `json:"lifecycle"`
	ColdTolerance ColdTolerance        `json:"cold_tolerance"`
	WaterNeeds    WaterNeeds           `json:"water_needs"`
	DormancyMonths []time.Month        `json:"dormancy_months"`
	Confidence    float64              `json:"confidence"`
	Source        CharacteristicSource `json:"source"`
}

// AdjustmentDecision is the evaluator's verdict for one reminder.
type AdjustmentDecision struct {
	Action   AdjustmentAction   `json:"action"`
	Mode     AdjustmentMode     `json:"mode,omitempty"`
	Days     int                `json:"days,omitempty"` // negative = advance
	Priority AdjustmentPriority `json:"priority,omitempty"`
	Reason   string             `json:"reason,omitempty"`
	Details  map[string]any     `json:"details,omitempty"`

	// AdjustedDue is populated by the batch orchestrator after an
	// automatic decision has been applied.
	AdjustedDue *time.Time `json:"adjusted_due_date,omitempty"`
}

// NoAdjustment is the fail-open decision: leave the schedule untouched.
func NoAdjustment() AdjustmentDecision {
	return AdjustmentDecision{Action: ActionNone}
}

// StressBreakdown holds per-category stress contributions.
type StressBreakdown struct {
	Heat       int `json:"heat"`
	Wind       int `json:"wind"`
	DrySpell   int `json:"dry_spell"`
	AirDryness int `json:"air_dryness"`
	SunET      int `json:"sun_et"`
}

// StressScoreResult is the output of the stress score calculator.
type StressScoreResult struct {
	TotalScore int             `json:"total_score"`
	Breakdown  StressBreakdown `json:"breakdown"`
	Factors    []string        `json:"factors"`
}

// Suggestion is a user-facing, non-binding adjustment proposal.
type Suggestion struct {
	ReminderID     string `json:"reminder_id"`
	PlantName      string `json:"plant_name"`
	SuggestionType string `json:"suggestion_type"`
	Message        string `json:"message"`
	ActionLabel    string `json:"action_label"`
	Days           int    `json:"days"`
	Reason         string `json:"reason"`
}

// WateringRecommendation is the composed verdict of the eligibility gate
// and the stress engine.
type WateringRecommendation struct {
	ShouldWater    bool     `json:"should_water"`
	Eligible       bool     `json:"eligible"`
	Reason         string   `json:"reason,omitempty"`
	Recommendation string   `json:"recommendation"`
	StressScore    int      `json:"stress_score"`
	StressFactors  []string `json:"stress_factors"`
}

// DateOnly truncates a timestamp to its UTC calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether two timestamps fall on the same UTC calendar day.
func SameDay(a, b time.Time) bool {
	return DateOnly(a).Equal(DateOnly(b))
}
