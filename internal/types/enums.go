package types

// PlantLocation describes where a plant lives. Weather adjustments only
// apply to outdoor locations.
type PlantLocation string

const (
	LocationIndoorPotted  PlantLocation = "indoor_potted"
	LocationOutdoorPotted PlantLocation = "outdoor_potted"
	LocationOutdoorBed    PlantLocation = "outdoor_bed"
	LocationGreenhouse    PlantLocation = "greenhouse"
	LocationOffice        PlantLocation = "office"
)

// IsOutdoor reports whether the location is exposed to outdoor weather.
func (l PlantLocation) IsOutdoor() bool {
	return l == LocationOutdoorPotted || l == LocationOutdoorBed
}

// RepairPlantLocation coerces an arbitrary string to a valid PlantLocation,
// defaulting to indoor_potted. External data (forms, AI output) is never
// trusted to carry a valid enum value.
func RepairPlantLocation(s string) PlantLocation {
	switch PlantLocation(s) {
	case LocationIndoorPotted, LocationOutdoorPotted, LocationOutdoorBed,
		LocationGreenhouse, LocationOffice:
		return PlantLocation(s)
	default:
		return LocationIndoorPotted
	}
}

// LightExposure categorizes how much light a plant receives.
type LightExposure string

const (
	LightFullSun        LightExposure = "full_sun"
	LightPartialSun     LightExposure = "partial_sun"
	LightBrightIndirect LightExposure = "bright_indirect"
	LightLowLight       LightExposure = "low_light"
	LightShade          LightExposure = "shade"
)

// ReminderType identifies the kind of care a reminder schedules.
type ReminderType string

const (
	ReminderWatering    ReminderType = "watering"
	ReminderFertilizing ReminderType = "fertilizing"
	ReminderMisting     ReminderType = "misting"
	ReminderPruning     ReminderType = "pruning"
	ReminderRepotting   ReminderType = "repotting"
	ReminderInspection  ReminderType = "inspection"
	ReminderCustom      ReminderType = "custom"
)

// RepairReminderType coerces arbitrary input to a valid reminder type,
// defaulting to custom.
func RepairReminderType(s string) ReminderType {
	switch ReminderType(s) {
	case ReminderWatering, ReminderFertilizing, ReminderMisting,
		ReminderPruning, ReminderRepotting, ReminderInspection, ReminderCustom:
		return ReminderType(s)
	default:
		return ReminderCustom
	}
}

// WeatherSensitive reports whether this reminder type is subject to
// weather-based schedule adjustments.
func (t ReminderType) WeatherSensitive() bool {
	return t == ReminderWatering || t == ReminderMisting
}

// DisplayName returns the human-readable label for the reminder type.
func (t ReminderType) DisplayName() string {
	switch t {
	case ReminderWatering:
		return "Watering"
	case ReminderFertilizing:
		return "Fertilizing"
	case ReminderMisting:
		return "Misting"
	case ReminderPruning:
		return "Pruning"
	case ReminderRepotting:
		return "Repotting"
	case ReminderInspection:
		return "Inspection"
	default:
		return "Custom Care"
	}
}

// Frequency defines how often a recurring reminder fires.
type Frequency string

const (
	FreqDaily      Frequency = "daily"
	FreqEvery2Days Frequency = "every_2_days"
	FreqEvery3Days Frequency = "every_3_days"
	FreqWeekly     Frequency = "weekly"
	FreqBiweekly   Frequency = "biweekly"
	FreqMonthly    Frequency = "monthly"
	FreqOneTime    Frequency = "one_time"
	FreqCustom     Frequency = "custom"
)

// IntervalDays returns the number of days between occurrences. One-time
// reminders return 0 (due today). Custom frequencies return the provided
// interval. The second return value is false for unknown frequencies or a
// custom frequency without a positive interval.
func (f Frequency) IntervalDays(customDays int) (int, bool) {
	switch f {
	case FreqDaily:
		return 1, true
	case FreqEvery2Days:
		return 2, true
	case FreqEvery3Days:
		return 3, true
	case FreqWeekly:
		return 7, true
	case FreqBiweekly:
		return 14, true
	case FreqMonthly:
		return 30, true
	case FreqOneTime:
		return 0, true
	case FreqCustom:
		if customDays <= 0 {
			return 0, false
		}
		return customDays, true
	default:
		return 0, false
	}
}

// AdjustmentAction is the schedule change an evaluation decides on.
type AdjustmentAction string

const (
	ActionNone     AdjustmentAction = "none"
	ActionPostpone AdjustmentAction = "postpone"
	ActionAdvance  AdjustmentAction = "advance"
)

// AdjustmentMode distinguishes changes applied without confirmation from
// proposals surfaced to the user.
type AdjustmentMode string

const (
	ModeAutomatic  AdjustmentMode = "automatic"
	ModeSuggestion AdjustmentMode = "suggestion"
)

// AdjustmentPriority ranks competing adjustment candidates. Lower values
// take precedence.
type AdjustmentPriority int

const (
	PrioritySafety        AdjustmentPriority = 1
	PriorityPrecipitation AdjustmentPriority = 2
	PrioritySeasonal      AdjustmentPriority = 3
)

// PlantType is the coarse category used by the stress scoring engine.
type PlantType string

const (
	PlantHouseplant        PlantType = "houseplant"
	PlantOutdoorShrub      PlantType = "outdoor_shrub"
	PlantOutdoorWildflower PlantType = "outdoor_wildflower"
	PlantOther             PlantType = "other"
)

// IsOutdoorType reports whether the plant type lives outdoors for scoring
// purposes. Wind and dry-spell stress only apply to outdoor types.
func (t PlantType) IsOutdoorType() bool {
	return t == PlantOutdoorShrub || t == PlantOutdoorWildflower || t == PlantOther
}

// RepairPlantType coerces an arbitrary string to a valid PlantType.
func RepairPlantType(s string) PlantType {
	switch PlantType(s) {
	case PlantHouseplant, PlantOutdoorShrub, PlantOutdoorWildflower, PlantOther:
		return PlantType(s)
	default:
		return PlantHouseplant
	}
}

// Season is a coarse seasonal label derived from weather or the calendar.
type Season string

const (
	SeasonWinter Season = "winter"
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonFall   Season = "fall"
)

// SeasonMethod records how a seasonal pattern was derived.
type SeasonMethod string

const (
	SeasonMethodWeather  SeasonMethod = "weather"
	SeasonMethodCalendar SeasonMethod = "calendar"
)

// PlantOrigin classifies a plant relative to the local region.
type PlantOrigin string

const (
	OriginNative           PlantOrigin = "native"
	OriginNonNativeAdapted PlantOrigin = "non_native_adapted"
)

// Lifecycle classifies a plant's growth cycle.
type Lifecycle string

const (
	LifecycleAnnual    Lifecycle = "annual"
	LifecyclePerennial Lifecycle = "perennial"
	LifecycleUnknown   Lifecycle = "unknown"
)

// ColdTolerance classifies frost hardiness.
type ColdTolerance string

const (
	ColdHardy     ColdTolerance = "hardy"
	ColdSemiHardy ColdTolerance = "semi_hardy"
	ColdTender    ColdTolerance = "tender"
)

// WaterNeeds classifies baseline water demand.
type WaterNeeds string

const (
	WaterLow      WaterNeeds = "low"
	WaterModerate WaterNeeds = "moderate"
	WaterHigh     WaterNeeds = "high"
)

// CharacteristicSource records where an inference result came from.
type CharacteristicSource string

const (
	SourceAI      CharacteristicSource = "ai"
	SourceCache   CharacteristicSource = "cache"
	SourceDefault CharacteristicSource = "default"
)

// RepairOrigin coerces an arbitrary string to a valid PlantOrigin.
// Invalid AI output is corrected to the conservative default.
func RepairOrigin(s string) PlantOrigin {
	switch PlantOrigin(s) {
	case OriginNative, OriginNonNativeAdapted:
		return PlantOrigin(s)
	default:
		return OriginNonNativeAdapted
	}
}

// RepairLifecycle coerces an arbitrary string to a valid Lifecycle.
func RepairLifecycle(s string) Lifecycle {
	switch Lifecycle(s) {
	case LifecycleAnnual, LifecyclePerennial, LifecycleUnknown:
		return Lifecycle(s)
	default:
		return LifecycleUnknown
	}
}

// RepairColdTolerance coerces an arbitrary string to a valid ColdTolerance.
func RepairColdTolerance(s string) ColdTolerance {
	switch ColdTolerance(s) {
	case ColdHardy, ColdSemiHardy, ColdTender:
		return ColdTolerance(s)
	default:
		return ColdSemiHardy
	}
}

// RepairWaterNeeds coerces an arbitrary string to a valid WaterNeeds.
func RepairWaterNeeds(s string) WaterNeeds {
	switch WaterNeeds(s) {
	case WaterLow, WaterModerate, WaterHigh:
		return WaterNeeds(s)
	default:
		return WaterModerate
	}
}
