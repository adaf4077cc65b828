package weather

import (
	"context"
	"time"

	"verdant/internal/types"
)

const (
	// Season boundaries applied to the blended forecast temperature.
	summerTempF = 78.0
	winterTempF = 50.0

	extremesHorizonHours = 48
)

// SeasonalPattern derives the season and dormancy summary for a city from
// current conditions plus the forecast extremes. When either fetch fails
// the pattern falls back to calendar months, which never errors.
func (p *OpenWeatherProvider) SeasonalPattern(ctx context.Context, city string) (*types.SeasonalPattern, error) {
	if city == "" {
		return nil, types.NewAppError(types.ErrCodeValidationInvalidCity, "city is required for seasonal lookup", nil)
	}

	current, err := p.CurrentWeather(ctx, city)
	if err != nil {
		p.logger.WarnContext(ctx, "seasonal pattern falling back to calendar",
			"city", city, "error", err)
		return p.calendarPattern(), nil
	}
	extremes, err := p.TempExtremes(ctx, city, extremesHorizonHours)
	if err != nil {
		p.logger.WarnContext(ctx, "seasonal pattern falling back to calendar",
			"city", city, "error", err)
		return p.calendarPattern(), nil
	}

	avg := round1((current.TempF + extremes.TempMinF + extremes.TempMaxF) / 3)
	season := seasonFromTemp(avg, p.clock.Now().Month())

	return &types.SeasonalPattern{
		Season:           season,
		IsDormancyPeriod: season == types.SeasonWinter,
		FrostRisk:        extremes.FreezeRisk,
		AvgTemp7dF:       &avg,
		Method:           types.SeasonMethodWeather,
	}, nil
}

// calendarPattern derives the season from the month alone.
func (p *OpenWeatherProvider) calendarPattern() *types.SeasonalPattern {
	season := seasonFromMonth(p.clock.Now().Month())
	return &types.SeasonalPattern{
		Season:           season,
		IsDormancyPeriod: season == types.SeasonWinter,
		FrostRisk:        season == types.SeasonWinter,
		Method:           types.SeasonMethodCalendar,
	}
}

// seasonFromTemp maps a blended temperature to a season. Temperatures
// between the summer and winter bounds split into spring or fall by
// calendar half.
func seasonFromTemp(avgF float64, month time.Month) types.Season {
	switch {
	case avgF >= summerTempF:
		return types.SeasonSummer
	case avgF <= winterTempF:
		return types.SeasonWinter
	case month <= time.June:
		return types.SeasonSpring
	default:
		return types.SeasonFall
	}
}

// seasonFromMonth maps Northern Hemisphere calendar months to seasons.
func seasonFromMonth(month time.Month) types.Season {
	switch month {
	case time.December, time.January, time.February:
		return types.SeasonWinter
	case time.March, time.April, time.May:
		return types.SeasonSpring
	case time.June, time.July, time.August:
		return types.SeasonSummer
	default:
		return types.SeasonFall
	}
}
