package watering

import "fmt"

// minIntervalHours is the minimum time between waterings before a
// recommendation is offered.
const minIntervalHours = 48.0

// CheckEligibility enforces minimum-interval and rain-exclusion rules
// before any stress-based recommendation is offered. Rules are checked in
// order and the first match wins. hoursSinceWatered is nil when the plant
// has never been watered, which is always eligible.
func CheckEligibility(hoursSinceWatered *float64, recentRain, rainExpected, inSkipWindow bool) (bool, string) {
	if hoursSinceWatered == nil {
		return true, ""
	}
	if *hoursSinceWatered < minIntervalHours {
		remaining := minIntervalHours - *hoursSinceWatered
		return false, fmt.Sprintf("Last watered %.1fh ago; wait %.1fh more (48h minimum)",
			*hoursSinceWatered, remaining)
	}
	if recentRain {
		return false, "Recent rain"
	}
	if rainExpected {
		return false, "Rain expected"
	}
	if inSkipWindow {
		return false, "In post-rain skip window"
	}
	return true, ""
}
