package weather

import "strings"

// NormalizeCity converts user-entered locations into the query format
// OpenWeather expects. Accepts "City", "City, ST", "City, CC" and
// "City, ST, CC". A two-letter second component is treated as a US state
// when no country is given.
func NormalizeCity(raw string) string {
	if raw == "" {
		return ""
	}

	var parts []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}

	switch len(parts) {
	case 0:
		return ""
	case 1:
		return parts[0]
	case 2:
		second := parts[1]
		if len(second) == 2 && isAlpha(second) {
			return parts[0] + "," + strings.ToUpper(second) + ",US"
		}
		return parts[0] + "," + strings.ToUpper(second)
	default:
		return parts[0] + "," + strings.ToUpper(parts[1]) + "," + strings.ToUpper(parts[2])
	}
}

func isAlpha(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
