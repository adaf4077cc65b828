package weather

import (
	"context"

	"verdant/internal/types"
)

// zoneBand maps a minimum latitude to a USDA hardiness zone. Bands are
// a coarse continental-US approximation: higher latitude, colder zone.
type zoneBand struct {
	minLat float64
	zone   string
}

// zoneBands is ordered north to south; the first band whose minimum
// latitude the location reaches wins.
var zoneBands = []zoneBand{
	{48, "4a"},
	{46, "4b"},
	{44, "5a"},
	{42, "5b"},
	{40, "6a"},
	{38, "7a"},
	{36, "7b"},
	{34, "8a"},
	{32, "8b"},
	{30, "9a"},
	{25, "9b"},
	{23, "10a"},
}

// InferHardinessZone estimates the USDA hardiness zone for a city from
// its geocoded latitude. Plant hardiness maps need climate normals we do
// not have, so a latitude band lookup stands in.
func (p *OpenWeatherProvider) InferHardinessZone(ctx context.Context, city string) (string, error) {
	if city == "" {
		return "", types.NewAppError(types.ErrCodeValidationInvalidCity, "city is required for zone inference", nil)
	}

	loc, err := p.geocode(ctx, city)
	if err != nil {
		return "", err
	}
	return zoneForLatitude(loc.Lat), nil
}

func zoneForLatitude(lat float64) string {
	if lat < 0 {
		lat = -lat
	}
	for _, band := range zoneBands {
		if lat >= band.minLat {
			return band.zone
		}
	}
	return "10b"
}
