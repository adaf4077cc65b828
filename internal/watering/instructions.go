package watering

import "verdant/internal/types"

// Instruction tuning thresholds for wildflower beds.
const (
	mulchWindMPH   = 15.0
	humidDewpointF = 65.0
)

// Instructions returns technique guidance for watering a plant of the
// given type, adjusted for current weather when available.
func Instructions(plantType types.PlantType, w *types.WeatherSnapshot) string {
	switch plantType {
	case types.PlantHouseplant:
		return "Water thoroughly until it runs from the drainage holes, then empty the saucer."
	case types.PlantOutdoorShrub:
		return "Give a slow, deep soak at the base so moisture reaches the entire root zone."
	case types.PlantOutdoorWildflower:
		s := "Use a gentle spray in the early AM or late PM to avoid scorching seedlings."
		if w != nil && w.WindMPH >= mulchWindMPH {
			s += " Windy today: a thin mulch layer will keep the bed from drying out."
		}
		if w != nil && w.DewpointF != nil && *w.DewpointF >= humidDewpointF {
			s += " Humid air slows drying; water only if soil pinched at the surface feels dry."
		}
		return s
	default:
		return "Check soil moisture first and water to the plant's usual depth."
	}
}
