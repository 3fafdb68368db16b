package weather

import "math"

// PollutantReadings is the raw pollutant block reported by the air-quality
// provider. Every field is optional; nil means the provider omitted it.
type PollutantReadings struct {
	PM2_5           *float64 `json:"pm2_5"`
	PM10            *float64 `json:"pm10"`
	NitrogenDioxide *float64 `json:"nitrogen_dioxide"`
	SulphurDioxide  *float64 `json:"sulphur_dioxide"`
	Ozone           *float64 `json:"ozone"`
	CarbonMonoxide  *float64 `json:"carbon_monoxide"`
}

// Panel normalizes the readings into the canonical pollutant panel.
// Omitted readings become 0.
func (r PollutantReadings) Panel() PollutantPanel {
	return PollutantPanel{
		PM2_5: valueOrZero(r.PM2_5),
		PM10:  valueOrZero(r.PM10),
		NO2:   valueOrZero(r.NitrogenDioxide),
		SO2:   valueOrZero(r.SulphurDioxide),
		O3:    valueOrZero(r.Ozone),
		CO:    valueOrZero(r.CarbonMonoxide),
	}
}

type aqiBand struct {
	above       int
	label       string
	color       string
	description string
}

// aqiBands is ordered from the most severe band down; the first band whose
// lower bound the score strictly exceeds wins.
var aqiBands = []aqiBand{
	{300, "Hazardous", "#7f1d1d", "Health warning of emergency conditions: everyone is more likely to be affected."},
	{200, "Very Unhealthy", "#6b21a8", "Health alert: The risk of health effects is increased for everyone."},
	{150, "Unhealthy", "#ef4444", "Everyone may experience health effects; sensitive groups more so."},
	{100, "Sensitive Risk", "#f97316", "Members of sensitive groups may experience health effects."},
	{50, "Moderate", "#eab308", "Air quality is acceptable. However, there may be a risk for some people."},
}

var goodAir = aqiBand{
	label:       "Good",
	color:       "#10b981",
	description: "Air quality is satisfactory, and air pollution poses little or no risk.",
}

// ClassifyAirQuality turns a US AQI score and raw pollutant readings into an
// AirQuality record. A nil score is treated as 0. The score is rounded before
// banding so the label always agrees with the reported value.
func ClassifyAirQuality(score *float64, readings PollutantReadings) AirQuality {
	value := int(math.Round(valueOrZero(score)))

	band := goodAir
	for _, b := range aqiBands {
		if value > b.above {
			band = b
			break
		}
	}

	return AirQuality{
		Value:       value,
		Label:       band.label,
		Color:       band.color,
		Description: band.description,
		Pollutants:  readings.Panel(),
	}
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
