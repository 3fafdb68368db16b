package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 { return &v }

func TestClassifyAirQuality_Boundaries(t *testing.T) {
	tests := []struct {
		score    float64
		expected string
	}{
		{0, "Good"},
		{50, "Good"},
		{51, "Moderate"},
		{100, "Moderate"},
		{101, "Sensitive Risk"},
		{150, "Sensitive Risk"},
		{151, "Unhealthy"},
		{200, "Unhealthy"},
		{201, "Very Unhealthy"},
		{300, "Very Unhealthy"},
		{301, "Hazardous"},
		{500, "Hazardous"},
	}

	for _, tt := range tests {
		aq := ClassifyAirQuality(ptr(tt.score), PollutantReadings{})
		assert.Equal(t, tt.expected, aq.Label, "score %v", tt.score)
		assert.Equal(t, int(tt.score), aq.Value)
		assert.NotEmpty(t, aq.Color)
		assert.NotEmpty(t, aq.Description)
	}
}

func TestClassifyAirQuality_MissingScoreIsGood(t *testing.T) {
	aq := ClassifyAirQuality(nil, PollutantReadings{})

	assert.Equal(t, 0, aq.Value)
	assert.Equal(t, "Good", aq.Label)
	assert.Equal(t, "#10b981", aq.Color)
}

func TestClassifyAirQuality_RoundsBeforeBanding(t *testing.T) {
	assert.Equal(t, "Good", ClassifyAirQuality(ptr(50.4), PollutantReadings{}).Label)
	assert.Equal(t, "Moderate", ClassifyAirQuality(ptr(50.5), PollutantReadings{}).Label)
}

func TestClassifyAirQuality_PollutantPanel(t *testing.T) {
	t.Run("all readings present", func(t *testing.T) {
		aq := ClassifyAirQuality(ptr(42), PollutantReadings{
			PM2_5:           ptr(8.1),
			PM10:            ptr(14.2),
			NitrogenDioxide: ptr(21.5),
			SulphurDioxide:  ptr(3.3),
			Ozone:           ptr(55),
			CarbonMonoxide:  ptr(180.4),
		})

		assert.Equal(t, PollutantPanel{PM2_5: 8.1, PM10: 14.2, NO2: 21.5, SO2: 3.3, O3: 55, CO: 180.4}, aq.Pollutants)
	})

	t.Run("omitted readings default to zero", func(t *testing.T) {
		aq := ClassifyAirQuality(ptr(42), PollutantReadings{PM10: ptr(9)})

		assert.Equal(t, PollutantPanel{PM10: 9}, aq.Pollutants)
	})

	t.Run("no readings at all", func(t *testing.T) {
		aq := ClassifyAirQuality(nil, PollutantReadings{})

		assert.Equal(t, PollutantPanel{}, aq.Pollutants)
	})
}
