package weather

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSnapshot_Headline(t *testing.T) {
	loc := LocationResolution{City: "Paris", Country: "FR"}

	s := BuildSnapshot(loc, parisForecast(), parisAir())

	assert.Equal(t, "Paris", s.City)
	assert.Equal(t, "FR", s.Country)
	assert.Equal(t, 19, s.Temp)
	assert.Equal(t, 17, s.FeelsLike)
	assert.Equal(t, 21, s.High)
	assert.Equal(t, 11, s.Low)
	assert.Equal(t, ConditionOvercast, s.Condition)
	assert.Equal(t, 64, s.Humidity)
	assert.InDelta(t, 12.3, s.WindSpeed, 1e-9)
	assert.Equal(t, 1013, s.Pressure)
	assert.InDelta(t, 5.1, s.UVIndex, 1e-9)
	assert.Equal(t, 20, s.RainProbability)

	assert.Equal(t, "06:00", s.Sunrise)
	assert.Equal(t, "20:00", s.Sunset)
	assert.Equal(t, 10, s.Visibility)

	assert.Equal(t, 42, s.AQI.Value)
	assert.Equal(t, "Good", s.AQI.Label)
	assert.InDelta(t, 8.1, s.AQI.Pollutants.PM2_5, 1e-9)
	assert.Zero(t, s.AQI.Pollutants.CO)
}

func TestBuildSnapshot_Hourly(t *testing.T) {
	s := BuildSnapshot(LocationResolution{}, parisForecast(), parisAir())

	require.Len(t, s.Hourly, 2)
	assert.Equal(t, HourlyPoint{Time: "14:00", Temp: 19, Condition: ConditionOvercast}, s.Hourly[0])
	assert.Equal(t, HourlyPoint{Time: "15:00", Temp: 19, Condition: ConditionRain}, s.Hourly[1])
}

func TestBuildSnapshot_HourlyCappedAt24(t *testing.T) {
	f := parisForecast()
	f.Hourly = ForecastHourly{}
	for i := 0; i < 48; i++ {
		f.Hourly.Time = append(f.Hourly.Time, fmt.Sprintf("2024-05-0%dT%02d:00", 1+i/24, i%24))
		f.Hourly.Temperature = append(f.Hourly.Temperature, float64(i))
		f.Hourly.WeatherCode = append(f.Hourly.WeatherCode, 0)
	}

	s := BuildSnapshot(LocationResolution{}, f, parisAir())

	require.Len(t, s.Hourly, 24)
	assert.Equal(t, "00:00", s.Hourly[0].Time)
	assert.Equal(t, "23:00", s.Hourly[23].Time)
}

func TestBuildSnapshot_Daily(t *testing.T) {
	s := BuildSnapshot(LocationResolution{}, parisForecast(), parisAir())

	require.Len(t, s.Daily, 2)
	assert.Equal(t, DailyPoint{Day: "Today", Min: 11, Max: 21, Condition: ConditionOvercast, RainProb: 20}, s.Daily[0])
	// 2024-05-02 was a Thursday.
	assert.Equal(t, DailyPoint{Day: "Thursday", Min: 13, Max: 24, Condition: ConditionClear, RainProb: 5}, s.Daily[1])
}

func TestBuildSnapshot_TodayRegardlessOfDate(t *testing.T) {
	f := parisForecast()
	// 2024-05-04 was a Saturday.
	f.Daily.Time = []string{"2024-05-04", "2024-05-05"}

	s := BuildSnapshot(LocationResolution{}, f, parisAir())

	assert.Equal(t, "Today", s.Daily[0].Day)
	assert.Equal(t, "Sunday", s.Daily[1].Day)
}

func TestBuildSnapshot_MissingPositionalEntries(t *testing.T) {
	f := ForecastData{
		Current: ForecastCurrent{WeatherCode: 999},
		Hourly:  ForecastHourly{Time: []string{"2024-05-01T09:00"}},
		Daily:   ForecastDaily{Time: []string{"2024-05-01"}},
	}

	s := BuildSnapshot(LocationResolution{City: "Nowhere"}, f, AirQualityData{})

	assert.Equal(t, ConditionClear, s.Condition)
	assert.Zero(t, s.High)
	assert.Zero(t, s.Low)
	assert.Zero(t, s.UVIndex)
	assert.Zero(t, s.RainProbability)
	require.Len(t, s.Hourly, 1)
	assert.Equal(t, HourlyPoint{Time: "09:00", Temp: 0, Condition: ConditionClear}, s.Hourly[0])
	require.Len(t, s.Daily, 1)
	assert.Equal(t, "Today", s.Daily[0].Day)
	assert.Equal(t, "Good", s.AQI.Label)
	assert.Equal(t, PollutantPanel{}, s.AQI.Pollutants)
}

func TestBuildSnapshot_EmptyForecastBlocks(t *testing.T) {
	s := BuildSnapshot(LocationResolution{}, ForecastData{}, AirQualityData{})

	assert.Empty(t, s.Hourly)
	assert.Empty(t, s.Daily)
	assert.NotNil(t, s.Hourly)
	assert.NotNil(t, s.Daily)
}
