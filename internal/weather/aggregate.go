package weather

import (
	"math"
	"time"
)

const (
	maxHourlyPoints = 24

	hourlyTimeLayout = "2006-01-02T15:04"
	dailyDateLayout  = "2006-01-02"

	todayLabel = "Today"

	// Not provided by the forecast source.
	placeholderSunrise    = "06:00"
	placeholderSunset     = "20:00"
	placeholderVisibility = 10
)

// BuildSnapshot combines a forecast and an air-quality response for a resolved
// location into a single Snapshot. Missing positional entries default to zero.
func BuildSnapshot(loc LocationResolution, forecast ForecastData, air AirQualityData) Snapshot {
	daily := forecast.Daily

	return Snapshot{
		City:            loc.City,
		Country:         loc.Country,
		Temp:            roundInt(forecast.Current.Temperature),
		FeelsLike:       roundInt(forecast.Current.ApparentTemperature),
		High:            roundInt(at(daily.TemperatureMax, 0)),
		Low:             roundInt(at(daily.TemperatureMin, 0)),
		Condition:       TranslateCondition(forecast.Current.WeatherCode),
		Humidity:        roundInt(forecast.Current.RelativeHumidity),
		WindSpeed:       forecast.Current.WindSpeed,
		Pressure:        roundInt(forecast.Current.SurfacePressure),
		UVIndex:         at(daily.UVIndexMax, 0),
		RainProbability: at(daily.PrecipitationProbabilityMax, 0),
		Visibility:      placeholderVisibility,
		Sunrise:         placeholderSunrise,
		Sunset:          placeholderSunset,
		AQI:             ClassifyAirQuality(air.Current.USAQI, air.Current.PollutantReadings),
		Hourly:          buildHourly(forecast.Hourly),
		Daily:           buildDaily(daily),
	}
}

func buildHourly(h ForecastHourly) []HourlyPoint {
	n := min(len(h.Time), maxHourlyPoints)
	points := make([]HourlyPoint, 0, n)
	for i := 0; i < n; i++ {
		points = append(points, HourlyPoint{
			Time:      clockTime(h.Time[i]),
			Temp:      roundInt(at(h.Temperature, i)),
			Condition: TranslateCondition(at(h.WeatherCode, i)),
		})
	}
	return points
}

func buildDaily(d ForecastDaily) []DailyPoint {
	points := make([]DailyPoint, 0, len(d.Time))
	for i, date := range d.Time {
		label := todayLabel
		if i > 0 {
			label = weekday(date)
		}
		points = append(points, DailyPoint{
			Day:       label,
			Min:       roundInt(at(d.TemperatureMin, i)),
			Max:       roundInt(at(d.TemperatureMax, i)),
			Condition: TranslateCondition(at(d.WeatherCode, i)),
			RainProb:  at(d.PrecipitationProbabilityMax, i),
		})
	}
	return points
}

// clockTime formats a location-local ISO timestamp as "HH:MM". The provider
// already returns local wall-clock time, so no zone conversion is applied.
func clockTime(ts string) string {
	t, err := time.Parse(hourlyTimeLayout, ts)
	if err != nil {
		return ts
	}
	return t.Format("15:04")
}

func weekday(date string) string {
	t, err := time.Parse(dailyDateLayout, date)
	if err != nil {
		return date
	}
	return t.Weekday().String()
}

func at[T any](values []T, i int) T {
	var zero T
	if i < 0 || i >= len(values) {
		return zero
	}
	return values[i]
}

func roundInt(v float64) int {
	return int(math.Round(v))
}
