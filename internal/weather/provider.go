package weather

import "context"

// ForecastData is the forecast provider's response: a current-conditions
// block plus hourly and daily blocks made of parallel arrays indexed
// positionally.
type ForecastData struct {
	Timezone         string          `json:"timezone"`
	UTCOffsetSeconds int             `json:"utc_offset_seconds"`
	Current          ForecastCurrent `json:"current"`
	Hourly           ForecastHourly  `json:"hourly"`
	Daily            ForecastDaily   `json:"daily"`
}

type ForecastCurrent struct {
	Temperature         float64 `json:"temperature_2m"`
	RelativeHumidity    float64 `json:"relative_humidity_2m"`
	ApparentTemperature float64 `json:"apparent_temperature"`
	WeatherCode         int     `json:"weather_code"`
	WindSpeed           float64 `json:"wind_speed_10m"`
	SurfacePressure     float64 `json:"surface_pressure"`
}

type ForecastHourly struct {
	Time        []string  `json:"time"`
	Temperature []float64 `json:"temperature_2m"`
	WeatherCode []int     `json:"weather_code"`
}

type ForecastDaily struct {
	Time                        []string  `json:"time"`
	WeatherCode                 []int     `json:"weather_code"`
	TemperatureMax              []float64 `json:"temperature_2m_max"`
	TemperatureMin              []float64 `json:"temperature_2m_min"`
	UVIndexMax                  []float64 `json:"uv_index_max"`
	PrecipitationProbabilityMax []int     `json:"precipitation_probability_max"`
}

// AirQualityData is the air-quality provider's response.
type AirQualityData struct {
	Current AirQualityCurrent `json:"current"`
}

type AirQualityCurrent struct {
	USAQI *float64 `json:"us_aqi"`
	PollutantReadings
}

// Place is one ranked forward-geocoding candidate.
type Place struct {
	DisplayName string
	CountryCode string
	Coordinates Coordinates
}

// Address is the result of a reverse-geocoding lookup.
type Address struct {
	City        string
	Town        string
	CountryCode string
	DisplayName string
}

// ForecastProvider fetches forecast data for a coordinate pair.
type ForecastProvider interface {
	Name() string
	Forecast(ctx context.Context, at Coordinates) (ForecastData, error)
}

// AirQualityProvider fetches current air-quality data for a coordinate pair.
type AirQualityProvider interface {
	Name() string
	AirQuality(ctx context.Context, at Coordinates) (AirQualityData, error)
}

// Geocoder resolves place names and coordinates.
type Geocoder interface {
	// Search returns candidates ranked best-first. An empty slice means no match.
	Search(ctx context.Context, query string) ([]Place, error)

	// Reverse looks up address components for a coordinate pair.
	Reverse(ctx context.Context, at Coordinates) (Address, error)
}

// SnapshotCache receives every completed snapshot. It is write-only from the
// aggregator's point of view.
type SnapshotCache interface {
	Save(ctx context.Context, snapshot Snapshot) error
}
