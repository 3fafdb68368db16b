package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/i474232898/atmosphere-weather/internal/weather"
	"github.com/sony/gobreaker"
)

const (
	DefaultForecastURL   = "https://api.open-meteo.com/v1/forecast"
	DefaultAirQualityURL = "https://air-quality-api.open-meteo.com/v1/air-quality"

	forecastCurrentFields = "temperature_2m,relative_humidity_2m,apparent_temperature,is_day,precipitation,weather_code,wind_speed_10m,surface_pressure"
	forecastHourlyFields  = "temperature_2m,weather_code"
	forecastDailyFields   = "weather_code,temperature_2m_max,temperature_2m_min,uv_index_max,precipitation_probability_max"
	airQualityFields      = "us_aqi,pm2_5,pm10,nitrogen_dioxide,sulphur_dioxide,ozone,carbon_monoxide"
)

// OpenMeteoProvider implements weather.ForecastProvider for the Open-Meteo forecast API.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoProvider(client *http.Client, baseURL, userAgent string) *OpenMeteoProvider {
	if baseURL == "" {
		baseURL = DefaultForecastURL
	}
	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: baseURL,
		httpCfg: HTTPClientConfig{Client: client, UserAgent: userAgent},
		circuit: newCircuitBreaker("openmeteo"),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

// Forecast requests current conditions plus hourly and daily series in the
// location's own timezone.
func (p *OpenMeteoProvider) Forecast(ctx context.Context, at weather.Coordinates) (weather.ForecastData, error) {
	values := url.Values{}
	values.Set("latitude", formatCoord(at.Lat))
	values.Set("longitude", formatCoord(at.Lon))
	values.Set("current", forecastCurrentFields)
	values.Set("hourly", forecastHourlyFields)
	values.Set("daily", forecastDailyFields)
	values.Set("timezone", "auto")

	var data weather.ForecastData
	if err := getJSON(ctx, p.httpCfg, p.circuit, fmt.Sprintf("%s?%s", p.baseURL, values.Encode()), &data); err != nil {
		return weather.ForecastData{}, fmt.Errorf("%s forecast: %w", p.name, err)
	}
	return data, nil
}

// OpenMeteoAirQualityProvider implements weather.AirQualityProvider for the
// Open-Meteo air-quality API.
type OpenMeteoAirQualityProvider struct {
	name    string
	baseURL string
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoAirQualityProvider(client *http.Client, baseURL, userAgent string) *OpenMeteoAirQualityProvider {
	if baseURL == "" {
		baseURL = DefaultAirQualityURL
	}
	return &OpenMeteoAirQualityProvider{
		name:    "openmeteo-air",
		baseURL: baseURL,
		httpCfg: HTTPClientConfig{Client: client, UserAgent: userAgent},
		circuit: newCircuitBreaker("openmeteo-air"),
	}
}

func (p *OpenMeteoAirQualityProvider) Name() string {
	return p.name
}

func (p *OpenMeteoAirQualityProvider) AirQuality(ctx context.Context, at weather.Coordinates) (weather.AirQualityData, error) {
	values := url.Values{}
	values.Set("latitude", formatCoord(at.Lat))
	values.Set("longitude", formatCoord(at.Lon))
	values.Set("current", airQualityFields)

	var data weather.AirQualityData
	if err := getJSON(ctx, p.httpCfg, p.circuit, fmt.Sprintf("%s?%s", p.baseURL, values.Encode()), &data); err != nil {
		return weather.AirQualityData{}, fmt.Errorf("%s air quality: %w", p.name, err)
	}
	return data, nil
}
