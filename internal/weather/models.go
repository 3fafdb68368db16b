package weather

import (
	"fmt"
	"strings"
)

// Condition is the human-readable weather state derived from a provider code.
type Condition string

const (
	ConditionClear        Condition = "Clear"
	ConditionPartlyCloudy Condition = "Partly Cloudy"
	ConditionCloudy       Condition = "Cloudy"
	ConditionOvercast     Condition = "Overcast"
	ConditionMist         Condition = "Mist"
	ConditionDrizzle      Condition = "Drizzle"
	ConditionRain         Condition = "Rain"
	ConditionHeavyRain    Condition = "Heavy Rain"
	ConditionSnow         Condition = "Snow"
	ConditionHeavySnow    Condition = "Heavy Snow"
	ConditionShowers      Condition = "Showers"
	ConditionHeavyShowers Condition = "Heavy Showers"
	ConditionStorm        Condition = "Storm"
)

// Coordinates is a WGS-84 latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%.4f,%.4f", c.Lat, c.Lon)
}

// LocationResolution is the transient result of forward or reverse geocoding.
type LocationResolution struct {
	City        string      `json:"city"`
	Country     string      `json:"country"`
	Coordinates Coordinates `json:"coordinates"`
}

// Snapshot is the consolidated weather view for one location.
// It is built once per completed request and never mutated afterwards.
type Snapshot struct {
	City            string        `json:"city"`
	Country         string        `json:"country"`
	Temp            int           `json:"temp"`
	FeelsLike       int           `json:"feelsLike"`
	High            int           `json:"high"`
	Low             int           `json:"low"`
	Condition       Condition     `json:"condition"`
	Humidity        int           `json:"humidity"`
	WindSpeed       float64       `json:"windSpeed"`
	Pressure        int           `json:"pressure"`
	UVIndex         float64       `json:"uvIndex"`
	RainProbability int           `json:"rainProbability"`
	Visibility      int           `json:"visibility"`
	Sunrise         string        `json:"sunrise"`
	Sunset          string        `json:"sunset"`
	AQI             AirQuality    `json:"aqi"`
	Hourly          []HourlyPoint `json:"hourly"`
	Daily           []DailyPoint  `json:"daily"`
}

// CacheKey returns the key a snapshot is cached under: the lowercased city name.
func (s Snapshot) CacheKey() string {
	return strings.ToLower(s.City)
}

// HourlyPoint is one entry of the next-24-hours sequence.
type HourlyPoint struct {
	Time      string    `json:"time"` // "HH:MM", 24-hour, location-local
	Temp      int       `json:"temp"`
	Condition Condition `json:"condition"`
}

// DailyPoint is one entry of the multi-day sequence. Day is "Today" for index 0.
type DailyPoint struct {
	Day       string    `json:"day"`
	Min       int       `json:"min"`
	Max       int       `json:"max"`
	Condition Condition `json:"condition"`
	RainProb  int       `json:"rainProb"`
}

// AirQuality is a classified AQI score with its normalized pollutant panel.
type AirQuality struct {
	Value       int            `json:"value"`
	Label       string         `json:"label"`
	Color       string         `json:"color"`
	Description string         `json:"description"`
	Pollutants  PollutantPanel `json:"pollutants"`
}

// PollutantPanel holds the six canonical pollutant concentrations (µg/m³).
type PollutantPanel struct {
	PM2_5 float64 `json:"pm2_5"`
	PM10  float64 `json:"pm10"`
	NO2   float64 `json:"no2"`
	SO2   float64 `json:"so2"`
	O3    float64 `json:"o3"`
	CO    float64 `json:"co"`
}
