package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	GeocoderNominatim = "nominatim"
	GeocoderGoogle    = "google"

	StoreMemory   = "memory"
	StoreMongo    = "mongo"
	StorePostgres = "postgres"
)

type AppConfig struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	HTTPTimeout     time.Duration
	ShutdownTimeout time.Duration

	// Upstream weather providers.
	ForecastBaseURL   string
	AirQualityBaseURL string

	// Geocoding backend and its identification header.
	Geocoder             string
	NominatimBaseURL     string
	GoogleGeocoderAPIKey string
	GeocoderUserAgent    string

	// DefaultCity is resolved when a request names no location.
	DefaultCity string

	StoreBackend string
	MongoURI     string
	MongoDB      string
	PostgresDSN  string

	// RefreshInterval controls how often favorites are refreshed (0 = disabled).
	RefreshInterval    time.Duration
	RefreshConcurrency int

	GeminiAPIKey    string
	GeminiModel     string
	GeminiBaseURL   string
	InsightsTimeout time.Duration
}

// Load reads configuration from the environment (and an optional .env file)
// with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file loaded", "error", err)
	}

	cfg := &AppConfig{
		HTTPAddr:             getenvDefault("HTTP_ADDR", ":8080"),
		LogLevel:             getenvDefault("LOG_LEVEL", "info"),
		LogFormat:            getenvDefault("LOG_FORMAT", "json"),
		ForecastBaseURL:      getenvDefault("FORECAST_BASE_URL", "https://api.open-meteo.com/v1/forecast"),
		AirQualityBaseURL:    getenvDefault("AIR_QUALITY_BASE_URL", "https://air-quality-api.open-meteo.com/v1/air-quality"),
		Geocoder:             strings.ToLower(getenvDefault("GEOCODER", GeocoderNominatim)),
		NominatimBaseURL:     getenvDefault("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
		GoogleGeocoderAPIKey: os.Getenv("GOOGLE_GEOCODER_API_KEY"),
		GeocoderUserAgent:    getenvDefault("GEOCODER_USER_AGENT", "AtmosphereWeatherApp/2.0"),
		DefaultCity:          getenvDefault("DEFAULT_CITY", "San Francisco"),
		StoreBackend:         strings.ToLower(getenvDefault("STORE_BACKEND", StoreMemory)),
		MongoURI:             os.Getenv("MONGO_URI"),
		MongoDB:              getenvDefault("MONGO_DB", "atmosphere"),
		PostgresDSN:          os.Getenv("POSTGRES_DSN"),
		GeminiAPIKey:         os.Getenv("GEMINI_API_KEY"),
		GeminiModel:          getenvDefault("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiBaseURL:        getenvDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		RefreshConcurrency:   getenvInt("REFRESH_CONCURRENCY", 4),
	}

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = getenvDuration("SHUTDOWN_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = getenvDuration("REFRESH_INTERVAL", "30m"); err != nil {
		return nil, err
	}
	if cfg.InsightsTimeout, err = getenvDuration("INSIGHTS_TIMEOUT", "10s"); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) validate() error {
	switch c.Geocoder {
	case GeocoderNominatim:
	case GeocoderGoogle:
		if c.GoogleGeocoderAPIKey == "" {
			return fmt.Errorf("GOOGLE_GEOCODER_API_KEY is required when GEOCODER=%s", GeocoderGoogle)
		}
	default:
		return fmt.Errorf("invalid GEOCODER: %q", c.Geocoder)
	}

	switch c.StoreBackend {
	case StoreMemory:
	case StoreMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required when STORE_BACKEND=%s", StoreMongo)
		}
	case StorePostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("POSTGRES_DSN is required when STORE_BACKEND=%s", StorePostgres)
		}
	default:
		return fmt.Errorf("invalid STORE_BACKEND: %q", c.StoreBackend)
	}

	if strings.TrimSpace(c.DefaultCity) == "" {
		return fmt.Errorf("DEFAULT_CITY must not be blank")
	}
	if c.RefreshInterval < 0 {
		return fmt.Errorf("invalid REFRESH_INTERVAL: must not be negative")
	}
	if c.RefreshConcurrency <= 0 {
		return fmt.Errorf("invalid REFRESH_CONCURRENCY: must be positive")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("invalid HTTP_TIMEOUT: must be positive")
	}
	return nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
