package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/i474232898/atmosphere-weather/internal/config"
	"github.com/i474232898/atmosphere-weather/internal/insights"
	"github.com/i474232898/atmosphere-weather/internal/observability"
	"github.com/i474232898/atmosphere-weather/internal/store"
	"github.com/i474232898/atmosphere-weather/internal/weather"
	"github.com/i474232898/atmosphere-weather/internal/weather/providers"
)

// components are the long-lived objects shared by the commands.
type components struct {
	service   *weather.Service
	favorites *store.Favorites
	insights  *insights.GeminiClient
	close     func(ctx context.Context)
}

func buildComponents(ctx context.Context, cfg *config.AppConfig, metrics *observability.Metrics, logger *slog.Logger) (*components, error) {
	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	repo, closeRepo, err := openRepository(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var geo weather.Geocoder
	switch cfg.Geocoder {
	case config.GeocoderGoogle:
		geo = providers.NewGoogleGeocoder(cfg.GoogleGeocoderAPIKey)
	default:
		geo = providers.NewNominatimGeocoder(httpClient, cfg.NominatimBaseURL, cfg.GeocoderUserAgent)
	}

	service := weather.NewService(weather.Dependencies{
		Forecast:    providers.NewOpenMeteoProvider(httpClient, cfg.ForecastBaseURL, cfg.GeocoderUserAgent),
		AirQuality:  providers.NewOpenMeteoAirQualityProvider(httpClient, cfg.AirQualityBaseURL, cfg.GeocoderUserAgent),
		Resolver:    weather.NewResolver(geo, logger),
		Cache:       store.NewSnapshotCache(repo),
		Metrics:     metrics,
		Logger:      logger,
		DefaultCity: cfg.DefaultCity,
	})

	gemini := insights.NewGeminiClient(insights.GeminiConfig{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		BaseURL: cfg.GeminiBaseURL,
		Timeout: cfg.InsightsTimeout,
	}, metrics, logger)

	logger.Info("components ready",
		"geocoder", cfg.Geocoder,
		"store", cfg.StoreBackend,
		"insights_enabled", cfg.GeminiAPIKey != "",
	)

	return &components{
		service:   service,
		favorites: store.NewFavorites(repo),
		insights:  gemini,
		close:     closeRepo,
	}, nil
}

func openRepository(ctx context.Context, cfg *config.AppConfig) (store.Repository, func(context.Context), error) {
	switch cfg.StoreBackend {
	case config.StoreMongo:
		repo, err := store.NewMongoRepository(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return nil, nil, fmt.Errorf("open mongo store: %w", err)
		}
		return repo, repo.Close, nil
	case config.StorePostgres:
		repo, err := store.NewPostgresRepository(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open postgres store: %w", err)
		}
		return repo, func(context.Context) { _ = repo.Close() }, nil
	default:
		return store.NewMemoryStore(), func(context.Context) {}, nil
	}
}
