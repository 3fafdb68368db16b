package weather

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/i474232898/atmosphere-weather/internal/observability"
)

const cacheWriteTimeout = 5 * time.Second

// Request identifies the location a snapshot is wanted for. When Coordinates
// is set, Name is an optional display name; otherwise Name is a free-text
// place query. An empty request resolves the service's default city.
type Request struct {
	Coordinates *Coordinates
	Name        string
}

// Dependencies bundles the collaborators of a Service.
type Dependencies struct {
	Forecast    ForecastProvider
	AirQuality  AirQualityProvider
	Resolver    *Resolver
	Cache       SnapshotCache
	Metrics     *observability.Metrics
	Logger      *slog.Logger
	DefaultCity string
}

// Service orchestrates the forecast, air-quality and geocoding providers and
// retains the snapshot of the most recently issued request.
type Service struct {
	forecast    ForecastProvider
	airQuality  AirQualityProvider
	resolver    *Resolver
	cache       SnapshotCache
	metrics     *observability.Metrics
	logger      *slog.Logger
	defaultCity string

	generations Generations

	mu      sync.RWMutex
	current *Snapshot

	writes sync.WaitGroup
}

// NewService creates a new Service.
func NewService(deps Dependencies) *Service {
	return &Service{
		forecast:    deps.Forecast,
		airQuality:  deps.AirQuality,
		resolver:    deps.Resolver,
		cache:       deps.Cache,
		metrics:     deps.Metrics,
		logger:      deps.Logger,
		defaultCity: deps.DefaultCity,
	}
}

// Resolve fetches a snapshot for req and retains it as the current snapshot
// unless a newer request was issued while it was in flight. The snapshot is
// returned to the caller either way.
func (s *Service) Resolve(ctx context.Context, req Request) (Snapshot, error) {
	token := s.generations.Next()

	snapshot, err := s.Fetch(ctx, req)
	if err != nil {
		return Snapshot{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.generations.IsLatest(token) {
		s.metrics.StaleDiscarded.Inc()
		s.logger.Info("discarding superseded snapshot",
			"city", snapshot.City,
			"generation", token,
		)
		return snapshot, nil
	}
	s.current = &snapshot
	return snapshot, nil
}

// Current returns the retained snapshot, if any.
func (s *Service) Current() (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return Snapshot{}, false
	}
	return *s.current, true
}

// Fetch builds a snapshot for req without touching the retained snapshot.
func (s *Service) Fetch(ctx context.Context, req Request) (Snapshot, error) {
	switch {
	case req.Coordinates != nil:
		return s.FetchByCoords(ctx, *req.Coordinates, req.Name)
	case req.Name != "":
		return s.FetchByName(ctx, req.Name)
	default:
		return s.FetchByName(ctx, s.defaultCity)
	}
}

// FetchByName forward-geocodes name and fetches the snapshot for the best
// match, using the match's display name as the city.
func (s *Service) FetchByName(ctx context.Context, name string) (Snapshot, error) {
	loc, err := s.resolver.Forward(ctx, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.metrics.Snapshots.WithLabelValues("not_found").Inc()
		} else {
			s.metrics.Snapshots.WithLabelValues("error").Inc()
		}
		return Snapshot{}, err
	}
	return s.FetchByCoords(ctx, loc.Coordinates, loc.City)
}

// FetchByCoords queries the forecast and air-quality providers concurrently
// and reverse-geocodes the coordinates alongside them. Either provider failing
// fails the whole fetch with ErrDataSync. Reverse geocoding never fails the
// fetch; name, when set, takes precedence over the geocoded city.
func (s *Service) FetchByCoords(ctx context.Context, at Coordinates, name string) (Snapshot, error) {
	located := make(chan LocationResolution, 1)
	go func() {
		located <- s.resolver.Reverse(ctx, at, name)
	}()

	var (
		wg          sync.WaitGroup
		forecast    ForecastData
		air         AirQualityData
		forecastErr error
		airErr      error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		start := time.Now()
		forecast, forecastErr = s.forecast.Forecast(ctx, at)
		s.observeProvider(s.forecast.Name(), start, forecastErr)
	}()
	go func() {
		defer wg.Done()
		start := time.Now()
		air, airErr = s.airQuality.AirQuality(ctx, at)
		s.observeProvider(s.airQuality.Name(), start, airErr)
	}()
	wg.Wait()

	if err := errors.Join(forecastErr, airErr); err != nil {
		s.metrics.Snapshots.WithLabelValues("data_sync").Inc()
		s.logger.Error("weather data sync failed",
			"coordinates", at.String(),
			"error", err,
		)
		return Snapshot{}, fmt.Errorf("%w: %w", ErrDataSync, err)
	}

	snapshot := BuildSnapshot(<-located, forecast, air)
	s.metrics.Snapshots.WithLabelValues("success").Inc()
	s.logger.Debug("snapshot built",
		"city", snapshot.City,
		"country", snapshot.Country,
		"condition", snapshot.Condition,
		"aqi", snapshot.AQI.Value,
	)

	s.saveAsync(ctx, snapshot)
	return snapshot, nil
}

func (s *Service) observeProvider(provider string, start time.Time, err error) {
	s.metrics.ProviderDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())

	outcome := "success"
	if err != nil {
		outcome = "error"
		s.logger.Warn("provider request failed", "provider", provider, "error", err)
	}
	s.metrics.ProviderRequests.WithLabelValues(provider, outcome).Inc()
}

// saveAsync writes the snapshot to the cache without blocking the caller.
// The write outlives the request context.
func (s *Service) saveAsync(ctx context.Context, snapshot Snapshot) {
	if s.cache == nil {
		return
	}

	s.writes.Add(1)
	go func() {
		defer s.writes.Done()
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cacheWriteTimeout)
		defer cancel()

		if err := s.cache.Save(ctx, snapshot); err != nil {
			s.metrics.CacheWrites.WithLabelValues("error").Inc()
			s.logger.Warn("snapshot cache write failed", "city", snapshot.City, "error", err)
			return
		}
		s.metrics.CacheWrites.WithLabelValues("success").Inc()
	}()
}

// WaitForWrites blocks until every cache write started so far has finished.
// Short-lived callers use it before closing the cache's backing store.
func (s *Service) WaitForWrites() {
	s.writes.Wait()
}
