package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/i474232898/atmosphere-weather/internal/observability"
	"github.com/i474232898/atmosphere-weather/internal/store"
	"github.com/i474232898/atmosphere-weather/internal/weather"
)

const refreshTimeout = 30 * time.Second

// Fetcher builds a snapshot for a location. The built snapshot is written to
// the cache by the fetcher itself.
type Fetcher interface {
	FetchByName(ctx context.Context, name string) (weather.Snapshot, error)
}

// FavoritesLister returns the saved favorite locations.
type FavoritesLister interface {
	List(ctx context.Context) ([]store.Favorite, error)
}

// Scheduler periodically refreshes the snapshot of every favorite location.
type Scheduler struct {
	scheduler   *gocron.Scheduler
	fetcher     Fetcher
	favorites   FavoritesLister
	interval    time.Duration
	concurrency int
	metrics     *observability.Metrics
	logger      *slog.Logger
}

// New creates a new Scheduler.
func New(fetcher Fetcher, favorites FavoritesLister, interval time.Duration, concurrency int, metrics *observability.Metrics, logger *slog.Logger) *Scheduler {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Scheduler{
		scheduler:   gocron.NewScheduler(time.UTC),
		fetcher:     fetcher,
		favorites:   favorites,
		interval:    interval,
		concurrency: concurrency,
		metrics:     metrics,
		logger:      logger,
	}
}

// Start schedules the periodic job and starts the underlying scheduler. A
// non-positive interval disables refreshing.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		s.logger.Info("scheduler: favorites refresh disabled")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 1
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		s.RefreshFavorites(context.Background())
	})
	if err != nil {
		return fmt.Errorf("schedule favorites refresh: %w", err)
	}

	s.scheduler.StartAsync()
	s.logger.Info("scheduler: started", "interval_minutes", minutes)
	return nil
}

// RefreshFavorites fetches a fresh snapshot for every favorite. Failures are
// logged per location and do not stop the run.
func (s *Scheduler) RefreshFavorites(ctx context.Context) {
	favs, err := s.favorites.List(ctx)
	if err != nil {
		s.logger.Error("scheduler: list favorites failed", "error", err)
		return
	}
	if len(favs) == 0 {
		s.logger.Debug("scheduler: no favorites to refresh")
		return
	}

	s.logger.Info("scheduler: refreshing favorites", "count", len(favs))

	var (
		wg  sync.WaitGroup
		sem = make(chan struct{}, s.concurrency)
	)
	for _, fav := range favs {
		wg.Add(1)
		sem <- struct{}{}
		go func(city string) {
			defer wg.Done()
			defer func() { <-sem }()

			ctx, cancel := context.WithTimeout(ctx, refreshTimeout)
			defer cancel()

			if _, err := s.fetcher.FetchByName(ctx, city); err != nil {
				s.logger.Warn("scheduler: refresh failed", "city", city, "error", err)
			}
		}(fav.City)
	}
	wg.Wait()

	s.metrics.FavoritesRefresh.Inc()
	s.logger.Info("scheduler: completed favorites refresh", "count", len(favs))
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
