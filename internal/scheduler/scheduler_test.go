package scheduler

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/i474232898/atmosphere-weather/internal/observability"
	"github.com/i474232898/atmosphere-weather/internal/store"
	"github.com/i474232898/atmosphere-weather/internal/weather"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingFetcher struct {
	mu      sync.Mutex
	cities  []string
	failFor string
}

func (f *recordingFetcher) FetchByName(_ context.Context, name string) (weather.Snapshot, error) {
	f.mu.Lock()
	f.cities = append(f.cities, name)
	f.mu.Unlock()
	if name == f.failFor {
		return weather.Snapshot{}, weather.ErrDataSync
	}
	return weather.Snapshot{City: name}, nil
}

func (f *recordingFetcher) fetched() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := append([]string(nil), f.cities...)
	sort.Strings(out)
	return out
}

type staticFavorites struct {
	favs []store.Favorite
	err  error
}

func (s staticFavorites) List(context.Context) ([]store.Favorite, error) {
	return s.favs, s.err
}

func newTestScheduler(f Fetcher, favs FavoritesLister, interval time.Duration) *Scheduler {
	return New(f, favs, interval, 2, observability.NewMetricsForTesting(), observability.NewDiscardLogger())
}

func TestRefreshFavorites(t *testing.T) {
	fetcher := &recordingFetcher{failFor: "Tokyo"}
	favs := staticFavorites{favs: []store.Favorite{{City: "Paris"}, {City: "Tokyo"}, {City: "Lima"}}}
	s := newTestScheduler(fetcher, favs, time.Hour)

	s.RefreshFavorites(context.Background())

	assert.Equal(t, []string{"Lima", "Paris", "Tokyo"}, fetcher.fetched())
	assert.Equal(t, 1.0, testutil.ToFloat64(s.metrics.FavoritesRefresh))
}

func TestRefreshFavorites_NoFavorites(t *testing.T) {
	fetcher := &recordingFetcher{}
	s := newTestScheduler(fetcher, staticFavorites{}, time.Hour)

	s.RefreshFavorites(context.Background())

	assert.Empty(t, fetcher.fetched())
	assert.Zero(t, testutil.ToFloat64(s.metrics.FavoritesRefresh))
}

func TestRefreshFavorites_ListError(t *testing.T) {
	fetcher := &recordingFetcher{}
	s := newTestScheduler(fetcher, staticFavorites{err: errors.New("db down")}, time.Hour)

	s.RefreshFavorites(context.Background())

	assert.Empty(t, fetcher.fetched())
}

func TestStart_DisabledInterval(t *testing.T) {
	s := newTestScheduler(&recordingFetcher{}, staticFavorites{}, 0)

	require.NoError(t, s.Start())
	assert.False(t, s.scheduler.IsRunning())
	s.Stop()
}

func TestStart_RunsImmediately(t *testing.T) {
	fetcher := &recordingFetcher{}
	favs := staticFavorites{favs: []store.Favorite{{City: "Oslo"}}}
	s := newTestScheduler(fetcher, favs, time.Hour)

	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return len(fetcher.fetched()) == 1
	}, 2*time.Second, 10*time.Millisecond)
}
