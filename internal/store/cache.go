package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/i474232898/atmosphere-weather/internal/weather"
)

const cacheKeyPrefix = "weather_"

// CacheEntry is the stored form of a cached snapshot. Timestamp is the write
// time in Unix milliseconds.
type CacheEntry struct {
	Data      weather.Snapshot `json:"data"`
	Timestamp int64            `json:"timestamp"`
}

// SnapshotCache writes snapshots into a Repository under a key derived from
// the snapshot's city.
type SnapshotCache struct {
	repo Repository
}

func NewSnapshotCache(repo Repository) *SnapshotCache {
	return &SnapshotCache{repo: repo}
}

// CacheKey returns the repository key for a city.
func CacheKey(city string) string {
	return cacheKeyPrefix + weather.Snapshot{City: city}.CacheKey()
}

// Save implements weather.SnapshotCache.
func (c *SnapshotCache) Save(ctx context.Context, snapshot weather.Snapshot) error {
	entry := CacheEntry{
		Data:      snapshot,
		Timestamp: clock.Now().UnixMilli(),
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}
	return c.repo.Set(ctx, CacheKey(snapshot.City), raw)
}

// Load returns the cached entry for city.
func (c *SnapshotCache) Load(ctx context.Context, city string) (CacheEntry, error) {
	raw, err := c.repo.Get(ctx, CacheKey(city))
	if err != nil {
		return CacheEntry{}, err
	}
	var entry CacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		return CacheEntry{}, fmt.Errorf("decode cache entry: %w", err)
	}
	return entry, nil
}
