package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

const favoritesKey = "favorites"

// Favorite is a saved location.
type Favorite struct {
	City    string    `json:"city"`
	Country string    `json:"country"`
	AddedAt time.Time `json:"addedAt"`
}

// Favorites keeps the list of favorite locations in a Repository under a
// single key. Cities are matched case-insensitively.
type Favorites struct {
	repo Repository
	mu   sync.Mutex
}

func NewFavorites(repo Repository) *Favorites {
	return &Favorites{repo: repo}
}

// List returns the favorites in the order they were added.
func (f *Favorites) List(ctx context.Context) ([]Favorite, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.load(ctx)
}

// Toggle adds city if it is not a favorite and removes it otherwise. It
// reports whether the city is a favorite afterwards.
func (f *Favorites) Toggle(ctx context.Context, city, country string) (bool, []Favorite, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return false, nil, errors.New("favorite city is required")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	list, err := f.load(ctx)
	if err != nil {
		return false, nil, err
	}

	added := true
	next := make([]Favorite, 0, len(list)+1)
	for _, fav := range list {
		if strings.EqualFold(fav.City, city) {
			added = false
			continue
		}
		next = append(next, fav)
	}
	if added {
		next = append(next, Favorite{
			City:    city,
			Country: strings.ToUpper(strings.TrimSpace(country)),
			AddedAt: clock.Now().UTC(),
		})
	}

	raw, err := json.Marshal(next)
	if err != nil {
		return false, nil, fmt.Errorf("encode favorites: %w", err)
	}
	if err := f.repo.Set(ctx, favoritesKey, raw); err != nil {
		return false, nil, err
	}
	return added, next, nil
}

func (f *Favorites) load(ctx context.Context) ([]Favorite, error) {
	raw, err := f.repo.Get(ctx, favoritesKey)
	if errors.Is(err, ErrNotFound) {
		return []Favorite{}, nil
	}
	if err != nil {
		return nil, err
	}

	var list []Favorite
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("decode favorites: %w", err)
	}
	if list == nil {
		list = []Favorite{}
	}
	return list, nil
}
