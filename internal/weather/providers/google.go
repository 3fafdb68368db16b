package providers

import (
	"context"
	"fmt"

	"github.com/i474232898/atmosphere-weather/internal/common"
	"github.com/i474232898/atmosphere-weather/internal/weather"
	"github.com/kelvins/geocoder"
)

// GoogleGeocoder implements weather.Geocoder with the Google Maps Geocoding
// API through kelvins/geocoder. The library keeps its API key in a package
// variable, so only one key can be active per process. Google identifies
// callers by that key; the library sets no User-Agent.
type GoogleGeocoder struct {
	geocode func(geocoder.Address) (geocoder.Location, error)
	reverse func(geocoder.Location) ([]geocoder.Address, error)
}

func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	geocoder.ApiKey = apiKey
	return &GoogleGeocoder{
		geocode: geocoder.Geocoding,
		reverse: geocoder.GeocodingReverse,
	}
}

// Search returns at most one candidate; the Google API returns only the best
// match through this library.
func (g *GoogleGeocoder) Search(ctx context.Context, query string) ([]weather.Place, error) {
	loc, err := runWithContext(ctx, func() (geocoder.Location, error) {
		return g.geocode(geocoder.Address{City: query})
	})
	if err != nil {
		if common.HasAnyFold(err.Error(), "zero_results", "no results found") {
			return nil, nil
		}
		return nil, fmt.Errorf("google search: %w", err)
	}

	return []weather.Place{{
		DisplayName: query,
		Coordinates: weather.Coordinates{Lat: loc.Latitude, Lon: loc.Longitude},
	}}, nil
}

// Reverse looks up the address at a coordinate pair. Google reports the
// country by name, which the resolver does not accept as a code, so the
// country is only kept when it is already a two-letter code.
func (g *GoogleGeocoder) Reverse(ctx context.Context, at weather.Coordinates) (weather.Address, error) {
	addrs, err := runWithContext(ctx, func() ([]geocoder.Address, error) {
		return g.reverse(geocoder.Location{Latitude: at.Lat, Longitude: at.Lon})
	})
	if err != nil {
		return weather.Address{}, fmt.Errorf("google reverse: %w", err)
	}
	if len(addrs) == 0 {
		return weather.Address{}, fmt.Errorf("google reverse: no address for %s", at)
	}

	best := addrs[0]
	return weather.Address{
		City:        best.City,
		CountryCode: best.Country,
		DisplayName: best.FormattedAddress,
	}, nil
}

// runWithContext runs a blocking call that has no context support and stops
// waiting for it once ctx is done.
func runWithContext[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	type result struct {
		value T
		err   error
	}

	if err := ctx.Err(); err != nil {
		var zero T
		return zero, err
	}

	done := make(chan result, 1)
	go func() {
		v, err := fn()
		done <- result{v, err}
	}()

	select {
	case r := <-done:
		return r.value, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
