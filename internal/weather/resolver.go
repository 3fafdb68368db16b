package weather

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// DefaultLocationName is used when reverse geocoding fails and the caller
// supplied no name of its own.
const DefaultLocationName = "My Location"

// Resolver turns free-text place names into coordinates and coordinates into
// display names.
type Resolver struct {
	geocoder Geocoder
	logger   *slog.Logger
}

// NewResolver creates a Resolver backed by the given geocoder.
func NewResolver(geocoder Geocoder, logger *slog.Logger) *Resolver {
	return &Resolver{
		geocoder: geocoder,
		logger:   logger,
	}
}

// Forward resolves a place name to coordinates using the best-ranked
// candidate. It returns ErrNotFound when the geocoder has no candidates.
func (r *Resolver) Forward(ctx context.Context, query string) (LocationResolution, error) {
	places, err := r.geocoder.Search(ctx, query)
	if err != nil {
		return LocationResolution{}, fmt.Errorf("forward geocode %q: %w", query, err)
	}
	if len(places) == 0 {
		return LocationResolution{}, fmt.Errorf("%w: %q", ErrNotFound, query)
	}

	best := places[0]
	return LocationResolution{
		City:        firstSegment(best.DisplayName),
		Country:     normalizeCountryCode(best.CountryCode),
		Coordinates: best.Coordinates,
	}, nil
}

// Reverse resolves coordinates to a display name and country code. It never
// fails: on any geocoder error it falls back to fallbackName (or
// DefaultLocationName) with an empty country. A non-empty fallbackName also
// takes precedence over the geocoded city on success.
func (r *Resolver) Reverse(ctx context.Context, at Coordinates, fallbackName string) LocationResolution {
	res := LocationResolution{
		City:        fallbackName,
		Coordinates: at,
	}
	if res.City == "" {
		res.City = DefaultLocationName
	}

	addr, err := r.geocoder.Reverse(ctx, at)
	if err != nil {
		r.logger.Warn("reverse geocoding failed",
			"lat", at.Lat,
			"lon", at.Lon,
			"fallback", res.City,
			"error", err,
		)
		return res
	}

	if fallbackName == "" {
		if name := addressCity(addr); name != "" {
			res.City = name
		}
	}
	res.Country = normalizeCountryCode(addr.CountryCode)
	return res
}

// addressCity prefers the city, then the town, then the leading segment of
// the display name.
func addressCity(addr Address) string {
	switch {
	case addr.City != "":
		return addr.City
	case addr.Town != "":
		return addr.Town
	default:
		return firstSegment(addr.DisplayName)
	}
}

func firstSegment(displayName string) string {
	name, _, _ := strings.Cut(displayName, ",")
	return strings.TrimSpace(name)
}

// normalizeCountryCode uppercases a country code and rejects anything that
// is not exactly two ASCII letters.
func normalizeCountryCode(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 2 {
		return ""
	}
	for _, c := range code {
		if c < 'A' || c > 'Z' {
			return ""
		}
	}
	return code
}
