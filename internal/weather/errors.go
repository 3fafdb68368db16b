package weather

import "errors"

var (
	// ErrDataSync is returned when either primary provider request fails.
	// No partial snapshot accompanies it.
	ErrDataSync = errors.New("weather data sync failed")

	// ErrNotFound is returned when forward geocoding yields no candidates.
	ErrNotFound = errors.New("location not found")
)
