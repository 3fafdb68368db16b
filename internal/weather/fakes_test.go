package weather

import (
	"context"
	"sync"

	"github.com/i474232898/atmosphere-weather/internal/observability"
)

// --- fake geocoder ---

type fakeGeocoder struct {
	places     []Place
	searchErr  error
	address    Address
	reverseErr error
}

func (f *fakeGeocoder) Search(_ context.Context, _ string) ([]Place, error) {
	return f.places, f.searchErr
}

func (f *fakeGeocoder) Reverse(_ context.Context, _ Coordinates) (Address, error) {
	return f.address, f.reverseErr
}

// --- fake providers ---

type fakeForecast struct {
	data ForecastData
	err  error
}

func (f *fakeForecast) Name() string { return "fake-forecast" }

func (f *fakeForecast) Forecast(_ context.Context, _ Coordinates) (ForecastData, error) {
	return f.data, f.err
}

type fakeAirQuality struct {
	data AirQualityData
	err  error
}

func (f *fakeAirQuality) Name() string { return "fake-air" }

func (f *fakeAirQuality) AirQuality(_ context.Context, _ Coordinates) (AirQualityData, error) {
	return f.data, f.err
}

// --- fake cache ---

type fakeCache struct {
	mu    sync.Mutex
	saved []Snapshot
	done  chan struct{}
	err   error
}

func newFakeCache() *fakeCache {
	return &fakeCache{done: make(chan struct{}, 16)}
}

func (f *fakeCache) Save(_ context.Context, s Snapshot) error {
	f.mu.Lock()
	f.saved = append(f.saved, s)
	f.mu.Unlock()
	f.done <- struct{}{}
	return f.err
}

func (f *fakeCache) snapshots() []Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Snapshot(nil), f.saved...)
}

// --- fixtures ---

func parisForecast() ForecastData {
	return ForecastData{
		Timezone: "Europe/Paris",
		Current: ForecastCurrent{
			Temperature:         18.6,
			RelativeHumidity:    64,
			ApparentTemperature: 17.4,
			WeatherCode:         3,
			WindSpeed:           12.3,
			SurfacePressure:     1012.6,
		},
		Hourly: ForecastHourly{
			Time:        []string{"2024-05-01T14:00", "2024-05-01T15:00"},
			Temperature: []float64{18.6, 19.2},
			WeatherCode: []int{3, 61},
		},
		Daily: ForecastDaily{
			Time:                        []string{"2024-05-01", "2024-05-02"},
			WeatherCode:                 []int{3, 0},
			TemperatureMax:              []float64{21.4, 23.5},
			TemperatureMin:              []float64{11.2, 12.8},
			UVIndexMax:                  []float64{5.1, 6.2},
			PrecipitationProbabilityMax: []int{20, 5},
		},
	}
}

func parisAir() AirQualityData {
	return AirQualityData{
		Current: AirQualityCurrent{
			USAQI: ptr(42),
			PollutantReadings: PollutantReadings{
				PM2_5: ptr(8.1),
				PM10:  ptr(14.2),
			},
		},
	}
}

func parisGeocoder() *fakeGeocoder {
	return &fakeGeocoder{
		places: []Place{{
			DisplayName: "Paris, Ile-de-France, France",
			CountryCode: "fr",
			Coordinates: Coordinates{Lat: 48.8566, Lon: 2.3522},
		}},
		address: Address{City: "Paris", CountryCode: "fr"},
	}
}

func newTestService(geo Geocoder, f ForecastProvider, a AirQualityProvider, cache SnapshotCache) *Service {
	logger := observability.NewDiscardLogger()
	return NewService(Dependencies{
		Forecast:    f,
		AirQuality:  a,
		Resolver:    NewResolver(geo, logger),
		Cache:       cache,
		Metrics:     observability.NewMetricsForTesting(),
		Logger:      logger,
		DefaultCity: "San Francisco",
	})
}
