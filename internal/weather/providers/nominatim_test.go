package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/i474232898/atmosphere-weather/internal/weather"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNominatimGeocoder_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Paris", r.URL.Query().Get("q"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))

		_, _ = w.Write([]byte(`[{
			"lat": "48.8588897",
			"lon": "2.3200410",
			"display_name": "Paris, Ile-de-France, Metropolitan France, France",
			"address": {"city": "Paris", "country_code": "fr"}
		}]`))
	}))
	defer srv.Close()

	g := NewNominatimGeocoder(testHTTPClient(), srv.URL, "")
	places, err := g.Search(context.Background(), "Paris")

	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "Paris, Ile-de-France, Metropolitan France, France", places[0].DisplayName)
	assert.Equal(t, "fr", places[0].CountryCode)
	assert.InDelta(t, 48.8588897, places[0].Coordinates.Lat, 1e-9)
	assert.InDelta(t, 2.3200410, places[0].Coordinates.Lon, 1e-9)
}

func TestNominatimGeocoder_Search_Empty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	g := NewNominatimGeocoder(testHTTPClient(), srv.URL, "")
	places, err := g.Search(context.Background(), "Atlantis")

	require.NoError(t, err)
	assert.Empty(t, places)
}

func TestNominatimGeocoder_Search_SkipsUnparseableCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"lat": "north", "lon": "2.3", "display_name": "Broken"}]`))
	}))
	defer srv.Close()

	g := NewNominatimGeocoder(testHTTPClient(), srv.URL, "")
	places, err := g.Search(context.Background(), "Broken")

	require.NoError(t, err)
	assert.Empty(t, places)
}

func TestNominatimGeocoder_Reverse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "12", r.URL.Query().Get("zoom"))
		assert.Equal(t, "custom-agent/1.0", r.Header.Get("User-Agent"))

		_, _ = w.Write([]byte(`{
			"display_name": "Giverny, Eure, Normandie, France",
			"address": {"village": "Giverny", "country_code": "fr"}
		}`))
	}))
	defer srv.Close()

	g := NewNominatimGeocoder(testHTTPClient(), srv.URL, "custom-agent/1.0")
	addr, err := g.Reverse(context.Background(), weather.Coordinates{Lat: 49.07, Lon: 1.53})

	require.NoError(t, err)
	assert.Empty(t, addr.City)
	assert.Equal(t, "Giverny", addr.Town)
	assert.Equal(t, "fr", addr.CountryCode)
	assert.Equal(t, "Giverny, Eure, Normandie, France", addr.DisplayName)
}

func TestNominatimGeocoder_Reverse_ErrorField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"error": "Unable to geocode"}`))
	}))
	defer srv.Close()

	g := NewNominatimGeocoder(testHTTPClient(), srv.URL, "")
	_, err := g.Reverse(context.Background(), weather.Coordinates{Lat: 0, Lon: -160})

	require.Error(t, err)
	assert.ErrorIs(t, err, errNominatim)
}
