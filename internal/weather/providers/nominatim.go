package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/i474232898/atmosphere-weather/internal/weather"
	"github.com/sony/gobreaker"
)

const DefaultNominatimURL = "https://nominatim.openstreetmap.org"

var errNominatim = errors.New("nominatim error")

// NominatimGeocoder implements weather.Geocoder against an OpenStreetMap
// Nominatim server. Nominatim's usage policy requires the identifying
// User-Agent carried by every request.
type NominatimGeocoder struct {
	name    string
	baseURL string
	limit   int
	httpCfg HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewNominatimGeocoder(client *http.Client, baseURL, userAgent string) *NominatimGeocoder {
	if baseURL == "" {
		baseURL = DefaultNominatimURL
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &NominatimGeocoder{
		name:    "nominatim",
		baseURL: baseURL,
		limit:   1,
		httpCfg: HTTPClientConfig{Client: client, UserAgent: userAgent},
		circuit: newCircuitBreaker("nominatim"),
	}
}

// Search returns the ranked candidates for a free-text query.
func (g *NominatimGeocoder) Search(ctx context.Context, query string) ([]weather.Place, error) {
	values := url.Values{}
	values.Set("q", query)
	values.Set("format", "json")
	values.Set("addressdetails", "1")
	values.Set("limit", strconv.Itoa(g.limit))

	var results []nominatimPlace
	if err := getJSON(ctx, g.httpCfg, g.circuit, fmt.Sprintf("%s/search?%s", g.baseURL, values.Encode()), &results); err != nil {
		return nil, fmt.Errorf("%s search: %w", g.name, err)
	}

	places := make([]weather.Place, 0, len(results))
	for _, r := range results {
		lat, latErr := strconv.ParseFloat(r.Lat, 64)
		lon, lonErr := strconv.ParseFloat(r.Lon, 64)
		if latErr != nil || lonErr != nil {
			continue
		}
		places = append(places, weather.Place{
			DisplayName: r.DisplayName,
			CountryCode: r.Address.CountryCode,
			Coordinates: weather.Coordinates{Lat: lat, Lon: lon},
		})
	}
	return places, nil
}

// Reverse looks up the address at a coordinate pair at city zoom level.
func (g *NominatimGeocoder) Reverse(ctx context.Context, at weather.Coordinates) (weather.Address, error) {
	values := url.Values{}
	values.Set("lat", formatCoord(at.Lat))
	values.Set("lon", formatCoord(at.Lon))
	values.Set("format", "json")
	values.Set("zoom", "12")
	values.Set("addressdetails", "1")

	var result nominatimPlace
	if err := getJSON(ctx, g.httpCfg, g.circuit, fmt.Sprintf("%s/reverse?%s", g.baseURL, values.Encode()), &result); err != nil {
		return weather.Address{}, fmt.Errorf("%s reverse: %w", g.name, err)
	}
	// Nominatim reports lookup failures with a 200 and an error field.
	if result.Error != "" {
		return weather.Address{}, fmt.Errorf("%w: %s", errNominatim, result.Error)
	}

	town := result.Address.Town
	if town == "" {
		town = result.Address.Village
	}
	return weather.Address{
		City:        result.Address.City,
		Town:        town,
		CountryCode: result.Address.CountryCode,
		DisplayName: result.DisplayName,
	}, nil
}

// Nominatim API response types.

type nominatimPlace struct {
	Lat         string           `json:"lat"`
	Lon         string           `json:"lon"`
	DisplayName string           `json:"display_name"`
	Address     nominatimAddress `json:"address"`
	Error       string           `json:"error"`
}

type nominatimAddress struct {
	City        string `json:"city"`
	Town        string `json:"town"`
	Village     string `json:"village"`
	CountryCode string `json:"country_code"`
}
