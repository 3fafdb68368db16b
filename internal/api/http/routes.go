package httpapi

import (
	"context"
	"errors"
	"html"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/microcosm-cc/bluemonday"

	"github.com/i474232898/atmosphere-weather/internal/insights"
	"github.com/i474232898/atmosphere-weather/internal/store"
	"github.com/i474232898/atmosphere-weather/internal/weather"
)

var (
	validate  = newValidator()
	sanitizer = bluemonday.StrictPolicy()
)

func newValidator() *validator.Validate {
	v := validator.New()
	err := v.RegisterValidation("lang", func(fl validator.FieldLevel) bool {
		_, ok := insights.Languages[fl.Field().String()]
		return ok
	})
	if err != nil {
		panic("register lang validation: " + err.Error())
	}
	return v
}

// SnapshotService resolves and retains weather snapshots.
type SnapshotService interface {
	Resolve(ctx context.Context, req weather.Request) (weather.Snapshot, error)
	Current() (weather.Snapshot, bool)
}

// FavoritesStore lists and toggles favorite locations.
type FavoritesStore interface {
	List(ctx context.Context) ([]store.Favorite, error)
	Toggle(ctx context.Context, city, country string) (bool, []store.Favorite, error)
}

// Handlers holds the collaborators used by the API routes.
type Handlers struct {
	Weather   SnapshotService
	Favorites FavoritesStore
	Insights  insights.Generator
	Logger    *slog.Logger
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, h *Handlers) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather", h.getWeather)
	v1.Get("/weather/current", h.getCurrent)
	v1.Get("/weather/current/insights", h.getInsights)
	v1.Get("/favorites", h.listFavorites)
	v1.Post("/favorites/toggle", h.toggleFavorite)
}

func (h *Handlers) getWeather(c *fiber.Ctx) error {
	q, err := parseWeatherQuery(c)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	snapshot, err := h.Weather.Resolve(c.UserContext(), q.toRequest())
	if err != nil {
		return h.domainError(c, err)
	}
	return c.JSON(snapshot)
}

func (h *Handlers) getCurrent(c *fiber.Ctx) error {
	snapshot, ok := h.Weather.Current()
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "no weather data resolved yet")
	}
	return c.JSON(snapshot)
}

func (h *Handlers) getInsights(c *fiber.Ctx) error {
	q := insightsQuery{Lang: c.Query("lang", "en")}
	if err := validate.Struct(q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "unsupported language")
	}

	snapshot, ok := h.Weather.Current()
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "no weather data resolved yet")
	}
	return c.JSON(h.Insights.Generate(c.UserContext(), snapshot, q.Lang))
}

func (h *Handlers) listFavorites(c *fiber.Ctx) error {
	favs, err := h.Favorites.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"favorites": favs})
}

func (h *Handlers) toggleFavorite(c *fiber.Ctx) error {
	var body favoriteBody
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	body.City = cleanText(body.City)
	body.Country = strings.ToUpper(strings.TrimSpace(body.Country))
	if err := validate.Struct(body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	added, favs, err := h.Favorites.Toggle(c.UserContext(), body.City, body.Country)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"city":      body.City,
		"favorite":  added,
		"favorites": favs,
	})
}

// domainError maps core errors to a generic client-facing message.
func (h *Handlers) domainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, weather.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "location not found")
	case errors.Is(err, weather.ErrDataSync):
		return fiber.NewError(fiber.StatusBadGateway, "weather data is temporarily unavailable")
	default:
		h.Logger.Error("weather request failed", "request_id", c.Locals("requestid"), "error", err)
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather data")
	}
}

// weatherQuery holds query parameters for the weather endpoint. Either a
// city or a lat/lon pair may be given; neither selects the default city.
// Name only labels a lat/lon pair.
type weatherQuery struct {
	City string   `validate:"omitempty,max=120"`
	Name string   `validate:"omitempty,max=120"`
	Lat  *float64 `validate:"omitempty,gte=-90,lte=90"`
	Lon  *float64 `validate:"omitempty,gte=-180,lte=180"`
}

func (q weatherQuery) toRequest() weather.Request {
	if q.Lat != nil && q.Lon != nil {
		return weather.Request{
			Coordinates: &weather.Coordinates{Lat: *q.Lat, Lon: *q.Lon},
			Name:        q.Name,
		}
	}
	return weather.Request{Name: q.City}
}

func parseWeatherQuery(c *fiber.Ctx) (weatherQuery, error) {
	q := weatherQuery{
		City: cleanText(c.Query("city")),
		Name: cleanText(c.Query("name")),
	}

	var err error
	if q.Lat, err = parseFloatQuery(c, "lat"); err != nil {
		return q, err
	}
	if q.Lon, err = parseFloatQuery(c, "lon"); err != nil {
		return q, err
	}
	if (q.Lat == nil) != (q.Lon == nil) {
		return q, errors.New("lat and lon must be given together")
	}
	if q.City != "" && q.Lat != nil {
		return q, errors.New("use either city or lat/lon, not both")
	}
	if q.Name != "" && q.Lat == nil {
		return q, errors.New("name requires lat and lon")
	}

	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

func parseFloatQuery(c *fiber.Ctx, key string) (*float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, errors.New("invalid " + key + ": must be a number")
	}
	return &v, nil
}

// cleanText strips markup from free-text input.
func cleanText(s string) string {
	return strings.TrimSpace(html.UnescapeString(sanitizer.Sanitize(s)))
}

type insightsQuery struct {
	Lang string `validate:"required,lang"`
}

type favoriteBody struct {
	City    string `json:"city" validate:"required,max=120"`
	Country string `json:"country" validate:"omitempty,len=2,alpha"`
}
