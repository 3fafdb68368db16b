package insights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/i474232898/atmosphere-weather/internal/common"
	"github.com/i474232898/atmosphere-weather/internal/observability"
	"github.com/i474232898/atmosphere-weather/internal/weather"
	"github.com/microcosm-cc/bluemonday"
)

const (
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com"
	DefaultGeminiModel   = "gemini-2.0-flash"

	highRainProbability = 60
	strongWindKmh       = 40
)

var (
	errNoAPIKey   = errors.New("gemini api key not configured")
	errEmptyReply = errors.New("no response from model")
	errIncomplete = errors.New("model reply is missing fields")
	errNonSuccess = errors.New("gemini request failed")
)

// GeminiConfig configures a GeminiClient.
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// GeminiClient generates insights with the Gemini generateContent REST API.
type GeminiClient struct {
	client    *resty.Client
	apiKey    string
	model     string
	sanitizer *bluemonday.Policy
	metrics   *observability.Metrics
	logger    *slog.Logger
}

func NewGeminiClient(cfg GeminiConfig, metrics *observability.Metrics, logger *slog.Logger) *GeminiClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultGeminiBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultGeminiModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout)

	return &GeminiClient{
		client:    client,
		apiKey:    cfg.APIKey,
		model:     cfg.Model,
		sanitizer: bluemonday.StrictPolicy(),
		metrics:   metrics,
		logger:    logger,
	}
}

// Generate implements Generator.
func (g *GeminiClient) Generate(ctx context.Context, snapshot weather.Snapshot, lang string) Insights {
	out, err := g.generate(ctx, snapshot, lang)
	if err != nil {
		g.metrics.InsightRequests.WithLabelValues("fallback").Inc()
		g.logger.Warn("ai insight generation failed", "city", snapshot.City, "lang", lang, "error", err)
		return Default()
	}
	g.metrics.InsightRequests.WithLabelValues("success").Inc()
	return out
}

func (g *GeminiClient) generate(ctx context.Context, snapshot weather.Snapshot, lang string) (Insights, error) {
	if g.apiKey == "" {
		return Insights{}, errNoAPIKey
	}

	var reply generateResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetHeader("x-goog-api-key", g.apiKey).
		SetPathParam("model", g.model).
		SetBody(newGenerateRequest(BuildPrompt(snapshot, lang))).
		SetResult(&reply).
		Post("/v1beta/models/{model}:generateContent")
	if err != nil {
		return Insights{}, fmt.Errorf("gemini request: %w", err)
	}
	if !resp.IsSuccess() {
		return Insights{}, fmt.Errorf("%w: status %d", errNonSuccess, resp.StatusCode())
	}

	text := reply.text()
	if text == "" {
		return Insights{}, errEmptyReply
	}

	var out Insights
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return Insights{}, fmt.Errorf("decode model reply: %w", err)
	}

	out.HumanInsight = g.clean(out.HumanInsight)
	out.HealthSuggestion = g.clean(out.HealthSuggestion)
	out.TravelWarning = g.clean(out.TravelWarning)
	if out.HumanInsight == "" || out.HealthSuggestion == "" || out.TravelWarning == "" {
		return Insights{}, errIncomplete
	}
	return out, nil
}

// clean strips any markup the model produced. The sanitizer escapes text, so
// entities are decoded again afterwards.
func (g *GeminiClient) clean(s string) string {
	return strings.TrimSpace(html.UnescapeString(g.sanitizer.Sanitize(s)))
}

// BuildPrompt renders the model prompt for a snapshot.
func BuildPrompt(s weather.Snapshot, lang string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Based on this current weather for %s:\n", s.City)
	fmt.Fprintf(&b, "Temp: %d°C, Feels like: %d°C\n", s.Temp, s.FeelsLike)
	fmt.Fprintf(&b, "Condition: %s\n", s.Condition)
	fmt.Fprintf(&b, "Rain Chance: %d%%\n", s.RainProbability)
	fmt.Fprintf(&b, "Wind: %.1f km/h\n", s.WindSpeed)
	fmt.Fprintf(&b, "AQI Index: %d, UV Index: %.1f\n\n", s.AQI.Value, s.UVIndex)
	b.WriteString("Provide weather insights in a human, calm, and trusted tone.\n")
	fmt.Fprintf(&b, "Crucially, write the response entirely in %s.\n\n", LanguageName(lang))
	b.WriteString("1. humanInsight: A friendly observation about the day.\n")
	b.WriteString("2. healthSuggestion: A suggestion based on UV, AQI, or temperature.\n")
	b.WriteString("3. travelWarning: If rain chance is high or wind is strong, provide a subtle warning.\n")
	if needsTravelWarning(s) {
		b.WriteString("Rain or wind is significant today; the travel warning must not be empty.\n")
	}
	return b.String()
}

func needsTravelWarning(s weather.Snapshot) bool {
	if s.RainProbability >= highRainProbability || s.WindSpeed >= strongWindKmh {
		return true
	}
	return common.HasAny(string(s.Condition), "Rain", "Showers", "Storm", "Snow")
}

// Gemini API request and response types.

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType"`
	ResponseSchema   schema `json:"responseSchema"`
}

type schema struct {
	Type       string            `json:"type"`
	Properties map[string]schema `json:"properties,omitempty"`
	Required   []string          `json:"required,omitempty"`
}

func newGenerateRequest(prompt string) generateRequest {
	str := schema{Type: "STRING"}
	return generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema: schema{
				Type: "OBJECT",
				Properties: map[string]schema{
					"humanInsight":     str,
					"healthSuggestion": str,
					"travelWarning":    str,
				},
				Required: []string{"humanInsight", "healthSuggestion", "travelWarning"},
			},
		},
	}
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (r generateResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	return strings.TrimSpace(b.String())
}
