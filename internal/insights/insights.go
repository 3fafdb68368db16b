// Package insights produces short narrative insights about a weather
// snapshot. Generation is best effort: callers always receive usable text.
package insights

import (
	"context"

	"github.com/i474232898/atmosphere-weather/internal/weather"
)

// Insights are three short human-readable remarks about a snapshot.
type Insights struct {
	HumanInsight     string `json:"humanInsight"`
	HealthSuggestion string `json:"healthSuggestion"`
	TravelWarning    string `json:"travelWarning"`
}

// Generator produces insights for a snapshot in the given language. It never
// fails; implementations fall back to Default.
type Generator interface {
	Generate(ctx context.Context, snapshot weather.Snapshot, lang string) Insights
}

// Default is returned whenever insights cannot be generated.
func Default() Insights {
	return Insights{
		HumanInsight:     "Conditions are steady. A pleasant day to observe the surroundings.",
		HealthSuggestion: "Stay mindful of your comfort and hydration today.",
		TravelWarning:    "No significant travel concerns detected at this moment.",
	}
}

// Languages maps supported language codes to the names used in prompts.
var Languages = map[string]string{
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"it": "Italian",
	"pt": "Portuguese",
	"ja": "Japanese",
	"zh": "Chinese",
	"hi": "Hindi",
	"ar": "Arabic",
}

// LanguageName returns the prompt name for code, defaulting to English.
func LanguageName(code string) string {
	if name, ok := Languages[code]; ok {
		return name
	}
	return Languages["en"]
}
