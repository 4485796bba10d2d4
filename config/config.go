package config

import (
	"os"
	"strconv"
)

// Settings are the runtime knobs read from the environment after
// LoadEnv has run. Keyword tables and scoring thresholds are not here;
// they live in internal/rules as build-once configuration.
type Settings struct {
	// OpenAI chat model used for semantic opinions. The provider is
	// enabled only when OPENAI_API_KEY is set.
	OpenAIModel string

	// Worker count for concurrent batch analysis.
	Workers int

	// Maximum rating eligible for the downstream response-drafting
	// step.
	ResponseRatingMax int
}

// FromEnv reads Settings with defaults for anything unset.
func FromEnv() Settings {
	return Settings{
		OpenAIModel:       os.Getenv("OPENAI_MODEL"),
		Workers:           envInt("ANALYSIS_WORKERS", 4),
		ResponseRatingMax: envInt("RESPONSE_RATING_MAX", 2),
	}
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
