// Package config provides application settings loaded from environment variables.
//
// Settings are read once at process startup to seed defaults (provider,
// model, loop count, engine endpoint). Per-request overrides never flow
// back into the environment; they travel as explicit request-scoped values
// through the research package.

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Settings holds startup defaults for the research CLI.
type Settings struct {
	Provider      string
	Model         string
	MaxLoops      int
	EngineURL     string
	EngineTimeout time.Duration
	MaxInFlight   int64
	DBPath        string
}

// New loads settings from environment variables, applying defaults for
// anything unset. Returns an error if a variable contains an invalid value.
func New() (Settings, error) {
	maxLoops, err := getEnvInt("MAX_WEB_RESEARCH_LOOPS", 10)
	if err != nil {
		return Settings{}, err
	}

	timeoutSecs, err := getEnvInt("RESEARCH_ENGINE_TIMEOUT_SECS", 600)
	if err != nil {
		return Settings{}, err
	}

	maxInFlight, err := getEnvInt("FATHOM_MAX_IN_FLIGHT", 0)
	if err != nil {
		return Settings{}, err
	}

	return Settings{
		Provider:      getEnv("LLM_PROVIDER", "openai"),
		Model:         getEnv("LLM_MODEL", "o3-mini"),
		MaxLoops:      maxLoops,
		EngineURL:     os.Getenv("RESEARCH_ENGINE_URL"),
		EngineTimeout: time.Duration(timeoutSecs) * time.Second,
		MaxInFlight:   int64(maxInFlight),
		DBPath:        getEnv("FATHOM_DB", ".fathom/fathom.db"),
	}, nil
}

// apiKeyEnvs maps catalog providers to their API key environment variables.
var apiKeyEnvs = map[string]string{
	"openai":    "OPENAI_API_KEY",
	"anthropic": "ANTHROPIC_API_KEY",
	"google":    "GOOGLE_API_KEY",
	"groq":      "GROQ_API_KEY",
	"sambanova": "SAMBANOVA_API_KEY",
}

// APIKeyEnvFor returns the API key environment variable name for a provider.
func APIKeyEnvFor(provider string) (string, bool) {
	env, ok := apiKeyEnvs[provider]
	return env, ok
}

// APIKeyFor returns the API key for a provider from environment variables.
func APIKeyFor(provider string) (string, error) {
	env, ok := apiKeyEnvs[provider]
	if !ok {
		return "", fmt.Errorf("unknown provider: %q", provider)
	}

	key := os.Getenv(env)
	if key == "" {
		return "", fmt.Errorf("%s environment variable not set", env)
	}
	return key, nil
}

// HasAPIKey reports whether the provider's API key is present in the
// environment. Used for startup preflight warnings only.
func HasAPIKey(provider string) bool {
	env, ok := apiKeyEnvs[provider]
	if !ok {
		return false
	}
	return os.Getenv(env) != ""
}

// Environment variable helpers with proper error handling

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %q: %w", key, val, err)
	}
	return i, nil
}
