package config

import (
	"fmt"
	"os"
	"strconv"

	// Load environment variables from .env files when present.
	_ "github.com/joho/godotenv/autoload"
)

// Config holds all application configuration
type Config struct {
	Matching MatchingConfig
	Log      LogConfig
}

// MatchingConfig carries the reconciliation thresholds. The defaults
// are empirically chosen; changing them changes classification
// outcomes for borderline candidates.
type MatchingConfig struct {
	MinAcceptScore       int
	ProbableScore        int
	IdenticalScore       int
	HomonymOverrideScore int
	ContextWindow        int
}

type LogConfig struct {
	Level string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Matching: MatchingConfig{
			MinAcceptScore:       getEnvAsInt("MATCH_MIN_ACCEPT_SCORE", 85),
			ProbableScore:        getEnvAsInt("MATCH_PROBABLE_SCORE", 88),
			IdenticalScore:       getEnvAsInt("MATCH_IDENTICAL_SCORE", 95),
			HomonymOverrideScore: getEnvAsInt("MATCH_HOMONYM_OVERRIDE_SCORE", 98),
			ContextWindow:        getEnvAsInt("MATCH_CONTEXT_WINDOW", 50),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	m := cfg.Matching
	if m.MinAcceptScore < 0 || m.HomonymOverrideScore > 100 {
		return nil, fmt.Errorf("matching scores must stay within 0-100")
	}
	if m.MinAcceptScore > m.ProbableScore || m.ProbableScore > m.IdenticalScore || m.IdenticalScore > m.HomonymOverrideScore {
		return nil, fmt.Errorf("matching scores must be ordered: accept <= probable <= identical <= override")
	}
	if m.ContextWindow <= 0 {
		return nil, fmt.Errorf("MATCH_CONTEXT_WINDOW must be positive")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
