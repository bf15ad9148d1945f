package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 85, cfg.Matching.MinAcceptScore)
		assert.Equal(t, 88, cfg.Matching.ProbableScore)
		assert.Equal(t, 95, cfg.Matching.IdenticalScore)
		assert.Equal(t, 98, cfg.Matching.HomonymOverrideScore)
		assert.Equal(t, 50, cfg.Matching.ContextWindow)
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("MATCH_CONTEXT_WINDOW", "80")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 80, cfg.Matching.ContextWindow)
	})

	t.Run("rejects unordered thresholds", func(t *testing.T) {
		t.Setenv("MATCH_MIN_ACCEPT_SCORE", "99")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("rejects a non-positive window", func(t *testing.T) {
		t.Setenv("MATCH_CONTEXT_WINDOW", "0")
		_, err := Load()
		assert.Error(t, err)
	})
}
