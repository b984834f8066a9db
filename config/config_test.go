package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("OPENAI_MODEL", "")
	t.Setenv("FETCH_TIMEOUT", "")
	t.Setenv("CACHE_TTL", "")
	t.Setenv("ABILITY_LIMIT", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("SWEEP_INTERVAL", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 24*time.Hour, cfg.SessionTTL)
	require.Equal(t, 10*time.Minute, cfg.SweepInterval)
	require.Equal(t, "gpt-4o", cfg.OpenAIModel)
	require.Equal(t, 5*time.Second, cfg.FetchTimeout)
	require.Equal(t, time.Hour, cfg.CacheTTL)
	require.Equal(t, 3, cfg.AbilityLimit)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("FETCH_TIMEOUT", "2s")
	t.Setenv("IDENTIFY_TIMEOUT", "45")
	t.Setenv("ABILITY_LIMIT", "0")
	t.Setenv("CAMERA_DEVICE", "abc")
	t.Setenv("SESSION_TTL", "30m")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 2*time.Second, cfg.FetchTimeout)
	require.Equal(t, 45*time.Second, cfg.IdentifyTimeout)
	require.Equal(t, 0, cfg.AbilityLimit)
	require.Equal(t, 0, cfg.CameraDevice)
	require.Equal(t, 30*time.Minute, cfg.SessionTTL)
}
