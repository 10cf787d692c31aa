package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/draft-diagnostics/pkg/logger"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, 12, cfg.LeagueSize)
	assert.Equal(t, 1, cfg.KeeperRoundPenalty)
	assert.Equal(t, 10, cfg.KeeperValueThreshold)
	assert.InDelta(t, 0.8, cfg.NameMatchThreshold, 1e-9)
	assert.Equal(t, 10*time.Second, cfg.ExternalAPITimeout)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.CorsOrigins)
	assert.Empty(t, cfg.ProbeTables)
}

func TestLoadConfigEnvironmentOverrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("LEAGUE_SIZE", "10")
	t.Setenv("NAME_MATCH_THRESHOLD", "0.9")
	t.Setenv("PROBE_TABLES", "players, leagues ,")
	t.Setenv("EXTERNAL_API_TIMEOUT", "3s")
	t.Setenv("SLEEPER_LEAGUE_ID", "784512")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 10, cfg.LeagueSize)
	assert.InDelta(t, 0.9, cfg.NameMatchThreshold, 1e-9)
	assert.Equal(t, []string{"players", "leagues"}, cfg.ProbeTables)
	assert.Equal(t, 3*time.Second, cfg.ExternalAPITimeout)
	assert.Equal(t, "784512", cfg.SleeperLeagueID)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"threshold above one", "NAME_MATCH_THRESHOLD", "1.5"},
		{"league too small", "LEAGUE_SIZE", "1"},
		{"unknown environment", "ENV", "qa"},
		{"bad base url", "API_BASE_URL", "not a url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			cfg, err := LoadConfig()
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestLoadConfigFromEnvFile(t *testing.T) {
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("ENV", "")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("ENV=development\nLOG_FORMAT=json\nLEAGUE_SIZE=14\n"), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 14, cfg.LeagueSize)
	assert.True(t, cfg.IsDevelopment())

	log := logger.InitLogger(cfg.LogLevel, cfg.LogFormat, cfg.IsDevelopment())
	_, isJSON := log.Formatter.(*logrus.JSONFormatter)
	assert.True(t, isJSON)
}
