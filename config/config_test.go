package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("DISCORD_TOKEN", "")
	t.Setenv("STORAGE_BACKEND", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StorageFile, cfg.StorageBackend)
	assert.Equal(t, "economy_data.json", cfg.DataFile)
	assert.Equal(t, int64(5000), cfg.StartingBalance)
	assert.Equal(t, int64(100), cfg.MinimumBet)
	assert.Equal(t, int64(10000), cfg.MaxProfitPercent)
	assert.Equal(t, 30*time.Second, cfg.ConfirmationTimeout)
	assert.Equal(t, 5, cfg.HistoryLimit)
	assert.Equal(t, 10, cfg.LeaderboardLimit)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("DISCORD_TOKEN", "token")
	t.Setenv("STORAGE_BACKEND", "postgres")
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432")
	t.Setenv("DATABASE_NAME", "bookie")
	t.Setenv("STARTING_BALANCE", "10000")
	t.Setenv("MINIMUM_BET", "250")
	t.Setenv("MAX_PROFIT_PERCENT", "500")
	t.Setenv("CONFIRMATION_TIMEOUT_SECONDS", "10")
	t.Setenv("ADMIN_DISCORD_IDS", " 1, 2 ,,3")
	t.Setenv("METRICS_PORT", "9100")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, int64(10000), cfg.StartingBalance)
	assert.Equal(t, int64(250), cfg.MinimumBet)
	assert.Equal(t, int64(500), cfg.MaxProfitPercent)
	assert.Equal(t, 10*time.Second, cfg.ConfirmationTimeout)
	assert.Equal(t, []string{"1", "2", "3"}, cfg.AdminDiscordIDs)
	assert.True(t, cfg.IsAdmin("2"))
	assert.False(t, cfg.IsAdmin("4"))
	assert.Equal(t, "postgres://u:p@localhost:5432/bookie?sslmode=disable", cfg.FullDatabaseURL())
}

func TestLoad_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing token outside test", map[string]string{"ENVIRONMENT": "production", "DISCORD_TOKEN": ""}},
		{"unknown backend", map[string]string{"ENVIRONMENT": "test", "STORAGE_BACKEND": "redis"}},
		{"postgres without url", map[string]string{"ENVIRONMENT": "test", "STORAGE_BACKEND": "postgres", "DATABASE_URL": ""}},
		{"non-numeric balance", map[string]string{"ENVIRONMENT": "test", "STARTING_BALANCE": "lots"}},
		{"zero minimum bet", map[string]string{"ENVIRONMENT": "test", "MINIMUM_BET": "0"}},
		{"negative profit cap", map[string]string{"ENVIRONMENT": "test", "MAX_PROFIT_PERCENT": "-1"}},
		{"bad metrics port", map[string]string{"ENVIRONMENT": "test", "METRICS_PORT": "http"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestSetTestConfig(t *testing.T) {
	defer ResetConfig()

	cfg := NewTestConfig()
	cfg.MinimumBet = 7
	SetTestConfig(cfg)

	assert.Same(t, cfg, Get())
	assert.NoError(t, cfg.Validate())
}
