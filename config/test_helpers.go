package config

import (
	"sync"
	"time"
)

// NewTestConfig returns a configuration suitable for tests
func NewTestConfig() *Config {
	return &Config{
		AdminDiscordIDs:     []string{"999999"},
		StorageBackend:      StorageMemory,
		DataFile:            "economy_data.json",
		BackupDir:           ".",
		StartingBalance:     5000,
		MinimumBet:          100,
		MaxProfitPercent:    10000,
		ConfirmationTimeout: 30 * time.Second,
		HistoryLimit:        5,
		LeaderboardLimit:    10,
		LogLevel:            "info",
		Environment:         "test",
	}
}

// SetTestConfig replaces the global configuration
func SetTestConfig(cfg *Config) {
	Set(cfg)
}

// ResetConfig clears the global configuration so the next Get reloads it
func ResetConfig() {
	instance = nil
	once = sync.Once{}
}
