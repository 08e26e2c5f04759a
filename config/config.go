package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"bookie/database"

	"github.com/go-playground/validator/v10"
)

// Storage backends
const (
	StorageFile     = "file"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken    string `validate:"required_unless=Environment test"`
	DiscordGuildID  string
	AdminDiscordIDs []string

	// Storage configuration
	StorageBackend string `validate:"oneof=file postgres memory"`
	DataFile       string `validate:"required_if=StorageBackend file"`
	BackupDir      string `validate:"required"`
	DatabaseURL    string `validate:"required_if=StorageBackend postgres"`
	DatabaseName   string

	// Ledger configuration
	StartingBalance     int64         `validate:"gte=0"`
	MinimumBet          int64         `validate:"gte=1"`
	MaxProfitPercent    int64         `validate:"gte=0"`
	ConfirmationTimeout time.Duration `validate:"gt=0"`
	HistoryLimit        int           `validate:"gte=1"`
	LeaderboardLimit    int           `validate:"gte=1"`

	// Event fan-out; empty disables NATS
	NATSServers string

	// Metrics server port; empty disables it
	MetricsPort string `validate:"omitempty,numeric"`

	// Logging
	LogLevel string `validate:"oneof=trace debug info warn warning error fatal panic"`

	// Environment
	Environment string `validate:"oneof=development production test"`
}

var (
	instance *Config
	once     sync.Once
	validate = validator.New()
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		if instance != nil {
			return
		}
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// Set installs cfg as the global configuration
func Set(cfg *Config) {
	instance = cfg
	once = sync.Once{}
	once.Do(func() {})
}

// Load reads and validates the configuration without touching the singleton
func Load() (*Config, error) {
	return load()
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		// Discord
		DiscordToken:   os.Getenv("DISCORD_TOKEN"),
		DiscordGuildID: os.Getenv("DISCORD_GUILD_ID"),

		// Storage
		StorageBackend: envOr("STORAGE_BACKEND", StorageFile),
		DataFile:       envOr("DATA_FILE", "economy_data.json"),
		BackupDir:      envOr("BACKUP_DIR", "."),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		DatabaseName:   os.Getenv("DATABASE_NAME"),

		// Ledger settings with defaults
		StartingBalance:     5000,
		MinimumBet:          100,
		MaxProfitPercent:    10000,
		ConfirmationTimeout: 30 * time.Second,
		HistoryLimit:        5,
		LeaderboardLimit:    10,

		NATSServers: os.Getenv("NATS_SERVERS"),
		MetricsPort: os.Getenv("METRICS_PORT"),
		LogLevel:    strings.ToLower(envOr("LOG_LEVEL", "info")),
		Environment: envOr("ENVIRONMENT", "development"),
	}

	// Override defaults if environment variables are set
	if err := parseInt64("STARTING_BALANCE", &config.StartingBalance); err != nil {
		return nil, err
	}
	if err := parseInt64("MINIMUM_BET", &config.MinimumBet); err != nil {
		return nil, err
	}
	if err := parseInt64("MAX_PROFIT_PERCENT", &config.MaxProfitPercent); err != nil {
		return nil, err
	}
	if seconds := os.Getenv("CONFIRMATION_TIMEOUT_SECONDS"); seconds != "" {
		parsed, err := strconv.Atoi(seconds)
		if err != nil {
			return nil, fmt.Errorf("invalid CONFIRMATION_TIMEOUT_SECONDS %q: %w", seconds, err)
		}
		config.ConfirmationTimeout = time.Duration(parsed) * time.Second
	}

	// Parse admin Discord IDs
	for _, id := range strings.Split(os.Getenv("ADMIN_DISCORD_IDS"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			config.AdminDiscordIDs = append(config.AdminDiscordIDs, id)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks field constraints
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// FullDatabaseURL combines DatabaseURL and DatabaseName
func (c *Config) FullDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// IsAdmin reports whether the Discord user id is configured as a ledger admin
func (c *Config) IsAdmin(discordID string) bool {
	for _, id := range c.AdminDiscordIDs {
		if id == discordID {
			return true
		}
	}
	return false
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseInt64(key string, dst *int64) error {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	*dst = parsed
	return nil
}
