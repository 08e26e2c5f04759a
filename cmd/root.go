package cmd

import (
	"context"
	"fmt"

	"bookie/config"
	"bookie/database"
	"bookie/repository"
	"bookie/service"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRootCmd builds the bookie command tree. Running it without a subcommand starts the bot.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "bookie",
		Short:        "Fixed-odds betting ledger for a Discord economy",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			config.Set(cfg)
			return configureLogging(cfg)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd.Context())
		},
	}

	root.AddCommand(
		newRunCmd(),
		newMigrateCmd(),
		newBackupCmd(),
		newOffersCmd(),
	)

	return root
}

// Execute runs the root command with ctx
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// configureLogging applies the configured level and uses JSON output in production
func configureLogging(cfg *config.Config) error {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	log.SetLevel(level)

	if cfg.Environment == "production" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}

// openStore returns the snapshot store for the configured backend
func openStore(ctx context.Context, cfg *config.Config) (service.SnapshotStore, error) {
	switch cfg.StorageBackend {
	case config.StoragePostgres:
		db, err := database.NewConnection(ctx, cfg.FullDatabaseURL())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return repository.NewPostgresStore(db), nil
	case config.StorageMemory:
		log.Warn("Using in-memory storage, nothing will be persisted")
		return repository.NewMemoryStore(), nil
	default:
		return repository.NewFileStore(cfg.DataFile), nil
	}
}
