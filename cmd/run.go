package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"bookie/bot"
	"bookie/config"
	"bookie/events"
	"bookie/infrastructure"
	"bookie/observability"
	"bookie/repository"
	"bookie/service"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// pendingSweepInterval is how often expired admin confirmations are purged
const pendingSweepInterval = time.Minute

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the Discord bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return Run(cmd.Context())
		},
	}
}

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Info("Starting bookie bot...")

	// Load configuration
	cfg := config.Get()

	// Initialize storage
	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	ledger, err := repository.NewLedger(ctx, store)
	if err != nil {
		return fmt.Errorf("failed to load ledger: %w", err)
	}

	// Initialize event bus and unit of work factory
	eventBus := events.NewBus()
	uowFactory := repository.NewUnitOfWorkFactory(ledger, eventBus)

	// Initialize services
	services := bot.Services{
		Offers:       service.NewOfferService(uowFactory, cfg),
		Betting:      service.NewBettingService(uowFactory, cfg),
		Settlement:   service.NewSettlementService(uowFactory, cfg),
		Users:        service.NewUserService(uowFactory, cfg),
		AccountAdmin: service.NewAccountAdminService(uowFactory, cfg),
		Economy:      service.NewEconomyService(uowFactory, cfg),
		Admin:        service.NewAdminService(uowFactory, cfg),
	}
	log.Info("Services initialized successfully")

	// Metrics
	metrics := observability.NewMetrics()
	metrics.Attach(eventBus)
	if frozen, err := services.Economy.IsFrozen(ctx); err == nil {
		metrics.SetFrozen(frozen)
	}
	var metricsServer *http.Server
	if cfg.MetricsPort != "" {
		metricsServer = observability.StartMetricsServer(cfg.MetricsPort, metrics, ledger.Health)
	}

	// Event fan-out to NATS
	var natsClient *infrastructure.NATSClient
	if cfg.NATSServers != "" {
		natsClient, err = connectEventStream(ctx, cfg, eventBus)
		if err != nil {
			return err
		}
	}

	go service.RunPendingSweeper(ctx, services.Admin, pendingSweepInterval)

	// Initialize Discord bot
	discordBot, err := bot.New(bot.Config{
		Token:   cfg.DiscordToken,
		GuildID: cfg.DiscordGuildID,
	}, cfg, services)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}

	// Wait for context cancellation
	log.WithField("environment", cfg.Environment).Info("Bot is running")
	<-ctx.Done()

	log.Info("Shutting down bot...")

	if err := discordBot.Close(); err != nil {
		log.WithError(err).Error("Error closing Discord bot")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("Error stopping metrics server")
		}
	}

	if natsClient != nil {
		if err := natsClient.Close(); err != nil {
			log.WithError(err).Error("Error closing NATS connection")
		}
	}

	log.Info("Shutdown completed")
	return nil
}

// connectEventStream forwards committed ledger events to JetStream
func connectEventStream(ctx context.Context, cfg *config.Config, bus *events.Bus) (*infrastructure.NATSClient, error) {
	client := infrastructure.NewNATSClient(cfg.NATSServers)
	if err := client.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	publisher := infrastructure.NewNATSEventPublisher(client, infrastructure.NewEventSubjectMapper())
	if err := publisher.EnsureEventStream(client); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ensure event stream: %w", err)
	}
	publisher.Attach(bus)

	return client, nil
}
