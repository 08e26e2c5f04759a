package bot

import (
	"fmt"

	"bookie/bot/common"
	"bookie/bot/features/admin"
	"bookie/bot/features/balance"
	"bookie/bot/features/betting"
	"bookie/bot/features/economy"
	"bookie/bot/features/offers"
	"bookie/bot/features/transfer"
	"bookie/config"
	"bookie/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Config holds bot configuration
type Config struct {
	Token   string
	GuildID string
}

// Services bundles the ledger services the bot calls
type Services struct {
	Offers       service.OfferService
	Betting      service.BettingService
	Settlement   service.SettlementService
	Users        service.UserService
	AccountAdmin service.AccountAdminService
	Economy      service.EconomyService
	Admin        service.AdminService
}

type Bot struct {
	config  Config
	session *discordgo.Session

	offersFeature   *offers.Feature
	bettingFeature  *betting.Feature
	balanceFeature  *balance.Feature
	transferFeature *transfer.Feature
	economyFeature  *economy.Feature
	adminFeature    *admin.Feature
}

func New(botConfig Config, appConfig *config.Config, services Services) (*Bot, error) {
	dg, err := discordgo.New("Bot " + botConfig.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMembers

	bot := &Bot{
		config:          botConfig,
		session:         dg,
		offersFeature:   offers.New(appConfig, services.Offers, services.Settlement),
		bettingFeature:  betting.New(services.Betting),
		balanceFeature:  balance.New(appConfig, services.Users),
		transferFeature: transfer.New(services.Users),
		economyFeature:  economy.New(appConfig, services.Economy),
		adminFeature:    admin.New(appConfig, services.Admin, services.AccountAdmin),
	}

	// Register slash command handlers
	dg.AddHandler(bot.handleCommands)

	// Register component interaction handlers
	dg.AddHandler(bot.handleInteractions)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	log.WithField("guild_id", botConfig.GuildID).Info("Discord bot connected")
	return bot, nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

// handleCommands routes slash commands to features
func (b *Bot) handleCommands(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	switch i.ApplicationCommandData().Name {
	case "offer":
		b.offersFeature.HandleCommand(s, i)
	case "bet":
		b.bettingFeature.HandleCommand(s, i)
	case "balance":
		b.balanceFeature.HandleCommand(s, i)
	case "leaderboard":
		b.balanceFeature.HandleLeaderboard(s, i)
	case "give":
		b.transferFeature.HandleCommand(s, i)
	case "economy":
		b.economyFeature.HandleCommand(s, i)
	case "admin":
		b.adminFeature.HandleCommand(s, i)
	default:
		common.RespondWithError(s, i, "Unknown command")
	}
}

// handleInteractions routes button clicks to features
func (b *Bot) handleInteractions(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}

	if _, _, ok := admin.ParseCustomID(i.MessageComponentData().CustomID); ok {
		b.adminFeature.HandleInteraction(s, i)
	}
}
