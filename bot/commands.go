package bot

import (
	"fmt"

	"bookie/models"
	"bookie/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

var adminPermission int64 = discordgo.PermissionAdministrator

func matchIDOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "match_id",
		Description: "Match identifier",
		Required:    true,
	}
}

func userOption(description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionUser,
		Name:        "user",
		Description: description,
		Required:    required,
	}
}

func currencyOption(required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "currency",
		Description: "Which balance to change",
		Required:    required,
		Choices: []*discordgo.ApplicationCommandOptionChoice{
			{Name: models.CurrencyReiatsu.DisplayName(), Value: string(models.CurrencyReiatsu)},
			{Name: models.CurrencySoulFragments.DisplayName(), Value: string(models.CurrencySoulFragments)},
		},
	}
}

func powerKindOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "kind",
		Description: "Power slot",
		Required:    true,
		Choices: []*discordgo.ApplicationCommandOptionChoice{
			{Name: "Zanpakuto", Value: string(models.PowerZanpakuto)},
			{Name: "Stand", Value: string(models.PowerStand)},
		},
	}
}

func subcommand(name, description string, options ...*discordgo.ApplicationCommandOption) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionSubCommand,
		Name:        name,
		Description: description,
		Options:     options,
	}
}

// Commands returns every slash command the bot serves
func Commands() []*discordgo.ApplicationCommand {
	minProfit := 0.0
	minStake := 1.0
	minLevel := 1.0
	minInflation := -float64(service.MaxInflationPercent)
	maxInflation := float64(service.MaxInflationPercent)

	return []*discordgo.ApplicationCommand{
		{
			Name:        "balance",
			Description: "Show your Reiatsu and profile",
			Options: []*discordgo.ApplicationCommandOption{
				userOption("Look at another user's profile", false),
			},
		},
		{
			Name:        "leaderboard",
			Description: "Show the richest Soul Reapers",
		},
		{
			Name:        "give",
			Description: "Give Reiatsu to another user (5% fee)",
			Options: []*discordgo.ApplicationCommandOption{
				userOption("User to give to", true),
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "Amount of Reiatsu",
					Required:    true,
					MinValue:    &minStake,
				},
			},
		},
		{
			Name:        "offer",
			Description: "Fixed-odds match offers",
			Options: []*discordgo.ApplicationCommandOption{
				subcommand("create", "Publish a new offer (admin only)",
					matchIDOption(),
					&discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionString, Name: "team1", Description: "First team", Required: true},
					&discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionString, Name: "team2", Description: "Second team", Required: true},
					&discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionInteger, Name: "profit", Description: "Profit percentage paid on winning bets", Required: true, MinValue: &minProfit},
				),
				subcommand("lock", "Stop accepting bets (admin only)", matchIDOption()),
				subcommand("unlock", "Reopen betting (admin only)", matchIDOption()),
				subcommand("settle", "Declare the winner and pay out (admin only)",
					matchIDOption(),
					&discordgo.ApplicationCommandOption{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "winner",
						Description: "Winning team",
						Required:    true,
						Choices: []*discordgo.ApplicationCommandOptionChoice{
							{Name: "Team 1", Value: 1},
							{Name: "Team 2", Value: 2},
						},
					},
				),
				subcommand("status", "Show an offer", matchIDOption()),
				subcommand("list", "List open and locked offers"),
				subcommand("history", "Show recently settled offers",
					&discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionInteger, Name: "limit", Description: "How many to show"},
				),
			},
		},
		{
			Name:        "bet",
			Description: "Bet Reiatsu on an offer",
			Options: []*discordgo.ApplicationCommandOption{
				subcommand("place", "Place a bet on an open offer",
					matchIDOption(),
					&discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionString, Name: "team", Description: "1, 2 or the team name", Required: true},
					&discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionInteger, Name: "amount", Description: "Stake in Reiatsu", Required: true, MinValue: &minStake},
				),
				subcommand("cancel", "Cancel your bet while the offer is open", matchIDOption()),
				subcommand("list", "Show your active bets"),
			},
		},
		{
			Name:                     "economy",
			Description:              "Economy controls (admin only)",
			DefaultMemberPermissions: &adminPermission,
			Options: []*discordgo.ApplicationCommandOption{
				subcommand("freeze", "Suspend betting and transfers"),
				subcommand("unfreeze", "Resume betting and transfers"),
				subcommand("status", "Show economy analytics"),
			},
		},
		{
			Name:                     "admin",
			Description:              "Ledger administration (admin only)",
			DefaultMemberPermissions: &adminPermission,
			Options: []*discordgo.ApplicationCommandOption{
				subcommand("massadd", "Give every user an amount (needs confirmation)",
					currencyOption(true),
					&discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionInteger, Name: "amount", Description: "Amount per user, may be negative", Required: true},
				),
				subcommand("inflation", "Scale every balance by a percentage (needs confirmation)",
					&discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionNumber, Name: "percent", Description: "Percentage change", Required: true, MinValue: &minInflation, MaxValue: maxInflation},
				),
				subcommand("resetuser", "Reset an account (needs confirmation)", userOption("User to reset", true)),
				subcommand("backup", "Write a backup of the ledger"),
				subcommand("setbalance", "Set a user's balance",
					userOption("Target user", true),
					&discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionInteger, Name: "amount", Description: "New balance", Required: true},
					currencyOption(false),
				),
				subcommand("addbalance", "Add to or subtract from a user's balance",
					userOption("Target user", true),
					&discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionInteger, Name: "amount", Description: "Change, may be negative", Required: true},
					currencyOption(false),
				),
				subcommand("setlevel", "Set a user's level",
					userOption("Target user", true),
					&discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionInteger, Name: "level", Description: "New level", Required: true, MinValue: &minLevel},
				),
				subcommand("setexp", "Set a user's experience",
					userOption("Target user", true),
					&discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionInteger, Name: "exp", Description: "New experience", Required: true},
				),
				subcommand("setrank", "Set a user's rank",
					userOption("Target user", true),
					&discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionString, Name: "rank", Description: "Rank name", Required: true},
				),
				subcommand("grantpower", "Grant a Zanpakuto or Stand",
					userOption("Target user", true),
					powerKindOption(),
					&discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionString, Name: "name", Description: "Power name", Required: true},
				),
				subcommand("removepower", "Remove a Zanpakuto or Stand",
					userOption("Target user", true),
					powerKindOption(),
				),
			},
		},
	}
}

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	for _, cmd := range Commands() {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
		log.WithField("command", cmd.Name).Debug("Registered slash command")
	}

	return nil
}
