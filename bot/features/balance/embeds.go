package balance

import (
	"fmt"
	"strings"

	"bookie/bot/common"
	"bookie/models"

	"github.com/bwmarrin/discordgo"
)

var medals = []string{"🥇", "🥈", "🥉"}

// ProfileEmbed shows an account's balances and profile
func ProfileEmbed(a *models.UserAccount) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("💠 %s", a.DisplayName),
		Color: common.ColorPrimary,
		Fields: []*discordgo.MessageEmbedField{
			{Name: models.CurrencyReiatsu.DisplayName(), Value: common.FormatBalance(a.Balance), Inline: true},
			{Name: models.CurrencySoulFragments.DisplayName(), Value: common.FormatBalance(a.SecondaryBalance), Inline: true},
			{Name: "Rank", Value: string(a.Rank), Inline: true},
			{Name: "Level", Value: fmt.Sprintf("%d (%s exp)", a.Level, common.FormatBalance(a.Experience)), Inline: true},
			{Name: "Total Winnings", Value: common.FormatBalance(a.TotalWinnings), Inline: true},
			{Name: "Active Bets", Value: fmt.Sprintf("%d", len(a.ActiveBets)), Inline: true},
		},
	}

	if a.Zanpakuto != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Zanpakuto", Value: *a.Zanpakuto, Inline: true})
	}
	if a.Stand != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{Name: "Stand", Value: *a.Stand, Inline: true})
	}

	return embed
}

// LeaderboardEmbed ranks accounts by primary balance
func LeaderboardEmbed(accounts []*models.UserAccount) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "🏆 Reiatsu Leaderboard",
		Color: common.ColorGold,
	}

	if len(accounts) == 0 {
		embed.Description = "Nobody has an account yet."
		return embed
	}

	lines := make([]string, 0, len(accounts))
	for idx, a := range accounts {
		place := fmt.Sprintf("%d.", idx+1)
		if idx < len(medals) {
			place = medals[idx]
		}
		lines = append(lines, fmt.Sprintf("%s **%s** • %s", place, a.DisplayName, common.FormatBalance(a.Balance)))
	}
	embed.Description = strings.Join(lines, "\n")

	return embed
}
