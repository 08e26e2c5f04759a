package economy

import (
	"fmt"
	"strings"

	"bookie/bot/common"
	"bookie/models"

	"github.com/bwmarrin/discordgo"
)

// StateEmbed announces a change of the economy switch
func StateEmbed(state models.EconomyState) *discordgo.MessageEmbed {
	if !state.Frozen {
		return &discordgo.MessageEmbed{
			Title:       "🔥 Economy Unfrozen",
			Description: "Betting and transfers are open again.",
			Color:       common.ColorSuccess,
		}
	}

	embed := &discordgo.MessageEmbed{
		Title:       "🧊 Economy Frozen",
		Description: "Betting and transfers are suspended until an admin unfreezes the economy.",
		Color:       common.ColorFrozen,
	}
	if state.FrozenBy != "" {
		embed.Description += fmt.Sprintf("\nFrozen by %s", common.UserMention(state.FrozenBy))
	}
	if state.FrozenAt != nil {
		embed.Description += " " + common.FormatDiscordTimestamp(*state.FrozenAt, "R")
	}
	return embed
}

// AnalyticsEmbed summarises the whole economy
func AnalyticsEmbed(a *models.EconomyAnalytics) *discordgo.MessageEmbed {
	status := "🔥 Active"
	color := common.ColorInfo
	if a.Frozen {
		status = "🧊 Frozen"
		color = common.ColorFrozen
	}

	embed := &discordgo.MessageEmbed{
		Title: "📊 Economy Analytics",
		Color: color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Status", Value: status, Inline: true},
			{Name: "Users", Value: fmt.Sprintf("%d", a.TotalUsers), Inline: true},
			{Name: "Average Level", Value: fmt.Sprintf("%d", a.AverageLevel), Inline: true},
			{Name: "Total Reiatsu", Value: common.FormatBalance(a.TotalReiatsu), Inline: true},
			{Name: "Average Reiatsu", Value: common.FormatBalance(a.AverageReiatsu), Inline: true},
			{Name: "Total Soul Fragments", Value: common.FormatBalance(a.TotalFragments), Inline: true},
			{Name: "Active Offers", Value: fmt.Sprintf("%d", a.ActiveOffers), Inline: true},
			{Name: "Completed Offers", Value: fmt.Sprintf("%d", a.CompletedOffers), Inline: true},
			{Name: "Active Bets", Value: fmt.Sprintf("%d", a.ActiveBetRefs), Inline: true},
			{Name: "Powers", Value: fmt.Sprintf("Zanpakuto %d • Stand %d • Both %d", a.ZanpakutoHolders, a.StandHolders, a.BothPowers)},
		},
	}

	var ranks []string
	for _, r := range models.Ranks {
		if n := a.RankDistribution[r]; n > 0 {
			ranks = append(ranks, fmt.Sprintf("%s: %d", r, n))
		}
	}
	if len(ranks) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Ranks",
			Value: strings.Join(ranks, "\n"),
		})
	}

	return embed
}
