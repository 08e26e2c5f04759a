package offers

import (
	"fmt"
	"strings"

	"bookie/bot/common"
	"bookie/models"

	"github.com/bwmarrin/discordgo"
)

// maxListedWinners caps the winners shown in a settlement embed
const maxListedWinners = 10

func statusColor(status models.OfferStatus) int {
	switch status {
	case models.OfferStatusOpen:
		return common.ColorSuccess
	case models.OfferStatusLocked:
		return common.ColorWarning
	default:
		return common.ColorInfo
	}
}

func statusLabel(status models.OfferStatus) string {
	switch status {
	case models.OfferStatusOpen:
		return "🟢 Open"
	case models.OfferStatusLocked:
		return "🔒 Locked"
	default:
		return "🏁 Completed"
	}
}

// OfferEmbed renders a single offer with its pool
func OfferEmbed(offer *models.Offer) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("⚔️ %s", offer.Description()),
		Description: fmt.Sprintf("Match `%s` pays **+%d%%** profit on winning bets", offer.MatchID, offer.ProfitPercent),
		Color:       statusColor(offer.Status),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Status", Value: statusLabel(offer.Status), Inline: true},
			{Name: "Bets", Value: fmt.Sprintf("%d", offer.BetCount), Inline: true},
			{Name: "Total Pool", Value: common.FormatCurrency(offer.TotalPool(), models.CurrencyReiatsu), Inline: true},
			{Name: "1️⃣ " + offer.Team1, Value: common.FormatBalance(offer.TotalTeam1Stake), Inline: true},
			{Name: "2️⃣ " + offer.Team2, Value: common.FormatBalance(offer.TotalTeam2Stake), Inline: true},
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("/bet place match_id:%s team:1|2 amount:<n>", offer.MatchID),
		},
	}

	if offer.WinningTeam != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "🏆 Winner",
			Value: offer.TeamLabel(*offer.WinningTeam),
		})
		embed.Footer = nil
	}

	return embed
}

// OfferListEmbed renders all open and locked offers
func OfferListEmbed(offers []*models.Offer) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "📋 Active Offers",
		Color: common.ColorPrimary,
	}

	if len(offers) == 0 {
		embed.Description = "No offers are open right now."
		return embed
	}

	for _, o := range offers {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: fmt.Sprintf("%s `%s`", statusLabel(o.Status), o.MatchID),
			Value: fmt.Sprintf("%s • +%d%% • %d bets • pool %s",
				o.Description(), o.ProfitPercent, o.BetCount, common.FormatBalance(o.TotalPool())),
		})
	}

	return embed
}

// HistoryEmbed renders recently settled offers
func HistoryEmbed(offers []*models.Offer) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "📜 Settled Offers",
		Color: common.ColorInfo,
	}

	if len(offers) == 0 {
		embed.Description = "No offers have been settled yet."
		return embed
	}

	var lines []string
	for _, o := range offers {
		winner := "?"
		if o.WinningTeam != nil {
			winner = o.TeamLabel(*o.WinningTeam)
		}
		line := fmt.Sprintf("`%s` %s → **%s**", o.MatchID, o.Description(), winner)
		if o.CompletedAt != nil {
			line += " " + common.FormatDiscordTimestamp(*o.CompletedAt, "R")
		}
		lines = append(lines, line)
	}
	embed.Description = strings.Join(lines, "\n")

	return embed
}

// SettlementEmbed summarises payouts for a settled offer
func SettlementEmbed(result *models.SettlementResult) *discordgo.MessageEmbed {
	offer := result.Offer
	winner := "?"
	if offer.WinningTeam != nil {
		winner = offer.TeamLabel(*offer.WinningTeam)
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("🏆 %s wins!", winner),
		Description: fmt.Sprintf("Match `%s` (%s) has been settled", offer.MatchID, offer.Description()),
		Color:       common.ColorGold,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Winners", Value: fmt.Sprintf("%d", len(result.Winners)), Inline: true},
			{Name: "Losers", Value: fmt.Sprintf("%d", len(result.Losers)), Inline: true},
			{Name: "Paid Out", Value: common.FormatBalance(result.TotalDistributed), Inline: true},
			{Name: "Profit Paid", Value: common.FormatBalance(result.ProfitPaid), Inline: true},
			{Name: "Stakes Lost", Value: common.FormatBalance(result.TotalLost), Inline: true},
			{Name: "House Net", Value: common.FormatSigned(result.HouseNet), Inline: true},
		},
	}

	if len(result.Winners) > 0 {
		var lines []string
		for idx, w := range result.Winners {
			if idx == maxListedWinners {
				lines = append(lines, fmt.Sprintf("…and %d more", len(result.Winners)-maxListedWinners))
				break
			}
			lines = append(lines, fmt.Sprintf("%s: %s (%s)", common.UserMention(w.UserID), common.FormatBalance(w.Return), common.FormatSigned(w.Profit)))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Payouts",
			Value: strings.Join(lines, "\n"),
		})
	}

	return embed
}
