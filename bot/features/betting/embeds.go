package betting

import (
	"fmt"

	"bookie/bot/common"
	"bookie/models"

	"github.com/bwmarrin/discordgo"
)

// BetPlacedEmbed confirms a new bet
func BetPlacedEmbed(r *models.BetReceipt) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🎲 Bet Placed",
		Description: fmt.Sprintf("%s backed **%s** in `%s` (%s)", common.UserMention(r.Bet.UserID), r.TeamLabel, r.Offer.MatchID, r.Offer.Description()),
		Color:       common.ColorSuccess,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Stake", Value: common.FormatBalance(r.Bet.Stake), Inline: true},
			{Name: "Potential Return", Value: common.FormatBalance(r.Bet.PotentialReturn), Inline: true},
			{Name: "Potential Profit", Value: common.FormatSigned(r.Bet.Profit()), Inline: true},
			{Name: "New Balance", Value: common.FormatCurrency(r.NewBalance, models.CurrencyReiatsu)},
		},
	}
}

// BetCancelledEmbed confirms a refund
func BetCancelledEmbed(r *models.CancelReceipt) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "↩️ Bet Cancelled",
		Description: fmt.Sprintf("Your bet on **%s** in `%s` was refunded", r.TeamLabel, r.Offer.MatchID),
		Color:       common.ColorWarning,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Refunded", Value: common.FormatBalance(r.Bet.Stake), Inline: true},
			{Name: "New Balance", Value: common.FormatCurrency(r.NewBalance, models.CurrencyReiatsu), Inline: true},
		},
	}
}

// BetListEmbed lists a user's active bets
func BetListEmbed(summary *models.UserBetSummary) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "🎫 Your Active Bets",
		Color: common.ColorPrimary,
	}

	if len(summary.Bets) == 0 {
		embed.Description = "You have no active bets."
		return embed
	}

	for _, v := range summary.Bets {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: fmt.Sprintf("`%s` %s", v.Ref.MatchID, v.Ref.MatchDescription),
			Value: fmt.Sprintf("%s on **%s** → %s (%s)",
				common.FormatBalance(v.Ref.Stake), v.TeamLabel, common.FormatBalance(v.Ref.PotentialReturn), v.Status),
		})
	}

	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("Staked %s • Potential return %s • Potential profit %s",
			common.FormatBalance(summary.TotalStake),
			common.FormatBalance(summary.TotalPotentialReturn),
			common.FormatSigned(summary.PotentialProfit())),
	}

	return embed
}
