package admin

import (
	"fmt"

	"bookie/bot/common"
	"bookie/models"

	"github.com/bwmarrin/discordgo"
)

// ProposalEmbed describes a staged bulk operation awaiting confirmation
func ProposalEmbed(p *models.PendingAction) *discordgo.MessageEmbed {
	var description string
	switch p.Kind {
	case models.AdminActionMassAdd:
		description = fmt.Sprintf("Give **%s** to all %d users", common.FormatCurrency(p.Amount, p.Currency), p.TargetCount)
	case models.AdminActionInflation:
		description = fmt.Sprintf("Scale every balance by **%+g%%** across %d users", p.Percent, p.TargetCount)
	case models.AdminActionResetUser:
		description = fmt.Sprintf("Reset %s to a fresh account", common.UserMention(p.TargetUserID))
	default:
		description = string(p.Kind)
	}

	return &discordgo.MessageEmbed{
		Title:       "⚠️ Confirm Admin Action",
		Description: description,
		Color:       common.ColorWarning,
		Footer: &discordgo.MessageEmbedFooter{
			Text: "Only the proposing admin can confirm",
		},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Expires", Value: common.FormatDiscordTimestamp(p.ExpiresAt, "R")},
		},
	}
}

// OutcomeEmbed reports an executed bulk operation
func OutcomeEmbed(o *models.AdminOutcome) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "✅ Admin Action Complete",
		Color: common.ColorSuccess,
	}

	switch o.Kind {
	case models.AdminActionResetUser:
		embed.Description = fmt.Sprintf("%s was reset", common.UserMention(o.TargetUserID))
	default:
		embed.Description = fmt.Sprintf("%d users affected", o.AffectedUsers)
		embed.Fields = []*discordgo.MessageEmbedField{
			{Name: models.CurrencyReiatsu.DisplayName(), Value: common.FormatSigned(o.PrimaryDelta), Inline: true},
			{Name: models.CurrencySoulFragments.DisplayName(), Value: common.FormatSigned(o.SecondaryDelta), Inline: true},
		}
	}

	return embed
}

// BackupEmbed reports a written backup file
func BackupEmbed(r *models.BackupResult) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "💾 Backup Written",
		Description: fmt.Sprintf("`%s`", r.Path),
		Color:       common.ColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Users", Value: fmt.Sprintf("%d", r.UserCount), Inline: true},
			{Name: "Offers", Value: fmt.Sprintf("%d", r.OfferCount), Inline: true},
			{Name: "Created", Value: common.FormatDiscordTimestamp(r.CreatedAt, "f"), Inline: true},
		},
	}
}

// AccountEmbed shows an account after an admin edit
func AccountEmbed(a *models.UserAccount) *discordgo.MessageEmbed {
	power := func(p *string) string {
		if p == nil {
			return "None"
		}
		return *p
	}

	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Updated %s", a.DisplayName),
		Color: common.ColorInfo,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Level", Value: fmt.Sprintf("%d", a.Level), Inline: true},
			{Name: "Exp", Value: common.FormatBalance(a.Experience), Inline: true},
			{Name: "Rank", Value: string(a.Rank), Inline: true},
			{Name: "Zanpakuto", Value: power(a.Zanpakuto), Inline: true},
			{Name: "Stand", Value: power(a.Stand), Inline: true},
		},
	}
}
