package transfer

import (
	"context"
	"fmt"

	"bookie/bot/common"
	"bookie/models"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleGive(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	opts := common.NewOptions(i.ApplicationCommandData().Options)

	recipient := opts.User(s, "user")
	if recipient == nil {
		common.RespondWithError(s, i, "Invalid recipient user.")
		return
	}
	if recipient.Bot {
		common.RespondWithError(s, i, "You cannot give Reiatsu to a bot.")
		return
	}

	var member *discordgo.Member
	if resolved := i.ApplicationCommandData().Resolved; resolved != nil {
		member = resolved.Members[recipient.ID]
	}
	recipientName := common.DisplayName(member, recipient)

	result, err := f.userService.Transfer(ctx,
		common.InvokingUserID(i), common.InvokerDisplayName(i),
		recipient.ID, recipientName,
		opts.Int("amount"),
	)
	if err != nil {
		common.HandleServiceError(s, i, err, "give", false)
		return
	}

	if err := common.RespondWithSuccess(s, i, FormatTransferResult(result, recipientName), false); err != nil {
		log.Errorf("Error responding to give command: %v", err)
	}
}

// FormatTransferResult describes a completed transfer to the sender
func FormatTransferResult(r *models.TransferResult, recipientName string) string {
	return fmt.Sprintf("Sent **%s** Reiatsu to **%s** (fee %s, they received %s). Your balance: **%s**",
		common.FormatBalance(r.Amount),
		recipientName,
		common.FormatBalance(r.Fee),
		common.FormatBalance(r.Received),
		common.FormatBalance(r.SenderBalance),
	)
}
