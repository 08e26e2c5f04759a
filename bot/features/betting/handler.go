package betting

import (
	"context"

	"bookie/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handlePlace(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	ctx := context.Background()

	receipt, err := f.bettingService.PlaceBet(ctx,
		common.InvokingUserID(i),
		common.InvokerDisplayName(i),
		opts.String("match_id"),
		opts.String("team"),
		opts.Int("amount"),
	)
	if err != nil {
		common.HandleServiceError(s, i, err, "bet place", false)
		return
	}

	log.WithFields(log.Fields{
		"user_id":  receipt.Bet.UserID,
		"match_id": receipt.Offer.MatchID,
		"stake":    receipt.Bet.Stake,
	}).Debug("Bet placed via command")

	if err := common.RespondWithEmbed(s, i, BetPlacedEmbed(receipt), nil, false); err != nil {
		log.Errorf("Error responding to bet place: %v", err)
	}
}

func (f *Feature) handleCancel(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	receipt, err := f.bettingService.CancelBet(context.Background(), common.InvokingUserID(i), opts.String("match_id"))
	if err != nil {
		common.HandleServiceError(s, i, err, "bet cancel", false)
		return
	}

	if err := common.RespondWithEmbed(s, i, BetCancelledEmbed(receipt), nil, true); err != nil {
		log.Errorf("Error responding to bet cancel: %v", err)
	}
}

func (f *Feature) handleList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	summary, err := f.bettingService.ListUserBets(context.Background(), common.InvokingUserID(i))
	if err != nil {
		common.HandleServiceError(s, i, err, "bet list", false)
		return
	}

	if err := common.RespondWithEmbed(s, i, BetListEmbed(summary), nil, true); err != nil {
		log.Errorf("Error responding to bet list: %v", err)
	}
}
