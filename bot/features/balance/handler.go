package balance

import (
	"context"

	"bookie/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleBalance(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	opts := common.NewOptions(i.ApplicationCommandData().Options)

	// Looking at someone else never creates their account
	if target := opts.User(s, "user"); target != nil && target.ID != common.InvokingUserID(i) {
		account, err := f.userService.GetAccount(ctx, target.ID)
		if err != nil {
			common.HandleServiceError(s, i, err, "balance", false)
			return
		}
		if err := common.RespondWithEmbed(s, i, ProfileEmbed(account), nil, false); err != nil {
			log.Errorf("Error responding to balance command: %v", err)
		}
		return
	}

	account, err := f.userService.GetOrCreateAccount(ctx, common.InvokingUserID(i), common.InvokerDisplayName(i))
	if err != nil {
		common.HandleServiceError(s, i, err, "balance", false)
		return
	}

	if err := common.RespondWithEmbed(s, i, ProfileEmbed(account), nil, false); err != nil {
		log.Errorf("Error responding to balance command: %v", err)
	}
}

func (f *Feature) handleLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate) {
	accounts, err := f.userService.Leaderboard(context.Background(), f.config.LeaderboardLimit)
	if err != nil {
		common.HandleServiceError(s, i, err, "leaderboard", false)
		return
	}

	if err := common.RespondWithEmbed(s, i, LeaderboardEmbed(accounts), nil, false); err != nil {
		log.Errorf("Error responding to leaderboard command: %v", err)
	}
}
