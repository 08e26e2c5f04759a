package economy

import (
	"context"

	"bookie/bot/common"
	"bookie/models"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleSetFrozen(s *discordgo.Session, i *discordgo.InteractionCreate, frozen bool) {
	ctx := context.Background()
	actorID := common.InvokingUserID(i)

	var (
		state models.EconomyState
		err   error
	)
	if frozen {
		state, err = f.economyService.Freeze(ctx, actorID)
	} else {
		state, err = f.economyService.Unfreeze(ctx, actorID)
	}
	if err != nil {
		common.HandleServiceError(s, i, err, "economy freeze", false)
		return
	}

	if err := common.RespondWithEmbed(s, i, StateEmbed(state), nil, false); err != nil {
		log.Errorf("Error responding to economy command: %v", err)
	}
}

func (f *Feature) handleStatus(s *discordgo.Session, i *discordgo.InteractionCreate) {
	analytics, err := f.economyService.Analytics(context.Background())
	if err != nil {
		common.HandleServiceError(s, i, err, "economy status", false)
		return
	}

	if err := common.RespondWithEmbed(s, i, AnalyticsEmbed(analytics), nil, true); err != nil {
		log.Errorf("Error responding to economy status: %v", err)
	}
}
