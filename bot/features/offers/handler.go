package offers

import (
	"context"
	"errors"

	"bookie/bot/common"
	"bookie/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleCreate(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	ctx := context.Background()

	offer, err := f.offerService.CreateOffer(ctx,
		opts.String("match_id"),
		opts.String("team1"),
		opts.String("team2"),
		opts.Int("profit"),
	)
	if err != nil {
		common.HandleServiceError(s, i, err, "offer create", false)
		return
	}

	if err := common.RespondWithEmbed(s, i, OfferEmbed(offer), nil, false); err != nil {
		log.Errorf("Error responding to offer create: %v", err)
	}
}

func (f *Feature) handleLock(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	offer, err := f.offerService.LockOffer(context.Background(), opts.String("match_id"))
	if err != nil {
		common.HandleServiceError(s, i, err, "offer lock", false)
		return
	}

	if err := common.RespondWithEmbed(s, i, OfferEmbed(offer), nil, false); err != nil {
		log.Errorf("Error responding to offer lock: %v", err)
	}
}

func (f *Feature) handleUnlock(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	offer, err := f.offerService.UnlockOffer(context.Background(), opts.String("match_id"))
	if err != nil {
		common.HandleServiceError(s, i, err, "offer unlock", false)
		return
	}

	if err := common.RespondWithEmbed(s, i, OfferEmbed(offer), nil, false); err != nil {
		log.Errorf("Error responding to offer unlock: %v", err)
	}
}

func (f *Feature) handleSettle(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	// Large offers can take a while to pay out
	if err := common.DeferResponse(s, i, false); err != nil {
		log.Errorf("Error deferring settle response: %v", err)
		return
	}

	result, err := f.settlementService.SettleOffer(context.Background(), opts.String("match_id"), int(opts.Int("winner")))
	if err != nil {
		common.HandleServiceError(s, i, err, "offer settle", true)
		return
	}

	if err := common.FollowUpWithEmbed(s, i, SettlementEmbed(result), false); err != nil {
		log.Errorf("Error sending settlement result: %v", err)
	}
}

// handleStatus shows an active offer, falling back to the archive
func (f *Feature) handleStatus(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	ctx := context.Background()
	matchID := opts.String("match_id")

	offer, err := f.offerService.GetOffer(ctx, matchID)
	if errors.Is(err, service.ErrNotFound) {
		offer, err = f.offerService.GetArchivedOffer(ctx, matchID)
	}
	if err != nil {
		common.HandleServiceError(s, i, err, "offer status", false)
		return
	}

	if err := common.RespondWithEmbed(s, i, OfferEmbed(offer), nil, false); err != nil {
		log.Errorf("Error responding to offer status: %v", err)
	}
}

func (f *Feature) handleList(s *discordgo.Session, i *discordgo.InteractionCreate) {
	offers, err := f.offerService.ListOpenOrLocked(context.Background())
	if err != nil {
		common.HandleServiceError(s, i, err, "offer list", false)
		return
	}

	if err := common.RespondWithEmbed(s, i, OfferListEmbed(offers), nil, false); err != nil {
		log.Errorf("Error responding to offer list: %v", err)
	}
}

func (f *Feature) handleHistory(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	offers, err := f.offerService.ListHistory(context.Background(), int(opts.Int("limit")))
	if err != nil {
		common.HandleServiceError(s, i, err, "offer history", false)
		return
	}

	if err := common.RespondWithEmbed(s, i, HistoryEmbed(offers), nil, true); err != nil {
		log.Errorf("Error responding to offer history: %v", err)
	}
}
