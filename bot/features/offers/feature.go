package offers

import (
	"bookie/bot/common"
	"bookie/config"
	"bookie/service"

	"github.com/bwmarrin/discordgo"
)

// Feature handles /offer: publishing, locking and settling fixed-odds matches
type Feature struct {
	config            *config.Config
	offerService      service.OfferService
	settlementService service.SettlementService
}

func New(cfg *config.Config, offerService service.OfferService, settlementService service.SettlementService) *Feature {
	return &Feature{
		config:            cfg,
		offerService:      offerService,
		settlementService: settlementService,
	}
}

// HandleCommand routes /offer subcommands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	sub, opts := common.Subcommand(i)

	switch sub {
	case "create", "lock", "unlock", "settle":
		if !common.RequireAdmin(s, i, f.config) {
			return
		}
	}

	switch sub {
	case "create":
		f.handleCreate(s, i, opts)
	case "lock":
		f.handleLock(s, i, opts)
	case "unlock":
		f.handleUnlock(s, i, opts)
	case "settle":
		f.handleSettle(s, i, opts)
	case "status":
		f.handleStatus(s, i, opts)
	case "list":
		f.handleList(s, i)
	case "history":
		f.handleHistory(s, i, opts)
	default:
		common.RespondWithError(s, i, "Unknown offer command")
	}
}
