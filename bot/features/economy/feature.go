package economy

import (
	"bookie/bot/common"
	"bookie/config"
	"bookie/service"

	"github.com/bwmarrin/discordgo"
)

// Feature handles /economy: the global freeze switch and analytics
type Feature struct {
	config         *config.Config
	economyService service.EconomyService
}

func New(cfg *config.Config, economyService service.EconomyService) *Feature {
	return &Feature{
		config:         cfg,
		economyService: economyService,
	}
}

// HandleCommand routes /economy subcommands. All of them are admin only.
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !common.RequireAdmin(s, i, f.config) {
		return
	}

	sub, _ := common.Subcommand(i)
	switch sub {
	case "freeze":
		f.handleSetFrozen(s, i, true)
	case "unfreeze":
		f.handleSetFrozen(s, i, false)
	case "status":
		f.handleStatus(s, i)
	default:
		common.RespondWithError(s, i, "Unknown economy command")
	}
}
