package betting

import (
	"bookie/bot/common"
	"bookie/service"

	"github.com/bwmarrin/discordgo"
)

// Feature handles /bet: placing, cancelling and listing a user's bets
type Feature struct {
	bettingService service.BettingService
}

func New(bettingService service.BettingService) *Feature {
	return &Feature{
		bettingService: bettingService,
	}
}

// HandleCommand routes /bet subcommands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	sub, opts := common.Subcommand(i)

	switch sub {
	case "place":
		f.handlePlace(s, i, opts)
	case "cancel":
		f.handleCancel(s, i, opts)
	case "list":
		f.handleList(s, i)
	default:
		common.RespondWithError(s, i, "Unknown bet command")
	}
}
