package balance

import (
	"bookie/config"
	"bookie/service"

	"github.com/bwmarrin/discordgo"
)

type Feature struct {
	config      *config.Config
	userService service.UserService
}

func New(cfg *config.Config, userService service.UserService) *Feature {
	return &Feature{
		config:      cfg,
		userService: userService,
	}
}

// HandleCommand handles /balance
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleBalance(s, i)
}

// HandleLeaderboard handles /leaderboard
func (f *Feature) HandleLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleLeaderboard(s, i)
}
