package admin

import (
	"bookie/bot/common"
	"bookie/config"
	"bookie/service"

	"github.com/bwmarrin/discordgo"
)

// Feature handles /admin: account edits, confirmed bulk operations and backups
type Feature struct {
	config              *config.Config
	adminService        service.AdminService
	accountAdminService service.AccountAdminService
}

func New(cfg *config.Config, adminService service.AdminService, accountAdminService service.AccountAdminService) *Feature {
	return &Feature{
		config:              cfg,
		adminService:        adminService,
		accountAdminService: accountAdminService,
	}
}

// HandleCommand routes /admin subcommands
func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !common.RequireAdmin(s, i, f.config) {
		return
	}

	sub, opts := common.Subcommand(i)
	switch sub {
	case "massadd":
		f.handleMassAdd(s, i, opts)
	case "inflation":
		f.handleInflation(s, i, opts)
	case "resetuser":
		f.handleResetUser(s, i, opts)
	case "backup":
		f.handleBackup(s, i)
	case "setbalance":
		f.handleSetBalance(s, i, opts)
	case "addbalance":
		f.handleAddBalance(s, i, opts)
	case "setlevel":
		f.handleSetLevel(s, i, opts)
	case "setexp":
		f.handleSetExp(s, i, opts)
	case "setrank":
		f.handleSetRank(s, i, opts)
	case "grantpower":
		f.handleGrantPower(s, i, opts)
	case "removepower":
		f.handleRemovePower(s, i, opts)
	default:
		common.RespondWithError(s, i, "Unknown admin command")
	}
}

// HandleInteraction handles the confirm and cancel buttons of a pending action
func (f *Feature) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionMessageComponent {
		return
	}

	action, token, ok := ParseCustomID(i.MessageComponentData().CustomID)
	if !ok {
		return
	}

	switch action {
	case actionConfirm:
		f.handleConfirm(s, i, token)
	case actionCancel:
		f.handleCancel(s, i, token)
	}
}
