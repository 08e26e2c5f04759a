package admin

import (
	"context"
	"fmt"

	"bookie/bot/common"
	"bookie/models"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleMassAdd(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	currency, ok := models.ParseCurrency(opts.String("currency"))
	if !ok {
		common.RespondWithError(s, i, "Unknown currency")
		return
	}

	pending, err := f.adminService.ProposeMassAdd(context.Background(), common.InvokingUserID(i), currency, opts.Int("amount"))
	f.respondWithProposal(s, i, pending, err)
}

func (f *Feature) handleInflation(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	pending, err := f.adminService.ProposeInflation(context.Background(), common.InvokingUserID(i), opts.Float("percent"))
	f.respondWithProposal(s, i, pending, err)
}

func (f *Feature) handleResetUser(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	target := opts.User(s, "user")
	if target == nil {
		common.RespondWithError(s, i, "Invalid user")
		return
	}

	pending, err := f.adminService.ProposeResetUser(context.Background(), common.InvokingUserID(i), target.ID)
	f.respondWithProposal(s, i, pending, err)
}

// respondWithProposal shows a staged action with its confirmation buttons
func (f *Feature) respondWithProposal(s *discordgo.Session, i *discordgo.InteractionCreate, pending *models.PendingAction, err error) {
	if err != nil {
		common.HandleServiceError(s, i, err, "admin propose", false)
		return
	}

	if err := common.RespondWithEmbed(s, i, ProposalEmbed(pending), ConfirmationButtons(pending.Token), true); err != nil {
		log.Errorf("Error responding with admin proposal: %v", err)
	}
}

func (f *Feature) handleConfirm(s *discordgo.Session, i *discordgo.InteractionCreate, token string) {
	outcome, err := f.adminService.Confirm(context.Background(), token, common.InvokingUserID(i))
	if err != nil {
		common.HandleServiceError(s, i, err, "admin confirm", false)
		return
	}

	components := common.DisableComponents(i.Message.Components)
	if err := common.UpdateComponentMessage(s, i, OutcomeEmbed(outcome), components); err != nil {
		log.Errorf("Error updating confirmed admin action: %v", err)
	}
}

func (f *Feature) handleCancel(s *discordgo.Session, i *discordgo.InteractionCreate, token string) {
	if err := f.adminService.Cancel(context.Background(), token, common.InvokingUserID(i)); err != nil {
		common.HandleServiceError(s, i, err, "admin cancel", false)
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: "Action cancelled",
		Color: common.ColorDanger,
	}
	if err := common.UpdateComponentMessage(s, i, embed, common.DisableComponents(i.Message.Components)); err != nil {
		log.Errorf("Error updating cancelled admin action: %v", err)
	}
}

func (f *Feature) handleBackup(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := common.DeferResponse(s, i, true); err != nil {
		log.Errorf("Error deferring backup response: %v", err)
		return
	}

	result, err := f.adminService.Backup(context.Background(), common.InvokingUserID(i), "")
	if err != nil {
		common.HandleServiceError(s, i, err, "admin backup", true)
		return
	}

	if err := common.FollowUpWithEmbed(s, i, BackupEmbed(result), true); err != nil {
		log.Errorf("Error sending backup result: %v", err)
	}
}

func (f *Feature) handleSetBalance(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	f.editCurrency(s, i, opts, false)
}

func (f *Feature) handleAddBalance(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	f.editCurrency(s, i, opts, true)
}

func (f *Feature) editCurrency(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options, relative bool) {
	ctx := context.Background()

	target := opts.User(s, "user")
	if target == nil {
		common.RespondWithError(s, i, "Invalid user")
		return
	}
	currency := models.CurrencyReiatsu
	if name := opts.String("currency"); name != "" {
		var ok bool
		if currency, ok = models.ParseCurrency(name); !ok {
			common.RespondWithError(s, i, "Unknown currency")
			return
		}
	}

	var (
		change *models.CurrencyChange
		err    error
	)
	if relative {
		change, err = f.accountAdminService.AdjustCurrency(ctx, target.ID, currency, opts.Int("amount"))
	} else {
		change, err = f.accountAdminService.SetCurrency(ctx, target.ID, currency, opts.Int("amount"))
	}
	if err != nil {
		common.HandleServiceError(s, i, err, "admin currency", false)
		return
	}

	message := fmt.Sprintf("%s %s: %s → %s (%s)",
		common.UserMention(change.UserID),
		currency.DisplayName(),
		common.FormatBalance(change.Before),
		common.FormatBalance(change.After),
		common.FormatSigned(change.Delta()),
	)
	if err := common.RespondWithSuccess(s, i, message, true); err != nil {
		log.Errorf("Error responding to admin currency edit: %v", err)
	}
}

func (f *Feature) handleSetLevel(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	f.editProfile(s, i, opts, "setlevel", func(ctx context.Context, userID string) (*models.UserAccount, error) {
		return f.accountAdminService.SetLevel(ctx, userID, int(opts.Int("level")))
	})
}

func (f *Feature) handleSetExp(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	f.editProfile(s, i, opts, "setexp", func(ctx context.Context, userID string) (*models.UserAccount, error) {
		return f.accountAdminService.SetExperience(ctx, userID, opts.Int("exp"))
	})
}

func (f *Feature) handleSetRank(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	f.editProfile(s, i, opts, "setrank", func(ctx context.Context, userID string) (*models.UserAccount, error) {
		return f.accountAdminService.SetRank(ctx, userID, opts.String("rank"))
	})
}

func (f *Feature) handleGrantPower(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	kind, ok := models.ParsePowerKind(opts.String("kind"))
	if !ok {
		common.RespondWithError(s, i, "Power kind must be zanpakuto or stand")
		return
	}
	f.editProfile(s, i, opts, "grantpower", func(ctx context.Context, userID string) (*models.UserAccount, error) {
		return f.accountAdminService.GrantPower(ctx, userID, kind, opts.String("name"))
	})
}

func (f *Feature) handleRemovePower(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	kind, ok := models.ParsePowerKind(opts.String("kind"))
	if !ok {
		common.RespondWithError(s, i, "Power kind must be zanpakuto or stand")
		return
	}
	f.editProfile(s, i, opts, "removepower", func(ctx context.Context, userID string) (*models.UserAccount, error) {
		return f.accountAdminService.RemovePower(ctx, userID, kind)
	})
}

type profileEdit func(ctx context.Context, userID string) (*models.UserAccount, error)

func (f *Feature) editProfile(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options, action string, edit profileEdit) {
	target := opts.User(s, "user")
	if target == nil {
		common.RespondWithError(s, i, "Invalid user")
		return
	}

	account, err := edit(context.Background(), target.ID)
	if err != nil {
		common.HandleServiceError(s, i, err, "admin "+action, false)
		return
	}

	if err := common.RespondWithEmbed(s, i, AccountEmbed(account), nil, true); err != nil {
		log.Errorf("Error responding to admin %s: %v", action, err)
	}
}
