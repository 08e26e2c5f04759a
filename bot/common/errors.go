package common

import (
	"bookie/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// GenericErrorMessage is shown for faults the user cannot fix
const GenericErrorMessage = "Something went wrong. Please try again later."

// ErrorMessage turns a service error into text for the invoking user.
// Ledger errors carry their own message; anything else is an internal fault.
func ErrorMessage(err error) string {
	switch service.KindOf(err) {
	case "":
		return GenericErrorMessage
	case service.KindEconomyFrozen:
		return "The economy is frozen. Betting and transfers are suspended."
	default:
		return err.Error()
	}
}

// HandleServiceError logs the failure and answers the interaction
func HandleServiceError(s *discordgo.Session, i *discordgo.InteractionCreate, err error, action string, deferred bool) {
	fields := log.Fields{
		"user_id": InvokingUserID(i),
		"action":  action,
		"error":   err,
	}
	if kind := service.KindOf(err); kind != "" {
		fields["kind"] = kind
		log.WithFields(fields).Info("Command rejected")
	} else {
		log.WithFields(fields).Error("Unexpected error in bot command")
	}

	if deferred {
		FollowUpWithError(s, i, ErrorMessage(err))
		return
	}
	RespondWithError(s, i, ErrorMessage(err))
}
