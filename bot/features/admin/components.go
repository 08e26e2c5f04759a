package admin

import (
	"strings"

	"github.com/bwmarrin/discordgo"
)

const (
	customIDPrefix = "admin_"
	actionConfirm  = "confirm"
	actionCancel   = "cancel"
)

// CustomID builds the button id for an action on a pending token
func CustomID(action, token string) string {
	return customIDPrefix + action + "_" + token
}

// ParseCustomID splits admin_<action>_<token>
func ParseCustomID(customID string) (action, token string, ok bool) {
	rest, found := strings.CutPrefix(customID, customIDPrefix)
	if !found {
		return "", "", false
	}

	action, token, found = strings.Cut(rest, "_")
	if !found || token == "" {
		return "", "", false
	}
	if action != actionConfirm && action != actionCancel {
		return "", "", false
	}
	return action, token, true
}

// ConfirmationButtons renders the confirm and cancel buttons for a token
func ConfirmationButtons(token string) []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		&discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				&discordgo.Button{
					Label:    "Confirm",
					Style:    discordgo.DangerButton,
					CustomID: CustomID(actionConfirm, token),
					Emoji:    &discordgo.ComponentEmoji{Name: "⚠️"},
				},
				&discordgo.Button{
					Label:    "Cancel",
					Style:    discordgo.SecondaryButton,
					CustomID: CustomID(actionCancel, token),
				},
			},
		},
	}
}
