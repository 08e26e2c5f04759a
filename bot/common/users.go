package common

import (
	"bookie/config"

	"github.com/bwmarrin/discordgo"
)

// InvokingUser returns the user behind an interaction in a guild or a DM
func InvokingUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// InvokingUserID returns the invoking user's id or "" when unknown
func InvokingUserID(i *discordgo.InteractionCreate) string {
	if u := InvokingUser(i); u != nil {
		return u.ID
	}
	return ""
}

// DisplayName prefers the guild nickname, then the global name, then the username
func DisplayName(member *discordgo.Member, user *discordgo.User) string {
	if member != nil && member.Nick != "" {
		return member.Nick
	}
	if user == nil {
		return "Unknown"
	}
	if user.GlobalName != "" {
		return user.GlobalName
	}
	return user.Username
}

// InvokerDisplayName returns the display name of the invoking user
func InvokerDisplayName(i *discordgo.InteractionCreate) string {
	return DisplayName(i.Member, InvokingUser(i))
}

// IsAdmin reports whether the invoker is a configured admin or holds Administrator in the guild
func IsAdmin(i *discordgo.InteractionCreate, cfg *config.Config) bool {
	if cfg.IsAdmin(InvokingUserID(i)) {
		return true
	}
	return i.Member != nil && i.Member.Permissions&discordgo.PermissionAdministrator != 0
}

// RequireAdmin answers with an error and returns false unless the invoker is an admin
func RequireAdmin(s *discordgo.Session, i *discordgo.InteractionCreate, cfg *config.Config) bool {
	if IsAdmin(i, cfg) {
		return true
	}
	RespondWithError(s, i, "You need administrator permissions to use this command")
	return false
}
