package bot

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findCommand(t *testing.T, name string) *discordgo.ApplicationCommand {
	t.Helper()
	for _, cmd := range Commands() {
		if cmd.Name == name {
			return cmd
		}
	}
	require.Failf(t, "command not registered", "%s", name)
	return nil
}

func subcommandNames(cmd *discordgo.ApplicationCommand) []string {
	var names []string
	for _, opt := range cmd.Options {
		if opt.Type == discordgo.ApplicationCommandOptionSubCommand {
			names = append(names, opt.Name)
		}
	}
	return names
}

func TestCommands_UniqueNames(t *testing.T) {
	seen := map[string]bool{}
	for _, cmd := range Commands() {
		assert.False(t, seen[cmd.Name], "duplicate command %s", cmd.Name)
		seen[cmd.Name] = true
		assert.NotEmpty(t, cmd.Description)
		assert.LessOrEqual(t, len(cmd.Options), 25)
	}
}

func TestCommands_Subcommands(t *testing.T) {
	assert.Equal(t, []string{"create", "lock", "unlock", "settle", "status", "list", "history"}, subcommandNames(findCommand(t, "offer")))
	assert.Equal(t, []string{"place", "cancel", "list"}, subcommandNames(findCommand(t, "bet")))
	assert.Equal(t, []string{"freeze", "unfreeze", "status"}, subcommandNames(findCommand(t, "economy")))
	assert.Contains(t, subcommandNames(findCommand(t, "admin")), "massadd")
	assert.Contains(t, subcommandNames(findCommand(t, "admin")), "backup")
}

func TestCommands_AdminDefaults(t *testing.T) {
	for _, name := range []string{"economy", "admin"} {
		cmd := findCommand(t, name)
		require.NotNil(t, cmd.DefaultMemberPermissions)
		assert.Equal(t, int64(discordgo.PermissionAdministrator), *cmd.DefaultMemberPermissions)
	}
}

func TestCommands_SettleWinnerChoices(t *testing.T) {
	var settle *discordgo.ApplicationCommandOption
	for _, opt := range findCommand(t, "offer").Options {
		if opt.Name == "settle" {
			settle = opt
		}
	}
	require.NotNil(t, settle)
	require.Len(t, settle.Options, 2)
	assert.Len(t, settle.Options[1].Choices, 2)
}
