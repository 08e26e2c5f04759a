package admin

import (
	"testing"
	"time"

	"bookie/models"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCustomID(t *testing.T) {
	tests := []struct {
		name     string
		customID string
		action   string
		token    string
		ok       bool
	}{
		{"confirm", "admin_confirm_0b0c7a2e-1f7e-4b7d-a0c1-5b3c2f3e9d10", actionConfirm, "0b0c7a2e-1f7e-4b7d-a0c1-5b3c2f3e9d10", true},
		{"cancel", "admin_cancel_abc", actionCancel, "abc", true},
		{"token with underscore", "admin_confirm_a_b", actionConfirm, "a_b", true},
		{"missing token", "admin_confirm_", "", "", false},
		{"unknown action", "admin_delete_abc", "", "", false},
		{"other feature", "bet_confirm_abc", "", "", false},
		{"empty", "", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, token, ok := ParseCustomID(tt.customID)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.action, action)
			assert.Equal(t, tt.token, token)
		})
	}
}

func TestConfirmationButtons_RoundTrip(t *testing.T) {
	rows := ConfirmationButtons("tok")
	require.Len(t, rows, 1)

	row := rows[0].(*discordgo.ActionsRow)
	require.Len(t, row.Components, 2)

	for _, c := range row.Components {
		_, token, ok := ParseCustomID(c.(*discordgo.Button).CustomID)
		assert.True(t, ok)
		assert.Equal(t, "tok", token)
	}
}

func TestProposalEmbed(t *testing.T) {
	expires := time.Date(2024, 3, 1, 18, 0, 30, 0, time.UTC)

	massAdd := ProposalEmbed(&models.PendingAction{Kind: models.AdminActionMassAdd, Currency: models.CurrencyReiatsu, Amount: 1000, TargetCount: 3, ExpiresAt: expires})
	assert.Equal(t, "Give **1,000 Reiatsu** to all 3 users", massAdd.Description)

	inflation := ProposalEmbed(&models.PendingAction{Kind: models.AdminActionInflation, Percent: -10, TargetCount: 2, ExpiresAt: expires})
	assert.Equal(t, "Scale every balance by **-10%** across 2 users", inflation.Description)

	reset := ProposalEmbed(&models.PendingAction{Kind: models.AdminActionResetUser, TargetUserID: "42", ExpiresAt: expires})
	assert.Equal(t, "Reset <@42> to a fresh account", reset.Description)
}

func TestOutcomeEmbed(t *testing.T) {
	embed := OutcomeEmbed(&models.AdminOutcome{Kind: models.AdminActionInflation, AffectedUsers: 2, PrimaryDelta: -100, SecondaryDelta: -2})

	assert.Equal(t, "2 users affected", embed.Description)
	assert.Equal(t, "-100", embed.Fields[0].Value)
	assert.Equal(t, "-2", embed.Fields[1].Value)

	reset := OutcomeEmbed(&models.AdminOutcome{Kind: models.AdminActionResetUser, TargetUserID: "42"})
	assert.Equal(t, "<@42> was reset", reset.Description)
	assert.Empty(t, reset.Fields)
}
