package service_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"bookie/models"
	"bookie/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const adminID = "999999"

func TestMassAdd_ClampsAtZero(t *testing.T) {
	h := newHarness(t)
	h.fundedAccount(t, "U1", "Ichigo", 300)
	h.fundedAccount(t, "U2", "Rukia", 2000)

	action, err := h.admin.ProposeMassAdd(h.ctx, adminID, models.CurrencyReiatsu, -500)
	require.NoError(t, err)
	assert.Equal(t, 2, action.TargetCount)
	assert.Equal(t, expectedExpiry(h), action.ExpiresAt)

	// nothing moves before confirmation
	assert.Equal(t, int64(300), h.balance(t, "U1"))

	outcome, err := h.admin.Confirm(h.ctx, action.Token, adminID)
	require.NoError(t, err)
	assert.Equal(t, 2, outcome.AffectedUsers)
	assert.Equal(t, int64(-800), outcome.PrimaryDelta)

	assert.Zero(t, h.balance(t, "U1"))
	assert.Equal(t, int64(1500), h.balance(t, "U2"))

	_, err = h.admin.Confirm(h.ctx, action.Token, adminID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func expectedExpiry(h *harness) time.Time {
	return h.clock.Now().Add(h.cfg.ConfirmationTimeout)
}

func TestMassAdd_SecondaryCurrency(t *testing.T) {
	h := newHarness(t)
	h.fundedAccount(t, "U1", "Ichigo", 300)

	action, err := h.admin.ProposeMassAdd(h.ctx, adminID, models.CurrencySoulFragments, 25)
	require.NoError(t, err)
	outcome, err := h.admin.Confirm(h.ctx, action.Token, adminID)
	require.NoError(t, err)
	assert.Equal(t, int64(25), outcome.SecondaryDelta)
	assert.Zero(t, outcome.PrimaryDelta)

	account, err := h.users.GetAccount(h.ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, int64(25), account.SecondaryBalance)
	assert.Equal(t, int64(300), account.Balance)
}

func TestInflation(t *testing.T) {
	h := newHarness(t)
	h.fundedAccount(t, "U1", "Ichigo", 999)
	_, err := h.accounts.SetCurrency(h.ctx, "U1", models.CurrencySoulFragments, 15)
	require.NoError(t, err)

	_, err = h.admin.ProposeInflation(h.ctx, adminID, 90.5)
	assert.ErrorIs(t, err, service.ErrInvalidParameter)

	action, err := h.admin.ProposeInflation(h.ctx, adminID, -10)
	require.NoError(t, err)

	outcome, err := h.admin.Confirm(h.ctx, action.Token, adminID)
	require.NoError(t, err)

	account, err := h.users.GetAccount(h.ctx, "U1")
	require.NoError(t, err)
	// int(999 * 0.9) and int(15 * 0.9)
	assert.Equal(t, int64(899), account.Balance)
	assert.Equal(t, int64(13), account.SecondaryBalance)
	assert.Equal(t, int64(-100), outcome.PrimaryDelta)
	assert.Equal(t, int64(-2), outcome.SecondaryDelta)
}

func TestConfirm_ExpiredTokenMutatesNothing(t *testing.T) {
	h := newHarness(t)
	h.fundedAccount(t, "U1", "Ichigo", 1000)

	action, err := h.admin.ProposeMassAdd(h.ctx, adminID, models.CurrencyReiatsu, 500)
	require.NoError(t, err)

	h.clock.Advance(h.cfg.ConfirmationTimeout)

	_, err = h.admin.Confirm(h.ctx, action.Token, adminID)
	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.Equal(t, int64(1000), h.balance(t, "U1"))
}

func TestConfirm_OnlyProposer(t *testing.T) {
	h := newHarness(t)
	h.fundedAccount(t, "U1", "Ichigo", 1000)

	action, err := h.admin.ProposeResetUser(h.ctx, adminID, "U1")
	require.NoError(t, err)

	_, err = h.admin.Confirm(h.ctx, action.Token, "someone-else")
	assert.ErrorIs(t, err, service.ErrInvalidParameter)

	err = h.admin.Cancel(h.ctx, action.Token, adminID)
	require.NoError(t, err)

	_, err = h.admin.Confirm(h.ctx, action.Token, adminID)
	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.Equal(t, int64(1000), h.balance(t, "U1"))
}

func TestResetUser(t *testing.T) {
	h := newHarness(t)
	h.fundedAccount(t, "U1", "Ichigo", 12)
	_, err := h.accounts.SetLevel(h.ctx, "U1", 42)
	require.NoError(t, err)

	action, err := h.admin.ProposeResetUser(h.ctx, adminID, "U1")
	require.NoError(t, err)
	outcome, err := h.admin.Confirm(h.ctx, action.Token, adminID)
	require.NoError(t, err)
	assert.Equal(t, "U1", outcome.TargetUserID)
	assert.Equal(t, int64(4988), outcome.PrimaryDelta)

	account, err := h.users.GetAccount(h.ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, int64(5000), account.Balance)
	assert.Equal(t, 1, account.Level)
	assert.Equal(t, models.RankAcademyStudent, account.Rank)
	assert.Equal(t, "Ichigo", account.DisplayName)
}

func TestPurgeExpired(t *testing.T) {
	h := newHarness(t)

	_, err := h.admin.ProposeResetUser(h.ctx, adminID, "U1")
	require.NoError(t, err)
	h.clock.Advance(10 * time.Second)
	_, err = h.admin.ProposeResetUser(h.ctx, adminID, "U2")
	require.NoError(t, err)

	h.clock.Advance(25 * time.Second)
	assert.Equal(t, 1, h.admin.PurgeExpired())
	assert.Equal(t, 0, h.admin.PurgeExpired())
}

func TestBackup(t *testing.T) {
	h := newHarness(t)
	h.fundedAccount(t, "U1", "Ichigo", 1000)
	_, err := h.offers.CreateOffer(h.ctx, "M1", "A", "B", 10)
	require.NoError(t, err)

	result, err := h.admin.Backup(h.ctx, adminID, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(h.cfg.BackupDir, "soul_society_backup_20240301_180000.json"), result.Path)
	assert.Equal(t, 1, result.UserCount)
	assert.Equal(t, 1, result.OfferCount)

	data, err := os.ReadFile(result.Path)
	require.NoError(t, err)

	var doc struct {
		BackupBy string           `json:"backup_by"`
		Snapshot *models.Snapshot `json:"snapshot"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, adminID, doc.BackupBy)
	require.Contains(t, doc.Snapshot.Accounts, "U1")
	assert.Equal(t, int64(1000), doc.Snapshot.Accounts["U1"].Balance)
	assert.Contains(t, doc.Snapshot.Offers, "M1")
}
