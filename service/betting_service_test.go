package service_test

import (
	"math"
	"testing"

	"bookie/models"
	"bookie/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchScenario(t *testing.T) {
	h := newHarness(t)

	_, err := h.offers.CreateOffer(h.ctx, "M1", "A", "B", 50)
	require.NoError(t, err)

	receipt, err := h.betting.PlaceBet(h.ctx, "U1", "Ichigo", "M1", "A", 1000)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), receipt.Bet.PotentialReturn)
	assert.Equal(t, int64(4000), receipt.NewBalance)
	assert.Equal(t, "A", receipt.TeamLabel)

	receipt, err = h.betting.PlaceBet(h.ctx, "U2", "Rukia", "M1", "2", 2000)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), receipt.Bet.PotentialReturn)

	_, err = h.offers.LockOffer(h.ctx, "M1")
	require.NoError(t, err)

	_, err = h.betting.PlaceBet(h.ctx, "U1", "Ichigo", "M1", "A", 500)
	assert.ErrorIs(t, err, service.ErrInvalidStateTransition)

	result, err := h.settlement.SettleOffer(h.ctx, "M1", 1)
	require.NoError(t, err)
	require.Len(t, result.Winners, 1)
	require.Len(t, result.Losers, 1)
	assert.Equal(t, int64(1500), result.TotalDistributed)
	assert.Equal(t, int64(2000), result.TotalLost)
	assert.Equal(t, int64(500), result.ProfitPaid)
	assert.Equal(t, int64(1500), result.HouseNet)

	u1, err := h.users.GetAccount(h.ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, int64(5500), u1.Balance)
	assert.Equal(t, int64(500), u1.TotalWinnings)
	assert.Empty(t, u1.ActiveBets)

	u2, err := h.users.GetAccount(h.ctx, "U2")
	require.NoError(t, err)
	assert.Equal(t, int64(3000), u2.Balance)
	assert.Empty(t, u2.ActiveBets)

	_, err = h.offers.GetOffer(h.ctx, "M1")
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = h.settlement.SettleOffer(h.ctx, "M1", 1)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestPlaceThenCancelRestoresState(t *testing.T) {
	h := newHarness(t)

	_, err := h.offers.CreateOffer(h.ctx, "M1", "A", "B", 25)
	require.NoError(t, err)
	_, err = h.users.GetOrCreateAccount(h.ctx, "U1", "Ichigo")
	require.NoError(t, err)

	_, err = h.betting.PlaceBet(h.ctx, "U1", "Ichigo", "M1", "team2", 700)
	require.NoError(t, err)

	offer, err := h.offers.GetOffer(h.ctx, "M1")
	require.NoError(t, err)
	assert.Equal(t, int64(700), offer.TotalTeam2Stake)
	assert.Equal(t, 1, offer.BetCount)

	receipt, err := h.betting.CancelBet(h.ctx, "U1", "M1")
	require.NoError(t, err)
	assert.Equal(t, int64(5000), receipt.NewBalance)
	assert.Equal(t, models.TeamTwo, receipt.Bet.Team)

	offer, err = h.offers.GetOffer(h.ctx, "M1")
	require.NoError(t, err)
	assert.Zero(t, offer.TotalTeam2Stake)
	assert.Zero(t, offer.BetCount)
	assert.Empty(t, offer.Bets)
	require.NoError(t, offer.Verify())

	account, err := h.users.GetAccount(h.ctx, "U1")
	require.NoError(t, err)
	assert.Equal(t, int64(5000), account.Balance)
	assert.Empty(t, account.ActiveBets)
}

func TestPlaceBet_Preconditions(t *testing.T) {
	h := newHarness(t)

	_, err := h.offers.CreateOffer(h.ctx, "M1", "A", "B", 10)
	require.NoError(t, err)

	_, err = h.betting.PlaceBet(h.ctx, "U1", "Ichigo", "missing", "A", 500)
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = h.betting.PlaceBet(h.ctx, "U1", "Ichigo", "M1", "C", 500)
	assert.ErrorIs(t, err, service.ErrInvalidTeamChoice)

	_, err = h.betting.PlaceBet(h.ctx, "U1", "Ichigo", "M1", "A", 0)
	assert.ErrorIs(t, err, service.ErrInvalidParameter)

	_, err = h.betting.PlaceBet(h.ctx, "U1", "Ichigo", "M1", "A", 99)
	assert.ErrorIs(t, err, service.ErrInvalidParameter)

	_, err = h.betting.PlaceBet(h.ctx, "U1", "Ichigo", "M1", "A", 5001)
	assert.ErrorIs(t, err, service.ErrInsufficientFunds)

	_, err = h.betting.PlaceBet(h.ctx, "U1", "Ichigo", "M1", "A", 500)
	require.NoError(t, err)

	_, err = h.betting.PlaceBet(h.ctx, "U1", "Ichigo", "M1", "B", 500)
	assert.ErrorIs(t, err, service.ErrDuplicateBet)

	// the existing bet is reported ahead of stake problems
	_, err = h.betting.PlaceBet(h.ctx, "U1", "Ichigo", "M1", "B", 50)
	assert.ErrorIs(t, err, service.ErrDuplicateBet)

	assert.Equal(t, int64(4500), h.balance(t, "U1"))
}

func TestPlaceBet_RejectsUnrepresentablePayout(t *testing.T) {
	h := newHarness(t)
	h.cfg.MaxProfitPercent = math.MaxInt64
	h.fundedAccount(t, "U1", "Ichigo", 5000)

	_, err := h.offers.CreateOffer(h.ctx, "M1", "A", "B", 9_000_000_000_000_000)
	require.NoError(t, err)

	_, err = h.betting.PlaceBet(h.ctx, "U1", "Ichigo", "M1", "A", 5000)
	assert.ErrorIs(t, err, service.ErrInvalidParameter)

	assert.Equal(t, int64(5000), h.balance(t, "U1"))
	offer := h.snapshot(t).Offers["M1"]
	require.NotNil(t, offer)
	assert.Empty(t, offer.Bets)
	assert.Zero(t, offer.BetCount)
}

func TestPlaceBet_AmbiguousTeamChoice(t *testing.T) {
	h := newHarness(t)

	// "2" is both team two's index and team one's label
	_, err := h.offers.CreateOffer(h.ctx, "M1", "2", "Espada", 10)
	require.NoError(t, err)

	_, err = h.betting.PlaceBet(h.ctx, "U1", "Ichigo", "M1", "2", 500)
	assert.ErrorIs(t, err, service.ErrInvalidTeamChoice)

	receipt, err := h.betting.PlaceBet(h.ctx, "U1", "Ichigo", "M1", "espada", 500)
	require.NoError(t, err)
	assert.Equal(t, models.TeamTwo, receipt.Bet.Team)
}

func TestPlaceBet_UnlockReopensBetting(t *testing.T) {
	h := newHarness(t)

	_, err := h.offers.CreateOffer(h.ctx, "M1", "A", "B", 10)
	require.NoError(t, err)
	_, err = h.offers.LockOffer(h.ctx, "M1")
	require.NoError(t, err)

	_, err = h.betting.PlaceBet(h.ctx, "U1", "Ichigo", "M1", "A", 500)
	assert.ErrorIs(t, err, service.ErrInvalidStateTransition)

	_, err = h.offers.UnlockOffer(h.ctx, "M1")
	require.NoError(t, err)

	_, err = h.betting.PlaceBet(h.ctx, "U1", "Ichigo", "M1", "A", 500)
	require.NoError(t, err)
}

func TestCancelBet_Preconditions(t *testing.T) {
	h := newHarness(t)

	_, err := h.offers.CreateOffer(h.ctx, "M1", "A", "B", 10)
	require.NoError(t, err)

	_, err = h.betting.CancelBet(h.ctx, "U1", "M1")
	assert.ErrorIs(t, err, service.ErrNotFound)

	_, err = h.betting.PlaceBet(h.ctx, "U1", "Ichigo", "M1", "A", 500)
	require.NoError(t, err)
	_, err = h.offers.LockOffer(h.ctx, "M1")
	require.NoError(t, err)

	_, err = h.betting.CancelBet(h.ctx, "U1", "M1")
	assert.ErrorIs(t, err, service.ErrInvalidStateTransition)
	assert.Equal(t, int64(4500), h.balance(t, "U1"))
}

func TestFrozenEconomyBlocksBetting(t *testing.T) {
	h := newHarness(t)

	_, err := h.offers.CreateOffer(h.ctx, "M1", "A", "B", 10)
	require.NoError(t, err)
	_, err = h.betting.PlaceBet(h.ctx, "U1", "Ichigo", "M1", "A", 500)
	require.NoError(t, err)

	_, err = h.economy.Freeze(h.ctx, "999999")
	require.NoError(t, err)

	_, err = h.betting.PlaceBet(h.ctx, "U2", "Rukia", "M1", "A", 500)
	assert.ErrorIs(t, err, service.ErrEconomyFrozen)

	_, err = h.betting.CancelBet(h.ctx, "U1", "M1")
	assert.ErrorIs(t, err, service.ErrEconomyFrozen)

	_, err = h.economy.Unfreeze(h.ctx, "999999")
	require.NoError(t, err)

	_, err = h.betting.CancelBet(h.ctx, "U1", "M1")
	require.NoError(t, err)
}

func TestListUserBets(t *testing.T) {
	h := newHarness(t)

	summary, err := h.betting.ListUserBets(h.ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, summary.Bets)

	_, err = h.offers.CreateOffer(h.ctx, "M1", "A", "B", 50)
	require.NoError(t, err)
	_, err = h.offers.CreateOffer(h.ctx, "M2", "C", "D", 20)
	require.NoError(t, err)

	_, err = h.betting.PlaceBet(h.ctx, "U1", "Ichigo", "M1", "B", 1000)
	require.NoError(t, err)
	_, err = h.betting.PlaceBet(h.ctx, "U1", "Ichigo", "M2", "C", 500)
	require.NoError(t, err)
	_, err = h.offers.LockOffer(h.ctx, "M2")
	require.NoError(t, err)

	summary, err = h.betting.ListUserBets(h.ctx, "U1")
	require.NoError(t, err)
	require.Len(t, summary.Bets, 2)
	assert.Equal(t, "B", summary.Bets[0].TeamLabel)
	assert.Equal(t, models.OfferStatusOpen, summary.Bets[0].Status)
	assert.Equal(t, models.OfferStatusLocked, summary.Bets[1].Status)
	assert.Equal(t, int64(1500), summary.TotalStake)
	assert.Equal(t, int64(2100), summary.TotalPotentialReturn)
	assert.Equal(t, int64(600), summary.PotentialProfit())
}
