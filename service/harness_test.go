package service_test

import (
	"context"
	"testing"
	"time"

	"bookie/config"
	"bookie/events"
	"bookie/models"
	"bookie/repository"
	"bookie/repository/testutil"
	"bookie/service"

	"github.com/stretchr/testify/require"
)

// testClock is a settable time source
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time {
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

// harness wires every ledger service over an in-memory store
type harness struct {
	ctx    context.Context
	cfg    *config.Config
	clock  *testClock
	store  *repository.MemoryStore
	ledger *repository.Ledger

	offers     service.OfferService
	betting    service.BettingService
	settlement service.SettlementService
	users      service.UserService
	accounts   service.AccountAdminService
	economy    service.EconomyService
	admin      service.AdminService
}

func newHarness(t *testing.T) *harness {
	return newHarnessWith(t, models.NewSnapshot())
}

func newHarnessWith(t *testing.T, seed *models.Snapshot) *harness {
	t.Helper()

	ctx := context.Background()
	cfg := config.NewTestConfig()
	cfg.BackupDir = t.TempDir()
	clock := &testClock{now: testutil.FixedTime}
	store := repository.NewMemoryStoreWith(seed)

	ledger, err := repository.NewLedger(ctx, store, repository.WithClock(clock.Now))
	require.NoError(t, err)

	uowFactory := repository.NewUnitOfWorkFactory(ledger, events.NewBus())
	opt := service.WithClock(clock.Now)

	return &harness{
		ctx:        ctx,
		cfg:        cfg,
		clock:      clock,
		store:      store,
		ledger:     ledger,
		offers:     service.NewOfferService(uowFactory, cfg, opt),
		betting:    service.NewBettingService(uowFactory, cfg, opt),
		settlement: service.NewSettlementService(uowFactory, cfg, opt),
		users:      service.NewUserService(uowFactory, cfg, opt),
		accounts:   service.NewAccountAdminService(uowFactory, cfg, opt),
		economy:    service.NewEconomyService(uowFactory, cfg, opt),
		admin:      service.NewAdminService(uowFactory, cfg, opt),
	}
}

// fundedAccount creates an account and sets its primary balance
func (h *harness) fundedAccount(t *testing.T, userID, name string, balance int64) {
	t.Helper()
	_, err := h.users.GetOrCreateAccount(h.ctx, userID, name)
	require.NoError(t, err)
	_, err = h.accounts.SetCurrency(h.ctx, userID, models.CurrencyReiatsu, balance)
	require.NoError(t, err)
}

func (h *harness) balance(t *testing.T, userID string) int64 {
	t.Helper()
	account, err := h.users.GetAccount(h.ctx, userID)
	require.NoError(t, err)
	return account.Balance
}

func (h *harness) snapshot(t *testing.T) *models.Snapshot {
	t.Helper()
	snapshot, err := h.ledger.Snapshot(h.ctx)
	require.NoError(t, err)
	return snapshot
}
