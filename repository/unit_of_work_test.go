package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"bookie/events"
	"bookie/models"
	"bookie/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLedger(t *testing.T, store *MemoryStore) *Ledger {
	t.Helper()
	ledger, err := NewLedger(context.Background(), store, WithClock(func() time.Time { return testutil.FixedTime }))
	require.NoError(t, err)
	return ledger
}

func TestUnitOfWork_CommitPersistsAndSwapsState(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	ledger := newTestLedger(t, store)
	factory := NewUnitOfWorkFactory(ledger, events.NewBus())

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	defer uow.Rollback()

	require.NoError(t, uow.AccountRepository().Create(ctx, testutil.CreateTestAccount("1", "ichigo")))
	require.NoError(t, uow.OfferRepository().Create(ctx, testutil.CreateTestOffer("M1", "A", "B", 50)))
	require.NoError(t, uow.Commit())

	assert.Equal(t, 1, store.Saves())

	snapshot, err := ledger.Snapshot(ctx)
	require.NoError(t, err)
	assert.Contains(t, snapshot.Accounts, "1")
	assert.Contains(t, snapshot.Offers, "M1")
	assert.Equal(t, testutil.FixedTime, snapshot.SavedAt)

	stored, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Contains(t, stored.Accounts, "1")
}

func TestUnitOfWork_RollbackDiscardsChanges(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	ledger := newTestLedger(t, store)
	factory := NewUnitOfWorkFactory(ledger, events.NewBus())

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.AccountRepository().Create(ctx, testutil.CreateTestAccount("1", "ichigo")))
	require.NoError(t, uow.Rollback())

	snapshot, err := ledger.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, snapshot.Accounts)
	assert.Equal(t, 0, store.Saves())

	// Rollback after rollback is a no-op
	assert.NoError(t, uow.Rollback())
}

func TestUnitOfWork_FailedSaveKeepsCommittedState(t *testing.T) {
	ctx := context.Background()
	account := testutil.CreateTestAccountWithBalance("1", "ichigo", 1000)
	store := NewMemoryStoreWith(testutil.CreateTestSnapshot([]*models.UserAccount{account}, nil))
	ledger := newTestLedger(t, store)

	bus := events.NewBus()
	delivered := make(chan struct{}, 1)
	bus.Subscribe(events.EventTypeBalanceChange, func(ctx context.Context, e events.Event) {
		delivered <- struct{}{}
	})
	factory := NewUnitOfWorkFactory(ledger, bus)

	store.FailSaves(errors.New("disk full"))

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	acc, err := uow.AccountRepository().Get(ctx, "1")
	require.NoError(t, err)
	acc.Balance = 0
	require.NoError(t, uow.AccountRepository().Update(ctx, acc))
	uow.EventBus().Publish(events.BalanceChangeEvent{UserID: "1", OldBalance: 1000, NewBalance: 0})

	err = uow.Commit()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.NoError(t, uow.Rollback())

	snapshot, err := ledger.Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), snapshot.Accounts["1"].Balance)

	select {
	case <-delivered:
		t.Fatal("event delivered for a failed commit")
	case <-time.After(100 * time.Millisecond):
	}

	// The ledger lock was released, so the next unit of work can start
	store.FailSaves(nil)
	next := factory.Create()
	require.NoError(t, next.Begin(ctx))
	require.NoError(t, next.Rollback())
}

func TestUnitOfWork_EventsFlushAfterCommit(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger(t, NewMemoryStore())
	bus := events.NewBus()
	received := make(chan events.Event, 1)
	bus.Subscribe(events.EventTypeOfferCreated, func(ctx context.Context, e events.Event) {
		received <- e
	})
	factory := NewUnitOfWorkFactory(ledger, bus)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	uow.EventBus().Publish(events.OfferCreatedEvent{MatchID: "M1", Team1: "A", Team2: "B", ProfitPercent: 50})

	select {
	case <-received:
		t.Fatal("event delivered before commit")
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, uow.Commit())

	select {
	case e := <-received:
		assert.Equal(t, "M1", e.(events.OfferCreatedEvent).MatchID)
	case <-time.After(2 * time.Second):
		t.Fatal("event not delivered after commit")
	}
}

func TestUnitOfWork_BeginBlocksUntilRelease(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger(t, NewMemoryStore())
	factory := NewUnitOfWorkFactory(ledger, events.NewBus())

	first := factory.Create()
	require.NoError(t, first.Begin(ctx))

	timeoutCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	second := factory.Create()
	err := second.Begin(timeoutCtx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	require.NoError(t, first.Rollback())
	require.NoError(t, second.Begin(ctx))
	require.NoError(t, second.Rollback())
}

func TestUnitOfWork_DoubleBeginAndCommitWithoutBegin(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger(t, NewMemoryStore())
	factory := NewUnitOfWorkFactory(ledger, events.NewBus())

	uow := factory.Create()
	assert.Error(t, uow.Commit())
	assert.Panics(t, func() { uow.AccountRepository() })

	require.NoError(t, uow.Begin(ctx))
	assert.Error(t, uow.Begin(ctx))
	require.NoError(t, uow.Rollback())
}
