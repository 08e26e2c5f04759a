package repository

import (
	"context"
	"fmt"
	"time"

	"bookie/models"
	"bookie/service"

	log "github.com/sirupsen/logrus"
)

// Ledger owns the committed in-memory state and serialises units of work over it
type Ledger struct {
	sem   chan struct{}
	state *models.Snapshot
	store service.SnapshotStore
	now   func() time.Time
}

// LedgerOption customises a Ledger
type LedgerOption func(*Ledger)

// WithClock overrides the time source used for timestamps
func WithClock(now func() time.Time) LedgerOption {
	return func(l *Ledger) {
		l.now = now
	}
}

// NewLedger loads the last snapshot from the store
func NewLedger(ctx context.Context, store service.SnapshotStore, opts ...LedgerOption) (*Ledger, error) {
	snapshot, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger snapshot: %w", err)
	}
	snapshot.Normalize()

	l := &Ledger{
		sem:   make(chan struct{}, 1),
		state: snapshot,
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}

	for _, offer := range snapshot.Offers {
		if err := offer.Verify(); err != nil {
			log.WithError(err).Warn("Loaded offer with inconsistent totals")
		}
	}

	log.WithFields(log.Fields{
		"accounts": len(snapshot.Accounts),
		"offers":   len(snapshot.Offers),
		"archived": len(snapshot.Archive),
		"frozen":   snapshot.Economy.Frozen,
	}).Info("Ledger loaded")

	return l, nil
}

func (l *Ledger) acquire(ctx context.Context) error {
	select {
	case l.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *Ledger) release() {
	<-l.sem
}

// Snapshot returns a copy of the committed state
func (l *Ledger) Snapshot(ctx context.Context) (*models.Snapshot, error) {
	if err := l.acquire(ctx); err != nil {
		return nil, err
	}
	defer l.release()
	return l.state.Clone(), nil
}

// Health reports whether the ledger lock can be taken
func (l *Ledger) Health(ctx context.Context) error {
	if err := l.acquire(ctx); err != nil {
		return fmt.Errorf("ledger busy: %w", err)
	}
	l.release()
	return nil
}
