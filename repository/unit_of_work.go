package repository

import (
	"context"
	"fmt"

	"bookie/events"
	"bookie/models"
	"bookie/service"

	log "github.com/sirupsen/logrus"
)

// unitOfWork implements the UnitOfWork interface over a working copy of the ledger
type unitOfWork struct {
	ledger           *Ledger
	ctx              context.Context
	working          *models.Snapshot
	transactionalBus *events.TransactionalBus
	accountRepo      service.AccountRepository
	offerRepo        service.OfferRepository
	economyRepo      service.EconomyRepository
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(ledger *Ledger, eventBus *events.Bus) service.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		ledger:   ledger,
		eventBus: eventBus,
	}
}

type unitOfWorkFactory struct {
	ledger   *Ledger
	eventBus *events.Bus
}

func (f *unitOfWorkFactory) Create() service.UnitOfWork {
	return &unitOfWork{
		ledger:           f.ledger,
		transactionalBus: events.NewTransactionalBus(f.eventBus),
	}
}

// Begin takes the ledger lock and clones the committed state
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.working != nil {
		return fmt.Errorf("transaction already started")
	}

	if err := u.ledger.acquire(ctx); err != nil {
		return fmt.Errorf("failed to acquire ledger: %w", err)
	}

	u.ctx = ctx
	u.working = u.ledger.state.Clone()

	u.accountRepo = newAccountRepository(u.working, u.ledger.now)
	u.offerRepo = newOfferRepository(u.working)
	u.economyRepo = newEconomyRepository(u.working)

	return nil
}

// Commit saves the working copy and swaps it in. On a failed save the
// committed state is left untouched and pending events are dropped.
func (u *unitOfWork) Commit() error {
	if u.working == nil {
		return fmt.Errorf("no transaction to commit")
	}

	working := u.working
	u.working = nil
	working.SavedAt = u.ledger.now()

	if err := u.ledger.store.Save(u.ctx, working); err != nil {
		u.ledger.release()
		log.WithFields(log.Fields{
			"error":         err,
			"pendingEvents": u.transactionalBus.Pending(),
		}).Error("Failed to persist ledger snapshot, changes discarded")
		u.transactionalBus.Discard()
		return fmt.Errorf("failed to save ledger snapshot: %w", err)
	}

	u.ledger.state = working
	u.ledger.release()

	// Flush pending events after successful commit
	u.transactionalBus.Flush(u.ctx)

	return nil
}

// Rollback discards the working copy
func (u *unitOfWork) Rollback() error {
	if u.working == nil {
		return nil // Nothing to rollback
	}

	u.working = nil
	u.ledger.release()
	u.transactionalBus.Discard()

	return nil
}

// AccountRepository returns the account repository for this unit of work
func (u *unitOfWork) AccountRepository() service.AccountRepository {
	if u.accountRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.accountRepo
}

// OfferRepository returns the offer repository for this unit of work
func (u *unitOfWork) OfferRepository() service.OfferRepository {
	if u.offerRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.offerRepo
}

// EconomyRepository returns the economy repository for this unit of work
func (u *unitOfWork) EconomyRepository() service.EconomyRepository {
	if u.economyRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.economyRepo
}

// EventBus returns the transactional event bus for this unit of work
func (u *unitOfWork) EventBus() service.EventPublisher {
	if u.transactionalBus == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.transactionalBus
}
