package service

import (
	"context"
	"fmt"
	"time"

	"bookie/config"
	"bookie/events"
	"bookie/models"
)

// Option customises a service
type Option func(*base)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(b *base) {
		b.now = now
	}
}

// base holds what every ledger service needs
type base struct {
	uowFactory UnitOfWorkFactory
	config     *config.Config
	now        func() time.Time
}

func newBase(uowFactory UnitOfWorkFactory, cfg *config.Config, opts []Option) base {
	b := base{
		uowFactory: uowFactory,
		config:     cfg,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// begin creates and starts a unit of work
func (b *base) begin(ctx context.Context) (UnitOfWork, error) {
	uow := b.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return uow, nil
}

// ensureNotFrozen fails with ErrEconomyFrozen while the economy is frozen
func ensureNotFrozen(ctx context.Context, uow UnitOfWork) error {
	state, err := uow.EconomyRepository().Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to read economy state: %w", err)
	}
	if state.Frozen {
		return ErrEconomyFrozen
	}
	return nil
}

// loadOrCreateAccount returns the account, creating it with the starting balance
func (b *base) loadOrCreateAccount(ctx context.Context, uow UnitOfWork, userID, displayName string) (*models.UserAccount, error) {
	account, err := uow.AccountRepository().Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account %s: %w", userID, err)
	}
	if account != nil {
		if displayName != "" && account.DisplayName != displayName {
			account.DisplayName = displayName
			if err := uow.AccountRepository().Update(ctx, account); err != nil {
				return nil, fmt.Errorf("failed to update account %s: %w", userID, err)
			}
		}
		return account, nil
	}

	account = models.NewUserAccount(userID, displayName, b.config.StartingBalance, b.now())
	if err := uow.AccountRepository().Create(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to create account %s: %w", userID, err)
	}

	uow.EventBus().Publish(events.UserCreatedEvent{
		UserID:         userID,
		DisplayName:    displayName,
		InitialBalance: account.Balance,
	})

	return account, nil
}

// requireAccount returns an existing account or ErrNotFound
func requireAccount(ctx context.Context, uow UnitOfWork, userID string) (*models.UserAccount, error) {
	account, err := uow.AccountRepository().Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account %s: %w", userID, err)
	}
	if account == nil {
		return nil, newError(KindNotFound, "user %s has no account", userID)
	}
	return account, nil
}
