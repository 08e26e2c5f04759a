package service

import (
	"context"
	"fmt"

	"bookie/events"
	"bookie/models"
)

// balanceChange describes a single currency movement on an account
type balanceChange struct {
	Currency models.Currency
	Delta    int64
	Reason   events.BalanceReason
	MatchID  string
	// ClampAtZero floors the result at zero instead of rejecting a negative balance
	ClampAtZero bool
}

// applyBalanceChange is the single entry point for currency changes. It stores
// the account and emits a balance event that is flushed after commit.
func applyBalanceChange(ctx context.Context, uow UnitOfWork, account *models.UserAccount, change balanceChange) (int64, error) {
	currency := change.Currency
	if currency == "" {
		currency = models.CurrencyReiatsu
	}

	before := account.Amount(currency)
	after := before + change.Delta
	if after < 0 {
		if !change.ClampAtZero {
			return before, newError(KindInsufficientFunds,
				"insufficient %s: have %d, need %d", currency.DisplayName(), before, -change.Delta)
		}
		after = 0
	}

	account.SetAmount(currency, after)
	if err := uow.AccountRepository().Update(ctx, account); err != nil {
		return before, fmt.Errorf("failed to update account %s: %w", account.ID, err)
	}

	if after != before {
		uow.EventBus().Publish(events.BalanceChangeEvent{
			UserID:       account.ID,
			Currency:     currency,
			OldBalance:   before,
			NewBalance:   after,
			ChangeAmount: after - before,
			Reason:       change.Reason,
			MatchID:      change.MatchID,
		})
	}

	return after, nil
}
