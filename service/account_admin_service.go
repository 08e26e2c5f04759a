package service

import (
	"context"
	"fmt"
	"slices"

	"bookie/config"
	"bookie/events"
	"bookie/models"

	log "github.com/sirupsen/logrus"
)

// accountAdminService implements the AccountAdminService interface
type accountAdminService struct {
	base
}

// NewAccountAdminService creates a service for direct admin edits of one account
func NewAccountAdminService(uowFactory UnitOfWorkFactory, cfg *config.Config, opts ...Option) AccountAdminService {
	return &accountAdminService{base: newBase(uowFactory, cfg, opts)}
}

// SetCurrency overwrites a balance with an exact value
func (s *accountAdminService) SetCurrency(ctx context.Context, userID string, currency models.Currency, amount int64) (*models.CurrencyChange, error) {
	if amount < 0 {
		return nil, newError(KindInvalidParameter, "amount cannot be negative")
	}
	return s.changeCurrency(ctx, userID, currency, func(before int64) int64 {
		return amount - before
	})
}

// AdjustCurrency adds a delta to a balance, flooring the result at zero
func (s *accountAdminService) AdjustCurrency(ctx context.Context, userID string, currency models.Currency, delta int64) (*models.CurrencyChange, error) {
	return s.changeCurrency(ctx, userID, currency, func(int64) int64 {
		return delta
	})
}

func (s *accountAdminService) changeCurrency(ctx context.Context, userID string, currency models.Currency, deltaFor func(before int64) int64) (*models.CurrencyChange, error) {
	if _, ok := models.ParseCurrency(string(currency)); !ok {
		return nil, newError(KindInvalidParameter, "unknown currency %q", currency)
	}

	uow, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	account, err := requireAccount(ctx, uow, userID)
	if err != nil {
		return nil, err
	}

	before := account.Amount(currency)
	after, err := applyBalanceChange(ctx, uow, account, balanceChange{
		Currency:    currency,
		Delta:       deltaFor(before),
		Reason:      events.BalanceReasonAdmin,
		ClampAtZero: true,
	})
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"userID":   userID,
		"currency": currency,
		"before":   before,
		"after":    after,
	}).Info("Admin currency adjustment")

	return &models.CurrencyChange{UserID: userID, Currency: currency, Before: before, After: after}, nil
}

// SetLevel sets the level, resets experience and promotes the rank to match
func (s *accountAdminService) SetLevel(ctx context.Context, userID string, level int) (*models.UserAccount, error) {
	if level < 1 {
		return nil, newError(KindInvalidParameter, "level must be at least 1")
	}
	return s.updateAccount(ctx, userID, "level", func(a *models.UserAccount) error {
		a.Level = level
		a.Experience = 0
		a.Rank = models.RankForLevel(level, a.Rank)
		return nil
	})
}

func (s *accountAdminService) SetExperience(ctx context.Context, userID string, exp int64) (*models.UserAccount, error) {
	return s.updateAccount(ctx, userID, "experience", func(a *models.UserAccount) error {
		a.Experience = max(exp, 0)
		return nil
	})
}

func (s *accountAdminService) SetRank(ctx context.Context, userID, rank string) (*models.UserAccount, error) {
	r, ok := models.ParseRank(rank)
	if !ok {
		return nil, newError(KindInvalidParameter, "unknown rank %q", rank)
	}
	return s.updateAccount(ctx, userID, "rank", func(a *models.UserAccount) error {
		a.Rank = r
		return nil
	})
}

// GrantPower assigns a power from the fixed catalogue
func (s *accountAdminService) GrantPower(ctx context.Context, userID string, kind models.PowerKind, name string) (*models.UserAccount, error) {
	if _, ok := models.ParsePowerKind(string(kind)); !ok {
		return nil, newError(KindInvalidParameter, "unknown power type %q", kind)
	}
	if !slices.Contains(kind.Catalogue(), name) {
		return nil, newError(KindInvalidParameter, "%q is not a known %s", name, kind)
	}
	return s.updateAccount(ctx, userID, string(kind), func(a *models.UserAccount) error {
		a.SetPower(kind, &name)
		return nil
	})
}

func (s *accountAdminService) RemovePower(ctx context.Context, userID string, kind models.PowerKind) (*models.UserAccount, error) {
	if _, ok := models.ParsePowerKind(string(kind)); !ok {
		return nil, newError(KindInvalidParameter, "unknown power type %q", kind)
	}
	return s.updateAccount(ctx, userID, string(kind), func(a *models.UserAccount) error {
		if a.Power(kind) == nil {
			return newError(KindNotFound, "user has no %s", kind)
		}
		a.SetPower(kind, nil)
		return nil
	})
}

// updateAccount applies a profile edit to an existing account in its own unit of work
func (s *accountAdminService) updateAccount(ctx context.Context, userID, field string, edit func(*models.UserAccount) error) (*models.UserAccount, error) {
	uow, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	account, err := requireAccount(ctx, uow, userID)
	if err != nil {
		return nil, err
	}
	if err := edit(account); err != nil {
		return nil, err
	}
	if err := uow.AccountRepository().Update(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to update account %s: %w", userID, err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"userID": userID,
		"field":  field,
	}).Info("Admin account edit")

	return account, nil
}
