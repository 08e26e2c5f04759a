package service

import (
	"context"
	"fmt"
	"sort"

	"bookie/config"
	"bookie/events"
	"bookie/models"

	log "github.com/sirupsen/logrus"
)

// TransferFeeDivisor sets the transfer fee to 1/20th (5%) of the amount, minimum 1
const TransferFeeDivisor = 20

// userService implements the UserService interface
type userService struct {
	base
}

// NewUserService creates a new user service
func NewUserService(uowFactory UnitOfWorkFactory, cfg *config.Config, opts ...Option) UserService {
	return &userService{base: newBase(uowFactory, cfg, opts)}
}

// GetOrCreateAccount retrieves an existing account or creates one with the starting balance
func (s *userService) GetOrCreateAccount(ctx context.Context, userID, displayName string) (*models.UserAccount, error) {
	uow, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	account, err := s.loadOrCreateAccount(ctx, uow, userID, displayName)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return account, nil
}

func (s *userService) GetAccount(ctx context.Context, userID string) (*models.UserAccount, error) {
	uow, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	return requireAccount(ctx, uow, userID)
}

// TransferFee returns the fee charged on a transfer
func TransferFee(amount int64) int64 {
	fee := amount / TransferFeeDivisor
	if fee < 1 {
		fee = 1
	}
	return fee
}

// Transfer moves reiatsu from sender to recipient. The sender pays the full
// amount and the recipient receives it minus the fee.
func (s *userService) Transfer(ctx context.Context, fromID, fromName, toID, toName string, amount int64) (*models.TransferResult, error) {
	if amount <= 0 {
		return nil, newError(KindInvalidParameter, "transfer amount must be positive")
	}
	if fromID == toID {
		return nil, newError(KindInvalidParameter, "cannot transfer to yourself")
	}

	uow, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := ensureNotFrozen(ctx, uow); err != nil {
		return nil, err
	}

	sender, err := s.loadOrCreateAccount(ctx, uow, fromID, fromName)
	if err != nil {
		return nil, err
	}
	recipient, err := s.loadOrCreateAccount(ctx, uow, toID, toName)
	if err != nil {
		return nil, err
	}

	fee := TransferFee(amount)
	received := amount - fee

	senderBalance, err := applyBalanceChange(ctx, uow, sender, balanceChange{
		Delta:  -amount,
		Reason: events.BalanceReasonTransferOut,
	})
	if err != nil {
		return nil, err
	}

	if _, err := applyBalanceChange(ctx, uow, recipient, balanceChange{
		Delta:  received,
		Reason: events.BalanceReasonTransferIn,
	}); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"from":   fromID,
		"to":     toID,
		"amount": amount,
		"fee":    fee,
	}).Info("Transfer completed")

	return &models.TransferResult{
		Amount:        amount,
		Fee:           fee,
		Received:      received,
		SenderBalance: senderBalance,
		RecipientID:   toID,
	}, nil
}

// Leaderboard returns accounts ordered by balance, highest first
func (s *userService) Leaderboard(ctx context.Context, limit int) ([]*models.UserAccount, error) {
	uow, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	accounts, err := uow.AccountRepository().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	sort.SliceStable(accounts, func(i, j int) bool {
		return accounts[i].Balance > accounts[j].Balance
	})

	if limit > 0 && len(accounts) > limit {
		accounts = accounts[:limit]
	}
	return accounts, nil
}
