package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"bookie/config"
	"bookie/events"
	"bookie/models"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// MaxInflationPercent bounds inflation and deflation adjustments
const MaxInflationPercent = 90

// BackupFilePrefix names backup files as soul_society_backup_YYYYMMDD_HHMMSS.json
const BackupFilePrefix = "soul_society_backup_"

// adminService implements the AdminService interface
type adminService struct {
	base

	mu      sync.Mutex
	pending map[string]*models.PendingAction
}

// NewAdminService creates a service for confirmed bulk operations and backups
func NewAdminService(uowFactory UnitOfWorkFactory, cfg *config.Config, opts ...Option) AdminService {
	return &adminService{
		base:    newBase(uowFactory, cfg, opts),
		pending: make(map[string]*models.PendingAction),
	}
}

// ProposeMassAdd stages adding amount of a currency to every account
func (s *adminService) ProposeMassAdd(ctx context.Context, actorID string, currency models.Currency, amount int64) (*models.PendingAction, error) {
	if _, ok := models.ParseCurrency(string(currency)); !ok {
		return nil, newError(KindInvalidParameter, "currency must be reiatsu or soul_fragments")
	}
	if amount == 0 {
		return nil, newError(KindInvalidParameter, "amount cannot be zero")
	}

	count, err := s.accountCount(ctx)
	if err != nil {
		return nil, err
	}

	return s.stage(&models.PendingAction{
		Kind:        models.AdminActionMassAdd,
		ProposedBy:  actorID,
		Currency:    currency,
		Amount:      amount,
		TargetCount: count,
	}), nil
}

// ProposeInflation stages scaling every balance by 1 + percent/100
func (s *adminService) ProposeInflation(ctx context.Context, actorID string, percent float64) (*models.PendingAction, error) {
	if math.IsNaN(percent) || math.Abs(percent) > MaxInflationPercent {
		return nil, newError(KindInvalidParameter, "percentage must be between -%d and %d", MaxInflationPercent, MaxInflationPercent)
	}

	count, err := s.accountCount(ctx)
	if err != nil {
		return nil, err
	}

	return s.stage(&models.PendingAction{
		Kind:        models.AdminActionInflation,
		ProposedBy:  actorID,
		Percent:     percent,
		TargetCount: count,
	}), nil
}

// ProposeResetUser stages replacing an account with a fresh one
func (s *adminService) ProposeResetUser(ctx context.Context, actorID, targetUserID string) (*models.PendingAction, error) {
	if targetUserID == "" {
		return nil, newError(KindInvalidParameter, "a target user is required")
	}

	return s.stage(&models.PendingAction{
		Kind:         models.AdminActionResetUser,
		ProposedBy:   actorID,
		TargetUserID: targetUserID,
		TargetCount:  1,
	}), nil
}

func (s *adminService) stage(action *models.PendingAction) *models.PendingAction {
	now := s.now()
	action.Token = uuid.NewString()
	action.CreatedAt = now
	action.ExpiresAt = now.Add(s.config.ConfirmationTimeout)

	s.mu.Lock()
	s.pending[action.Token] = action
	s.mu.Unlock()

	log.WithFields(log.Fields{
		"token":     action.Token,
		"kind":      action.Kind,
		"actorID":   action.ProposedBy,
		"expiresAt": action.ExpiresAt,
	}).Info("Admin action proposed")

	copied := *action
	return &copied
}

// take removes and returns a live pending action owned by actorID
func (s *adminService) take(token, actorID string) (*models.PendingAction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	action, ok := s.pending[token]
	if !ok {
		return nil, newError(KindNotFound, "no pending action for this confirmation")
	}
	if action.Expired(s.now()) {
		delete(s.pending, token)
		return nil, newError(KindNotFound, "the confirmation window has expired")
	}
	if action.ProposedBy != actorID {
		return nil, newError(KindInvalidParameter, "only the admin who proposed this action can respond to it")
	}

	delete(s.pending, token)
	return action, nil
}

// Confirm executes a pending action. Tokens are single use.
func (s *adminService) Confirm(ctx context.Context, token, actorID string) (*models.AdminOutcome, error) {
	action, err := s.take(token, actorID)
	if err != nil {
		return nil, err
	}

	var outcome *models.AdminOutcome
	switch action.Kind {
	case models.AdminActionMassAdd:
		outcome, err = s.executeMassAdd(ctx, action)
	case models.AdminActionInflation:
		outcome, err = s.executeInflation(ctx, action)
	case models.AdminActionResetUser:
		outcome, err = s.executeResetUser(ctx, action)
	default:
		err = fmt.Errorf("unknown admin action %q", action.Kind)
	}
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"token":          token,
		"kind":           outcome.Kind,
		"actorID":        actorID,
		"affectedUsers":  outcome.AffectedUsers,
		"primaryDelta":   outcome.PrimaryDelta,
		"secondaryDelta": outcome.SecondaryDelta,
	}).Warn("Admin action executed")

	return outcome, nil
}

func (s *adminService) Cancel(ctx context.Context, token, actorID string) error {
	action, err := s.take(token, actorID)
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"token":   token,
		"kind":    action.Kind,
		"actorID": actorID,
	}).Info("Admin action cancelled")
	return nil
}

// PurgeExpired drops pending actions whose window has passed
func (s *adminService) PurgeExpired() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	purged := 0
	for token, action := range s.pending {
		if action.Expired(now) {
			delete(s.pending, token)
			purged++
		}
	}
	return purged
}

func (s *adminService) executeMassAdd(ctx context.Context, action *models.PendingAction) (*models.AdminOutcome, error) {
	uow, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	accounts, err := uow.AccountRepository().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	outcome := &models.AdminOutcome{Kind: action.Kind}
	for _, account := range accounts {
		before := account.Amount(action.Currency)
		after, err := applyBalanceChange(ctx, uow, account, balanceChange{
			Currency:    action.Currency,
			Delta:       action.Amount,
			Reason:      events.BalanceReasonMassAdd,
			ClampAtZero: true,
		})
		if err != nil {
			return nil, err
		}

		if action.Currency == models.CurrencySoulFragments {
			outcome.SecondaryDelta += after - before
		} else {
			outcome.PrimaryDelta += after - before
		}
		outcome.AffectedUsers++
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return outcome, nil
}

// executeInflation scales both balances, truncating toward zero
func (s *adminService) executeInflation(ctx context.Context, action *models.PendingAction) (*models.AdminOutcome, error) {
	uow, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	accounts, err := uow.AccountRepository().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	multiplier := 1 + action.Percent/100
	outcome := &models.AdminOutcome{Kind: action.Kind}

	for _, account := range accounts {
		for _, currency := range []models.Currency{models.CurrencyReiatsu, models.CurrencySoulFragments} {
			before := account.Amount(currency)
			target := int64(float64(before) * multiplier)

			after, err := applyBalanceChange(ctx, uow, account, balanceChange{
				Currency:    currency,
				Delta:       target - before,
				Reason:      events.BalanceReasonInflation,
				ClampAtZero: true,
			})
			if err != nil {
				return nil, err
			}

			if currency == models.CurrencySoulFragments {
				outcome.SecondaryDelta += after - before
			} else {
				outcome.PrimaryDelta += after - before
			}
		}
		outcome.AffectedUsers++
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return outcome, nil
}

// executeResetUser replaces the account with a fresh one. Bets already on
// offers stay there and settle against the new account.
func (s *adminService) executeResetUser(ctx context.Context, action *models.PendingAction) (*models.AdminOutcome, error) {
	uow, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	repo := uow.AccountRepository()
	old, err := repo.Get(ctx, action.TargetUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account %s: %w", action.TargetUserID, err)
	}

	displayName := ""
	var oldPrimary, oldSecondary int64
	if old != nil {
		displayName = old.DisplayName
		oldPrimary, oldSecondary = old.Balance, old.SecondaryBalance
		if err := repo.Delete(ctx, action.TargetUserID); err != nil {
			return nil, fmt.Errorf("failed to delete account %s: %w", action.TargetUserID, err)
		}
	}

	fresh := models.NewUserAccount(action.TargetUserID, displayName, s.config.StartingBalance, s.now())
	if err := repo.Create(ctx, fresh); err != nil {
		return nil, fmt.Errorf("failed to create account %s: %w", action.TargetUserID, err)
	}

	if fresh.Balance != oldPrimary {
		uow.EventBus().Publish(events.BalanceChangeEvent{
			UserID:       fresh.ID,
			Currency:     models.CurrencyReiatsu,
			OldBalance:   oldPrimary,
			NewBalance:   fresh.Balance,
			ChangeAmount: fresh.Balance - oldPrimary,
			Reason:       events.BalanceReasonReset,
		})
	}
	if oldSecondary != 0 {
		uow.EventBus().Publish(events.BalanceChangeEvent{
			UserID:       fresh.ID,
			Currency:     models.CurrencySoulFragments,
			OldBalance:   oldSecondary,
			NewBalance:   0,
			ChangeAmount: -oldSecondary,
			Reason:       events.BalanceReasonReset,
		})
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &models.AdminOutcome{
		Kind:           action.Kind,
		AffectedUsers:  1,
		PrimaryDelta:   fresh.Balance - oldPrimary,
		SecondaryDelta: -oldSecondary,
		TargetUserID:   action.TargetUserID,
	}, nil
}

func (s *adminService) accountCount(ctx context.Context) (int, error) {
	uow, err := s.begin(ctx)
	if err != nil {
		return 0, err
	}
	defer uow.Rollback()

	accounts, err := uow.AccountRepository().List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list accounts: %w", err)
	}
	return len(accounts), nil
}

// backupDocument is the on-disk layout of a backup file
type backupDocument struct {
	Timestamp time.Time        `json:"timestamp"`
	BackupBy  string           `json:"backup_by"`
	Snapshot  *models.Snapshot `json:"snapshot"`
}

// Backup writes the committed ledger to dir. An empty dir uses the configured backup directory.
func (s *adminService) Backup(ctx context.Context, actorID, dir string) (*models.BackupResult, error) {
	if dir == "" {
		dir = s.config.BackupDir
	}

	snapshot, err := s.readSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	doc := backupDocument{Timestamp: now, BackupBy: actorID, Snapshot: snapshot}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}
	path := filepath.Join(dir, BackupFilePrefix+now.Format("20060102_150405")+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write backup %s: %w", path, err)
	}

	log.WithFields(log.Fields{
		"path":    path,
		"actorID": actorID,
		"users":   len(snapshot.Accounts),
	}).Info("Backup created")

	return &models.BackupResult{
		Path:       path,
		CreatedBy:  actorID,
		UserCount:  len(snapshot.Accounts),
		OfferCount: len(snapshot.Offers) + len(snapshot.Archive),
		CreatedAt:  now,
	}, nil
}

// readSnapshot rebuilds the committed ledger through the repositories
func (s *adminService) readSnapshot(ctx context.Context) (*models.Snapshot, error) {
	uow, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	snapshot := models.NewSnapshot()

	accounts, err := uow.AccountRepository().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	for _, a := range accounts {
		snapshot.Accounts[a.ID] = a
	}

	active, err := uow.OfferRepository().ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	for _, o := range active {
		snapshot.Offers[o.MatchID] = o
	}

	archived, err := uow.OfferRepository().ListArchived(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list offer history: %w", err)
	}
	for _, o := range archived {
		snapshot.Archive[o.MatchID] = o
	}

	snapshot.Economy, err = uow.EconomyRepository().Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read economy state: %w", err)
	}
	return snapshot, nil
}

// RunPendingSweeper purges expired admin confirmations until ctx is done
func RunPendingSweeper(ctx context.Context, admin AdminService, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := admin.PurgeExpired(); n > 0 {
				log.WithField("purged", n).Debug("Purged expired admin confirmations")
			}
		}
	}
}
