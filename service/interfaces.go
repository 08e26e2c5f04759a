package service

import (
	"context"

	"bookie/events"
	"bookie/models"
)

// AccountRepository defines access to user accounts inside a unit of work
type AccountRepository interface {
	// Get returns the account or nil when it does not exist
	Get(ctx context.Context, id string) (*models.UserAccount, error)

	// Create inserts a new account, failing if the id is taken
	Create(ctx context.Context, account *models.UserAccount) error

	// Update stores the account and stamps UpdatedAt
	Update(ctx context.Context, account *models.UserAccount) error

	// Delete removes an account
	Delete(ctx context.Context, id string) error

	// List returns all accounts ordered by id
	List(ctx context.Context) ([]*models.UserAccount, error)
}

// OfferRepository defines access to active and archived offers
type OfferRepository interface {
	// GetActive returns an open or locked offer, or nil
	GetActive(ctx context.Context, matchID string) (*models.Offer, error)

	// GetArchived returns a completed offer, or nil
	GetArchived(ctx context.Context, matchID string) (*models.Offer, error)

	// Exists reports whether the id is used by an active or archived offer
	Exists(ctx context.Context, matchID string) (bool, error)

	// Create inserts a new active offer
	Create(ctx context.Context, offer *models.Offer) error

	// Update stores an active offer
	Update(ctx context.Context, offer *models.Offer) error

	// Archive moves an active offer into the archive
	Archive(ctx context.Context, matchID string) error

	// ListActive returns active offers ordered by creation time
	ListActive(ctx context.Context) ([]*models.Offer, error)

	// ListArchived returns completed offers, most recently completed first.
	// A limit <= 0 returns all of them.
	ListArchived(ctx context.Context, limit int) ([]*models.Offer, error)
}

// EconomyRepository defines access to the global economy flag
type EconomyRepository interface {
	Get(ctx context.Context) (models.EconomyState, error)
	Set(ctx context.Context, state models.EconomyState) error
}

// SnapshotStore persists the complete ledger
type SnapshotStore interface {
	// Load returns the last saved snapshot, or an empty one when nothing was saved
	Load(ctx context.Context) (*models.Snapshot, error)

	// Save durably replaces the stored snapshot
	Save(ctx context.Context, snapshot *models.Snapshot) error

	Close() error
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction, serialising against all other units of work
	Begin(ctx context.Context) error

	// Commit persists the working state and publishes pending events
	Commit() error

	// Rollback discards the working state. It is a no-op after Commit.
	Rollback() error

	// Repository getters
	AccountRepository() AccountRepository
	OfferRepository() OfferRepository
	EconomyRepository() EconomyRepository

	// EventBus returns the transactional event bus for this unit of work
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// OfferService defines the offer registry operations
type OfferService interface {
	// CreateOffer publishes a new open offer
	CreateOffer(ctx context.Context, matchID, team1, team2 string, profitPercent int64) (*models.Offer, error)

	// LockOffer stops betting on an open offer
	LockOffer(ctx context.Context, matchID string) (*models.Offer, error)

	// UnlockOffer reopens a locked offer
	UnlockOffer(ctx context.Context, matchID string) (*models.Offer, error)

	// GetOffer returns an active offer
	GetOffer(ctx context.Context, matchID string) (*models.Offer, error)

	// GetArchivedOffer returns a completed offer
	GetArchivedOffer(ctx context.Context, matchID string) (*models.Offer, error)

	// ListOpenOrLocked returns active offers by creation time
	ListOpenOrLocked(ctx context.Context) ([]*models.Offer, error)

	// ListHistory returns completed offers, most recent first
	ListHistory(ctx context.Context, limit int) ([]*models.Offer, error)
}

// BettingService defines bet placement and cancellation
type BettingService interface {
	// PlaceBet stakes primary currency on one side of an open offer
	PlaceBet(ctx context.Context, userID, displayName, matchID, teamChoice string, stake int64) (*models.BetReceipt, error)

	// CancelBet refunds a bet on an open offer
	CancelBet(ctx context.Context, userID, matchID string) (*models.CancelReceipt, error)

	// ListUserBets returns the user's active bets joined with offer state
	ListUserBets(ctx context.Context, userID string) (*models.UserBetSummary, error)
}

// SettlementService defines offer settlement
type SettlementService interface {
	// SettleOffer pays winners and archives the offer
	SettleOffer(ctx context.Context, matchID string, winningTeam int) (*models.SettlementResult, error)
}

// UserService defines account lifecycle operations
type UserService interface {
	// GetOrCreateAccount returns the account, creating it with the starting balance if needed
	GetOrCreateAccount(ctx context.Context, userID, displayName string) (*models.UserAccount, error)

	// GetAccount returns an existing account
	GetAccount(ctx context.Context, userID string) (*models.UserAccount, error)

	// Transfer moves primary currency between users, charging a fee
	Transfer(ctx context.Context, fromID, fromName, toID, toName string, amount int64) (*models.TransferResult, error)

	// Leaderboard returns the richest accounts
	Leaderboard(ctx context.Context, limit int) ([]*models.UserAccount, error)
}

// AccountAdminService defines direct admin edits of a single account
type AccountAdminService interface {
	SetCurrency(ctx context.Context, userID string, currency models.Currency, amount int64) (*models.CurrencyChange, error)
	AdjustCurrency(ctx context.Context, userID string, currency models.Currency, delta int64) (*models.CurrencyChange, error)
	SetLevel(ctx context.Context, userID string, level int) (*models.UserAccount, error)
	SetExperience(ctx context.Context, userID string, exp int64) (*models.UserAccount, error)
	SetRank(ctx context.Context, userID, rank string) (*models.UserAccount, error)
	GrantPower(ctx context.Context, userID string, kind models.PowerKind, name string) (*models.UserAccount, error)
	RemovePower(ctx context.Context, userID string, kind models.PowerKind) (*models.UserAccount, error)
}

// EconomyService defines the economy switch and analytics
type EconomyService interface {
	Freeze(ctx context.Context, actorID string) (models.EconomyState, error)
	Unfreeze(ctx context.Context, actorID string) (models.EconomyState, error)
	IsFrozen(ctx context.Context) (bool, error)
	Analytics(ctx context.Context) (*models.EconomyAnalytics, error)
}

// AdminService defines two-phase bulk operations and backups
type AdminService interface {
	ProposeMassAdd(ctx context.Context, actorID string, currency models.Currency, amount int64) (*models.PendingAction, error)
	ProposeInflation(ctx context.Context, actorID string, percent float64) (*models.PendingAction, error)
	ProposeResetUser(ctx context.Context, actorID, targetUserID string) (*models.PendingAction, error)

	// Confirm executes a pending action if it has not expired
	Confirm(ctx context.Context, token, actorID string) (*models.AdminOutcome, error)

	// Cancel drops a pending action
	Cancel(ctx context.Context, token, actorID string) error

	// PurgeExpired removes expired pending actions and returns how many were dropped
	PurgeExpired() int

	// Backup writes the committed ledger to a timestamped file in dir
	Backup(ctx context.Context, actorID, dir string) (*models.BackupResult, error)
}
