package models

import "time"

// AdminActionKind identifies a bulk operation that needs confirmation
type AdminActionKind string

const (
	AdminActionMassAdd   AdminActionKind = "mass_add"
	AdminActionInflation AdminActionKind = "inflation"
	AdminActionResetUser AdminActionKind = "reset_user"
)

// PendingAction is a proposed bulk operation waiting for its proposer to confirm
type PendingAction struct {
	Token        string
	Kind         AdminActionKind
	ProposedBy   string
	Currency     Currency
	Amount       int64
	Percent      float64
	TargetUserID string
	TargetCount  int
	CreatedAt    time.Time
	ExpiresAt    time.Time
}

// Expired reports whether the confirmation window has passed
func (p *PendingAction) Expired(now time.Time) bool {
	return !now.Before(p.ExpiresAt)
}

// AdminOutcome summarises an executed bulk operation
type AdminOutcome struct {
	Kind           AdminActionKind
	AffectedUsers  int
	PrimaryDelta   int64
	SecondaryDelta int64
	TargetUserID   string
}

// BackupResult describes a written backup file
type BackupResult struct {
	Path       string
	CreatedBy  string
	UserCount  int
	OfferCount int
	CreatedAt  time.Time
}

// CurrencyChange records a single account adjustment made by an admin
type CurrencyChange struct {
	UserID   string
	Currency Currency
	Before   int64
	After    int64
}

func (c CurrencyChange) Delta() int64 {
	return c.After - c.Before
}

// EconomyAnalytics aggregates the whole economy
type EconomyAnalytics struct {
	TotalUsers       int
	TotalReiatsu     int64
	TotalFragments   int64
	AverageReiatsu   int64
	AverageLevel     int
	ActiveBetRefs    int
	ActiveOffers     int
	CompletedOffers  int
	ZanpakutoHolders int
	StandHolders     int
	BothPowers       int
	RankDistribution map[Rank]int
	Frozen           bool
}
