package models

// BetReceipt is returned after a successful bet placement
type BetReceipt struct {
	Offer      *Offer
	Bet        *Bet
	TeamLabel  string
	NewBalance int64
}

// CancelReceipt is returned after a bet is cancelled and refunded
type CancelReceipt struct {
	Offer      *Offer
	Bet        *Bet
	TeamLabel  string
	NewBalance int64
}

// UserBetView joins a user's active bet with the live offer state
type UserBetView struct {
	Ref       ActiveBetRef
	Status    OfferStatus
	TeamLabel string
}

// UserBetSummary lists a user's active bets with totals
type UserBetSummary struct {
	Bets                 []UserBetView
	TotalStake           int64
	TotalPotentialReturn int64
}

func (s *UserBetSummary) PotentialProfit() int64 {
	return s.TotalPotentialReturn - s.TotalStake
}

// SettlementEntry is one bettor's outcome in a settlement
type SettlementEntry struct {
	UserID      string
	DisplayName string
	Stake       int64
	Return      int64
	Profit      int64
}

// SettlementResult summarises a settled offer
type SettlementResult struct {
	Offer            *Offer
	Winners          []SettlementEntry
	Losers           []SettlementEntry
	TotalDistributed int64
	TotalLost        int64
	WinnerStakes     int64
	ProfitPaid       int64
	HouseNet         int64
}

// TransferResult describes a completed transfer
type TransferResult struct {
	Amount        int64
	Fee           int64
	Received      int64
	SenderBalance int64
	RecipientID   string
}
