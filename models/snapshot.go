package models

import "time"

// EconomyState holds the global economy switch
type EconomyState struct {
	Frozen   bool       `json:"frozen"`
	FrozenAt *time.Time `json:"frozen_at,omitempty"`
	FrozenBy string     `json:"frozen_by,omitempty"`
}

// Snapshot is the complete persisted ledger
type Snapshot struct {
	Accounts map[string]*UserAccount `json:"user_data"`
	Offers   map[string]*Offer       `json:"active_offers"`
	Archive  map[string]*Offer       `json:"offer_results"`
	Economy  EconomyState            `json:"economy"`
	SavedAt  time.Time               `json:"saved_at"`
}

// NewSnapshot returns an empty ledger
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Accounts: make(map[string]*UserAccount),
		Offers:   make(map[string]*Offer),
		Archive:  make(map[string]*Offer),
	}
}

// Normalize fills nil maps left by partial documents
func (s *Snapshot) Normalize() {
	if s.Accounts == nil {
		s.Accounts = make(map[string]*UserAccount)
	}
	if s.Offers == nil {
		s.Offers = make(map[string]*Offer)
	}
	if s.Archive == nil {
		s.Archive = make(map[string]*Offer)
	}
	for id, a := range s.Accounts {
		if a.ID == "" {
			a.ID = id
		}
		if a.ActiveBets == nil {
			a.ActiveBets = []ActiveBetRef{}
		}
	}
	for _, offers := range []map[string]*Offer{s.Offers, s.Archive} {
		for id, o := range offers {
			if o.MatchID == "" {
				o.MatchID = id
			}
			if o.Bets == nil {
				o.Bets = make(map[string]*Bet)
			}
			for userID, b := range o.Bets {
				if b.UserID == "" {
					b.UserID = userID
				}
			}
		}
	}
}

// Clone returns a deep copy
func (s *Snapshot) Clone() *Snapshot {
	c := &Snapshot{
		Accounts: make(map[string]*UserAccount, len(s.Accounts)),
		Offers:   make(map[string]*Offer, len(s.Offers)),
		Archive:  make(map[string]*Offer, len(s.Archive)),
		Economy:  s.Economy,
		SavedAt:  s.SavedAt,
	}
	if s.Economy.FrozenAt != nil {
		t := *s.Economy.FrozenAt
		c.Economy.FrozenAt = &t
	}
	for id, a := range s.Accounts {
		c.Accounts[id] = a.Clone()
	}
	for id, o := range s.Offers {
		c.Offers[id] = o.Clone()
	}
	for id, o := range s.Archive {
		c.Archive[id] = o.Clone()
	}
	return c
}
