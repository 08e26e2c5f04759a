package models

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// TeamSide identifies one of the two sides of an offer
type TeamSide int

const (
	TeamOne TeamSide = 1
	TeamTwo TeamSide = 2
)

func (t TeamSide) Valid() bool {
	return t == TeamOne || t == TeamTwo
}

// Key returns the canonical choice key, "team1" or "team2"
func (t TeamSide) Key() string {
	return fmt.Sprintf("team%d", int(t))
}

func (t TeamSide) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid team side %d", int(t))
	}
	return []byte(t.Key()), nil
}

func (t *TeamSide) UnmarshalText(b []byte) error {
	switch strings.ToLower(string(b)) {
	case "team1", "1":
		*t = TeamOne
	case "team2", "2":
		*t = TeamTwo
	default:
		return fmt.Errorf("invalid team side %q", string(b))
	}
	return nil
}

// OfferStatus represents the lifecycle state of an offer
type OfferStatus string

const (
	OfferStatusOpen      OfferStatus = "open"
	OfferStatusLocked    OfferStatus = "locked"
	OfferStatusCompleted OfferStatus = "completed"
)

// Bet is a single user's stake on one side of an offer
type Bet struct {
	UserID          string    `json:"user_id"`
	Team            TeamSide  `json:"team"`
	Stake           int64     `json:"amount"`
	PotentialReturn int64     `json:"potential_return"`
	DisplayName     string    `json:"user_name"`
	PlacedAt        time.Time `json:"placed_at"`
}

// Profit is the amount paid on top of the returned stake
func (b *Bet) Profit() int64 {
	return b.PotentialReturn - b.Stake
}

// PotentialReturn computes stake + floor(stake*profit/100) for non-negative inputs
func PotentialReturn(stake, profitPercent int64) int64 {
	return stake + stake*profitPercent/100
}

// ReturnFits reports whether PotentialReturn(stake, profitPercent) is representable
func ReturnFits(stake, profitPercent int64) bool {
	if stake < 0 || profitPercent < 0 {
		return false
	}
	if profitPercent == 0 || stake == 0 {
		return true
	}
	if stake > math.MaxInt64/profitPercent {
		return false
	}
	return stake*profitPercent/100 <= math.MaxInt64-stake
}

// Offer is an admin-published fixed-odds match
type Offer struct {
	MatchID         string          `json:"id"`
	Team1           string          `json:"team1"`
	Team2           string          `json:"team2"`
	ProfitPercent   int64           `json:"profit_percentage"`
	Status          OfferStatus     `json:"status"`
	CreatedAt       time.Time       `json:"created_at"`
	LockedAt        *time.Time      `json:"locked_at,omitempty"`
	CompletedAt     *time.Time      `json:"completed_at,omitempty"`
	Bets            map[string]*Bet `json:"bets"`
	TotalTeam1Stake int64           `json:"total_team1_bets"`
	TotalTeam2Stake int64           `json:"total_team2_bets"`
	BetCount        int             `json:"total_bets_count"`
	WinningTeam     *TeamSide       `json:"winning_team,omitempty"`
}

// UnmarshalJSON also accepts the offset-less timestamps of older data files
func (o *Offer) UnmarshalJSON(data []byte) error {
	type plain Offer
	aux := struct {
		*plain
		CreatedAt   looseTime  `json:"created_at"`
		LockedAt    *looseTime `json:"locked_at"`
		CompletedAt *looseTime `json:"completed_at"`
	}{plain: (*plain)(o)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	o.CreatedAt = time.Time(aux.CreatedAt)
	o.LockedAt = aux.LockedAt.ptr()
	o.CompletedAt = aux.CompletedAt.ptr()
	return nil
}

// UnmarshalJSON also accepts the offset-less timestamps of older data files
func (b *Bet) UnmarshalJSON(data []byte) error {
	type plain Bet
	aux := struct {
		*plain
		PlacedAt looseTime `json:"placed_at"`
	}{plain: (*plain)(b)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	b.PlacedAt = time.Time(aux.PlacedAt)
	return nil
}

// NewOffer creates an open offer with zeroed totals
func NewOffer(matchID, team1, team2 string, profitPercent int64, now time.Time) *Offer {
	return &Offer{
		MatchID:       matchID,
		Team1:         team1,
		Team2:         team2,
		ProfitPercent: profitPercent,
		Status:        OfferStatusOpen,
		CreatedAt:     now,
		Bets:          make(map[string]*Bet),
	}
}

// TeamLabel returns the display label of a side
func (o *Offer) TeamLabel(side TeamSide) string {
	if side == TeamTwo {
		return o.Team2
	}
	return o.Team1
}

// Description renders "Team1 vs Team2"
func (o *Offer) Description() string {
	return fmt.Sprintf("%s vs %s", o.Team1, o.Team2)
}

func (o *Offer) TotalPool() int64 {
	return o.TotalTeam1Stake + o.TotalTeam2Stake
}

// TeamStake returns the running stake total for a side
func (o *Offer) TeamStake(side TeamSide) int64 {
	if side == TeamTwo {
		return o.TotalTeam2Stake
	}
	return o.TotalTeam1Stake
}

// ResolveTeam maps a free-form choice onto a side. A choice is accepted when it
// is the side index, the canonical key, or the team label (case-insensitive),
// and only when exactly one side matches.
func (o *Offer) ResolveTeam(choice string) (TeamSide, bool) {
	choice = strings.ToLower(strings.TrimSpace(choice))
	if choice == "" {
		return 0, false
	}

	var matches []TeamSide
	for _, side := range []TeamSide{TeamOne, TeamTwo} {
		label := strings.ToLower(strings.TrimSpace(o.TeamLabel(side)))
		if choice == fmt.Sprint(int(side)) || choice == side.Key() || choice == label {
			matches = append(matches, side)
		}
	}

	if len(matches) != 1 {
		return 0, false
	}
	return matches[0], true
}

// AddBet records a bet and updates the running totals
func (o *Offer) AddBet(bet *Bet) {
	if o.Bets == nil {
		o.Bets = make(map[string]*Bet)
	}
	o.Bets[bet.UserID] = bet
	o.adjustTotals(bet.Team, bet.Stake)
	o.BetCount++
}

// RemoveBet removes a user's bet, reverting the totals. Returns nil if absent.
func (o *Offer) RemoveBet(userID string) *Bet {
	bet, ok := o.Bets[userID]
	if !ok {
		return nil
	}
	delete(o.Bets, userID)
	o.adjustTotals(bet.Team, -bet.Stake)
	o.BetCount--
	return bet
}

func (o *Offer) adjustTotals(side TeamSide, delta int64) {
	if side == TeamTwo {
		o.TotalTeam2Stake += delta
		return
	}
	o.TotalTeam1Stake += delta
}

// SortedBets returns bets ordered by placement time, then user id
func (o *Offer) SortedBets() []*Bet {
	bets := make([]*Bet, 0, len(o.Bets))
	for _, b := range o.Bets {
		bets = append(bets, b)
	}
	sort.Slice(bets, func(i, j int) bool {
		if !bets[i].PlacedAt.Equal(bets[j].PlacedAt) {
			return bets[i].PlacedAt.Before(bets[j].PlacedAt)
		}
		return bets[i].UserID < bets[j].UserID
	})
	return bets
}

// Verify checks that running totals match the bet map
func (o *Offer) Verify() error {
	var team1, team2 int64
	for userID, bet := range o.Bets {
		if bet.UserID != userID {
			return fmt.Errorf("offer %s: bet keyed by %s belongs to %s", o.MatchID, userID, bet.UserID)
		}
		switch bet.Team {
		case TeamOne:
			team1 += bet.Stake
		case TeamTwo:
			team2 += bet.Stake
		default:
			return fmt.Errorf("offer %s: bet by %s has invalid team %d", o.MatchID, userID, int(bet.Team))
		}
	}
	if team1 != o.TotalTeam1Stake || team2 != o.TotalTeam2Stake {
		return fmt.Errorf("offer %s: totals %d/%d do not match bets %d/%d",
			o.MatchID, o.TotalTeam1Stake, o.TotalTeam2Stake, team1, team2)
	}
	if len(o.Bets) != o.BetCount {
		return fmt.Errorf("offer %s: bet count %d does not match %d bets", o.MatchID, o.BetCount, len(o.Bets))
	}
	return nil
}

// Clone returns a deep copy
func (o *Offer) Clone() *Offer {
	c := *o
	c.Bets = make(map[string]*Bet, len(o.Bets))
	for id, b := range o.Bets {
		bet := *b
		c.Bets[id] = &bet
	}
	if o.LockedAt != nil {
		t := *o.LockedAt
		c.LockedAt = &t
	}
	if o.CompletedAt != nil {
		t := *o.CompletedAt
		c.CompletedAt = &t
	}
	if o.WinningTeam != nil {
		w := *o.WinningTeam
		c.WinningTeam = &w
	}
	return &c
}
