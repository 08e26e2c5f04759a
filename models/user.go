package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Rank is a Soul Reaper rank shown on a user's profile
type Rank string

const (
	RankAcademyStudent   Rank = "Academy Student"
	RankUnseatedOfficer  Rank = "Unseated Officer"
	RankTwentiethSeat    Rank = "20th Seat"
	RankFifteenthSeat    Rank = "15th Seat"
	RankTenthSeat        Rank = "10th Seat"
	RankFifthSeat        Rank = "5th Seat"
	RankThirdSeat        Rank = "3rd Seat"
	RankLieutenant       Rank = "Lieutenant"
	RankCaptain          Rank = "Captain"
	RankCaptainCommander Rank = "Captain Commander"
)

// Ranks lists every rank from lowest to highest
var Ranks = []Rank{
	RankAcademyStudent, RankUnseatedOfficer, RankTwentiethSeat, RankFifteenthSeat,
	RankTenthSeat, RankFifthSeat, RankThirdSeat, RankLieutenant, RankCaptain, RankCaptainCommander,
}

// ParseRank matches a rank name case-insensitively
func ParseRank(name string) (Rank, bool) {
	name = strings.TrimSpace(name)
	for _, r := range Ranks {
		if strings.EqualFold(string(r), name) {
			return r, true
		}
	}
	return "", false
}

// RankForLevel returns the rank a level earns. Levels below 10 keep the current rank.
func RankForLevel(level int, current Rank) Rank {
	switch {
	case level >= 50:
		return RankCaptainCommander
	case level >= 40:
		return RankCaptain
	case level >= 30:
		return RankLieutenant
	case level >= 20:
		return RankThirdSeat
	case level >= 15:
		return RankFifthSeat
	case level >= 10:
		return RankTenthSeat
	default:
		return current
	}
}

// PowerKind identifies a cosmetic power slot
type PowerKind string

const (
	PowerZanpakuto PowerKind = "zanpakuto"
	PowerStand     PowerKind = "stand"
)

var ZanpakutoNames = []string{
	"Senbonzakura", "Hyorinmaru", "Ryujin Jakka", "Zabimaru", "Wabisuke",
	"Suzumushi", "Benihime", "Shinso", "Kazeshini", "Haineko",
}

var StandNames = []string{
	"Star Platinum", "The World", "Crazy Diamond", "Gold Experience",
	"King Crimson", "Silver Chariot", "Magician's Red", "Hermit Purple",
	"Hierophant Green", "Stone Free",
}

// ParsePowerKind accepts "zanpakuto" or "stand" in any case
func ParsePowerKind(s string) (PowerKind, bool) {
	switch PowerKind(strings.ToLower(strings.TrimSpace(s))) {
	case PowerZanpakuto:
		return PowerZanpakuto, true
	case PowerStand:
		return PowerStand, true
	}
	return "", false
}

// Catalogue returns the power names that can be granted for this kind
func (k PowerKind) Catalogue() []string {
	if k == PowerStand {
		return StandNames
	}
	return ZanpakutoNames
}

// Currency names one of the two account balances
type Currency string

const (
	CurrencyReiatsu       Currency = "reiatsu"
	CurrencySoulFragments Currency = "soul_fragments"
)

func ParseCurrency(s string) (Currency, bool) {
	switch Currency(strings.ToLower(strings.TrimSpace(s))) {
	case CurrencyReiatsu:
		return CurrencyReiatsu, true
	case CurrencySoulFragments:
		return CurrencySoulFragments, true
	}
	return "", false
}

// DisplayName returns the human readable currency name
func (c Currency) DisplayName() string {
	if c == CurrencySoulFragments {
		return "Soul Fragments"
	}
	return "Reiatsu"
}

// ActiveBetRef is the user-side copy of a bet on an unsettled offer
type ActiveBetRef struct {
	MatchID          string   `json:"match_id"`
	Team             TeamSide `json:"team"`
	Stake            int64    `json:"amount"`
	PotentialReturn  int64    `json:"potential_return"`
	MatchDescription string   `json:"match_description"`
}

// UserAccount represents a Discord user's wallet and profile
type UserAccount struct {
	ID               string         `json:"id"`
	DisplayName      string         `json:"display_name"`
	Balance          int64          `json:"reiatsu"`
	SecondaryBalance int64          `json:"soul_fragments"`
	Level            int            `json:"level"`
	Experience       int64          `json:"exp"`
	Rank             Rank           `json:"rank"`
	Zanpakuto        *string        `json:"zanpakuto"`
	Stand            *string        `json:"stand"`
	TotalWinnings    int64          `json:"total_winnings"`
	ActiveBets       []ActiveBetRef `json:"active_bets"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// NewUserAccount builds a fresh account with the starting balance
func NewUserAccount(id, displayName string, startingBalance int64, now time.Time) *UserAccount {
	return &UserAccount{
		ID:          id,
		DisplayName: displayName,
		Balance:     startingBalance,
		Level:       1,
		Rank:        RankAcademyStudent,
		ActiveBets:  []ActiveBetRef{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// UnmarshalJSON also accepts the offset-less timestamps of older data files
func (a *UserAccount) UnmarshalJSON(data []byte) error {
	type plain UserAccount
	aux := struct {
		*plain
		CreatedAt looseTime `json:"created_at"`
		UpdatedAt looseTime `json:"updated_at"`
	}{plain: (*plain)(a)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	a.CreatedAt = time.Time(aux.CreatedAt)
	a.UpdatedAt = time.Time(aux.UpdatedAt)
	return nil
}

// Amount returns the balance held in the given currency
func (a *UserAccount) Amount(c Currency) int64 {
	if c == CurrencySoulFragments {
		return a.SecondaryBalance
	}
	return a.Balance
}

// SetAmount overwrites the balance held in the given currency
func (a *UserAccount) SetAmount(c Currency, amount int64) {
	if c == CurrencySoulFragments {
		a.SecondaryBalance = amount
		return
	}
	a.Balance = amount
}

// Power returns the granted power for a slot, if any
func (a *UserAccount) Power(kind PowerKind) *string {
	if kind == PowerStand {
		return a.Stand
	}
	return a.Zanpakuto
}

func (a *UserAccount) SetPower(kind PowerKind, name *string) {
	if kind == PowerStand {
		a.Stand = name
		return
	}
	a.Zanpakuto = name
}

// FindActiveBet returns the active bet ref for a match
func (a *UserAccount) FindActiveBet(matchID string) (ActiveBetRef, bool) {
	for _, ref := range a.ActiveBets {
		if ref.MatchID == matchID {
			return ref, true
		}
	}
	return ActiveBetRef{}, false
}

// RemoveActiveBet drops every ref for the match and reports whether any existed
func (a *UserAccount) RemoveActiveBet(matchID string) bool {
	kept := a.ActiveBets[:0]
	removed := false
	for _, ref := range a.ActiveBets {
		if ref.MatchID == matchID {
			removed = true
			continue
		}
		kept = append(kept, ref)
	}
	a.ActiveBets = kept
	return removed
}

// Clone returns a deep copy
func (a *UserAccount) Clone() *UserAccount {
	c := *a
	c.ActiveBets = append([]ActiveBetRef{}, a.ActiveBets...)
	if a.Zanpakuto != nil {
		z := *a.Zanpakuto
		c.Zanpakuto = &z
	}
	if a.Stand != nil {
		s := *a.Stand
		c.Stand = &s
	}
	return &c
}
