package testutil

import (
	"time"

	"bookie/models"
)

// FixedTime is the reference instant used by fixtures
var FixedTime = time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)

// CreateTestAccount creates an account with the default starting balance
func CreateTestAccount(id, name string) *models.UserAccount {
	return models.NewUserAccount(id, name, 5000, FixedTime)
}

// CreateTestAccountWithBalance creates an account with a specific balance
func CreateTestAccountWithBalance(id, name string, balance int64) *models.UserAccount {
	account := CreateTestAccount(id, name)
	account.Balance = balance
	return account
}

// CreateTestOffer creates an open offer without bets
func CreateTestOffer(matchID, team1, team2 string, profitPercent int64) *models.Offer {
	return models.NewOffer(matchID, team1, team2, profitPercent, FixedTime)
}

// AddTestBet places a bet on the offer and mirrors it on the account
func AddTestBet(offer *models.Offer, account *models.UserAccount, side models.TeamSide, stake int64) *models.Bet {
	bet := &models.Bet{
		UserID:          account.ID,
		Team:            side,
		Stake:           stake,
		PotentialReturn: models.PotentialReturn(stake, offer.ProfitPercent),
		DisplayName:     account.DisplayName,
		PlacedAt:        FixedTime,
	}
	offer.AddBet(bet)
	account.Balance -= stake
	account.ActiveBets = append(account.ActiveBets, models.ActiveBetRef{
		MatchID:          offer.MatchID,
		Team:             side,
		Stake:            stake,
		PotentialReturn:  bet.PotentialReturn,
		MatchDescription: offer.Description(),
	})
	return bet
}

// CreateTestSnapshot builds a snapshot holding the given accounts and offers
func CreateTestSnapshot(accounts []*models.UserAccount, offers []*models.Offer) *models.Snapshot {
	snapshot := models.NewSnapshot()
	for _, a := range accounts {
		snapshot.Accounts[a.ID] = a
	}
	for _, o := range offers {
		if o.Status == models.OfferStatusCompleted {
			snapshot.Archive[o.MatchID] = o
		} else {
			snapshot.Offers[o.MatchID] = o
		}
	}
	return snapshot
}
