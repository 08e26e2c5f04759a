package service

import (
	"context"
	"fmt"

	"bookie/config"
	"bookie/events"
	"bookie/models"

	log "github.com/sirupsen/logrus"
)

// settlementService implements the SettlementService interface
type settlementService struct {
	base
}

// NewSettlementService creates a new settlement engine
func NewSettlementService(uowFactory UnitOfWorkFactory, cfg *config.Config, opts ...Option) SettlementService {
	return &settlementService{base: newBase(uowFactory, cfg, opts)}
}

// SettleOffer pays every bet on the winning side its potential return and
// archives the offer. Losing stakes were already debited at placement.
func (s *settlementService) SettleOffer(ctx context.Context, matchID string, winningTeam int) (*models.SettlementResult, error) {
	uow, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	offer, err := requireActiveOffer(ctx, uow, matchID)
	if err != nil {
		return nil, err
	}

	winner := models.TeamSide(winningTeam)
	if !winner.Valid() {
		return nil, newError(KindInvalidParameter, "winning team must be 1 or 2")
	}

	result := &models.SettlementResult{
		Offer:   offer,
		Winners: []models.SettlementEntry{},
		Losers:  []models.SettlementEntry{},
	}

	for _, bet := range offer.SortedBets() {
		account, err := uow.AccountRepository().Get(ctx, bet.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to get account %s: %w", bet.UserID, err)
		}

		if bet.Team != winner {
			result.Losers = append(result.Losers, models.SettlementEntry{
				UserID:      bet.UserID,
				DisplayName: bet.DisplayName,
				Stake:       bet.Stake,
				Profit:      -bet.Stake,
			})
			result.TotalLost += bet.Stake

			if account != nil && account.RemoveActiveBet(matchID) {
				if err := uow.AccountRepository().Update(ctx, account); err != nil {
					return nil, fmt.Errorf("failed to update account %s: %w", bet.UserID, err)
				}
			}
			continue
		}

		if account == nil {
			log.WithFields(log.Fields{
				"matchID": matchID,
				"userID":  bet.UserID,
				"payout":  bet.PotentialReturn,
			}).Warn("Winning bet has no account, payout skipped")
			continue
		}

		account.RemoveActiveBet(matchID)
		account.TotalWinnings += bet.Profit()
		if _, err := applyBalanceChange(ctx, uow, account, balanceChange{
			Delta:   bet.PotentialReturn,
			Reason:  events.BalanceReasonBetWon,
			MatchID: matchID,
		}); err != nil {
			return nil, err
		}

		result.Winners = append(result.Winners, models.SettlementEntry{
			UserID:      bet.UserID,
			DisplayName: bet.DisplayName,
			Stake:       bet.Stake,
			Return:      bet.PotentialReturn,
			Profit:      bet.Profit(),
		})
		result.TotalDistributed += bet.PotentialReturn
		result.WinnerStakes += bet.Stake
	}

	result.ProfitPaid = result.TotalDistributed - result.WinnerStakes
	result.HouseNet = result.TotalLost - result.ProfitPaid

	now := s.now()
	offer.Status = models.OfferStatusCompleted
	offer.CompletedAt = &now
	offer.WinningTeam = &winner

	if err := uow.OfferRepository().Update(ctx, offer); err != nil {
		return nil, fmt.Errorf("failed to update offer %s: %w", matchID, err)
	}
	if err := uow.OfferRepository().Archive(ctx, matchID); err != nil {
		return nil, fmt.Errorf("failed to archive offer %s: %w", matchID, err)
	}

	uow.EventBus().Publish(events.OfferSettledEvent{
		MatchID:          matchID,
		WinningTeam:      winner,
		Winners:          len(result.Winners),
		Losers:           len(result.Losers),
		TotalDistributed: result.TotalDistributed,
		TotalLost:        result.TotalLost,
		HouseNet:         result.HouseNet,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"matchID":          matchID,
		"winningTeam":      winner.Key(),
		"winners":          len(result.Winners),
		"losers":           len(result.Losers),
		"totalDistributed": result.TotalDistributed,
		"houseNet":         result.HouseNet,
	}).Info("Offer settled")

	return result, nil
}
