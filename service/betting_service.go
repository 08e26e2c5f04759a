package service

import (
	"context"
	"fmt"

	"bookie/config"
	"bookie/events"
	"bookie/models"

	log "github.com/sirupsen/logrus"
)

// bettingService implements the BettingService interface
type bettingService struct {
	base
}

// NewBettingService creates a new bet engine
func NewBettingService(uowFactory UnitOfWorkFactory, cfg *config.Config, opts ...Option) BettingService {
	return &bettingService{base: newBase(uowFactory, cfg, opts)}
}

// PlaceBet debits the stake and records the bet on both the offer and the account
func (s *bettingService) PlaceBet(ctx context.Context, userID, displayName, matchID, teamChoice string, stake int64) (*models.BetReceipt, error) {
	uow, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := ensureNotFrozen(ctx, uow); err != nil {
		return nil, err
	}

	offer, err := requireActiveOffer(ctx, uow, matchID)
	if err != nil {
		return nil, err
	}
	if offer.Status != models.OfferStatusOpen {
		return nil, newError(KindInvalidStateTransition, "betting on %s is %s", matchID, offer.Status)
	}

	side, ok := offer.ResolveTeam(teamChoice)
	if !ok {
		return nil, newError(KindInvalidTeamChoice,
			"%q does not match exactly one of %s (1) or %s (2)", teamChoice, offer.Team1, offer.Team2)
	}

	if _, exists := offer.Bets[userID]; exists {
		return nil, newError(KindDuplicateBet, "you already have a bet on %s", matchID)
	}

	if stake <= 0 {
		return nil, newError(KindInvalidParameter, "bet amount must be positive")
	}
	if stake < s.config.MinimumBet {
		return nil, newError(KindInvalidParameter, "minimum bet is %d %s", s.config.MinimumBet, models.CurrencyReiatsu.DisplayName())
	}
	if !models.ReturnFits(stake, offer.ProfitPercent) {
		return nil, newError(KindInvalidParameter, "a %d bet at %d%% profit exceeds the payout limit", stake, offer.ProfitPercent)
	}

	account, err := s.loadOrCreateAccount(ctx, uow, userID, displayName)
	if err != nil {
		return nil, err
	}

	newBalance, err := applyBalanceChange(ctx, uow, account, balanceChange{
		Delta:   -stake,
		Reason:  events.BalanceReasonBetPlaced,
		MatchID: matchID,
	})
	if err != nil {
		return nil, err
	}

	bet := &models.Bet{
		UserID:          userID,
		Team:            side,
		Stake:           stake,
		PotentialReturn: models.PotentialReturn(stake, offer.ProfitPercent),
		DisplayName:     account.DisplayName,
		PlacedAt:        s.now(),
	}
	offer.AddBet(bet)

	account.ActiveBets = append(account.ActiveBets, models.ActiveBetRef{
		MatchID:          matchID,
		Team:             side,
		Stake:            stake,
		PotentialReturn:  bet.PotentialReturn,
		MatchDescription: offer.Description(),
	})

	if err := uow.AccountRepository().Update(ctx, account); err != nil {
		return nil, fmt.Errorf("failed to update account %s: %w", userID, err)
	}
	if err := uow.OfferRepository().Update(ctx, offer); err != nil {
		return nil, fmt.Errorf("failed to update offer %s: %w", matchID, err)
	}

	uow.EventBus().Publish(events.BetPlacedEvent{
		UserID:          userID,
		MatchID:         matchID,
		Team:            side,
		Stake:           stake,
		PotentialReturn: bet.PotentialReturn,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"userID":          userID,
		"matchID":         matchID,
		"team":            side.Key(),
		"stake":           stake,
		"potentialReturn": bet.PotentialReturn,
	}).Info("Bet placed")

	return &models.BetReceipt{
		Offer:      offer,
		Bet:        bet,
		TeamLabel:  offer.TeamLabel(side),
		NewBalance: newBalance,
	}, nil
}

// CancelBet refunds the stake of a bet on an open offer
func (s *bettingService) CancelBet(ctx context.Context, userID, matchID string) (*models.CancelReceipt, error) {
	uow, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := ensureNotFrozen(ctx, uow); err != nil {
		return nil, err
	}

	offer, err := requireActiveOffer(ctx, uow, matchID)
	if err != nil {
		return nil, err
	}
	if _, ok := offer.Bets[userID]; !ok {
		return nil, newError(KindNotFound, "you have no bet on %s", matchID)
	}
	if offer.Status != models.OfferStatusOpen {
		return nil, newError(KindInvalidStateTransition, "bets on %s can no longer be cancelled", matchID)
	}

	account, err := requireAccount(ctx, uow, userID)
	if err != nil {
		return nil, err
	}

	bet := offer.RemoveBet(userID)
	account.RemoveActiveBet(matchID)

	newBalance, err := applyBalanceChange(ctx, uow, account, balanceChange{
		Delta:   bet.Stake,
		Reason:  events.BalanceReasonBetCancelled,
		MatchID: matchID,
	})
	if err != nil {
		return nil, err
	}

	if err := uow.OfferRepository().Update(ctx, offer); err != nil {
		return nil, fmt.Errorf("failed to update offer %s: %w", matchID, err)
	}

	uow.EventBus().Publish(events.BetCancelledEvent{
		UserID:  userID,
		MatchID: matchID,
		Team:    bet.Team,
		Stake:   bet.Stake,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"userID":  userID,
		"matchID": matchID,
		"refund":  bet.Stake,
	}).Info("Bet cancelled")

	return &models.CancelReceipt{
		Offer:      offer,
		Bet:        bet,
		TeamLabel:  offer.TeamLabel(bet.Team),
		NewBalance: newBalance,
	}, nil
}

// ListUserBets joins the account's active bet refs with the live offers.
// Users without an account simply have no bets.
func (s *bettingService) ListUserBets(ctx context.Context, userID string) (*models.UserBetSummary, error) {
	uow, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	summary := &models.UserBetSummary{Bets: []models.UserBetView{}}

	account, err := uow.AccountRepository().Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account %s: %w", userID, err)
	}
	if account == nil {
		return summary, nil
	}

	for _, ref := range account.ActiveBets {
		view := models.UserBetView{Ref: ref, Status: models.OfferStatusCompleted}

		offer, err := uow.OfferRepository().GetActive(ctx, ref.MatchID)
		if err != nil {
			return nil, fmt.Errorf("failed to get offer %s: %w", ref.MatchID, err)
		}
		if offer != nil {
			view.Status = offer.Status
			view.TeamLabel = offer.TeamLabel(ref.Team)
		}

		summary.Bets = append(summary.Bets, view)
		summary.TotalStake += ref.Stake
		summary.TotalPotentialReturn += ref.PotentialReturn
	}

	return summary, nil
}
