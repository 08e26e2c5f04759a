package service

import (
	"context"
	"fmt"
	"strings"

	"bookie/config"
	"bookie/events"
	"bookie/models"

	log "github.com/sirupsen/logrus"
)

// offerService implements the OfferService interface
type offerService struct {
	base
}

// NewOfferService creates a new offer registry service
func NewOfferService(uowFactory UnitOfWorkFactory, cfg *config.Config, opts ...Option) OfferService {
	return &offerService{base: newBase(uowFactory, cfg, opts)}
}

// CreateOffer publishes a new open offer. Ids are unique across active and archived offers.
func (s *offerService) CreateOffer(ctx context.Context, matchID, team1, team2 string, profitPercent int64) (*models.Offer, error) {
	matchID = strings.TrimSpace(matchID)
	team1 = strings.TrimSpace(team1)
	team2 = strings.TrimSpace(team2)

	if matchID == "" {
		return nil, newError(KindInvalidParameter, "match id is required")
	}
	if team1 == "" || team2 == "" {
		return nil, newError(KindInvalidParameter, "both team names are required")
	}
	if strings.EqualFold(team1, team2) {
		return nil, newError(KindInvalidParameter, "teams must have different names")
	}
	if profitPercent < 0 {
		return nil, newError(KindInvalidParameter, "profit percentage cannot be negative")
	}
	if profitPercent > s.config.MaxProfitPercent {
		return nil, newError(KindInvalidParameter, "profit percentage cannot exceed %d", s.config.MaxProfitPercent)
	}

	uow, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	exists, err := uow.OfferRepository().Exists(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to check offer %s: %w", matchID, err)
	}
	if exists {
		return nil, newError(KindDuplicateID, "match id %s already exists", matchID)
	}

	offer := models.NewOffer(matchID, team1, team2, profitPercent, s.now())
	if err := uow.OfferRepository().Create(ctx, offer); err != nil {
		return nil, fmt.Errorf("failed to create offer: %w", err)
	}

	uow.EventBus().Publish(events.OfferCreatedEvent{
		MatchID:       matchID,
		Team1:         team1,
		Team2:         team2,
		ProfitPercent: profitPercent,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"matchID":       matchID,
		"team1":         team1,
		"team2":         team2,
		"profitPercent": profitPercent,
	}).Info("Offer created")

	return offer, nil
}

// LockOffer closes an open offer to new bets
func (s *offerService) LockOffer(ctx context.Context, matchID string) (*models.Offer, error) {
	return s.transition(ctx, matchID, models.OfferStatusLocked)
}

// UnlockOffer reopens a locked offer
func (s *offerService) UnlockOffer(ctx context.Context, matchID string) (*models.Offer, error) {
	return s.transition(ctx, matchID, models.OfferStatusOpen)
}

func (s *offerService) transition(ctx context.Context, matchID string, target models.OfferStatus) (*models.Offer, error) {
	uow, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	offer, err := requireActiveOffer(ctx, uow, matchID)
	if err != nil {
		return nil, err
	}

	oldStatus := offer.Status
	switch {
	case oldStatus == models.OfferStatusCompleted:
		return nil, newError(KindInvalidStateTransition, "offer %s is already completed", matchID)
	case oldStatus == target:
		return nil, newError(KindInvalidStateTransition, "offer %s is already %s", matchID, target)
	}

	offer.Status = target
	if target == models.OfferStatusLocked {
		now := s.now()
		offer.LockedAt = &now
	} else {
		offer.LockedAt = nil
	}

	if err := uow.OfferRepository().Update(ctx, offer); err != nil {
		return nil, fmt.Errorf("failed to update offer: %w", err)
	}

	uow.EventBus().Publish(events.OfferStateChangeEvent{
		MatchID:  matchID,
		OldState: oldStatus,
		NewState: target,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"matchID":  matchID,
		"oldState": oldStatus,
		"newState": target,
	}).Info("Offer state changed")

	return offer, nil
}

func (s *offerService) GetOffer(ctx context.Context, matchID string) (*models.Offer, error) {
	uow, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	return requireActiveOffer(ctx, uow, matchID)
}

func (s *offerService) GetArchivedOffer(ctx context.Context, matchID string) (*models.Offer, error) {
	uow, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	offer, err := uow.OfferRepository().GetArchived(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get archived offer %s: %w", matchID, err)
	}
	if offer == nil {
		return nil, newError(KindNotFound, "no completed offer %s", matchID)
	}
	return offer, nil
}

func (s *offerService) ListOpenOrLocked(ctx context.Context) ([]*models.Offer, error) {
	uow, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	offers, err := uow.OfferRepository().ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	return offers, nil
}

// ListHistory returns completed offers, most recent first. A non-positive
// limit falls back to the configured history size.
func (s *offerService) ListHistory(ctx context.Context, limit int) ([]*models.Offer, error) {
	if limit <= 0 {
		limit = s.config.HistoryLimit
	}

	uow, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	offers, err := uow.OfferRepository().ListArchived(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list offer history: %w", err)
	}
	return offers, nil
}

// requireActiveOffer returns an open or locked offer or ErrNotFound
func requireActiveOffer(ctx context.Context, uow UnitOfWork, matchID string) (*models.Offer, error) {
	offer, err := uow.OfferRepository().GetActive(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get offer %s: %w", matchID, err)
	}
	if offer == nil {
		return nil, newError(KindNotFound, "offer %s not found", matchID)
	}
	return offer, nil
}
