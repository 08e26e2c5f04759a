package service

import (
	"context"
	"fmt"

	"bookie/config"
	"bookie/events"
	"bookie/models"

	log "github.com/sirupsen/logrus"
)

// economyService implements the EconomyService interface
type economyService struct {
	base
}

// NewEconomyService creates a new economy service
func NewEconomyService(uowFactory UnitOfWorkFactory, cfg *config.Config, opts ...Option) EconomyService {
	return &economyService{base: newBase(uowFactory, cfg, opts)}
}

func (s *economyService) Freeze(ctx context.Context, actorID string) (models.EconomyState, error) {
	return s.setFrozen(ctx, actorID, true)
}

func (s *economyService) Unfreeze(ctx context.Context, actorID string) (models.EconomyState, error) {
	return s.setFrozen(ctx, actorID, false)
}

// setFrozen flips the economy switch. Setting the current value again is a no-op.
func (s *economyService) setFrozen(ctx context.Context, actorID string, frozen bool) (models.EconomyState, error) {
	uow, err := s.begin(ctx)
	if err != nil {
		return models.EconomyState{}, err
	}
	defer uow.Rollback()

	state, err := uow.EconomyRepository().Get(ctx)
	if err != nil {
		return models.EconomyState{}, fmt.Errorf("failed to read economy state: %w", err)
	}
	if state.Frozen == frozen {
		return state, nil
	}

	if frozen {
		now := s.now()
		state = models.EconomyState{Frozen: true, FrozenAt: &now, FrozenBy: actorID}
	} else {
		state = models.EconomyState{}
	}

	if err := uow.EconomyRepository().Set(ctx, state); err != nil {
		return models.EconomyState{}, fmt.Errorf("failed to update economy state: %w", err)
	}

	uow.EventBus().Publish(events.EconomyStateChangeEvent{Frozen: frozen, ActorID: actorID})

	if err := uow.Commit(); err != nil {
		return models.EconomyState{}, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"frozen":  frozen,
		"actorID": actorID,
	}).Warn("Economy state changed")

	return state, nil
}

func (s *economyService) IsFrozen(ctx context.Context) (bool, error) {
	uow, err := s.begin(ctx)
	if err != nil {
		return false, err
	}
	defer uow.Rollback()

	state, err := uow.EconomyRepository().Get(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to read economy state: %w", err)
	}
	return state.Frozen, nil
}

// Analytics aggregates balances, levels, powers and offers across the ledger
func (s *economyService) Analytics(ctx context.Context) (*models.EconomyAnalytics, error) {
	uow, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer uow.Rollback()

	accounts, err := uow.AccountRepository().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	active, err := uow.OfferRepository().ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list offers: %w", err)
	}
	archived, err := uow.OfferRepository().ListArchived(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list offer history: %w", err)
	}
	state, err := uow.EconomyRepository().Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read economy state: %w", err)
	}

	a := &models.EconomyAnalytics{
		TotalUsers:       len(accounts),
		ActiveOffers:     len(active),
		CompletedOffers:  len(archived),
		RankDistribution: make(map[models.Rank]int),
		Frozen:           state.Frozen,
	}

	var levels int
	for _, acc := range accounts {
		a.TotalReiatsu += acc.Balance
		a.TotalFragments += acc.SecondaryBalance
		a.ActiveBetRefs += len(acc.ActiveBets)
		a.RankDistribution[acc.Rank]++
		levels += acc.Level

		hasZanpakuto := acc.Zanpakuto != nil
		hasStand := acc.Stand != nil
		if hasZanpakuto {
			a.ZanpakutoHolders++
		}
		if hasStand {
			a.StandHolders++
		}
		if hasZanpakuto && hasStand {
			a.BothPowers++
		}
	}

	if len(accounts) > 0 {
		a.AverageReiatsu = a.TotalReiatsu / int64(len(accounts))
		a.AverageLevel = levels / len(accounts)
	}

	return a, nil
}
