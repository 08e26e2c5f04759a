package repository

import (
	"context"

	"bookie/models"
)

// EconomyRepository implements service.EconomyRepository over a ledger working copy
type EconomyRepository struct {
	state *models.Snapshot
}

func newEconomyRepository(state *models.Snapshot) *EconomyRepository {
	return &EconomyRepository{state: state}
}

func (r *EconomyRepository) Get(ctx context.Context) (models.EconomyState, error) {
	return r.state.Economy, nil
}

func (r *EconomyRepository) Set(ctx context.Context, state models.EconomyState) error {
	r.state.Economy = state
	return nil
}
