package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"bookie/models"
)

// AccountRepository implements service.AccountRepository over a ledger working copy
type AccountRepository struct {
	state *models.Snapshot
	now   func() time.Time
}

func newAccountRepository(state *models.Snapshot, now func() time.Time) *AccountRepository {
	return &AccountRepository{state: state, now: now}
}

// Get retrieves an account by id, returning nil when absent
func (r *AccountRepository) Get(ctx context.Context, id string) (*models.UserAccount, error) {
	return r.state.Accounts[id], nil
}

func (r *AccountRepository) Create(ctx context.Context, account *models.UserAccount) error {
	if _, exists := r.state.Accounts[account.ID]; exists {
		return fmt.Errorf("account %s already exists", account.ID)
	}
	r.state.Accounts[account.ID] = account
	return nil
}

func (r *AccountRepository) Update(ctx context.Context, account *models.UserAccount) error {
	if _, exists := r.state.Accounts[account.ID]; !exists {
		return fmt.Errorf("account %s does not exist", account.ID)
	}
	account.UpdatedAt = r.now()
	r.state.Accounts[account.ID] = account
	return nil
}

func (r *AccountRepository) Delete(ctx context.Context, id string) error {
	delete(r.state.Accounts, id)
	return nil
}

// List returns every account ordered by id
func (r *AccountRepository) List(ctx context.Context) ([]*models.UserAccount, error) {
	accounts := make([]*models.UserAccount, 0, len(r.state.Accounts))
	for _, a := range r.state.Accounts {
		accounts = append(accounts, a)
	}
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].ID < accounts[j].ID
	})
	return accounts, nil
}
