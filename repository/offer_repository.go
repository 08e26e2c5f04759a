package repository

import (
	"context"
	"fmt"
	"sort"

	"bookie/models"
)

// OfferRepository implements service.OfferRepository over a ledger working copy
type OfferRepository struct {
	state *models.Snapshot
}

func newOfferRepository(state *models.Snapshot) *OfferRepository {
	return &OfferRepository{state: state}
}

func (r *OfferRepository) GetActive(ctx context.Context, matchID string) (*models.Offer, error) {
	return r.state.Offers[matchID], nil
}

func (r *OfferRepository) GetArchived(ctx context.Context, matchID string) (*models.Offer, error) {
	return r.state.Archive[matchID], nil
}

func (r *OfferRepository) Exists(ctx context.Context, matchID string) (bool, error) {
	_, active := r.state.Offers[matchID]
	_, archived := r.state.Archive[matchID]
	return active || archived, nil
}

func (r *OfferRepository) Create(ctx context.Context, offer *models.Offer) error {
	if exists, _ := r.Exists(ctx, offer.MatchID); exists {
		return fmt.Errorf("offer %s already exists", offer.MatchID)
	}
	r.state.Offers[offer.MatchID] = offer
	return nil
}

func (r *OfferRepository) Update(ctx context.Context, offer *models.Offer) error {
	if _, ok := r.state.Offers[offer.MatchID]; !ok {
		return fmt.Errorf("offer %s is not active", offer.MatchID)
	}
	r.state.Offers[offer.MatchID] = offer
	return nil
}

// Archive moves an active offer into the archive
func (r *OfferRepository) Archive(ctx context.Context, matchID string) error {
	offer, ok := r.state.Offers[matchID]
	if !ok {
		return fmt.Errorf("offer %s is not active", matchID)
	}
	if _, archived := r.state.Archive[matchID]; archived {
		return fmt.Errorf("offer %s is already archived", matchID)
	}
	delete(r.state.Offers, matchID)
	r.state.Archive[matchID] = offer
	return nil
}

// ListActive returns active offers ordered by creation time
func (r *OfferRepository) ListActive(ctx context.Context) ([]*models.Offer, error) {
	offers := make([]*models.Offer, 0, len(r.state.Offers))
	for _, o := range r.state.Offers {
		offers = append(offers, o)
	}
	sort.Slice(offers, func(i, j int) bool {
		if !offers[i].CreatedAt.Equal(offers[j].CreatedAt) {
			return offers[i].CreatedAt.Before(offers[j].CreatedAt)
		}
		return offers[i].MatchID < offers[j].MatchID
	})
	return offers, nil
}

// ListArchived returns completed offers, most recently completed first
func (r *OfferRepository) ListArchived(ctx context.Context, limit int) ([]*models.Offer, error) {
	offers := make([]*models.Offer, 0, len(r.state.Archive))
	for _, o := range r.state.Archive {
		offers = append(offers, o)
	}
	sort.Slice(offers, func(i, j int) bool {
		a, b := offers[i].CompletedAt, offers[j].CompletedAt
		switch {
		case a != nil && b != nil && !a.Equal(*b):
			return a.After(*b)
		case a != nil && b == nil:
			return true
		case a == nil && b != nil:
			return false
		}
		return offers[i].MatchID < offers[j].MatchID
	})
	if limit > 0 && len(offers) > limit {
		offers = offers[:limit]
	}
	return offers, nil
}
