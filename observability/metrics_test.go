package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bookie/events"
	"bookie/models"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_RecordEvents(t *testing.T) {
	m := NewMetrics()
	ctx := context.Background()

	m.Record(ctx, events.OfferCreatedEvent{MatchID: "M1"})
	m.Record(ctx, events.BetPlacedEvent{MatchID: "M1", Team: models.TeamOne, Stake: 1000})
	m.Record(ctx, events.BetPlacedEvent{MatchID: "M1", Team: models.TeamTwo, Stake: 2000})
	m.Record(ctx, events.OfferStateChangeEvent{MatchID: "M1", OldState: models.OfferStatusOpen, NewState: models.OfferStatusLocked})
	m.Record(ctx, events.OfferSettledEvent{MatchID: "M1", TotalDistributed: 1500, HouseNet: 1500})
	m.Record(ctx, events.BalanceChangeEvent{Reason: events.BalanceReasonBetWon})
	m.Record(ctx, events.EconomyStateChangeEvent{Frozen: true})

	assert.Equal(t, float64(1), testutil.ToFloat64(m.offersCreated))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.betsPlaced.WithLabelValues("team1")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.betsPlaced.WithLabelValues("team2")))
	assert.Equal(t, float64(3000), testutil.ToFloat64(m.stakeTotal))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.offerTransitions.WithLabelValues("locked")))
	assert.Equal(t, float64(1500), testutil.ToFloat64(m.payoutTotal))
	assert.Equal(t, float64(1500), testutil.ToFloat64(m.houseNet))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.balanceChanges.WithLabelValues("bet_won")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.economyFrozen))
}

func TestHandler_Endpoints(t *testing.T) {
	m := NewMetrics()
	m.Record(context.Background(), events.UserCreatedEvent{UserID: "U1"})

	healthy := NewHandler(m.Registry(), func(ctx context.Context) error { return nil })

	rec := httptest.NewRecorder()
	healthy.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "bookie_users_created_total 1"))

	rec = httptest.NewRecorder()
	healthy.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())

	unhealthy := NewHandler(m.Registry(), func(ctx context.Context) error { return errors.New("ledger busy") })
	rec = httptest.NewRecorder()
	unhealthy.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "ledger busy")
}
