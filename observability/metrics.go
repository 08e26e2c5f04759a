package observability

import (
	"context"

	"bookie/events"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "bookie"

// Label keys
const (
	LabelTeam   = "team"
	LabelState  = "state"
	LabelReason = "reason"
)

// Metrics holds the ledger counters fed from committed events
type Metrics struct {
	registry *prometheus.Registry

	offersCreated    prometheus.Counter
	offerTransitions *prometheus.CounterVec
	offersSettled    prometheus.Counter
	betsPlaced       *prometheus.CounterVec
	betsCancelled    prometheus.Counter
	stakeTotal       prometheus.Counter
	payoutTotal      prometheus.Counter
	houseNet         prometheus.Gauge
	balanceChanges   *prometheus.CounterVec
	usersCreated     prometheus.Counter
	economyFrozen    prometheus.Gauge
}

// NewMetrics creates the ledger metrics on their own registry
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		offersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "offers_created_total", Help: "offers published",
		}),
		offerTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "offer_transitions_total", Help: "lock and unlock transitions by new state",
		}, []string{LabelState}),
		offersSettled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "offers_settled_total", Help: "offers settled and archived",
		}),
		betsPlaced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "bets_placed_total", Help: "bets placed by side",
		}, []string{LabelTeam}),
		betsCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "bets_cancelled_total", Help: "bets cancelled and refunded",
		}),
		stakeTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "stake_reiatsu_total", Help: "reiatsu staked on placed bets",
		}),
		payoutTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "payout_reiatsu_total", Help: "reiatsu paid to winning bets",
		}),
		houseNet: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "house_net_reiatsu", Help: "running house result across settlements",
		}),
		balanceChanges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "balance_changes_total", Help: "balance movements by reason",
		}, []string{LabelReason}),
		usersCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "users_created_total", Help: "accounts initialised",
		}),
		economyFrozen: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "economy_frozen", Help: "1 while the economy is frozen",
		}),
	}

	m.registry.MustRegister(
		m.offersCreated, m.offerTransitions, m.offersSettled,
		m.betsPlaced, m.betsCancelled, m.stakeTotal, m.payoutTotal, m.houseNet,
		m.balanceChanges, m.usersCreated, m.economyFrozen,
	)
	return m
}

// Registry exposes the registry backing /metrics
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// SetFrozen seeds the frozen gauge from the loaded ledger
func (m *Metrics) SetFrozen(frozen bool) {
	if frozen {
		m.economyFrozen.Set(1)
	} else {
		m.economyFrozen.Set(0)
	}
}

// Attach records every event emitted on the bus
func (m *Metrics) Attach(bus *events.Bus) {
	bus.SubscribeAll(m.Record)
}

// Record updates the metrics for one committed event
func (m *Metrics) Record(ctx context.Context, event events.Event) {
	switch e := event.(type) {
	case events.OfferCreatedEvent:
		m.offersCreated.Inc()
	case events.OfferStateChangeEvent:
		m.offerTransitions.WithLabelValues(string(e.NewState)).Inc()
	case events.OfferSettledEvent:
		m.offersSettled.Inc()
		m.payoutTotal.Add(float64(e.TotalDistributed))
		m.houseNet.Add(float64(e.HouseNet))
	case events.BetPlacedEvent:
		m.betsPlaced.WithLabelValues(e.Team.Key()).Inc()
		m.stakeTotal.Add(float64(e.Stake))
	case events.BetCancelledEvent:
		m.betsCancelled.Inc()
	case events.BalanceChangeEvent:
		m.balanceChanges.WithLabelValues(string(e.Reason)).Inc()
	case events.UserCreatedEvent:
		m.usersCreated.Inc()
	case events.EconomyStateChangeEvent:
		m.SetFrozen(e.Frozen)
	}
}
