package events

import (
	"context"
	"sync"

	"bookie/models"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeOfferCreated       EventType = "offer_created"
	EventTypeOfferStateChange   EventType = "offer_state_change"
	EventTypeOfferSettled       EventType = "offer_settled"
	EventTypeBetPlaced          EventType = "bet_placed"
	EventTypeBetCancelled       EventType = "bet_cancelled"
	EventTypeBalanceChange      EventType = "balance_change"
	EventTypeUserCreated        EventType = "user_created"
	EventTypeEconomyStateChange EventType = "economy_state_change"
)

// AllEventTypes lists every event the ledger emits
var AllEventTypes = []EventType{
	EventTypeOfferCreated,
	EventTypeOfferStateChange,
	EventTypeOfferSettled,
	EventTypeBetPlaced,
	EventTypeBetCancelled,
	EventTypeBalanceChange,
	EventTypeUserCreated,
	EventTypeEconomyStateChange,
}

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BalanceReason explains why a balance moved
type BalanceReason string

const (
	BalanceReasonBetPlaced    BalanceReason = "bet_placed"
	BalanceReasonBetCancelled BalanceReason = "bet_cancelled"
	BalanceReasonBetWon       BalanceReason = "bet_won"
	BalanceReasonTransferOut  BalanceReason = "transfer_out"
	BalanceReasonTransferIn   BalanceReason = "transfer_in"
	BalanceReasonAdmin        BalanceReason = "admin_adjustment"
	BalanceReasonMassAdd      BalanceReason = "mass_add"
	BalanceReasonInflation    BalanceReason = "inflation"
	BalanceReasonReset        BalanceReason = "reset"
)

// BalanceChangeEvent represents a balance change that occurred
type BalanceChangeEvent struct {
	UserID       string          `json:"user_id"`
	Currency     models.Currency `json:"currency"`
	OldBalance   int64           `json:"old_balance"`
	NewBalance   int64           `json:"new_balance"`
	ChangeAmount int64           `json:"change_amount"`
	Reason       BalanceReason   `json:"reason"`
	MatchID      string          `json:"match_id,omitempty"`
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// UserCreatedEvent represents a new account
type UserCreatedEvent struct {
	UserID         string `json:"user_id"`
	DisplayName    string `json:"display_name"`
	InitialBalance int64  `json:"initial_balance"`
}

func (e UserCreatedEvent) Type() EventType {
	return EventTypeUserCreated
}

// OfferCreatedEvent represents a newly published offer
type OfferCreatedEvent struct {
	MatchID       string `json:"match_id"`
	Team1         string `json:"team1"`
	Team2         string `json:"team2"`
	ProfitPercent int64  `json:"profit_percentage"`
}

func (e OfferCreatedEvent) Type() EventType {
	return EventTypeOfferCreated
}

// OfferStateChangeEvent represents an offer status transition
type OfferStateChangeEvent struct {
	MatchID  string             `json:"match_id"`
	OldState models.OfferStatus `json:"old_state"`
	NewState models.OfferStatus `json:"new_state"`
}

func (e OfferStateChangeEvent) Type() EventType {
	return EventTypeOfferStateChange
}

// OfferSettledEvent represents a settled offer
type OfferSettledEvent struct {
	MatchID          string          `json:"match_id"`
	WinningTeam      models.TeamSide `json:"winning_team"`
	Winners          int             `json:"winners"`
	Losers           int             `json:"losers"`
	TotalDistributed int64           `json:"total_distributed"`
	TotalLost        int64           `json:"total_lost"`
	HouseNet         int64           `json:"house_net"`
}

func (e OfferSettledEvent) Type() EventType {
	return EventTypeOfferSettled
}

// BetPlacedEvent represents a bet that was placed
type BetPlacedEvent struct {
	UserID          string          `json:"user_id"`
	MatchID         string          `json:"match_id"`
	Team            models.TeamSide `json:"team"`
	Stake           int64           `json:"stake"`
	PotentialReturn int64           `json:"potential_return"`
}

func (e BetPlacedEvent) Type() EventType {
	return EventTypeBetPlaced
}

// BetCancelledEvent represents a refunded bet
type BetCancelledEvent struct {
	UserID  string          `json:"user_id"`
	MatchID string          `json:"match_id"`
	Team    models.TeamSide `json:"team"`
	Stake   int64           `json:"stake"`
}

func (e BetCancelledEvent) Type() EventType {
	return EventTypeBetCancelled
}

// EconomyStateChangeEvent represents a freeze or unfreeze
type EconomyStateChangeEvent struct {
	Frozen  bool   `json:"frozen"`
	ActorID string `json:"actor_id"`
}

func (e EconomyStateChangeEvent) Type() EventType {
	return EventTypeEconomyStateChange
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type on main event bus")
}

// SubscribeAll registers the handler for every known event type
func (b *Bus) SubscribeAll(handler Handler) {
	for _, t := range AllEventTypes {
		b.Subscribe(t, handler)
	}
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	log.WithFields(log.Fields{
		"eventType":    event.Type(),
		"handlerCount": len(handlers),
	}).Debug("Emitting event to handlers on main event bus")

	// Call handlers asynchronously to avoid blocking
	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// TransactionalBus holds events raised inside a unit of work until it commits.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	log.WithFields(log.Fields{
		"eventType":    e.Type(),
		"pendingCount": len(b.pending),
	}).Debug("Adding event to transactional bus pending queue")
	b.pending = append(b.pending, e)
}

// Pending returns the number of stashed events
func (b *TransactionalBus) Pending() int {
	return len(b.pending)
}

// Flush is called after a successful commit
func (b *TransactionalBus) Flush(ctx context.Context) {
	log.WithFields(log.Fields{
		"pendingEventCount": len(b.pending),
	}).Debug("Flushing pending events from transactional bus to main event bus")

	// Handlers outlive the request that produced the events
	eventCtx := context.WithoutCancel(ctx)

	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
}

// Discard is called after a rollback or failed commit
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
