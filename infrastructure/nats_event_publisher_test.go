package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"bookie/events"
	"bookie/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type publishedMessage struct {
	subject string
	data    []byte
}

// recordingPublisher captures messages instead of sending them
type recordingPublisher struct {
	mu       sync.Mutex
	messages []publishedMessage
	err      error
}

func (r *recordingPublisher) Publish(ctx context.Context, subject string, data []byte) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, publishedMessage{subject: subject, data: data})
	return nil
}

func (r *recordingPublisher) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages)
}

func TestEventSubjectMapper_CoversEveryEvent(t *testing.T) {
	mapper := NewEventSubjectMapper()

	subjects := mapper.GetAllSubjects()
	require.Len(t, subjects, len(events.AllEventTypes))

	for i, eventType := range events.AllEventTypes {
		assert.NotEmpty(t, subjects[i])
		assert.Equal(t, eventType, mapper.MapSubjectToEventType(subjects[i]))
	}

	assert.Equal(t, "bookie.bets.placed", mapper.MapEventToSubject(events.BetPlacedEvent{}))
	assert.Equal(t, "bookie.offers.settled", mapper.MapEventToSubject(events.OfferSettledEvent{}))
	assert.Equal(t, "bookie.economy.changed", mapper.MapEventToSubject(events.EconomyStateChangeEvent{}))
}

func TestNATSEventPublisher_WrapsEventInEnvelope(t *testing.T) {
	recorder := &recordingPublisher{}
	publisher := NewNATSEventPublisher(recorder, NewEventSubjectMapper())
	publisher.now = func() time.Time { return time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC) }

	err := publisher.Publish(context.Background(), events.BetPlacedEvent{
		UserID:          "U1",
		MatchID:         "M1",
		Team:            models.TeamTwo,
		Stake:           500,
		PotentialReturn: 750,
	})
	require.NoError(t, err)
	require.Len(t, recorder.messages, 1)
	assert.Equal(t, "bookie.bets.placed", recorder.messages[0].subject)

	var envelope EventEnvelope
	require.NoError(t, json.Unmarshal(recorder.messages[0].data, &envelope))
	assert.NotEmpty(t, envelope.EventID)
	assert.Equal(t, "bet_placed", envelope.EventType)
	assert.Equal(t, SourceService, envelope.Source)
	assert.True(t, envelope.Timestamp.Equal(publisher.now()))

	var payload map[string]any
	require.NoError(t, json.Unmarshal(envelope.Payload, &payload))
	assert.Equal(t, "team2", payload["team"])
	assert.Equal(t, float64(750), payload["potential_return"])
}

func TestNATSEventPublisher_IgnoresMissingStream(t *testing.T) {
	publisher := NewNATSEventPublisher(
		&recordingPublisher{err: errors.New("nats: no response from stream")},
		NewEventSubjectMapper(),
	)
	assert.NoError(t, publisher.Publish(context.Background(), events.UserCreatedEvent{UserID: "U1"}))

	publisher = NewNATSEventPublisher(
		&recordingPublisher{err: errors.New("connection closed")},
		NewEventSubjectMapper(),
	)
	assert.Error(t, publisher.Publish(context.Background(), events.UserCreatedEvent{UserID: "U1"}))
}

func TestNATSEventPublisher_AttachForwardsBusEvents(t *testing.T) {
	bus := events.NewBus()
	recorder := &recordingPublisher{}
	NewNATSEventPublisher(recorder, NewEventSubjectMapper()).Attach(bus)

	bus.Emit(context.Background(), events.EconomyStateChangeEvent{Frozen: true, ActorID: "A"})
	bus.Emit(context.Background(), events.OfferCreatedEvent{MatchID: "M1"})

	assert.Eventually(t, func() bool { return recorder.count() == 2 }, time.Second, 10*time.Millisecond)
}
