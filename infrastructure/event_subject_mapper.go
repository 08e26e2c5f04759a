package infrastructure

import (
	"fmt"

	"bookie/events"
)

// SubjectPrefix roots every subject this service publishes
const SubjectPrefix = "bookie"

var subjectsByType = map[events.EventType]string{
	events.EventTypeOfferCreated:       SubjectPrefix + ".offers.created",
	events.EventTypeOfferStateChange:   SubjectPrefix + ".offers.state_changed",
	events.EventTypeOfferSettled:       SubjectPrefix + ".offers.settled",
	events.EventTypeBetPlaced:          SubjectPrefix + ".bets.placed",
	events.EventTypeBetCancelled:       SubjectPrefix + ".bets.cancelled",
	events.EventTypeBalanceChange:      SubjectPrefix + ".users.balance_changed",
	events.EventTypeUserCreated:        SubjectPrefix + ".users.created",
	events.EventTypeEconomyStateChange: SubjectPrefix + ".economy.changed",
}

// EventSubjectMapper handles mapping between ledger events and NATS subjects
type EventSubjectMapper struct{}

// NewEventSubjectMapper creates a new event subject mapper
func NewEventSubjectMapper() *EventSubjectMapper {
	return &EventSubjectMapper{}
}

// MapEventToSubject converts an event to its corresponding NATS subject
func (m *EventSubjectMapper) MapEventToSubject(event events.Event) string {
	if subject, ok := subjectsByType[event.Type()]; ok {
		return subject
	}
	return fmt.Sprintf("%s.unknown.%s", SubjectPrefix, event.Type())
}

// MapSubjectToEventType converts a NATS subject back to an event type
func (m *EventSubjectMapper) MapSubjectToEventType(subject string) events.EventType {
	for eventType, s := range subjectsByType {
		if s == subject {
			return eventType
		}
	}
	return events.EventType(subject)
}

// GetAllSubjects returns all subjects that this service publishes to, in event order
func (m *EventSubjectMapper) GetAllSubjects() []string {
	subjects := make([]string, 0, len(events.AllEventTypes))
	for _, t := range events.AllEventTypes {
		subjects = append(subjects, subjectsByType[t])
	}
	return subjects
}
