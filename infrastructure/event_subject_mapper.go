package infrastructure

import (
	"fmt"

	"lotobot/domain/events"
)

// Subject prefix for every game event
const subjectPrefix = "loto"

var eventSubjects = map[events.EventType]string{
	events.EventTypeRoundStarted:   subjectPrefix + ".round.started",
	events.EventTypeRoundEnded:     subjectPrefix + ".round.ended",
	events.EventTypeGameCreated:    subjectPrefix + ".game.created",
	events.EventTypeGameStarted:    subjectPrefix + ".game.started",
	events.EventTypeNumberDrawn:    subjectPrefix + ".game.number_drawn",
	events.EventTypeWinnerDeclared: subjectPrefix + ".game.winner_declared",
	events.EventTypeGameEnded:      subjectPrefix + ".game.ended",
	events.EventTypeGameDiscarded:  subjectPrefix + ".game.discarded",
	events.EventTypeTicketChanged:  subjectPrefix + ".ticket.changed",
}

// EventSubjectMapper handles mapping between domain events and NATS subjects
type EventSubjectMapper struct {
	eventTypes map[string]events.EventType
}

// NewEventSubjectMapper creates a new event subject mapper
func NewEventSubjectMapper() *EventSubjectMapper {
	reverse := make(map[string]events.EventType, len(eventSubjects))
	for eventType, subject := range eventSubjects {
		reverse[subject] = eventType
	}
	return &EventSubjectMapper{eventTypes: reverse}
}

// MapEventToSubject converts a domain event to its corresponding NATS subject
func (m *EventSubjectMapper) MapEventToSubject(event events.Event) string {
	if subject, ok := eventSubjects[event.Type()]; ok {
		return subject
	}
	return fmt.Sprintf("%s.unknown.%s", subjectPrefix, event.Type())
}

// MapSubjectToEventType converts a NATS subject back to an event type
func (m *EventSubjectMapper) MapSubjectToEventType(subject string) events.EventType {
	if eventType, ok := m.eventTypes[subject]; ok {
		return eventType
	}
	return events.EventType(subject)
}

// GetAllSubjects returns the subject wildcard covering everything this service publishes
func (m *EventSubjectMapper) GetAllSubjects() []string {
	return []string{subjectPrefix + ".>"}
}
