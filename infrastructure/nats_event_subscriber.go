package infrastructure

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"lotobot/domain/events"
	"lotobot/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// decodeAs unmarshals an envelope payload into a concrete event type
func decodeAs[T events.Event](payload json.RawMessage) (events.Event, error) {
	var event T
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, err
	}
	return event, nil
}

var eventDecoders = map[events.EventType]func(json.RawMessage) (events.Event, error){
	events.EventTypeRoundStarted:   decodeAs[events.RoundStartedEvent],
	events.EventTypeRoundEnded:     decodeAs[events.RoundEndedEvent],
	events.EventTypeGameCreated:    decodeAs[events.GameCreatedEvent],
	events.EventTypeGameStarted:    decodeAs[events.GameStartedEvent],
	events.EventTypeNumberDrawn:    decodeAs[events.NumberDrawnEvent],
	events.EventTypeWinnerDeclared: decodeAs[events.WinnerDeclaredEvent],
	events.EventTypeGameEnded:      decodeAs[events.GameEndedEvent],
	events.EventTypeGameDiscarded:  decodeAs[events.GameDiscardedEvent],
	events.EventTypeTicketChanged:  decodeAs[events.TicketChangedEvent],
}

// DecodeEvent parses a published envelope back into its typed event
func DecodeEvent(data []byte) (*EventEnvelope, events.Event, error) {
	var envelope EventEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal event envelope: %w", err)
	}

	decode, ok := eventDecoders[events.EventType(envelope.EventType)]
	if !ok {
		return &envelope, nil, fmt.Errorf("unknown event type: %s", envelope.EventType)
	}
	event, err := decode(envelope.Payload)
	if err != nil {
		return &envelope, nil, fmt.Errorf("failed to unmarshal %s payload: %w", envelope.EventType, err)
	}
	return &envelope, event, nil
}

// NATSEventSubscriber consumes published game events and routes them to handlers
type NATSEventSubscriber struct {
	client        MessageSubscriber
	subjectMapper *EventSubjectMapper
	mu            sync.RWMutex
	handlers      map[events.EventType][]interfaces.EventHandler
}

// NewNATSEventSubscriber creates a new NATS event subscriber
func NewNATSEventSubscriber(client MessageSubscriber, subjectMapper *EventSubjectMapper) *NATSEventSubscriber {
	return &NATSEventSubscriber{
		client:        client,
		subjectMapper: subjectMapper,
		handlers:      make(map[events.EventType][]interfaces.EventHandler),
	}
}

// RegisterLocalHandler registers a handler for an event type
func (s *NATSEventSubscriber) RegisterLocalHandler(eventType events.EventType, handler interfaces.EventHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[eventType] = append(s.handlers[eventType], handler)
}

// Start subscribes to every game event subject
func (s *NATSEventSubscriber) Start() error {
	for _, subject := range s.subjectMapper.GetAllSubjects() {
		if err := s.client.Subscribe(subject, s.handleMessage); err != nil {
			return err
		}
		log.WithField("subject", subject).Info("Subscribed to game events")
	}
	return nil
}

// handleMessage decodes a message and routes it to the handlers of its type
func (s *NATSEventSubscriber) handleMessage(subject string, data []byte) {
	envelope, event, err := DecodeEvent(data)
	if err != nil {
		log.WithFields(log.Fields{
			"subject": subject,
			"error":   err,
		}).Error("Failed to decode event")
		return
	}

	if expected := s.subjectMapper.MapSubjectToEventType(subject); expected != event.Type() {
		log.WithFields(log.Fields{
			"subject":   subject,
			"eventType": event.Type(),
			"eventId":   envelope.EventID,
		}).Warn("Event type does not match its subject")
	}

	s.mu.RLock()
	handlers := s.handlers[event.Type()]
	s.mu.RUnlock()

	ctx := context.Background()
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			log.WithFields(log.Fields{
				"subject":   subject,
				"eventType": event.Type(),
				"eventId":   envelope.EventID,
				"error":     err,
			}).Error("Event handler failed")
		}
	}
}
