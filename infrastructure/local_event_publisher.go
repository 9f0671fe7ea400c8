package infrastructure

import (
	"context"
	"sync"

	"lotobot/domain/events"
	"lotobot/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// LocalEventPublisher dispatches events to in-process handlers only.
// It is the publisher used when NATS is not configured.
type LocalEventPublisher struct {
	mu       sync.RWMutex
	handlers map[events.EventType][]interfaces.EventHandler
}

// NewLocalEventPublisher creates a publisher with no handlers
func NewLocalEventPublisher() *LocalEventPublisher {
	return &LocalEventPublisher{
		handlers: make(map[events.EventType][]interfaces.EventHandler),
	}
}

// RegisterLocalHandler registers a handler for an event type
func (p *LocalEventPublisher) RegisterLocalHandler(eventType events.EventType, handler interfaces.EventHandler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handlers[eventType] = append(p.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(p.handlers[eventType]),
	}).Info("Registered local event handler")
}

// Publish invokes every handler registered for the event type. Handler errors are logged.
func (p *LocalEventPublisher) Publish(event events.Event) error {
	p.dispatch(context.Background(), event)
	return nil
}

func (p *LocalEventPublisher) dispatch(ctx context.Context, event events.Event) {
	p.mu.RLock()
	handlers := p.handlers[event.Type()]
	p.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			log.WithFields(log.Fields{
				"eventType": event.Type(),
				"error":     err,
			}).Error("Local event handler failed")
		}
	}
}
