package infrastructure

import (
	"context"
)

// MessagePublisher defines the interface for publishing messages to a message bus
type MessagePublisher interface {
	// Publish publishes a message to the specified subject
	Publish(ctx context.Context, subject string, data []byte) error
}

// MessageSubscriber defines the interface for receiving messages from a message bus
type MessageSubscriber interface {
	// Subscribe delivers every message on subject to handler
	Subscribe(subject string, handler func(subject string, data []byte)) error
}
