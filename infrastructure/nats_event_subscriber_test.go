package infrastructure

import (
	"context"
	"strings"
	"sync"
	"testing"

	"lotobot/domain/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loopbackClient delivers published messages to matching subscriptions
type loopbackClient struct {
	mu       sync.Mutex
	prefixes []string
	handlers []func(subject string, data []byte)
}

func (l *loopbackClient) Subscribe(subject string, handler func(subject string, data []byte)) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.prefixes = append(l.prefixes, strings.TrimSuffix(subject, ">"))
	l.handlers = append(l.handlers, handler)
	return nil
}

func (l *loopbackClient) Publish(ctx context.Context, subject string, data []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, prefix := range l.prefixes {
		if strings.HasPrefix(subject, prefix) {
			l.handlers[i](subject, data)
		}
	}
	return nil
}

func TestNATSEventSubscriber_ReceivesPublishedEvents(t *testing.T) {
	t.Parallel()

	client := &loopbackClient{}
	mapper := NewEventSubjectMapper()
	sub := NewNATSEventSubscriber(client, mapper)

	var received []events.Event
	sub.RegisterLocalHandler(events.EventTypeWinnerDeclared, func(ctx context.Context, event events.Event) error {
		received = append(received, event)
		return nil
	})
	require.NoError(t, sub.Start())

	pub := NewNATSEventPublisher(client, mapper)
	require.NoError(t, pub.Publish(events.WinnerDeclaredEvent{ChatID: 3, PlayerID: 8, Numbers: []int{1, 2, 3, 4, 5}}))
	require.NoError(t, pub.Publish(events.GameDiscardedEvent{ChatID: 3, Reason: events.DiscardReasonExpired}))

	require.Len(t, received, 1)
	winner, ok := received[0].(events.WinnerDeclaredEvent)
	require.True(t, ok)
	assert.Equal(t, int64(8), winner.PlayerID)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, winner.Numbers)
}

func TestDecodeEvent_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
		want string
	}{
		{"not json", "{", "envelope"},
		{"unknown type", `{"event_type":"balance_change","payload":{}}`, "unknown event type"},
		{"bad payload", `{"event_type":"number_drawn","payload":{"number":"x"}}`, "number_drawn payload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := DecodeEvent([]byte(tt.data))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestEventDecodersCoverEverySubject(t *testing.T) {
	t.Parallel()

	for eventType := range eventSubjects {
		_, ok := eventDecoders[eventType]
		assert.True(t, ok, "no decoder for %s", eventType)
	}
}
