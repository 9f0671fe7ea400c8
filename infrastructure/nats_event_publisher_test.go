package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"lotobot/domain/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMessageClient struct {
	subjects []string
	payloads [][]byte
	err      error
}

func (f *fakeMessageClient) Publish(ctx context.Context, subject string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.subjects = append(f.subjects, subject)
	f.payloads = append(f.payloads, data)
	return nil
}

func TestNATSEventPublisher_Publish(t *testing.T) {
	t.Parallel()

	client := &fakeMessageClient{}
	pub := NewNATSEventPublisher(client, NewEventSubjectMapper())
	fixed := time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)
	pub.now = func() time.Time { return fixed }

	var handled bool
	pub.RegisterLocalHandler(events.EventTypeNumberDrawn, func(ctx context.Context, event events.Event) error {
		handled = true
		return nil
	})

	event := events.NumberDrawnEvent{ChatID: 9, SessionID: "abc", Number: 42, DrawCount: 3, Remaining: 87}
	require.NoError(t, pub.Publish(event))

	assert.True(t, handled)
	require.Len(t, client.subjects, 1)
	assert.Equal(t, "loto.game.number_drawn", client.subjects[0])

	var envelope EventEnvelope
	require.NoError(t, json.Unmarshal(client.payloads[0], &envelope))
	assert.NotEmpty(t, envelope.EventID)
	assert.Equal(t, "number_drawn", envelope.EventType)
	assert.Equal(t, "lotobot", envelope.SourceService)
	assert.True(t, fixed.Equal(envelope.Timestamp))

	var payload events.NumberDrawnEvent
	require.NoError(t, json.Unmarshal(envelope.Payload, &payload))
	assert.Equal(t, event, payload)
}

func TestNATSEventPublisher_PublishErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{name: "missing stream is tolerated", err: errors.New("nats: no response from stream"), wantErr: false},
		{name: "other failures surface", err: errors.New("nats: connection closed"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pub := NewNATSEventPublisher(&fakeMessageClient{err: tt.err}, NewEventSubjectMapper())
			err := pub.Publish(events.RoundStartedEvent{ChatID: 1, RoundID: 2, RoundName: "Friday"})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestEventSubjectMapper(t *testing.T) {
	t.Parallel()

	mapper := NewEventSubjectMapper()
	tests := []struct {
		event   events.Event
		subject string
	}{
		{events.RoundStartedEvent{}, "loto.round.started"},
		{events.RoundEndedEvent{}, "loto.round.ended"},
		{events.GameCreatedEvent{}, "loto.game.created"},
		{events.GameStartedEvent{}, "loto.game.started"},
		{events.NumberDrawnEvent{}, "loto.game.number_drawn"},
		{events.WinnerDeclaredEvent{}, "loto.game.winner_declared"},
		{events.GameEndedEvent{}, "loto.game.ended"},
		{events.GameDiscardedEvent{}, "loto.game.discarded"},
		{events.TicketChangedEvent{}, "loto.ticket.changed"},
	}

	for _, tt := range tests {
		subject := mapper.MapEventToSubject(tt.event)
		assert.Equal(t, tt.subject, subject)
		assert.Equal(t, tt.event.Type(), mapper.MapSubjectToEventType(subject))
	}

	assert.Equal(t, []string{"loto.>"}, mapper.GetAllSubjects())
}
