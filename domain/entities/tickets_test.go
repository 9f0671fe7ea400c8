package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCreatedSession(t *testing.T) *GameSession {
	t.Helper()
	s, err := NewGameSession(42, "tickets", "round", 1, 90, true, testHost, time.Now())
	require.NoError(t, err)
	return s
}

func TestNormalizeTicketCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{input: "cam1", want: "cam1", ok: true},
		{input: "  XANH2 ", want: "xanh2", ok: true},
		{input: "cam3", want: "cam3", ok: false},
		{input: "", want: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, ok := NormalizeTicketCode(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestTicketDisplayName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Cam số 1", TicketDisplayName("cam1"))
	assert.Equal(t, "unknown", TicketDisplayName("unknown"))
	assert.Len(t, TicketCodes, 16)
}

func TestGameSession_TicketExclusivity(t *testing.T) {
	t.Parallel()

	s := newCreatedSession(t)
	alice := Participant{PlayerID: 1, Name: "alice"}
	bob := Participant{PlayerID: 2, Name: "bob"}

	_, err := s.ClaimTicket(alice, "do1", time.Now())
	require.NoError(t, err)

	_, err = s.ClaimTicket(bob, "do1", time.Now())
	assert.ErrorIs(t, err, ErrTicketTaken)

	// alice swaps to another code, freeing do1
	released, err := s.ClaimTicket(alice, "do2", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "do1", released)

	_, err = s.ClaimTicket(bob, "do1", time.Now())
	require.NoError(t, err)

	// alice leaves, freeing do2
	code, err := s.ReleaseTicket(alice.PlayerID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "do2", code)

	released, err = s.ClaimTicket(bob, "do2", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "do1", released)

	assert.Equal(t, map[string]int64{"do2": bob.PlayerID}, s.Tickets)
	assert.Equal(t, map[int64]string{bob.PlayerID: "do2"}, s.PlayerTickets)
}

func TestGameSession_ClaimTicketRegistersParticipant(t *testing.T) {
	t.Parallel()

	s := newCreatedSession(t)
	carol := Participant{PlayerID: 3, Name: "carol"}

	_, err := s.ClaimTicket(carol, "TIM1", time.Now())
	require.NoError(t, err)

	p, ok := s.Participant(carol.PlayerID)
	assert.True(t, ok)
	assert.Equal(t, carol, p)

	code, ok := s.TicketOf(carol.PlayerID)
	assert.True(t, ok)
	assert.Equal(t, "tim1", code)

	// claiming the same code again is a no-op
	released, err := s.ClaimTicket(carol, "tim1", time.Now())
	require.NoError(t, err)
	assert.Empty(t, released)
	assert.Len(t, s.Participants, 2)
}

func TestGameSession_ClaimTicketErrors(t *testing.T) {
	t.Parallel()

	s := newCreatedSession(t)
	player := Participant{PlayerID: 5, Name: "p5"}

	_, err := s.ClaimTicket(player, "gold1", time.Now())
	assert.ErrorIs(t, err, ErrInvalidCode)

	require.NoError(t, s.Start(time.Now()))
	_, err = s.ClaimTicket(player, "cam1", time.Now())
	assert.ErrorIs(t, err, ErrGameStarted)
}

func TestGameSession_ReleaseTicketErrors(t *testing.T) {
	t.Parallel()

	s := newCreatedSession(t)

	_, err := s.ReleaseTicket(testHost.PlayerID, time.Now())
	assert.ErrorIs(t, err, ErrHostCannotLeave)

	_, err = s.ReleaseTicket(999, time.Now())
	assert.ErrorIs(t, err, ErrNotFound)

	player := Participant{PlayerID: 6, Name: "p6"}
	_, err = s.ClaimTicket(player, "luc1", time.Now())
	require.NoError(t, err)
	require.NoError(t, s.Start(time.Now()))

	_, err = s.ReleaseTicket(player.PlayerID, time.Now())
	assert.ErrorIs(t, err, ErrGameStarted)
}

func TestGameSession_ListTicketsAndHolders(t *testing.T) {
	t.Parallel()

	s := newCreatedSession(t)
	_, err := s.ClaimTicket(Participant{PlayerID: 8, Name: "eight"}, "xanh2", time.Now())
	require.NoError(t, err)
	_, err = s.ClaimTicket(testHost, "cam1", time.Now())
	require.NoError(t, err)

	slots := s.ListTickets()
	require.Len(t, slots, len(TicketCodes))
	assert.Equal(t, "cam1", slots[0].Code)
	require.NotNil(t, slots[0].Holder)
	assert.Equal(t, testHost.PlayerID, slots[0].Holder.PlayerID)
	assert.Nil(t, slots[1].Holder)
	require.NotNil(t, slots[15].Holder)
	assert.Equal(t, "eight", slots[15].Holder.Name)

	holders := s.TicketHolders()
	assert.Equal(t, []int64{testHost.PlayerID, 8}, []int64{holders[0].PlayerID, holders[1].PlayerID})
}
