package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sessionWithDraws builds a started 1..90 session whose history holds drawn.
func sessionWithDraws(t *testing.T, drawn ...int) *GameSession {
	t.Helper()
	s := newStartedSession(t, 1, 90, true)
	for _, n := range drawn {
		s.History = append(s.History, DrawEntry{Number: n, Time: time.Now()})
	}
	return s
}

func TestSplitClaimTokens(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"1", "2", "3", "4", "x"}, SplitClaimTokens(" 1, 2;3 | 4\tx "))
	assert.Empty(t, SplitClaimTokens(" ,; "))
}

func TestGameSession_EvaluateClaim(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		drawn       []int
		claim       string
		wantMatched []int
		wantPending []int
		wantInvalid []string
		wantWin     bool
	}{
		{
			name:        "exactly five matched wins",
			drawn:       []int{3, 9, 27, 44, 81},
			claim:       "3 9 27 44 81",
			wantMatched: []int{3, 9, 27, 44, 81},
			wantPending: []int{},
			wantInvalid: []string{},
			wantWin:     true,
		},
		{
			name:        "five matched with one pending does not win",
			drawn:       []int{3, 9, 27, 44, 81},
			claim:       "3,9,27,44,81,60",
			wantMatched: []int{3, 9, 27, 44, 81},
			wantPending: []int{60},
			wantInvalid: []string{},
			wantWin:     false,
		},
		{
			name:        "six matched with one invalid token does not win",
			drawn:       []int{1, 2, 3, 4, 5, 6},
			claim:       "1 2 3 4 5 6 abc",
			wantMatched: []int{1, 2, 3, 4, 5, 6},
			wantPending: []int{},
			wantInvalid: []string{"abc"},
			wantWin:     false,
		},
		{
			name:        "out of range token is invalid",
			drawn:       []int{1, 2, 3, 4, 5},
			claim:       "1 2 3 4 5 91",
			wantMatched: []int{1, 2, 3, 4, 5},
			wantPending: []int{},
			wantInvalid: []string{"91"},
			wantWin:     false,
		},
		{
			name:        "duplicates count once",
			drawn:       []int{1, 2, 3, 4},
			claim:       "1 1 2 3 4",
			wantMatched: []int{1, 2, 3, 4},
			wantPending: []int{},
			wantInvalid: []string{},
			wantWin:     false,
		},
		{
			name:        "four drawn and one pending",
			drawn:       []int{1, 5, 10, 20},
			claim:       "1 5 10 20 30",
			wantMatched: []int{1, 5, 10, 20},
			wantPending: []int{30},
			wantInvalid: []string{},
			wantWin:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := sessionWithDraws(t, tt.drawn...)
			got := s.EvaluateClaim(SplitClaimTokens(tt.claim), DefaultWinThreshold)

			assert.Equal(t, tt.wantMatched, got.Matched)
			assert.Equal(t, tt.wantPending, got.Pending)
			assert.Equal(t, tt.wantInvalid, got.Invalid)
			assert.Equal(t, tt.wantWin, got.IsWin)
		})
	}
}

func TestGameSession_CheckClaim(t *testing.T) {
	t.Parallel()

	s, err := NewGameSession(42, "", "", 1, 90, true, testHost, time.Now())
	require.NoError(t, err)
	player := Participant{PlayerID: 9, Name: "nine"}
	_, err = s.ClaimTicket(player, "vang1", time.Now())
	require.NoError(t, err)

	tokens := []string{"10", "20", "30", "40", "50"}

	_, err = s.CheckClaim(player, tokens, DefaultWinThreshold, time.Now())
	assert.ErrorIs(t, err, ErrNotStarted)

	require.NoError(t, s.Start(time.Now()))
	for _, n := range []int{50, 40, 30, 20, 10} {
		s.History = append(s.History, DrawEntry{Number: n})
	}

	_, err = s.CheckClaim(Participant{PlayerID: 77}, tokens, DefaultWinThreshold, time.Now())
	assert.ErrorIs(t, err, ErrPermission)

	_, err = s.CheckClaim(player, nil, DefaultWinThreshold, time.Now())
	assert.ErrorIs(t, err, ErrValidation)

	result, err := s.CheckClaim(player, tokens, DefaultWinThreshold, time.Now())
	require.NoError(t, err)
	assert.True(t, result.IsWin)
	require.NotNil(t, result.Winner)
	assert.Equal(t, []int{10, 20, 30, 40, 50}, result.Winner.Numbers)

	// a repeat win is recorded again but counts once as a distinct winner
	_, err = s.CheckClaim(player, tokens, DefaultWinThreshold, time.Now())
	require.NoError(t, err)
	assert.Len(t, s.Winners, 2)
	assert.Equal(t, []int64{player.PlayerID}, s.DistinctWinnerIDs())

	removed, err := s.UndoLastWin(player.PlayerID, time.Now())
	require.NoError(t, err)
	assert.Equal(t, player.PlayerID, removed.PlayerID)
	assert.Len(t, s.Winners, 1)

	_, err = s.UndoLastWin(12345, time.Now())
	assert.ErrorIs(t, err, ErrNotFound)
}
