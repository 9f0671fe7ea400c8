package services

import (
	"testing"

	"lotobot/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ledgerFixture() *entities.TokenLedger {
	ledger := entities.NewTokenLedger(1)
	ledger.Entries = []*entities.LedgerEntry{
		{PlayerID: 1, DisplayName: "An", WinBalance: 10, ParticipationCount: 3, Position: 0},
		{PlayerID: 2, DisplayName: "Binh", WinBalance: -5, ParticipationCount: 3, Position: 1},
		{PlayerID: 3, DisplayName: "Chi", WinBalance: 0, ParticipationCount: 1, Position: 2},
		{PlayerID: 4, DisplayName: "Dung", WinBalance: 10, ParticipationCount: 5, Position: 3},
		{PlayerID: 5, DisplayName: "Giang", WinBalance: -15, ParticipationCount: 2, Position: 4},
	}
	return ledger
}

func ledgerIDs(entries []*entities.LedgerEntry) []int64 {
	out := make([]int64, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.PlayerID)
	}
	return out
}

func statIDs(entries []*entities.PlayerStatEntry) []int64 {
	out := make([]int64, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.PlayerID)
	}
	return out
}

func TestTopGainers(t *testing.T) {
	t.Parallel()

	ledger := ledgerFixture()
	assert.Equal(t, []int64{1, 4}, ledgerIDs(TopGainers(ledger.Entries, 10)))
	assert.Equal(t, []int64{1}, ledgerIDs(TopGainers(ledger.Entries, 1)))
}

func TestTopLosers(t *testing.T) {
	t.Parallel()

	ledger := ledgerFixture()
	assert.Equal(t, []int64{5, 2}, ledgerIDs(TopLosers(ledger.Entries, 10)))
}

func TestTopParticipants(t *testing.T) {
	t.Parallel()

	ledger := ledgerFixture()
	assert.Equal(t, []int64{4, 1, 2, 5, 3}, ledgerIDs(TopParticipants(ledger.Entries, 0)))
	assert.Equal(t, []int64{4, 1, 2}, ledgerIDs(TopParticipants(ledger.Entries, 3)))
}

func TestTopGainers_TieKeepsFirstSeenOrder(t *testing.T) {
	t.Parallel()

	ledger := ledgerFixture()
	// reversed storage order must not change the ranking
	reversed := []*entities.LedgerEntry{ledger.Entries[4], ledger.Entries[3], ledger.Entries[2], ledger.Entries[1], ledger.Entries[0]}
	assert.Equal(t, []int64{1, 4}, ledgerIDs(TopGainers(reversed, 10)))
}

func TestTopWinners(t *testing.T) {
	t.Parallel()

	entries := []*entities.PlayerStatEntry{
		{PlayerID: 1, Wins: 2, Participations: 5, Position: 0},
		{PlayerID: 2, Wins: 0, Participations: 9, Position: 1},
		{PlayerID: 3, Wins: 4, Participations: 4, Position: 2},
		{PlayerID: 4, Wins: 2, Participations: 2, Position: 3},
	}

	assert.Equal(t, []int64{3, 1, 4}, statIDs(TopWinners(entries, 10)))
	assert.Equal(t, []int64{3, 1}, statIDs(TopWinners(entries, 2)))
}

func TestBuildLeaderboard(t *testing.T) {
	t.Parallel()

	board := BuildLeaderboard(ledgerFixture(), 10)
	require.NotNil(t, board)
	assert.Len(t, board.Gainers, 2)
	assert.Len(t, board.Losers, 2)
	assert.Len(t, board.Participants, 5)

	empty := BuildLeaderboard(entities.NewTokenLedger(1), 10)
	assert.Empty(t, empty.Gainers)
	assert.Empty(t, empty.Losers)
	assert.Empty(t, empty.Participants)
}
