package services

import (
	"context"
	"testing"
	"time"

	"lotobot/domain/entities"
	"lotobot/domain/events"
	"lotobot/domain/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func (m *gameServiceMocks) roundService() interfaces.RoundService {
	return NewRoundService(m.roundRepo, m.sessionRepo, m.ledgerRepo, m.publisher, testSettings.SessionTimeout)
}

func TestRoundService_StartRound(t *testing.T) {
	t.Parallel()

	t.Run("opens a round and resets the ledger", func(t *testing.T) {
		t.Parallel()
		m := newGameServiceMocks()
		m.roundRepo.On("LoadActiveRound", mock.Anything).Return(nil, nil)
		m.sessionRepo.On("LoadGameSession", mock.Anything).Return(nil, nil)
		m.ledgerRepo.On("ResetTokenLedger", mock.Anything).Return(nil)
		m.roundRepo.On("SaveActiveRound", mock.Anything, mock.MatchedBy(func(r *entities.Round) bool {
			return r.Name == "Friday" && r.OwnerID == testHostID && r.ChatID == testChatID
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*entities.Round).ID = 7
		}).Return(nil)

		round, err := m.roundService().StartRound(context.Background(), testChatID, "  Friday ", host())

		require.NoError(t, err)
		assert.Equal(t, int64(7), round.ID)
		m.assertExpectations(t)
		m.publisher.AssertCalled(t, "Publish", mock.AnythingOfType("events.RoundStartedEvent"))
	})

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()
		m := newGameServiceMocks()

		_, err := m.roundService().StartRound(context.Background(), testChatID, "   ", host())

		assert.ErrorIs(t, err, entities.ErrValidation)
	})

	t.Run("round already active", func(t *testing.T) {
		t.Parallel()
		m := newGameServiceMocks()
		m.roundRepo.On("LoadActiveRound", mock.Anything).Return(activeRound(), nil)

		_, err := m.roundService().StartRound(context.Background(), testChatID, "Saturday", host())

		assert.ErrorIs(t, err, entities.ErrConflict)
		m.ledgerRepo.AssertNotCalled(t, "ResetTokenLedger", mock.Anything)
	})

	t.Run("live game blocks a new round", func(t *testing.T) {
		t.Parallel()
		m := newGameServiceMocks()
		m.roundRepo.On("LoadActiveRound", mock.Anything).Return(nil, nil)
		m.sessionRepo.On("LoadGameSession", mock.Anything).Return(sessionWithTickets(t, 1, 90), nil)

		_, err := m.roundService().StartRound(context.Background(), testChatID, "Saturday", host())

		assert.ErrorIs(t, err, entities.ErrConflict)
	})

	t.Run("expired game is cleared", func(t *testing.T) {
		t.Parallel()
		m := newGameServiceMocks()
		stale := sessionWithTickets(t, 1, 90)
		stale.LastActivityAt = time.Now().Add(-5 * time.Hour)
		m.roundRepo.On("LoadActiveRound", mock.Anything).Return(nil, nil)
		m.sessionRepo.On("LoadGameSession", mock.Anything).Return(stale, nil)
		m.sessionRepo.On("DeleteGameSession", mock.Anything).Return(nil)
		m.ledgerRepo.On("ResetTokenLedger", mock.Anything).Return(nil)
		m.roundRepo.On("SaveActiveRound", mock.Anything, mock.Anything).Return(nil)

		_, err := m.roundService().StartRound(context.Background(), testChatID, "Saturday", host())

		require.NoError(t, err)
		m.assertExpectations(t)
	})
}

func TestRoundService_EndRound(t *testing.T) {
	t.Parallel()

	t.Run("returns final leaderboard and games", func(t *testing.T) {
		t.Parallel()
		m := newGameServiceMocks()
		round := activeRound()
		games := []*entities.GameRecord{{ID: 1, RoundID: &round.ID}, {ID: 2, RoundID: &round.ID}}
		m.roundRepo.On("LoadActiveRound", mock.Anything).Return(round, nil)
		m.sessionRepo.On("LoadGameSession", mock.Anything).Return(nil, nil)
		m.roundRepo.On("ListGameRecords", mock.Anything, round.ID).Return(games, nil)
		m.ledgerRepo.On("LoadTokenLedger", mock.Anything).Return(ledgerFixture(), nil)
		m.roundRepo.On("DeleteActiveRound", mock.Anything).Return(nil)

		result, err := m.roundService().EndRound(context.Background(), testChatID)

		require.NoError(t, err)
		assert.Equal(t, round, result.Round)
		assert.Len(t, result.Games, 2)
		assert.Equal(t, []int64{1, 4}, ledgerIDs(result.Leaderboard.Gainers))
		assert.Equal(t, []int64{5, 2}, ledgerIDs(result.Leaderboard.Losers))
		m.assertExpectations(t)
		m.publisher.AssertCalled(t, "Publish", mock.AnythingOfType("events.RoundEndedEvent"))
	})

	t.Run("no active round", func(t *testing.T) {
		t.Parallel()
		m := newGameServiceMocks()
		m.roundRepo.On("LoadActiveRound", mock.Anything).Return(nil, nil)

		_, err := m.roundService().EndRound(context.Background(), testChatID)

		assert.ErrorIs(t, err, entities.ErrNotFound)
	})

	t.Run("open game blocks end", func(t *testing.T) {
		t.Parallel()
		m := newGameServiceMocks()
		m.roundRepo.On("LoadActiveRound", mock.Anything).Return(activeRound(), nil)
		m.sessionRepo.On("LoadGameSession", mock.Anything).Return(startedSession(t, 1, 90), nil)

		_, err := m.roundService().EndRound(context.Background(), testChatID)

		assert.ErrorIs(t, err, entities.ErrConflict)
		m.roundRepo.AssertNotCalled(t, "DeleteActiveRound", mock.Anything)
	})

	t.Run("expired game does not block end", func(t *testing.T) {
		t.Parallel()
		m := newGameServiceMocks()
		round := activeRound()
		stale := startedSession(t, 1, 90)
		stale.LastActivityAt = time.Now().Add(-3 * time.Hour)
		m.roundRepo.On("LoadActiveRound", mock.Anything).Return(round, nil)
		m.sessionRepo.On("LoadGameSession", mock.Anything).Return(stale, nil)
		m.sessionRepo.On("DeleteGameSession", mock.Anything).Return(nil)
		m.roundRepo.On("ListGameRecords", mock.Anything, round.ID).Return([]*entities.GameRecord{}, nil)
		m.ledgerRepo.On("LoadTokenLedger", mock.Anything).Return(ledgerFixture(), nil)
		m.roundRepo.On("DeleteActiveRound", mock.Anything).Return(nil)

		result, err := m.roundService().EndRound(context.Background(), testChatID)

		require.NoError(t, err)
		assert.Equal(t, round, result.Round)
		m.assertExpectations(t)
		m.publisher.AssertCalled(t, "Publish", mock.MatchedBy(func(e events.GameDiscardedEvent) bool {
			return e.SessionID == stale.ID && e.Reason == events.DiscardReasonExpired
		}))
	})
}

func TestRoundService_Reads(t *testing.T) {
	t.Parallel()

	t.Run("summary", func(t *testing.T) {
		t.Parallel()
		m := newGameServiceMocks()
		round := activeRound()
		m.roundRepo.On("LoadActiveRound", mock.Anything).Return(round, nil)
		m.roundRepo.On("ListGameRecords", mock.Anything, round.ID).Return([]*entities.GameRecord{}, nil)

		summary, err := m.roundService().RoundSummary(context.Background(), testChatID)

		require.NoError(t, err)
		assert.Equal(t, "Friday", summary.Round.Name)
		assert.Empty(t, summary.Games)
	})

	t.Run("leaderboard without round", func(t *testing.T) {
		t.Parallel()
		m := newGameServiceMocks()
		m.roundRepo.On("LoadActiveRound", mock.Anything).Return(nil, nil)

		_, err := m.roundService().RoundLeaderboard(context.Background(), testChatID, 10)

		assert.ErrorIs(t, err, entities.ErrNotFound)
	})

	t.Run("leaderboard limits entries", func(t *testing.T) {
		t.Parallel()
		m := newGameServiceMocks()
		m.roundRepo.On("LoadActiveRound", mock.Anything).Return(activeRound(), nil)
		m.ledgerRepo.On("LoadTokenLedger", mock.Anything).Return(ledgerFixture(), nil)

		board, err := m.roundService().RoundLeaderboard(context.Background(), testChatID, 1)

		require.NoError(t, err)
		assert.Len(t, board.Gainers, 1)
		assert.Len(t, board.Losers, 1)
		assert.Len(t, board.Participants, 1)
	})

	t.Run("active round may be absent", func(t *testing.T) {
		t.Parallel()
		m := newGameServiceMocks()
		m.roundRepo.On("LoadActiveRound", mock.Anything).Return(nil, nil)

		round, err := m.roundService().GetActiveRound(context.Background(), testChatID)

		require.NoError(t, err)
		assert.Nil(t, round)
	})
}
