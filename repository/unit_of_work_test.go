package repository

import (
	"context"
	"testing"

	"lotobot/domain/testhelpers"
	"lotobot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUnitOfWork(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	t.Run("commit persists and flushes events", func(t *testing.T) {
		publisher := new(testhelpers.MockTransactionalEventPublisher)
		publisher.On("Flush", mock.Anything).Return(nil).Once()

		uow := CreateTestUnitOfWork(testDB.DB, 6001, publisher)
		require.NoError(t, uow.Begin(ctx))
		require.NoError(t, uow.GameSessionRepository().SaveGameSession(ctx, testutil.CreateTestSession(6001, 1)))
		require.NoError(t, uow.Commit())

		loaded, err := NewGameSessionRepository(testDB.DB, 6001).LoadGameSession(ctx)
		require.NoError(t, err)
		assert.NotNil(t, loaded)
		publisher.AssertExpectations(t)
	})

	t.Run("rollback discards writes and events", func(t *testing.T) {
		publisher := new(testhelpers.MockTransactionalEventPublisher)
		publisher.On("Discard").Return().Once()

		uow := CreateTestUnitOfWork(testDB.DB, 6002, publisher)
		require.NoError(t, uow.Begin(ctx))
		require.NoError(t, uow.RoundRepository().SaveActiveRound(ctx, testutil.CreateTestRound(6002, 1, "Friday")))
		require.NoError(t, uow.Rollback())

		round, err := NewRoundRepository(testDB.DB, 6002).LoadActiveRound(ctx)
		require.NoError(t, err)
		assert.Nil(t, round)
		publisher.AssertExpectations(t)
		publisher.AssertNotCalled(t, "Flush", mock.Anything)
	})

	t.Run("rollback after commit is a no-op", func(t *testing.T) {
		publisher := new(testhelpers.MockTransactionalEventPublisher)
		publisher.On("Flush", mock.Anything).Return(nil)
		publisher.On("Discard").Return()

		uow := CreateTestUnitOfWork(testDB.DB, 6003, publisher)
		require.NoError(t, uow.Begin(ctx))
		require.NoError(t, uow.Commit())
		assert.NoError(t, uow.Rollback())
	})

	t.Run("getters panic before begin", func(t *testing.T) {
		uow := CreateTestUnitOfWork(testDB.DB, 6004, new(testhelpers.MockTransactionalEventPublisher))
		assert.Panics(t, func() { uow.LedgerRepository() })
	})

	t.Run("double begin fails", func(t *testing.T) {
		publisher := new(testhelpers.MockTransactionalEventPublisher)
		publisher.On("Discard").Return()

		uow := CreateTestUnitOfWork(testDB.DB, 6005, publisher)
		require.NoError(t, uow.Begin(ctx))
		defer uow.Rollback()
		assert.Error(t, uow.Begin(ctx))
	})
}
