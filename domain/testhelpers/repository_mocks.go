package testhelpers

import (
	"context"

	"lotobot/domain/entities"
	"lotobot/domain/events"

	"github.com/stretchr/testify/mock"
)

// MockGameSessionRepository is a mock implementation of GameSessionRepository
type MockGameSessionRepository struct {
	mock.Mock
}

func (m *MockGameSessionRepository) LoadGameSession(ctx context.Context) (*entities.GameSession, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.GameSession), args.Error(1)
}

func (m *MockGameSessionRepository) SaveGameSession(ctx context.Context, session *entities.GameSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockGameSessionRepository) DeleteGameSession(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockRoundRepository is a mock implementation of RoundRepository
type MockRoundRepository struct {
	mock.Mock
}

func (m *MockRoundRepository) LoadActiveRound(ctx context.Context) (*entities.Round, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Round), args.Error(1)
}

func (m *MockRoundRepository) SaveActiveRound(ctx context.Context, round *entities.Round) error {
	args := m.Called(ctx, round)
	return args.Error(0)
}

func (m *MockRoundRepository) DeleteActiveRound(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRoundRepository) AppendGameRecord(ctx context.Context, record *entities.GameRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockRoundRepository) ListGameRecords(ctx context.Context, roundID int64) ([]*entities.GameRecord, error) {
	args := m.Called(ctx, roundID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.GameRecord), args.Error(1)
}

// MockLedgerRepository is a mock implementation of LedgerRepository
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) LoadTokenLedger(ctx context.Context) (*entities.TokenLedger, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.TokenLedger), args.Error(1)
}

func (m *MockLedgerRepository) SaveTokenLedger(ctx context.Context, ledger *entities.TokenLedger) error {
	args := m.Called(ctx, ledger)
	return args.Error(0)
}

func (m *MockLedgerRepository) ResetTokenLedger(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockResultRepository is a mock implementation of ResultRepository
type MockResultRepository struct {
	mock.Mock
}

func (m *MockResultRepository) LoadLastResult(ctx context.Context) (*entities.GameRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.GameRecord), args.Error(1)
}

func (m *MockResultRepository) SaveLastResult(ctx context.Context, record *entities.GameRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// MockPlayerStatsRepository is a mock implementation of PlayerStatsRepository
type MockPlayerStatsRepository struct {
	mock.Mock
}

func (m *MockPlayerStatsRepository) LoadPlayerStats(ctx context.Context) (*entities.PlayerStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PlayerStats), args.Error(1)
}

func (m *MockPlayerStatsRepository) SavePlayerStats(ctx context.Context, stats *entities.PlayerStats) error {
	args := m.Called(ctx, stats)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(event events.Event) error {
	args := m.Called(event)
	return args.Error(0)
}

// MockTransactionalEventPublisher is a mock implementation of TransactionalEventPublisher
type MockTransactionalEventPublisher struct {
	mock.Mock
}

func (m *MockTransactionalEventPublisher) Publish(event events.Event) error {
	args := m.Called(event)
	return args.Error(0)
}

func (m *MockTransactionalEventPublisher) Flush(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockTransactionalEventPublisher) Discard() {
	m.Called()
}
