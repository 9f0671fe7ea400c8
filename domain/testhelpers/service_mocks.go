package testhelpers

import (
	"context"

	"lotobot/domain/entities"
	"lotobot/domain/interfaces"

	"github.com/stretchr/testify/mock"
)

// MockGameController is a mock implementation of the game and round services
type MockGameController struct {
	mock.Mock
}

func (m *MockGameController) StartRound(ctx context.Context, chatID int64, name string, owner entities.Participant) (*entities.Round, error) {
	args := m.Called(ctx, chatID, name, owner)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Round), args.Error(1)
}

func (m *MockGameController) EndRound(ctx context.Context, chatID int64) (*interfaces.RoundEndResult, error) {
	args := m.Called(ctx, chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.RoundEndResult), args.Error(1)
}

func (m *MockGameController) GetActiveRound(ctx context.Context, chatID int64) (*entities.Round, error) {
	args := m.Called(ctx, chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Round), args.Error(1)
}

func (m *MockGameController) RoundSummary(ctx context.Context, chatID int64) (*interfaces.RoundSummary, error) {
	args := m.Called(ctx, chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.RoundSummary), args.Error(1)
}

func (m *MockGameController) RoundLeaderboard(ctx context.Context, chatID int64, n int) (*interfaces.Leaderboard, error) {
	args := m.Called(ctx, chatID, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.Leaderboard), args.Error(1)
}

func (m *MockGameController) CreateGame(ctx context.Context, chatID int64, req interfaces.CreateGameRequest) (*entities.GameSession, error) {
	args := m.Called(ctx, chatID, req)
	return sessionResult(args)
}

func (m *MockGameController) SetRange(ctx context.Context, chatID, callerID int64, start, end int) (*entities.GameSession, error) {
	args := m.Called(ctx, chatID, callerID, start, end)
	return sessionResult(args)
}

func (m *MockGameController) StartGame(ctx context.Context, chatID, callerID int64) (*entities.GameSession, error) {
	args := m.Called(ctx, chatID, callerID)
	return sessionResult(args)
}

func (m *MockGameController) Draw(ctx context.Context, chatID, callerID int64) (*interfaces.DrawResult, error) {
	args := m.Called(ctx, chatID, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.DrawResult), args.Error(1)
}

func (m *MockGameController) ResetDraws(ctx context.Context, chatID, callerID int64) (*entities.GameSession, error) {
	args := m.Called(ctx, chatID, callerID)
	return sessionResult(args)
}

func (m *MockGameController) ToggleRemove(ctx context.Context, chatID, callerID int64) (*entities.GameSession, error) {
	args := m.Called(ctx, chatID, callerID)
	return sessionResult(args)
}

func (m *MockGameController) CheckTicket(ctx context.Context, chatID int64, player entities.Participant, claim string) (*entities.ClaimResult, error) {
	args := m.Called(ctx, chatID, player, claim)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ClaimResult), args.Error(1)
}

func (m *MockGameController) UndoLastWin(ctx context.Context, chatID, playerID int64) (*entities.WinnerRecord, error) {
	args := m.Called(ctx, chatID, playerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.WinnerRecord), args.Error(1)
}

func (m *MockGameController) WaitForNumbers(ctx context.Context, chatID int64, player entities.Participant, numbers string) (*entities.WaitResult, error) {
	args := m.Called(ctx, chatID, player, numbers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.WaitResult), args.Error(1)
}

func (m *MockGameController) EndGame(ctx context.Context, chatID, callerID int64) (*interfaces.GameEndResult, error) {
	args := m.Called(ctx, chatID, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.GameEndResult), args.Error(1)
}

func (m *MockGameController) AbandonGame(ctx context.Context, chatID, callerID int64) error {
	args := m.Called(ctx, chatID, callerID)
	return args.Error(0)
}

func (m *MockGameController) ClaimTicket(ctx context.Context, chatID int64, player entities.Participant, code string) (*interfaces.TicketClaimResult, error) {
	args := m.Called(ctx, chatID, player, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.TicketClaimResult), args.Error(1)
}

func (m *MockGameController) ReleaseTicket(ctx context.Context, chatID, playerID int64) (string, error) {
	args := m.Called(ctx, chatID, playerID)
	return args.String(0), args.Error(1)
}

func (m *MockGameController) ListTickets(ctx context.Context, chatID int64) ([]entities.TicketSlot, error) {
	args := m.Called(ctx, chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.TicketSlot), args.Error(1)
}

func (m *MockGameController) GetStatus(ctx context.Context, chatID int64) (*interfaces.GameStatus, error) {
	args := m.Called(ctx, chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*interfaces.GameStatus), args.Error(1)
}

func (m *MockGameController) GetHistory(ctx context.Context, chatID int64, limit int) ([]entities.DrawEntry, error) {
	args := m.Called(ctx, chatID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.DrawEntry), args.Error(1)
}

func (m *MockGameController) GetParticipants(ctx context.Context, chatID int64) ([]interfaces.ParticipantView, error) {
	args := m.Called(ctx, chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]interfaces.ParticipantView), args.Error(1)
}

func (m *MockGameController) GetLastResult(ctx context.Context, chatID int64) (*entities.GameRecord, error) {
	args := m.Called(ctx, chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.GameRecord), args.Error(1)
}

func (m *MockGameController) LifetimeLeaderboard(ctx context.Context, chatID int64, n int) ([]*entities.PlayerStatEntry, error) {
	args := m.Called(ctx, chatID, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.PlayerStatEntry), args.Error(1)
}

func sessionResult(args mock.Arguments) (*entities.GameSession, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.GameSession), args.Error(1)
}
