package interfaces

import (
	"context"
	"time"

	"lotobot/domain/entities"
)

// GameSettings holds the tunables the game rules depend on
type GameSettings struct {
	Bet            float64
	WinThreshold   int
	SessionTimeout time.Duration
}

// CreateGameRequest describes a new game. A nil range uses the default 1..90.
type CreateGameRequest struct {
	Name            string
	Start           *int
	End             *int
	RemoveAfterDraw bool
	Host            entities.Participant
}

// DrawResult is the outcome of one draw
type DrawResult struct {
	Number    int
	DrawCount int
	Remaining int
	Waiters   []entities.Waiter
}

// TicketClaimResult is the outcome of a ticket claim
type TicketClaimResult struct {
	Code         string
	DisplayName  string
	ReleasedCode string // previous code given up by the swap, if any
}

// GameStatus is a read-only snapshot of a live game
type GameStatus struct {
	GameName        string
	RoundName       string
	HostID          int64
	HostName        string
	State           entities.GameState
	StartNumber     int
	EndNumber       int
	RemoveAfterDraw bool
	DrawCount       int
	Remaining       int
	LastDrawn       *int
	Participants    int
	TicketHolders   int
	Winners         int
}

// ParticipantView is a participant with the ticket they hold
type ParticipantView struct {
	Participant entities.Participant
	IsHost      bool
	TicketCode  string // empty without a ticket
}

// GameEndResult is the payout report of an ended game
type GameEndResult struct {
	Record  *entities.GameRecord
	Payouts []entities.PlayerPayout
}

// Leaderboard is a ranked snapshot of a chat's ledger
type Leaderboard struct {
	Gainers      []*entities.LedgerEntry
	Losers       []*entities.LedgerEntry
	Participants []*entities.LedgerEntry
}

// RoundEndResult is the final state of a closed round
type RoundEndResult struct {
	Round       *entities.Round
	Games       []*entities.GameRecord
	Leaderboard *Leaderboard
}

// RoundSummary lists the games played in the active round
type RoundSummary struct {
	Round *entities.Round
	Games []*entities.GameRecord
}

// RoundService defines round lifecycle operations
type RoundService interface {
	// StartRound opens a round and resets the chat's token ledger
	StartRound(ctx context.Context, chatID int64, name string, owner entities.Participant) (*entities.Round, error)

	// EndRound closes the active round, returning its final leaderboard
	EndRound(ctx context.Context, chatID int64) (*RoundEndResult, error)

	// GetActiveRound returns the active round or nil
	GetActiveRound(ctx context.Context, chatID int64) (*entities.Round, error)

	RoundSummary(ctx context.Context, chatID int64) (*RoundSummary, error)

	// RoundLeaderboard ranks the active round's ledger, n entries per list (n <= 0 for all)
	RoundLeaderboard(ctx context.Context, chatID int64, n int) (*Leaderboard, error)
}

// GameService defines game session operations
type GameService interface {
	CreateGame(ctx context.Context, chatID int64, req CreateGameRequest) (*entities.GameSession, error)
	SetRange(ctx context.Context, chatID, callerID int64, start, end int) (*entities.GameSession, error)
	StartGame(ctx context.Context, chatID, callerID int64) (*entities.GameSession, error)
	Draw(ctx context.Context, chatID, callerID int64) (*DrawResult, error)
	ResetDraws(ctx context.Context, chatID, callerID int64) (*entities.GameSession, error)
	ToggleRemove(ctx context.Context, chatID, callerID int64) (*entities.GameSession, error)

	// CheckTicket evaluates claimed numbers and records a win when the rule holds
	CheckTicket(ctx context.Context, chatID int64, player entities.Participant, claim string) (*entities.ClaimResult, error)

	// UndoLastWin removes the player's most recent win in the live game
	UndoLastWin(ctx context.Context, chatID, playerID int64) (*entities.WinnerRecord, error)

	// WaitForNumbers registers interest in numbers not yet drawn
	WaitForNumbers(ctx context.Context, chatID int64, player entities.Participant, numbers string) (*entities.WaitResult, error)

	// EndGame pays out, archives and clears the live game
	EndGame(ctx context.Context, chatID, callerID int64) (*GameEndResult, error)

	// AbandonGame discards the live game without archiving it
	AbandonGame(ctx context.Context, chatID, callerID int64) error

	ClaimTicket(ctx context.Context, chatID int64, player entities.Participant, code string) (*TicketClaimResult, error)
	ReleaseTicket(ctx context.Context, chatID, playerID int64) (string, error)
	ListTickets(ctx context.Context, chatID int64) ([]entities.TicketSlot, error)

	GetStatus(ctx context.Context, chatID int64) (*GameStatus, error)
	GetHistory(ctx context.Context, chatID int64, limit int) ([]entities.DrawEntry, error)
	GetParticipants(ctx context.Context, chatID int64) ([]ParticipantView, error)
	GetLastResult(ctx context.Context, chatID int64) (*entities.GameRecord, error)

	// LifetimeLeaderboard ranks players by lifetime wins
	LifetimeLeaderboard(ctx context.Context, chatID int64, n int) ([]*entities.PlayerStatEntry, error)
}
