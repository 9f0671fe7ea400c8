package interfaces

import (
	"context"

	"lotobot/domain/entities"
	"lotobot/domain/events"
)

// Repositories are scoped to one chat by the unit of work that creates them.

// GameSessionRepository stores the live game session of a chat
type GameSessionRepository interface {
	// LoadGameSession returns nil, nil when the chat has no session
	LoadGameSession(ctx context.Context) (*entities.GameSession, error)
	SaveGameSession(ctx context.Context, session *entities.GameSession) error
	DeleteGameSession(ctx context.Context) error
}

// RoundRepository stores the active round and its archived games
type RoundRepository interface {
	// LoadActiveRound returns nil, nil when no round is active
	LoadActiveRound(ctx context.Context) (*entities.Round, error)

	// SaveActiveRound inserts the round, filling in ID and CreatedAt
	SaveActiveRound(ctx context.Context, round *entities.Round) error

	// DeleteActiveRound removes the round together with its game records
	DeleteActiveRound(ctx context.Context) error

	// AppendGameRecord archives a finished game, filling in its ID
	AppendGameRecord(ctx context.Context, record *entities.GameRecord) error

	// ListGameRecords returns a round's games in the order they ended
	ListGameRecords(ctx context.Context, roundID int64) ([]*entities.GameRecord, error)
}

// LedgerRepository stores the round-scoped token ledger
type LedgerRepository interface {
	// LoadTokenLedger returns an empty ledger when nothing is stored
	LoadTokenLedger(ctx context.Context) (*entities.TokenLedger, error)
	SaveTokenLedger(ctx context.Context, ledger *entities.TokenLedger) error
	ResetTokenLedger(ctx context.Context) error
}

// ResultRepository stores the most recent finished game of a chat
type ResultRepository interface {
	// LoadLastResult returns nil, nil when no game has finished yet
	LoadLastResult(ctx context.Context) (*entities.GameRecord, error)
	SaveLastResult(ctx context.Context, record *entities.GameRecord) error
}

// PlayerStatsRepository stores lifetime per-player stats
type PlayerStatsRepository interface {
	// LoadPlayerStats returns empty stats when nothing is stored
	LoadPlayerStats(ctx context.Context) (*entities.PlayerStats, error)
	SavePlayerStats(ctx context.Context, stats *entities.PlayerStats) error
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event) error
}

// TransactionalEventPublisher buffers events until the surrounding transaction settles
type TransactionalEventPublisher interface {
	EventPublisher

	// Flush publishes every buffered event; call after commit
	Flush(ctx context.Context) error

	// Discard drops buffered events; call after rollback
	Discard()
}

// EventHandler handles an event in-process after the transaction that raised it committed
type EventHandler func(ctx context.Context, event events.Event) error

// EventSubscriber registers in-process event handlers
type EventSubscriber interface {
	RegisterLocalHandler(eventType events.EventType, handler EventHandler)
}
