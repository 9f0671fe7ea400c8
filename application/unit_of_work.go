package application

import (
	"context"

	"lotobot/domain/interfaces"
)

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction and flushes buffered events
	Commit() error

	// Rollback rolls back the transaction and drops buffered events
	Rollback() error

	// Repository getters, scoped to the chat the unit of work was created for
	GameSessionRepository() interfaces.GameSessionRepository
	RoundRepository() interfaces.RoundRepository
	LedgerRepository() interfaces.LedgerRepository
	ResultRepository() interfaces.ResultRepository
	PlayerStatsRepository() interfaces.PlayerStatsRepository
	EventBus() interfaces.EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// CreateForChat creates a new UnitOfWork instance scoped to a specific chat
	CreateForChat(chatID int64) UnitOfWork
}
