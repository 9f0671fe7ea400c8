package infrastructure

import (
	"lotobot/application"
	"lotobot/database"
	"lotobot/domain/interfaces"
	"lotobot/repository"
)

// UnitOfWorkFactory implements application.UnitOfWorkFactory.
// Every unit of work gets its own transactional publisher in front of the shared one.
type UnitOfWorkFactory struct {
	repoFactory interface {
		CreateForChatWithPublisher(chatID int64, transactionalPublisher interfaces.TransactionalEventPublisher) application.UnitOfWork
	}
	eventPublisher interfaces.EventPublisher
}

// NewUnitOfWorkFactory creates a new UnitOfWorkFactory
func NewUnitOfWorkFactory(db *database.DB, eventPublisher interfaces.EventPublisher) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{
		repoFactory:    repository.NewUnitOfWorkFactory(db),
		eventPublisher: eventPublisher,
	}
}

// CreateForChat creates a new UnitOfWork with a transactional event publisher
func (f *UnitOfWorkFactory) CreateForChat(chatID int64) application.UnitOfWork {
	return f.repoFactory.CreateForChatWithPublisher(chatID, NewNATSTransactionalPublisher(f.eventPublisher))
}
