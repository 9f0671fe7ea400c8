package repository

import (
	"lotobot/application"
	"lotobot/database"
	"lotobot/domain/interfaces"
)

// CreateTestUnitOfWork creates a unit of work for testing with the provided transactional publisher
func CreateTestUnitOfWork(db *database.DB, chatID int64, transactionalPublisher interfaces.TransactionalEventPublisher) application.UnitOfWork {
	return NewUnitOfWorkFactory(db).CreateForChatWithPublisher(chatID, transactionalPublisher)
}
