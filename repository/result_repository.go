package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"lotobot/database"
	"lotobot/domain/entities"

	"github.com/jackc/pgx/v5"
)

// ResultRepository keeps the most recent finished game of a chat
type ResultRepository struct {
	q      Queryable
	chatID int64
}

// NewResultRepository creates a result repository on the pool
func NewResultRepository(db *database.DB, chatID int64) *ResultRepository {
	return &ResultRepository{q: db.Pool, chatID: chatID}
}

// NewResultRepositoryScoped creates a result repository with a transaction and chat scope
func NewResultRepositoryScoped(tx Queryable, chatID int64) *ResultRepository {
	return &ResultRepository{q: tx, chatID: chatID}
}

// LoadLastResult returns the last finished game, or nil
func (r *ResultRepository) LoadLastResult(ctx context.Context) (*entities.GameRecord, error) {
	var raw []byte
	err := r.q.QueryRow(ctx, `SELECT record FROM last_results WHERE chat_id = $1`, r.chatID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last result for chat %d: %w", r.chatID, err)
	}

	var record entities.GameRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("failed to decode last result for chat %d: %w", r.chatID, err)
	}
	return &record, nil
}

// SaveLastResult replaces the chat's last result
func (r *ResultRepository) SaveLastResult(ctx context.Context, record *entities.GameRecord) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode last result: %w", err)
	}

	query := `
		INSERT INTO last_results (chat_id, record, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (chat_id) DO UPDATE
		SET record = EXCLUDED.record,
		    updated_at = NOW()
	`
	if _, err := r.q.Exec(ctx, query, r.chatID, raw); err != nil {
		return fmt.Errorf("failed to save last result for chat %d: %w", r.chatID, err)
	}
	return nil
}
