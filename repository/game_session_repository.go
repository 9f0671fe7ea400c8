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

// GameSessionRepository stores each chat's live session as a JSONB document
type GameSessionRepository struct {
	q      Queryable
	chatID int64
}

// NewGameSessionRepository creates a session repository on the pool
func NewGameSessionRepository(db *database.DB, chatID int64) *GameSessionRepository {
	return &GameSessionRepository{q: db.Pool, chatID: chatID}
}

// NewGameSessionRepositoryScoped creates a session repository with a transaction and chat scope
func NewGameSessionRepositoryScoped(tx Queryable, chatID int64) *GameSessionRepository {
	return &GameSessionRepository{q: tx, chatID: chatID}
}

// LoadGameSession returns the chat's session, or nil if there is none
func (r *GameSessionRepository) LoadGameSession(ctx context.Context) (*entities.GameSession, error) {
	query := `
		SELECT state
		FROM game_sessions
		WHERE chat_id = $1
		FOR UPDATE
	`

	var raw []byte
	err := r.q.QueryRow(ctx, query, r.chatID).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get game session for chat %d: %w", r.chatID, err)
	}

	var session entities.GameSession
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("failed to decode game session for chat %d: %w", r.chatID, err)
	}
	session.Normalize()
	return &session, nil
}

// SaveGameSession inserts or replaces the chat's session
func (r *GameSessionRepository) SaveGameSession(ctx context.Context, session *entities.GameSession) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode game session: %w", err)
	}

	query := `
		INSERT INTO game_sessions (chat_id, session_id, state, last_activity_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (chat_id) DO UPDATE
		SET session_id = EXCLUDED.session_id,
		    state = EXCLUDED.state,
		    last_activity_at = EXCLUDED.last_activity_at,
		    updated_at = NOW()
	`

	if _, err := r.q.Exec(ctx, query, r.chatID, session.ID, raw, session.LastActivityAt); err != nil {
		return fmt.Errorf("failed to save game session for chat %d: %w", r.chatID, err)
	}
	return nil
}

// DeleteGameSession removes the chat's session if any
func (r *GameSessionRepository) DeleteGameSession(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM game_sessions WHERE chat_id = $1`, r.chatID); err != nil {
		return fmt.Errorf("failed to delete game session for chat %d: %w", r.chatID, err)
	}
	return nil
}
