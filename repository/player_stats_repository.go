package repository

import (
	"context"
	"fmt"

	"lotobot/database"
	"lotobot/domain/entities"

	"github.com/jackc/pgx/v5"
)

// PlayerStatsRepository stores lifetime stats per chat
type PlayerStatsRepository struct {
	q      Queryable
	chatID int64
}

// NewPlayerStatsRepository creates a stats repository on the pool
func NewPlayerStatsRepository(db *database.DB, chatID int64) *PlayerStatsRepository {
	return &PlayerStatsRepository{q: db.Pool, chatID: chatID}
}

// NewPlayerStatsRepositoryScoped creates a stats repository with a transaction and chat scope
func NewPlayerStatsRepositoryScoped(tx Queryable, chatID int64) *PlayerStatsRepository {
	return &PlayerStatsRepository{q: tx, chatID: chatID}
}

// LoadPlayerStats returns the chat's stats in first-seen order
func (r *PlayerStatsRepository) LoadPlayerStats(ctx context.Context) (*entities.PlayerStats, error) {
	query := `
		SELECT player_id, display_name, wins, participations, position
		FROM player_stats
		WHERE chat_id = $1
		ORDER BY position
	`

	rows, err := r.q.Query(ctx, query, r.chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to query player stats for chat %d: %w", r.chatID, err)
	}

	entries, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[entities.PlayerStatEntry])
	if err != nil {
		return nil, fmt.Errorf("failed to scan player stats: %w", err)
	}

	stats := entities.NewPlayerStats(r.chatID)
	stats.Entries = append(stats.Entries, entries...)
	return stats, nil
}

// SavePlayerStats upserts every entry
func (r *PlayerStatsRepository) SavePlayerStats(ctx context.Context, stats *entities.PlayerStats) error {
	query := `
		INSERT INTO player_stats (chat_id, player_id, display_name, wins, participations, position)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (chat_id, player_id) DO UPDATE
		SET display_name = EXCLUDED.display_name,
		    wins = EXCLUDED.wins,
		    participations = EXCLUDED.participations,
		    position = EXCLUDED.position
	`

	batch := &pgx.Batch{}
	for _, e := range stats.Entries {
		batch.Queue(query, r.chatID, e.PlayerID, e.DisplayName, e.Wins, e.Participations, e.Position)
	}
	if batch.Len() == 0 {
		return nil
	}

	if err := execBatch(ctx, r.q, batch); err != nil {
		return fmt.Errorf("failed to save player stats for chat %d: %w", r.chatID, err)
	}
	return nil
}
