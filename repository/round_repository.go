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

// RoundRepository stores the chat's active round and the games archived in it
type RoundRepository struct {
	q      Queryable
	chatID int64
}

// NewRoundRepository creates a round repository on the pool
func NewRoundRepository(db *database.DB, chatID int64) *RoundRepository {
	return &RoundRepository{q: db.Pool, chatID: chatID}
}

// NewRoundRepositoryScoped creates a round repository with a transaction and chat scope
func NewRoundRepositoryScoped(tx Queryable, chatID int64) *RoundRepository {
	return &RoundRepository{q: tx, chatID: chatID}
}

// LoadActiveRound returns the active round, or nil if none
func (r *RoundRepository) LoadActiveRound(ctx context.Context) (*entities.Round, error) {
	query := `
		SELECT id, chat_id, name, owner_id, owner_name, created_at
		FROM rounds
		WHERE chat_id = $1
	`

	var round entities.Round
	err := r.q.QueryRow(ctx, query, r.chatID).Scan(
		&round.ID,
		&round.ChatID,
		&round.Name,
		&round.OwnerID,
		&round.OwnerName,
		&round.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get active round for chat %d: %w", r.chatID, err)
	}
	return &round, nil
}

// SaveActiveRound inserts the round and fills in its ID and CreatedAt
func (r *RoundRepository) SaveActiveRound(ctx context.Context, round *entities.Round) error {
	query := `
		INSERT INTO rounds (chat_id, name, owner_id, owner_name)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	round.ChatID = r.chatID
	err := r.q.QueryRow(ctx, query, r.chatID, round.Name, round.OwnerID, round.OwnerName).Scan(
		&round.ID,
		&round.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create round for chat %d: %w", r.chatID, err)
	}
	return nil
}

// DeleteActiveRound removes the round; its game records cascade
func (r *RoundRepository) DeleteActiveRound(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM rounds WHERE chat_id = $1`, r.chatID); err != nil {
		return fmt.Errorf("failed to delete round for chat %d: %w", r.chatID, err)
	}
	return nil
}

// AppendGameRecord archives a finished game under its round
func (r *RoundRepository) AppendGameRecord(ctx context.Context, record *entities.GameRecord) error {
	if record.RoundID == nil {
		return fmt.Errorf("game record for chat %d has no round", r.chatID)
	}

	winners, err := json.Marshal(record.Winners)
	if err != nil {
		return fmt.Errorf("failed to encode winners: %w", err)
	}
	participants, err := json.Marshal(record.Participants)
	if err != nil {
		return fmt.Errorf("failed to encode participants: %w", err)
	}
	payouts, err := json.Marshal(record.Payouts)
	if err != nil {
		return fmt.Errorf("failed to encode payouts: %w", err)
	}

	query := `
		INSERT INTO game_records (
			round_id, chat_id, round_name, game_name, host_id, host_name,
			winners, participants, payouts, number_of_draws, bet, ended_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`

	err = r.q.QueryRow(ctx, query,
		*record.RoundID,
		r.chatID,
		record.RoundName,
		record.GameName,
		record.HostID,
		record.HostName,
		winners,
		participants,
		payouts,
		record.NumberOfDraws,
		record.Bet,
		record.EndedAt,
	).Scan(&record.ID)
	if err != nil {
		return fmt.Errorf("failed to archive game for chat %d: %w", r.chatID, err)
	}
	return nil
}

// ListGameRecords returns a round's games in the order they were archived
func (r *RoundRepository) ListGameRecords(ctx context.Context, roundID int64) ([]*entities.GameRecord, error) {
	query := `
		SELECT id, round_id, chat_id, round_name, game_name, host_id, host_name,
		       winners, participants, payouts, number_of_draws, bet, ended_at
		FROM game_records
		WHERE round_id = $1 AND chat_id = $2
		ORDER BY id
	`

	rows, err := r.q.Query(ctx, query, roundID, r.chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to query game records: %w", err)
	}
	defer rows.Close()

	records := []*entities.GameRecord{}
	for rows.Next() {
		var record entities.GameRecord
		var rid int64
		var winners, participants, payouts []byte
		if err := rows.Scan(
			&record.ID,
			&rid,
			&record.ChatID,
			&record.RoundName,
			&record.GameName,
			&record.HostID,
			&record.HostName,
			&winners,
			&participants,
			&payouts,
			&record.NumberOfDraws,
			&record.Bet,
			&record.EndedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan game record: %w", err)
		}
		record.RoundID = &rid

		if err := json.Unmarshal(winners, &record.Winners); err != nil {
			return nil, fmt.Errorf("failed to decode winners of game %d: %w", record.ID, err)
		}
		if err := json.Unmarshal(participants, &record.Participants); err != nil {
			return nil, fmt.Errorf("failed to decode participants of game %d: %w", record.ID, err)
		}
		if err := json.Unmarshal(payouts, &record.Payouts); err != nil {
			return nil, fmt.Errorf("failed to decode payouts of game %d: %w", record.ID, err)
		}
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating game records: %w", err)
	}
	return records, nil
}
