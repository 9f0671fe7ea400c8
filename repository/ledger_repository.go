package repository

import (
	"context"
	"fmt"

	"lotobot/database"
	"lotobot/domain/entities"

	"github.com/jackc/pgx/v5"
)

// LedgerRepository stores the round-scoped token ledger of a chat
type LedgerRepository struct {
	q      Queryable
	chatID int64
}

// NewLedgerRepository creates a ledger repository on the pool
func NewLedgerRepository(db *database.DB, chatID int64) *LedgerRepository {
	return &LedgerRepository{q: db.Pool, chatID: chatID}
}

// NewLedgerRepositoryScoped creates a ledger repository with a transaction and chat scope
func NewLedgerRepositoryScoped(tx Queryable, chatID int64) *LedgerRepository {
	return &LedgerRepository{q: tx, chatID: chatID}
}

// LoadTokenLedger returns the chat's ledger in first-seen order
func (r *LedgerRepository) LoadTokenLedger(ctx context.Context) (*entities.TokenLedger, error) {
	query := `
		SELECT player_id, display_name, win_balance, participation_count, position
		FROM ledger_entries
		WHERE chat_id = $1
		ORDER BY position
	`

	rows, err := r.q.Query(ctx, query, r.chatID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger for chat %d: %w", r.chatID, err)
	}

	entries, err := pgx.CollectRows(rows, pgx.RowToAddrOfStructByName[entities.LedgerEntry])
	if err != nil {
		return nil, fmt.Errorf("failed to scan ledger entries: %w", err)
	}

	ledger := entities.NewTokenLedger(r.chatID)
	ledger.Entries = append(ledger.Entries, entries...)
	return ledger, nil
}

// SaveTokenLedger upserts every entry of the ledger
func (r *LedgerRepository) SaveTokenLedger(ctx context.Context, ledger *entities.TokenLedger) error {
	query := `
		INSERT INTO ledger_entries (chat_id, player_id, display_name, win_balance, participation_count, position)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (chat_id, player_id) DO UPDATE
		SET display_name = EXCLUDED.display_name,
		    win_balance = EXCLUDED.win_balance,
		    participation_count = EXCLUDED.participation_count,
		    position = EXCLUDED.position
	`

	batch := &pgx.Batch{}
	for _, e := range ledger.Entries {
		batch.Queue(query, r.chatID, e.PlayerID, e.DisplayName, e.WinBalance, e.ParticipationCount, e.Position)
	}
	if batch.Len() == 0 {
		return nil
	}

	if err := execBatch(ctx, r.q, batch); err != nil {
		return fmt.Errorf("failed to save ledger for chat %d: %w", r.chatID, err)
	}
	return nil
}

// ResetTokenLedger clears every entry of the chat
func (r *LedgerRepository) ResetTokenLedger(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM ledger_entries WHERE chat_id = $1`, r.chatID); err != nil {
		return fmt.Errorf("failed to reset ledger for chat %d: %w", r.chatID, err)
	}
	return nil
}

// batchSender is implemented by both *pgxpool.Pool and pgx.Tx
type batchSender interface {
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// execBatch runs a batch of statements, falling back to one Exec per statement
// when q cannot send batches
func execBatch(ctx context.Context, q Queryable, batch *pgx.Batch) error {
	sender, ok := q.(batchSender)
	if !ok {
		for _, item := range batch.QueuedQueries {
			if _, err := q.Exec(ctx, item.SQL, item.Arguments...); err != nil {
				return err
			}
		}
		return nil
	}

	results := sender.SendBatch(ctx, batch)
	for range batch.Len() {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return err
		}
	}
	return results.Close()
}
