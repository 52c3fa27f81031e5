// Package sqlite stores slots in a local SQLite database file.
package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"wordcards/internal/repository"

	_ "github.com/mattn/go-sqlite3"
)

// SlotRepo implements repository.SlotRepository on SQLite
type SlotRepo struct {
	db *sql.DB
}

// NewSlotRepo creates a new slot repository
func NewSlotRepo(db *sql.DB) *SlotRepo {
	return &SlotRepo{db: db}
}

// GetSlot returns the stored value for key or repository.ErrSlotNotFound
func (r *SlotRepo) GetSlot(ctx context.Context, key string) ([]byte, error) {
	var value string
	query := `SELECT slot_value FROM slots WHERE slot_key = ?`
	err := r.db.QueryRowContext(ctx, query, key).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrSlotNotFound
	}
	if err != nil {
		return nil, err
	}

	return []byte(value), nil
}

// SetSlot overwrites the value stored under key.
// The upsert runs as a single statement, so a reader never sees a half-written value.
func (r *SlotRepo) SetSlot(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO slots (slot_key, slot_value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (slot_key)
		DO UPDATE SET slot_value = excluded.slot_value, updated_at = CURRENT_TIMESTAMP
	`
	_, err := r.db.ExecContext(ctx, query, key, string(value))
	return err
}
