package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/pizzeria/internal/domain"
)

// SlotStorage хранит слоты в таблице kv_slots (см. sql/migrations).
type SlotStorage struct {
	store *Store
}

// NewSlotStorage создаёт PostgreSQL-реализацию SlotStorage поверх открытого Store.
func NewSlotStorage(store *Store) *SlotStorage {
	return &SlotStorage{store: store}
}

func (s *SlotStorage) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, domain.ErrSlotKeyRequired
	}

	var value string
	found := true
	err := s.store.withTimeout(ctx, opTimeout, func(ctx context.Context, db *sql.DB) error {
		err := db.QueryRowContext(ctx, `
			SELECT value
			FROM kv_slots
			WHERE key = $1
		`, key).Scan(&value)
		if errors.Is(err, sql.ErrNoRows) {
			found = false
			return nil
		}
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrStorageNotInitialized) {
			return "", false, err
		}
		return "", false, fmt.Errorf("select slot %s: %w", key, err)
	}
	return value, found, nil
}

func (s *SlotStorage) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return domain.ErrSlotKeyRequired
	}

	err := s.store.withTimeout(ctx, opTimeout, func(ctx context.Context, db *sql.DB) error {
		_, err := db.ExecContext(ctx, `
			INSERT INTO kv_slots (key, value, updated_at)
			VALUES ($1, $2, NOW())
			ON CONFLICT (key) DO UPDATE
			SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
		`, key, value)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrStorageNotInitialized) {
			return err
		}
		return fmt.Errorf("upsert slot %s: %w", key, err)
	}
	return nil
}

func (s *SlotStorage) Ping(ctx context.Context) error {
	if s.store == nil {
		return domain.ErrStorageNotInitialized
	}
	return s.store.Ping(ctx)
}

// Close закрывает пул; закрытое или не открытое хранилище даёт ErrStorageNotInitialized.
func (s *SlotStorage) Close() error {
	if _, err := s.store.conn(); err != nil {
		return err
	}
	return s.store.Close()
}

var _ domain.SlotStorage = (*SlotStorage)(nil)
