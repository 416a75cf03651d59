package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/pizzeria/internal/domain"
)

func TestSlotStorage_PostgresRoundTrip(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	storage := NewSlotStorage(store)
	ctx := context.Background()

	_, found, err := storage.Get(ctx, "pizza")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, storage.Set(ctx, "pizza", `[{"name":"Ana"}]`))
	require.NoError(t, storage.Set(ctx, "pizza", `[{"name":"Luis"}]`))

	value, found, err := storage.Get(ctx, "pizza")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"name":"Luis"}]`, value)

	var rows int
	require.NoError(t, store.DB().QueryRowContext(ctx, `SELECT COUNT(*) FROM kv_slots`).Scan(&rows))
	assert.Equal(t, 1, rows, "upsert must keep a single row per key")
}

func TestSlotStorage_Guards(t *testing.T) {
	storage := NewSlotStorage(nil)
	ctx := context.Background()

	_, _, err := storage.Get(ctx, "")
	assert.True(t, errors.Is(err, domain.ErrSlotKeyRequired))

	_, _, err = storage.Get(ctx, "pizza")
	assert.True(t, errors.Is(err, domain.ErrStorageNotInitialized))
	assert.True(t, errors.Is(storage.Set(ctx, "pizza", "[]"), domain.ErrStorageNotInitialized))
	assert.True(t, errors.Is(storage.Ping(ctx), domain.ErrStorageNotInitialized))
	assert.True(t, errors.Is(storage.Close(), domain.ErrStorageNotInitialized))

	closed := NewSlotStorage(&Store{})
	assert.True(t, errors.Is(closed.Ping(ctx), domain.ErrStorageNotInitialized))
	assert.True(t, errors.Is(closed.Close(), domain.ErrStorageNotInitialized))
	_, _, err = closed.Get(ctx, "pizza")
	assert.True(t, errors.Is(err, domain.ErrStorageNotInitialized))
}

func TestSlotStorage_ClosedAfterUse(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	storage := NewSlotStorage(store)
	ctx := context.Background()

	require.NoError(t, storage.Set(ctx, "pizza", "[]"))
	require.NoError(t, storage.Close())

	assert.True(t, errors.Is(storage.Ping(ctx), domain.ErrStorageNotInitialized))
	assert.True(t, errors.Is(storage.Set(ctx, "pizza", "[]"), domain.ErrStorageNotInitialized))
	assert.True(t, errors.Is(storage.Close(), domain.ErrStorageNotInitialized))
}
