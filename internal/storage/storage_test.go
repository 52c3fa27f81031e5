package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"wordcards/internal/config"
	"wordcards/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sqliteConfig(t *testing.T) *config.Config {
	return &config.Config{
		Storage: config.StorageConfig{
			Driver:     config.DriverSQLite,
			SQLitePath: filepath.Join(t.TempDir(), "wordcards.db"),
		},
	}
}

func TestOpen_SQLite(t *testing.T) {
	cfg := sqliteConfig(t)

	db, slots, err := Open(cfg, Options{MaxRetries: 1}, testutil.NewTestLogger())
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, slots.SetSlot(ctx, "@english_words", []byte("[]")))

	value, err := slots.GetSlot(ctx, "@english_words")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(value))
}

func TestOpen_SQLite_Reopen(t *testing.T) {
	cfg := sqliteConfig(t)
	ctx := context.Background()

	db, slots, err := Open(cfg, Options{MaxRetries: 1}, testutil.NewTestLogger())
	require.NoError(t, err)
	require.NoError(t, slots.SetSlot(ctx, "k", []byte("persisted")))
	require.NoError(t, db.Close())

	// Second open sees migrations already applied and keeps the data
	db, slots, err = Open(cfg, Options{MaxRetries: 1}, testutil.NewTestLogger())
	require.NoError(t, err)
	defer db.Close()

	value, err := slots.GetSlot(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "persisted", string(value))
}

func TestConnectDatabase_GivesUp(t *testing.T) {
	_, err := connectDatabase("no-such-driver", "", Options{MaxRetries: 2, RetryDelay: time.Millisecond}, testutil.NewTestLogger())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "after 2 attempts")
}
