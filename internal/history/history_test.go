package history

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/sourcepay/prscore/internal/errors"
	"github.com/sourcepay/prscore/internal/logger"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "home", "history.json"))
	require.NoError(t, err)
	return store
}

func record(id string, score int) Record {
	return Record{
		ID:        id,
		Timestamp: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
		PR:        "acme/widgets#" + id,
		Score:     score,
	}
}

func TestStore_SaveAndAll(t *testing.T) {
	// Arrange
	store := setupTestStore(t)
	first := record("1", 64)
	first.DurationMs = 420
	second := record("2", 86)
	second.CacheHit = true

	// Act
	require.NoError(t, store.Save(context.Background(), first))
	require.NoError(t, store.Save(context.Background(), second))
	all, err := store.All()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []Record{first, second}, all)
}

func TestStore_Recent(t *testing.T) {
	store := setupTestStore(t)
	for i, score := range []int{10, 20, 30, 40} {
		require.NoError(t, store.Save(context.Background(), record(string(rune('a'+i)), score)))
	}

	t.Run("should return the newest records first", func(t *testing.T) {
		recent, err := store.Recent(2)

		require.NoError(t, err)
		require.Len(t, recent, 2)
		assert.Equal(t, 40, recent[0].Score)
		assert.Equal(t, 30, recent[1].Score)
	})

	t.Run("should return everything when n exceeds the log", func(t *testing.T) {
		recent, err := store.Recent(10)

		require.NoError(t, err)
		assert.Len(t, recent, 4)
		assert.Equal(t, 10, recent[3].Score)
	})

	t.Run("should return everything when n is zero", func(t *testing.T) {
		recent, err := store.Recent(0)

		require.NoError(t, err)
		assert.Len(t, recent, 4)
	})
}

func TestStore_Summary(t *testing.T) {
	t.Run("should be empty without records", func(t *testing.T) {
		store := setupTestStore(t)

		summary, err := store.Summary()

		require.NoError(t, err)
		assert.Equal(t, Summary{}, summary)
	})

	t.Run("should aggregate scores and approvals", func(t *testing.T) {
		// Arrange
		store := setupTestStore(t)
		fallback := record("3", 59)
		fallback.Fallback = true
		cached := record("4", 60)
		cached.CacheHit = true
		for _, r := range []Record{record("1", 64), record("2", 86), fallback, cached} {
			require.NoError(t, store.Save(context.Background(), r))
		}

		// Act
		summary, err := store.Summary()

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 4, summary.Count)
		assert.InDelta(t, 67.25, summary.AverageScore, 0.0001)
		assert.InDelta(t, 75.0, summary.ApprovalRate, 0.0001)
		assert.Equal(t, 1, summary.Fallbacks)
		assert.Equal(t, 1, summary.CacheHits)
	})
}

func TestStore_CorruptFile(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "history.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
	store, err := NewStore(path)
	require.NoError(t, err)

	color.NoColor = true
	var logs bytes.Buffer
	ctx := logger.WithLogger(context.Background(), logger.New(&logs, false, false))

	// Act
	_, readErr := store.All()
	saveErr := store.Save(ctx, record("1", 70))
	all, err := store.All()

	// Assert
	assert.ErrorIs(t, readErr, domainErrors.ErrHistory)
	require.NoError(t, saveErr)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	assert.Contains(t, logs.String(), "history unreadable, starting a new log")
}
