package learnings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillsphere/learner-store/internal/storage"
)

func TestAdd_PrependsEntries(t *testing.T) {
	ctx := context.Background()
	store := NewStore(storage.NewMemoryBackend())

	clock := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }

	first, err := store.Add(ctx, " Slices share backing arrays ", "Go Fundamentals")
	require.NoError(t, err)
	assert.Equal(t, "Slices share backing arrays", first.Text)
	assert.Equal(t, "Go Fundamentals", first.Course)
	assert.Equal(t, clock, first.At)
	assert.NotEmpty(t, first.ID)

	clock = clock.Add(time.Hour)
	second, err := store.Add(ctx, "Defer runs LIFO", "")
	require.NoError(t, err)

	entries, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, second.ID, entries[0].ID)
	assert.Equal(t, first.ID, entries[1].ID)
	assert.True(t, entries[1].At.Equal(clock.Add(-time.Hour)))
}

func TestAdd_RejectsEmptyText(t *testing.T) {
	backend := storage.NewMemoryBackend()
	_, err := NewStore(backend).Add(context.Background(), "   ", "")
	assert.ErrorIs(t, err, ErrEmptyText)
	assert.Zero(t, backend.Keys())
}

func TestLoad_CorruptIsEmpty(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemoryBackend()
	require.NoError(t, backend.Set(ctx, Key, []byte("not-json")))

	store := NewStore(backend)
	entries, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	// adding starts a fresh journal
	_, err = store.Add(ctx, "Maps are not safe for concurrent writes", "")
	require.NoError(t, err)
	entries, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
