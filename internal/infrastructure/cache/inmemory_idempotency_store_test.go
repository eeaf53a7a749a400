package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryIdempotencyStore(t *testing.T) {
	ctx := context.Background()

	t.Run("first mark wins, second is duplicate", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		fresh, err := store.MarkProcessed(ctx, "event-1", time.Hour)
		require.NoError(t, err)
		assert.True(t, fresh)

		fresh, err = store.MarkProcessed(ctx, "event-1", time.Hour)
		require.NoError(t, err)
		assert.False(t, fresh)
	})

	t.Run("IsProcessed reflects marks", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		processed, err := store.IsProcessed(ctx, "event-2")
		require.NoError(t, err)
		assert.False(t, processed)

		_, err = store.MarkProcessed(ctx, "event-2", time.Hour)
		require.NoError(t, err)

		processed, err = store.IsProcessed(ctx, "event-2")
		require.NoError(t, err)
		assert.True(t, processed)
	})

	t.Run("expired entries can be reprocessed", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		_, err := store.MarkProcessed(ctx, "event-3", time.Nanosecond)
		require.NoError(t, err)
		time.Sleep(time.Millisecond)

		processed, err := store.IsProcessed(ctx, "event-3")
		require.NoError(t, err)
		assert.False(t, processed)

		fresh, err := store.MarkProcessed(ctx, "event-3", time.Hour)
		require.NoError(t, err)
		assert.True(t, fresh)
	})

	t.Run("exactly one concurrent marker wins", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		const workers = 20
		var wg sync.WaitGroup
		wins := make(chan bool, workers)

		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				fresh, err := store.MarkProcessed(ctx, "contested-event", time.Hour)
				assert.NoError(t, err)
				if fresh {
					wins <- true
				}
			}()
		}
		wg.Wait()
		close(wins)

		assert.Len(t, wins, 1)
	})

	t.Run("cleanup removes expired entries", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		defer store.Close()

		_, err := store.MarkProcessed(ctx, "old", time.Nanosecond)
		require.NoError(t, err)
		_, err = store.MarkProcessed(ctx, "fresh", time.Hour)
		require.NoError(t, err)

		time.Sleep(time.Millisecond)
		store.cleanup()

		assert.Equal(t, 1, store.Size())
	})

	t.Run("close is idempotent", func(t *testing.T) {
		store := NewInMemoryIdempotencyStore()
		require.NoError(t, store.Close())
		require.NoError(t, store.Close())
	})
}
