// Package storetest holds a behavioural test suite that every
// store.TaskStore implementation must pass.
package storetest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// timeTolerance absorbs the precision lost when a backend stores timestamps
// (MySQL DATETIME(6), SQLite text encoding).
const timeTolerance = time.Second

// Factory returns a fresh, empty store for a single subtest.
type Factory func(t *testing.T) store.TaskStore

// RunTaskStoreSuite exercises the store.TaskStore contract against newStore.
func RunTaskStoreSuite(t *testing.T, newStore Factory) {
	t.Helper()

	t.Run("empty_list_is_not_nil", func(t *testing.T) {
		s := newStore(t)
		tasks, err := s.List(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, tasks)
		assert.Empty(t, tasks)
	})

	t.Run("create_assigns_increasing_ids", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		first, err := s.Create(ctx, "first")
		require.NoError(t, err)
		second, err := s.Create(ctx, "second")
		require.NoError(t, err)

		assert.Positive(t, first.ID)
		assert.Greater(t, second.ID, first.ID)
		assert.Equal(t, "first", first.Title)
		assert.False(t, first.CreatedAt.IsZero())
		assert.False(t, first.UpdatedAt.IsZero())
	})

	t.Run("create_rejects_empty_title", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		task, err := s.Create(ctx, "")
		require.Error(t, err)
		assert.Nil(t, task)
		assert.True(t, errors.Is(err, domain.ErrEmptyTitle), "got %v", err)

		tasks, err := s.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, tasks, "nothing may be persisted")
	})

	t.Run("get_round_trip", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		created, err := s.Create(ctx, "round trip")
		require.NoError(t, err)

		got, err := s.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "round trip", got.Title)
		assert.WithinDuration(t, created.CreatedAt, got.CreatedAt, timeTolerance)
	})

	t.Run("get_missing_returns_not_found", func(t *testing.T) {
		s := newStore(t)
		for _, id := range []int64{0, -1, 9999} {
			task, err := s.GetByID(context.Background(), id)
			assert.Nil(t, task)
			assert.True(t, errors.Is(err, store.ErrTaskNotFound), "id %d: got %v", id, err)
		}
	})

	t.Run("list_is_ordered_by_id", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		titles := []string{"c", "a", "b"}
		for _, title := range titles {
			_, err := s.Create(ctx, title)
			require.NoError(t, err)
		}

		tasks, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, tasks, len(titles))
		for i, task := range tasks {
			assert.Equal(t, titles[i], task.Title)
			if i > 0 {
				assert.Greater(t, task.ID, tasks[i-1].ID)
			}
		}
	})

	t.Run("update_changes_title_keeps_id", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		created, err := s.Create(ctx, "before")
		require.NoError(t, err)

		updated, err := s.Update(ctx, created.ID, "after")
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "after", updated.Title)
		assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt.Add(-timeTolerance)))

		got, err := s.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "after", got.Title)
	})

	t.Run("update_missing_returns_not_found", func(t *testing.T) {
		s := newStore(t)
		task, err := s.Update(context.Background(), 9999, "title")
		assert.Nil(t, task)
		assert.True(t, errors.Is(err, store.ErrTaskNotFound), "got %v", err)
	})

	t.Run("update_rejects_empty_title", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		created, err := s.Create(ctx, "keep me")
		require.NoError(t, err)

		_, err = s.Update(ctx, created.ID, "")
		assert.True(t, errors.Is(err, domain.ErrEmptyTitle), "got %v", err)

		got, err := s.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "keep me", got.Title)
	})

	t.Run("delete_removes_and_is_idempotent", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		keep, err := s.Create(ctx, "keep")
		require.NoError(t, err)
		gone, err := s.Create(ctx, "gone")
		require.NoError(t, err)

		require.NoError(t, s.Delete(ctx, gone.ID))
		_, err = s.GetByID(ctx, gone.ID)
		assert.True(t, errors.Is(err, store.ErrTaskNotFound))

		require.NoError(t, s.Delete(ctx, gone.ID), "deleting a missing task is a no-op")
		require.NoError(t, s.Delete(ctx, 9999))

		tasks, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, keep.ID, tasks[0].ID)
	})

	t.Run("ids_are_not_reused_after_delete", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		first, err := s.Create(ctx, "first")
		require.NoError(t, err)
		require.NoError(t, s.Delete(ctx, first.ID))

		second, err := s.Create(ctx, "second")
		require.NoError(t, err)
		assert.Greater(t, second.ID, first.ID)
	})

	t.Run("concurrent_creates_get_unique_ids", func(t *testing.T) {
		ctx := context.Background()
		s := newStore(t)

		const workers = 8
		ids := make(chan int64, workers)
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				task, err := s.Create(ctx, "parallel")
				if assert.NoError(t, err) {
					ids <- task.ID
				}
			}()
		}
		wg.Wait()
		close(ids)

		seen := make(map[int64]bool)
		for id := range ids {
			assert.False(t, seen[id], "duplicate id %d", id)
			seen[id] = true
		}
		assert.Len(t, seen, workers)
	})
}
