package memory_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/marcelsud/webhook-scheduler/webhook"
	"github.com/marcelsud/webhook-scheduler/webhook/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func response(i int) webhook.Response {
	return webhook.Response{
		ID:            fmt.Sprintf("response-%d", i),
		StatusCode:    200,
		StatusMessage: webhook.StatusSuccess,
	}
}

func ids(history []webhook.Response) []string {
	out := make([]string, len(history))
	for i, r := range history {
		out[i] = r.ID
	}
	return out
}

func TestRepository_Append(t *testing.T) {
	ctx := context.Background()

	t.Run("keeps insertion order", func(t *testing.T) {
		repo := memory.NewRepository(memory.DefaultCapacity)
		for i := 0; i < 3; i++ {
			require.NoError(t, repo.Append(ctx, response(i)))
		}

		history, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"response-0", "response-1", "response-2"}, ids(history))
	})

	t.Run("evicts oldest beyond capacity", func(t *testing.T) {
		repo := memory.NewRepository(memory.DefaultCapacity)
		for i := 0; i < 250; i++ {
			require.NoError(t, repo.Append(ctx, response(i)))
		}

		history, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, history, 100)
		for i, r := range history {
			assert.Equal(t, fmt.Sprintf("response-%d", 150+i), r.ID)
		}

		n, err := repo.Len(ctx)
		require.NoError(t, err)
		assert.Equal(t, 100, n)
	})

	t.Run("non-positive capacity falls back to default", func(t *testing.T) {
		repo := memory.NewRepository(0)
		assert.Equal(t, memory.DefaultCapacity, repo.Capacity())
	})
}

func TestRepository_Latest(t *testing.T) {
	ctx := context.Background()

	t.Run("empty history", func(t *testing.T) {
		repo := memory.NewRepository(3)
		_, ok, err := repo.Latest(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("returns the tail after wrapping", func(t *testing.T) {
		repo := memory.NewRepository(3)
		for i := 0; i < 7; i++ {
			require.NoError(t, repo.Append(ctx, response(i)))
		}

		latest, ok, err := repo.Latest(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "response-6", latest.ID)
	})
}

func TestRepository_Clear(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository(5)
	for i := 0; i < 12; i++ {
		require.NoError(t, repo.Append(ctx, response(i)))
	}

	require.NoError(t, repo.Clear(ctx))

	history, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, history)

	_, ok, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	// usable again after clearing
	require.NoError(t, repo.Append(ctx, response(99)))
	history, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"response-99"}, ids(history))
}

func TestRepository_ListReturnsCopy(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository(5)
	require.NoError(t, repo.Append(ctx, response(1)))

	history, err := repo.List(ctx)
	require.NoError(t, err)
	history[0].ID = "tampered"

	again, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "response-1", again[0].ID)
}

func TestRepository_DataIsCopied(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository(5)

	stored := response(1)
	stored.Data = map[string]any{
		"content": "news",
		"items":   []any{map[string]any{"title": "first"}},
	}
	require.NoError(t, repo.Append(ctx, stored))

	t.Run("appended map stays with the caller", func(t *testing.T) {
		stored.Data["content"] = "changed after append"

		latest, ok, err := repo.Latest(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "news", latest.Data["content"])
	})

	t.Run("list copies", func(t *testing.T) {
		history, err := repo.List(ctx)
		require.NoError(t, err)
		history[0].Data["content"] = "changed through list"
		history[0].Data["injected"] = true
		history[0].Data["items"].([]any)[0].(map[string]any)["title"] = "changed"

		again, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"content": "news",
			"items":   []any{map[string]any{"title": "first"}},
		}, again[0].Data)
	})

	t.Run("latest copies", func(t *testing.T) {
		latest, _, err := repo.Latest(ctx)
		require.NoError(t, err)
		latest.Data["content"] = "changed through latest"

		again, _, err := repo.Latest(ctx)
		require.NoError(t, err)
		assert.Equal(t, "news", again.Data["content"])
	})
}

func TestRepository_ConcurrentAppend(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository(memory.DefaultCapacity)

	var wg sync.WaitGroup
	for i := 0; i < 80; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.NoError(t, repo.Append(ctx, response(i)))
			_, _ = repo.List(ctx)
		}(i)
	}
	wg.Wait()

	history, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, history, 80)

	seen := make(map[string]bool)
	for _, r := range history {
		assert.False(t, seen[r.ID], "duplicate entry %s", r.ID)
		seen[r.ID] = true
	}
}
