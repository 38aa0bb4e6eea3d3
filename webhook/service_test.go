package webhook_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/marcelsud/webhook-scheduler/webhook"
	"github.com/marcelsud/webhook-scheduler/webhook/memory"
	"github.com/marcelsud/webhook-scheduler/webhook/mocks"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newService(repo webhook.Repository, primary, secondary webhook.Target) *webhook.Service {
	invoker := webhook.NewInvoker(repo, nil, nil, zerolog.Nop())
	return webhook.NewService(repo, invoker, primary, secondary, zerolog.Nop())
}

func TestTriggerPrimary(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"output": "primary"}`))
		}))
		defer srv.Close()

		repo := mocks.NewRepository(t)
		repo.On("Append", ctx, webhook.MatchResponse(func(r webhook.Response) bool {
			return r.Target == webhook.PrimaryTarget &&
				r.StatusCode == http.StatusOK &&
				r.Data["content"] == "primary"
		})).Return(nil).Once()

		service := newService(repo, webhook.NewTarget(webhook.PrimaryTarget, srv.URL, "GET", 5, ""), webhook.Target{})

		resp := service.TriggerPrimary(ctx)

		assert.Equal(t, webhook.StatusSuccess, resp.StatusMessage)
	})

	t.Run("append failure does not fail the call", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("Append", ctx, mock.Anything).Return(errors.New("store unavailable")).Once()

		service := newService(repo, webhook.NewTarget(webhook.PrimaryTarget, "", "GET", 0, ""), webhook.Target{})

		resp := service.TriggerPrimary(ctx)

		assert.Equal(t, 400, resp.StatusCode)
		assert.Equal(t, "primary webhook URL is not configured", resp.Error)
	})
}

func TestTriggerSecondary(t *testing.T) {
	ctx := context.Background()

	t.Run("unconfigured secondary is recorded without a network call", func(t *testing.T) {
		var called bool
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer srv.Close()

		repo := memory.NewRepository(memory.DefaultCapacity)
		service := newService(repo,
			webhook.NewTarget(webhook.PrimaryTarget, srv.URL, "GET", 5, ""),
			webhook.NewTarget(webhook.SecondaryTarget, "", "POST", 5, ""),
		)

		resp := service.TriggerSecondary(ctx)

		assert.False(t, called)
		assert.Equal(t, 400, resp.StatusCode)
		assert.Equal(t, webhook.StatusError, resp.StatusMessage)
		assert.NotEmpty(t, resp.Error)

		history, err := service.History(ctx)
		require.NoError(t, err)
		assert.Len(t, history, 1)
	})

	t.Run("configured secondary uses its own method", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			w.Write([]byte(`[{"output": "weixin"}]`))
		}))
		defer srv.Close()

		service := newService(memory.NewRepository(10),
			webhook.Target{},
			webhook.NewTarget(webhook.SecondaryTarget, srv.URL, "post", 5, ""),
		)

		resp := service.TriggerSecondary(ctx)

		assert.Equal(t, webhook.SecondaryTarget, resp.Target)
		assert.Equal(t, map[string]any{"content": "weixin"}, resp.Data)
	})
}

func TestHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("keeps the most recent 100 in order", func(t *testing.T) {
		repo := memory.NewRepository(memory.DefaultCapacity)
		service := newService(repo, webhook.NewTarget(webhook.PrimaryTarget, "", "", 0, ""), webhook.Target{})

		var ids []string
		for i := 0; i < 130; i++ {
			ids = append(ids, service.TriggerPrimary(ctx).ID)
		}

		history, err := service.History(ctx)
		require.NoError(t, err)
		require.Len(t, history, 100)
		for i, r := range history {
			assert.Equal(t, ids[30+i], r.ID)
		}

		latest, ok, err := service.Latest(ctx)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, ids[len(ids)-1], latest.ID)
	})

	t.Run("clear empties the history", func(t *testing.T) {
		repo := memory.NewRepository(memory.DefaultCapacity)
		service := newService(repo, webhook.NewTarget(webhook.PrimaryTarget, "", "", 0, ""), webhook.Target{})
		for i := 0; i < 3; i++ {
			service.TriggerPrimary(ctx)
		}

		require.NoError(t, service.ClearHistory(ctx))

		history, err := service.History(ctx)
		require.NoError(t, err)
		assert.Empty(t, history)

		_, ok, err := service.Latest(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("repository errors are wrapped", func(t *testing.T) {
		repo := mocks.NewRepository(t)
		repo.On("List", ctx).Return(nil, errors.New("boom")).Once()
		repo.On("Latest", ctx).Return(webhook.Response{}, false, errors.New("boom")).Once()
		repo.On("Clear", ctx).Return(errors.New("boom")).Once()

		service := newService(repo, webhook.Target{}, webhook.Target{})

		_, err := service.History(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing history")

		_, _, err = service.Latest(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "getting latest response")

		err = service.ClearHistory(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "clearing history")
	})
}

func TestNewTarget(t *testing.T) {
	tg := webhook.NewTarget(webhook.PrimaryTarget, "https://example.com", "post", 0, "")

	assert.Equal(t, webhook.POST, tg.Method)
	assert.Equal(t, 30*time.Second, tg.Timeout)
	assert.True(t, tg.Configured())
	require.NoError(t, tg.Validate())

	tg.SigningSecret = "not-a-secret"
	require.Error(t, tg.Validate())
}

func TestParseMethod(t *testing.T) {
	m, err := webhook.ParseMethod("")
	require.NoError(t, err)
	assert.Equal(t, webhook.GET, m)

	m, err = webhook.ParseMethod(" Post ")
	require.NoError(t, err)
	assert.Equal(t, webhook.POST, m)

	_, err = webhook.ParseMethod("PUT")
	require.Error(t, err)

	assert.Equal(t, webhook.GET, webhook.NewMethod("PUT"))
}
