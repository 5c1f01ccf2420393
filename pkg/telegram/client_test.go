package telegram

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"contact-form-backend/pkg/config"
)

func newTestClient(t *testing.T, cfg config.Telegram, baseURL string) *Client {
	t.Helper()
	return NewClient(cfg, zaptest.NewLogger(t).Sugar()).WithBaseURL(baseURL)
}

func TestClient_SendMessage(t *testing.T) {
	var gotPath string
	var gotBody sendMessageRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"ok":true,"result":{}}`))
	}))
	defer srv.Close()

	c := newTestClient(t, config.Telegram{BotToken: "123:abc", ChatID: "-100"}, srv.URL)

	err := c.SendMessage(context.Background(), "<b>привет</b>", "")
	require.NoError(t, err)

	assert.Equal(t, "/bot123:abc/sendMessage", gotPath)
	assert.Equal(t, "-100", gotBody.ChatID)
	assert.Equal(t, "<b>привет</b>", gotBody.Text)
	assert.Equal(t, "HTML", gotBody.ParseMode, "parse mode should default to HTML")
}

func TestClient_SendMessage_NotConfigured(t *testing.T) {
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
	}))
	defer srv.Close()

	tests := []struct {
		name string
		cfg  config.Telegram
	}{
		{name: "no token", cfg: config.Telegram{ChatID: "-100"}},
		{name: "no chat id", cfg: config.Telegram{BotToken: "123:abc"}},
		{name: "nothing", cfg: config.Telegram{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.cfg, srv.URL)

			err := c.SendMessage(context.Background(), "text", "HTML")
			assert.ErrorIs(t, err, ErrNotConfigured)
		})
	}

	assert.Zero(t, atomic.LoadInt64(&calls), "no network call should be made when unconfigured")
}

func TestClient_SendMessage_APIRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"description":"Bad Request: chat not found"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, config.Telegram{BotToken: "123:abc", ChatID: "-100"}, srv.URL)

	err := c.SendMessage(context.Background(), "text", "HTML")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Contains(t, apiErr.Description, "chat not found")
}

func TestClient_SendMessage_OKFalseWith200(t *testing.T) {
	// The Bot API can answer 200 with ok:false; that is still a rejection.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":false,"description":"flood control"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, config.Telegram{BotToken: "123:abc", ChatID: "-100"}, srv.URL)

	var apiErr *APIError
	err := c.SendMessage(context.Background(), "text", "HTML")
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Description, "flood control")
}

func TestClient_SendMessage_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := newTestClient(t, config.Telegram{BotToken: "123:abc", ChatID: "-100"}, srv.URL)

	err := c.SendMessage(context.Background(), "text", "HTML")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotConfigured)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr), "transport failures must not look like API rejections")
}

func TestClient_GetUpdates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/bot123:abc/getUpdates", r.URL.Path)
		assert.Equal(t, "17", r.URL.Query().Get("offset"))
		assert.Equal(t, "30", r.URL.Query().Get("timeout"))
		_, _ = w.Write([]byte(`{"ok":true,"result":[
			{"update_id":17,"message":{"chat":{"id":555},"text":"hello"}},
			{"update_id":18}
		]}`))
	}))
	defer srv.Close()

	c := newTestClient(t, config.Telegram{BotToken: "123:abc"}, srv.URL)

	updates, err := c.GetUpdates(context.Background(), 17, longPollSeconds)
	require.NoError(t, err)
	require.Len(t, updates, 2)

	assert.Equal(t, int64(17), updates[0].UpdateID)
	require.NotNil(t, updates[0].Message)
	assert.Equal(t, int64(555), updates[0].Message.Chat.ID)
	assert.Equal(t, "hello", updates[0].Message.Text)
	assert.Nil(t, updates[1].Message)
}

func TestClient_GetUpdates_NoToken(t *testing.T) {
	c := newTestClient(t, config.Telegram{}, "http://127.0.0.1:0")

	_, err := c.GetUpdates(context.Background(), 0, longPollSeconds)
	assert.ErrorIs(t, err, ErrNotConfigured)
}
