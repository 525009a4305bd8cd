package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-chatbot/internal/entity"
	"github.com/rocketscienceinc/tictactoe-chatbot/internal/theme"
)

var errRedisDown = errors.New("redis down")

type fakeStats struct {
	stats map[string]*entity.ChatStats
	err   error
}

func (that *fakeStats) GetByChatID(_ context.Context, chatID string) (*entity.ChatStats, error) {
	if that.err != nil {
		return nil, that.err
	}

	if stats, ok := that.stats[chatID]; ok {
		return stats, nil
	}

	return &entity.ChatStats{ChatID: chatID, Wins: map[string]int64{}}, nil
}

func serve(t *testing.T, stats statsReader, path string) *httptest.ResponseRecorder {
	t.Helper()

	server := New(slog.New(slog.NewTextHandler(io.Discard, nil)), theme.NewRegistry(), stats)
	recorder := httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, path, nil))

	return recorder
}

func TestPing(t *testing.T) {
	recorder := serve(t, nil, "/ping")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "pong", recorder.Body.String())
}

func TestListThemes(t *testing.T) {
	// When: the theme list is requested
	recorder := serve(t, nil, "/themes")

	// Then: every built-in theme is listed, classic first
	require.Equal(t, http.StatusOK, recorder.Code)

	var themes []entity.Theme
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &themes))
	assert.Len(t, themes, len(theme.NewRegistry().All()))
	assert.Equal(t, theme.DefaultID, themes[0].ID)
}

func TestChatStats(t *testing.T) {
	t.Run("Returns the chat counters", func(t *testing.T) {
		// Given: a chat with two finished games
		stats := &fakeStats{stats: map[string]*entity.ChatStats{
			"chat-1": {ChatID: "chat-1", Games: 2, Draws: 1, Wins: map[string]int64{"alice": 1}},
		}}

		// When: its stats are requested
		recorder := serve(t, stats, "/stats/chat-1")

		// Then: the counters come back as JSON
		require.Equal(t, http.StatusOK, recorder.Code)

		var got entity.ChatStats
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
		assert.Equal(t, *stats.stats["chat-1"], got)
	})

	t.Run("Not found when stats are disabled", func(t *testing.T) {
		recorder := serve(t, nil, "/stats/chat-1")

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("Internal error when storage fails", func(t *testing.T) {
		recorder := serve(t, &fakeStats{err: errRedisDown}, "/stats/chat-1")

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	})
}

type fakeModeration struct {
	blocked map[string]bool
	err     error
}

func (that *fakeModeration) Block(_ context.Context, userID string) error {
	if that.err != nil {
		return that.err
	}

	that.blocked[userID] = true

	return nil
}

func (that *fakeModeration) Unblock(_ context.Context, userID string) error {
	if that.err != nil {
		return that.err
	}

	delete(that.blocked, userID)

	return nil
}

func moderate(t *testing.T, server *Server, method, path, token string) int {
	t.Helper()

	request := httptest.NewRequest(method, path, nil)
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	recorder := httptest.NewRecorder()
	server.Handler().ServeHTTP(recorder, request)

	return recorder.Code
}

func TestModeration(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Blocks and unblocks with the admin token", func(t *testing.T) {
		// Given: the moderation routes behind a token
		moderation := &fakeModeration{blocked: map[string]bool{}}
		server := New(logger, theme.NewRegistry(), nil, WithModeration(moderation, "secret"))

		// When: an admin blocks u1
		code := moderate(t, server, http.MethodPut, "/moderation/blocked/u1", "secret")

		// Then: u1 is on the list
		assert.Equal(t, http.StatusNoContent, code)
		assert.True(t, moderation.blocked["u1"])

		// And: unblocking takes them off again
		code = moderate(t, server, http.MethodDelete, "/moderation/blocked/u1", "secret")
		assert.Equal(t, http.StatusNoContent, code)
		assert.False(t, moderation.blocked["u1"])
	})

	t.Run("Unauthorized without the right token", func(t *testing.T) {
		moderation := &fakeModeration{blocked: map[string]bool{}}
		server := New(logger, theme.NewRegistry(), nil, WithModeration(moderation, "secret"))

		assert.Equal(t, http.StatusUnauthorized, moderate(t, server, http.MethodPut, "/moderation/blocked/u1", ""))
		assert.Equal(t, http.StatusUnauthorized, moderate(t, server, http.MethodPut, "/moderation/blocked/u1", "guess"))
		assert.Empty(t, moderation.blocked)
	})

	t.Run("Internal error when storage fails", func(t *testing.T) {
		server := New(logger, theme.NewRegistry(), nil, WithModeration(&fakeModeration{err: errRedisDown}, "secret"))

		assert.Equal(t, http.StatusInternalServerError, moderate(t, server, http.MethodPut, "/moderation/blocked/u1", "secret"))
	})

	t.Run("Routes are off without a token", func(t *testing.T) {
		server := New(logger, theme.NewRegistry(), nil, WithModeration(&fakeModeration{blocked: map[string]bool{}}, ""))

		assert.Equal(t, http.StatusNotFound, moderate(t, server, http.MethodPut, "/moderation/blocked/u1", ""))
	})
}
