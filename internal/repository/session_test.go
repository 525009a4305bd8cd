package repository

import (
	"fmt"
	"sync"
	"testing"

	"github.com/rocketscienceinc/tictactoe-chatbot/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(chatID string) *entity.Session {
	return entity.NewSession(chatID, &entity.Player{ID: "u1"}, entity.MarkX, entity.Theme{ID: "classic"})
}

func TestSessionRepository_PutGet(t *testing.T) {
	// Given: an empty repository
	repo := NewSessionRepository()

	// When: a session is stored
	session := newSession("chat-1")
	repo.Put("chat-1", session)

	// Then: it can be read back by chat id
	got, ok := repo.Get("chat-1")
	require.True(t, ok)
	assert.Same(t, session, got)

	_, ok = repo.Get("chat-2")
	assert.False(t, ok)
}

func TestSessionRepository_HasActive(t *testing.T) {
	t.Run("False without a session", func(t *testing.T) {
		repo := NewSessionRepository()

		assert.False(t, repo.HasActive("chat-1"))
	})

	t.Run("True for an open session", func(t *testing.T) {
		repo := NewSessionRepository()
		repo.Put("chat-1", newSession("chat-1"))

		assert.True(t, repo.HasActive("chat-1"))
	})

	t.Run("False once finished", func(t *testing.T) {
		// Given: a stored session that finished in a draw
		repo := NewSessionRepository()
		session := newSession("chat-1")
		session.Finish(entity.Result{Outcome: entity.OutcomeDraw})
		repo.Put("chat-1", session)

		// Then: the chat has no active session
		assert.False(t, repo.HasActive("chat-1"))
	})
}

func TestSessionRepository_PutReplaces(t *testing.T) {
	repo := NewSessionRepository()
	first := newSession("chat-1")
	second := newSession("chat-1")

	repo.Put("chat-1", first)
	repo.Put("chat-1", second)

	got, ok := repo.Get("chat-1")
	require.True(t, ok)
	assert.Equal(t, second.ID, got.ID)
}

func TestSessionRepository_Remove(t *testing.T) {
	repo := NewSessionRepository()
	repo.Put("chat-1", newSession("chat-1"))

	repo.Remove("chat-1")
	repo.Remove("chat-unknown")

	_, ok := repo.Get("chat-1")
	assert.False(t, ok)
}

func TestSessionRepository_ConcurrentChats(t *testing.T) {
	// Given: many goroutines writing to different chats
	repo := NewSessionRepository()

	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			chatID := fmt.Sprintf("chat-%d", i)
			repo.Put(chatID, newSession(chatID))
			repo.HasActive(chatID)
		}(i)
	}
	wg.Wait()

	// Then: every chat has its own session
	for i := 0; i < 64; i++ {
		chatID := fmt.Sprintf("chat-%d", i)
		session, ok := repo.Get(chatID)
		require.True(t, ok)
		assert.Equal(t, chatID, session.ChatID)
	}
}
