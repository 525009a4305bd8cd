package websocket

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-chatbot/internal/entity"
)

func newTestHub() *Hub {
	return NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func receive(t *testing.T, c *client) *Message {
	t.Helper()

	select {
	case msg := <-c.send:
		return msg
	default:
		require.FailNow(t, "no message queued")
		return nil
	}
}

func TestHub_Send(t *testing.T) {
	ctx := context.Background()

	t.Run("Broadcasts a new board to the chat room only", func(t *testing.T) {
		// Given: two clients in chat-1 and one in chat-2
		hub := newTestHub()
		alice, bob, carol := newClient(nil), newClient(nil), newClient(nil)
		require.NoError(t, hub.bind(alice, "chat-1", "u1"))
		require.NoError(t, hub.bind(bob, "chat-1", "u2"))
		require.NoError(t, hub.bind(carol, "chat-2", "u3"))

		// When: a board is sent to chat-1
		ref, err := hub.Send(ctx, &entity.View{ChatID: "chat-1", Text: "hello"})

		// Then: both chat-1 clients get it under a fresh reference
		require.NoError(t, err)
		assert.NotEmpty(t, ref)

		for _, c := range []*client{alice, bob} {
			msg := receive(t, c)
			assert.Equal(t, ActionBoardRender, msg.Action)

			var view entity.View
			require.NoError(t, json.Unmarshal(msg.Payload, &view))
			assert.Equal(t, ref, view.MessageRef)
			assert.Equal(t, "hello", view.Text)
		}
		assert.Empty(t, carol.send)
	})

	t.Run("Error on empty room", func(t *testing.T) {
		hub := newTestHub()

		_, err := hub.Send(ctx, &entity.View{ChatID: "chat-1"})

		require.ErrorIs(t, err, ErrNoAudience)
	})

	t.Run("Error when every client is backed up", func(t *testing.T) {
		hub := newTestHub()
		alice := newClient(nil)
		require.NoError(t, hub.bind(alice, "chat-1", "u1"))
		for i := 0; i < sendBuffer; i++ {
			alice.send <- &Message{}
		}

		err := hub.Update(ctx, &entity.View{ChatID: "chat-1", MessageRef: "m"})

		require.ErrorIs(t, err, ErrSlowClient)
	})
}

func TestHub_Notify(t *testing.T) {
	ctx := context.Background()

	t.Run("Reaches every connection of the user", func(t *testing.T) {
		// Given: alice connected twice in different chats
		hub := newTestHub()
		phone, laptop, bob := newClient(nil), newClient(nil), newClient(nil)
		require.NoError(t, hub.bind(phone, "chat-1", "u1"))
		require.NoError(t, hub.bind(laptop, "chat-2", "u1"))
		require.NoError(t, hub.bind(bob, "chat-1", "u2"))

		// When: alice is notified with an alert
		err := hub.Notify(ctx, "u1", "hi", entity.UrgencyAlert)

		// Then: both of her connections get it and bob doesn't
		require.NoError(t, err)
		for _, c := range []*client{phone, laptop} {
			msg := receive(t, c)
			assert.Equal(t, ActionNotify, msg.Action)
			assert.JSONEq(t, `{"text":"hi","alert":true}`, string(msg.Payload))
		}
		assert.Empty(t, bob.send)
	})

	t.Run("Error on unknown user", func(t *testing.T) {
		hub := newTestHub()

		err := hub.Notify(ctx, "ghost", "hi", entity.UrgencyToast)

		require.ErrorIs(t, err, ErrNoAudience)
	})
}

func TestHub_Unregister(t *testing.T) {
	// Given: a client bound to a chat
	hub := newTestHub()
	alice := newClient(nil)
	require.NoError(t, hub.bind(alice, "chat-1", "u1"))

	// When: it disconnects
	hub.unregister(alice)

	// Then: it is gone from rooms and users and its queue is closed
	_, err := hub.Send(context.Background(), &entity.View{ChatID: "chat-1"})
	require.ErrorIs(t, err, ErrNoAudience)
	require.ErrorIs(t, hub.Notify(context.Background(), "u1", "x", entity.UrgencyToast), ErrNoAudience)

	_, open := <-alice.send
	assert.False(t, open)
}

func TestHub_Bind(t *testing.T) {
	// Given: a connection first used by u1
	hub := newTestHub()
	c := newClient(nil)
	require.NoError(t, hub.bind(c, "chat-1", "u1"))

	// When: the same connection claims to be u2
	err := hub.bind(c, "chat-2", "u2")

	// Then: the claim is refused and u1 keeps the connection
	require.ErrorIs(t, err, ErrWrongUser)
	require.NoError(t, hub.Notify(context.Background(), "u1", "x", entity.UrgencyToast))
	require.ErrorIs(t, hub.Notify(context.Background(), "u2", "x", entity.UrgencyToast), ErrNoAudience)
	assert.NotContains(t, c.chats, "chat-2")

	// And: u1 can still join more chats
	require.NoError(t, hub.bind(c, "chat-2", "u1"))
	assert.Contains(t, c.chats, "chat-2")
}
