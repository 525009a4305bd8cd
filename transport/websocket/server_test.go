package websocket

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-chatbot/internal/entity"
	"github.com/rocketscienceinc/tictactoe-chatbot/internal/repository"
	"github.com/rocketscienceinc/tictactoe-chatbot/internal/scheduler"
	"github.com/rocketscienceinc/tictactoe-chatbot/internal/theme"
	"github.com/rocketscienceinc/tictactoe-chatbot/internal/usecase"
)

const chatID = "chat-1"

var (
	alice = &entity.Player{ID: "u1", Name: "alice"}
	bob   = &entity.Player{ID: "u2", Name: "bob"}
	carol = &entity.Player{ID: "u3", Name: "carol"}
)

func startServer(t *testing.T) string {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	hub := NewHub(logger)
	manager := usecase.NewGameManager(
		logger,
		repository.NewSessionRepository(),
		repository.NewPreferenceRepository(),
		theme.NewRegistry(),
		hub,
		hub,
		scheduler.New(logger),
		usecase.WithJoinTimeout(time.Hour),
		usecase.WithFirstMark(func() entity.Mark { return entity.MarkX }),
	)

	ctx, cancel := context.WithCancel(context.Background())
	srv := httptest.NewServer(New(logger, hub, manager).Handler(ctx))
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})

	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func dial(t *testing.T, url string) *websocket.Conn {
	t.Helper()

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn
}

func send(t *testing.T, conn *websocket.Conn, action string, payload Payload) {
	t.Helper()

	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(Message{Action: action, Payload: raw}))
}

// await reads until a message with the given action arrives.
func await(t *testing.T, conn *websocket.Conn, action string, into any) {
	t.Helper()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))

	for {
		var msg Message
		require.NoError(t, conn.ReadJSON(&msg), "waiting for %s", action)

		if msg.Action == action {
			if into != nil {
				require.NoError(t, json.Unmarshal(msg.Payload, into))
			}
			return
		}
	}
}

// enter subscribes conn to the chat and waits until the server has processed it.
func enter(t *testing.T, conn *websocket.Conn, player *entity.Player) {
	t.Helper()

	send(t, conn, ActionChatJoin, Payload{ChatID: chatID, Player: player})
	send(t, conn, ActionChatStart, Payload{ChatID: chatID, Player: player})

	var greeting NotifyPayload
	await(t, conn, ActionNotify, &greeting)
	require.Equal(t, usecase.Greeting, greeting.Text)
}

func TestServer_GameFlow(t *testing.T) {
	url := startServer(t)

	// Given: alice and bob are in the chat
	aliceConn := dial(t, url)
	bobConn := dial(t, url)
	enter(t, aliceConn, alice)
	enter(t, bobConn, bob)

	// When: alice starts a game
	send(t, aliceConn, ActionGameNew, Payload{ChatID: chatID, Player: alice})

	// Then: both see the same fresh board and alice is told her mark
	var aliceBoard, bobBoard entity.View
	await(t, aliceConn, ActionBoardRender, &aliceBoard)
	await(t, bobConn, ActionBoardRender, &bobBoard)
	require.NotEmpty(t, aliceBoard.MessageRef)
	assert.Equal(t, aliceBoard.MessageRef, bobBoard.MessageRef)
	assert.Len(t, bobBoard.Clickable(), entity.BoardSize)

	var notice NotifyPayload
	await(t, aliceConn, ActionNotify, &notice)
	assert.Contains(t, notice.Text, "❌")

	// When: bob presses a cell while it is X's turn
	send(t, bobConn, ActionGameTurn, Payload{ChatID: chatID, Player: bob, MessageRef: aliceBoard.MessageRef, Data: "4"})

	// Then: bob joins as O without moving
	var joined entity.View
	await(t, bobConn, ActionBoardRender, &joined)
	assert.Equal(t, "⬜", joined.Cells[4].Glyph)
	assert.Contains(t, joined.Text, "bob")
	await(t, bobConn, ActionNotify, &notice)
	assert.Contains(t, notice.Text, "You joined as ⭕")

	// When: alice plays the centre
	send(t, aliceConn, ActionGameTurn, Payload{ChatID: chatID, Player: alice, MessageRef: aliceBoard.MessageRef, Data: "4"})

	// Then: everyone sees her mark
	var played entity.View
	await(t, bobConn, ActionBoardRender, &played)
	assert.Equal(t, "❌", played.Cells[4].Glyph)
	assert.Equal(t, entity.ActionNoop, played.Cells[4].Data)

	// When: carol arrives late
	carolConn := dial(t, url)
	send(t, carolConn, ActionChatJoin, Payload{ChatID: chatID, Player: carol})

	// Then: she is shown the running board right away
	var current entity.View
	await(t, carolConn, ActionBoardRender, &current)
	assert.Equal(t, aliceBoard.MessageRef, current.MessageRef)
	assert.Equal(t, "❌", current.Cells[4].Glyph)

	// When: carol tries to play
	send(t, carolConn, ActionGameTurn, Payload{ChatID: chatID, Player: carol, MessageRef: aliceBoard.MessageRef, Data: "0"})

	// Then: she privately learns the game is full
	await(t, carolConn, ActionNotify, &notice)
	assert.True(t, notice.Alert)
	assert.Contains(t, notice.Text, "two players")
}

func TestServer_StaleBoard(t *testing.T) {
	url := startServer(t)
	conn := dial(t, url)
	enter(t, conn, alice)

	// When: alice presses a cell on a board nobody knows
	send(t, conn, ActionGameTurn, Payload{ChatID: chatID, Player: alice, MessageRef: "old-board", Data: "0"})

	// Then: alice is told why and the board loses its controls
	var notice NotifyPayload
	await(t, conn, ActionNotify, &notice)
	assert.True(t, notice.Alert)

	var strip StripPayload
	await(t, conn, ActionBoardStrip, &strip)
	assert.Equal(t, StripPayload{ChatID: chatID, MessageRef: "old-board"}, strip)
}

func TestServer_BadRequests(t *testing.T) {
	url := startServer(t)
	conn := dial(t, url)

	t.Run("Missing player", func(t *testing.T) {
		send(t, conn, ActionGameNew, Payload{ChatID: chatID})

		var resp ErrorPayload
		await(t, conn, ActionError, &resp)
		assert.Equal(t, ActionGameNew, resp.Action)
	})

	t.Run("Unknown action", func(t *testing.T) {
		require.NoError(t, conn.WriteJSON(Message{Action: "game:leave"}))

		var resp ErrorPayload
		await(t, conn, ActionError, &resp)
		assert.Equal(t, "unknown action", resp.Error)
	})

	t.Run("Player other than the connection's owner", func(t *testing.T) {
		send(t, conn, ActionChatJoin, Payload{ChatID: chatID, Player: alice})
		send(t, conn, ActionGameNew, Payload{ChatID: chatID, Player: bob})

		var resp ErrorPayload
		await(t, conn, ActionError, &resp)
		assert.Equal(t, ActionGameNew, resp.Action)
		assert.Equal(t, "player does not match this connection", resp.Error)
	})

	t.Run("Cell that is not a number", func(t *testing.T) {
		send(t, conn, ActionGameTurn, Payload{ChatID: chatID, Player: alice, MessageRef: "m", Data: "centre"})

		var resp ErrorPayload
		await(t, conn, ActionError, &resp)
		assert.Equal(t, "invalid cell", resp.Error)
	})
}

func TestServer_PreGameTheme(t *testing.T) {
	url := startServer(t)
	conn := dial(t, url)
	enter(t, conn, alice)

	// Given: alice picked the space theme before playing
	send(t, conn, ActionThemeSet, Payload{ChatID: chatID, Player: alice, Theme: "theme:space", Context: "pre-game"})
	var notice NotifyPayload
	await(t, conn, ActionNotify, &notice)
	assert.Contains(t, notice.Text, "Space")

	// When: she starts a game
	send(t, conn, ActionGameNew, Payload{ChatID: chatID, Player: alice})

	// Then: the board is drawn with that theme
	var board entity.View
	await(t, conn, ActionBoardRender, &board)
	assert.Equal(t, "🌌", board.Cells[0].Glyph)
}
