package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-chatbot/internal/entity"
)

const sendBuffer = 16

var (
	ErrNoAudience = errors.New("nobody is connected")
	ErrSlowClient = errors.New("client send buffer is full")
	ErrWrongUser  = errors.New("connection belongs to another user")
)

type client struct {
	conn *websocket.Conn
	send chan *Message

	userID string
	chats  map[string]struct{}
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		conn:  conn,
		send:  make(chan *Message, sendBuffer),
		chats: make(map[string]struct{}),
	}
}

func (that *client) writePump() {
	defer that.conn.Close()

	for msg := range that.send {
		if err := that.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

// Hub tracks which connections watch which chat and who is behind each of
// them. It renders boards to chat rooms and private notices to users.
type Hub struct {
	logger *slog.Logger

	mu    sync.RWMutex
	rooms map[string]map[*client]struct{}
	users map[string]map[*client]struct{}
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger: logger.With("component", "hub"),
		rooms:  make(map[string]map[*client]struct{}),
		users:  make(map[string]map[*client]struct{}),
	}
}

// bind subscribes c to chatID. The first userID seen on a connection owns it
// for good; any other userID is refused with ErrWrongUser.
func (that *Hub) bind(c *client, chatID, userID string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	switch c.userID {
	case userID:
	case "":
		c.userID = userID
		addTo(that.users, userID, c)
	default:
		return fmt.Errorf("%w: %s", ErrWrongUser, c.userID)
	}

	if _, ok := c.chats[chatID]; !ok {
		c.chats[chatID] = struct{}{}
		addTo(that.rooms, chatID, c)
	}

	return nil
}

// unregister drops c everywhere and closes its send queue.
func (that *Hub) unregister(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	for chatID := range c.chats {
		removeFrom(that.rooms, chatID, c)
	}

	if c.userID != "" {
		removeFrom(that.users, c.userID, c)
	}

	close(c.send)
}

// Send posts a new board to the chat and returns its message reference.
func (that *Hub) Send(_ context.Context, view *entity.View) (string, error) {
	view.MessageRef = uuid.NewString()

	if err := that.render(view); err != nil {
		return "", err
	}

	return view.MessageRef, nil
}

// Update redraws an existing board in place.
func (that *Hub) Update(_ context.Context, view *entity.View) error {
	return that.render(view)
}

// Notify delivers a private notice to every connection of userID.
func (that *Hub) Notify(_ context.Context, userID, text string, urgency entity.Urgency) error {
	msg, err := newMessage(ActionNotify, NotifyPayload{Text: text, Alert: urgency == entity.UrgencyAlert})
	if err != nil {
		return fmt.Errorf("failed to build notice: %w", err)
	}

	if err = that.deliver(that.users, userID, msg); err != nil {
		return fmt.Errorf("failed to notify %s: %w", userID, err)
	}

	return nil
}

// Strip removes the controls from a board that no longer belongs to a game.
func (that *Hub) Strip(chatID, messageRef string) error {
	msg, err := newMessage(ActionBoardStrip, StripPayload{ChatID: chatID, MessageRef: messageRef})
	if err != nil {
		return fmt.Errorf("failed to build strip: %w", err)
	}

	return that.deliver(that.rooms, chatID, msg)
}

// reply queues msg for one connection only.
func (that *Hub) reply(c *client, msg *Message) {
	that.mu.RLock()
	defer that.mu.RUnlock()

	select {
	case c.send <- msg:
	default:
		that.logger.Warn("dropping reply to slow client", "userID", c.userID, "action", msg.Action)
	}
}

func (that *Hub) render(view *entity.View) error {
	msg, err := newMessage(ActionBoardRender, view)
	if err != nil {
		return fmt.Errorf("failed to build board: %w", err)
	}

	if err = that.deliver(that.rooms, view.ChatID, msg); err != nil {
		return fmt.Errorf("failed to render chat %s: %w", view.ChatID, err)
	}

	return nil
}

func (that *Hub) deliver(index map[string]map[*client]struct{}, key string, msg *Message) error {
	that.mu.RLock()
	defer that.mu.RUnlock()

	clients := index[key]
	if len(clients) == 0 {
		return ErrNoAudience
	}

	delivered := 0
	for c := range clients {
		select {
		case c.send <- msg:
			delivered++
		default:
			that.logger.Warn("dropping message to slow client", "userID", c.userID, "action", msg.Action)
		}
	}

	if delivered == 0 {
		return ErrSlowClient
	}

	return nil
}

func addTo(index map[string]map[*client]struct{}, key string, c *client) {
	set, ok := index[key]
	if !ok {
		set = make(map[*client]struct{})
		index[key] = set
	}
	set[c] = struct{}{}
}

func removeFrom(index map[string]map[*client]struct{}, key string, c *client) {
	set, ok := index[key]
	if !ok {
		return
	}

	delete(set, c)
	if len(set) == 0 {
		delete(index, key)
	}
}
