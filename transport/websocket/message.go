package websocket

import (
	"encoding/json"

	"github.com/rocketscienceinc/tictactoe-chatbot/internal/entity"
)

// Client to server.
const (
	ActionChatJoin    = "chat:join"
	ActionChatStart   = "chat:start"
	ActionGameNew     = "game:new"
	ActionGameTurn    = "game:turn"
	ActionThemePrompt = "theme:prompt"
	ActionThemeSet    = "theme:set"
)

// Server to client.
const (
	ActionBoardRender = "board:render"
	ActionBoardStrip  = "board:strip"
	ActionNotify      = "notify"
	ActionError       = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	ChatID     string         `json:"chat_id"`
	Player     *entity.Player `json:"player,omitempty"`
	MessageRef string         `json:"message_ref,omitempty"`
	Data       string         `json:"data,omitempty"`
	Theme      string         `json:"theme,omitempty"`
	Context    string         `json:"context,omitempty"`
}

type NotifyPayload struct {
	Text  string `json:"text"`
	Alert bool   `json:"alert"`
}

type StripPayload struct {
	ChatID     string `json:"chat_id"`
	MessageRef string `json:"message_ref"`
}

type ErrorPayload struct {
	Action string `json:"action,omitempty"`
	Error  string `json:"error"`
}

func newMessage(action string, payload any) (*Message, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Message{Action: action, Payload: raw}, nil
}
