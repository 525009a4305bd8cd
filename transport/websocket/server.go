package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"

	"github.com/rocketscienceinc/tictactoe-chatbot/internal/entity"
	"github.com/rocketscienceinc/tictactoe-chatbot/internal/usecase"
)

const shutdownTimeout = 5 * time.Second

type uGame interface {
	RequestNewGame(ctx context.Context, req usecase.NewGameRequest) (*entity.Session, error)
	SubmitMove(ctx context.Context, req usecase.MoveRequest) (*entity.Session, error)
	PressInert(ctx context.Context, chatID, messageRef, userID string)
	OpenThemePicker(ctx context.Context, chatID, messageRef string, player entity.Player) (*entity.Session, error)
	ChangeTheme(ctx context.Context, req usecase.ThemeRequest) (*entity.Session, error)
	CurrentView(chatID string) (*entity.View, bool)
}

type handlerFunc func(ctx context.Context, c *client, payload *Payload) error

type Server struct {
	logger *slog.Logger
	uGame  uGame
	hub    *Hub

	upgrader websocket.Upgrader
	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, hub *Hub, uGame uGame) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		uGame:  uGame,
		hub:    hub,

		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(*http.Request) bool {
				return true
			},
		},
	}

	server.handlers = map[string]handlerFunc{
		ActionChatJoin:    server.handleChatJoin,
		ActionChatStart:   server.handleChatStart,
		ActionGameNew:     server.handleNewGame,
		ActionGameTurn:    server.handleGameTurn,
		ActionThemePrompt: server.handleThemePrompt,
		ActionThemeSet:    server.handleThemeSet,
	}

	return server
}

// Handler returns the router serving the /ws endpoint.
func (that *Server) Handler(ctx context.Context) http.Handler {
	router := httprouter.New()
	router.GET("/ws", func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		that.serveWS(ctx, w, r)
	})

	return router
}

// Start - starts WebSocket server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) serveWS(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "serveWS")

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	c := newClient(conn)
	go c.writePump()

	log.Info("WebSocket connection established", "remote", r.RemoteAddr)

	that.handleMessages(ctx, c)
	that.hub.unregister(c)

	log.Info("WebSocket connection closed", "userID", c.userID)
}

// handleMessages - processes messages from the client until it disconnects.
func (that *Server) handleMessages(ctx context.Context, c *client) {
	log := that.logger.With("method", "handleMessages")

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("error reading message", "error", err)
			}
			return
		}

		if ctx.Err() != nil {
			return
		}

		handler, ok := that.handlers[msg.Action]
		if !ok {
			log.Warn("unknown action", "action", msg.Action)
			that.sendError(c, msg.Action, "unknown action")
			continue
		}

		var payload Payload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			log.Warn("failed to unmarshal payload", "action", msg.Action, "error", err)
			that.sendError(c, msg.Action, "malformed payload")
			continue
		}

		if payload.Player == nil || payload.Player.ID == "" || payload.ChatID == "" {
			that.sendError(c, msg.Action, "chat_id and player are required")
			continue
		}

		if err := that.hub.bind(c, payload.ChatID, payload.Player.ID); err != nil {
			log.Warn("player does not own the connection", "action", msg.Action, "userID", payload.Player.ID, "error", err)
			that.sendError(c, msg.Action, "player does not match this connection")
			continue
		}

		if err := handler(ctx, c, &payload); err != nil {
			log.Info("action failed", "action", msg.Action, "chatID", payload.ChatID, "userID", payload.Player.ID, "error", err)
		}
	}
}

func (that *Server) sendError(c *client, action, text string) {
	msg, err := newMessage(ActionError, ErrorPayload{Action: action, Error: text})
	if err != nil {
		that.logger.Error("failed to build error response", "error", err)
		return
	}

	that.hub.reply(c, msg)
}
