package websocket

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-chatbot/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-chatbot/internal/entity"
	"github.com/rocketscienceinc/tictactoe-chatbot/internal/usecase"
)

// handleChatJoin subscribes the connection and shows the running board, if any.
func (that *Server) handleChatJoin(_ context.Context, c *client, payload *Payload) error {
	view, ok := that.uGame.CurrentView(payload.ChatID)
	if !ok {
		return nil
	}

	msg, err := newMessage(ActionBoardRender, view)
	if err != nil {
		return fmt.Errorf("failed to build board: %w", err)
	}

	that.hub.reply(c, msg)

	return nil
}

func (that *Server) handleChatStart(_ context.Context, c *client, _ *Payload) error {
	msg, err := newMessage(ActionNotify, NotifyPayload{Text: usecase.Greeting})
	if err != nil {
		return fmt.Errorf("failed to build greeting: %w", err)
	}

	that.hub.reply(c, msg)

	return nil
}

func (that *Server) handleNewGame(ctx context.Context, _ *client, payload *Payload) error {
	session, err := that.uGame.RequestNewGame(ctx, usecase.NewGameRequest{
		ChatID:     payload.ChatID,
		Player:     *payload.Player,
		MessageRef: payload.MessageRef,
	})
	if err != nil {
		return fmt.Errorf("failed to start game: %w", err)
	}

	that.logger.Info("game started", "chatID", payload.ChatID, "sessionID", session.ID)

	return nil
}

func (that *Server) handleGameTurn(ctx context.Context, c *client, payload *Payload) error {
	if payload.Data == entity.ActionNoop {
		that.uGame.PressInert(ctx, payload.ChatID, payload.MessageRef, payload.Player.ID)
		return nil
	}

	cell, err := usecase.ParseCell(payload.Data)
	if err != nil {
		that.sendError(c, ActionGameTurn, "invalid cell")
		return err
	}

	_, err = that.uGame.SubmitMove(ctx, usecase.MoveRequest{
		ChatID:     payload.ChatID,
		MessageRef: payload.MessageRef,
		Player:     *payload.Player,
		Cell:       cell,
	})
	if errors.Is(err, apperror.ErrStaleOrUnknownSession) && payload.MessageRef != "" {
		if stripErr := that.hub.Strip(payload.ChatID, payload.MessageRef); stripErr != nil {
			that.logger.Warn("failed to strip stale board", "chatID", payload.ChatID, "error", stripErr)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to make turn: %w", err)
	}

	return nil
}

func (that *Server) handleThemePrompt(ctx context.Context, _ *client, payload *Payload) error {
	if _, err := that.uGame.OpenThemePicker(ctx, payload.ChatID, payload.MessageRef, *payload.Player); err != nil {
		return fmt.Errorf("failed to open theme picker: %w", err)
	}

	return nil
}

func (that *Server) handleThemeSet(ctx context.Context, c *client, payload *Payload) error {
	themeContext := usecase.ThemeContext(payload.Context)
	if themeContext == "" {
		themeContext = usecase.ThemeContextInGame
	}

	if themeContext != usecase.ThemeContextInGame && themeContext != usecase.ThemeContextPreGame {
		that.sendError(c, ActionThemeSet, "unknown theme context")
		return fmt.Errorf("%w: context %q", apperror.ErrInvalidInput, payload.Context)
	}

	_, err := that.uGame.ChangeTheme(ctx, usecase.ThemeRequest{
		ChatID:     payload.ChatID,
		MessageRef: payload.MessageRef,
		Player:     *payload.Player,
		ThemeID:    strings.TrimPrefix(payload.Theme, entity.ActionThemePrefix),
		Context:    themeContext,
	})
	if err != nil {
		return fmt.Errorf("failed to change theme: %w", err)
	}

	return nil
}
