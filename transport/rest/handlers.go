package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/rocketscienceinc/tictactoe-chatbot/internal/entity"
)

type themeLister interface {
	All() []entity.Theme
}

type statsReader interface {
	GetByChatID(ctx context.Context, chatID string) (*entity.ChatStats, error)
}

type handlers struct {
	logger *slog.Logger
	themes themeLister
	stats  statsReader
}

func (that *handlers) listThemes(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	that.writeJSON(w, http.StatusOK, that.themes.All())
}

func (that *handlers) chatStats(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	log := that.logger.With("method", "chatStats")

	if that.stats == nil {
		http.Error(w, "stats are disabled", http.StatusNotFound)
		return
	}

	chatID := params.ByName("chat")

	stats, err := that.stats.GetByChatID(r.Context(), chatID)
	if err != nil {
		log.Error("failed to get chat stats", "chatID", chatID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	that.writeJSON(w, http.StatusOK, stats)
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
