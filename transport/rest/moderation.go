package rest

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
)

type moderationAdmin interface {
	Block(ctx context.Context, userID string) error
	Unblock(ctx context.Context, userID string) error
}

type moderationHandlers struct {
	logger     *slog.Logger
	moderation moderationAdmin
	token      string
}

// requireToken rejects requests without "Authorization: Bearer <admin token>".
func (that *moderationHandlers) requireToken(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(token), []byte(that.token)) != 1 {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next(w, r, params)
	}
}

func (that *moderationHandlers) block(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	log := that.logger.With("method", "block")
	userID := params.ByName("user")

	if err := that.moderation.Block(r.Context(), userID); err != nil {
		log.Error("failed to block user", "userID", userID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	log.Info("user blocked", "userID", userID)
	w.WriteHeader(http.StatusNoContent)
}

func (that *moderationHandlers) unblock(w http.ResponseWriter, r *http.Request, params httprouter.Params) {
	log := that.logger.With("method", "unblock")
	userID := params.ByName("user")

	if err := that.moderation.Unblock(r.Context(), userID); err != nil {
		log.Error("failed to unblock user", "userID", userID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	log.Info("user unblocked", "userID", userID)
	w.WriteHeader(http.StatusNoContent)
}
