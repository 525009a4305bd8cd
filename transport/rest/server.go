package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
)

type Server struct {
	logger     *slog.Logger
	handlers   *handlers
	moderation *moderationHandlers
}

type Option func(*Server)

// WithModeration exposes the block list under /moderation, guarded by token.
// An empty token leaves the routes off.
func WithModeration(moderation moderationAdmin, token string) Option {
	return func(that *Server) {
		if moderation == nil || token == "" {
			return
		}

		that.moderation = &moderationHandlers{
			logger:     that.logger,
			moderation: moderation,
			token:      token,
		}
	}
}

// New builds the HTTP API. stats may be nil when the stats sink is disabled.
func New(logger *slog.Logger, themes themeLister, stats statsReader, opts ...Option) *Server {
	logger = logger.With("component", "rest")

	server := &Server{
		logger: logger,
		handlers: &handlers{
			logger: logger,
			themes: themes,
			stats:  stats,
		},
	}

	for _, opt := range opts {
		opt(server)
	}

	return server
}

func (that *Server) Handler() http.Handler {
	router := httprouter.New()
	router.GET("/ping", pingHandler)
	router.GET("/themes", that.handlers.listThemes)
	router.GET("/stats/:chat", that.handlers.chatStats)

	if that.moderation != nil {
		router.PUT("/moderation/blocked/:user", that.moderation.requireToken(that.moderation.block))
		router.DELETE("/moderation/blocked/:user", that.moderation.requireToken(that.moderation.unblock))
	}

	return router
}

// Start - starts the HTTP server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
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
