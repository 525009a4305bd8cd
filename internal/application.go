package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-chatbot/internal/config"
	"github.com/rocketscienceinc/tictactoe-chatbot/internal/repository"
	"github.com/rocketscienceinc/tictactoe-chatbot/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-chatbot/internal/scheduler"
	"github.com/rocketscienceinc/tictactoe-chatbot/internal/theme"
	"github.com/rocketscienceinc/tictactoe-chatbot/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-chatbot/transport/rest"
	"github.com/rocketscienceinc/tictactoe-chatbot/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	themes := theme.NewRegistry()
	hub := websocket.NewHub(logger)

	var (
		opts     = []usecase.Option{usecase.WithJoinTimeout(conf.Game.JoinTimeout)}
		restOpts []rest.Option
		stats    repository.StatsRepository
	)

	if conf.UsesRedis() {
		redisStorage, err := connectRedis(ctx, &conf.Redis)
		if err != nil {
			return err
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		if conf.Game.Moderation {
			moderation := repository.NewModerationRepository(redisStorage)
			opts = append(opts, usecase.WithModerator(moderation))
			restOpts = append(restOpts, rest.WithModeration(moderation, conf.AdminToken))
		}

		if conf.Game.Stats {
			stats = repository.NewStatsRepository(redisStorage)
			opts = append(opts, usecase.WithStats(stats))
		}
	}

	gameManager := usecase.NewGameManager(
		logger,
		repository.NewSessionRepository(),
		repository.NewPreferenceRepository(),
		themes,
		hub,
		hub,
		scheduler.New(logger),
		opts...,
	)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		restServer := rest.New(logger, themes, stats, restOpts...)
		if httpErr := restServer.Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, hub, gameManager)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err := <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err := <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

func connectRedis(ctx context.Context, conf *config.Redis) (*redis.Client, error) {
	redisAddrString := conf.GetRedisAddr()
	if redisAddrString == "" {
		return nil, ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString, conf.Password, conf.DB)
	if err != nil {
		return nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	return redisStorage, nil
}
