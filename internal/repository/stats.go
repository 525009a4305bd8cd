package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/tictactoe-chatbot/internal/entity"
)

const (
	statsKeyPrefix = "stats:chat:"
	fieldGames     = "games"
	fieldDraws     = "draws"
	fieldWinPrefix = "wins:"
)

var ErrUnsupportedOutcome = errors.New("outcome is not recorded")

type StatsRepository interface {
	Record(ctx context.Context, record entity.GameRecord) error
	GetByChatID(ctx context.Context, chatID string) (*entity.ChatStats, error)
}

type dbStats struct {
	client *redis.Client
}

func NewStatsRepository(client *redis.Client) StatsRepository {
	return &dbStats{
		client: client,
	}
}

func (that *dbStats) Record(ctx context.Context, record entity.GameRecord) error {
	var field string

	switch record.Outcome {
	case entity.OutcomeWin:
		field = fieldWinPrefix + record.Winner
	case entity.OutcomeDraw:
		field = fieldDraws
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedOutcome, record.Outcome)
	}

	statsKey := statsKeyPrefix + record.ChatID

	_, err := that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, statsKey, fieldGames, 1)
		pipe.HIncrBy(ctx, statsKey, field, 1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to record game: %w", err)
	}

	return nil
}

func (that *dbStats) GetByChatID(ctx context.Context, chatID string) (*entity.ChatStats, error) {
	statsKey := statsKeyPrefix + chatID

	response, err := that.client.HGetAll(ctx, statsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get stats by chat id: %w", err)
	}

	stats := &entity.ChatStats{
		ChatID: chatID,
		Wins:   make(map[string]int64),
	}

	for field, raw := range response {
		value, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stats field %s: %w", field, err)
		}

		switch {
		case field == fieldGames:
			stats.Games = value
		case field == fieldDraws:
			stats.Draws = value
		case strings.HasPrefix(field, fieldWinPrefix):
			stats.Wins[strings.TrimPrefix(field, fieldWinPrefix)] = value
		}
	}

	return stats, nil
}
