package repository

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const blockedKey = "moderation:blocked"

type ModerationRepository interface {
	IsBlocked(ctx context.Context, userID string) (bool, error)
	Block(ctx context.Context, userID string) error
	Unblock(ctx context.Context, userID string) error
}

type dbModeration struct {
	client *redis.Client
}

func NewModerationRepository(client *redis.Client) ModerationRepository {
	return &dbModeration{
		client: client,
	}
}

func (that *dbModeration) IsBlocked(ctx context.Context, userID string) (bool, error) {
	blocked, err := that.client.SIsMember(ctx, blockedKey, userID).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check blocked user: %w", err)
	}

	return blocked, nil
}

func (that *dbModeration) Block(ctx context.Context, userID string) error {
	if err := that.client.SAdd(ctx, blockedKey, userID).Err(); err != nil {
		return fmt.Errorf("failed to block user: %w", err)
	}

	return nil
}

func (that *dbModeration) Unblock(ctx context.Context, userID string) error {
	if err := that.client.SRem(ctx, blockedKey, userID).Err(); err != nil {
		return fmt.Errorf("failed to unblock user: %w", err)
	}

	return nil
}
