package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mello-felipe/travel-map-social-app/pkg/metrics"
)

const serviceName = "posts-gateway"

type redisIdempotencyRepository struct {
	client *redis.Client
}

// NewRedisIdempotencyRepository creates a Redis-backed idempotency store.
func NewRedisIdempotencyRepository(client *redis.Client) IdempotencyRepository {
	return &redisIdempotencyRepository{client: client}
}

// MarkIfNew sets the key atomically with SETNX. A key that was already
// present means the request is a replay.
func (r *redisIdempotencyRepository) MarkIfNew(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	redisKey := fmt.Sprintf("idempotency:%s", key)

	created, err := r.client.SetNX(ctx, redisKey, 1, ttl).Result()
	if err != nil {
		metrics.RecordRedisError(serviceName, "setnx")
		return false, fmt.Errorf("failed to mark idempotency key: %w", err)
	}

	return !created, nil
}
