package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"card_market/pkg/logx"
)

const nameIDKeyPrefix = "steam:nameid:"

// RedisNameIDs shares item name ids between processes. Redis failures
// degrade to cache misses.
type RedisNameIDs struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisNameIDs(client *redis.Client, ttl time.Duration) *RedisNameIDs {
	return &RedisNameIDs{
		client: client,
		ttl:    ttl,
	}
}

func (r *RedisNameIDs) Get(ctx context.Context, hashName string) (string, bool) {
	id, err := r.client.Get(ctx, nameIDKeyPrefix+hashName).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger(ctx).Warn("redis get name id", slog.String(logx.FieldHashName, hashName), logx.Error(err))
		}

		return "", false
	}

	return id, true
}

func (r *RedisNameIDs) Set(ctx context.Context, hashName, nameID string) {
	if err := r.client.Set(ctx, nameIDKeyPrefix+hashName, nameID, r.ttl).Err(); err != nil {
		logger(ctx).Warn("redis set name id", slog.String(logx.FieldHashName, hashName), logx.Error(err))
	}
}
