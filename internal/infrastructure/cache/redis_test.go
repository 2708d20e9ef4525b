package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"card_market/internal/infrastructure/cache"
)

func TestRedisNameIDsDegradesToMiss(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	ids := cache.NewRedisNameIDs(client, time.Hour)

	ids.Set(ctx, "440-Scout", "176321160")

	_, ok := ids.Get(ctx, "440-Scout")
	rq.False(ok)
}
