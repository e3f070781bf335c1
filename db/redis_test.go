package db_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/dev-mohitbeniwal/postcache/db"
)

func TestRedisRateLimiterUnreachableServer(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 200 * time.Millisecond,
	})
	defer client.Close()

	limiter := db.NewRedisRateLimiter(client, 5, time.Minute)
	allowed, err := limiter.Allow(context.Background(), "10.0.0.1")

	assert.Error(t, err)
	assert.False(t, allowed)
}
