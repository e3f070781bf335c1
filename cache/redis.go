// cache/redis.go
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	postcache_errors "github.com/dev-mohitbeniwal/postcache/errors"
	logger "github.com/dev-mohitbeniwal/postcache/logging"
)

// RedisStore keeps codec-encoded entries under "<prefix>:<key>" with native
// Redis expiry set to the entry TTL.
type RedisStore[K comparable, V any] struct {
	client redis.Cmdable
	prefix string
	codec  Codec[V]
	now    func() time.Time
}

func NewRedisStore[K comparable, V any](client redis.Cmdable, prefix string, codec Codec[V]) *RedisStore[K, V] {
	if codec == nil {
		codec = JSONCodec[V]{}
	}
	return &RedisStore[K, V]{
		client: client,
		prefix: prefix,
		codec:  codec,
		now:    time.Now,
	}
}

func (s *RedisStore[K, V]) key(key K) string {
	if s.prefix == "" {
		return fmt.Sprint(key)
	}
	return fmt.Sprintf("%s:%v", s.prefix, key)
}

func (s *RedisStore[K, V]) Get(ctx context.Context, key K) (Entry[V], bool, error) {
	redisKey := s.key(key)
	data, err := s.client.Get(ctx, redisKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry[V]{}, false, nil
	} else if err != nil {
		return Entry[V]{}, false, fmt.Errorf("%w: failed to get %s from redis: %w", postcache_errors.ErrCacheUnavailable, redisKey, err)
	}

	entry, err := s.codec.Decode(data)
	if err != nil {
		return Entry[V]{}, false, fmt.Errorf("%w: %s: %w", postcache_errors.ErrCacheUnavailable, redisKey, err)
	}
	if !entry.Valid(s.now()) {
		return Entry[V]{}, false, nil
	}

	logger.Debug("Entry retrieved from redis", zap.String("key", redisKey))
	return entry, true, nil
}

func (s *RedisStore[K, V]) Put(ctx context.Context, key K, value V, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	redisKey := s.key(key)
	data, err := s.codec.Encode(NewEntry(value, ttl, s.now()))
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", redisKey, err)
	}

	if err := s.client.Set(ctx, redisKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("%w: failed to set %s in redis: %w", postcache_errors.ErrCacheUnavailable, redisKey, err)
	}

	logger.Debug("Entry cached in redis", zap.String("key", redisKey), zap.Duration("ttl", ttl))
	return nil
}

func (s *RedisStore[K, V]) Invalidate(ctx context.Context, key K) error {
	redisKey := s.key(key)
	if err := s.client.Del(ctx, redisKey).Err(); err != nil {
		return fmt.Errorf("%w: failed to delete %s from redis: %w", postcache_errors.ErrCacheUnavailable, redisKey, err)
	}
	logger.Debug("Entry deleted from redis", zap.String("key", redisKey))
	return nil
}
