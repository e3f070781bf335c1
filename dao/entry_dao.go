// dao/entry_dao.go
package dao

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/postcache/cache"
	"github.com/dev-mohitbeniwal/postcache/db"
	postcache_errors "github.com/dev-mohitbeniwal/postcache/errors"
	logger "github.com/dev-mohitbeniwal/postcache/logging"
)

const (
	getEntryQuery = `
		MATCH (e:CacheEntry {namespace: $namespace, key: $key})
		RETURN e.payload AS payload, e.expiresAt AS expiresAt
	`
	putEntryQuery = `
		MERGE (e:CacheEntry {namespace: $namespace, key: $key})
		SET e.payload = $payload, e.expiresAt = $expiresAt, e.updatedAt = $now
	`
	deleteEntryQuery = `
		MATCH (e:CacheEntry {namespace: $namespace, key: $key})
		DETACH DELETE e
	`
	purgeExpiredQuery = `
		MATCH (e:CacheEntry {namespace: $namespace})
		WHERE e.expiresAt <= $now
		DETACH DELETE e
		RETURN count(e) AS removed
	`
)

// EntryDAO stores cache entries as :CacheEntry nodes, one namespace per
// resource type. Expiry is checked on read; PurgeExpired removes stale nodes.
type EntryDAO[K comparable, V any] struct {
	querier   db.Querier
	namespace string
	codec     cache.Codec[V]
	now       func() time.Time
}

func NewEntryDAO[K comparable, V any](querier db.Querier, namespace string, codec cache.Codec[V]) *EntryDAO[K, V] {
	if codec == nil {
		codec = cache.JSONCodec[V]{}
	}
	return &EntryDAO[K, V]{
		querier:   querier,
		namespace: namespace,
		codec:     codec,
		now:       time.Now,
	}
}

func (dao *EntryDAO[K, V]) params(key K) map[string]any {
	return map[string]any{
		"namespace": dao.namespace,
		"key":       fmt.Sprint(key),
	}
}

func (dao *EntryDAO[K, V]) Get(ctx context.Context, key K) (cache.Entry[V], bool, error) {
	records, err := dao.querier.ExecuteQuery(ctx, getEntryQuery, dao.params(key))
	if err != nil {
		return cache.Entry[V]{}, false, fmt.Errorf("%w: failed to get %s entry %v: %w", postcache_errors.ErrCacheUnavailable, dao.namespace, key, err)
	}
	if len(records) == 0 {
		return cache.Entry[V]{}, false, nil
	}

	raw, _ := records[0].Get("payload")
	payload, ok := raw.(string)
	if !ok {
		return cache.Entry[V]{}, false, fmt.Errorf("%w: %s entry %v has no payload", postcache_errors.ErrCacheUnavailable, dao.namespace, key)
	}

	entry, err := dao.codec.Decode([]byte(payload))
	if err != nil {
		return cache.Entry[V]{}, false, fmt.Errorf("%w: %w", postcache_errors.ErrCacheUnavailable, err)
	}
	if !entry.Valid(dao.now()) {
		return cache.Entry[V]{}, false, nil
	}

	logger.Debug("Entry retrieved from Neo4j", zap.String("namespace", dao.namespace), zap.Any("key", key))
	return entry, true, nil
}

func (dao *EntryDAO[K, V]) Put(ctx context.Context, key K, value V, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	now := dao.now()
	entry := cache.NewEntry(value, ttl, now)
	payload, err := dao.codec.Encode(entry)
	if err != nil {
		return fmt.Errorf("failed to encode %s entry %v: %w", dao.namespace, key, err)
	}

	params := dao.params(key)
	params["payload"] = string(payload)
	params["expiresAt"] = entry.ExpiresAt().UnixMilli()
	params["now"] = now.UnixMilli()

	if _, err := dao.querier.ExecuteQuery(ctx, putEntryQuery, params); err != nil {
		return fmt.Errorf("%w: failed to put %s entry %v: %w", postcache_errors.ErrCacheUnavailable, dao.namespace, key, err)
	}

	logger.Debug("Entry stored in Neo4j", zap.String("namespace", dao.namespace), zap.Any("key", key))
	return nil
}

func (dao *EntryDAO[K, V]) Invalidate(ctx context.Context, key K) error {
	if _, err := dao.querier.ExecuteQuery(ctx, deleteEntryQuery, dao.params(key)); err != nil {
		return fmt.Errorf("%w: failed to delete %s entry %v: %w", postcache_errors.ErrCacheUnavailable, dao.namespace, key, err)
	}
	logger.Debug("Entry deleted from Neo4j", zap.String("namespace", dao.namespace), zap.Any("key", key))
	return nil
}

// PurgeExpired deletes every expired node of the namespace.
func (dao *EntryDAO[K, V]) PurgeExpired(ctx context.Context) (int64, error) {
	records, err := dao.querier.ExecuteQuery(ctx, purgeExpiredQuery, map[string]any{
		"namespace": dao.namespace,
		"now":       dao.now().UnixMilli(),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired %s entries: %w", dao.namespace, err)
	}
	if len(records) == 0 {
		return 0, nil
	}
	raw, _ := records[0].Get("removed")
	removed, _ := raw.(int64)
	return removed, nil
}

// RemoveExpired lets a cache.Cleaner drive PurgeExpired.
func (dao *EntryDAO[K, V]) RemoveExpired() int {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	removed, err := dao.PurgeExpired(ctx)
	if err != nil {
		logger.Warn("Failed to purge expired entries", zap.String("namespace", dao.namespace), zap.Error(err))
		return 0
	}
	return int(removed)
}
