package main

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/dev-mohitbeniwal/postcache/cache"
	"github.com/dev-mohitbeniwal/postcache/dao"
	"github.com/dev-mohitbeniwal/postcache/db"
	logger "github.com/dev-mohitbeniwal/postcache/logging"
	"github.com/dev-mohitbeniwal/postcache/storage"
)

const (
	tierMemory = "memory"
	tierRedis  = "redis"
	tierS3     = "s3"
	tierNeo4j  = "neo4j"
)

// tierBackends holds the connections shared by every cache built from the
// configured tier list.
type tierBackends struct {
	names           []string
	redis           redis.Cmdable
	redisPrefix     string
	encryptionKey   []byte
	s3              storage.S3API
	s3Bucket        string
	s3Prefix        string
	neo4j           db.Querier
	cleanupInterval time.Duration
}

func (b *tierBackends) uses(tier string) bool {
	for _, name := range b.names {
		if name == tier {
			return true
		}
	}
	return false
}

// buildStore assembles the store for one cache namespace, fastest tier first.
// Sweepers for tiers that need them run until ctx is done.
func buildStore[K comparable, V any](ctx context.Context, b *tierBackends, namespace string) (cache.Store[K, V], error) {
	var tiers []cache.Tier[K, V]

	for _, name := range b.names {
		var store cache.Store[K, V]

		switch name {
		case tierMemory:
			mem := cache.NewMemoryStore[K, V]()
			go cache.NewCleaner(namespace+"/"+name, mem, b.cleanupInterval).Start(ctx)
			store = mem
		case tierRedis:
			var codec cache.Codec[V]
			if len(b.encryptionKey) > 0 {
				enc, err := cache.NewEncryptedCodec[V](cache.JSONCodec[V]{}, b.encryptionKey)
				if err != nil {
					return nil, err
				}
				codec = enc
			}
			prefix := namespace
			if b.redisPrefix != "" {
				prefix = b.redisPrefix + ":" + namespace
			}
			store = cache.NewRedisStore[K, V](b.redis, prefix, codec)
		case tierS3:
			store = storage.NewS3Store[K, V](b.s3, b.s3Bucket, b.s3Prefix, namespace, nil)
		case tierNeo4j:
			entries := dao.NewEntryDAO[K, V](b.neo4j, namespace, nil)
			go cache.NewCleaner(namespace+"/"+name, entries, b.cleanupInterval).Start(ctx)
			store = entries
		default:
			return nil, fmt.Errorf("unknown cache tier %q", name)
		}

		tiers = append(tiers, cache.Tier[K, V]{Name: name, Store: store})
	}

	if len(tiers) == 0 {
		return nil, fmt.Errorf("no cache tiers configured for %s", namespace)
	}

	logger.Info("Cache store built", zap.String("cache", namespace), zap.Strings("tiers", b.names))
	if len(tiers) == 1 {
		return tiers[0].Store, nil
	}
	return cache.NewLayered(tiers...), nil
}
