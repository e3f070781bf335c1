package cache

import (
	"context"
	"time"

	"go.uber.org/zap"

	logger "github.com/dev-mohitbeniwal/postcache/logging"
)

// Expirer is the minimal contract the Cleaner needs from a store.
type Expirer interface {
	RemoveExpired() int
}

// Cleaner periodically removes expired entries from a store.
type Cleaner struct {
	name     string
	store    Expirer
	interval time.Duration
}

func NewCleaner(name string, store Expirer, interval time.Duration) *Cleaner {
	return &Cleaner{
		name:     name,
		store:    store,
		interval: interval,
	}
}

// Start runs the cleanup loop until the context is cancelled.
// It blocks and should typically be run in a separate goroutine.
func (c *Cleaner) Start(ctx context.Context) {
	if c.interval <= 0 {
		logger.Debug("Cache cleaner disabled", zap.String("cache", c.name))
		return
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.runOnce()
		case <-ctx.Done():
			logger.Debug("Cache cleaner stopped", zap.String("cache", c.name))
			return
		}
	}
}

func (c *Cleaner) runOnce() int {
	removed := c.store.RemoveExpired()
	if removed > 0 {
		logger.Debug("Cache cleaner removed expired entries",
			zap.String("cache", c.name),
			zap.Int("removed", removed))
	}
	return removed
}
