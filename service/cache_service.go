// service/cache_service.go
package service

import (
	"context"
	"errors"
	"time"

	"github.com/dev-mohitbeniwal/postcache/audit"
	"github.com/dev-mohitbeniwal/postcache/cache"
)

var ErrAuditDisabled = errors.New("audit log is disabled")

type ICacheService interface {
	Stats() []cache.StatsSnapshot
	AuditLogs(ctx context.Context, from, to time.Time, cacheName, key string) ([]audit.AuditLog, error)
}

// CacheService reports on the lookups wired into the application.
type CacheService struct {
	lookups      []StatsReporter
	auditService audit.Service
}

// NewCacheService accepts a nil audit service when auditing is off.
func NewCacheService(auditService audit.Service, lookups ...StatsReporter) *CacheService {
	return &CacheService{lookups: lookups, auditService: auditService}
}

func (s *CacheService) Stats() []cache.StatsSnapshot {
	out := make([]cache.StatsSnapshot, 0, len(s.lookups))
	for _, l := range s.lookups {
		out = append(out, l.Stats())
	}
	return out
}

func (s *CacheService) AuditLogs(ctx context.Context, from, to time.Time, cacheName, key string) ([]audit.AuditLog, error) {
	if s.auditService == nil {
		return nil, ErrAuditDisabled
	}
	return s.auditService.QueryLogs(ctx, from, to, cacheName, key)
}
