// service/audit_subscriber.go
package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dev-mohitbeniwal/postcache/audit"
	"github.com/dev-mohitbeniwal/postcache/cache"
	"github.com/dev-mohitbeniwal/postcache/util"
)

// LookupEventHook publishes every lookup outcome on the bus. Pass it to
// cache.WithLookupHook.
func LookupEventHook[K comparable](bus *util.EventBus) func(ctx context.Context, name string, key K, outcome cache.Outcome, err error) {
	return func(ctx context.Context, name string, key K, outcome cache.Outcome, err error) {
		log := audit.AuditLog{
			Cache:   name,
			Key:     fmt.Sprint(key),
			Action:  audit.ActionLookup,
			Outcome: string(outcome),
		}
		if err != nil {
			log.Error = err.Error()
		}
		bus.Publish(ctx, util.EventCacheLookup, log)
	}
}

// RegisterAuditSubscriber forwards lookup, invalidation and post change events
// to the audit service.
func RegisterAuditSubscriber(bus *util.EventBus, auditService audit.Service) {
	bus.Subscribe(util.EventCacheLookup, func(ctx context.Context, e util.Event) error {
		log, ok := e.Payload.(audit.AuditLog)
		if !ok {
			return fmt.Errorf("unexpected payload %T for %s", e.Payload, e.Type)
		}
		return auditService.LogEvent(ctx, log)
	})

	bus.Subscribe(util.EventCacheInvalidated, func(ctx context.Context, e util.Event) error {
		inv, ok := e.Payload.(util.Invalidation)
		if !ok {
			return fmt.Errorf("unexpected payload %T for %s", e.Payload, e.Type)
		}
		return auditService.LogEvent(ctx, audit.AuditLog{
			Cache:  inv.Cache,
			Key:    inv.Key,
			Action: audit.ActionInvalidate,
		})
	})

	postHandler := func(ctx context.Context, e util.Event) error {
		change, ok := e.Payload.(util.PostChange)
		if !ok {
			return fmt.Errorf("unexpected payload %T for %s", e.Payload, e.Type)
		}
		log := audit.AuditLog{
			Cache:  "posts",
			Key:    fmt.Sprint(change.PostID),
			Action: audit.ActionUpdate,
		}
		if change.ChangeType == util.ChangeDeleted {
			log.Action = audit.ActionDelete
		}
		if change.Post != nil {
			details, err := json.Marshal(change.Post)
			if err != nil {
				return err
			}
			log.ChangeDetails = details
		}
		return auditService.LogEvent(ctx, log)
	}
	bus.Subscribe(util.EventPostUpdated, postHandler)
	bus.Subscribe(util.EventPostDeleted, postHandler)
}
