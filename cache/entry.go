package cache

import "time"

// Entry is a cached value with its insertion time and time-to-live.
// An Entry is valid only while now < InsertedAt + TTL; a non-positive TTL is
// never valid.
type Entry[V any] struct {
	Value      V             `json:"value"`
	InsertedAt time.Time     `json:"insertedAt"`
	TTL        time.Duration `json:"ttl"`
}

func NewEntry[V any](value V, ttl time.Duration, now time.Time) Entry[V] {
	return Entry[V]{Value: value, InsertedAt: now, TTL: ttl}
}

func (e Entry[V]) ExpiresAt() time.Time {
	return e.InsertedAt.Add(e.TTL)
}

func (e Entry[V]) Valid(now time.Time) bool {
	return e.TTL > 0 && now.Before(e.ExpiresAt())
}

// Remaining returns how long the entry stays valid, or zero if it is expired.
func (e Entry[V]) Remaining(now time.Time) time.Duration {
	if !e.Valid(now) {
		return 0
	}
	return e.ExpiresAt().Sub(now)
}
