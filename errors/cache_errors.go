// errors/cache_errors.go
package errors

import "errors"

// Lookup taxonomy. Get on a tiered lookup only ever returns ErrNotFound,
// ErrSourceUnavailable or ErrInvalidKey. ErrCacheUnavailable surfaces from
// explicit invalidation only.
var (
	ErrCacheUnavailable  = errors.New("cache unavailable")
	ErrNotFound          = errors.New("not found")
	ErrSourceUnavailable = errors.New("source unavailable")
	ErrInvalidKey        = errors.New("invalid key")
)
