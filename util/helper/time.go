package helper_util

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

func ParseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}

// GetTimeRange reads the RFC3339 from/to query parameters, defaulting to the
// window of the given length that ends now.
func GetTimeRange(c *gin.Context, window time.Duration, now time.Time) (from, to time.Time, err error) {
	to = now
	if raw := c.Query("to"); raw != "" {
		if to, err = ParseTime(raw); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid to %q: %w", raw, err)
		}
	}
	from = to.Add(-window)
	if raw := c.Query("from"); raw != "" {
		if from, err = ParseTime(raw); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid from %q: %w", raw, err)
		}
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("from must not be after to")
	}
	return from, to, nil
}
