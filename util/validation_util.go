// util/validation_util.go

package util

import (
	"fmt"
	"strconv"
	"strings"

	postcache_errors "github.com/dev-mohitbeniwal/postcache/errors"
	"github.com/dev-mohitbeniwal/postcache/model"
)

// MaxBatchIDs bounds the ids accepted by a single batch lookup.
const MaxBatchIDs = 100

type ValidationUtil struct{}

func NewValidationUtil() *ValidationUtil {
	return &ValidationUtil{}
}

// ValidateID is usable as a cache key validator.
func (v *ValidationUtil) ValidateID(id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: id must be positive, got %d", postcache_errors.ErrInvalidKey, id)
	}
	return nil
}

// ParseID parses a path parameter into a positive id.
func (v *ValidationUtil) ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", postcache_errors.ErrInvalidKey, raw)
	}
	if err := v.ValidateID(id); err != nil {
		return 0, err
	}
	return id, nil
}

// ParseIDs parses a comma separated id list, dropping duplicates.
func (v *ValidationUtil) ParseIDs(raw string) ([]int64, error) {
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	seen := make(map[int64]struct{}, len(parts))

	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		id, err := v.ParseID(p)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", postcache_errors.ErrInvalidIDList, err)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}

	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no ids given", postcache_errors.ErrInvalidIDList)
	}
	if len(ids) > MaxBatchIDs {
		return nil, fmt.Errorf("%w: at most %d ids per request", postcache_errors.ErrInvalidIDList, MaxBatchIDs)
	}
	return ids, nil
}

func (v *ValidationUtil) ValidatePostUpdate(update model.PostUpdate) error {
	if update.UserID <= 0 {
		return fmt.Errorf("%w: userId must be positive", postcache_errors.ErrInvalidPostData)
	}
	if strings.TrimSpace(update.Title) == "" {
		return fmt.Errorf("%w: title cannot be empty", postcache_errors.ErrInvalidPostData)
	}
	if strings.TrimSpace(update.Body) == "" {
		return fmt.Errorf("%w: body cannot be empty", postcache_errors.ErrInvalidPostData)
	}
	return nil
}
