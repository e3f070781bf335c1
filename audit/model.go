// audit/model.go
package audit

import (
	"encoding/json"
	"time"
)

const (
	ActionLookup     = "lookup"
	ActionInvalidate = "invalidate"
	ActionUpdate     = "update"
	ActionDelete     = "delete"
)

// AuditLog records one cache lookup or one change to a cached resource.
type AuditLog struct {
	Timestamp     time.Time       `json:"timestamp"`
	Cache         string          `json:"cache"`
	Key           string          `json:"key"`
	Action        string          `json:"action"`
	Outcome       string          `json:"outcome,omitempty"`
	Error         string          `json:"error,omitempty"`
	ChangeDetails json.RawMessage `json:"change_details,omitempty"`
}
