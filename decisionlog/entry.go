// Package decisionlog records an audit trail of authorization decisions.
// The guard itself stays pure; the log is fed through a plugin hook.
package decisionlog

import (
	"context"
	"time"

	"github.com/xraph/aegis/id"
)

// Entry is a single authorization decision audit record.
type Entry struct {
	ID         id.DecisionID `json:"id"`
	Operation  string        `json:"operation,omitempty"`
	SubjectID  string        `json:"subject_id,omitempty"`
	RoleName   string        `json:"role_name,omitempty"`
	Decision   string        `json:"decision"`
	Reason     string        `json:"reason,omitempty"`
	EvalTimeNs int64         `json:"eval_time_ns"`
	CreatedAt  time.Time     `json:"created_at"`
}

// Recorder accepts decision audit records.
type Recorder interface {
	// Record persists a new decision log entry.
	Record(ctx context.Context, e *Entry) error
}

// QueryFilter contains filters for listing decision log entries.
type QueryFilter struct {
	SubjectID string     `json:"subject_id,omitempty"`
	Decision  string     `json:"decision,omitempty"`
	After     *time.Time `json:"after,omitempty"`
	Before    *time.Time `json:"before,omitempty"`
	Limit     int        `json:"limit,omitempty"`
}
