package metrics

import (
	"context"
	"time"
)

// Metrics represents the current state of the invocation history.
type Metrics struct {
	// HistorySize is the number of responses currently kept
	HistorySize int64 `json:"history_size"`

	// StatusCounts maps status message ("Success", "Error") to count of kept responses
	StatusCounts map[string]int64 `json:"status_counts"`

	// TargetCounts maps target name to count of kept responses
	TargetCounts map[string]int64 `json:"target_counts"`

	// LastInvocation is the timestamp of the most recent response, zero when empty
	LastInvocation time.Time `json:"last_invocation"`

	// Timestamp when metrics were collected
	Timestamp time.Time `json:"timestamp"`
}

// Collector defines the interface for collecting metrics from the history.
type Collector interface {
	// Collect gathers current metrics
	Collect(ctx context.Context) (Metrics, error)

	// GetHistorySize returns the number of kept responses
	GetHistorySize(ctx context.Context) (int64, error)

	// GetStatusCounts returns the count of kept responses by status message
	GetStatusCounts(ctx context.Context) (map[string]int64, error)

	// GetLastInvocation returns when the most recent response was recorded
	GetLastInvocation(ctx context.Context) (time.Time, bool, error)
}
