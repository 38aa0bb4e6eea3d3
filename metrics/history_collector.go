package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/marcelsud/webhook-scheduler/webhook"
)

// HistoryCollector implements the Collector interface over a webhook.Reader
type HistoryCollector struct {
	reader webhook.Reader
}

// NewHistoryCollector creates a new history metrics collector
func NewHistoryCollector(reader webhook.Reader) *HistoryCollector {
	return &HistoryCollector{
		reader: reader,
	}
}

// Collect gathers all metrics from a single snapshot of the history
func (c *HistoryCollector) Collect(ctx context.Context) (Metrics, error) {
	history, err := c.reader.List(ctx)
	if err != nil {
		return Metrics{}, fmt.Errorf("listing history: %w", err)
	}

	m := Metrics{
		HistorySize: int64(len(history)),
		StatusCounts: map[string]int64{
			webhook.StatusSuccess: 0,
			webhook.StatusError:   0,
		},
		TargetCounts: make(map[string]int64),
		Timestamp:    time.Now(),
	}
	for _, r := range history {
		m.StatusCounts[r.StatusMessage]++
		m.TargetCounts[r.Target]++
	}
	if len(history) > 0 {
		m.LastInvocation = history[len(history)-1].Timestamp
	}
	return m, nil
}

// GetHistorySize returns the number of kept responses
func (c *HistoryCollector) GetHistorySize(ctx context.Context) (int64, error) {
	n, err := c.reader.Len(ctx)
	if err != nil {
		return 0, fmt.Errorf("counting history: %w", err)
	}
	return int64(n), nil
}

// GetStatusCounts returns counts of kept responses grouped by status message
func (c *HistoryCollector) GetStatusCounts(ctx context.Context) (map[string]int64, error) {
	m, err := c.Collect(ctx)
	if err != nil {
		return nil, err
	}
	return m.StatusCounts, nil
}

// GetLastInvocation returns the timestamp of the latest response
func (c *HistoryCollector) GetLastInvocation(ctx context.Context) (time.Time, bool, error) {
	latest, ok, err := c.reader.Latest(ctx)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("getting latest response: %w", err)
	}
	return latest.Timestamp, ok, nil
}
