package webhook

import (
	"context"
)

/* Small, focused interfaces following "The Go Way"
 * The history is bounded: implementations evict the oldest entry
 * once their capacity is reached
 */

// Reader provides read operations over the invocation history
type Reader interface {
	/* List returns a point-in-time copy of the history, oldest first
	 * Callers own the returned slice
	 */
	List(ctx context.Context) ([]Response, error)
	// Latest returns the most recently recorded entry, false when the history is empty
	Latest(ctx context.Context) (Response, bool, error)
	Len(ctx context.Context) (int, error)
}

// Writer provides write operations over the invocation history
type Writer interface {
	Append(ctx context.Context, response Response) error
	Clear(ctx context.Context) error
}

type Repository interface {
	Reader
	Writer
}

// Recorder receives every finished invocation, typically to export metrics
type Recorder interface {
	RecordInvocation(ctx context.Context, response Response)
}

type nopRecorder struct{}

func (nopRecorder) RecordInvocation(context.Context, Response) {}
