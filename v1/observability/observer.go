// Package observability defines the hook through which logsink components
// report what happens underneath the fire-and-forget logging calls: failed
// sink writes, daily file rotations and retention pruning.
//
// Nothing in logsink requires an observer. When none is attached the events
// are simply dropped.
package observability

import "time"

// Observer receives operation notifications. Implementations must be safe
// for concurrent use and must not block; they are called inline on the
// logging path, after any file lock has been released. An observer may log
// through the logger that reports to it, except for a failed "write": logging
// that back to the failing sink recurses.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}

// OperationContext describes a single observed operation.
type OperationContext struct {
	// Component is the reporting package, e.g. "sink" or "rotation".
	Component string

	// Operation is what happened: "write", "rotate" or "prune".
	Operation string

	// Resource is the sink name.
	Resource string

	// SubResource is additional context such as a file path or sink kind.
	SubResource string

	// Duration is how long the operation took, zero when not measured.
	Duration time.Duration

	// Error is the failure, nil on success.
	Error error

	// Size is the number of bytes involved, when applicable.
	Size int64

	// Metadata holds anything else worth reporting.
	Metadata map[string]interface{}
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(ctx OperationContext)

// ObserveOperation calls f(ctx).
func (f ObserverFunc) ObserveOperation(ctx OperationContext) {
	f(ctx)
}

// Channel returns an Observer that forwards every operation to ch without
// blocking. Operations that do not fit in the channel's buffer are dropped.
func Channel(ch chan<- OperationContext) Observer {
	return ObserverFunc(func(ctx OperationContext) {
		select {
		case ch <- ctx:
		default:
		}
	})
}
