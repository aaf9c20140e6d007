package dispatch

import "context"

// CorrelationID is an opaque token linking a request to its eventual
// result across asynchronous boundaries. IDs are supplied by the caller,
// never generated here, and are passed through untouched. Uniqueness
// across in-flight requests is a caller invariant.
type CorrelationID string

// Correlated pairs a correlation ID with a payload. The pair is immutable:
// it is created once by the caller and threaded unchanged from submission
// to result.
type Correlated[T any] struct {
	ID    CorrelationID
	Value T
}

// NewCorrelated creates a correlated envelope around value.
func NewCorrelated[T any](id CorrelationID, value T) Correlated[T] {
	return Correlated[T]{ID: id, Value: value}
}

// Exchange is a completed request/result pair. The dispatch core produces
// Exchange values; the surrounding redelivery layer decides what to do
// with them.
type Exchange struct {
	Request Request
	Result  Result
}

// Publisher is the downstream hand-off contract for completed exchanges.
// The dispatch core never calls it; it exists so the surrounding system
// can enqueue correlated exchanges for retry or redelivery.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: Publish must honor cancellation/deadlines.
type Publisher interface {
	Publish(ctx context.Context, exchange Correlated[Exchange]) error
}
