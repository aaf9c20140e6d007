package dispatch

import "errors"

// Sentinel errors for dispatch operations.
var (
	// ErrNonSuccess is returned inside a Result when a syntactically valid
	// response is rejected by the recognizer.
	ErrNonSuccess = errors.New("dispatch: response rejected by recognizer")

	// ErrBufferTimeout is the cause wrapped into a transport failure when
	// response body buffering exceeds the configured deadline.
	ErrBufferTimeout = errors.New("dispatch: response buffering timed out")

	// ErrFlowClosed is returned when submitting to a closed flow.
	ErrFlowClosed = errors.New("dispatch: flow is closed")

	// ErrDuplicateCorrelation is returned when a correlation ID is already
	// in flight on the same flow.
	ErrDuplicateCorrelation = errors.New("dispatch: correlation id already in flight")

	// ErrInvalidBatchSize indicates FlowConfig.BatchSize is missing or not
	// positive. There is no default: the caller must size the batch to the
	// expected host connection limits.
	ErrInvalidBatchSize = errors.New("dispatch: batch size must be a positive integer")

	// ErrMissingPool indicates FlowConfig.Pool is nil.
	ErrMissingPool = errors.New("dispatch: pool is required")

	// ErrNilRecognizer indicates SenderConfig.Recognizer is nil.
	ErrNilRecognizer = errors.New("dispatch: recognizer is required")

	// ErrMissingFlow indicates SenderConfig.Flow is nil.
	ErrMissingFlow = errors.New("dispatch: flow is required")

	// ErrMissingURL indicates a request with an empty target URL.
	ErrMissingURL = errors.New("dispatch: request url is required")
)

// TransportError wraps a connection, DNS, timeout, or protocol-level
// failure surfaced by the pool. It is not recoverable locally; the caller
// (or the redelivery layer above it) owns the retry decision.
type TransportError struct {
	// URL is the target of the failed request.
	URL string

	// Err is the underlying error.
	Err error
}

func (e *TransportError) Error() string {
	return "dispatch: transport failure for " + e.URL + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}
