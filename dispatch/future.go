package dispatch

import (
	"context"
	"sync"
)

// Future is the completion handle for one dispatched request. It is
// completed exactly once; late or duplicate completions are ignored.
// Waiting never blocks the submitting goroutine: suspension happens only
// inside Wait or a select on Done.
type Future struct {
	id CorrelationID
	ch chan struct{}

	once sync.Once
	mu   sync.Mutex
	res  Result
}

// newFuture allocates an incomplete future tagged with id.
func newFuture(id CorrelationID) *Future {
	return &Future{
		id: id,
		ch: make(chan struct{}),
	}
}

// CorrelationID returns the tag this future resolves for. It equals the
// ID of the submitted request, untouched.
func (f *Future) CorrelationID() CorrelationID {
	return f.id
}

// complete resolves the future exactly once. Closing the channel signals
// all waiters.
func (f *Future) complete(res Result) {
	f.once.Do(func() {
		f.mu.Lock()
		f.res = res
		f.mu.Unlock()
		close(f.ch)
	})
}

// Done returns a channel closed when the result is available, for
// select-based waiting.
func (f *Future) Done() <-chan struct{} {
	return f.ch
}

// Wait blocks until the result is available or ctx is done. If ctx wins,
// it returns ctx.Err(); the request itself keeps running and the future
// will still complete.
func (f *Future) Wait(ctx context.Context) (Result, error) {
	select {
	case <-f.ch:
		f.mu.Lock()
		res := f.res
		f.mu.Unlock()
		return res, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Result returns the result and whether the future has completed, without
// blocking.
func (f *Future) Result() (Result, bool) {
	select {
	case <-f.ch:
		f.mu.Lock()
		res := f.res
		f.mu.Unlock()
		return res, true
	default:
		return Result{}, false
	}
}
