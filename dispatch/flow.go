package dispatch

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/jonwraymond/httpflow/pool"
)

// FlowConfig configures the pooled dispatch flow.
type FlowConfig struct {
	// Pool is the connection pool requests are sent through. Required.
	Pool *pool.Pool

	// BatchSize is the maximum number of response-buffering operations
	// allowed to run concurrently. Required, must be positive; there is no
	// default because the caller must size it to the expected host
	// connection limits. Excess requests queue without being dropped.
	BatchSize int

	// BufferTimeout bounds the materialization of one response body.
	// Default: 1 minute.
	BufferTimeout time.Duration
}

// Flow turns tagged requests into tagged results. Each submission sends
// the request through the pool, buffers the streamed response into a
// strict Response under BufferTimeout, and completes the returned Future
// with exactly one Result carrying the submission's correlation ID.
//
// Output order relative to submission order is not guaranteed when
// BatchSize > 1; the correlation ID is the sole anchor for matching.
type Flow struct {
	config FlowConfig
	pool   *pool.Pool
	sem    *semaphore.Weighted
	wg     sync.WaitGroup

	mu        sync.Mutex
	closed    bool
	inflight  map[CorrelationID]struct{}
	active    int
	maxActive int
	buffered  int64
	failures  int64
}

// NewFlow creates a flow over the given pool. BatchSize must be positive.
func NewFlow(config FlowConfig) (*Flow, error) {
	if config.Pool == nil {
		return nil, ErrMissingPool
	}
	if config.BatchSize <= 0 {
		return nil, ErrInvalidBatchSize
	}

	// Apply defaults
	if config.BufferTimeout <= 0 {
		config.BufferTimeout = time.Minute
	}

	return &Flow{
		config:   config,
		pool:     config.Pool,
		sem:      semaphore.NewWeighted(int64(config.BatchSize)),
		inflight: make(map[CorrelationID]struct{}),
	}, nil
}

// Submit dispatches one tagged request asynchronously and returns its
// future. Submit itself never blocks on the network; it fails fast with
// ErrFlowClosed, ErrMissingURL, or ErrDuplicateCorrelation when the
// submission cannot be accepted at all.
func (f *Flow) Submit(ctx context.Context, req Correlated[Request]) (*Future, error) {
	if req.Value.URL == "" {
		return nil, ErrMissingURL
	}

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil, ErrFlowClosed
	}
	if _, dup := f.inflight[req.ID]; dup {
		f.mu.Unlock()
		return nil, ErrDuplicateCorrelation
	}
	f.inflight[req.ID] = struct{}{}
	f.wg.Add(1)
	f.mu.Unlock()

	fut := newFuture(req.ID)
	go f.dispatch(ctx, req, fut)
	return fut, nil
}

func (f *Flow) dispatch(ctx context.Context, req Correlated[Request], fut *Future) {
	defer f.wg.Done()

	res := f.exchange(ctx, req.Value)

	// Free the tag before resolving the future, so a caller who observed
	// completion can immediately reuse the ID.
	f.mu.Lock()
	delete(f.inflight, req.ID)
	f.mu.Unlock()

	fut.complete(res)
}

// exchange performs the send and the bounded buffering, producing the
// single Result for one request. Transport failures pass through without
// a buffering attempt.
func (f *Flow) exchange(ctx context.Context, req Request) Result {
	httpReq, err := req.httpRequest(ctx)
	if err != nil {
		f.recordFailure()
		return transportFailure(req.URL, err)
	}

	resp, err := f.pool.Do(httpReq)
	if err != nil {
		f.recordFailure()
		return transportFailure(req.URL, err)
	}

	// Admission control: at most BatchSize bufferings at once, the rest
	// queue here.
	if err := f.sem.Acquire(ctx, 1); err != nil {
		resp.Body.Close()
		f.recordFailure()
		return transportFailure(req.URL, err)
	}

	f.enterBuffering()
	strict, err := materialize(resp, f.config.BufferTimeout)
	f.exitBuffering()
	f.sem.Release(1)

	if err != nil {
		f.recordFailure()
		return transportFailure(req.URL, err)
	}

	f.mu.Lock()
	f.buffered++
	f.mu.Unlock()
	return ok(strict)
}

func (f *Flow) enterBuffering() {
	f.mu.Lock()
	f.active++
	if f.active > f.maxActive {
		f.maxActive = f.active
	}
	f.mu.Unlock()
}

func (f *Flow) exitBuffering() {
	f.mu.Lock()
	f.active--
	f.mu.Unlock()
}

func (f *Flow) recordFailure() {
	f.mu.Lock()
	f.failures++
	f.mu.Unlock()
}

// Close stops accepting submissions and waits for in-flight requests to
// resolve. The pool itself is owned by the caller and is not closed.
func (f *Flow) Close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	f.mu.Unlock()

	f.wg.Wait()
}

// Metrics returns a snapshot of flow statistics.
func (f *Flow) Metrics() FlowMetrics {
	f.mu.Lock()
	defer f.mu.Unlock()

	return FlowMetrics{
		InFlight:          len(f.inflight),
		ActiveBuffering:   f.active,
		MaxBuffering:      f.maxActive,
		BatchSize:         f.config.BatchSize,
		Buffered:          f.buffered,
		TransportFailures: f.failures,
	}
}

// FlowMetrics contains flow statistics.
type FlowMetrics struct {
	// InFlight is the number of requests currently between Submit and
	// completion.
	InFlight int

	// ActiveBuffering is the number of buffering operations running now.
	ActiveBuffering int

	// MaxBuffering is the high-water mark of concurrent bufferings.
	MaxBuffering int

	// BatchSize is the configured concurrency cap.
	BatchSize int

	// Buffered is the total count of responses fully materialized.
	Buffered int64

	// TransportFailures is the total count of transport-level failures,
	// buffering timeouts included.
	TransportFailures int64
}
