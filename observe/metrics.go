package observe

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records dispatch outcomes.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must honor cancellation/deadlines and return quickly.
// - Errors: implementations must not panic.
type Metrics interface {
	// RecordDispatch records one completed exchange with its duration and
	// final error (nil, ErrNonSuccess-like, or a transport failure).
	RecordDispatch(ctx context.Context, target string, duration time.Duration, err error)
}

// outcome attribute values for dispatch.requests.total.
const (
	outcomeSuccess    = "success"
	outcomeNonSuccess = "non_success"
	outcomeTransport  = "transport_failure"
)

// NonSuccessClassifier distinguishes business rejection from transport
// failure when labelling the failure counter. The dispatch package
// supplies errors.Is against its ErrNonSuccess sentinel.
type NonSuccessClassifier func(err error) bool

// metricsImpl is the concrete implementation of Metrics.
type metricsImpl struct {
	meter        metric.Meter
	totalCount   metric.Int64Counter
	failureCount metric.Int64Counter
	durationHist metric.Float64Histogram
	isNonSuccess NonSuccessClassifier
}

// NewMetrics creates a Metrics instance over the given meter. classify may
// be nil, in which case every error counts as a transport failure.
func NewMetrics(meter metric.Meter, classify NonSuccessClassifier) (Metrics, error) {
	if meter == nil {
		return nil, errors.New("observe: meter is required")
	}

	totalCount, err := meter.Int64Counter(
		"dispatch.requests.total",
		metric.WithDescription("Total number of dispatched requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	failureCount, err := meter.Int64Counter(
		"dispatch.failures.total",
		metric.WithDescription("Total number of dispatch failures"),
		metric.WithUnit("{failure}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"dispatch.duration_ms",
		metric.WithDescription("End-to-end dispatch duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		meter:        meter,
		totalCount:   totalCount,
		failureCount: failureCount,
		durationHist: durationHist,
		isNonSuccess: classify,
	}, nil
}

// RecordDispatch records metrics for one completed exchange.
func (m *metricsImpl) RecordDispatch(ctx context.Context, target string, duration time.Duration, err error) {
	outcome := outcomeSuccess
	if err != nil {
		outcome = outcomeTransport
		if m.isNonSuccess != nil && m.isNonSuccess(err) {
			outcome = outcomeNonSuccess
		}
	}

	attrs := []attribute.KeyValue{
		attribute.String("target", target),
		attribute.String("outcome", outcome),
	}
	opt := metric.WithAttributes(attrs...)

	// Always increment total counter
	m.totalCount.Add(ctx, 1, opt)

	// Increment failure counter on any failure
	if err != nil {
		m.failureCount.Add(ctx, 1, opt)
	}

	// Record duration in milliseconds
	durationMs := float64(duration.Milliseconds())
	m.durationHist.Record(ctx, durationMs, opt)
}

// noopMetrics is a metrics implementation that does nothing.
type noopMetrics struct{}

func (m *noopMetrics) RecordDispatch(ctx context.Context, target string, duration time.Duration, err error) {
}

// NopMetrics returns a Metrics implementation that records nothing.
func NopMetrics() Metrics {
	return &noopMetrics{}
}
