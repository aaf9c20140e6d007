package dispatch

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jonwraymond/httpflow/observe"
)

// SenderConfig configures the sender.
type SenderConfig struct {
	// Flow dispatches the requests. Required.
	Flow *Flow

	// Recognizer classifies buffered responses. Required.
	Recognizer Recognizer

	// Instrumentation carries the tracer, metrics, and logger wired around
	// each exchange. Unset components default to no-ops.
	Instrumentation observe.Instrumentation
}

// Sender drives a single correlated request through the flow, applies the
// recognizer, emits diagnostic log entries, and completes a Future with
// the one normalized Result. The sender itself raises nothing: every
// failure, transport or business, is expressed through the Result.
type Sender struct {
	flow       *Flow
	recognizer Recognizer
	tracer     observe.Tracer
	metrics    observe.Metrics
	logger     observe.Logger
}

// NewSender creates a sender over the given flow and recognizer.
func NewSender(config SenderConfig) (*Sender, error) {
	if config.Flow == nil {
		return nil, ErrMissingFlow
	}
	if config.Recognizer == nil {
		return nil, ErrNilRecognizer
	}

	inst := config.Instrumentation.WithDefaults()
	return &Sender{
		flow:       config.Flow,
		recognizer: config.Recognizer,
		tracer:     inst.Tracer,
		metrics:    inst.Metrics,
		logger:     inst.Logger,
	}, nil
}

// Send dispatches one correlated request and returns immediately with its
// future. The caller suspends only when waiting on the future; the result
// always arrives because the flow's buffer timeout bounds every request.
func (s *Sender) Send(ctx context.Context, req Correlated[Request]) *Future {
	out := newFuture(req.ID)
	log := s.logger.WithExchange(string(req.ID))

	log.Debug(ctx, "dispatching request",
		observe.Field{Key: "method", Value: req.Value.Method},
		observe.Field{Key: "url", Value: req.Value.URL},
		observe.Field{Key: "headers", Value: headerFields(req.Value.Headers)},
		observe.Field{Key: "body", Value: string(req.Value.Body)},
	)

	ctx, span := s.tracer.StartSpan(ctx, observe.ExchangeMeta{
		CorrelationID: string(req.ID),
		Method:        req.Value.Method,
		Target:        req.Value.URL,
	})
	start := time.Now()

	fut, err := s.flow.Submit(ctx, req)
	if err != nil {
		// Submission rejections (closed flow, duplicate in-flight ID,
		// missing URL) still produce the request's single Result.
		res := transportFailure(req.Value.URL, err)
		log.Error(ctx, "dispatch rejected",
			observe.Field{Key: "url", Value: req.Value.URL},
			observe.Field{Key: "error", Value: err.Error()},
		)
		s.metrics.RecordDispatch(ctx, req.Value.URL, time.Since(start), res.Err)
		s.tracer.EndSpan(span, res.Err)
		out.complete(res)
		return out
	}

	go func() {
		// The flow future always completes; the caller's deadline applies
		// to their own Wait, not to result production.
		res, _ := fut.Wait(context.Background())
		final := s.classify(ctx, log, req.Value, res)
		s.metrics.RecordDispatch(ctx, req.Value.URL, time.Since(start), final.Err)
		s.tracer.EndSpan(span, final.Err)
		out.complete(final)
	}()

	return out
}

// classify applies the recognizer to a flow result and emits the
// post-receive log entry.
func (s *Sender) classify(ctx context.Context, log observe.Logger, req Request, res Result) Result {
	if res.Err != nil {
		log.Error(ctx, "exchange failed",
			observe.Field{Key: "url", Value: req.URL},
			observe.Field{Key: "error", Value: res.Err.Error()},
		)
		return res
	}

	resp := res.Response
	fields := []observe.Field{
		{Key: "status", Value: resp.Status},
		{Key: "headers", Value: headerFields(resp.Headers)},
		{Key: "body", Value: string(resp.Body)},
	}

	if s.recognizer.IsSuccess(resp) {
		log.Debug(ctx, "exchange succeeded", fields...)
		return ok(resp)
	}

	log.Warn(ctx, "exchange not successful", fields...)
	return Result{Response: resp, Err: ErrNonSuccess}
}

// NewExchange pairs a request with its result for hand-off to a Publisher.
func NewExchange(req Correlated[Request], res Result) Correlated[Exchange] {
	return NewCorrelated(req.ID, Exchange{Request: req.Value, Result: res})
}

// IsNonSuccess reports whether err marks a business rejection rather than
// a transport failure. Exposed for metrics labelling and outer-layer
// policy.
func IsNonSuccess(err error) bool {
	return errors.Is(err, ErrNonSuccess)
}

// sensitiveHeaders lists header names whose values never reach the log
// sink.
var sensitiveHeaders = map[string]struct{}{
	"authorization":       {},
	"proxy-authorization": {},
	"cookie":              {},
	"set-cookie":          {},
	"x-api-key":           {},
}

// headerFields renders a header list as "Name: Value" strings for logging,
// redacting credential-bearing values.
func headerFields(headers []Header) []string {
	if len(headers) == 0 {
		return nil
	}
	out := make([]string, len(headers))
	for i, h := range headers {
		if _, ok := sensitiveHeaders[strings.ToLower(h.Name)]; ok {
			out[i] = h.Name + ": [REDACTED]"
			continue
		}
		out[i] = h.Name + ": " + h.Value
	}
	return out
}
