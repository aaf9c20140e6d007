// Package dispatch provides the core of a reliable HTTP-sending client:
// correlated requests go through a bounded-concurrency connection pool,
// responses are fully buffered into memory under a deadline, and a
// caller-supplied recognizer classifies each outcome as business success
// or business failure.
//
// The package produces exactly one Result per submitted request. It never
// retries, deduplicates, or persists anything; those decisions belong to
// the queue-based redelivery layer that sits above it and consumes the
// Exchange values this package produces.
//
// # Components
//
//   - Correlated: immutable pairing of a caller-supplied correlation ID
//     with a payload. The ID is threaded through untouched and is the only
//     anchor for matching a result back to its request.
//
//   - Flow: the pooled dispatch flow. It sends a tagged request through an
//     explicitly owned pool.Pool and buffers the streamed response into a
//     strict, re-readable Response, allowing at most BatchSize buffering
//     operations to run at once.
//
//   - Sender: the single-shot orchestrator. It logs the outgoing request,
//     submits it to the Flow, applies the Recognizer to the buffered
//     response, logs the outcome, and completes a Future with the
//     normalized Result.
//
//   - Recognizer: a pure predicate over a strict Response. Built-in
//     variants cover status ranges, status sets, and body content, and
//     compose with AllOf and AnyOf.
//
// # Usage
//
//	p := pool.New(pool.Config{})
//	defer p.Close()
//
//	flow, err := dispatch.NewFlow(dispatch.FlowConfig{
//	    Pool:      p,
//	    BatchSize: 4,
//	})
//	...
//	sender, err := dispatch.NewSender(dispatch.SenderConfig{
//	    Flow:       flow,
//	    Recognizer: dispatch.StatusRange(200, 299),
//	})
//	...
//	fut := sender.Send(ctx, dispatch.NewCorrelated("order-17", dispatch.Request{
//	    Method: "POST",
//	    URL:    "https://api.example.com/orders",
//	    Body:   payload,
//	}))
//	res, err := fut.Wait(ctx)
//
// Correlation IDs are a caller invariant: they must be unique across
// in-flight requests. The Flow rejects a duplicate in-flight ID rather
// than letting two futures race for one tag.
package dispatch
