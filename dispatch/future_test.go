package dispatch

import (
	"context"
	"testing"
	"time"
)

func TestFuture_CompletesOnce(t *testing.T) {
	fut := newFuture("f-1")

	fut.complete(Result{Response: &Response{StatusCode: 200}})
	fut.complete(Result{Err: ErrNonSuccess}) // ignored

	res, done := fut.Result()
	if !done {
		t.Fatal("Result() done = false after complete")
	}
	if !res.Ok() || res.Response.StatusCode != 200 {
		t.Errorf("second complete overwrote the result: %+v", res)
	}
}

func TestFuture_ResultBeforeCompletion(t *testing.T) {
	fut := newFuture("f-2")

	if _, done := fut.Result(); done {
		t.Error("Result() done = true before complete")
	}

	select {
	case <-fut.Done():
		t.Error("Done() closed before complete")
	default:
	}
}

func TestFuture_WaitHonorsContext(t *testing.T) {
	fut := newFuture("f-3")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := fut.Wait(ctx); err != context.DeadlineExceeded {
		t.Errorf("Wait() error = %v, want context.DeadlineExceeded", err)
	}

	// Completion after an abandoned wait still resolves later waiters.
	fut.complete(Result{Response: &Response{StatusCode: 204}})
	res, err := fut.Wait(context.Background())
	if err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if res.Response.StatusCode != 204 {
		t.Errorf("StatusCode = %d, want 204", res.Response.StatusCode)
	}
}
