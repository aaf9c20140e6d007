package dispatch_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/google/uuid"

	"github.com/jonwraymond/httpflow/dispatch"
	"github.com/jonwraymond/httpflow/pool"
)

func ExampleSender_Send() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	p := pool.New(pool.Config{})
	defer p.Close()

	flow, err := dispatch.NewFlow(dispatch.FlowConfig{
		Pool:      p,
		BatchSize: 4,
	})
	if err != nil {
		fmt.Println("flow:", err)
		return
	}
	defer flow.Close()

	sender, err := dispatch.NewSender(dispatch.SenderConfig{
		Flow:       flow,
		Recognizer: dispatch.StatusRange(200, 299),
	})
	if err != nil {
		fmt.Println("sender:", err)
		return
	}

	// Correlation IDs are caller-supplied and must be unique in flight.
	id := dispatch.CorrelationID(uuid.NewString())
	fut := sender.Send(context.Background(), dispatch.NewCorrelated(id, dispatch.Request{
		Method: http.MethodGet,
		URL:    srv.URL + "/health",
	}))

	res, err := fut.Wait(context.Background())
	if err != nil {
		fmt.Println("wait:", err)
		return
	}

	fmt.Println("success:", res.Ok())
	fmt.Println("status:", res.Response.StatusCode)
	fmt.Println("body:", string(res.Response.Body))
	// Output:
	// success: true
	// status: 200
	// body: ok
}

func ExampleSender_Send_nonSuccess() {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	p := pool.New(pool.Config{})
	defer p.Close()

	flow, _ := dispatch.NewFlow(dispatch.FlowConfig{Pool: p, BatchSize: 1})
	defer flow.Close()

	sender, _ := dispatch.NewSender(dispatch.SenderConfig{
		Flow:       flow,
		Recognizer: dispatch.StatusRange(200, 299),
	})

	fut := sender.Send(context.Background(), dispatch.NewCorrelated("probe-1", dispatch.Request{
		URL: srv.URL,
	}))
	res, _ := fut.Wait(context.Background())

	fmt.Println("success:", res.Ok())
	fmt.Println("rejected by recognizer:", errors.Is(res.Err, dispatch.ErrNonSuccess))
	fmt.Println("status still inspectable:", res.Response.StatusCode)
	// Output:
	// success: false
	// rejected by recognizer: true
	// status still inspectable: 503
}

func ExampleAllOf() {
	healthy := dispatch.AllOf(
		dispatch.StatusRange(200, 299),
		dispatch.BodyContains(`"status":"ready"`),
	)

	resp := &dispatch.Response{
		StatusCode: 200,
		Body:       []byte(`{"status":"ready"}`),
	}
	fmt.Println(healthy.IsSuccess(resp))

	resp.Body = []byte(`{"status":"draining"}`)
	fmt.Println(healthy.IsSuccess(resp))
	// Output:
	// true
	// false
}
