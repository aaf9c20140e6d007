package dispatch

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jonwraymond/httpflow/observe"
)

func newTestSender(t *testing.T, recognizer Recognizer, logBuf *bytes.Buffer) *Sender {
	t.Helper()

	inst := observe.Instrumentation{}
	if logBuf != nil {
		inst.Logger = observe.NewLoggerWithWriter("debug", logBuf)
	}

	s, err := NewSender(SenderConfig{
		Flow:            newTestFlow(t, 2, 0),
		Recognizer:      recognizer,
		Instrumentation: inst,
	})
	if err != nil {
		t.Fatalf("NewSender() error = %v", err)
	}
	return s
}

func TestNewSender_Validation(t *testing.T) {
	if _, err := NewSender(SenderConfig{Recognizer: StatusRange(200, 299)}); err != ErrMissingFlow {
		t.Errorf("NewSender without flow error = %v, want ErrMissingFlow", err)
	}

	if _, err := NewSender(SenderConfig{Flow: newTestFlow(t, 1, 0)}); err != ErrNilRecognizer {
		t.Errorf("NewSender without recognizer error = %v, want ErrNilRecognizer", err)
	}
}

func TestSender_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	var logBuf bytes.Buffer
	s := newTestSender(t, Statuses(http.StatusOK), &logBuf)

	fut := s.Send(context.Background(), NewCorrelated("order-1", Request{
		Method:  http.MethodGet,
		URL:     srv.URL + "/health",
		Headers: []Header{{Name: "Accept", Value: "text/plain"}},
	}))
	if fut.CorrelationID() != "order-1" {
		t.Errorf("CorrelationID() = %q, want %q", fut.CorrelationID(), "order-1")
	}

	res := waitResult(t, fut, 5*time.Second)
	if !res.Ok() {
		t.Fatalf("Result error = %v, want success", res.Err)
	}
	if res.Response.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", res.Response.StatusCode)
	}
	if string(res.Response.Body) != "ok" {
		t.Errorf("Body = %q, want %q", res.Response.Body, "ok")
	}

	logs := logBuf.String()
	for _, want := range []string{"order-1", "dispatching request", "exchange succeeded"} {
		if !strings.Contains(logs, want) {
			t.Errorf("logs missing %q:\n%s", want, logs)
		}
	}
}

func TestSender_NonSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("overloaded"))
	}))
	defer srv.Close()

	var logBuf bytes.Buffer
	s := newTestSender(t, StatusRange(200, 299), &logBuf)

	fut := s.Send(context.Background(), NewCorrelated("order-2", Request{URL: srv.URL}))
	res := waitResult(t, fut, 5*time.Second)

	if res.Ok() {
		t.Fatal("expected non-success, got Ok")
	}
	if !errors.Is(res.Err, ErrNonSuccess) {
		t.Fatalf("Err = %v, want ErrNonSuccess", res.Err)
	}
	if !IsNonSuccess(res.Err) {
		t.Error("IsNonSuccess() = false, want true")
	}
	// The rejected response stays inspectable.
	if res.Response == nil || res.Response.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("Response = %+v, want rejected 503 response attached", res.Response)
	}

	if !strings.Contains(logBuf.String(), "exchange not successful") {
		t.Errorf("logs missing non-success entry:\n%s", logBuf.String())
	}
}

func TestSender_TransportFailure(t *testing.T) {
	var logBuf bytes.Buffer
	s := newTestSender(t, StatusRange(200, 299), &logBuf)

	fut := s.Send(context.Background(), NewCorrelated("order-3", Request{URL: "http://127.0.0.1:1/"}))
	res := waitResult(t, fut, 10*time.Second)

	var te *TransportError
	if !errors.As(res.Err, &te) {
		t.Fatalf("Err = %T, want *TransportError", res.Err)
	}
	if IsNonSuccess(res.Err) {
		t.Error("IsNonSuccess() = true for a transport failure")
	}

	logs := logBuf.String()
	if !strings.Contains(logs, "exchange failed") || !strings.Contains(logs, "order-3") {
		t.Errorf("logs missing error entry:\n%s", logs)
	}
}

func TestSender_SubmitRejectionCompletesFuture(t *testing.T) {
	s := newTestSender(t, StatusRange(200, 299), nil)
	s.flow.Close()

	fut := s.Send(context.Background(), NewCorrelated("late", Request{URL: "http://example.test/"}))
	res := waitResult(t, fut, time.Second)

	var te *TransportError
	if !errors.As(res.Err, &te) {
		t.Fatalf("Err = %T, want *TransportError", res.Err)
	}
	if !errors.Is(res.Err, ErrFlowClosed) {
		t.Errorf("Err = %v, want wrapped ErrFlowClosed", res.Err)
	}
}

func TestSender_RedactsSensitiveHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	var logBuf bytes.Buffer
	s := newTestSender(t, StatusRange(200, 299), &logBuf)

	fut := s.Send(context.Background(), NewCorrelated("order-4", Request{
		URL: srv.URL,
		Headers: []Header{
			{Name: "Authorization", Value: "Bearer s3cret"},
			{Name: "Accept", Value: "application/json"},
		},
	}))
	waitResult(t, fut, 5*time.Second)

	logs := logBuf.String()
	if strings.Contains(logs, "s3cret") {
		t.Errorf("logs leaked a credential:\n%s", logs)
	}
	if !strings.Contains(logs, "Authorization: [REDACTED]") {
		t.Errorf("logs missing redacted header marker:\n%s", logs)
	}
	if !strings.Contains(logs, "Accept: application/json") {
		t.Errorf("logs missing ordinary header:\n%s", logs)
	}
}

func TestNewExchange(t *testing.T) {
	req := NewCorrelated("ex-1", Request{Method: http.MethodPost, URL: "http://example.test/orders"})
	res := Result{Response: &Response{StatusCode: 201}}

	ex := NewExchange(req, res)
	if ex.ID != "ex-1" {
		t.Errorf("ID = %q, want %q", ex.ID, "ex-1")
	}
	if ex.Value.Request.URL != req.Value.URL {
		t.Errorf("Request.URL = %q, want %q", ex.Value.Request.URL, req.Value.URL)
	}
	if ex.Value.Result.Response.StatusCode != 201 {
		t.Errorf("Result.StatusCode = %d, want 201", ex.Value.Result.Response.StatusCode)
	}
}
