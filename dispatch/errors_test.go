package dispatch

import (
	"errors"
	"strings"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	sentinels := []error{
		ErrNonSuccess,
		ErrBufferTimeout,
		ErrFlowClosed,
		ErrDuplicateCorrelation,
		ErrInvalidBatchSize,
		ErrMissingPool,
		ErrNilRecognizer,
		ErrMissingFlow,
		ErrMissingURL,
	}

	for _, err := range sentinels {
		if err.Error() == "" {
			t.Error("sentinel error has empty message")
		}
		if !strings.HasPrefix(err.Error(), "dispatch: ") {
			t.Errorf("sentinel %q missing package prefix", err)
		}
	}
}

func TestTransportError(t *testing.T) {
	underlying := errors.New("connection refused")
	err := &TransportError{URL: "http://example.test/", Err: underlying}

	if !strings.Contains(err.Error(), "http://example.test/") {
		t.Errorf("Error() = %q, missing URL", err.Error())
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("Error() = %q, missing cause", err.Error())
	}
	if !errors.Is(err, underlying) {
		t.Error("errors.Is(err, underlying) = false, want true")
	}

	var te *TransportError
	if !errors.As(error(err), &te) {
		t.Error("errors.As failed for *TransportError")
	}
}

func TestTransportFailure_WrapsBufferTimeout(t *testing.T) {
	res := transportFailure("http://example.test/", ErrBufferTimeout)

	if res.Ok() {
		t.Fatal("transport failure reported Ok")
	}
	if !errors.Is(res.Err, ErrBufferTimeout) {
		t.Errorf("Err = %v, want wrapped ErrBufferTimeout", res.Err)
	}
}
