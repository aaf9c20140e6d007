package dispatch

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

// Response is a strict HTTP response: status, headers, and a body that has
// been fully read into memory and is safe to inspect repeatedly. The
// streamed form delivered by the transport never escapes this package.
type Response struct {
	// StatusCode is the numeric HTTP status.
	StatusCode int

	// Status is the status line as received, e.g. "200 OK".
	Status string

	// Headers is the response header list, sorted by name; values within a
	// name keep their received order.
	Headers []Header

	// Body is the fully buffered response body. Never nil, may be empty.
	Body []byte
}

// materialize drains a streamed response into a strict Response, racing
// the read against the buffering deadline. On timeout the read goroutine
// is abandoned and winds down when the pool reclaims the connection; the
// underlying connection is not aborted.
func materialize(resp *http.Response, timeout time.Duration) (*Response, error) {
	type read struct {
		body []byte
		err  error
	}

	done := make(chan read, 1)
	go func() {
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		done <- read{body: body, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case r := <-done:
		if r.err != nil {
			return nil, fmt.Errorf("reading response body: %w", r.err)
		}
		if r.body == nil {
			r.body = []byte{}
		}
		return &Response{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Headers:    headersFromHTTP(resp.Header),
			Body:       r.body,
		}, nil
	case <-timer.C:
		return nil, ErrBufferTimeout
	}
}
