package dispatch

import (
	"bytes"
	"context"
	"net/http"
	"sort"
)

// Header is a single name/value pair. Requests and responses carry headers
// as an ordered list rather than a map so that duplicates are allowed and
// the caller's ordering survives the trip through this package.
type Header struct {
	Name  string
	Value string
}

// Request describes one outbound HTTP request. The body must already be
// fully materialized; streaming request bodies are not supported, which is
// what makes a request safe to hand to the redelivery layer for a later
// identical resend.
type Request struct {
	// Method is the HTTP method. Empty means GET.
	Method string

	// URL is the absolute target URI. Required.
	URL string

	// Headers is the ordered header list. Duplicate names are allowed and
	// are added in order.
	Headers []Header

	// Body is the fully materialized request body. May be nil.
	Body []byte
}

// httpRequest converts the request into an *http.Request bound to ctx.
// Header values with the same name keep their relative order; ordering
// across distinct names is delegated to net/http.
func (r Request) httpRequest(ctx context.Context) (*http.Request, error) {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	var body *bytes.Reader
	if r.Body != nil {
		body = bytes.NewReader(r.Body)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.URL, body)
	if err != nil {
		return nil, err
	}

	for _, h := range r.Headers {
		req.Header.Add(h.Name, h.Value)
	}

	return req, nil
}

// headersFromHTTP flattens an http.Header map into an ordered list.
// net/http does not retain wire order across names, so names are sorted
// for determinism; values within a name keep their received order.
func headersFromHTTP(h http.Header) []Header {
	if len(h) == 0 {
		return nil
	}

	names := make([]string, 0, len(h))
	for name := range h {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Header, 0, len(h))
	for _, name := range names {
		for _, value := range h[name] {
			out = append(out, Header{Name: name, Value: value})
		}
	}
	return out
}
