package dispatch

// Result is the single normalized outcome of one dispatched request.
// Exactly one Result is produced per request:
//
//   - business success: Err is nil and Response holds the accepted strict
//     response;
//   - business failure: Err is ErrNonSuccess and Response holds the
//     rejected strict response for inspection;
//   - transport failure: Err is a *TransportError and Response is nil.
type Result struct {
	Response *Response
	Err      error
}

// Ok reports whether the result is a business success.
func (r Result) Ok() bool {
	return r.Err == nil
}

// Unwrap returns the response and error as an ordinary Go pair.
func (r Result) Unwrap() (*Response, error) {
	return r.Response, r.Err
}

// ok builds a success result.
func ok(resp *Response) Result {
	return Result{Response: resp}
}

// transportFailure builds a transport-failure result for url.
func transportFailure(url string, err error) Result {
	return Result{Err: &TransportError{URL: url, Err: err}}
}
