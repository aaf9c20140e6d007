package dispatch

import "bytes"

// Recognizer classifies a strict response as business success or business
// failure, independent of transport-level success.
//
// Contract:
// - Purity: no side effects, no I/O.
// - Determinism: the same Response always yields the same answer.
// - Concurrency: implementations must be safe for concurrent use.
type Recognizer interface {
	IsSuccess(resp *Response) bool
}

// RecognizerFunc adapts a plain function to the Recognizer interface.
type RecognizerFunc func(resp *Response) bool

// IsSuccess calls f.
func (f RecognizerFunc) IsSuccess(resp *Response) bool {
	return f(resp)
}

// StatusRange recognizes responses whose status code falls in [lo, hi].
//
//	dispatch.StatusRange(200, 299) // any 2xx
func StatusRange(lo, hi int) Recognizer {
	return RecognizerFunc(func(resp *Response) bool {
		return resp.StatusCode >= lo && resp.StatusCode <= hi
	})
}

// Statuses recognizes responses with one of the given status codes.
func Statuses(codes ...int) Recognizer {
	set := make(map[int]struct{}, len(codes))
	for _, c := range codes {
		set[c] = struct{}{}
	}
	return RecognizerFunc(func(resp *Response) bool {
		_, ok := set[resp.StatusCode]
		return ok
	})
}

// BodyContains recognizes responses whose body contains substr.
func BodyContains(substr string) Recognizer {
	needle := []byte(substr)
	return RecognizerFunc(func(resp *Response) bool {
		return bytes.Contains(resp.Body, needle)
	})
}

// AllOf recognizes a response only if every recognizer accepts it.
// Recognizers are evaluated in order; an empty list accepts everything.
func AllOf(recognizers ...Recognizer) Recognizer {
	return RecognizerFunc(func(resp *Response) bool {
		for _, r := range recognizers {
			if !r.IsSuccess(resp) {
				return false
			}
		}
		return true
	})
}

// AnyOf recognizes a response if at least one recognizer accepts it.
// Recognizers are evaluated in order; an empty list rejects everything.
func AnyOf(recognizers ...Recognizer) Recognizer {
	return RecognizerFunc(func(resp *Response) bool {
		for _, r := range recognizers {
			if r.IsSuccess(resp) {
				return true
			}
		}
		return false
	})
}
