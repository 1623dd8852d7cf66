package session

import "fmt"

// TransportError means no usable HTTP response was obtained after exhausting
// the retry budget. The session should be restarted before further calls.
type TransportError struct {
	URL      string
	Attempts int
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("no response from %s after %d attempts (check internet connection and restart the session): %v",
		e.URL, e.Attempts, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// RateLimitedError means the retry budget ran out while the server kept
// answering 429. The whole operation may be retried later.
type RateLimitedError struct {
	URL      string
	Attempts int
}

func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("too many requests for %s, gave up after %d attempts", e.URL, e.Attempts)
}

// BadStatusError is a terminal non-200, non-429 status. A 400 is never
// retried; any other status lands here once the retry budget is spent.
type BadStatusError struct {
	URL        string
	StatusCode int
}

func (e *BadStatusError) Error() string {
	return fmt.Sprintf("bad status code %d for %s", e.StatusCode, e.URL)
}
