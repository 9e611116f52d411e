package licenseapi

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnexpectedStatus is matched by every *StatusError.
var ErrUnexpectedStatus = errors.New("unexpected status")

// maxSnippet bounds how much of an error body is kept for display.
const maxSnippet = 200

// StatusError reports a non-2xx response from the license API.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%d %s for %s %s", e.StatusCode, http.StatusText(e.StatusCode), e.Method, e.URL)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

func (e *StatusError) Is(target error) bool {
	return target == ErrUnexpectedStatus
}

// RequestError wraps any failure of a single API call: transport, status or decoding.
// Its message is the underlying error text so it can be shown to operators as is.
type RequestError struct {
	Op  string
	Err error
}

func (e *RequestError) Error() string {
	if e.Err == nil {
		return e.Op + ": request failed"
	}
	return e.Err.Error()
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

func snippet(b []byte) string {
	if len(b) > maxSnippet {
		return string(b[:maxSnippet]) + "..."
	}
	return string(b)
}
