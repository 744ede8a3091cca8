package adapter

import (
	"errors"
	"fmt"
)

// MaxPayloadPrefix bounds how much of an unparseable upstream body is kept for diagnostics.
const MaxPayloadPrefix = 256

// UnsupportedCourseError means no adapter can serve the course, or the adapter
// matched but the course lacks the upstream parameters it needs.
type UnsupportedCourseError struct {
	Course string
	Reason string
}

func (e *UnsupportedCourseError) Error() string {
	if e.Reason != "" {
		return "unsupported course: " + e.Reason
	}
	return "unsupported course"
}

// UpstreamError is a transport failure, timeout or non-2xx response from a booking site.
type UpstreamError struct {
	Adapter    string
	URL        string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: upstream returned status %d", e.Adapter, e.StatusCode)
	}
	return fmt.Sprintf("%s: upstream request failed: %v", e.Adapter, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// UpstreamParseError means the upstream answered but not in a shape the adapter understands.
type UpstreamParseError struct {
	Adapter string
	Payload string // at most MaxPayloadPrefix bytes of the body
	Err     error
}

func (e *UpstreamParseError) Error() string {
	return fmt.Sprintf("%s: unexpected upstream response: %v", e.Adapter, e.Err)
}

func (e *UpstreamParseError) Unwrap() error {
	return e.Err
}

func newParseError(adapter string, body []byte, err error) *UpstreamParseError {
	if len(body) > MaxPayloadPrefix {
		body = body[:MaxPayloadPrefix]
	}
	return &UpstreamParseError{
		Adapter: adapter,
		Payload: string(body),
		Err:     err,
	}
}

// IsUnsupported reports whether err is an *UnsupportedCourseError.
func IsUnsupported(err error) bool {
	var target *UnsupportedCourseError
	return errors.As(err, &target)
}

// AsParseError extracts an *UpstreamParseError from err.
func AsParseError(err error) (*UpstreamParseError, bool) {
	var target *UpstreamParseError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// AsUpstreamError extracts an *UpstreamError from err.
func AsUpstreamError(err error) (*UpstreamError, bool) {
	var target *UpstreamError
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}
