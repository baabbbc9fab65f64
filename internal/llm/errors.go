package llm

import (
	"errors"
	"fmt"
)

// ErrUpstreamUnavailable marks network or service failures talking to the
// text-generation API. It is surfaced to the user with a suggestion to
// retry; nothing in this package retries on its own.
var ErrUpstreamUnavailable = errors.New("text generation service unavailable")

// MalformedResponseError means the model's reply was not valid JSON even
// after fence extraction. Raw keeps the full reply for diagnostics.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed model response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }
