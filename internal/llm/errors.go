package llm

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey reports the absent credential on the first call rather
// than at startup, so the rest of the service keeps running without the
// analysis surface.
var ErrMissingAPIKey = errors.New("OPENAI_API_KEY is not set")

var errNoChoices = errors.New("no completion choices returned")

// TransportError is the only error kind that escapes the model boundary:
// network failures, auth failures, quota, timeouts, and malformed completions
// all surface as one. Callers show a user-facing message and leave the retry
// to the human; nothing in this package retries automatically.
type TransportError struct {
	Err error
	Op  string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("llm %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransportError reports whether err wraps a TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
