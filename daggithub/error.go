package daggithub

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrRepositoryOrReleaseNotFound is returned when GitHub answers 404, either
// for the release lookup or for an asset download.
var ErrRepositoryOrReleaseNotFound = errors.New("repository or release not found")

// HTTPError is any other failed request. StatusCode is 0 when the request
// never got a response (DNS, TLS, timeout...).
type HTTPError struct {
	StatusCode int
	Err        error
}

func (e *HTTPError) Error() string {
	if e.StatusCode == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("status %d: %v", e.StatusCode, e.Err)
}

func (e *HTTPError) Unwrap() error { return e.Err }

// DecodeError means the release payload could not be turned into a Release.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("Error deserializing response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
