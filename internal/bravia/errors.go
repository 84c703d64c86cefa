package bravia

import (
	"errors"
	"fmt"
)

// ErrAuthentication is returned by Connect when the TV rejected both
// registration attempts.
var ErrAuthentication = errors.New("could not pair with the TV")

// ProtocolError reports an unexpected HTTP status from the TV
type ProtocolError struct {
	Endpoint Endpoint
	Status   int
	Body     string
}

func (e *ProtocolError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("request to %s failed with status %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("request to %s failed with status %d: %s", e.Endpoint, e.Status, e.Body)
}

// ParseError reports a response body that lacks the expected structure
type ParseError struct {
	Method  Method
	Missing string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s response could not be parsed: %v", e.Method, e.Err)
	}
	return fmt.Sprintf("%s response is missing %s", e.Method, e.Missing)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// UnknownCommandError reports a command name the TV did not include in
// its remote-controller info.
type UnknownCommandError struct {
	Command Command
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command %q: the TV did not report a code for it", string(e.Command))
}
