package session

import (
	"errors"
	"fmt"
)

// ErrSessionClosed is returned for any state-mutating call after a
// session has completed. Recover by starting a new session.
var ErrSessionClosed = errors.New("session already completed")

// InvalidStateError signals an operation attempted in the wrong session
// or timer state. It indicates caller misuse and is always recoverable.
type InvalidStateError struct {
	Op    string
	State string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s not allowed in state %s", e.Op, e.State)
}
