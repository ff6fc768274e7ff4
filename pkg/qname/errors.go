package qname

import (
	"errors"
	"fmt"
)

// ErrMalformedToken is matched by every MalformedTokenError.
var ErrMalformedToken = errors.New("malformed token")

// MalformedTokenError reports a token that is not a valid "<ns>:<name>"
// or "<name>" qualified name.
type MalformedTokenError struct {
	Token  string
	Reason string
	Err    error
}

func (e *MalformedTokenError) Error() string {
	return fmt.Sprintf("malformed token %q: %s", e.Token, e.Reason)
}

// Is reports whether target is ErrMalformedToken.
func (e *MalformedTokenError) Is(target error) bool {
	return target == ErrMalformedToken
}

// Unwrap returns the underlying cause, if any.
func (e *MalformedTokenError) Unwrap() error {
	return e.Err
}

func malformed(token, reason string) error {
	return &MalformedTokenError{Token: token, Reason: reason}
}
