package filter

import (
	"errors"
	"fmt"
)

// ErrInvalidSpecShape is matched by every InvalidSpecShapeError.
var ErrInvalidSpecShape = errors.New("invalid field spec shape")

// InvalidSpecShapeError reports an input value that is not a token, a
// qualified name or a list of them where a field spec was expected.
type InvalidSpecShapeError struct {
	Value any
	// Where names the nesting level the value was found at.
	Where string
	// Reason is set when the value was recognised but rejected.
	Reason string
}

func (e *InvalidSpecShapeError) Error() string {
	msg := fmt.Sprintf("invalid %s: %v (%T)", e.Where, e.Value, e.Value)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// Is reports whether target is ErrInvalidSpecShape.
func (e *InvalidSpecShapeError) Is(target error) bool {
	return target == ErrInvalidSpecShape
}
