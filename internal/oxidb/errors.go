package oxidb

import (
	"errors"
	"fmt"
)

// ErrBroken is returned by every request after a transport failure left the
// connection out of step with the server.
var ErrBroken = errors.New("oxidb: connection broken")

// Error is returned when the OxiDB server returns an error response.
type Error struct {
	Msg string
	// Exists is set when the server refused to create something that is
	// already there.
	Exists bool
}

func (e *Error) Error() string {
	return fmt.Sprintf("oxidb: %s", e.Msg)
}
