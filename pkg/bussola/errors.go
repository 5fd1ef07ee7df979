package bussola

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	// ErrMissingSnapshot indicates a restored application state does not
	// expose a navigation snapshot. Restoration cannot silently skip this:
	// the host asked for its navigation to come back and it would not.
	ErrMissingSnapshot = errors.New("restored state exposes no navigation snapshot")

	// ErrNoInitialRoute indicates startup seeding found no route at the
	// configured initial path nor at the root path.
	ErrNoInitialRoute = errors.New("no route registered for the initial path")
)

// RestorationError represents a failure in the restoration handshake
// (missing snapshot contract, unusable persisted payload, etc.). These are
// the only errors the core surfaces; everything else degrades to a no-op
// because navigation failures must not crash a running UI.
type RestorationError struct {
	Op  string // Operation that failed (e.g., "extract_snapshot", "seed")
	Err error  // Underlying error
}

func (e *RestorationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("bussola: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("bussola: %s", e.Op)
}

func (e *RestorationError) Unwrap() error {
	return e.Err
}

// NewRestorationError creates a new restoration error.
func NewRestorationError(op string, err error) *RestorationError {
	return &RestorationError{Op: op, Err: err}
}

// IsRestorationError checks if an error is a restoration error.
func IsRestorationError(err error) bool {
	var restErr *RestorationError
	return errors.As(err, &restErr)
}
