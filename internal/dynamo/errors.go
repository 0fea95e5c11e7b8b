package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for sandbox operations.
var (
	// ErrNonFinite indicates a NaN or Inf appeared in a body's position or velocity.
	ErrNonFinite = errors.New("dynamo: non-finite value in body state")

	// ErrDegenerateBounds indicates a play area with a non-positive dimension.
	ErrDegenerateBounds = errors.New("dynamo: play area bounds must be positive")

	// ErrInvalidBody indicates a missing body or one with a non-positive radius.
	ErrInvalidBody = errors.New("dynamo: invalid body")

	// ErrPopulationCap indicates a spawn was refused because the world is full.
	ErrPopulationCap = errors.New("dynamo: population cap reached")
)

// PhaseError wraps a fault with the frame phase and the bodies involved.
// Body and Other are body IDs; zero means "not applicable".
type PhaseError struct {
	Phase   string
	Frame   int
	Body    uint64
	Other   uint64
	Wrapped error
}

func (e *PhaseError) Error() string {
	switch {
	case e.Body != 0 && e.Other != 0:
		return fmt.Sprintf("frame %d %s (bodies %d,%d): %v", e.Frame, e.Phase, e.Body, e.Other, e.Wrapped)
	case e.Body != 0:
		return fmt.Sprintf("frame %d %s (body %d): %v", e.Frame, e.Phase, e.Body, e.Wrapped)
	default:
		return fmt.Sprintf("frame %d %s: %v", e.Frame, e.Phase, e.Wrapped)
	}
}

func (e *PhaseError) Unwrap() error {
	return e.Wrapped
}
