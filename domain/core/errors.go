package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input validation errors
	ErrInvalidData = errors.New("invalid sample data")

	// Lifecycle errors
	ErrNotYetRun = errors.New("no simulation has run yet")

	// Internal consistency errors - these indicate programming bugs,
	// never user error, and must not be silently recovered
	ErrInvariantViolation = errors.New("internal invariant violated")

	// Determinism errors
	ErrSeedMismatch = errors.New("seed mismatch")
)

// NewInvalidDataError wraps ErrInvalidData with a reason
func NewInvalidDataError(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidData, reason)
}

// NewInvalidGroupError wraps ErrInvalidData with the offending group index
func NewInvalidGroupError(group int, reason string) error {
	return fmt.Errorf("%w: group %d: %s", ErrInvalidData, group, reason)
}

// NewInvariantError wraps ErrInvariantViolation with a formatted description
func NewInvariantError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvariantViolation, fmt.Sprintf(format, args...))
}

// Error checking helpers
func IsInvalidDataError(err error) bool {
	return errors.Is(err, ErrInvalidData)
}

func IsNotYetRunError(err error) bool {
	return errors.Is(err, ErrNotYetRun)
}

func IsInvariantViolation(err error) bool {
	return errors.Is(err, ErrInvariantViolation)
}
