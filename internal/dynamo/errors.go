package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for sweep operations.
var (
	// ErrUnknownMap indicates a map selector with no registered map.
	ErrUnknownMap = errors.New("dynamo: unknown map")

	// ErrInvalidConfig indicates a sweep configuration that cannot run.
	ErrInvalidConfig = errors.New("dynamo: invalid sweep configuration")

	// ErrMapPanic indicates a map implementation panicked while iterating.
	ErrMapPanic = errors.New("dynamo: map panicked")
)

// SweepError wraps a worker failure with the parameter it was computing.
type SweepError struct {
	Index   int
	Param   float64
	Cause   any
	Wrapped error
}

func (e *SweepError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("param[%d]=%g: %v: %v", e.Index, e.Param, e.Wrapped, e.Cause)
	}
	return fmt.Sprintf("param[%d]=%g: %v", e.Index, e.Param, e.Wrapped)
}

func (e *SweepError) Unwrap() error {
	return e.Wrapped
}
