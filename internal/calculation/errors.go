package calculation

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPlan matches every *InvalidPlanError
	ErrInvalidPlan = errors.New("invalid investment plan")
	// ErrProjectionOverflow matches every *ProjectionOverflowError
	ErrProjectionOverflow = errors.New("projection overflow")
)

// InvalidPlanError reports a plan field that violates the plan invariants.
// It is returned before any computation takes place.
type InvalidPlanError struct {
	Field  string
	Reason string
}

func (e *InvalidPlanError) Error() string {
	return fmt.Sprintf("invalid plan: %s %s", e.Field, e.Reason)
}

func (e *InvalidPlanError) Is(target error) bool {
	return target == ErrInvalidPlan
}

// ProjectionOverflowError reports the first period at which compounding left the finite range.
type ProjectionOverflowError struct {
	Period int
}

func (e *ProjectionOverflowError) Error() string {
	return fmt.Sprintf("projection overflow: value is not finite at period %d", e.Period)
}

func (e *ProjectionOverflowError) Is(target error) bool {
	return target == ErrProjectionOverflow
}

func invalid(field, format string, args ...any) error {
	return &InvalidPlanError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
