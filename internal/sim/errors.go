package sim

import (
	"errors"
	"fmt"
)

// InvalidTrialCountError reports a batch request with fewer than one
// trial. It is raised before any trial executes.
type InvalidTrialCountError struct {
	Trials int
}

// Error implements the error interface.
func (e *InvalidTrialCountError) Error() string {
	return fmt.Sprintf("trial count must be at least 1, got %d", e.Trials)
}

// IsInvalidTrialCount returns true if the error is an
// InvalidTrialCountError. Uses errors.As to handle wrapped errors.
func IsInvalidTrialCount(err error) bool {
	var e *InvalidTrialCountError
	return errors.As(err, &e)
}
