package model

import (
	"fmt"
	"strings"
)

// Validation error codes (E100-E199)
const (
	ErrNoStages         = "E100" // at least one stage required
	ErrDuplicateStageID = "E101" // stage IDs must be unique
	ErrBaselineTooSmall = "E102" // baseline duration must be >= 1
	ErrProbabilityRange = "E103" // probability must be within [0, 1]
	ErrImpactNegative   = "E104" // impact bounds must be non-negative
	ErrImpactInverted   = "E105" // impact_min must be <= impact_max
	ErrInvalidSeverity  = "E106" // severity must be a known label
)

// ValidationError represents a single configuration invariant violation.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// ValidationErrors is the full set of violations found in one pass.
// Validation does not fail-fast: callers get every offending field at once.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	msgs := make([]string, len(e))
	for i, v := range e {
		msgs[i] = v.Error()
	}
	return fmt.Sprintf("%d validation errors: %s", len(e), strings.Join(msgs, "; "))
}

// Validate checks every configuration invariant against the given stages.
// Returns all violations found, or nil if the configuration is valid.
//
// Checks:
//   - at least one stage
//   - stage IDs unique
//   - baseline duration >= 1
//   - 0 <= probability <= 1
//   - 0 <= impact_min <= impact_max
//   - severity is one of low, medium, high, critical
func Validate(stages []Stage) ValidationErrors {
	var errs ValidationErrors

	if len(stages) == 0 {
		errs = append(errs, ValidationError{
			Field:   "stages",
			Message: "at least one stage is required",
			Code:    ErrNoStages,
		})
		return errs
	}

	seen := make(map[int]bool, len(stages))
	for i, stage := range stages {
		if seen[stage.ID] {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("stages[%d].id", i),
				Message: fmt.Sprintf("duplicate stage id: %d", stage.ID),
				Code:    ErrDuplicateStageID,
			})
		}
		seen[stage.ID] = true

		if stage.Baseline < 1 {
			errs = append(errs, ValidationError{
				Field:   fmt.Sprintf("stages[%d].baseline", i),
				Message: fmt.Sprintf("baseline duration must be at least 1 month, got %d", stage.Baseline),
				Code:    ErrBaselineTooSmall,
			})
		}

		for j, risk := range stage.Risks {
			field := func(name string) string {
				return fmt.Sprintf("stages[%d].risks[%d].%s", i, j, name)
			}

			if risk.Probability < 0 || risk.Probability > 1 {
				errs = append(errs, ValidationError{
					Field:   field("probability"),
					Message: fmt.Sprintf("probability must be within [0, 1], got %g", risk.Probability),
					Code:    ErrProbabilityRange,
				})
			}

			if risk.ImpactMin < 0 || risk.ImpactMax < 0 {
				errs = append(errs, ValidationError{
					Field:   field("impact_min"),
					Message: fmt.Sprintf("impact bounds must be non-negative, got (%d, %d)", risk.ImpactMin, risk.ImpactMax),
					Code:    ErrImpactNegative,
				})
			} else if risk.ImpactMin > risk.ImpactMax {
				errs = append(errs, ValidationError{
					Field:   field("impact_min"),
					Message: fmt.Sprintf("impact_min %d exceeds impact_max %d", risk.ImpactMin, risk.ImpactMax),
					Code:    ErrImpactInverted,
				})
			}

			if !risk.Severity.Valid() {
				errs = append(errs, ValidationError{
					Field:   field("severity"),
					Message: fmt.Sprintf("unknown severity %q (want low, medium, high, or critical)", risk.Severity),
					Code:    ErrInvalidSeverity,
				})
			}
		}
	}

	return errs
}
