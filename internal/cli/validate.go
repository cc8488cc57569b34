package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/riskcast/internal/model"
)

// ValidationResult holds validation results for JSON output.
type ValidationResult struct {
	Valid  bool                    `json:"valid"`
	Stages int                     `json:"stages,omitempty"`
	Risks  int                     `json:"risks,omitempty"`
	Errors []model.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <project.yaml>",
		Short: "Validate a project configuration without simulating",
		Long: `Validate a project configuration file without running any trial.

Checks stage and risk invariants: baseline durations, probability
ranges, impact bounds, stage ID uniqueness, and severity labels.
Reports every violation found, not just the first.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	project, validationErrs, err := LoadProjectErrors(path)
	if err != nil {
		var loadErr *LoadError
		if errors.As(err, &loadErr) {
			_ = formatter.Error(loadErr.Code, loadErr.Message, nil)
			return NewExitError(ExitCommandError, loadErr.Error())
		}
		_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
		return NewExitError(ExitCommandError, err.Error())
	}

	if len(validationErrs) > 0 {
		return outputValidationErrors(formatter, validationErrs)
	}

	return outputValidateSuccess(formatter, project.Stages(), project.RiskCount())
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, stages []model.Stage, risks int) error {
	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Stages: len(stages), Risks: risks})
	}

	fmt.Fprintf(formatter.Writer, "✓ Project valid: %d stage(s), %d risk(s)\n", len(stages), risks)
	return nil
}

// outputValidationErrors outputs the full violation list and maps it to
// exit code 1 (validation failure, recoverable by fixing the input).
func outputValidationErrors(formatter *OutputFormatter, errs model.ValidationErrors) error {
	if formatter.Format == "json" {
		_ = formatter.Error(errs[0].Code, errs[0].Message, ValidationResult{Valid: false, Errors: errs})
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)
	for _, err := range errs {
		fmt.Fprintf(formatter.Writer, "  %s %s: %s\n", err.Code, err.Field, err.Message)
	}

	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
