package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/riskcast/internal/report"
	"github.com/roach88/riskcast/internal/sim"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Trials    int
	Seed      int64
	Workers   int
	Threshold int
	CSVPath   string

	// TokenGenerator allows overriding the batch token generator (for
	// testing). If nil, defaults to UUIDv7.
	TokenGenerator sim.BatchTokenGenerator
}

// RunResult is the JSON payload of a completed simulation.
type RunResult struct {
	Project     string               `json:"project,omitempty"`
	Summary     report.Summary       `json:"summary"`
	Types       []report.TypeStats   `json:"risk_types,omitempty"`
	Mitigations []report.CrossTabRow `json:"mitigations,omitempty"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <project.yaml>",
		Short: "Run a Monte Carlo batch over a project configuration",
		Long: `Run repeated random trials over a staged project configuration and
report the distribution of total delay and duration.

The configuration is validated once before any trial. Fixing --seed
makes the batch fully reproducible; --workers parallelizes trials
without changing results.

Example:
  riskcast run project.yaml --trials 10000 --seed 42
  riskcast run project.yaml --trials 100000 --workers 8 --csv results.csv`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Trials, "trials", 10000, "number of trials to run")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "random seed (default: wall clock)")
	cmd.Flags().IntVar(&opts.Workers, "workers", 1, "goroutines executing trials")
	cmd.Flags().IntVar(&opts.Threshold, "threshold", 0, "months above which a run counts as delayed (default: total baseline)")
	cmd.Flags().StringVar(&opts.CSVPath, "csv", "", "write per-run summaries to this CSV file")

	return cmd
}

func runSimulation(opts *RunOptions, path string, cmd *cobra.Command) error {
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(handler))

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
		return WrapExitError(ExitCommandError, "failed to load project", err)
	}
	if len(validationErrs) > 0 {
		return outputValidationErrors(formatter, validationErrs)
	}

	threshold := opts.Threshold
	if threshold == 0 {
		// Default policy: a run is delayed when it overshoots the
		// risk-free project duration.
		threshold = project.TotalBaseline()
	}

	simOpts := []sim.Option{sim.WithWorkers(opts.Workers)}
	if cmd.Flags().Changed("seed") {
		simOpts = append(simOpts, sim.WithSeed(opts.Seed))
	}
	if opts.TokenGenerator != nil {
		simOpts = append(simOpts, sim.WithTokenGenerator(opts.TokenGenerator))
	}

	slog.Debug("running batch",
		"project", path,
		"trials", opts.Trials,
		"workers", opts.Workers,
		"threshold", threshold,
	)

	result, err := sim.New(project, simOpts...).RunBatch(cmd.Context(), opts.Trials)
	if err != nil {
		if sim.IsInvalidTrialCount(err) {
			_ = formatter.Error(ErrCodeGeneric, err.Error(), nil)
			return WrapExitError(ExitCommandError, "invalid trial count", err)
		}
		return WrapExitError(ExitFailure, "simulation failed", err)
	}

	if opts.CSVPath != "" {
		if err := writeCSV(opts.CSVPath, result); err != nil {
			return WrapExitError(ExitCommandError, "failed to write CSV", err)
		}
		formatter.VerboseLog("Wrote %d run summaries to %s", len(result.Summaries), opts.CSVPath)
	}

	stats := report.Stats(result.BatchID, result.Summaries, threshold)
	types := report.ByType(result.Register)
	crosstab := report.MitigationCrossTab(result.Register)

	if opts.Format == "json" {
		return formatter.Success(RunResult{
			Project:     project.Name(),
			Summary:     stats,
			Types:       types,
			Mitigations: crosstab,
		})
	}

	report.Render(formatter.Writer, stats, types, crosstab)
	return nil
}

// writeCSV exports the batch's run summaries to path.
func writeCSV(path string, result *sim.BatchResult) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := report.WriteSummariesCSV(f, result.Summaries); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
