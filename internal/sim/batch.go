package sim

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/riskcast/internal/model"
)

// BatchResult holds the two output collections of a batch: one summary
// per run, in run order, and the concatenated risk register of every
// fired event across all runs, stamped with its run index.
//
// The batch runner reports nothing beyond these collections; deriving
// statistics from them is the caller's responsibility.
type BatchResult struct {
	BatchID   string             `json:"batch_id"`
	Summaries []model.RunSummary `json:"summaries"`
	Register  []model.FiredEvent `json:"register"`
}

// Simulator runs batches of independent trials over one validated
// project configuration.
//
// The configuration is shared by reference and never mutated; per-trial
// state is exclusively owned by that trial until merged into the batch
// result.
type Simulator struct {
	project *model.Project
	seed    int64
	workers int
	tokens  BatchTokenGenerator
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithSeed fixes the batch seed. Batches with the same project, seed,
// and trial count produce identical results. Without this option the
// seed is taken from the wall clock.
func WithSeed(seed int64) Option {
	return func(s *Simulator) {
		s.seed = seed
	}
}

// WithWorkers sets the number of goroutines executing trials.
//
// Trials are embarrassingly parallel: each draws from its own substream,
// so the worker count never changes results. Values below 1 are treated
// as 1 (the single-threaded reference path).
func WithWorkers(workers int) Option {
	return func(s *Simulator) {
		if workers < 1 {
			workers = 1
		}
		s.workers = workers
	}
}

// WithTokenGenerator overrides the batch token generator (for testing).
func WithTokenGenerator(gen BatchTokenGenerator) Option {
	return func(s *Simulator) {
		s.tokens = gen
	}
}

// New creates a Simulator for a validated project.
//
// The project must come from model.NewProject; its invariants are not
// re-checked here.
func New(p *model.Project, opts ...Option) *Simulator {
	s := &Simulator{
		project: p,
		seed:    time.Now().UnixNano(),
		workers: 1,
		tokens:  UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RunBatch executes exactly trials independent runs and merges their
// output into a BatchResult.
//
// trials < 1 fails with InvalidTrialCountError before any work begins.
// Cancellation is coarse: when ctx is cancelled, remaining trials are
// abandoned and the context error is returned with no partial result.
func (s *Simulator) RunBatch(ctx context.Context, trials int) (*BatchResult, error) {
	if trials < 1 {
		return nil, &InvalidTrialCountError{Trials: trials}
	}

	batchID := s.tokens.Generate()
	slog.Debug("batch starting",
		"batch_id", batchID,
		"trials", trials,
		"workers", s.workers,
		"stages", len(s.project.Stages()),
	)

	summaries := make([]model.RunSummary, trials)
	perRun := make([][]model.FiredEvent, trials)

	if s.workers == 1 {
		for run := 0; run < trials; run++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			s.trial(run, summaries, perRun)
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		for w := 0; w < s.workers; w++ {
			w := w
			g.Go(func() error {
				for run := w; run < trials; run += s.workers {
					if err := gctx.Err(); err != nil {
						return err
					}
					s.trial(run, summaries, perRun)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	// Merge per-run event lists into the register in run order, stamping
	// each event with the run it came from.
	total := 0
	for _, events := range perRun {
		total += len(events)
	}
	register := make([]model.FiredEvent, 0, total)
	for run, events := range perRun {
		for _, ev := range events {
			ev.Run = run
			register = append(register, ev)
		}
	}

	slog.Debug("batch complete",
		"batch_id", batchID,
		"trials", trials,
		"fired_events", len(register),
	)

	return &BatchResult{
		BatchID:   batchID,
		Summaries: summaries,
		Register:  register,
	}, nil
}

// trial executes one run on its private substream and records the result
// at its run index. Safe to call concurrently for distinct run indexes.
func (s *Simulator) trial(run int, summaries []model.RunSummary, perRun [][]model.FiredEvent) {
	rng := runRand(s.seed, run)
	delay, duration, fired := Run(s.project, rng)
	summaries[run] = model.RunSummary{TotalDelay: delay, TotalDuration: duration}
	perRun[run] = fired
}
