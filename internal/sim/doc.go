// Package sim implements the Monte Carlo simulation engine: the per-trial
// stage/risk evaluation and the batch runner that repeats it and merges
// the results.
//
// ARCHITECTURE:
//
// Run() executes exactly one trial. It walks the stages in ascending ID
// order, draws once per risk definition to decide whether the risk fires,
// and once more per fired risk to sample the realized delay. A trial owns
// no retained state; its only side effect is consuming entropy from the
// caller's random stream.
//
// Simulator.RunBatch() repeats Run() for a trial count and owns the two
// aggregated output collections: the per-run summaries and the batch-wide
// risk register. It performs no aggregation beyond that - statistics are
// the caller's concern (see internal/report).
//
// DETERMINISM:
//
// Every trial draws from its own substream, derived from the batch seed
// and the trial index with a splitmix64 mix. Trials never share mutable
// generator state, so batch output is a pure function of (project, seed,
// trial count) - the worker count changes wall time, never results.
package sim
