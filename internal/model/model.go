// Package model defines the validated value types for a project
// configuration: stages, their attached risk definitions, and the
// immutable output records produced by the simulator.
//
// All invariants are enforced once, at construction time via NewProject.
// The simulator never re-validates per trial.
package model

import "sort"

// Severity classifies a risk definition's impact category.
type Severity string

// Allowed severity labels.
const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Valid reports whether s is one of the four allowed labels.
func (s Severity) Valid() bool {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical:
		return true
	}
	return false
}

// RiskEvent is an immutable risk definition attached to a stage.
//
// Probability is the chance the risk fires in one trial. When it fires,
// the realized delay is a uniform integer over [ImpactMin, ImpactMax],
// inclusive of both endpoints.
type RiskEvent struct {
	Type        string   `yaml:"type" json:"type"`
	Probability float64  `yaml:"probability" json:"probability"`
	ImpactMin   int      `yaml:"impact_min" json:"impact_min"`
	ImpactMax   int      `yaml:"impact_max" json:"impact_max"`
	Severity    Severity `yaml:"severity" json:"severity"`
	Mitigation  string   `yaml:"mitigation" json:"mitigation"`
}

// Stage is one sequential phase of the project.
//
// ID defines execution order: stages run in ascending ID order, never in
// parallel. Baseline is the stage's duration in months before any risk
// fires. Risk order within a stage is irrelevant to the outcome since
// risks are evaluated independently.
type Stage struct {
	ID       int         `yaml:"id" json:"id"`
	Name     string      `yaml:"name" json:"name"`
	Baseline int         `yaml:"baseline" json:"baseline"`
	Risks    []RiskEvent `yaml:"risks,omitempty" json:"risks,omitempty"`
}

// Project is a validated, ordered sequence of stages.
//
// A Project is read-only after construction and safe to share across
// concurrent trials by reference.
type Project struct {
	name   string
	stages []Stage
}

// NewProject validates raw stage definitions and constructs a Project.
//
// Stages are sorted into ascending ID order. All invariants are checked
// here (see Validate); a non-nil error is always a ValidationErrors list.
func NewProject(name string, stages []Stage) (*Project, error) {
	sorted := make([]Stage, len(stages))
	copy(sorted, stages)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	if errs := Validate(sorted); len(errs) > 0 {
		return nil, errs
	}

	return &Project{name: name, stages: sorted}, nil
}

// Name returns the project's display name. May be empty.
func (p *Project) Name() string {
	return p.name
}

// Stages returns the stages in execution order.
//
// The returned slice is the Project's own backing array; callers must
// treat it as read-only.
func (p *Project) Stages() []Stage {
	return p.stages
}

// TotalBaseline returns the sum of every stage's baseline duration.
// This is the project duration when no risk fires.
func (p *Project) TotalBaseline() int {
	total := 0
	for _, s := range p.stages {
		total += s.Baseline
	}
	return total
}

// RiskCount returns the total number of risk definitions across stages.
func (p *Project) RiskCount() int {
	n := 0
	for _, s := range p.stages {
		n += len(s.Risks)
	}
	return n
}

// FiredEvent is the realized outcome of one risk definition in one run.
//
// Run and StageID identify where the event came from: Run is the
// zero-based trial index stamped by the batch runner at merge time,
// StageID the originating stage. FiredEvents are never mutated after
// creation.
type FiredEvent struct {
	Run        int      `json:"run"`
	StageID    int      `json:"stage_id"`
	Type       string   `json:"type"`
	Severity   Severity `json:"severity"`
	Delay      int      `json:"delay"`
	Mitigation string   `json:"mitigation"`
}

// RunSummary is the per-trial result record.
//
// TotalDelay is the sum of all realized delays in the run. TotalDuration
// is the sum over stages of baseline plus that stage's accumulated delay;
// stages are strictly sequential, so it is a pure sum.
type RunSummary struct {
	TotalDelay    int `json:"total_delay"`
	TotalDuration int `json:"total_duration"`
}
