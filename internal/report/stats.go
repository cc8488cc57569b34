// Package report derives caller-side statistics from the simulator's two
// raw output collections: aggregate delay/duration metrics from the run
// summaries, and per-risk-type breakdowns from the risk register.
//
// Everything here is layered on top of sim.BatchResult; the engine itself
// guarantees only that the raw collections are correct and complete.
package report

import (
	"fmt"
	"math"
	"sort"

	"github.com/roach88/riskcast/internal/model"
)

// Summary aggregates the per-run summaries of one batch.
type Summary struct {
	BatchID         string `json:"batch_id"`
	Trials          int    `json:"trials"`
	ThresholdMonths int    `json:"threshold_months"`

	// DelayProbability is the fraction of runs whose total duration
	// exceeded ThresholdMonths. The threshold is a caller-chosen policy
	// parameter, never an engine invariant.
	DelayProbability float64        `json:"delay_probability"`
	MeanDelay        float64        `json:"mean_delay"`
	MaxDelay         int            `json:"max_delay"`
	MeanDuration     float64        `json:"mean_duration"`
	Percentiles      map[string]int `json:"duration_percentiles"`
}

// durationPercentiles are the quantiles reported for total duration.
var durationPercentiles = []int{50, 90, 95, 99}

// Stats computes the aggregate metrics for a batch of run summaries.
// thresholdMonths classifies a run as delayed when its total duration
// strictly exceeds it.
func Stats(batchID string, summaries []model.RunSummary, thresholdMonths int) Summary {
	s := Summary{
		BatchID:         batchID,
		Trials:          len(summaries),
		ThresholdMonths: thresholdMonths,
		Percentiles:     computePercentiles(nil, durationPercentiles),
	}
	if len(summaries) == 0 {
		return s
	}

	delayed := 0
	delaySum, durationSum := 0, 0
	durations := make([]int, len(summaries))
	for i, run := range summaries {
		if run.TotalDuration > thresholdMonths {
			delayed++
		}
		delaySum += run.TotalDelay
		durationSum += run.TotalDuration
		durations[i] = run.TotalDuration
		if run.TotalDelay > s.MaxDelay {
			s.MaxDelay = run.TotalDelay
		}
	}

	n := float64(len(summaries))
	s.DelayProbability = float64(delayed) / n
	s.MeanDelay = float64(delaySum) / n
	s.MeanDuration = float64(durationSum) / n
	s.Percentiles = computePercentiles(durations, durationPercentiles)
	return s
}

// TypeStats is the per-risk-type breakdown of the risk register.
type TypeStats struct {
	Type       string  `json:"type"`
	Count      int     `json:"count"`
	Share      float64 `json:"share"` // fraction of all fired events
	MeanDelay  float64 `json:"mean_delay"`
	TotalDelay int     `json:"total_delay"`
}

// ByType groups the risk register by risk type. Results are sorted by
// descending count, ties broken by type name.
func ByType(register []model.FiredEvent) []TypeStats {
	if len(register) == 0 {
		return nil
	}

	byType := make(map[string]*TypeStats)
	for _, ev := range register {
		ts, ok := byType[ev.Type]
		if !ok {
			ts = &TypeStats{Type: ev.Type}
			byType[ev.Type] = ts
		}
		ts.Count++
		ts.TotalDelay += ev.Delay
	}

	total := float64(len(register))
	out := make([]TypeStats, 0, len(byType))
	for _, ts := range byType {
		ts.Share = float64(ts.Count) / total
		ts.MeanDelay = float64(ts.TotalDelay) / float64(ts.Count)
		out = append(out, *ts)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Type < out[j].Type
	})
	return out
}

// CrossTabRow counts how often one mitigation appears for one risk type.
type CrossTabRow struct {
	Type       string `json:"type"`
	Mitigation string `json:"mitigation"`
	Count      int    `json:"count"`
}

// MitigationCrossTab tabulates fired events by (type, mitigation).
// Rows are sorted by type, then mitigation, for stable output.
func MitigationCrossTab(register []model.FiredEvent) []CrossTabRow {
	type key struct{ typ, mitigation string }
	counts := make(map[key]int)
	for _, ev := range register {
		counts[key{ev.Type, ev.Mitigation}]++
	}

	rows := make([]CrossTabRow, 0, len(counts))
	for k, n := range counts {
		rows = append(rows, CrossTabRow{Type: k.typ, Mitigation: k.mitigation, Count: n})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Type != rows[j].Type {
			return rows[i].Type < rows[j].Type
		}
		return rows[i].Mitigation < rows[j].Mitigation
	})
	return rows
}

// computePercentiles returns the requested percentiles of values using
// linear interpolation between closest ranks. Empty input yields zeros.
func computePercentiles(values []int, percentiles []int) map[string]int {
	result := make(map[string]int, len(percentiles))
	if len(values) == 0 {
		for _, p := range percentiles {
			result[percentileKey(p)] = 0
		}
		return result
	}

	sorted := append([]int{}, values...)
	sort.Ints(sorted)

	for _, p := range percentiles {
		pos := float64(p) / 100 * float64(len(sorted)-1)
		lower := int(math.Floor(pos))
		upper := int(math.Ceil(pos))
		if lower == upper {
			result[percentileKey(p)] = sorted[lower]
			continue
		}
		weight := pos - float64(lower)
		value := float64(sorted[lower])*(1-weight) + float64(sorted[upper])*weight
		result[percentileKey(p)] = int(math.Round(value))
	}
	return result
}

func percentileKey(p int) string {
	return fmt.Sprintf("p%d", p)
}
