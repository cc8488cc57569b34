package sim

import (
	"math/rand"

	"github.com/roach88/riskcast/internal/model"
)

// Run executes one stochastic trial over the project's stages.
//
// Stages are processed in ascending ID order. For each risk definition a
// uniform value in [0,1) is drawn; the risk fires when the value is
// strictly less than the risk's probability. A fired risk contributes a
// delay sampled uniformly over the closed interval [ImpactMin, ImpactMax]
// and is logged even when that delay is zero.
//
// Entropy use is exactly 1 draw per risk definition, plus 1 per fired
// risk. Given a fixed rng stream the result is deterministic.
//
// The returned events carry no Run index; the batch runner stamps it when
// merging into the register.
func Run(p *model.Project, rng *rand.Rand) (totalDelay, totalDuration int, fired []model.FiredEvent) {
	for _, stage := range p.Stages() {
		stageDuration := stage.Baseline

		for _, risk := range stage.Risks {
			if rng.Float64() >= risk.Probability {
				continue
			}

			delay := sampleDelay(rng, risk.ImpactMin, risk.ImpactMax)
			stageDuration += delay
			totalDelay += delay

			fired = append(fired, model.FiredEvent{
				StageID:    stage.ID,
				Type:       risk.Type,
				Severity:   risk.Severity,
				Delay:      delay,
				Mitigation: risk.Mitigation,
			})
		}

		// Stages are strictly sequential: no stage's duration is capped
		// or shortened by another's outcome.
		totalDuration += stageDuration
	}

	return totalDelay, totalDuration, fired
}

// sampleDelay draws a uniform integer over [min, max], both endpoints
// inclusive. Bounds are already validated (0 <= min <= max).
func sampleDelay(rng *rand.Rand, min, max int) int {
	return min + rng.Intn(max-min+1)
}
