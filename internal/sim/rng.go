package sim

import "math/rand"

// splitmix64 constants (Steele, Lea, Flood 2014). Used to derive
// well-separated per-trial seeds from a single batch seed.
const (
	smGamma = 0x9E3779B97F4A7C15
	smMix1  = 0xBF58476D1CE4E5B9
	smMix2  = 0x94D049BB133111EB
)

// runSeed derives the seed for trial index run from the batch seed.
//
// Adjacent trial indexes produce unrelated seeds, so each trial's
// substream is independent of the others without any shared generator
// state between workers.
func runSeed(seed int64, run int) int64 {
	z := uint64(seed) + uint64(run+1)*smGamma
	z = (z ^ (z >> 30)) * smMix1
	z = (z ^ (z >> 27)) * smMix2
	return int64(z ^ (z >> 31))
}

// runRand returns the private random stream for one trial.
func runRand(seed int64, run int) *rand.Rand {
	return rand.New(rand.NewSource(runSeed(seed, run)))
}
