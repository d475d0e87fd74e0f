// Seeded RNG for deterministic reproducible simulations.
// Uses the PCG32 algorithm for cross-platform, version-stable random number
// generation.
//
// Why PCG32?
// - math/rand is deterministic within a Go version but the algorithm is not
//   guaranteed stable across Go upgrades
// - PCG32 is fast, simple (~20 lines), statistically excellent, and the
//   algorithm is fixed forever (we control it)
// - This enables long-term reproducibility: same seed + same inputs →
//   identical trajectories

package rng

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// gonumSource adapts *Rand to gonum's rand.Source interface (Uint64/Seed),
// whose Seed(uint64) signature differs from Rand's own Seed() int64 accessor
// and so cannot be implemented directly on *Rand.
type gonumSource struct {
	r *Rand
}

func (s gonumSource) Uint64() uint64   { return s.r.Uint64() }
func (s gonumSource) Seed(seed uint64) {}

var _ rand.Source = gonumSource{}

// =============================================================================
// PCG32 IMPLEMENTATION
// =============================================================================

// PCG32 implements the PCG32 pseudo-random number generator.
// Algorithm from https://www.pcg-random.org/
type PCG32 struct {
	state uint64
	inc   uint64
}

// NewPCG32 creates a new PCG32 generator with the given seed.
func NewPCG32(seed int64) *PCG32 {
	pcg := &PCG32{}
	pcg.Seed(seed)
	return pcg
}

// Seed initializes the PCG32 with a seed value.
func (p *PCG32) Seed(seed int64) {
	// Use seed for both state initialization and stream selection
	// so that different seeds produce different sequences.
	p.state = 0
	p.inc = (uint64(seed) << 1) | 1 // inc must be odd
	p.Uint32()                      // Advance state once
	p.state += uint64(seed)
	p.Uint32() // Advance state again for better mixing
}

// Uint32 returns a uniformly distributed uint32.
func (p *PCG32) Uint32() uint32 {
	// PCG-XSH-RR variant
	oldstate := p.state
	p.state = oldstate*6364136223846793005 + p.inc
	xorshifted := uint32(((oldstate >> 18) ^ oldstate) >> 27)
	rot := uint32(oldstate >> 59)
	return (xorshifted >> rot) | (xorshifted << ((-rot) & 31))
}

// Uint64 returns a uniformly distributed uint64.
func (p *PCG32) Uint64() uint64 {
	return (uint64(p.Uint32()) << 32) | uint64(p.Uint32())
}

// Float64 returns a uniformly distributed float64 in [0, 1).
func (p *PCG32) Float64() float64 {
	// Use 53 bits for precision, like math/rand does
	return float64(p.Uint64()>>11) / (1 << 53)
}

// =============================================================================
// RAND WRAPPER
// =============================================================================

// Rand wraps PCG32 with reset capability and distribution sampling.
//
// There is exactly one Rand per simulation, owned by the scheduler and passed
// by reference to every method that consumes randomness. No component holds
// its own generator. No mutex — a simulation run is single-threaded.
//
// Rand does not itself satisfy gonum's rand.Source (its Seed accessor has a
// different signature); the distuv-backed samplers below wrap it in
// gonumSource, so they draw from the same deterministic stream as the
// direct methods.
type Rand struct {
	pcg         *PCG32
	initialSeed int64
	callCount   uint64
}

// New creates a new seeded Rand.
func New(seed int64) *Rand {
	return &Rand{
		pcg:         NewPCG32(seed),
		initialSeed: seed,
	}
}

// Uint64 returns a uniformly distributed uint64. gonumSource forwards the
// gonum rand.Source Uint64 call here.
func (r *Rand) Uint64() uint64 {
	r.callCount++
	return r.pcg.Uint64()
}

// Float64 returns a uniformly distributed float64 in [0, 1).
func (r *Rand) Float64() float64 {
	r.callCount++
	return r.pcg.Float64()
}

// NormFloat64 returns a normally distributed float64 with mean 0 and
// stddev 1, via the Box-Muller transform.
func (r *Rand) NormFloat64() float64 {
	r.callCount++
	for {
		u1 := r.pcg.Float64()
		u2 := r.pcg.Float64()
		if u1 > 0 { // Avoid log(0)
			// Box-Muller generates pairs; we only use one
			return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
		}
	}
}

// Intn returns a uniformly distributed int in [0, n). Panics if n <= 0.
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		panic("rng: Intn called with non-positive n")
	}
	return int(r.Uint64() % uint64(n))
}

// Perm returns a pseudo-random permutation of the integers [0, n).
func (r *Rand) Perm(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	// Fisher-Yates
	for i := n - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		p[i], p[j] = p[j], p[i]
	}
	return p
}

// Reset resets the generator to its initial seed state, replaying the same
// sequence of random numbers.
func (r *Rand) Reset() {
	r.pcg.Seed(r.initialSeed)
	r.callCount = 0
}

// Seed returns the initial seed used to create this Rand.
func (r *Rand) Seed() int64 {
	return r.initialSeed
}

// CallCount returns the number of random calls made (for debugging).
func (r *Rand) CallCount() uint64 {
	return r.callCount
}

// =============================================================================
// DISTRIBUTION SAMPLING
// =============================================================================

// Gaussian returns a draw from N(mean, stdev²).
func (r *Rand) Gaussian(mean, stdev float64) float64 {
	return mean + stdev*r.NormFloat64()
}

// LogNormal returns a draw from a log-normal distribution with the given
// location and scale parameters of the underlying normal.
func (r *Rand) LogNormal(mu, sigma float64) float64 {
	ln := distuv.LogNormal{Mu: mu, Sigma: sigma, Src: gonumSource{r}}
	return ln.Rand()
}

// Pareto returns a draw from a Lomax-style Pareto distribution with minimum
// 0 and the given shape (tail) parameter.
func (r *Rand) Pareto(shape float64) float64 {
	p := distuv.Pareto{Xm: 1, Alpha: shape, Src: gonumSource{r}}
	return p.Rand() - 1
}

// ClippedGaussian returns a draw from N(mean, stdev²) clamped to [lo, hi].
func (r *Rand) ClippedGaussian(mean, stdev, lo, hi float64) float64 {
	n := distuv.Normal{Mu: mean, Sigma: stdev, Src: gonumSource{r}}
	return math.Min(math.Max(n.Rand(), lo), hi)
}
