package surrogate

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"
)

type shuffler struct {
	original []float64
	rng      *rand.Rand
}

func newShuffler(original []float64, rng *rand.Rand) *shuffler {
	return &shuffler{original: original, rng: rng}
}

func (s *shuffler) Generate() []float64 {
	out := make([]float64, len(s.original))
	for i, j := range s.rng.Perm(len(s.original)) {
		out[i] = s.original[j]
	}
	return out
}

type phaseRandomizer struct {
	rng     *rand.Rand
	fft     *fourier.FFT
	coeff   []complex128 // spectrum of the original, computed once
	scratch []complex128
	n       int
}

func newPhaseRandomizer(original []float64, rng *rand.Rand) *phaseRandomizer {
	n := len(original)
	fft := fourier.NewFFT(n)
	coeff := fft.Coefficients(nil, original)
	return &phaseRandomizer{
		rng:     rng,
		fft:     fft,
		coeff:   coeff,
		scratch: make([]complex128, len(coeff)),
		n:       n,
	}
}

// Generate rotates each interior Fourier coefficient by a uniform random
// phase and inverts the transform. Magnitudes are untouched, so every
// surrogate shares the original's power spectrum. The DC bin never rotates;
// for even lengths the Nyquist bin must stay real and is left alone too.
func (p *phaseRandomizer) Generate() []float64 {
	copy(p.scratch, p.coeff)
	hi := len(p.scratch) - 1
	if p.n%2 != 0 {
		hi++ // odd length: the top bin is an ordinary conjugate pair
	}
	for k := 1; k < hi && k < len(p.scratch); k++ {
		theta := 2 * math.Pi * p.rng.Float64()
		p.scratch[k] *= complex(math.Cos(theta), math.Sin(theta))
	}
	out := p.fft.Sequence(nil, p.scratch)
	inv := 1 / float64(p.n) // gonum's FFT is unnormalized
	for i := range out {
		out[i] *= inv
	}
	return out
}

type ar1 struct {
	rng   *rand.Rand
	n     int
	mean  float64
	phi   float64
	sigma float64 // innovation standard deviation
}

// newAR1 fits x[t+1]-mu = phi*(x[t]-mu) + e by least squares and estimates
// the innovation deviation from the one-step residuals.
func newAR1(original []float64, rng *rand.Rand) *ar1 {
	n := len(original)
	mean := stat.Mean(original, nil)

	var num, den float64
	for i := 0; i+1 < n; i++ {
		a := original[i] - mean
		num += a * (original[i+1] - mean)
		den += a * a
	}
	phi := 0.0
	if den > 0 {
		phi = num / den
	}

	var ss float64
	for i := 0; i+1 < n; i++ {
		r := (original[i+1] - mean) - phi*(original[i]-mean)
		ss += r * r
	}
	sigma := 0.0
	if n > 1 {
		sigma = math.Sqrt(ss / float64(n-1))
	}
	return &ar1{rng: rng, n: n, mean: mean, phi: phi, sigma: sigma}
}

func (g *ar1) Generate() []float64 {
	out := make([]float64, g.n)
	prev := 0.0
	if g.phi > -1 && g.phi < 1 {
		// start from the stationary distribution
		prev = g.rng.NormFloat64() * g.sigma / math.Sqrt(1-g.phi*g.phi)
	}
	for i := range out {
		prev = g.phi*prev + g.rng.NormFloat64()*g.sigma
		out[i] = g.mean + prev
	}
	return out
}
