// Package surrogate generates synthetic realizations of a timeseries that
// preserve selected statistical structure of the original while destroying
// the structure under test. The transition pipeline builds its null
// distribution from an ensemble of such realizations.
package surrogate

import (
	"errors"
	"fmt"
	"math/rand"
)

// Method names a surrogate-generation algorithm.
type Method string

const (
	// Shuffle permutes the original samples: the amplitude distribution
	// survives, all temporal structure is destroyed.
	Shuffle Method = "shuffle"

	// Phase randomizes Fourier phases: the power spectrum (and therefore
	// the linear autocorrelation) survives, higher-order structure is
	// destroyed.
	Phase Method = "phase"

	// AR1 fits a lag-1 autoregressive model to the original and draws fresh
	// realizations from it.
	AR1 Method = "ar1"
)

// ErrUnknownMethod indicates a method name with no registered generator.
var ErrUnknownMethod = errors.New("surrogate: unknown method")

// Methods lists the registered surrogate methods.
func Methods() []Method { return []Method{Shuffle, Phase, AR1} }

// Valid reports whether m names a registered method.
func (m Method) Valid() bool {
	switch m {
	case Shuffle, Phase, AR1:
		return true
	}
	return false
}

// Generator produces one fresh realization of its bound original per call.
// A generator owns its random stream and is not safe for concurrent use;
// every worker lane gets its own instance.
type Generator interface {
	Generate() []float64
}

// New builds a generator of the given method, bound to the original series
// and to a dedicated random stream seeded with seed. Generators holding
// different seeds produce independent realizations; the original is read
// once at construction and never mutated.
func New(method Method, original []float64, seed int64) (Generator, error) {
	rng := rand.New(rand.NewSource(seed))
	switch method {
	case Shuffle:
		return newShuffler(original, rng), nil
	case Phase:
		return newPhaseRandomizer(original, rng), nil
	case AR1:
		return newAR1(original, rng), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
}
