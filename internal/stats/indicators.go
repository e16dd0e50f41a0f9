package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Mean is the window average.
type Mean struct{}

func (Mean) Name() string { return "mean" }

func (Mean) Compute(w []float64) float64 { return stat.Mean(w, nil) }

// Variance is the unbiased sample variance of the window.
type Variance struct{}

func (Variance) Name() string { return "variance" }

func (Variance) Compute(w []float64) float64 { return stat.Variance(w, nil) }

// StdDev is the unbiased sample standard deviation of the window.
type StdDev struct{}

func (StdDev) Name() string { return "stddev" }

func (StdDev) Compute(w []float64) float64 { return stat.StdDev(w, nil) }

// Skewness is the sample skewness of the window. A zero-variance window
// yields NaN; degeneracies propagate rather than being masked.
type Skewness struct{}

func (Skewness) Name() string { return "skewness" }

func (Skewness) Compute(w []float64) float64 { return stat.Skew(w, nil) }

// Kurtosis is the excess kurtosis of the window.
type Kurtosis struct{}

func (Kurtosis) Name() string { return "kurtosis" }

func (Kurtosis) Compute(w []float64) float64 { return stat.ExKurtosis(w, nil) }

// AC1 is the lag-1 autocorrelation of the window, the canonical critical-
// slowing-down indicator: it approaches 1 as a system loses resilience.
type AC1 struct{}

func (AC1) Name() string { return "ac1" }

func (AC1) Compute(w []float64) float64 {
	n := len(w)
	if n < 2 {
		return math.NaN()
	}
	return stat.Correlation(w[:n-1], w[1:], nil)
}

// PermutationEntropy is the normalized Shannon entropy of ordinal patterns
// of Order consecutive samples (Bandt-Pompe). Values lie in [0, 1]; a
// monotonic window scores 0, white noise scores near 1.
type PermutationEntropy struct {
	Order int // pattern length; values below 2 fall back to 3
}

func (PermutationEntropy) Name() string { return "perm_entropy" }

func (p PermutationEntropy) Compute(w []float64) float64 {
	m := p.Order
	if m < 2 {
		m = 3
	}
	n := len(w) - m + 1
	if n < 1 {
		return math.NaN()
	}

	counts := make(map[int]int, factorial(m))
	idx := make([]int, m)
	for i := 0; i < n; i++ {
		tuple := w[i : i+m]
		for j := range idx {
			idx[j] = j
		}
		sort.SliceStable(idx, func(a, b int) bool { return tuple[idx[a]] < tuple[idx[b]] })
		counts[lehmer(idx)]++
	}

	var h float64
	for _, c := range counts {
		f := float64(c) / float64(n)
		h -= f * math.Log(f)
	}
	return h / math.Log(float64(factorial(m)))
}

// lehmer encodes a permutation as a unique integer rank.
func lehmer(perm []int) int {
	code := 0
	for i := 0; i < len(perm); i++ {
		smaller := 0
		for j := i + 1; j < len(perm); j++ {
			if perm[j] < perm[i] {
				smaller++
			}
		}
		code = code*(len(perm)-i) + smaller
	}
	return code
}

func factorial(n int) int {
	out := 1
	for i := 2; i <= n; i++ {
		out *= i
	}
	return out
}
