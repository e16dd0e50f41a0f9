package stats

import (
	"gonum.org/v1/gonum/stat"
)

// RidgeSlope is the ridge-regularized least-squares slope of the window
// values against their sample index. Lambda = 0 reduces to the ordinary
// least-squares slope.
type RidgeSlope struct {
	Lambda float64 `yaml:"lambda" json:"lambda"`
}

func (RidgeSlope) Name() string { return "ridge_slope" }

func (r RidgeSlope) Compute(w []float64) float64 {
	n := len(w)
	tbar := float64(n-1) / 2
	xbar := stat.Mean(w, nil)
	var num, den float64
	for i, v := range w {
		dt := float64(i) - tbar
		num += dt * (v - xbar)
		den += dt * dt
	}
	return num / (den + r.Lambda)
}

// KendallTau is the Kendall rank correlation of the window values against
// their sample index: a robust, scale-free trend measure in [-1, 1].
type KendallTau struct{}

func (KendallTau) Name() string { return "kendall_tau" }

func (KendallTau) Compute(w []float64) float64 {
	idx := make([]float64, len(w))
	for i := range idx {
		idx[i] = float64(i)
	}
	return stat.Kendall(idx, w, nil)
}

// MeanShift is the mean of the window's second half minus the mean of its
// first half: a difference-of-means change metric.
type MeanShift struct{}

func (MeanShift) Name() string { return "mean_shift" }

func (MeanShift) Compute(w []float64) float64 {
	half := len(w) / 2
	return stat.Mean(w[half:], nil) - stat.Mean(w[:half], nil)
}
