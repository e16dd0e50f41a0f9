// Package stats provides the indicator and change-metric library consumed
// by the transition pipeline: scalar summaries of one window of a series.
//
// Indicators summarize a window of the raw signal (mean, variance, lag-1
// autocorrelation, ...). Change metrics summarize a window of an indicator
// series to quantify drift (ridge-regression slope, Kendall tau, ...). Both
// roles share the Metric capability so the pipeline dispatches through one
// monomorphic call resolved at configuration-build time.
package stats

import (
	"errors"
	"fmt"
)

// ErrUnknownMetric indicates a name with no registered implementation.
var ErrUnknownMetric = errors.New("stats: unknown metric")

// Metric is a pure reduction of one window to one scalar. Implementations
// must be stateless and reentrant: the surrogate ensemble invokes them
// concurrently from independent worker lanes.
type Metric interface {
	Name() string
	Compute(window []float64) float64
}

// New resolves a metric by registry name. Parameterized metrics come back
// with their defaults; construct the concrete type directly to tune them.
func New(name string) (Metric, error) {
	switch name {
	case "mean":
		return Mean{}, nil
	case "variance":
		return Variance{}, nil
	case "stddev":
		return StdDev{}, nil
	case "skewness":
		return Skewness{}, nil
	case "kurtosis":
		return Kurtosis{}, nil
	case "ac1":
		return AC1{}, nil
	case "perm_entropy":
		return PermutationEntropy{Order: 3}, nil
	case "ridge_slope":
		return RidgeSlope{}, nil
	case "kendall_tau":
		return KendallTau{}, nil
	case "mean_shift":
		return MeanShift{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, name)
}

// IndicatorNames lists the registered raw-signal indicators.
func IndicatorNames() []string {
	return []string{"mean", "variance", "stddev", "skewness", "kurtosis", "ac1", "perm_entropy"}
}

// ChangeMetricNames lists the registered change metrics.
func ChangeMetricNames() []string {
	return []string{"ridge_slope", "kendall_tau", "mean_shift"}
}
