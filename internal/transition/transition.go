// Package transition implements the windowed-analysis and surrogate-
// significance pipeline: sliding-window indicator evolution, change-metric
// trajectories, and p-values built from an ensemble of surrogate
// realizations of the input series.
package transition

import "errors"

// Tail selects which direction of deviation from the null distribution
// counts as significant.
type Tail string

const (
	TailLeft  Tail = "left"
	TailRight Tail = "right"
	TailBoth  Tail = "both"
)

func (t Tail) valid() bool {
	return t == TailLeft || t == TailRight || t == TailBoth
}

var (
	// ErrBadTail indicates a tail outside {left, right, both}.
	ErrBadTail = errors.New("transition: tail must be left, right or both")

	// ErrBadThreshold indicates a significance threshold outside (0, 1).
	ErrBadThreshold = errors.New("transition: threshold must lie inside (0, 1)")

	// ErrNoIndicators indicates an empty indicator list.
	ErrNoIndicators = errors.New("transition: at least one indicator is required")

	// ErrMetricCardinality indicates a change-metric list that is neither a
	// single shared metric nor one-to-one with the indicator list.
	ErrMetricCardinality = errors.New("transition: change metric list must have length 1 or match the indicator list")

	// ErrBadSurrogateCount indicates a non-positive surrogate ensemble size.
	ErrBadSurrogateCount = errors.New("transition: n_surrogates must be positive")

	// ErrBadSeries indicates time and value vectors of unequal or zero length.
	ErrBadSeries = errors.New("transition: time and value vectors must be non-empty and equally long")

	// ErrBadSigmaFactors indicates a sigma factor list that is neither a
	// single shared factor nor one per metric column.
	ErrBadSigmaFactors = errors.New("transition: sigma factor list must have length 1 or match the metric columns")
)
