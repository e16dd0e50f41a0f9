package transition

import (
	"fmt"
	"runtime"

	"github.com/tipwatch/tipwatch/internal/stats"
	"github.com/tipwatch/tipwatch/internal/surrogate"
	"github.com/tipwatch/tipwatch/internal/window"
)

// Config is the immutable analysis configuration. Metric lists are resolved
// to concrete implementations before the config is built, so the hot loop
// dispatches through monomorphic calls.
type Config struct {
	// Indicators are applied to windows of the raw signal.
	Indicators []stats.Metric

	// Metrics are applied to windows of each indicator series. Either one
	// metric per indicator, or a single metric shared by all of them.
	Metrics []stats.Metric

	// IndWindow is the geometry of the signal->indicator stage; ChaWindow
	// the geometry of the indicator->change-metric stage.
	IndWindow window.Spec
	ChaWindow window.Spec

	Surrogate   surrogate.Method
	NSurrogates int

	Tail Tail

	// Seed feeds the master random source; per-lane sub-seeds are drawn
	// from it in a fixed order before any lane starts. Identical Seed and
	// Lanes reproduce the run bit for bit.
	Seed int64

	// Lanes is the worker pool size; 0 selects runtime.GOMAXPROCS(0).
	Lanes int
}

// DefaultConfig returns the stock early-warning configuration: variance and
// lag-1 autocorrelation scanned for an upward ridge-slope trend against
// phase-randomized surrogates.
func DefaultConfig() *Config {
	return &Config{
		Indicators:  []stats.Metric{stats.Variance{}, stats.AC1{}},
		Metrics:     []stats.Metric{stats.RidgeSlope{}},
		IndWindow:   window.Spec{Width: 50, Stride: 1},
		ChaWindow:   window.Spec{Width: 30, Stride: 1},
		Surrogate:   surrogate.Phase,
		NSurrogates: 100,
		Tail:        TailRight,
		Seed:        1,
	}
}

// Validate checks every configuration invariant against a series of length
// n. All failures surface here, before any computation starts.
func (c *Config) Validate(n int) error {
	if len(c.Indicators) == 0 {
		return ErrNoIndicators
	}
	if len(c.Metrics) != 1 && len(c.Metrics) != len(c.Indicators) {
		return fmt.Errorf("%w: %d metrics for %d indicators",
			ErrMetricCardinality, len(c.Metrics), len(c.Indicators))
	}
	if !c.Tail.valid() {
		return fmt.Errorf("%w: got %q", ErrBadTail, c.Tail)
	}
	if c.NSurrogates < 1 {
		return fmt.Errorf("%w: got %d", ErrBadSurrogateCount, c.NSurrogates)
	}
	if !c.Surrogate.Valid() {
		return fmt.Errorf("%w: %q", surrogate.ErrUnknownMethod, c.Surrogate)
	}
	if err := c.IndWindow.Validate(n); err != nil {
		return err
	}
	return c.ChaWindow.Validate(c.IndWindow.Count(n))
}

func (c *Config) lanes() int {
	if c.Lanes > 0 {
		return c.Lanes
	}
	return runtime.GOMAXPROCS(0)
}

type pair struct {
	indicator stats.Metric
	metric    stats.Metric
}

// pairs materializes the one-to-one indicator/metric pairing, broadcasting
// a single shared metric across all indicators. Runs once at analysis
// start; the hot loop never branches on list shapes.
func (c *Config) pairs() []pair {
	out := make([]pair, len(c.Indicators))
	for i, ind := range c.Indicators {
		m := c.Metrics[0]
		if len(c.Metrics) > 1 {
			m = c.Metrics[i]
		}
		out[i] = pair{indicator: ind, metric: m}
	}
	return out
}
