package transition

import (
	"fmt"

	"github.com/tipwatch/tipwatch/internal/stats"
	"github.com/tipwatch/tipwatch/internal/window"
)

// Evolve applies the two-stage windowed transform: the indicator over
// windows of the raw series, then the change metric over windows of the
// indicator series. The time vector runs through the same window
// arithmetic, so tInd[i] is the midpoint timestamp of the window that
// produced xInd[i], and likewise for the change stage.
func Evolve(t, x []float64, indicator, metric stats.Metric, indSpec, chaSpec window.Spec) (tInd, xInd, tCha, xCha []float64, err error) {
	if len(t) != len(x) || len(x) == 0 {
		return nil, nil, nil, nil, fmt.Errorf("%w: len(t)=%d len(x)=%d", ErrBadSeries, len(t), len(x))
	}
	xInd, xCha, err = EvolveValues(x, indicator, metric, indSpec, chaSpec)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	tInd, err = window.Midpoints(t, indSpec)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	tCha, err = window.Midpoints(tInd, chaSpec)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return tInd, xInd, tCha, xCha, nil
}

// EvolveValues is the time-free variant of Evolve: it returns only the
// indicator and change-metric series.
func EvolveValues(x []float64, indicator, metric stats.Metric, indSpec, chaSpec window.Spec) (xInd, xCha []float64, err error) {
	xInd, err = window.Map(x, indSpec, indicator.Compute)
	if err != nil {
		return nil, nil, err
	}
	xCha, err = window.Map(xInd, chaSpec, metric.Compute)
	if err != nil {
		return nil, nil, err
	}
	return xInd, xCha, nil
}
