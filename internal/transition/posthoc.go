package transition

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Post-hoc significance testers: stateless strategies that flag extreme
// points of an already-computed change-metric matrix directly, without a
// surrogate ensemble or p-values. Both return the same (time x pairs+1)
// flag shape as TransitionFlags, trailing AND column included.

// QuantileFlags flags change-metric values extreme relative to their own
// column's empirical distribution: above the upper quantile for TailRight,
// below the lower quantile for TailLeft, either for TailBoth. The quantile
// levels are p and 1-p, whichever is higher and lower. For p < 1 a roughly
// (1-max(p,1-p)) fraction of points is flagged by construction.
func QuantileFlags(res *Result, p float64, tail Tail) ([][]bool, error) {
	if !tail.valid() {
		return nil, fmt.Errorf("%w: got %q", ErrBadTail, tail)
	}
	if p <= 0 || p >= 1 {
		return nil, fmt.Errorf("%w: got %v", ErrBadThreshold, p)
	}
	pHi := p
	if 1-p > pHi {
		pHi = 1 - p
	}

	rows, cols := res.Change.Dims()
	flags := emptyFlags(rows, cols)
	sorted := make([]float64, rows)
	for c := 0; c < cols; c++ {
		col := mat.Col(nil, c, res.Change)
		copy(sorted, col)
		sort.Float64s(sorted)
		upper := stat.Quantile(pHi, stat.Empirical, sorted, nil)
		lower := stat.Quantile(1-pHi, stat.Empirical, sorted, nil)

		// Inclusive comparisons: even when the quantile lands on the column
		// maximum (p close to 1), at least that point stays flagged.
		for t, v := range col {
			switch tail {
			case TailRight:
				flags[t][c] = v >= upper
			case TailLeft:
				flags[t][c] = v <= lower
			default:
				flags[t][c] = v >= upper || v <= lower
			}
		}
	}
	fillAndColumn(flags)
	return flags, nil
}

// SigmaFlags flags change-metric values beyond mean ± m*sigma of their own
// column. factors holds either one shared multiplier or one per metric
// column. Unlike QuantileFlags there is no guarantee any point is flagged;
// a zero-variance column degenerates naturally rather than being trapped.
func SigmaFlags(res *Result, factors []float64, tail Tail) ([][]bool, error) {
	if !tail.valid() {
		return nil, fmt.Errorf("%w: got %q", ErrBadTail, tail)
	}
	rows, cols := res.Change.Dims()
	if len(factors) != 1 && len(factors) != cols {
		return nil, fmt.Errorf("%w: %d factors for %d columns", ErrBadSigmaFactors, len(factors), cols)
	}

	flags := emptyFlags(rows, cols)
	for c := 0; c < cols; c++ {
		col := mat.Col(nil, c, res.Change)
		mu, sigma := stat.MeanStdDev(col, nil)
		m := factors[0]
		if len(factors) > 1 {
			m = factors[c]
		}
		hi := mu + m*sigma
		lo := mu - m*sigma

		for t, v := range col {
			switch tail {
			case TailRight:
				flags[t][c] = v > hi
			case TailLeft:
				flags[t][c] = v < lo
			default:
				flags[t][c] = v > hi || v < lo
			}
		}
	}
	fillAndColumn(flags)
	return flags, nil
}

func emptyFlags(rows, cols int) [][]bool {
	flags := make([][]bool, rows)
	for t := range flags {
		flags[t] = make([]bool, cols+1)
	}
	return flags
}

func fillAndColumn(flags [][]bool) {
	for _, row := range flags {
		last := len(row) - 1
		all := true
		for c := 0; c < last; c++ {
			all = all && row[c]
		}
		row[last] = all
	}
}
