package transition

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"

	tlog "github.com/tipwatch/tipwatch/internal/log"
	"github.com/tipwatch/tipwatch/internal/surrogate"
	"github.com/tipwatch/tipwatch/internal/window"
)

// Pair names the indicator/change-metric pairing behind one column of the
// result matrices.
type Pair struct {
	Indicator string `json:"indicator"`
	Metric    string `json:"metric"`
}

// Result is the read-only outcome of one EstimateTransitions call. Matrix
// rows are time points, columns are indicator/metric pairs in Pairs order.
//
// For Tail == TailBoth the p-values are 2*min(left, right)/NSurrogates and
// may exceed 1; the doubling arithmetic is preserved rather than clamped.
type Result struct {
	RunID     string
	CreatedAt time.Time

	Time   []float64
	Values []float64

	Pairs []Pair

	IndTime    []float64
	Indicators *mat.Dense

	ChaTime []float64
	Change  *mat.Dense

	PValues *mat.Dense

	Surrogate   surrogate.Method
	NSurrogates int
	Tail        Tail
	Seed        int64
	Lanes       int
}

// EstimateTransitions runs the full pipeline on the series (t, x): the
// observed indicator and change-metric evolution for every configured pair,
// then the surrogate ensemble that turns each change-metric trajectory into
// per-time-point p-values. A nil config selects DefaultConfig.
//
// Configuration errors surface before any computation; once the ensemble
// loop starts the call runs to completion.
func EstimateTransitions(t, x []float64, cfg *Config) (*Result, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if len(t) != len(x) || len(x) == 0 {
		return nil, fmt.Errorf("%w: len(t)=%d len(x)=%d", ErrBadSeries, len(t), len(x))
	}
	if err := cfg.Validate(len(x)); err != nil {
		return nil, err
	}

	// Time axes are shared across pairs: every indicator uses the same
	// window geometry.
	indTime, err := window.Midpoints(t, cfg.IndWindow)
	if err != nil {
		return nil, err
	}
	chaTime, err := window.Midpoints(indTime, cfg.ChaWindow)
	if err != nil {
		return nil, err
	}

	ens, err := newEnsemble(cfg, x)
	if err != nil {
		return nil, err
	}

	pairs := cfg.pairs()
	indMat := mat.NewDense(len(indTime), len(pairs), nil)
	chaMat := mat.NewDense(len(chaTime), len(pairs), nil)
	pMat := mat.NewDense(len(chaTime), len(pairs), nil)

	prog := tlog.NewProgress("surrogate ensemble", len(pairs)*cfg.NSurrogates)
	for c, p := range pairs {
		xInd, xCha, err := EvolveValues(x, p.indicator, p.metric, cfg.IndWindow, cfg.ChaWindow)
		if err != nil {
			return nil, err
		}
		indMat.SetCol(c, xInd)
		chaMat.SetCol(c, xCha)

		log.Debug().
			Str("indicator", p.indicator.Name()).
			Str("metric", p.metric.Name()).
			Int("surrogates", cfg.NSurrogates).
			Int("lanes", ens.lanes).
			Msg("running surrogate ensemble")
		pMat.SetCol(c, ens.run(p, xCha, prog))
	}
	prog.Done()

	named := make([]Pair, len(pairs))
	for i, p := range pairs {
		named[i] = Pair{Indicator: p.indicator.Name(), Metric: p.metric.Name()}
	}

	return &Result{
		RunID:       uuid.NewString(),
		CreatedAt:   time.Now().UTC(),
		Time:        t,
		Values:      x,
		Pairs:       named,
		IndTime:     indTime,
		Indicators:  indMat,
		ChaTime:     chaTime,
		Change:      chaMat,
		PValues:     pMat,
		Surrogate:   cfg.Surrogate,
		NSurrogates: cfg.NSurrogates,
		Tail:        cfg.Tail,
		Seed:        cfg.Seed,
		Lanes:       ens.lanes,
	}, nil
}

// TransitionFlags flags every (time, pair) cell whose p-value falls below
// pThreshold. The returned matrix has one extra trailing column: the
// logical AND across all pair columns, marking points significant under
// every metric simultaneously.
func TransitionFlags(res *Result, pThreshold float64) ([][]bool, error) {
	if pThreshold <= 0 || pThreshold >= 1 {
		return nil, fmt.Errorf("%w: got %v", ErrBadThreshold, pThreshold)
	}
	rows, cols := res.PValues.Dims()
	flags := make([][]bool, rows)
	for t := range flags {
		row := make([]bool, cols+1)
		all := true
		for c := 0; c < cols; c++ {
			row[c] = res.PValues.At(t, c) < pThreshold
			all = all && row[c]
		}
		row[cols] = all
		flags[t] = row
	}
	return flags, nil
}
