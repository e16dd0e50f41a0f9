package transition

import (
	"math/rand"
	"sync"

	tlog "github.com/tipwatch/tipwatch/internal/log"
	"github.com/tipwatch/tipwatch/internal/surrogate"
	"github.com/tipwatch/tipwatch/internal/window"
)

// ensemble owns the surrogate machinery for one analysis run: a fixed pool
// of worker lanes, each with its own generator seeded from the master
// random source. Pairs are processed sequentially; only the surrogate loop
// within a pair fans out across lanes.
type ensemble struct {
	cfg   *Config
	x     []float64
	lanes int
	gens  []surrogate.Generator
	nInd  int
	nCha  int
}

// newEnsemble draws one sub-seed per lane from the master source, in lane
// order, before any lane exists. Output is therefore reproducible for a
// fixed (Seed, Lanes) regardless of goroutine scheduling.
func newEnsemble(cfg *Config, x []float64) (*ensemble, error) {
	lanes := cfg.lanes()
	master := rand.New(rand.NewSource(cfg.Seed))
	seeds := make([]int64, lanes)
	for i := range seeds {
		seeds[i] = master.Int63()
	}

	gens := make([]surrogate.Generator, lanes)
	for i, seed := range seeds {
		g, err := surrogate.New(cfg.Surrogate, x, seed)
		if err != nil {
			return nil, err
		}
		gens[i] = g
	}

	nInd := cfg.IndWindow.Count(len(x))
	return &ensemble{
		cfg:   cfg,
		x:     x,
		lanes: lanes,
		gens:  gens,
		nInd:  nInd,
		nCha:  cfg.ChaWindow.Count(nInd),
	}, nil
}

// laneCounts are the one-sided dominance tallies a single lane accumulates
// over its share of the surrogate ensemble.
type laneCounts struct {
	right []int // surrogate change metric above the observed value
	left  []int // surrogate change metric below the observed value
}

// run executes the surrogate loop for one indicator/metric pair and returns
// the per-time-point significance counts normalized by the ensemble size.
//
// Lane k exclusively owns generator k, its scratch buffers and its
// counters; surrogate indices are statically partitioned by j % lanes. The
// only cross-lane structure is the counts slice, and each lane writes a
// distinct element, so the merge after the barrier sees no races.
func (e *ensemble) run(p pair, observed []float64, prog *tlog.Progress) []float64 {
	counts := make([]laneCounts, e.lanes)

	var wg sync.WaitGroup
	for lane := 0; lane < e.lanes; lane++ {
		wg.Add(1)
		go func(lane int) {
			defer wg.Done()

			right := make([]int, e.nCha)
			left := make([]int, e.nCha)
			indBuf := make([]float64, e.nInd)
			chaBuf := make([]float64, e.nCha)
			gen := e.gens[lane]

			for j := lane; j < e.cfg.NSurrogates; j += e.lanes {
				s := gen.Generate()
				// Buffers are sized from the validated specs; MapInto
				// cannot fail here.
				_ = window.MapInto(indBuf, s, e.cfg.IndWindow, p.indicator.Compute)
				_ = window.MapInto(chaBuf, indBuf, e.cfg.ChaWindow, p.metric.Compute)
				for t, v := range chaBuf {
					if observed[t] < v {
						right[t]++
					}
					if observed[t] > v {
						left[t]++
					}
				}
				prog.Add(1)
			}
			counts[lane] = laneCounts{right: right, left: left}
		}(lane)
	}
	wg.Wait()

	right := make([]int, e.nCha)
	left := make([]int, e.nCha)
	for _, lc := range counts {
		for t := range right {
			right[t] += lc.right[t]
			left[t] += lc.left[t]
		}
	}

	out := make([]float64, e.nCha)
	n := float64(e.cfg.NSurrogates)
	for t := range out {
		switch e.cfg.Tail {
		case TailRight:
			out[t] = float64(right[t]) / n
		case TailLeft:
			out[t] = float64(left[t]) / n
		default:
			// Two-sided: double the smaller one-sided tail. The product can
			// exceed n, so the p-value can exceed 1; kept unclamped, see
			// the Result docs.
			out[t] = 2 * float64(min(right[t], left[t])) / n
		}
	}
	return out
}
