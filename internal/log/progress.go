// Package log carries logging helpers shared across the analysis pipeline.
package log

import (
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"
)

// Progress reports completion of a long-running counted operation through
// the global logger. Add is safe to call concurrently from worker lanes.
type Progress struct {
	name      string
	total     int64
	step      int64
	done      atomic.Int64
	startTime time.Time
}

// NewProgress returns a reporter for an operation of total units that logs
// roughly every 10% of completion.
func NewProgress(name string, total int) *Progress {
	step := int64(total / 10)
	if step < 1 {
		step = 1
	}
	return &Progress{name: name, total: int64(total), step: step, startTime: time.Now()}
}

// Add records n completed units, emitting a debug record at step
// boundaries. A nil receiver is a no-op so callers can disable reporting.
func (p *Progress) Add(n int) {
	if p == nil {
		return
	}
	done := p.done.Add(int64(n))
	if done%p.step == 0 && done != p.total {
		log.Debug().
			Str("op", p.name).
			Int64("done", done).
			Int64("total", p.total).
			Msg("progress")
	}
}

// Done emits the completion record with the elapsed wall time.
func (p *Progress) Done() {
	if p == nil {
		return
	}
	log.Info().
		Str("op", p.name).
		Int64("total", p.total).
		Dur("elapsed", time.Since(p.startTime)).
		Msg("complete")
}
