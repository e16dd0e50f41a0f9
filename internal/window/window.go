// Package window implements sliding-window iteration and reduction over
// fixed-length numeric sequences. All windowing in the analysis pipeline
// goes through the same Spec arithmetic, so value series and their time
// axes can never drift out of alignment.
package window

import (
	"errors"
	"fmt"
)

var (
	// ErrBadSpec indicates a non-positive width or stride.
	ErrBadSpec = errors.New("window: width and stride must be positive")

	// ErrWidthExceedsLength indicates the window cannot fit in the sequence.
	ErrWidthExceedsLength = errors.New("window: width exceeds sequence length")

	// ErrSizeMismatch indicates an output buffer whose length does not match
	// the window count for the given spec and sequence.
	ErrSizeMismatch = errors.New("window: output buffer length does not match window count")
)

// Spec defines the geometry of one sliding-window pass: every window spans
// Width samples and consecutive windows are offset by Stride samples.
type Spec struct {
	Width  int `yaml:"width" json:"width"`
	Stride int `yaml:"stride" json:"stride"`
}

// Validate reports whether the spec can window a sequence of length n.
func (s Spec) Validate(n int) error {
	if s.Width <= 0 || s.Stride <= 0 {
		return fmt.Errorf("%w: width=%d stride=%d", ErrBadSpec, s.Width, s.Stride)
	}
	if s.Width > n {
		return fmt.Errorf("%w: width=%d length=%d", ErrWidthExceedsLength, s.Width, n)
	}
	return nil
}

// Count returns the number of windows over a sequence of length n:
// floor((n-Width)/Stride) + 1. The spec must be valid for n.
func (s Spec) Count(n int) int {
	return (n-s.Width)/s.Stride + 1
}

// Bounds returns the half-open index range [lo, hi) covered by window i.
func (s Spec) Bounds(i int) (lo, hi int) {
	lo = i * s.Stride
	return lo, lo + s.Width
}

// Mid returns the representative index of window i: the floor of the
// window's midpoint.
func (s Spec) Mid(i int) int {
	return i*s.Stride + (s.Width-1)/2
}

// Iter walks the windows of a sequence lazily, without materializing them.
type Iter struct {
	spec Spec
	seq  []float64
	next int
	n    int
}

// Windows returns a lazy iterator over the windows of seq.
func (s Spec) Windows(seq []float64) (*Iter, error) {
	if err := s.Validate(len(seq)); err != nil {
		return nil, err
	}
	return &Iter{spec: s, seq: seq, n: s.Count(len(seq))}, nil
}

// Next returns the next window and true, or nil and false once exhausted.
// The returned slice aliases the underlying sequence and must not be
// mutated by the caller.
func (it *Iter) Next() ([]float64, bool) {
	if it.next >= it.n {
		return nil, false
	}
	lo, hi := it.spec.Bounds(it.next)
	it.next++
	return it.seq[lo:hi], true
}

// Map reduces every window of seq with f and returns the per-window scalars.
func Map(seq []float64, s Spec, f func([]float64) float64) ([]float64, error) {
	if err := s.Validate(len(seq)); err != nil {
		return nil, err
	}
	out := make([]float64, s.Count(len(seq)))
	mapInto(out, seq, s, f)
	return out, nil
}

// MapInto reduces every window of seq with f into dst. dst must hold
// exactly Count(len(seq)) elements; any other length is rejected before a
// single window is evaluated.
func MapInto(dst, seq []float64, s Spec, f func([]float64) float64) error {
	if err := s.Validate(len(seq)); err != nil {
		return err
	}
	if want := s.Count(len(seq)); len(dst) != want {
		return fmt.Errorf("%w: got %d, want %d", ErrSizeMismatch, len(dst), want)
	}
	mapInto(dst, seq, s, f)
	return nil
}

func mapInto(dst, seq []float64, s Spec, f func([]float64) float64) {
	for i := range dst {
		lo, hi := s.Bounds(i)
		dst[i] = f(seq[lo:hi])
	}
}

// Midpoints pushes a time vector through the same index arithmetic used for
// value windows: entry i is the timestamp at the midpoint of window i, so a
// time axis windowed with the same spec stays aligned with its value series
// at every index.
func Midpoints(t []float64, s Spec) ([]float64, error) {
	if err := s.Validate(len(t)); err != nil {
		return nil, err
	}
	out := make([]float64, s.Count(len(t)))
	for i := range out {
		out[i] = t[s.Mid(i)]
	}
	return out, nil
}
