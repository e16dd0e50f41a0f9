// Package dataset loads input series from CSV files and synthesizes demo
// series for the CLI and tests.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strconv"
)

// ErrBadRecord indicates a CSV row without two parseable numeric columns.
var ErrBadRecord = errors.New("dataset: record needs numeric time and value columns")

// LoadCSV reads a two-column time,value CSV. A first row that does not
// parse as numbers is treated as a header and skipped; any later parse
// failure aborts the load.
func LoadCSV(path string) (t, x []float64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("dataset: open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("dataset: read %s: %w", path, err)
	}

	for i, rec := range records {
		if len(rec) < 2 {
			return nil, nil, fmt.Errorf("%w: row %d has %d columns", ErrBadRecord, i+1, len(rec))
		}
		tv, errT := strconv.ParseFloat(rec[0], 64)
		xv, errX := strconv.ParseFloat(rec[1], 64)
		if errT != nil || errX != nil {
			if i == 0 {
				continue // header row
			}
			return nil, nil, fmt.Errorf("%w: row %d", ErrBadRecord, i+1)
		}
		t = append(t, tv)
		x = append(x, xv)
	}
	if len(x) == 0 {
		return nil, nil, fmt.Errorf("%w: no data rows in %s", ErrBadRecord, path)
	}
	return t, x, nil
}

// Ramp returns the affine series t = x = 0..n-1, useful as an analysis
// sanity check.
func Ramp(n int) (t, x []float64) {
	t = make([]float64, n)
	x = make([]float64, n)
	for i := range t {
		t[i] = float64(i)
		x[i] = float64(i)
	}
	return t, x
}

// SlowingDown synthesizes an AR(1) series whose autoregressive coefficient
// drifts linearly from phi0 to phi1 across the sample. Driving phi1 toward
// the unit root produces the textbook critical-slowing-down signature:
// rising variance and lag-1 autocorrelation ahead of the transition.
func SlowingDown(n int, phi0, phi1 float64, seed int64) (t, x []float64) {
	rng := rand.New(rand.NewSource(seed))
	t = make([]float64, n)
	x = make([]float64, n)
	prev := 0.0
	for i := range x {
		t[i] = float64(i)
		phi := phi0 + (phi1-phi0)*float64(i)/float64(n-1)
		prev = phi*prev + rng.NormFloat64()
		x[i] = prev
	}
	return t, x
}
