// Package report writes analysis results to artifact files named by run ID.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/mat"

	"github.com/tipwatch/tipwatch/internal/transition"
)

// Writer emits result artifacts into a fixed output directory, creating it
// on first use.
type Writer struct {
	dir string
}

// NewWriter returns a writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// resultView is the serialized form of a Result. Matrices are row-major:
// one inner slice per time point, one entry per indicator/metric pair.
type resultView struct {
	RunID       string            `json:"run_id"`
	CreatedAt   time.Time         `json:"created_at"`
	Surrogate   string            `json:"surrogate_method"`
	NSurrogates int               `json:"n_surrogates"`
	Tail        string            `json:"tail"`
	Seed        int64             `json:"rng_seed"`
	Lanes       int               `json:"lanes"`
	Pairs       []transition.Pair `json:"pairs"`
	Time        []float64         `json:"time"`
	Values      []float64         `json:"values"`
	IndTime     []float64         `json:"indicator_time"`
	Indicators  [][]float64       `json:"indicators"`
	ChaTime     []float64         `json:"change_time"`
	Change      [][]float64       `json:"change"`
	PValues     [][]float64       `json:"p_values"`
}

// WriteJSON writes the full result record as <run_id>.json and returns the
// artifact path.
func (w *Writer) WriteJSON(res *transition.Result) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("report: create %s: %w", w.dir, err)
	}

	view := resultView{
		RunID:       res.RunID,
		CreatedAt:   res.CreatedAt,
		Surrogate:   string(res.Surrogate),
		NSurrogates: res.NSurrogates,
		Tail:        string(res.Tail),
		Seed:        res.Seed,
		Lanes:       res.Lanes,
		Pairs:       res.Pairs,
		Time:        res.Time,
		Values:      res.Values,
		IndTime:     res.IndTime,
		Indicators:  denseRows(res.Indicators),
		ChaTime:     res.ChaTime,
		Change:      denseRows(res.Change),
		PValues:     denseRows(res.PValues),
	}

	data, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return "", fmt.Errorf("report: marshal result: %w", err)
	}

	path := filepath.Join(w.dir, res.RunID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("report: write %s: %w", path, err)
	}
	log.Info().Str("path", path).Msg("wrote result artifact")
	return path, nil
}

// WriteCSV writes the change-metric and p-value trajectories as
// <run_id>.csv: one row per change-metric time point, one column pair per
// indicator/metric pairing.
func (w *Writer) WriteCSV(res *transition.Result) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("report: create %s: %w", w.dir, err)
	}

	path := filepath.Join(w.dir, res.RunID+".csv")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("report: create %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	header := []string{"time"}
	for _, p := range res.Pairs {
		name := p.Indicator + "/" + p.Metric
		header = append(header, name, "p:"+name)
	}
	if err := cw.Write(header); err != nil {
		return "", fmt.Errorf("report: write %s: %w", path, err)
	}

	rows, cols := res.Change.Dims()
	record := make([]string, 1+2*cols)
	for i := 0; i < rows; i++ {
		record[0] = formatFloat(res.ChaTime[i])
		for c := 0; c < cols; c++ {
			record[1+2*c] = formatFloat(res.Change.At(i, c))
			record[2+2*c] = formatFloat(res.PValues.At(i, c))
		}
		if err := cw.Write(record); err != nil {
			return "", fmt.Errorf("report: write %s: %w", path, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("report: flush %s: %w", path, err)
	}
	log.Info().Str("path", path).Msg("wrote result artifact")
	return path, nil
}

func denseRows(m *mat.Dense) [][]float64 {
	rows, _ := m.Dims()
	out := make([][]float64, rows)
	for i := range out {
		out[i] = mat.Row(nil, i, m)
	}
	return out
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
