package report

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tipwatch/tipwatch/internal/dataset"
	"github.com/tipwatch/tipwatch/internal/transition"
)

func sampleResult(t *testing.T) *transition.Result {
	t.Helper()
	tv, x := dataset.SlowingDown(200, 0.2, 0.9, 3)
	cfg := transition.DefaultConfig()
	cfg.IndWindow.Width = 40
	cfg.ChaWindow.Width = 20
	cfg.NSurrogates = 10
	cfg.Lanes = 2
	res, err := transition.EstimateTransitions(tv, x, cfg)
	require.NoError(t, err)
	return res
}

func TestWriter_WriteJSON_RoundTrips(t *testing.T) {
	res := sampleResult(t)
	w := NewWriter(t.TempDir())

	path, err := w.WriteJSON(res)
	require.NoError(t, err)
	assert.Equal(t, res.RunID+".json", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var view map[string]any
	require.NoError(t, json.Unmarshal(data, &view))
	assert.Equal(t, res.RunID, view["run_id"])
	assert.Equal(t, float64(res.NSurrogates), view["n_surrogates"])

	pvals, ok := view["p_values"].([]any)
	require.True(t, ok)
	assert.Len(t, pvals, len(res.ChaTime))
}

func TestWriter_WriteCSV_ShapeAndHeader(t *testing.T) {
	res := sampleResult(t)
	w := NewWriter(t.TempDir())

	path, err := w.WriteCSV(res)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1+len(res.ChaTime))

	assert.Equal(t, "time", records[0][0])
	assert.Equal(t, "variance/ridge_slope", records[0][1])
	assert.Equal(t, "p:variance/ridge_slope", records[0][2])
	assert.Len(t, records[0], 1+2*len(res.Pairs))
}

func TestWriter_CreatesOutputDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	w := NewWriter(dir)

	_, err := w.WriteJSON(sampleResult(t))
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
