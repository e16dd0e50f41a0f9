package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tipwatch/tipwatch/internal/stats"
	"github.com/tipwatch/tipwatch/internal/surrogate"
	"github.com/tipwatch/tipwatch/internal/transition"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "analysis.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
indicators: [mean, variance, ac1]
change_metrics: [kendall_tau]
width_ind: 40
stride_ind: 2
width_cha: 25
stride_cha: 1
surrogate_method: ar1
n_surrogates: 250
tail: both
rng_seed: 99
lanes: 4
`)
	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"mean", "variance", "ac1"}, f.Indicators)
	assert.Equal(t, []string{"kendall_tau"}, f.ChangeMetrics)
	assert.Equal(t, 40, f.WidthInd)
	assert.Equal(t, 2, f.StrideInd)
	assert.Equal(t, "ar1", f.SurrogateMethod)
	assert.Equal(t, 250, f.NSurrogates)
	assert.Equal(t, "both", f.Tail)
	assert.Equal(t, int64(99), f.RNGSeed)
	assert.Equal(t, 4, f.Lanes)
}

func TestLoad_AbsentKeysKeepDefaults(t *testing.T) {
	path := writeConfig(t, `n_surrogates: 10`)
	f, err := Load(path)
	require.NoError(t, err)

	d := Default()
	assert.Equal(t, 10, f.NSurrogates)
	assert.Equal(t, d.Indicators, f.Indicators)
	assert.Equal(t, d.WidthInd, f.WidthInd)
	assert.Equal(t, d.Tail, f.Tail)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "indicators: [unclosed")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestBuild_ResolvesNames(t *testing.T) {
	f := Default()
	cfg, err := f.Build()
	require.NoError(t, err)

	require.Len(t, cfg.Indicators, 2)
	assert.Equal(t, "variance", cfg.Indicators[0].Name())
	assert.Equal(t, "ac1", cfg.Indicators[1].Name())
	require.Len(t, cfg.Metrics, 1)
	assert.Equal(t, "ridge_slope", cfg.Metrics[0].Name())
	assert.Equal(t, surrogate.Phase, cfg.Surrogate)
	assert.Equal(t, transition.TailRight, cfg.Tail)

	assert.NoError(t, cfg.Validate(500))
}

func TestBuild_UnknownIndicatorFailsEagerly(t *testing.T) {
	f := Default()
	f.Indicators = []string{"variance", "spectral_unicorn"}
	_, err := f.Build()
	assert.ErrorIs(t, err, stats.ErrUnknownMetric)
}

func TestBuild_RidgeLambdaReachesTheMetric(t *testing.T) {
	f := Default()
	f.RidgeLambda = 2.5
	cfg, err := f.Build()
	require.NoError(t, err)

	rs, ok := cfg.Metrics[0].(stats.RidgeSlope)
	require.True(t, ok)
	assert.Equal(t, 2.5, rs.Lambda)
}

func TestBuild_BadTailSurfacesInValidate(t *testing.T) {
	f := Default()
	f.Tail = "upper"
	cfg, err := f.Build()
	require.NoError(t, err)
	assert.ErrorIs(t, cfg.Validate(500), transition.ErrBadTail)
}
