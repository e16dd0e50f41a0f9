// Package config loads analysis configuration from YAML files and resolves
// it into the transition pipeline's runtime form. Name resolution and
// invariant checks both happen before any computation starts.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tipwatch/tipwatch/internal/stats"
	"github.com/tipwatch/tipwatch/internal/surrogate"
	"github.com/tipwatch/tipwatch/internal/transition"
	"github.com/tipwatch/tipwatch/internal/window"
)

// File mirrors the YAML analysis configuration.
type File struct {
	Indicators    []string `yaml:"indicators"`
	ChangeMetrics []string `yaml:"change_metrics"`

	WidthInd  int `yaml:"width_ind"`
	StrideInd int `yaml:"stride_ind"`
	WidthCha  int `yaml:"width_cha"`
	StrideCha int `yaml:"stride_cha"`

	SurrogateMethod string `yaml:"surrogate_method"`
	NSurrogates     int    `yaml:"n_surrogates"`
	Tail            string `yaml:"tail"`
	RNGSeed         int64  `yaml:"rng_seed"`

	// Lanes caps the worker pool; 0 uses the process parallelism.
	Lanes int `yaml:"lanes"`

	// RidgeLambda tunes the ridge_slope change metric.
	RidgeLambda float64 `yaml:"ridge_lambda"`
}

// Default returns the stock analysis configuration: the classic critical-
// slowing-down pair (variance, ac1) scanned for an upward ridge-slope trend
// against phase-randomized surrogates.
func Default() *File {
	return &File{
		Indicators:      []string{"variance", "ac1"},
		ChangeMetrics:   []string{"ridge_slope"},
		WidthInd:        50,
		StrideInd:       1,
		WidthCha:        30,
		StrideCha:       1,
		SurrogateMethod: string(surrogate.Phase),
		NSurrogates:     100,
		Tail:            string(transition.TailRight),
		RNGSeed:         1,
	}
}

// Load reads a YAML analysis configuration. Absent keys keep their
// defaults.
func Load(path string) (*File, error) {
	f := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return f, nil
}

// Build resolves metric and surrogate names into the runtime configuration.
// Unknown names fail here; structural invariants (list cardinalities,
// window fit, tail) fail in Config.Validate before the ensemble starts.
func (f *File) Build() (*transition.Config, error) {
	indicators := make([]stats.Metric, len(f.Indicators))
	for i, name := range f.Indicators {
		m, err := stats.New(name)
		if err != nil {
			return nil, err
		}
		indicators[i] = m
	}

	metrics := make([]stats.Metric, len(f.ChangeMetrics))
	for i, name := range f.ChangeMetrics {
		m, err := stats.New(name)
		if err != nil {
			return nil, err
		}
		if rs, ok := m.(stats.RidgeSlope); ok && f.RidgeLambda != 0 {
			rs.Lambda = f.RidgeLambda
			m = rs
		}
		metrics[i] = m
	}

	return &transition.Config{
		Indicators:  indicators,
		Metrics:     metrics,
		IndWindow:   window.Spec{Width: f.WidthInd, Stride: f.StrideInd},
		ChaWindow:   window.Spec{Width: f.WidthCha, Stride: f.StrideCha},
		Surrogate:   surrogate.Method(f.SurrogateMethod),
		NSurrogates: f.NSurrogates,
		Tail:        transition.Tail(f.Tail),
		Seed:        f.RNGSeed,
		Lanes:       f.Lanes,
	}, nil
}
