// SPDX-License-Identifier: MIT

// Package pipeline runs the batch analysis described by a config.Config:
// distances, semivariogram cloud, empirical semivariograms, permutation
// envelope, Torgegram, model comparison and best-subset selection, each
// written as a flat table under the output directory.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/ssnstat/distance"
	"github.com/katalvlaran/ssnstat/internal/config"
	"github.com/katalvlaran/ssnstat/internal/logger"
	"github.com/katalvlaran/ssnstat/matrix"
	"github.com/katalvlaran/ssnstat/network"
	"github.com/katalvlaran/ssnstat/observation"
	"github.com/katalvlaran/ssnstat/report"
)

// Output file names.
const (
	FileSummary      = "distance_summary.csv"
	FileCloud        = "cloud.csv"
	FileBins         = "semivariogram.csv"
	FileTrials       = "randomization_trials.csv"
	FileEnvelope     = "randomization_envelope.csv"
	FileTorgegram    = "torgegram.csv"
	FileComparison   = "model_comparison.csv"
	FileCoefficients = "model_coefficients.csv"
	FileSubset       = "best_subset.csv"
	FileRunSummary   = "summary.json"
)

// Summary is written to summary.json at the end of a run.
type Summary struct {
	RunID     string              `json:"run_id"`
	Sites     int                 `json:"sites"`
	Distances distance.FiveNumber `json:"distances"`
	Bins      map[string]int      `json:"bins"` // estimator → populated bins
	Trials    int                 `json:"trials,omitempty"`
	Network   *NetworkSummary     `json:"network,omitempty"`
	Models    *ComparisonSummary  `json:"models,omitempty"`
	Subset    *ComparisonSummary  `json:"subset,omitempty"`
	Files     []string            `json:"files"`
}

// NetworkSummary counts Torgegram pairs per class.
type NetworkSummary struct {
	Reaches         int `json:"reaches"`
	FlowConnected   int `json:"flow_connected_pairs"`
	FlowUnconnected int `json:"flow_unconnected_pairs"`
}

// ComparisonSummary names the best candidate of a ranked table.
type ComparisonSummary struct {
	Formula  string  `json:"formula"`
	Best     string  `json:"best,omitempty"`
	AIC      float64 `json:"aic,omitempty"`
	Fitted   int     `json:"fitted"`
	Failures int     `json:"failures"`
}

// runner carries the state shared by the stages of one run.
type runner struct {
	cfg  config.Config
	log  *zap.Logger
	sum  *Summary
	set  *observation.Set
	dist *matrix.Dense
	nd   *network.Distances
}

// Run executes every enabled stage and returns the run summary. The logger
// is taken from ctx (logger.FromContext).
func Run(ctx context.Context, cfg config.Config) (*Summary, error) {
	r := &runner{
		cfg: cfg,
		sum: &Summary{RunID: uuid.NewString(), Bins: make(map[string]int)},
	}
	r.log = logger.FromContext(ctx).With(zap.String("run_id", r.sum.RunID))
	r.log.Info("run started", zap.String("observations", cfg.Input.Observations), zap.String("output", cfg.Output.Dir))

	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("pipeline: create output dir: %w", err)
	}
	stages := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"load", r.load},
		{"distances", r.distances},
		{"semivariogram", r.semivariogram},
		{"randomization", r.randomize},
		{"torgegram", r.torgegram},
		{"models", r.models},
		{"subset", r.subset},
	}
	for _, s := range stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := s.fn(ctx); err != nil {
			r.log.Error("stage failed", zap.String("stage", s.name), zap.Error(err))
			return nil, fmt.Errorf("pipeline: %s: %w", s.name, err)
		}
	}

	r.sum.Files = append(r.sum.Files, FileRunSummary)
	if err := r.write(FileRunSummary, func(w io.Writer) error { return report.WriteJSON(w, r.sum) }); err != nil {
		return nil, err
	}
	r.log.Info("run finished", zap.Int("files", len(r.sum.Files)))

	return r.sum, nil
}

// write creates name under the output directory and records it.
func (r *runner) write(name string, fn func(io.Writer) error) error {
	path := filepath.Join(r.cfg.Output.Dir, name)
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	if err = fn(f); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	if name != FileRunSummary {
		r.sum.Files = append(r.sum.Files, name)
	}
	r.log.Debug("report written", zap.String("path", path))

	return nil
}
