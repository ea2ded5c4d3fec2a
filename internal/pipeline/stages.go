// SPDX-License-Identifier: MIT

package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/katalvlaran/ssnstat/distance"
	"github.com/katalvlaran/ssnstat/internal/config"
	"github.com/katalvlaran/ssnstat/network"
	"github.com/katalvlaran/ssnstat/observation"
	"github.com/katalvlaran/ssnstat/report"
	"github.com/katalvlaran/ssnstat/ssn"
	"github.com/katalvlaran/ssnstat/variogram"
)

func (r *runner) load(context.Context) error {
	f, err := os.Open(filepath.Clean(r.cfg.Input.Observations))
	if err != nil {
		return err
	}
	defer f.Close()

	if r.set, err = observation.ReadCSV(f, r.cfg.Input.Schema); err != nil {
		return err
	}
	r.sum.Sites = r.set.Len()
	r.log.Info("observations loaded",
		zap.Int("sites", r.set.Len()),
		zap.Strings("covariates", r.set.Schema().Covariates))

	return nil
}

func (r *runner) distances(context.Context) error {
	var err error
	if r.dist, err = distance.Euclidean(r.set); err != nil {
		return err
	}
	if r.sum.Distances, err = distance.Summary(r.dist); err != nil {
		return err
	}
	r.log.Info("distances computed",
		zap.Int("pairs", r.sum.Distances.Pairs),
		zap.Float64("median", r.sum.Distances.Median),
		zap.Float64("max", r.sum.Distances.Max))

	return r.write(FileSummary, func(w io.Writer) error { return report.WriteSummary(w, r.sum.Distances) })
}

// binOptions translates the variogram section; zero values keep the
// data-derived defaults.
func (r *runner) binOptions() []variogram.Option {
	vc := r.cfg.Variogram
	var opts []variogram.Option
	if vc.Cutoff > 0 {
		opts = append(opts, variogram.WithCutoff(vc.Cutoff))
	}
	if vc.Width > 0 {
		opts = append(opts, variogram.WithWidth(vc.Width))
	}
	if vc.Bins > 0 {
		opts = append(opts, variogram.WithBins(vc.Bins))
	}
	if vc.LowPairThreshold > 0 {
		opts = append(opts, variogram.WithLowPairThreshold(vc.LowPairThreshold))
	}

	return opts
}

func (r *runner) semivariogram(context.Context) error {
	cloud, err := variogram.NewCloud(r.set, r.dist)
	if err != nil {
		return err
	}
	ids := r.set.IDs()
	if err = r.write(FileCloud, func(w io.Writer) error { return report.WriteCloud(w, ids, cloud.Points()) }); err != nil {
		return err
	}

	svs := make([]*variogram.Semivariogram, 0, len(r.cfg.Variogram.Estimators))
	for _, name := range r.cfg.Variogram.Estimators {
		est, err := variogram.ParseEstimator(name)
		if err != nil {
			return err
		}
		sv, err := variogram.Empirical(cloud, append(r.binOptions(), variogram.WithEstimator(est))...)
		if err != nil {
			return err
		}
		low := 0
		for _, b := range sv.Bins {
			if b.LowConfidence {
				low++
			}
		}
		r.sum.Bins[est.String()] = len(sv.Bins)
		r.log.Info("semivariogram estimated",
			zap.String("estimator", est.String()),
			zap.Float64("cutoff", sv.Cutoff),
			zap.Float64("width", sv.Width),
			zap.Int("bins", len(sv.Bins)),
			zap.Int("low_confidence", low))
		svs = append(svs, sv)
	}

	return r.write(FileBins, func(w io.Writer) error { return report.WriteBins(w, svs...) })
}

func (r *runner) randomize(context.Context) error {
	rc := r.cfg.Randomization
	if rc.Trials <= 0 {
		return nil
	}
	observed, err := variogram.Compute(r.set, r.dist, r.binOptions()...)
	if err != nil {
		return err
	}
	env, err := variogram.Randomize(r.set, r.dist, observed, variogram.WithTrials(rc.Trials), variogram.WithSeed(rc.Seed))
	if err != nil {
		return err
	}
	r.sum.Trials = rc.Trials
	r.log.Info("randomization finished", zap.Int("trials", rc.Trials), zap.Uint64("seed", rc.Seed))

	if err = r.write(FileTrials, func(w io.Writer) error { return report.WriteTrials(w, env) }); err != nil {
		return err
	}

	return r.write(FileEnvelope, func(w io.Writer) error { return report.WriteEnvelope(w, env) })
}

func (r *runner) torgegram(context.Context) error {
	if r.cfg.Input.Network == "" {
		r.log.Info("no network file, skipping torgegram")
		return nil
	}
	g, err := network.Load(r.cfg.Input.Network)
	if err != nil {
		return err
	}
	if r.nd, err = g.Distances(r.set.IDs()); err != nil {
		return err
	}
	tr, err := variogram.Torgegram(r.set, r.nd, r.binOptions()...)
	if err != nil {
		return err
	}
	r.sum.Network = &NetworkSummary{
		Reaches:         g.ReachCount(),
		FlowConnected:   tr.FlowConnected.TotalPairs(),
		FlowUnconnected: tr.FlowUnconnected.TotalPairs(),
	}
	r.log.Info("torgegram estimated",
		zap.Int("reaches", g.ReachCount()),
		zap.Int("fc_pairs", r.sum.Network.FlowConnected),
		zap.Int("fu_pairs", r.sum.Network.FlowUnconnected))

	return r.write(FileTorgegram, func(w io.Writer) error { return report.WriteTorgegram(w, tr) })
}

// candidate converts a configured structure.
func candidate(c config.CandidateConfig) (ssn.Config, error) {
	var out ssn.Config
	var err error
	if out.TailUp, err = ssn.ParseShape(c.TailUp); err != nil {
		return out, err
	}
	if out.TailDown, err = ssn.ParseShape(c.TailDown); err != nil {
		return out, err
	}
	if out.Euclid, err = ssn.ParseShape(c.Euclid); err != nil {
		return out, err
	}
	out.Nugget = c.Nugget

	return out, nil
}

// candidates lists the configured structures, or enumerates the configured
// shapes. Without a network only Euclidean forms are enumerated.
func (r *runner) candidates() ([]ssn.Config, error) {
	mc := r.cfg.Models
	if len(mc.Candidates) > 0 {
		out := make([]ssn.Config, 0, len(mc.Candidates))
		for _, c := range mc.Candidates {
			cfg, err := candidate(c)
			if err != nil {
				return nil, err
			}
			out = append(out, cfg)
		}
		return out, nil
	}
	shapes := make([]ssn.Shape, 0, len(mc.Shapes))
	for _, s := range mc.Shapes {
		shape, err := ssn.ParseShape(s)
		if err != nil {
			return nil, err
		}
		shapes = append(shapes, shape)
	}
	all := ssn.Enumerate(shapes, mc.NuggetEnabled())
	if r.nd != nil {
		return all, nil
	}
	out := all[:0]
	for _, c := range all {
		if !c.NeedsNetwork() {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no candidate can be fitted without a network", ssn.ErrInvalidConfig)
	}

	return out, nil
}

func (r *runner) fitOptions() ([]ssn.FitOption, error) {
	est, err := ssn.ParseEstimation(r.cfg.Models.Estimation)
	if err != nil {
		return nil, err
	}

	return []ssn.FitOption{
		ssn.WithEstimation(est),
		ssn.WithLOOCV(r.cfg.Models.LOOCVEnabled()),
		ssn.WithMaxIterations(r.cfg.Models.MaxIterations),
	}, nil
}

func summarize(t *ssn.Table) *ComparisonSummary {
	s := &ComparisonSummary{Formula: t.Formula, Fitted: len(t.Rows), Failures: len(t.Failures)}
	if best, ok := t.Best(); ok {
		s.Best, s.AIC = best.Label, best.Result.AIC
	}

	return s
}

func (r *runner) models(ctx context.Context) error {
	if !r.cfg.Models.Enabled {
		return nil
	}
	f, err := ssn.ParseFormula(r.cfg.Models.Formula)
	if err != nil {
		return err
	}
	cands, err := r.candidates()
	if err != nil {
		return err
	}
	fitOpts, err := r.fitOptions()
	if err != nil {
		return err
	}
	data, err := ssn.NewData(r.set, r.nd)
	if err != nil {
		return err
	}
	r.log.Info("comparing models", zap.String("formula", f.String()), zap.Int("candidates", len(cands)))
	t, err := ssn.Compare(ctx, data, f, cands, ssn.WithLogger(r.log), ssn.WithFitOptions(fitOpts...))
	if err != nil {
		return err
	}
	r.sum.Models = summarize(t)
	r.log.Info("models compared",
		zap.String("best", r.sum.Models.Best),
		zap.Int("fitted", r.sum.Models.Fitted),
		zap.Int("failures", r.sum.Models.Failures))

	if err = r.write(FileComparison, func(w io.Writer) error { return report.WriteComparison(w, t) }); err != nil {
		return err
	}

	return r.write(FileCoefficients, func(w io.Writer) error { return report.WriteCoefficients(w, t) })
}

func (r *runner) subset(ctx context.Context) error {
	sc := r.cfg.Subset
	if !sc.Enabled {
		return nil
	}
	cfg, err := candidate(sc.Model)
	if err != nil {
		return err
	}
	if !cfg.Spatial() && !cfg.Nugget {
		cfg.Nugget = true
	}
	data, err := ssn.NewData(r.set, r.nd)
	if err != nil {
		return err
	}
	t, err := ssn.BestSubset(ctx, data, r.cfg.Input.Schema.Response, sc.Covariates, cfg,
		ssn.WithLogger(r.log),
		ssn.WithMaxSubsetSize(sc.MaxSize),
		ssn.WithFitOptions(ssn.WithLOOCV(r.cfg.Models.LOOCVEnabled()), ssn.WithMaxIterations(r.cfg.Models.MaxIterations)))
	if err != nil {
		return err
	}
	r.sum.Subset = summarize(t)
	r.log.Info("best subset selected", zap.String("best", r.sum.Subset.Best), zap.String("model", cfg.Label()))

	return r.write(FileSubset, func(w io.Writer) error { return report.WriteComparison(w, t) })
}
