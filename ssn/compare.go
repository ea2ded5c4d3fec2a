// SPDX-License-Identifier: MIT

package ssn

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"
)

// Fitter fits one candidate. Fit satisfies it through FitterFunc.
type Fitter interface {
	Fit(data *Data, f Formula, cfg Config, opts ...FitOption) (*FitResult, error)
}

// FitterFunc adapts a function to Fitter.
type FitterFunc func(data *Data, f Formula, cfg Config, opts ...FitOption) (*FitResult, error)

// Fit calls fn.
func (fn FitterFunc) Fit(data *Data, f Formula, cfg Config, opts ...FitOption) (*FitResult, error) {
	return fn(data, f, cfg, opts...)
}

// Options configures Compare and BestSubset.
type Options struct {
	Fitter        Fitter
	Logger        *zap.Logger
	FitOptions    []FitOption
	MaxSubsetSize int // 0 = all covariates
}

// Option is a functional option for Compare and BestSubset.
type Option func(*Options)

// DefaultOptions returns the package Fit and a no-op logger.
func DefaultOptions() Options {
	return Options{Fitter: FitterFunc(Fit), Logger: zap.NewNop()}
}

// WithFitter replaces the fitter.
func WithFitter(f Fitter) Option {
	return func(o *Options) {
		if f != nil {
			o.Fitter = f
		}
	}
}

// WithLogger logs one line per candidate.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithFitOptions forwards options to every fit, e.g. WithEstimation(ML).
func WithFitOptions(opts ...FitOption) Option {
	return func(o *Options) { o.FitOptions = append(o.FitOptions, opts...) }
}

// WithMaxSubsetSize limits BestSubset to subsets of at most k covariates.
func WithMaxSubsetSize(k int) Option {
	return func(o *Options) { o.MaxSubsetSize = k }
}

// Row is one ranked, converged candidate.
type Row struct {
	Rank   int
	Label  string
	Result *FitResult
}

// FitFailure records a candidate that did not produce a fit.
type FitFailure struct {
	Label  string
	Reason string
	Err    error
}

// Error implements error.
func (f FitFailure) Error() string { return f.Label + ": " + f.Reason }

// Unwrap exposes the underlying error to errors.Is.
func (f FitFailure) Unwrap() error { return f.Err }

// Table is a ranked comparison.
type Table struct {
	Formula    string
	Estimation Estimation
	Rows       []Row
	Failures   []FitFailure
}

// Best returns the row with the smallest AIC.
func (t *Table) Best() (Row, bool) {
	if len(t.Rows) == 0 {
		return Row{}, false
	}

	return t.Rows[0], true
}

// Compare fits each candidate with the same formula and ranks them by AIC.
//
// Steps:
//  1. Validate data, formula and every candidate (fail fast).
//  2. Fit candidates in order, stopping between fits if ctx is done.
//  3. Record failures, sort rows ascending by AIC (stable), assign ranks.
func Compare(ctx context.Context, data *Data, f Formula, candidates []Config, opts ...Option) (*Table, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	fo := DefaultFitOptions()
	for _, opt := range o.FitOptions {
		opt(&fo)
	}

	// 1) Validate
	if data == nil {
		return nil, ErrNilInput
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: no candidates", ErrInvalidConfig)
	}
	if _, err := f.Bind(data.set); err != nil {
		return nil, err
	}
	for _, c := range candidates {
		if err := data.check(c); err != nil {
			return nil, err
		}
	}

	// 2) Fit
	t := &Table{Formula: f.String(), Estimation: fo.Estimation}
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := o.Fitter.Fit(data, f, c, o.FitOptions...)
		if err == nil && res == nil {
			err = ErrNoResult
		}
		if err != nil {
			t.Failures = append(t.Failures, FitFailure{Label: c.Label(), Reason: err.Error(), Err: err})
			o.Logger.Warn("candidate failed",
				zap.String("label", c.Label()),
				zap.Error(err))
			continue
		}
		t.Rows = append(t.Rows, Row{Label: c.Label(), Result: res})
		o.Logger.Info("candidate fitted",
			zap.String("label", c.Label()),
			zap.Float64("aic", res.AIC),
			zap.Float64("neg2loglik", res.NegTwoLogLik),
			zap.Int("iterations", res.Iterations))
	}

	// 3) Rank
	rank(t.Rows)

	return t, nil
}

func rank(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Result.AIC < rows[j].Result.AIC })
	for i := range rows {
		rows[i].Rank = i + 1
	}
}
