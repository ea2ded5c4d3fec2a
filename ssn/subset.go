// SPDX-License-Identifier: MIT

package ssn

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// BestSubset fits response ~ S for every subset S of covariates (the empty
// subset included, up to MaxSubsetSize terms) under ML with the covariance
// structure cfg, and ranks the fits by AIC. Row labels are the formulas.
//
// Subsets are enumerated by size, then in the order covariates are given.
func BestSubset(ctx context.Context, data *Data, response string, covariates []string, cfg Config, opts ...Option) (*Table, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if data == nil {
		return nil, ErrNilInput
	}
	if err := data.check(cfg); err != nil {
		return nil, err
	}
	limit := o.MaxSubsetSize
	if limit <= 0 || limit > len(covariates) {
		limit = len(covariates)
	}

	// 1) Validate every column once
	full := Formula{Response: response, Terms: covariates, Intercept: true}
	if strings.TrimSpace(response) == "" {
		return nil, fmt.Errorf("%w: empty response", ErrBadFormula)
	}
	if _, err := full.Bind(data.set); err != nil {
		return nil, err
	}

	// 2) Fit each subset with ML
	fitOpts := append(append([]FitOption(nil), o.FitOptions...), WithEstimation(ML))
	t := &Table{Formula: full.String(), Estimation: ML}
	for _, terms := range subsets(covariates, limit) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f := Formula{Response: response, Terms: terms, Intercept: true}
		res, err := o.Fitter.Fit(data, f, cfg, fitOpts...)
		if err == nil && res == nil {
			err = ErrNoResult
		}
		if err != nil {
			t.Failures = append(t.Failures, FitFailure{Label: f.String(), Reason: err.Error(), Err: err})
			o.Logger.Warn("subset failed", zap.String("formula", f.String()), zap.Error(err))
			continue
		}
		t.Rows = append(t.Rows, Row{Label: f.String(), Result: res})
		o.Logger.Info("subset fitted", zap.String("formula", f.String()), zap.Float64("aic", res.AIC))
	}
	rank(t.Rows)

	return t, nil
}

// subsets returns all subsets of items with at most limit elements, ordered
// by size and then lexicographically by position.
func subsets(items []string, limit int) [][]string {
	out := [][]string{{}}
	var grow func(start int, cur []string, size int)
	grow = func(start int, cur []string, size int) {
		if len(cur) == size {
			out = append(out, append([]string(nil), cur...))
			return
		}
		for i := start; i < len(items); i++ {
			grow(i+1, append(cur, items[i]), size)
		}
	}
	for size := 1; size <= limit; size++ {
		grow(0, make([]string, 0, size), size)
	}

	return out
}
