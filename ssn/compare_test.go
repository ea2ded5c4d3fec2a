// SPDX-License-Identifier: MIT

package ssn_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/ssnstat/ssn"
)

var errBoom = errors.New("boom")

// stub returns a fitter that reports the AIC keyed by formula or by
// configuration label, and fails for configuration labels in fail.
func stub(aic map[string]float64, fail map[string]bool, calls *[]ssn.FitOptions) ssn.FitterFunc {
	return func(_ *ssn.Data, f ssn.Formula, cfg ssn.Config, opts ...ssn.FitOption) (*ssn.FitResult, error) {
		o := ssn.DefaultFitOptions()
		for _, opt := range opts {
			opt(&o)
		}
		*calls = append(*calls, o)
		label := cfg.Label()
		if _, ok := aic[f.String()]; ok {
			label = f.String()
		}
		if fail[label] {
			return nil, errBoom
		}

		return &ssn.FitResult{Label: label, Formula: f.String(), AIC: aic[label]}, nil
	}
}

func TestCompare_RanksAndFailures(t *testing.T) {
	data := forkData(t)
	c1 := ssn.Config{TailUp: ssn.Exponential, Nugget: true}
	c2 := ssn.Config{TailDown: ssn.Linear, Nugget: true}
	c3 := ssn.Config{Euclid: ssn.Gaussian}
	c4 := ssn.Config{Nugget: true}
	var calls []ssn.FitOptions
	fit := stub(map[string]float64{c1.Label(): 12, c2.Label(): 7, c4.Label(): 12}, map[string]bool{c3.Label(): true}, &calls)

	core, logs := observer.New(zap.InfoLevel)
	table, err := ssn.Compare(context.Background(), data, ssn.MustParseFormula("z ~ 1"),
		[]ssn.Config{c1, c2, c3, c4},
		ssn.WithFitter(fit), ssn.WithLogger(zap.New(core)), ssn.WithFitOptions(ssn.WithEstimation(ssn.ML)))
	require.NoError(t, err)
	require.Len(t, calls, 4)
	require.Equal(t, ssn.ML, calls[0].Estimation)

	require.Equal(t, "z ~ 1", table.Formula)
	require.Equal(t, ssn.ML, table.Estimation)
	require.Len(t, table.Rows, 3)
	require.Equal(t, c2.Label(), table.Rows[0].Label)
	require.Equal(t, c1.Label(), table.Rows[1].Label, "ties keep candidate order")
	require.Equal(t, c4.Label(), table.Rows[2].Label)
	for i, row := range table.Rows {
		require.Equal(t, i+1, row.Rank)
	}
	best, ok := table.Best()
	require.True(t, ok)
	require.Equal(t, 7.0, best.Result.AIC)

	require.Len(t, table.Failures, 1)
	require.Equal(t, c3.Label(), table.Failures[0].Label)
	require.ErrorIs(t, table.Failures[0], errBoom)

	require.Equal(t, 3, logs.FilterMessage("candidate fitted").Len())
	require.Equal(t, 1, logs.FilterMessage("candidate failed").Len())
}

func TestCompare_FailsFastWithoutFitting(t *testing.T) {
	var calls []ssn.FitOptions
	fit := ssn.WithFitter(stub(nil, nil, &calls))
	ctx := context.Background()

	_, err := ssn.Compare(ctx, gridData(t), ssn.MustParseFormula("z ~ 1"),
		[]ssn.Config{{Nugget: true}, {TailUp: ssn.Exponential}}, fit)
	require.ErrorIs(t, err, ssn.ErrNetworkRequired)

	_, err = ssn.Compare(ctx, gridData(t), ssn.MustParseFormula("z ~ depth"), []ssn.Config{{Nugget: true}}, fit)
	require.ErrorIs(t, err, ssn.ErrUnknownColumn)

	_, err = ssn.Compare(ctx, gridData(t), ssn.MustParseFormula("z ~ 1"), []ssn.Config{{}}, fit)
	require.ErrorIs(t, err, ssn.ErrInvalidConfig)

	_, err = ssn.Compare(ctx, gridData(t), ssn.MustParseFormula("z ~ 1"), nil, fit)
	require.ErrorIs(t, err, ssn.ErrInvalidConfig)

	_, err = ssn.Compare(ctx, nil, ssn.MustParseFormula("z ~ 1"), []ssn.Config{{Nugget: true}}, fit)
	require.ErrorIs(t, err, ssn.ErrNilInput)

	require.Empty(t, calls)
}

func TestCompare_NilResultIsFailure(t *testing.T) {
	empty := ssn.FitterFunc(func(*ssn.Data, ssn.Formula, ssn.Config, ...ssn.FitOption) (*ssn.FitResult, error) {
		return nil, nil
	})
	table, err := ssn.Compare(context.Background(), gridData(t), ssn.MustParseFormula("z ~ elev"),
		[]ssn.Config{{Nugget: true}}, ssn.WithFitter(empty))
	require.NoError(t, err)
	require.Empty(t, table.Rows)
	require.Len(t, table.Failures, 1)
	require.ErrorIs(t, table.Failures[0], ssn.ErrNoResult)

	table, err = ssn.BestSubset(context.Background(), gridData(t), "z", []string{"elev"},
		ssn.Config{Nugget: true}, ssn.WithFitter(empty))
	require.NoError(t, err)
	require.Empty(t, table.Rows)
	require.Len(t, table.Failures, 2)
	require.ErrorIs(t, table.Failures[1], ssn.ErrNoResult)
}

func TestCompare_Cancelled(t *testing.T) {
	var calls []ssn.FitOptions
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ssn.Compare(ctx, gridData(t), ssn.MustParseFormula("z ~ 1"),
		[]ssn.Config{{Nugget: true}}, ssn.WithFitter(stub(nil, nil, &calls)))
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, calls)
}

func TestCompare_SpatialBeatsBaseline(t *testing.T) {
	table, err := ssn.Compare(context.Background(), gridData(t), ssn.MustParseFormula("z ~ elev"),
		[]ssn.Config{{Nugget: true}, {Euclid: ssn.Exponential, Nugget: true}},
		ssn.WithFitOptions(ssn.WithLOOCV(false)))
	require.NoError(t, err)
	require.Empty(t, table.Failures)
	best, ok := table.Best()
	require.True(t, ok)
	require.Equal(t, "none.tailup+none.taildown+exponential.euclid+nugget", best.Label)
}

func TestBestSubset(t *testing.T) {
	var calls []ssn.FitOptions
	aic := map[string]float64{
		"z ~ 1":            50,
		"z ~ elev":         20,
		"z ~ slope":        49,
		"z ~ elev + slope": 21,
	}
	table, err := ssn.BestSubset(context.Background(), gridData(t), "z", []string{"elev", "slope"},
		ssn.Config{Nugget: true}, ssn.WithFitter(stub(aic, nil, &calls)))
	require.NoError(t, err)
	require.Len(t, calls, 4)
	for _, c := range calls {
		require.Equal(t, ssn.ML, c.Estimation)
	}
	require.Equal(t, ssn.ML, table.Estimation)
	require.Equal(t, "z ~ elev + slope", table.Formula)
	require.Equal(t, []string{"z ~ elev", "z ~ elev + slope", "z ~ slope", "z ~ 1"},
		[]string{table.Rows[0].Label, table.Rows[1].Label, table.Rows[2].Label, table.Rows[3].Label})

	calls = nil
	table, err = ssn.BestSubset(context.Background(), gridData(t), "z", []string{"elev", "slope"},
		ssn.Config{Nugget: true}, ssn.WithFitter(stub(aic, nil, &calls)), ssn.WithMaxSubsetSize(1))
	require.NoError(t, err)
	require.Len(t, table.Rows, 3)

	_, err = ssn.BestSubset(context.Background(), gridData(t), "z", []string{"depth"}, ssn.Config{Nugget: true})
	require.ErrorIs(t, err, ssn.ErrUnknownColumn)
}
