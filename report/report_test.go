// SPDX-License-Identifier: MIT

package report_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ssnstat/distance"
	"github.com/katalvlaran/ssnstat/report"
	"github.com/katalvlaran/ssnstat/ssn"
	"github.com/katalvlaran/ssnstat/variogram"
)

func lines(b *bytes.Buffer) []string {
	return strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
}

func sample() *variogram.Semivariogram {
	return &variogram.Semivariogram{
		Cutoff: 20, Width: 10, Estimator: variogram.Classical, LowPairThreshold: 30,
		Bins: []variogram.Bin{
			{Index: 0, Lower: 0, Upper: 10, Pairs: 40, MeanDistance: 6.5, Gamma: 1.25},
			{Index: 1, Lower: 10, Upper: 20, Pairs: 3, MeanDistance: 14, Gamma: 2, LowConfidence: true},
		},
	}
}

func TestWriteCloud(t *testing.T) {
	var buf bytes.Buffer
	err := report.WriteCloud(&buf, []string{"a", "b"}, []variogram.CloudPoint{{I: 0, J: 1, Distance: 5, Semivariance: 0.5, AbsDiff: 1}})
	require.NoError(t, err)
	require.Equal(t, []string{"site_i,site_j,distance,semivariance,abs_diff", "a,b,5,0.5,1"}, lines(&buf))

	err = report.WriteCloud(&buf, []string{"a"}, []variogram.CloudPoint{{I: 0, J: 1}})
	require.ErrorIs(t, err, variogram.ErrIndexOutOfRange)
}

func TestWriteBins(t *testing.T) {
	var buf bytes.Buffer
	robust := sample()
	robust.Estimator = variogram.CressieHawkins
	require.NoError(t, report.WriteBins(&buf, sample(), robust))
	got := lines(&buf)
	require.Len(t, got, 5)
	require.Equal(t, "estimator,bin,lower,upper,pairs,mean_distance,gamma,low_confidence", got[0])
	require.Equal(t, "classical,0,0,10,40,6.5,1.25,false", got[1])
	require.Equal(t, "classical,1,10,20,3,14,2,true", got[2])
	require.True(t, strings.HasPrefix(got[3], robust.Estimator.String()+",0,"))

	require.ErrorIs(t, report.WriteBins(&buf, nil), report.ErrNilInput)
}

func TestWriteTorgegram(t *testing.T) {
	var buf bytes.Buffer
	tr := &variogram.TorgegramResult{Euclidean: sample(), FlowConnected: sample(), FlowUnconnected: &variogram.Semivariogram{}}
	require.NoError(t, report.WriteTorgegram(&buf, tr))
	got := lines(&buf)
	require.Len(t, got, 5)
	require.True(t, strings.HasPrefix(got[0], "class,estimator,"))
	require.True(t, strings.HasPrefix(got[1], report.ClassEuclidean+","))
	require.True(t, strings.HasPrefix(got[4], report.ClassFlowConnected+","))
}

func TestWriteTrialsAndEnvelope(t *testing.T) {
	trial := sample()
	trial.Bins = trial.Bins[:1]
	trial.Bins[0].Gamma = 3
	env := &variogram.Envelope{Observed: sample(), Trials: []*variogram.Semivariogram{trial}}

	var buf bytes.Buffer
	require.NoError(t, report.WriteTrials(&buf, env))
	require.Equal(t, []string{
		"trial,point,mean_distance,gamma",
		"0,0,6.5,1.25",
		"0,1,14,2",
		"1,0,6.5,3",
	}, lines(&buf))

	buf.Reset()
	require.NoError(t, report.WriteEnvelope(&buf, env))
	require.Equal(t, []string{
		"bin,mean_distance,observed,lower,upper,trials,p_value",
		"0,6.5,1.25,3,3,1,0.5",
		"1,14,2,,,0,1",
	}, lines(&buf))
}

func TestWriteComparison(t *testing.T) {
	tbl := &ssn.Table{
		Formula:    "z ~ elev",
		Estimation: ssn.REML,
		Rows: []ssn.Row{{Rank: 1, Label: "m1", Result: &ssn.FitResult{
			Formula: "z ~ elev", AIC: 10, NegTwoLogLik: 4, NumParams: 3,
			Coefficients: []ssn.Coefficient{{Name: ssn.InterceptName, Estimate: 1, StdErr: 0.5}},
			LOOCV:        &ssn.LOOCV{RMSPE: 0.25, Cor2: 0.5, Bias: 0, Coverage90: 0.75},
		}}},
		Failures: []ssn.FitFailure{{Label: "m2", Reason: "did not converge, status x", Err: errors.New("x")}},
	}
	var buf bytes.Buffer
	require.NoError(t, report.WriteComparison(&buf, tbl))
	require.Equal(t, []string{
		strings.Join(report.ComparisonHeader, ","),
		"1,m1,z ~ elev,reml,10,4,3,0.25,0.5,0,0.75,ok,",
		`,m2,z ~ elev,reml,,,,,,,,failed,"did not converge, status x"`,
	}, lines(&buf))

	buf.Reset()
	require.NoError(t, report.WriteCoefficients(&buf, tbl))
	require.Equal(t, []string{"rank,label,term,estimate,std_err", "1,m1,(Intercept),1,0.5"}, lines(&buf))
}

func TestWriteSummaryAndJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteSummary(&buf, distance.FiveNumber{Min: 1, Q1: 2, Median: 3, Mean: 3.5, Q3: 4, Max: 8, Pairs: 6}))
	require.Equal(t, "pairs,6", lines(&buf)[7])

	buf.Reset()
	require.NoError(t, report.WriteJSON(&buf, map[string]int{"sites": 4}))
	var back map[string]int
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	require.Equal(t, 4, back["sites"])
}
