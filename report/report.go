// SPDX-License-Identifier: MIT

package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/katalvlaran/ssnstat/distance"
	"github.com/katalvlaran/ssnstat/ssn"
	"github.com/katalvlaran/ssnstat/variogram"
)

// ErrNilInput indicates a nil result passed to a writer.
var ErrNilInput = errors.New("report: nil input")

// Column headers.
var (
	CloudHeader       = []string{"site_i", "site_j", "distance", "semivariance", "abs_diff"}
	BinHeader         = []string{"estimator", "bin", "lower", "upper", "pairs", "mean_distance", "gamma", "low_confidence"}
	TrialHeader       = []string{"trial", "point", "mean_distance", "gamma"}
	EnvelopeHeader    = []string{"bin", "mean_distance", "observed", "lower", "upper", "trials", "p_value"}
	ComparisonHeader  = []string{"rank", "label", "formula", "estimation", "aic", "neg2loglik", "num_params", "rmspe", "cor2", "bias", "coverage90", "status", "reason"}
	CoefficientHeader = []string{"rank", "label", "term", "estimate", "std_err"}
	SummaryHeader     = []string{"statistic", "value"}
)

// table wraps a csv.Writer and remembers the first error.
type table struct {
	w   *csv.Writer
	err error
}

func newTable(w io.Writer, header []string) *table {
	t := &table{w: csv.NewWriter(w)}
	t.row(header...)

	return t
}

func (t *table) row(cells ...string) {
	if t.err == nil {
		t.err = t.w.Write(cells)
	}
}

func (t *table) close() error {
	t.w.Flush()
	if t.err != nil {
		return fmt.Errorf("report: %w", t.err)
	}
	if err := t.w.Error(); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	return nil
}

// ff formats a float; NaN becomes an empty cell.
func ff(v float64) string {
	if math.IsNaN(v) {
		return ""
	}

	return strconv.FormatFloat(v, 'g', -1, 64)
}

func fi(v int) string { return strconv.Itoa(v) }

// WriteCloud writes one row per pair; ids maps site indices to IDs.
func WriteCloud(w io.Writer, ids []string, points []variogram.CloudPoint) error {
	t := newTable(w, CloudHeader)
	for _, p := range points {
		if p.I >= len(ids) || p.J >= len(ids) {
			return fmt.Errorf("%w: pair (%d,%d) with %d ids", variogram.ErrIndexOutOfRange, p.I, p.J, len(ids))
		}
		t.row(ids[p.I], ids[p.J], ff(p.Distance), ff(p.Semivariance), ff(p.AbsDiff))
	}

	return t.close()
}

func binRow(sv *variogram.Semivariogram, b variogram.Bin) []string {
	return []string{
		sv.Estimator.String(), fi(b.Index), ff(b.Lower), ff(b.Upper), fi(b.Pairs),
		ff(b.MeanDistance), ff(b.Gamma), strconv.FormatBool(b.LowConfidence),
	}
}

// WriteBins writes every populated bin of one or more semivariograms, so
// classical and robust estimates can share a file.
func WriteBins(w io.Writer, svs ...*variogram.Semivariogram) error {
	t := newTable(w, BinHeader)
	for _, sv := range svs {
		if sv == nil {
			return ErrNilInput
		}
		for _, b := range sv.Bins {
			t.row(binRow(sv, b)...)
		}
	}

	return t.close()
}

// Distance classes used by WriteTorgegram.
const (
	ClassEuclidean       = "euclidean"
	ClassFlowConnected   = "flow_connected"
	ClassFlowUnconnected = "flow_unconnected"
)

// WriteTorgegram writes the three distance classes in a single table.
func WriteTorgegram(w io.Writer, tr *variogram.TorgegramResult) error {
	if tr == nil {
		return ErrNilInput
	}
	t := newTable(w, append([]string{"class"}, BinHeader...))
	for _, c := range []struct {
		name string
		sv   *variogram.Semivariogram
	}{
		{ClassEuclidean, tr.Euclidean},
		{ClassFlowConnected, tr.FlowConnected},
		{ClassFlowUnconnected, tr.FlowUnconnected},
	} {
		if c.sv == nil {
			continue
		}
		for _, b := range c.sv.Bins {
			t.row(append([]string{c.name}, binRow(c.sv, b)...)...)
		}
	}

	return t.close()
}

// WriteTrials writes every curve of the envelope in long format.
func WriteTrials(w io.Writer, env *variogram.Envelope) error {
	if env == nil {
		return ErrNilInput
	}
	t := newTable(w, TrialHeader)
	for _, c := range env.Curves() {
		for k := range c.Distances {
			t.row(fi(c.Trial), fi(k), ff(c.Distances[k]), ff(c.Gammas[k]))
		}
	}

	return t.close()
}

// WriteEnvelope writes the per-bin band with its lower-tail p-value.
func WriteEnvelope(w io.Writer, env *variogram.Envelope) error {
	if env == nil {
		return ErrNilInput
	}
	t := newTable(w, EnvelopeHeader)
	bands, pv := env.Bounds(), env.PValues()
	for k, b := range bands {
		t.row(fi(b.Index), ff(b.MeanDistance), ff(b.Observed), ff(b.Lower), ff(b.Upper), fi(b.Trials), ff(pv[k]))
	}

	return t.close()
}

// WriteComparison writes ranked rows, then failures with status=failed.
func WriteComparison(w io.Writer, tbl *ssn.Table) error {
	if tbl == nil {
		return ErrNilInput
	}
	t := newTable(w, ComparisonHeader)
	est := tbl.Estimation.String()
	for _, r := range tbl.Rows {
		res := r.Result
		rmspe, cor2, bias, cov := math.NaN(), math.NaN(), math.NaN(), math.NaN()
		if res.LOOCV != nil {
			rmspe, cor2, bias, cov = res.LOOCV.RMSPE, res.LOOCV.Cor2, res.LOOCV.Bias, res.LOOCV.Coverage90
		}
		t.row(fi(r.Rank), r.Label, res.Formula, est, ff(res.AIC), ff(res.NegTwoLogLik), fi(res.NumParams),
			ff(rmspe), ff(cor2), ff(bias), ff(cov), "ok", "")
	}
	for _, f := range tbl.Failures {
		t.row("", f.Label, tbl.Formula, est, "", "", "", "", "", "", "", "failed", f.Reason)
	}

	return t.close()
}

// WriteCoefficients writes the fixed effects of every ranked row.
func WriteCoefficients(w io.Writer, tbl *ssn.Table) error {
	if tbl == nil {
		return ErrNilInput
	}
	t := newTable(w, CoefficientHeader)
	for _, r := range tbl.Rows {
		for _, c := range r.Result.Coefficients {
			t.row(fi(r.Rank), r.Label, c.Name, ff(c.Estimate), ff(c.StdErr))
		}
	}

	return t.close()
}

// WriteSummary writes the five-number summary as statistic/value rows.
func WriteSummary(w io.Writer, s distance.FiveNumber) error {
	t := newTable(w, SummaryHeader)
	t.row("min", ff(s.Min))
	t.row("q1", ff(s.Q1))
	t.row("median", ff(s.Median))
	t.row("mean", ff(s.Mean))
	t.row("q3", ff(s.Q3))
	t.row("max", ff(s.Max))
	t.row("pairs", fi(s.Pairs))

	return t.close()
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	if _, err = w.Write(append(b, '\n')); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	return nil
}
