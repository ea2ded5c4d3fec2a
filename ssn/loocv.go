// SPDX-License-Identifier: MIT

package ssn

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// CoverageLevel is the nominal level of the reported prediction intervals.
const CoverageLevel = 0.90

// Prediction is one held-out site.
type Prediction struct {
	ID        string  `json:"id"`
	Observed  float64 `json:"observed"`
	Predicted float64 `json:"predicted"`
	StdErr    float64 `json:"std_err"`
}

// LOOCV summarises leave-one-out predictions.
type LOOCV struct {
	Bias        float64      `json:"bias"`  // mean(predicted − observed)
	RMSPE       float64      `json:"rmspe"` // root mean squared prediction error
	Cor2        float64      `json:"cor2"`  // squared correlation of observed and predicted
	Coverage90  float64      `json:"coverage90"`
	Predictions []Prediction `json:"predictions"`
}

// leaveOneOut applies the closed form e_i = (Py)_i / P_ii, var_i = 1/P_ii
// with P = Σ⁻¹ − Σ⁻¹X (XᵀΣ⁻¹X)⁻¹ XᵀΣ⁻¹.
// Complexity: O(n³) for the inverse, O(n²p) for P.
func leaveOneOut(data *Data, d *Design, g *glsFit, xsixInv *mat.SymDense) (*LOOCV, error) {
	n, _ := d.X.Dims()

	// 1) P
	var sinv mat.SymDense
	if err := g.chol.InverseTo(&sinv); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotPositiveDefinite, err)
	}
	var tmp, proj, pm mat.Dense
	tmp.Mul(g.siX, xsixInv)
	proj.Mul(&tmp, g.siX.T())
	pm.Sub(&sinv, &proj)

	// 2) Residuals and variances
	var py mat.VecDense
	py.MulVec(&pm, d.Y)
	z := distuv.UnitNormal.Quantile(0.5 + CoverageLevel/2)
	ids := data.set.IDs()
	out := &LOOCV{Predictions: make([]Prediction, n)}
	obs := make([]float64, n)
	pred := make([]float64, n)
	var sumErr, sumSq float64
	covered := 0
	for i := 0; i < n; i++ {
		pii := pm.At(i, i)
		if !(pii > 0) {
			return nil, fmt.Errorf("%w: P[%d,%d]=%g", ErrNotPositiveDefinite, i, i, pii)
		}
		e := py.AtVec(i) / pii
		se := math.Sqrt(1 / pii)
		obs[i] = d.Y.AtVec(i)
		pred[i] = obs[i] - e
		sumErr += pred[i] - obs[i]
		sumSq += e * e
		if math.Abs(e) <= z*se {
			covered++
		}
		out.Predictions[i] = Prediction{ID: ids[i], Observed: obs[i], Predicted: pred[i], StdErr: se}
	}

	// 3) Summary
	nf := float64(n)
	out.Bias = sumErr / nf
	out.RMSPE = math.Sqrt(sumSq / nf)
	out.Coverage90 = float64(covered) / nf
	r := stat.Correlation(obs, pred, nil)
	if math.IsNaN(r) {
		r = 0
	}
	out.Cor2 = r * r

	return out, nil
}
