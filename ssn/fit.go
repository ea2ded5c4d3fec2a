// SPDX-License-Identifier: MIT

package ssn

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

// Estimation selects the likelihood.
type Estimation int

const (
	// REML is restricted maximum likelihood.
	REML Estimation = iota
	// ML is full maximum likelihood.
	ML
)

// String returns "reml" or "ml".
func (e Estimation) String() string {
	if e == ML {
		return "ml"
	}

	return "reml"
}

// ParseEstimation accepts "reml" and "ml" in any case.
func ParseEstimation(s string) (Estimation, error) {
	switch s {
	case "", "reml", "REML":
		return REML, nil
	case "ml", "ML":
		return ML, nil
	}

	return REML, fmt.Errorf("%w: unknown estimation %q", ErrInvalidConfig, s)
}

// penalty is returned for parameter vectors whose Σ does not factorise.
const penalty = 1e20

// maxLogParam bounds |log θ| to keep exp finite.
const maxLogParam = 60

// maxCond is the largest accepted condition number of XᵀX.
const maxCond = 1e12

// FitOptions configures Fit.
type FitOptions struct {
	Estimation    Estimation
	MaxIterations int     // Nelder–Mead major iterations
	Tolerance     float64 // absolute and relative change in −2ℓ
	LOOCV         bool
}

// FitOption is a functional option for Fit.
type FitOption func(*FitOptions)

// DefaultFitOptions returns REML, 2000 iterations, tolerance 1e-8 and LOOCV.
func DefaultFitOptions() FitOptions {
	return FitOptions{Estimation: REML, MaxIterations: 2000, Tolerance: 1e-8, LOOCV: true}
}

// WithEstimation selects REML or ML.
func WithEstimation(e Estimation) FitOption {
	return func(o *FitOptions) { o.Estimation = e }
}

// WithMaxIterations caps optimiser iterations.
func WithMaxIterations(n int) FitOption {
	return func(o *FitOptions) {
		if n > 0 {
			o.MaxIterations = n
		}
	}
}

// WithTolerance sets the convergence tolerance.
func WithTolerance(tol float64) FitOption {
	return func(o *FitOptions) {
		if tol > 0 {
			o.Tolerance = tol
		}
	}
}

// WithLOOCV toggles leave-one-out cross-validation.
func WithLOOCV(on bool) FitOption {
	return func(o *FitOptions) { o.LOOCV = on }
}

// Coefficient is one fixed-effect estimate.
type Coefficient struct {
	Name     string  `json:"name"`
	Estimate float64 `json:"estimate"`
	StdErr   float64 `json:"std_err"`
}

// FitResult is an immutable fitted model.
type FitResult struct {
	Config       Config        `json:"-"`
	Label        string        `json:"label"`
	Formula      string        `json:"formula"`
	Estimation   Estimation    `json:"-"`
	Params       Params        `json:"params"`
	Coefficients []Coefficient `json:"coefficients"`
	NegTwoLogLik float64       `json:"neg2loglik"`
	AIC          float64       `json:"aic"`
	NumParams    int           `json:"num_params"`
	Iterations   int           `json:"iterations"`
	LOOCV        *LOOCV        `json:"loocv,omitempty"`

	sigma *mat.SymDense
}

// Sigma returns a copy of the fitted covariance matrix.
func (r *FitResult) Sigma() *mat.SymDense {
	s := mat.NewSymDense(r.sigma.SymmetricDim(), nil)
	s.CopySym(r.sigma)

	return s
}

// Fit estimates the model y ~ formula with covariance structure cfg.
//
// Steps:
//  1. Validate cfg against data, bind the formula.
//  2. OLS start: residual variance split evenly over components; ranges
//     start at half the largest distance each form sees.
//  3. Minimise −2ℓ over log-parameters with Nelder–Mead.
//  4. Re-evaluate at the optimum: β, standard errors, AIC, LOOCV.
//
// Errors: configuration errors, ErrSingularDesign, ErrNotConverged,
// ErrNotPositiveDefinite.
func Fit(data *Data, f Formula, cfg Config, opts ...FitOption) (*FitResult, error) {
	o := DefaultFitOptions()
	for _, opt := range opts {
		opt(&o)
	}
	// 1) Validate and bind
	if data == nil {
		return nil, ErrNilInput
	}
	if err := data.check(cfg); err != nil {
		return nil, err
	}
	design, err := f.Bind(data.set)
	if err != nil {
		return nil, err
	}
	_, p := design.X.Dims()

	// 2) Start values
	s2, err := olsVariance(design)
	if err != nil {
		return nil, err
	}
	comps := cfg.components()
	parts := float64(len(comps))
	if cfg.Nugget {
		parts++
	}
	x0 := make([]float64, 0, cfg.NumCovParams())
	for _, c := range comps {
		x0 = append(x0, math.Log(s2/parts), math.Log(data.maxDistance(c.Form)/2))
	}
	if cfg.Nugget {
		x0 = append(x0, math.Log(s2/parts))
	}

	// 3) Optimise
	objective := func(theta []float64) float64 {
		params, ok := unpack(cfg, theta)
		if !ok {
			return penalty
		}
		v, _, err := evaluate(data, design, params, o.Estimation)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return penalty
		}

		return v
	}
	if objective(x0) >= penalty {
		return nil, fmt.Errorf("%w: at start values for %s", ErrNotPositiveDefinite, cfg.Label())
	}
	settings := &optimize.Settings{
		MajorIterations: o.MaxIterations,
		Converger: &optimize.FunctionConverge{
			Absolute:   o.Tolerance,
			Relative:   o.Tolerance,
			Iterations: 50,
		},
	}
	res, err := optimize.Minimize(optimize.Problem{Func: objective}, x0, settings, &optimize.NelderMead{SimplexSize: 0.5})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotConverged, cfg.Label(), err)
	}
	switch res.Status {
	case optimize.IterationLimit, optimize.FunctionEvaluationLimit, optimize.RuntimeLimit, optimize.Failure:
		return nil, fmt.Errorf("%w: %s: status %v", ErrNotConverged, cfg.Label(), res.Status)
	}

	// 4) Final evaluation
	params, ok := unpack(cfg, res.X)
	if !ok || res.F >= penalty {
		return nil, fmt.Errorf("%w: %s", ErrNotPositiveDefinite, cfg.Label())
	}
	n2ll, g, err := evaluate(data, design, params, o.Estimation)
	if err != nil {
		return nil, err
	}
	k := cfg.NumCovParams()
	if o.Estimation == ML {
		k += p
	}
	result := &FitResult{
		Config:       cfg,
		Label:        cfg.Label(),
		Formula:      f.String(),
		Estimation:   o.Estimation,
		Params:       params,
		NegTwoLogLik: n2ll,
		AIC:          n2ll + 2*float64(k),
		NumParams:    k,
		Iterations:   res.Stats.MajorIterations,
		sigma:        g.sigma,
	}
	var cov mat.SymDense
	if err = g.xsix.InverseTo(&cov); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingularDesign, err)
	}
	result.Coefficients = make([]Coefficient, p)
	for j := 0; j < p; j++ {
		result.Coefficients[j] = Coefficient{
			Name:     design.Names[j],
			Estimate: g.beta.AtVec(j),
			StdErr:   math.Sqrt(cov.At(j, j)),
		}
	}
	if o.LOOCV {
		if result.LOOCV, err = leaveOneOut(data, design, g, &cov); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// unpack maps log-parameters to natural-scale Params.
func unpack(cfg Config, theta []float64) (Params, bool) {
	for _, t := range theta {
		if math.Abs(t) > maxLogParam || math.IsNaN(t) {
			return Params{}, false
		}
	}
	comps := cfg.components()
	for k := range comps {
		comps[k].PartialSill = math.Exp(theta[2*k])
		comps[k].Range = math.Exp(theta[2*k+1])
	}
	p := Params{Components: comps}
	if cfg.Nugget {
		p.Nugget = math.Exp(theta[len(theta)-1])
	}

	return p, true
}

// glsFit holds one GLS solve.
type glsFit struct {
	sigma  *mat.SymDense
	chol   *mat.Cholesky // of Σ
	xsix   *mat.Cholesky // of XᵀΣ⁻¹X
	siX    *mat.Dense    // Σ⁻¹X
	beta   *mat.VecDense
	resid  *mat.VecDense
	quad   float64 // rᵀΣ⁻¹r
	logDet float64 // log|Σ|
}

var errFactorize = errors.New("ssn: factorisation failed")

// gls solves the generalised least squares problem for Σ.
func gls(sigma *mat.SymDense, d *Design) (*glsFit, error) {
	g := &glsFit{sigma: sigma, chol: &mat.Cholesky{}, xsix: &mat.Cholesky{}}
	if ok := g.chol.Factorize(sigma); !ok {
		return nil, fmt.Errorf("%w: %v", ErrNotPositiveDefinite, errFactorize)
	}
	g.logDet = g.chol.LogDet()

	g.siX = &mat.Dense{}
	if err := g.chol.SolveTo(g.siX, d.X); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotPositiveDefinite, err)
	}
	var xsix mat.Dense
	xsix.Mul(d.X.T(), g.siX)
	if ok := g.xsix.Factorize(symmetrize(&xsix)); !ok {
		return nil, ErrSingularDesign
	}
	var xsiy mat.VecDense
	xsiy.MulVec(g.siX.T(), d.Y)
	g.beta = &mat.VecDense{}
	if err := g.xsix.SolveVecTo(g.beta, &xsiy); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingularDesign, err)
	}

	var fitted mat.VecDense
	fitted.MulVec(d.X, g.beta)
	g.resid = &mat.VecDense{}
	g.resid.SubVec(d.Y, &fitted)
	var sir mat.VecDense
	if err := g.chol.SolveVecTo(&sir, g.resid); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotPositiveDefinite, err)
	}
	g.quad = mat.Dot(g.resid, &sir)

	return g, nil
}

// evaluate returns −2ℓ for params together with the GLS solve.
func evaluate(data *Data, d *Design, params Params, est Estimation) (float64, *glsFit, error) {
	sigma, err := Covariance(data, params)
	if err != nil {
		return 0, nil, err
	}
	g, err := gls(sigma, d)
	if err != nil {
		return 0, nil, err
	}
	n, p := d.X.Dims()
	v := g.logDet + g.quad
	if est == ML {
		return v + float64(n)*math.Log(2*math.Pi), g, nil
	}

	return v + g.xsix.LogDet() + float64(n-p)*math.Log(2*math.Pi), g, nil
}

// olsVariance returns the OLS residual variance RSS/(n−p), used only for
// start values.
func olsVariance(d *Design) (float64, error) {
	n, p := d.X.Dims()
	var xtx mat.Dense
	xtx.Mul(d.X.T(), d.X)
	var chol mat.Cholesky
	if ok := chol.Factorize(symmetrize(&xtx)); !ok || chol.Cond() > maxCond {
		return 0, ErrSingularDesign
	}
	var xty, beta, fitted mat.VecDense
	xty.MulVec(d.X.T(), d.Y)
	if err := chol.SolveVecTo(&beta, &xty); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSingularDesign, err)
	}
	fitted.MulVec(d.X, &beta)
	resid := make([]float64, n)
	floats.SubTo(resid, d.Y.RawVector().Data, fitted.RawVector().Data)
	s2 := floats.Dot(resid, resid) / float64(n-p)
	if !(s2 > 0) {
		return 1, nil
	}

	return s2, nil
}

// symmetrize returns (A + Aᵀ)/2 as a SymDense.
func symmetrize(a *mat.Dense) *mat.SymDense {
	r, _ := a.Dims()
	s := mat.NewSymDense(r, nil)
	for i := 0; i < r; i++ {
		for j := i; j < r; j++ {
			s.SetSym(i, j, 0.5*(a.At(i, j)+a.At(j, i)))
		}
	}

	return s
}
