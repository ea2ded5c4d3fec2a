// SPDX-License-Identifier: MIT

package variogram

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
)

// Default binning parameters.
const (
	DefaultBins             = 15
	DefaultCutoffDivisor    = 3.0
	DefaultLowPairThreshold = 30
	DefaultTrials           = 100
	DefaultSeed             = 1

	// MaxBins caps the bin count, whether set directly or derived from
	// cutoff/width.
	MaxBins = 1 << 16
)

// Estimator selects how a bin's semivariances are aggregated.
type Estimator int

const (
	// Classical is the Matheron arithmetic mean.
	Classical Estimator = iota
	// CressieHawkins is the robust fourth-power-of-mean-root estimator.
	CressieHawkins
)

// String returns "classical" or "cressie-hawkins".
func (e Estimator) String() string {
	if e == CressieHawkins {
		return "cressie-hawkins"
	}

	return "classical"
}

// ParseEstimator accepts "classical"/"matheron" and
// "cressie-hawkins"/"cressie"/"robust".
func ParseEstimator(s string) (Estimator, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "classical", "matheron":
		return Classical, nil
	case "cressie-hawkins", "cressie", "robust":
		return CressieHawkins, nil
	}

	return Classical, fmt.Errorf("variogram: unknown estimator %q", s)
}

// CloudPoint is one site pair.
type CloudPoint struct {
	I, J         int
	Distance     float64
	Semivariance float64
	AbsDiff      float64 // |z_i − z_j|
}

// Bin is one lag class of an empirical semivariogram.
type Bin struct {
	Index         int
	Lower, Upper  float64
	Pairs         int
	MeanDistance  float64
	Gamma         float64
	LowConfidence bool
}

// Semivariogram is a binned estimate together with the resolved parameters
// that produced it.
type Semivariogram struct {
	Cutoff           float64
	Width            float64
	Estimator        Estimator
	LowPairThreshold int
	Bins             []Bin
}

// Options returns options that reproduce this semivariogram's binning.
func (s *Semivariogram) Options() []Option {
	return []Option{
		WithCutoff(s.Cutoff),
		WithWidth(s.Width),
		WithEstimator(s.Estimator),
		WithLowPairThreshold(s.LowPairThreshold),
	}
}

// TotalPairs returns the number of pairs over all bins.
func (s *Semivariogram) TotalPairs() int {
	total := 0
	for _, b := range s.Bins {
		total += b.Pairs
	}

	return total
}

// Options configures Empirical.
type Options struct {
	Cutoff           float64 // 0 = bounding-box diagonal / 3
	Width            float64 // 0 = Cutoff / Bins
	Bins             int
	Estimator        Estimator
	LowPairThreshold int

	cutoffSet, widthSet bool
}

// Option is a functional option for Empirical and Compute.
type Option func(*Options)

// DefaultOptions returns Bins 15, Classical, threshold 30 and automatic
// cutoff and width.
func DefaultOptions() Options {
	return Options{
		Bins:             DefaultBins,
		Estimator:        Classical,
		LowPairThreshold: DefaultLowPairThreshold,
	}
}

// WithCutoff sets the maximum pair distance (exclusive).
func WithCutoff(c float64) Option {
	return func(o *Options) { o.Cutoff, o.cutoffSet = c, true }
}

// WithWidth sets the bin width; it overrides WithBins.
func WithWidth(w float64) Option {
	return func(o *Options) { o.Width, o.widthSet = w, true }
}

// WithBins sets the number of bins used to derive the default width.
func WithBins(n int) Option {
	return func(o *Options) { o.Bins = n }
}

// WithEstimator selects the aggregation rule.
func WithEstimator(e Estimator) Option {
	return func(o *Options) { o.Estimator = e }
}

// WithLowPairThreshold sets the pair count below which a bin is flagged.
func WithLowPairThreshold(t int) Option {
	return func(o *Options) { o.LowPairThreshold = t }
}

// resolve validates o and fills cutoff and width from the bounding-box
// diagonal when they were not given. It returns the bin count.
func (o *Options) resolve(diagonal float64) (int, error) {
	if o.Bins < 1 || o.Bins > MaxBins {
		return 0, fmt.Errorf("%w: %d", ErrInvalidBins, o.Bins)
	}
	if o.LowPairThreshold < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidThreshold, o.LowPairThreshold)
	}
	if o.Estimator != Classical && o.Estimator != CressieHawkins {
		return 0, fmt.Errorf("variogram: unknown estimator %d", o.Estimator)
	}
	if !o.cutoffSet {
		o.Cutoff = diagonal / DefaultCutoffDivisor
	}
	if !(o.Cutoff > 0) || math.IsInf(o.Cutoff, 0) {
		return 0, fmt.Errorf("%w: cutoff=%g", ErrInvalidCutoff, o.Cutoff)
	}
	if !o.widthSet {
		o.Width = o.Cutoff / float64(o.Bins)
		return o.Bins, nil
	}
	if !(o.Width > 0) || math.IsInf(o.Width, 0) {
		return 0, fmt.Errorf("%w: width=%g", ErrInvalidWidth, o.Width)
	}

	ratio := o.Cutoff / o.Width
	if ratio > MaxBins {
		return 0, fmt.Errorf("%w: cutoff=%g width=%g gives more than %d bins", ErrInvalidWidth, o.Cutoff, o.Width, MaxBins)
	}

	return int(math.Ceil(ratio - 1e-9)), nil
}

// CloudOption configures NewCloud.
type CloudOption func(*cloudOptions)

type cloudOptions struct {
	keep     func(i, j int) bool
	distance func(i, j int) float64
}

// WithPairFilter keeps only pairs for which keep returns true.
func WithPairFilter(keep func(i, j int) bool) CloudOption {
	return func(o *cloudOptions) { o.keep = keep }
}

// WithDistanceFunc replaces the distance matrix with a function; the matrix
// argument of NewCloud may then be nil.
func WithDistanceFunc(d func(i, j int) float64) CloudOption {
	return func(o *cloudOptions) { o.distance = d }
}

// RandomizeOption configures Randomize.
type RandomizeOption func(*randomizeOptions)

type randomizeOptions struct {
	trials int
	source rand.Source
	cloud  []CloudOption
}

// WithTrials sets the number of permutations R.
func WithTrials(r int) RandomizeOption {
	return func(o *randomizeOptions) { o.trials = r }
}

// WithSeed seeds a PCG source.
func WithSeed(seed uint64) RandomizeOption {
	return func(o *randomizeOptions) { o.source = rand.NewPCG(seed, seed^0x9e3779b97f4a7c15) }
}

// WithSource uses a caller-supplied random source.
func WithSource(src rand.Source) RandomizeOption {
	return func(o *randomizeOptions) {
		if src != nil {
			o.source = src
		}
	}
}

// WithCloudOptions forwards cloud options (pair filter, distance function)
// to every trial, e.g. to randomize a Torgegram class.
func WithCloudOptions(opts ...CloudOption) RandomizeOption {
	return func(o *randomizeOptions) { o.cloud = append(o.cloud, opts...) }
}
