// SPDX-License-Identifier: MIT

package matrix

import (
	"gonum.org/v1/gonum/mat"
)

// SymDense copies a symmetric Dense into a gonum *mat.SymDense, the input type
// of mat.Cholesky. Symmetry is validated with DefaultEpsilon first; the upper
// triangle is what gets copied.
//
// Complexity: O(n²).
func (m *Dense) SymDense() (*mat.SymDense, error) {
	if err := ValidateSymmetric(m, DefaultEpsilon); err != nil {
		return nil, err
	}
	n := m.r
	out := mat.NewSymDense(n, nil)
	var i, j int
	for i = 0; i < n; i++ {
		for j = i; j < n; j++ {
			out.SetSym(i, j, m.data[i*n+j])
		}
	}

	return out, nil
}

// FromGonum copies any gonum mat.Matrix into a Dense.
func FromGonum(a mat.Matrix) (*Dense, error) {
	r, c := a.Dims()
	out, err := NewDense(r, c)
	if err != nil {
		return nil, err
	}
	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if err = out.Set(i, j, a.At(i, j)); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}
