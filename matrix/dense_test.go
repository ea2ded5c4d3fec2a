// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ssnstat/matrix"
)

func TestNewDense_InvalidShape(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct{ r, c int }{{0, 1}, {1, 0}, {-1, 3}} {
		_, err := matrix.NewDense(tc.r, tc.c)
		require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
	}
}

func TestDense_AtSetBounds(t *testing.T) {
	t.Parallel()

	m, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	require.NoError(t, m.Set(1, 2, 4.5))

	v, err := m.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, 4.5, v)

	_, err = m.At(2, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	require.ErrorIs(t, m.Set(0, -1, 1), matrix.ErrOutOfRange)
}

func TestDense_SetRejectsNonFinite(t *testing.T) {
	t.Parallel()

	m, err := matrix.NewSquare(2)
	require.NoError(t, err)
	require.ErrorIs(t, m.Set(0, 1, math.NaN()), matrix.ErrNaNInf)
	require.ErrorIs(t, m.Set(0, 1, math.Inf(1)), matrix.ErrNaNInf)
}

func TestDense_CloneIsIndependent(t *testing.T) {
	t.Parallel()

	m, err := matrix.FromRows([][]float64{{0, 1}, {1, 0}})
	require.NoError(t, err)
	c := m.Clone()
	require.NoError(t, m.Set(0, 1, 9))

	v, err := c.At(0, 1)
	require.NoError(t, err)
	require.Equal(t, 1.0, v)
}

func TestFromRows_Ragged(t *testing.T) {
	t.Parallel()

	_, err := matrix.FromRows([][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)
	_, err = matrix.FromRows(nil)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

func TestDense_UpperTriangle(t *testing.T) {
	t.Parallel()

	m, err := matrix.FromRows([][]float64{
		{0, 1, 2},
		{1, 0, 3},
		{2, 3, 0},
	})
	require.NoError(t, err)

	up, err := m.UpperTriangle()
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2, 3}, up)

	rect, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	_, err = rect.UpperTriangle()
	require.ErrorIs(t, err, matrix.ErrNonSquare)
}

func TestDense_Induced(t *testing.T) {
	t.Parallel()

	m, err := matrix.FromRows([][]float64{
		{0, 1, 2},
		{1, 0, 3},
		{2, 3, 0},
	})
	require.NoError(t, err)

	// Reverse the site order.
	r, err := m.Induced([]int{2, 1, 0}, []int{2, 1, 0})
	require.NoError(t, err)
	v, err := r.At(0, 1)
	require.NoError(t, err)
	require.Equal(t, 3.0, v)

	_, err = m.Induced([]int{3}, []int{0})
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestDense_ApplyAndDo(t *testing.T) {
	t.Parallel()

	m, err := matrix.FromRows([][]float64{{1, 2}, {3, 4}})
	require.NoError(t, err)
	require.NoError(t, m.Apply(func(_, _ int, v float64) float64 { return 2 * v }))

	var sum float64
	m.Do(func(_, _ int, v float64) bool {
		sum += v
		return true
	})
	require.Equal(t, 20.0, sum)

	require.ErrorIs(t, m.Apply(func(_, _ int, v float64) float64 { return v * math.Inf(1) }), matrix.ErrNaNInf)
}

func TestDense_SymDenseBridge(t *testing.T) {
	t.Parallel()

	m, err := matrix.FromRows([][]float64{{2, 1}, {1, 3}})
	require.NoError(t, err)
	s, err := m.SymDense()
	require.NoError(t, err)
	require.Equal(t, 1.0, s.At(1, 0))

	asym, err := matrix.FromRows([][]float64{{0, 1}, {2, 0}})
	require.NoError(t, err)
	_, err = asym.SymDense()
	require.ErrorIs(t, err, matrix.ErrAsymmetry)

	back, err := matrix.FromGonum(s)
	require.NoError(t, err)
	v, err := back.At(1, 1)
	require.NoError(t, err)
	require.Equal(t, 3.0, v)
}
