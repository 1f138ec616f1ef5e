package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/presslin/matrix"
	"github.com/stretchr/testify/require"
)

// TestMatVec checks y = A·x on a small 0/1 system and its validation errors.
func TestMatVec(t *testing.T) {
	a, err := matrix.NewDenseFrom([][]float64{
		{0, 0, 0, 0, 1, 1},
		{0, 1, 0, 0, 0, 1},
		{0, 0, 1, 1, 1, 0},
		{1, 1, 0, 1, 0, 0},
	})
	require.NoError(t, err)

	y, err := matrix.MatVec(a, []float64{1, 3, 0, 3, 1, 2})
	require.NoError(t, err)
	require.Equal(t, []float64{3, 5, 4, 7}, y)

	_, err = matrix.MatVec(a, []float64{1, 2})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.MatVec(a, nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	_, err = matrix.MatVec(nil, []float64{1})
	require.ErrorIs(t, err, matrix.ErrNilMatrix)
}

// TestAllClose covers the atol/rtol relation and shape/tolerance guards.
func TestAllClose(t *testing.T) {
	a, err := matrix.NewDenseFrom([][]float64{{1, 0}, {0, 1}})
	require.NoError(t, err)
	b, err := matrix.NewDenseFrom([][]float64{{1 + 1e-12, 0}, {-1e-13, 1}})
	require.NoError(t, err)

	ok, err := matrix.AllClose(a, b, 0, 1e-9)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = matrix.AllClose(a, b, 0, 1e-14)
	require.NoError(t, err)
	require.False(t, ok)

	c, err := matrix.NewDense(3, 2)
	require.NoError(t, err)
	_, err = matrix.AllClose(a, c, 0, 1)
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.AllClose(a, b, math.NaN(), 0)
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

// TestValidateFinite checks NaN/Inf detection on plain vectors.
func TestValidateFinite(t *testing.T) {
	require.NoError(t, matrix.ValidateFinite([]float64{0, -3, 5.5}))
	require.ErrorIs(t, matrix.ValidateFinite([]float64{1, math.Inf(1)}), matrix.ErrNaNInf)
	require.ErrorIs(t, matrix.ValidateFinite([]float64{math.NaN()}), matrix.ErrNaNInf)
}

// TestValidateNotNilTypedNil treats a nil *Dense inside the interface as nil.
func TestValidateNotNilTypedNil(t *testing.T) {
	var d *matrix.Dense
	require.ErrorIs(t, matrix.ValidateNotNil(d), matrix.ErrNilMatrix)
}
