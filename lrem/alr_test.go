package lrem

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestAlrRoundTrip(t *testing.T) {
	x := [][]float64{
		{12.1, 30.5, 5.2},
		{8.4, 28.1, 6.1},
		{15.2, 33.4, 4.8},
	}

	y := alrTransform(x)
	require.Len(t, y, 3)
	require.Len(t, y[0], 2)
	require.InDelta(t, math.Log(12.1/5.2), y[0][0], 1e-12)
	require.InDelta(t, math.Log(30.5/5.2), y[0][1], 1e-12)

	back := alrInverse(y, x)
	for i := range x {
		for j := range x[i] {
			require.InDelta(t, x[i][j], back[i][j], 1e-9)
		}
	}
}

func TestAlrTransformFloorsNonPositive(t *testing.T) {
	x := [][]float64{{0, 2.0, 4.0}}
	y := alrTransform(x)
	require.False(t, math.IsInf(y[0][0], -1))
	require.False(t, math.IsNaN(y[0][0]))
}

func TestPseudoInverseIdentity(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{4, 0, 0, 2})

	inv, ok := pseudoInverse(a)
	require.True(t, ok)
	require.InDelta(t, 0.25, inv.At(0, 0), 1e-12)
	require.InDelta(t, 0.5, inv.At(1, 1), 1e-12)
	require.InDelta(t, 0.0, inv.At(0, 1), 1e-12)
}

func TestPseudoInverseSingular(t *testing.T) {
	// Rank-1 matrix: the zero singular direction is dropped, and the result
	// still satisfies a * pinv(a) * a == a.
	a := mat.NewDense(2, 2, []float64{1, 2, 2, 4})

	inv, ok := pseudoInverse(a)
	require.True(t, ok)

	var tmp, back mat.Dense
	tmp.Mul(a, inv)
	back.Mul(&tmp, a)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			require.InDelta(t, a.At(i, j), back.At(i, j), 1e-9)
		}
	}
}
