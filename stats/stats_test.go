package stats_test

import (
	"math"
	"testing"

	"github.com/sartorproj/golod/stats"
	"github.com/stretchr/testify/require"
)

func TestCenterValue(t *testing.T) {
	lod := 10.0

	require.InDelta(t, 10.0/math.Sqrt2, stats.CenterSqrt2.Value(lod), 1e-12)
	require.InDelta(t, 5.0, stats.CenterDiv2.Value(lod), 1e-12)
}

func TestParseCenter(t *testing.T) {
	cases := []struct {
		in      string
		want    stats.Center
		wantErr bool
	}{
		{"sqrt2", stats.CenterSqrt2, false},
		{"div2", stats.CenterDiv2, false},
		{"SQRT2", stats.CenterSqrt2, false},
		{"half", 0, true},
		{"", 0, true},
	}

	for _, tc := range cases {
		got, err := stats.ParseCenter(tc.in)
		if tc.wantErr {
			require.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		require.Equal(t, tc.want, got, tc.in)
	}
}

func TestClipAndImputationRange(t *testing.T) {
	lo, hi := stats.ImputationRange(10.0)
	require.InDelta(t, 0.001, lo, 1e-12)
	require.InDelta(t, 9.9, hi, 1e-12)

	require.InDelta(t, lo, stats.Clip(-5, lo, hi), 1e-12)
	require.InDelta(t, hi, stats.Clip(50, lo, hi), 1e-12)
	require.InDelta(t, 3.2, stats.Clip(3.2, lo, hi), 1e-12)
}

func TestDescribe(t *testing.T) {
	d := stats.Describe([]float64{2, 4, 4, 4, 5, 5, 7, 9})

	require.InDelta(t, 5.0, d.Mean, 1e-9)
	require.InDelta(t, 2.0, d.Std, 1e-9) // population standard deviation
	require.InDelta(t, 2.0, d.Min, 1e-9)
	require.InDelta(t, 9.0, d.Max, 1e-9)
}

func TestDescribeEmpty(t *testing.T) {
	d := stats.Describe(nil)
	require.True(t, math.IsNaN(d.Mean))
	require.True(t, math.IsNaN(d.Std))
}

func TestGeometricMean(t *testing.T) {
	require.InDelta(t, 10.0, stats.GeometricMean([]float64{1, 10, 100}), 1e-9)
	require.True(t, math.IsNaN(stats.GeometricMean(nil)))
}

func TestGSD(t *testing.T) {
	// Identical values: arithmetic and geometric means coincide, GSD is 1.
	require.InDelta(t, 1.0, stats.GSD(5, 5, 10), 1e-12)

	// Mean above the geometric mean gives GSD > 1.
	gsd := stats.GSD(12, 10, 8)
	require.Greater(t, gsd, 1.0)

	// Degenerate sample sizes fall back to 1.
	require.InDelta(t, 1.0, stats.GSD(12, 10, 1), 1e-12)
}

func TestGanserHewett(t *testing.T) {
	observed := []float64{10.5, 20.3, 15.2}
	f, ok := stats.GanserHewett(5, 2, 5.0, observed)
	require.True(t, ok)

	require.Equal(t, 5, f.N)
	require.Equal(t, 2, f.K)
	require.InDelta(t, -0.2533, f.Z, 1e-3)
	require.Greater(t, f.SHat, 0.0)

	require.Greater(t, f.BetaMean, 0.0)
	require.Less(t, f.BetaMean, 1.0)
	require.Greater(t, f.BetaGM, 0.0)
	require.Less(t, f.BetaGM, 1.0)

	// Geometric-mean substitution sits below the mean substitution.
	require.Less(t, f.BetaGM, f.BetaMean)
}

func TestGanserHewettDegenerate(t *testing.T) {
	// A detection limit far above every observation drives the factors
	// outside (0, 1); the engine must fall back instead.
	_, ok := stats.GanserHewett(5, 2, 100.0, []float64{0.01, 0.02, 0.015})
	require.False(t, ok)
}
