package beta_test

import (
	"math"
	"testing"

	"github.com/sartorproj/golod/beta"
	"github.com/sartorproj/golod/dataset"
	"github.com/stretchr/testify/require"
)

func TestImputeSubstitutesBelowLimit(t *testing.T) {
	nan := math.NaN()
	table := &dataset.Table{}
	table.AddColumn("Cu", []float64{10.5, nan, 20.3, nan, 15.2})

	limits := &dataset.Limits{}
	limits.Set("Cu", 5.0)

	out, log := beta.Impute(table, limits)

	require.Equal(t, 1, log.Len())
	r := log.Records[0]
	require.Equal(t, "Cu", r.Column)
	require.Equal(t, 2, r.NCensored)
	require.InDelta(t, 40.0, r.PercentCensored, 1e-9)

	require.Greater(t, r.BetaMean, 0.0)
	require.Less(t, r.BetaMean, 1.0)
	require.Greater(t, r.BetaGM, 0.0)
	require.Less(t, r.BetaGM, 1.0)

	// Both censored cells get the same constant, strictly below the limit.
	v1, v3 := out.Column("Cu").Values[1], out.Column("Cu").Values[3]
	require.Equal(t, v1, v3)
	require.InDelta(t, r.BetaMean*5.0, v1, 1e-12)
	require.Less(t, v1, 5.0)
	require.Greater(t, v1, 0.0)

	require.Greater(t, r.EstimatedGSD, 0.0)
	require.Greater(t, r.EstimatedMean, r.EstimatedGM)
}

func TestImputeSkipsSparseColumns(t *testing.T) {
	nan := math.NaN()
	table := &dataset.Table{}
	// Only one observed value: not enough to calibrate, left untouched.
	table.AddColumn("Pb", []float64{nan, 7.2, nan})
	// No censored cells: nothing to do.
	table.AddColumn("Zn", []float64{3.0, 4.1, 5.2})

	limits := &dataset.Limits{}
	limits.Set("Pb", 2.0)
	limits.Set("Zn", 1.0)

	out, log := beta.Impute(table, limits)

	require.Zero(t, log.Len())
	require.True(t, math.IsNaN(out.Column("Pb").Values[0]))
	require.Equal(t, table.Column("Zn").Values, out.Column("Zn").Values)
}

func TestImputeDegenerateFallback(t *testing.T) {
	nan := math.NaN()
	// A limit far above every observation makes the Ganser-Hewett log-scale
	// negative; the column falls back to LOD/sqrt(2) with no record.
	table := &dataset.Table{}
	table.AddColumn("Au", []float64{0.01, nan, 0.02, 0.015, nan})

	limits := &dataset.Limits{}
	limits.Set("Au", 100.0)

	out, log := beta.Impute(table, limits)

	require.Zero(t, log.Len())
	fallback := 100.0 / math.Sqrt2
	require.InDelta(t, fallback, out.Column("Au").Values[1], 1e-12)
	require.InDelta(t, fallback, out.Column("Au").Values[4], 1e-12)
}

func TestImputeInputUntouched(t *testing.T) {
	nan := math.NaN()
	table := &dataset.Table{}
	table.AddColumn("Cu", []float64{10.5, nan, 20.3, nan, 15.2})
	limits := &dataset.Limits{}
	limits.Set("Cu", 5.0)

	_, _ = beta.Impute(table, limits)

	require.True(t, math.IsNaN(table.Column("Cu").Values[1]))
	require.True(t, math.IsNaN(table.Column("Cu").Values[3]))
}
