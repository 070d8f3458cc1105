package dataset_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sartorproj/golod/dataset"
)

func rawTable(header []string, records [][]string) *dataset.Raw {
	return &dataset.Raw{Header: header, Records: records}
}

func TestDetectLOD(t *testing.T) {
	raw := rawTable(
		[]string{"Cu", "Zn"},
		[][]string{
			{"10.5", "100"},
			{"<5", "150"},
			{"20.3", "<50"},
			{"<5", "200"},
		},
	)

	table, limits, warnings := dataset.DetectLOD(raw)
	require.Empty(t, warnings)

	lod, ok := limits.Get("Cu")
	require.True(t, ok)
	require.Equal(t, 5.0, lod)

	lod, ok = limits.Get("Zn")
	require.True(t, ok)
	require.Equal(t, 50.0, lod)

	require.Equal(t, 2, table.MissingCount("Cu"))
	require.Equal(t, 1, table.MissingCount("Zn"))
	require.Equal(t, 10.5, table.Column("Cu").Values[0])
	require.True(t, dataset.IsMissing(table.Column("Cu").Values[1]))
}

func TestDetectLODInconsistentMarkers(t *testing.T) {
	// A column with mixed "<x" notations records the maximum as its limit.
	raw := rawTable(
		[]string{"Pb"},
		[][]string{{"<3"}, {"12.0"}, {"< 7.5"}, {"8.1"}},
	)

	table, limits, _ := dataset.DetectLOD(raw)

	lod, ok := limits.Get("Pb")
	require.True(t, ok)
	require.Equal(t, 7.5, lod)
	require.Equal(t, 2, table.MissingCount("Pb"))
}

func TestDetectLODOptionalWhitespace(t *testing.T) {
	raw := rawTable([]string{"Au"}, [][]string{{"< 0.005"}, {"0.01"}})

	_, limits, _ := dataset.DetectLOD(raw)

	lod, ok := limits.Get("Au")
	require.True(t, ok)
	require.Equal(t, 0.005, lod)
}

func TestDetectLODNullTokensAndWarnings(t *testing.T) {
	raw := rawTable(
		[]string{"Cu", "ID"},
		[][]string{
			{"", "M001"},
			{"null", "M002"},
			{"NaN", "M003"},
			{"10.0", "M004"},
		},
	)

	table, limits, warnings := dataset.DetectLOD(raw)

	// No "<" marker anywhere: no limits recorded.
	require.Equal(t, 0, limits.Len())

	// Null tokens become missing silently.
	require.Equal(t, 3, table.MissingCount("Cu"))

	// Text that is neither numeric, null, nor censored is reported.
	require.Len(t, warnings, 4)
	require.Equal(t, "ID", warnings[0].Column)
	require.Equal(t, "M001", warnings[0].Text)
	require.Equal(t, 4, table.MissingCount("ID"))
}

func TestDetectLODUntouchedColumn(t *testing.T) {
	raw := rawTable(
		[]string{"Fe"},
		[][]string{{"1.5"}, {"2.5"}, {"3.5"}},
	)

	table, limits, warnings := dataset.DetectLOD(raw)
	require.Empty(t, warnings)
	require.Equal(t, 0, limits.Len())
	require.Equal(t, []float64{1.5, 2.5, 3.5}, table.Column("Fe").Values)
}

func TestExtractCoordinates(t *testing.T) {
	table := dataset.NewTable()
	table.AddColumn("UTM_E", []float64{300000, 300100})
	table.AddColumn("Cu", []float64{10, 20})
	table.AddColumn("utm_n", []float64{6200000, 6200100})

	geo, coords := dataset.ExtractCoordinates(table)

	require.Equal(t, []string{"Cu"}, geo.Names())
	require.Equal(t, []string{"UTM_E", "utm_n"}, coords.Names())
	require.Equal(t, 2, coords.NumRows())
}

func TestExtractCoordinatesTooFew(t *testing.T) {
	table := dataset.NewTable()
	table.AddColumn("EASTING", []float64{1, 2})
	table.AddColumn("Cu", []float64{10, 20})

	geo, coords := dataset.ExtractCoordinates(table)

	// A lone coordinate column yields an empty coordinate table and is not
	// an element either.
	require.Equal(t, 0, coords.NumColumns())
	require.Equal(t, []string{"Cu"}, geo.Names())
}

func TestExtractCoordinatesNone(t *testing.T) {
	table := dataset.NewTable()
	table.AddColumn("Cu", []float64{10, 20})
	table.AddColumn("Zn", []float64{30, 40})

	geo, coords := dataset.ExtractCoordinates(table)
	require.Equal(t, 0, coords.NumColumns())
	require.Equal(t, []string{"Cu", "Zn"}, geo.Names())
}
