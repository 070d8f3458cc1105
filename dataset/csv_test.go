package dataset_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sartorproj/golod/dataset"
)

func TestLoadCSVFromReader(t *testing.T) {
	csv := " Cu , Zn\n10.5,100\n<5,150\n"

	raw, err := dataset.LoadCSVFromReader(strings.NewReader(csv), nil)
	require.NoError(t, err)

	// Column names are trimmed of surrounding whitespace.
	require.Equal(t, []string{"Cu", "Zn"}, raw.Header)
	require.Equal(t, 2, raw.NumRows())
	require.Equal(t, "<5", raw.Records[1][0])
}

func TestLoadCSVNoHeader(t *testing.T) {
	opts := dataset.DefaultCSVOptions()
	opts.HasHeader = false

	raw, err := dataset.LoadCSVFromReader(strings.NewReader("1,2\n3,4\n"), opts)
	require.NoError(t, err)
	require.Equal(t, []string{"col1", "col2"}, raw.Header)
	require.Equal(t, 2, raw.NumRows())
}

func TestLoadCSVSkipRows(t *testing.T) {
	opts := dataset.DefaultCSVOptions()
	opts.SkipRows = 1

	raw, err := dataset.LoadCSVFromReader(strings.NewReader("junk line\nCu\n1.5\n"), opts)
	require.NoError(t, err)
	require.Equal(t, []string{"Cu"}, raw.Header)
	require.Equal(t, 1, raw.NumRows())
}

func TestLoadCSVEmpty(t *testing.T) {
	_, err := dataset.LoadCSVFromReader(strings.NewReader("Cu,Zn\n"), nil)
	require.Error(t, err)
}

func TestWriteCSVRoundTrip(t *testing.T) {
	table := dataset.NewTable()
	table.AddColumn("Cu", []float64{10.5, dataset.Missing, 20.25})
	table.AddColumn("Zn", []float64{100, 150, dataset.Missing})

	var buf bytes.Buffer
	require.NoError(t, dataset.WriteCSV(table, &buf))

	raw, err := dataset.LoadCSVFromReader(&buf, nil)
	require.NoError(t, err)

	reloaded, limits, warnings := dataset.DetectLOD(raw)
	require.Empty(t, warnings)
	require.Equal(t, 0, limits.Len())

	require.Equal(t, []string{"Cu", "Zn"}, reloaded.Names())
	require.Equal(t, 10.5, reloaded.Column("Cu").Values[0])
	require.True(t, dataset.IsMissing(reloaded.Column("Cu").Values[1]))
	require.Equal(t, 20.25, reloaded.Column("Cu").Values[2])
	require.True(t, dataset.IsMissing(reloaded.Column("Zn").Values[2]))
}
