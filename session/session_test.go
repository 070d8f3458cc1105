package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/sartorproj/golod/dataset"
	"github.com/sartorproj/golod/session"
)

func TestNewManagerLayout(t *testing.T) {
	base := t.TempDir()

	m, err := session.NewManager(base)
	require.NoError(t, err)
	require.Equal(t, base, m.BaseDir)

	for _, dir := range []string{
		"data/raw", "data/processed", "data/logs",
		"cache/test_data", "cache/temp", "output",
	} {
		info, err := os.Stat(filepath.Join(base, dir))
		require.NoError(t, err, dir)
		require.True(t, info.IsDir(), dir)
	}

	require.Equal(t, filepath.Join(base, "data", "processed"), m.ProcessedDir())
	require.Equal(t, filepath.Join(base, "data", "logs"), m.LogsDir())
	require.Equal(t, filepath.Join(base, "cache", "temp"), m.CacheDir("temp"))
}

type fakeLog struct{}

func (fakeLog) Header() []string { return []string{"column", "n"} }
func (fakeLog) Rows() [][]string { return [][]string{{"Cu", "3"}} }
func (fakeLog) Len() int         { return 1 }

func TestRunArtifacts(t *testing.T) {
	m, err := session.NewManager(t.TempDir())
	require.NoError(t, err)

	run, err := m.NewRun("simple")
	require.NoError(t, err)
	require.NotEmpty(t, run.ID)
	require.Equal(t, "simple", run.Method)
	require.DirExists(t, run.Dir)

	table := &dataset.Table{}
	table.AddColumn("Cu", []float64{1.5, 2.5})

	tablePath, err := run.SaveTable(table, "imputed.csv")
	require.NoError(t, err)
	require.FileExists(t, tablePath)

	logPath, err := run.SaveLog(fakeLog{}, "imputation_log.csv")
	require.NoError(t, err)

	b, err := os.ReadFile(logPath)
	require.NoError(t, err)
	require.Equal(t, "column,n\nCu,3\n", string(b))

	require.NoError(t, run.WriteManifest())

	mb, err := os.ReadFile(filepath.Join(run.Dir, "manifest.yaml"))
	require.NoError(t, err)

	var loaded session.Run
	require.NoError(t, yaml.Unmarshal(mb, &loaded))
	require.Equal(t, run.ID, loaded.ID)
	require.Equal(t, "simple", loaded.Method)
	require.Equal(t, []string{"imputed.csv", "imputation_log.csv"}, loaded.Files)
}
