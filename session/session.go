// Package session organizes the output files of imputation runs.
//
// A Manager owns a base directory with a fixed layout:
//
//	data/raw/        original input data
//	data/processed/  imputed results
//	data/logs/       operation logs
//	cache/test_data/ generated test datasets
//	cache/temp/      temporary files
//	output/          one timestamped folder per run
//
// Each run gets an output/YYYYMMDD_HHMMSS folder, a unique ID, and a YAML
// manifest listing the files it produced.
package session

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/sartorproj/golod/dataset"
)

// Tabular is anything that can be written as a CSV table, such as the
// operation logs the imputation engines return.
type Tabular interface {
	Header() []string
	Rows() [][]string
	Len() int
}

// Manager owns the project directory layout.
type Manager struct {
	BaseDir string
}

var layout = []string{
	"data/raw",
	"data/processed",
	"data/logs",
	"cache/test_data",
	"cache/temp",
	"output",
}

// NewManager creates a manager rooted at baseDir (the working directory
// when empty) and ensures the folder structure exists.
func NewManager(baseDir string) (*Manager, error) {
	if baseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		baseDir = wd
	}
	for _, dir := range layout {
		if err := os.MkdirAll(filepath.Join(baseDir, dir), 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return &Manager{BaseDir: baseDir}, nil
}

// ProcessedDir returns the directory for imputed results.
func (m *Manager) ProcessedDir() string {
	return filepath.Join(m.BaseDir, "data", "processed")
}

// LogsDir returns the directory for operation logs.
func (m *Manager) LogsDir() string {
	return filepath.Join(m.BaseDir, "data", "logs")
}

// CacheDir returns a cache subdirectory ("test_data" or "temp").
func (m *Manager) CacheDir(kind string) string {
	return filepath.Join(m.BaseDir, "cache", kind)
}

// Run is one imputation run with its own output folder.
type Run struct {
	ID      string    `yaml:"id"`
	Method  string    `yaml:"method"`
	Created time.Time `yaml:"created"`
	Dir     string    `yaml:"-"`
	Files   []string  `yaml:"files"`
}

// NewRun creates a timestamped output folder for a run of the given method.
func (m *Manager) NewRun(method string) (*Run, error) {
	created := time.Now()
	dir := filepath.Join(m.BaseDir, "output", created.Format("20060102_150405"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create run dir: %w", err)
	}
	return &Run{
		ID:      uuid.NewString(),
		Method:  method,
		Created: created,
		Dir:     dir,
	}, nil
}

// SaveTable writes a table as CSV into the run folder and records it in the
// manifest file list. It returns the file path.
func (r *Run) SaveTable(t *dataset.Table, name string) (string, error) {
	path := filepath.Join(r.Dir, name)
	if err := dataset.SaveCSV(t, path); err != nil {
		return "", fmt.Errorf("save table %s: %w", name, err)
	}
	r.Files = append(r.Files, name)
	return path, nil
}

// SaveLog writes an operation log as CSV into the run folder and records it
// in the manifest file list. It returns the file path.
func (r *Run) SaveLog(log Tabular, name string) (string, error) {
	path := filepath.Join(r.Dir, name)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("save log %s: %w", name, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(log.Header()); err != nil {
		return "", err
	}
	for _, row := range log.Rows() {
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	r.Files = append(r.Files, name)
	return path, nil
}

// WriteManifest writes the run's YAML manifest into its folder.
func (r *Run) WriteManifest() error {
	b, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	return os.WriteFile(filepath.Join(r.Dir, "manifest.yaml"), b, 0o644)
}
