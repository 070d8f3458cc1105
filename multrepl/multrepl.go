// Package multrepl implements multiplicative replacement of censored values.
package multrepl

import (
	"errors"
	"strconv"

	"github.com/sartorproj/golod/dataset"
)

// ErrBadDelta is returned when the replacement fraction is outside (0, 1).
var ErrBadDelta = errors.New("multrepl: delta must lie in the open interval (0, 1)")

// Options holds configuration for multiplicative replacement.
type Options struct {
	Delta float64 // Fraction of the detection limit (default: 0.65)
}

// DefaultOptions returns the default multiplicative replacement configuration.
func DefaultOptions() *Options {
	return &Options{Delta: 0.65}
}

// Record summarizes the replacements made in one column.
type Record struct {
	Column   string
	Replaced int
	LOD      float64
	Delta    float64
	Value    float64 // the constant delta*LOD written to every censored cell
}

// Log is the ordered sequence of per-column replacement records.
type Log struct {
	Records []Record
}

// Impute fills every censored cell of a column with the constant delta*LOD.
// This is the standard multiplicative replacement used in compositional
// data analysis; typical delta values lie between 0.5 and 0.8.
func Impute(t *dataset.Table, limits *dataset.Limits, opts *Options) (*dataset.Table, *Log, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Delta <= 0 || opts.Delta >= 1 {
		return nil, nil, ErrBadDelta
	}

	result := t.Copy()
	log := &Log{}

	for _, name := range limits.Names() {
		col := result.Column(name)
		if col == nil {
			continue
		}
		lod, _ := limits.Get(name)

		rows := col.MissingRows()
		if len(rows) == 0 {
			continue
		}

		value := opts.Delta * lod
		for _, row := range rows {
			col.Values[row] = value
		}

		log.Records = append(log.Records, Record{
			Column:   name,
			Replaced: len(rows),
			LOD:      lod,
			Delta:    opts.Delta,
			Value:    value,
		})
	}

	return result, log, nil
}

// Header returns the log column names.
func (l *Log) Header() []string {
	return []string{"column", "n_replaced", "lod", "delta", "value"}
}

// Rows returns the log records as strings, one row per record.
func (l *Log) Rows() [][]string {
	rows := make([][]string, len(l.Records))
	for i, r := range l.Records {
		rows[i] = []string{
			r.Column,
			strconv.Itoa(r.Replaced),
			strconv.FormatFloat(r.LOD, 'g', -1, 64),
			strconv.FormatFloat(r.Delta, 'g', -1, 64),
			strconv.FormatFloat(r.Value, 'g', -1, 64),
		}
	}
	return rows
}

// Len returns the number of log records.
func (l *Log) Len() int {
	return len(l.Records)
}
