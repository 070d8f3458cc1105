// Package dataset provides tabular data structures for geochemical samples.
package dataset

import (
	"errors"
	"math"
)

// Missing is the in-table marker for a censored or absent measurement.
var Missing = math.NaN()

// IsMissing reports whether a cell holds the missing marker.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// Column is a named ordered vector of measurements. Missing cells are NaN.
type Column struct {
	Name   string
	Values []float64
}

// Table is an ordered collection of named numeric columns (elements) over
// ordered rows (samples). All columns have the same length.
type Table struct {
	Columns []Column
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{}
}

// AddColumn appends a column to the table.
func (t *Table) AddColumn(name string, values []float64) error {
	if len(t.Columns) > 0 && len(values) != t.NumRows() {
		return errors.New("column length does not match table row count")
	}
	t.Columns = append(t.Columns, Column{Name: name, Values: values})
	return nil
}

// NumRows returns the number of rows (samples) in the table.
func (t *Table) NumRows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Values)
}

// NumColumns returns the number of columns (elements) in the table.
func (t *Table) NumColumns() int {
	return len(t.Columns)
}

// Names returns the column names in table order.
func (t *Table) Names() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the column with the given name, or nil if absent.
func (t *Table) Column(name string) *Column {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i]
		}
	}
	return nil
}

// HasColumn reports whether a column with the given name exists.
func (t *Table) HasColumn(name string) bool {
	return t.Column(name) != nil
}

// Copy creates a deep copy of the table.
func (t *Table) Copy() *Table {
	out := &Table{Columns: make([]Column, len(t.Columns))}
	for i, c := range t.Columns {
		values := make([]float64, len(c.Values))
		copy(values, c.Values)
		out.Columns[i] = Column{Name: c.Name, Values: values}
	}
	return out
}

// MissingCount returns the number of missing cells in the named column.
// A column that does not exist has zero missing cells.
func (t *Table) MissingCount(name string) int {
	col := t.Column(name)
	if col == nil {
		return 0
	}
	n := 0
	for _, v := range col.Values {
		if IsMissing(v) {
			n++
		}
	}
	return n
}

// Observed returns the non-missing values of a column in row order.
func (c *Column) Observed() []float64 {
	out := make([]float64, 0, len(c.Values))
	for _, v := range c.Values {
		if !IsMissing(v) {
			out = append(out, v)
		}
	}
	return out
}

// MissingRows returns the row indices of missing cells in ascending order.
func (c *Column) MissingRows() []int {
	var rows []int
	for i, v := range c.Values {
		if IsMissing(v) {
			rows = append(rows, i)
		}
	}
	return rows
}

// Limits maps element column names to positive detection limits, preserving
// insertion order. Engines process columns in this order, which keeps
// pseudo-random draws and log records reproducible across runs.
type Limits struct {
	names  []string
	values map[string]float64
}

// NewLimits creates an empty limit mapping.
func NewLimits() *Limits {
	return &Limits{values: make(map[string]float64)}
}

// Set records the detection limit for a column. Setting an existing column
// replaces its limit without changing its position.
func (l *Limits) Set(name string, lod float64) {
	if l.values == nil {
		l.values = make(map[string]float64)
	}
	if _, ok := l.values[name]; !ok {
		l.names = append(l.names, name)
	}
	l.values[name] = lod
}

// Get returns the detection limit for a column.
func (l *Limits) Get(name string) (float64, bool) {
	v, ok := l.values[name]
	return v, ok
}

// Names returns the column names in insertion order.
func (l *Limits) Names() []string {
	out := make([]string, len(l.names))
	copy(out, l.names)
	return out
}

// Len returns the number of columns with a recorded limit.
func (l *Limits) Len() int {
	return len(l.names)
}
