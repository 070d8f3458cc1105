package dataset

import (
	"regexp"
	"strconv"
	"strings"
)

// censoredPattern matches a "below detection limit" cell: a '<' followed by
// optional whitespace and a positive decimal number.
var censoredPattern = regexp.MustCompile(`^<\s*\d+(\.\d+)?$`)

// ParseWarning reports a cell whose text is neither numeric, a missing
// token, nor a censored marker. Such cells become missing in the output
// table; callers decide whether that is acceptable for their data.
type ParseWarning struct {
	Column string
	Row    int
	Text   string
}

// DetectLOD converts a raw table to a numeric table and builds the
// detection-limit mapping.
//
// For every column it tests each cell against the "<value" pattern. If any
// cell matches, the column's limit is recorded as the maximum parsed value
// across matches (handles inconsistent markers within one column) and every
// matched cell becomes missing. The remaining cells are parsed as numbers;
// null tokens become missing silently, anything else unparseable becomes
// missing with a ParseWarning.
func DetectLOD(raw *Raw) (*Table, *Limits, []ParseWarning) {
	table := NewTable()
	limits := NewLimits()
	var warnings []ParseWarning

	for j, name := range raw.Header {
		values := make([]float64, len(raw.Records))
		limit := 0.0
		censored := false

		for i, record := range raw.Records {
			cell := ""
			if j < len(record) {
				cell = record[j]
			}

			switch {
			case isNullToken(cell):
				values[i] = Missing
			case censoredPattern.MatchString(cell):
				v, err := strconv.ParseFloat(strings.TrimSpace(cell[1:]), 64)
				if err == nil {
					if !censored || v > limit {
						limit = v
					}
					censored = true
				}
				values[i] = Missing
			default:
				v, err := strconv.ParseFloat(cell, 64)
				if err != nil {
					values[i] = Missing
					warnings = append(warnings, ParseWarning{Column: name, Row: i, Text: cell})
					continue
				}
				values[i] = v
			}
		}

		if censored {
			limits.Set(name, limit)
		}
		table.AddColumn(name, values)
	}

	return table, limits, warnings
}

// coordinateNames are the recognized spatial coordinate column names.
var coordinateNames = map[string]bool{
	"UTM_E":    true,
	"UTM_N":    true,
	"EASTING":  true,
	"NORTHING": true,
}

// ExtractCoordinates splits a table into a measurement sub-table and a
// spatial coordinate sub-table based on column names. Matching is
// case-insensitive against {UTM_E, UTM_N, EASTING, NORTHING}. If fewer than
// two coordinate columns are found, the coordinate table is empty and
// spatial methods must reject it. A lone coordinate-like column is still
// removed from the measurement table; it is a coordinate, not an element.
func ExtractCoordinates(t *Table) (geo *Table, coords *Table) {
	geo = NewTable()
	coords = NewTable()

	for _, c := range t.Columns {
		values := make([]float64, len(c.Values))
		copy(values, c.Values)
		if coordinateNames[strings.ToUpper(c.Name)] {
			coords.AddColumn(c.Name, values)
		} else {
			geo.AddColumn(c.Name, values)
		}
	}

	if coords.NumColumns() < 2 {
		coords = NewTable()
	}
	return geo, coords
}
