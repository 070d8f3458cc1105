// Package dataset provides tabular data structures and loading utilities
// for geochemical sample data.
//
// This package includes the Table type for element measurements, the Limits
// mapping of detection limits per column, CSV loading, and the detection of
// "<value" censored-value notation.
//
// # Loading and Detection
//
// Load a CSV file and detect detection limits:
//
//	raw, err := dataset.LoadCSV("samples.csv", nil)
//	table, limits, warnings := dataset.DetectLOD(raw)
//
// Cells matching "<5" (optional space after '<') become missing, and each
// affected column records the maximum such value as its limit:
//
//	lod, ok := limits.Get("Cu")  // 5.0, true
//
// # Coordinates
//
// Split spatial coordinate columns from element columns:
//
//	geo, coords := dataset.ExtractCoordinates(table)
//
// Columns named UTM_E, UTM_N, EASTING, or NORTHING (case-insensitive) form
// the coordinate table; everything else stays in the measurement table.
//
// # Missing Values
//
// Missing cells are NaN. Use the helpers rather than comparing directly:
//
//	if dataset.IsMissing(table.Column("Cu").Values[3]) { ... }
//	n := table.MissingCount("Cu")
package dataset
