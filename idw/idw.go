// Package idw implements spatial inverse-distance-weighted imputation of
// censored values.
package idw

import (
	"errors"
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats"

	"github.com/sartorproj/golod/dataset"
	"github.com/sartorproj/golod/stats"
)

// Validation errors.
var (
	// ErrNoCoordinates is returned when the coordinate table is empty or has
	// fewer than two columns.
	ErrNoCoordinates = errors.New("idw: at least 2 coordinate columns are required for spatial interpolation")
	// ErrCoordinateMismatch is returned when the coordinate table is not
	// row-aligned with the measurement table.
	ErrCoordinateMismatch = errors.New("idw: coordinate table row count does not match measurement table")
)

// minDistance floors pairwise distances to avoid division by zero for
// coincident sample locations.
const minDistance = 1e-10

// Options holds configuration for IDW imputation.
type Options struct {
	Power        float64      // Distance weighting exponent (default: 2.0)
	MaxDistance  float64      // Maximum neighbor search distance; <= 0 means unbounded
	MinNeighbors int          // Minimum valid neighbors required (default: 3)
	Center       stats.Center // Center variant for the quadratic shape and fallback (default: div2)
}

// DefaultOptions returns the default IDW configuration.
func DefaultOptions() *Options {
	return &Options{
		Power:        2.0,
		MaxDistance:  0,
		MinNeighbors: 3,
		Center:       stats.CenterDiv2,
	}
}

// Record describes the imputation of one cell.
type Record struct {
	Row          int
	Column       string
	Method       string // "idw", "fallback", or "fallback_distance"
	Neighbors    int
	MeanDistance float64
	Interpolated float64 // raw IDW value before shaping
	W            float64 // normalized weight in [0, 1]
	Value        float64 // final value written to the cell
	LOD          float64
	C            float64
	A            float64
	B            float64
}

// Log is the ordered sequence of per-cell imputation records.
type Log struct {
	Records []Record
}

// Impute fills censored cells by interpolating from spatially weighted
// neighbors and reshaping the interpolation through a quadratic curve
// bounded by the detection limit.
//
// For a column with limit L and center C the shape is V(w) = A*w^2 + B*w
// with A = 2L-4C and B = 4C-L, so V(0) = 0 and V(1) = L. The IDW value of a
// cell is normalized against the column's observed range to obtain w.
//
// Cells within a column are filled in ascending row order, and a cell filled
// earlier in the pass is a valid neighbor for later cells of the same
// column. This sequential dependency is part of the method's semantics.
// When fewer than MinNeighbors valid neighbors exist (optionally after the
// MaxDistance filter) the cell receives the center value C directly.
func Impute(t *dataset.Table, coords *dataset.Table, limits *dataset.Limits, opts *Options) (*dataset.Table, *Log, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if coords == nil || coords.NumColumns() < 2 {
		return nil, nil, ErrNoCoordinates
	}
	if coords.NumRows() != t.NumRows() {
		return nil, nil, ErrCoordinateMismatch
	}

	dist := distanceMatrix(coords)
	result := t.Copy()
	log := &Log{}

	for _, name := range limits.Names() {
		col := result.Column(name)
		if col == nil {
			continue
		}
		lod, _ := limits.Get(name)

		missing := col.MissingRows()
		observed := col.Observed()
		if len(observed) == 0 {
			continue
		}

		// Normalization range is fixed from the values observed before any
		// fill in this column.
		d := stats.Describe(observed)
		rng := d.Max - d.Min
		if rng == 0 {
			rng = d.Max
			if rng == 0 {
				rng = 1
			}
		}

		center := opts.Center.Value(lod)
		a := 2*lod - 4*center
		b := 4*center - lod
		lo, hi := stats.ImputationRange(lod)

		for _, row := range missing {
			neighbors, distances := validNeighbors(col, dist[row])

			if len(neighbors) < opts.MinNeighbors {
				col.Values[row] = center
				log.Records = append(log.Records, Record{
					Row: row, Column: name, Method: "fallback",
					Value: center, LOD: lod, C: center, A: a, B: b,
				})
				continue
			}

			if opts.MaxDistance > 0 {
				neighbors, distances = filterByDistance(neighbors, distances, opts.MaxDistance)
				if len(neighbors) < opts.MinNeighbors {
					col.Values[row] = center
					log.Records = append(log.Records, Record{
						Row: row, Column: name, Method: "fallback_distance",
						Value: center, LOD: lod, C: center, A: a, B: b,
					})
					continue
				}
			}

			raw, meanDist := interpolate(col, neighbors, distances, opts.Power)
			w := stats.Clip((raw-d.Min)/rng, 0, 1)
			v := stats.Clip(a*w*w+b*w, lo, hi)
			col.Values[row] = v

			log.Records = append(log.Records, Record{
				Row: row, Column: name, Method: "idw",
				Neighbors:    len(neighbors),
				MeanDistance: meanDist,
				Interpolated: raw,
				W:            w,
				Value:        v,
				LOD:          lod, C: center, A: a, B: b,
			})
		}
	}

	return result, log, nil
}

// distanceMatrix computes pairwise Euclidean distances from the first two
// coordinate columns.
func distanceMatrix(coords *dataset.Table) [][]float64 {
	east := coords.Columns[0].Values
	north := coords.Columns[1].Values
	n := len(east)

	dist := make([][]float64, n)
	for i := 0; i < n; i++ {
		dist[i] = make([]float64, n)
		for j := 0; j < i; j++ {
			d := floats.Distance([]float64{east[i], north[i]}, []float64{east[j], north[j]}, 2)
			dist[i][j] = d
			dist[j][i] = d
		}
	}
	return dist
}

// validNeighbors returns the row indices of currently observed cells in the
// working column, with their distances from the target row. Cells filled
// earlier in this pass count as observed.
func validNeighbors(col *dataset.Column, distRow []float64) (rows []int, distances []float64) {
	for i, v := range col.Values {
		if !dataset.IsMissing(v) {
			rows = append(rows, i)
			distances = append(distances, distRow[i])
		}
	}
	return rows, distances
}

// filterByDistance keeps neighbors within maxDistance.
func filterByDistance(rows []int, distances []float64, maxDistance float64) ([]int, []float64) {
	var outRows []int
	var outDist []float64
	for i, d := range distances {
		if d <= maxDistance {
			outRows = append(outRows, rows[i])
			outDist = append(outDist, d)
		}
	}
	return outRows, outDist
}

// interpolate computes the inverse-distance-weighted value over the
// neighbors and the mean neighbor distance. Distances are floored before
// both the weights and the mean, so coincident locations report the floor.
func interpolate(col *dataset.Column, rows []int, distances []float64, power float64) (value, meanDist float64) {
	weights := make([]float64, len(rows))
	wsum := 0.0
	dsum := 0.0
	for i, d := range distances {
		if d < minDistance {
			d = minDistance
		}
		w := 1 / math.Pow(d, power)
		weights[i] = w
		wsum += w
		dsum += d
	}

	for i, row := range rows {
		value += weights[i] / wsum * col.Values[row]
	}
	return value, dsum / float64(len(rows))
}

// Header returns the log column names.
func (l *Log) Header() []string {
	return []string{
		"row", "column", "method", "n_neighbors", "mean_distance",
		"interpolated", "w", "value", "lod", "c", "a", "b",
	}
}

// Rows returns the log records as strings, one row per record.
func (l *Log) Rows() [][]string {
	rows := make([][]string, len(l.Records))
	for i, r := range l.Records {
		rows[i] = []string{
			strconv.Itoa(r.Row),
			r.Column,
			r.Method,
			strconv.Itoa(r.Neighbors),
			formatFloat(r.MeanDistance),
			formatFloat(r.Interpolated),
			formatFloat(r.W),
			formatFloat(r.Value),
			formatFloat(r.LOD),
			formatFloat(r.C),
			formatFloat(r.A),
			formatFloat(r.B),
		}
	}
	return rows
}

// Len returns the number of log records.
func (l *Log) Len() int {
	return len(l.Records)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
