// Package beta implements β-substitution of censored values.
package beta

import (
	"math"
	"strconv"

	"github.com/sartorproj/golod/dataset"
	"github.com/sartorproj/golod/stats"
)

// Record summarizes the substitution applied to one column.
type Record struct {
	Column          string
	NCensored       int
	PercentCensored float64
	LOD             float64
	BetaGM          float64
	BetaMean        float64
	Replacement     float64 // BetaMean * LOD, written to every censored cell
	EstimatedGM     float64 // geometric mean of the completed column
	EstimatedGSD    float64 // geometric standard deviation of the completed column
	EstimatedMean   float64 // arithmetic mean of the completed column
}

// Log is the ordered sequence of per-column substitution records.
type Log struct {
	Records []Record
}

// Impute fills censored cells with the bias-corrected constant
// BetaMean*LOD, where the β factors are the Ganser-Hewett estimators
// calibrated from the column's observed values.
//
// Columns with fewer than two observed values or no censored cells are left
// untouched. When the log-scale estimate or either β factor is degenerate
// the column falls back to a fixed LOD/sqrt(2) substitution and produces no
// record; degeneracy in one column never blocks the others.
func Impute(t *dataset.Table, limits *dataset.Limits) (*dataset.Table, *Log) {
	result := t.Copy()
	log := &Log{}

	for _, name := range limits.Names() {
		col := result.Column(name)
		if col == nil {
			continue
		}
		lod, _ := limits.Get(name)

		observed := col.Observed()
		rows := col.MissingRows()
		n := len(col.Values)
		k := len(rows)

		if len(observed) < 2 || k == 0 {
			continue
		}

		factors, ok := stats.GanserHewett(n, k, lod, observed)
		if !ok {
			fallback := lod / math.Sqrt2
			for _, row := range rows {
				col.Values[row] = fallback
			}
			continue
		}

		replacement := factors.BetaMean * lod
		for _, row := range rows {
			col.Values[row] = replacement
		}

		// Column-level estimates: the geometric mean is evaluated with the
		// BetaGM fill, the arithmetic mean with the BetaMean fill.
		gmValues := append(append([]float64{}, observed...), constant(factors.BetaGM*lod, k)...)
		meanValues := append(append([]float64{}, observed...), constant(replacement, k)...)

		gm := stats.GeometricMean(gmValues)
		mean := stats.Mean(meanValues)

		log.Records = append(log.Records, Record{
			Column:          name,
			NCensored:       k,
			PercentCensored: float64(k) / float64(n) * 100,
			LOD:             lod,
			BetaGM:          factors.BetaGM,
			BetaMean:        factors.BetaMean,
			Replacement:     replacement,
			EstimatedGM:     gm,
			EstimatedGSD:    stats.GSD(mean, gm, n),
			EstimatedMean:   mean,
		})
	}

	return result, log
}

func constant(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// Header returns the log column names.
func (l *Log) Header() []string {
	return []string{
		"column", "n_censored", "percent_censored", "lod", "beta_gm",
		"beta_mean", "replacement", "gm_estimated", "gsd_estimated", "mean_estimated",
	}
}

// Rows returns the log records as strings, one row per record.
func (l *Log) Rows() [][]string {
	rows := make([][]string, len(l.Records))
	for i, r := range l.Records {
		rows[i] = []string{
			r.Column,
			strconv.Itoa(r.NCensored),
			formatFloat(r.PercentCensored),
			formatFloat(r.LOD),
			formatFloat(r.BetaGM),
			formatFloat(r.BetaMean),
			formatFloat(r.Replacement),
			formatFloat(r.EstimatedGM),
			formatFloat(r.EstimatedGSD),
			formatFloat(r.EstimatedMean),
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
