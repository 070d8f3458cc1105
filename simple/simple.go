// Package simple implements truncated-normal substitution of censored values.
package simple

import (
	"math"
	"strconv"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sartorproj/golod/dataset"
	"github.com/sartorproj/golod/stats"
)

// Options holds configuration for simple substitution.
type Options struct {
	Center stats.Center // Center variant: sqrt2 (LOD/sqrt(2)) or div2 (LOD/2)
	Seed   uint64       // Seed for the pseudo-random source (default: 42)
}

// DefaultOptions returns the default simple substitution configuration.
func DefaultOptions() *Options {
	return &Options{
		Center: stats.CenterSqrt2,
		Seed:   42,
	}
}

// Record summarizes the replacements made in one column.
type Record struct {
	Column       string
	Replaced     int
	LOD          float64
	TargetMean   float64
	AchievedMean float64
	MeanDevPct   float64 // |achieved-target|/target as a percentage
	Min          float64
	Max          float64
	Std          float64
	Center       string // variant tag: "sqrt2" or "div2"
}

// Log is the ordered sequence of per-column replacement records.
type Log struct {
	Records []Record
}

// Impute fills the missing cells of every column with a recorded detection
// limit using truncated-normal draws.
//
// For each column with limit L, draws come from N(C, 0.15*C) with
// C = L/sqrt(2) or L/2, clipped to [0.001, 0.99*L]. A single rescale by
// C/mean(draws) then forces the realized mean back to C, compensating the
// clipping bias, and the draws are re-clipped. Residual deviation from the
// re-clip is reported in the log but not corrected a second time.
//
// The input table is never mutated. Draws are reproducible for a given seed
// and limit-mapping order.
func Impute(t *dataset.Table, limits *dataset.Limits, opts *Options) (*dataset.Table, *Log) {
	if opts == nil {
		opts = DefaultOptions()
	}

	result := t.Copy()
	log := &Log{}
	src := rand.NewSource(opts.Seed)

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

		center := opts.Center.Value(lod)
		lo, hi := stats.ImputationRange(lod)
		dist := distuv.Normal{Mu: center, Sigma: 0.15 * center, Src: src}

		draws := make([]float64, len(rows))
		sum := 0.0
		for i := range draws {
			draws[i] = stats.Clip(dist.Rand(), lo, hi)
			sum += draws[i]
		}

		// Rescale so the realized mean lands exactly on the center, then
		// re-clip. The re-clip can leave a small residual bias; it is
		// reported, not corrected again.
		factor := center / (sum / float64(len(draws)))
		for i := range draws {
			draws[i] = stats.Clip(draws[i]*factor, lo, hi)
		}

		for i, row := range rows {
			col.Values[row] = draws[i]
		}

		d := stats.Describe(draws)
		log.Records = append(log.Records, Record{
			Column:       name,
			Replaced:     len(rows),
			LOD:          lod,
			TargetMean:   center,
			AchievedMean: d.Mean,
			MeanDevPct:   math.Abs(d.Mean-center) / center * 100,
			Min:          d.Min,
			Max:          d.Max,
			Std:          d.Std,
			Center:       opts.Center.String(),
		})
	}

	return result, log
}

// Header returns the log column names.
func (l *Log) Header() []string {
	return []string{
		"column", "n_replaced", "lod", "target_mean", "achieved_mean",
		"mean_deviation_pct", "min", "max", "std", "center",
	}
}

// Rows returns the log records as strings, one row per record.
func (l *Log) Rows() [][]string {
	rows := make([][]string, len(l.Records))
	for i, r := range l.Records {
		rows[i] = []string{
			r.Column,
			strconv.Itoa(r.Replaced),
			formatFloat(r.LOD),
			formatFloat(r.TargetMean),
			formatFloat(r.AchievedMean),
			formatFloat(r.MeanDevPct),
			formatFloat(r.Min),
			formatFloat(r.Max),
			formatFloat(r.Std),
			r.Center,
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
