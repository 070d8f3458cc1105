// Package lrem implements log-ratio EM imputation of censored compositional
// data.
//
// The algorithm follows Palarea-Albaladejo & Martín-Fernández (2015): the
// composition is mapped to additive log-ratio (alr) coordinates, censored
// coordinates are imputed by their conditional-normal expectation given the
// observed coordinates, and the procedure iterates to convergence with the
// detection limit acting as an upper truncation bound.
package lrem

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/sartorproj/golod/dataset"
	"github.com/sartorproj/golod/stats"
)

// Validation errors.
var (
	// ErrTooFewColumns is returned when fewer than two censored columns are
	// available for the compositional model.
	ErrTooFewColumns = errors.New("lrem: at least 2 compositional columns with detection limits are required")
	// ErrTooFewSamples is returned when the sample count does not exceed the
	// number of compositional columns.
	ErrTooFewSamples = errors.New("lrem: more samples than compositional columns are required")
	// ErrFullyCensored is returned when a column has no observed values at all.
	ErrFullyCensored = errors.New("lrem: column is completely censored")
	// ErrTooFewCompleteRows is returned when the completeObs initialization
	// has fewer than three fully observed rows to work with.
	ErrTooFewCompleteRows = errors.New("lrem: completeObs initialization requires at least 3 complete rows")
)

// Init selects the initialization of censored cells before the first
// iteration.
type Init int

const (
	// InitMultRepl fills censored cells with Frac*LOD plus a small
	// multiplicative jitter.
	InitMultRepl Init = iota
	// InitCompleteObs fills censored cells with Frac*LOD and estimates the
	// first iteration's moments from fully observed rows only.
	InitCompleteObs
)

// String returns the textual tag used in logs and on the CLI.
func (i Init) String() string {
	if i == InitCompleteObs {
		return "completeObs"
	}
	return "multRepl"
}

// ParseInit parses an initialization tag.
func ParseInit(s string) (Init, error) {
	switch s {
	case "multRepl":
		return InitMultRepl, nil
	case "completeObs", "complete_obs":
		return InitCompleteObs, nil
	}
	return 0, fmt.Errorf("unrecognized init method %q (options: multRepl, completeObs)", s)
}

// Options holds configuration for log-ratio EM imputation.
type Options struct {
	Tolerance float64 // Convergence threshold on the max relative change (default: 1e-4)
	MaxIter   int     // Iteration cap; the last iterate is returned regardless (default: 50)
	Frac      float64 // Fraction of the LOD for the initial fill (default: 0.65)
	Init      Init    // Initialization method (default: multRepl)
	Seed      uint64  // Seed for the initialization jitter (default: 42)
}

// DefaultOptions returns the default log-ratio EM configuration.
func DefaultOptions() *Options {
	return &Options{
		Tolerance: 0.0001,
		MaxIter:   50,
		Frac:      0.65,
		Init:      InitMultRepl,
		Seed:      42,
	}
}

// small floors compositional components before taking logs.
const small = 1e-10

// Impute jointly imputes the censored cells of all limit-mapped columns in
// alr coordinate space.
//
// Validation requires at least two mapped columns present in the table,
// strictly more rows than mapped columns, and no fully censored column.
// Non-convergence within MaxIter is reported in the log, not returned as an
// error; the last iterate is still the result. A table with no censored
// cells in the mapped columns is returned unchanged with a trivial log.
func Impute(t *dataset.Table, limits *dataset.Limits, opts *Options) (*dataset.Table, *Log, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	var cols []string
	for _, name := range limits.Names() {
		if t.HasColumn(name) {
			cols = append(cols, name)
		}
	}
	if len(cols) < 2 {
		return nil, nil, ErrTooFewColumns
	}

	n := t.NumRows()
	d := len(cols)
	if n <= d {
		return nil, nil, fmt.Errorf("%w: %d samples, %d columns", ErrTooFewSamples, n, d)
	}
	for _, name := range cols {
		if t.MissingCount(name) == n {
			return nil, nil, fmt.Errorf("%w: %s", ErrFullyCensored, name)
		}
	}

	lods := make([]float64, d)
	for j, name := range cols {
		lods[j], _ = limits.Get(name)
	}

	// Working matrix and censoring pattern, row-major over the mapped
	// columns in limit order. The last column is the alr reference.
	x := make([][]float64, n)
	censored := make([][]bool, n)
	totalCensored := 0
	for i := 0; i < n; i++ {
		x[i] = make([]float64, d)
		censored[i] = make([]bool, d)
		for j, name := range cols {
			v := t.Column(name).Values[i]
			x[i][j] = v
			if dataset.IsMissing(v) {
				censored[i][j] = true
				totalCensored++
			}
		}
	}

	result := t.Copy()
	if totalCensored == 0 {
		return result, trivialLog(n, d, opts), nil
	}

	if err := initialize(x, censored, lods, opts); err != nil {
		return nil, nil, err
	}

	completeRows := fullyObservedRows(censored)
	propCensored := float64(totalCensored) / float64(n*d)

	log := &Log{Summary: Summary{
		NSamples:        n,
		NVariables:      d,
		Init:            opts.Init.String(),
		Frac:            opts.Frac,
		TotalCensored:   totalCensored,
		PercentCensored: propCensored * 100,
	}}

	converged := false
	change := math.NaN()

	for iter := 1; iter <= opts.MaxIter && !converged; iter++ {
		y := alrTransform(x)

		var mu []float64
		var sigma *mat.SymDense
		if opts.Init == InitCompleteObs && iter == 1 {
			mu, sigma = moments(selectRows(y, completeRows))
		} else {
			mu, sigma = moments(y)
		}

		// Censoring deflates the sample covariance; inflate it once the
		// first imputation round has mixed in conditional values.
		if iter > 1 {
			scaleSym(sigma, 1/(1-0.5*propCensored))
		}

		imputeRows(y, x, censored, lods, mu, sigma)

		xNew := alrInverse(y, x)

		change = relativeChange(xNew, x)
		log.Iterations = append(log.Iterations, IterationRecord{
			Iteration:    iter,
			MaxRelChange: change,
			MeanImputed:  meanAt(xNew, censored),
		})
		converged = change < opts.Tolerance
		x = xNew
	}

	for j, name := range cols {
		col := result.Column(name)
		for i := 0; i < n; i++ {
			col.Values[i] = x[i][j]
		}
	}

	log.Summary.Converged = converged
	log.Summary.Iterations = len(log.Iterations)
	log.Summary.AchievedChange = change

	for j, name := range cols {
		var imputed []float64
		for i := 0; i < n; i++ {
			if censored[i][j] {
				imputed = append(imputed, x[i][j])
			}
		}
		if len(imputed) == 0 {
			continue
		}
		desc := stats.Describe(imputed)
		log.Columns = append(log.Columns, ColumnRecord{
			Column:    name,
			LOD:       lods[j],
			NCensored: len(imputed),
			Mean:      desc.Mean,
			Min:       desc.Min,
			Max:       desc.Max,
			Std:       desc.Std,
		})
	}

	return result, log, nil
}

// initialize fills censored cells before the first iteration.
func initialize(x [][]float64, censored [][]bool, lods []float64, opts *Options) error {
	switch opts.Init {
	case InitCompleteObs:
		if len(fullyObservedRows(censored)) < 3 {
			return ErrTooFewCompleteRows
		}
		for j := range lods {
			for i := range x {
				if censored[i][j] {
					x[i][j] = opts.Frac * lods[j]
				}
			}
		}
	default:
		src := rand.NewSource(opts.Seed)
		jitter := distuv.Uniform{Min: 0.95, Max: 1.05, Src: src}
		for j := range lods {
			for i := range x {
				if censored[i][j] {
					x[i][j] = opts.Frac * lods[j] * jitter.Rand()
				}
			}
		}
	}
	return nil
}

// imputeRows runs the M-step: each row with censored alr coordinates gets
// its conditional-normal expectation given the observed coordinates,
// truncated at the alr image of the detection limit.
func imputeRows(y [][]float64, x [][]float64, censored [][]bool, lods []float64, mu []float64, sigma *mat.SymDense) {
	d := len(lods)

	for i := range y {
		var obs, cens []int
		for j := 0; j < d-1; j++ {
			if censored[i][j] {
				cens = append(cens, j)
			} else {
				obs = append(obs, j)
			}
		}
		if len(cens) == 0 {
			continue
		}

		var cond []float64
		if len(obs) == 0 {
			cond = make([]float64, len(cens))
			for k, j := range cens {
				cond[k] = mu[j]
			}
		} else {
			cond = conditionalMean(y[i], mu, sigma, obs, cens)
		}

		ref := x[i][d-1]
		if ref < small {
			ref = small
		}
		for k, j := range cens {
			bound := math.Log(lods[j]/ref) * 0.99
			y[i][j] = math.Min(cond[k], bound)
		}
	}
}

// conditionalMean computes E[Y_cens | Y_obs] from the block partition of
// the covariance matrix, using a pseudo-inverse of the observed block for
// numerical stability. A failed factorization falls back to the
// unconditional mean.
func conditionalMean(row, mu []float64, sigma *mat.SymDense, obs, cens []int) []float64 {
	no := len(obs)
	nc := len(cens)

	soo := mat.NewDense(no, no, nil)
	for a, ja := range obs {
		for b, jb := range obs {
			soo.Set(a, b, sigma.At(ja, jb))
		}
	}
	sco := mat.NewDense(nc, no, nil)
	for a, ja := range cens {
		for b, jb := range obs {
			sco.Set(a, b, sigma.At(ja, jb))
		}
	}

	cond := make([]float64, nc)
	inv, ok := pseudoInverse(soo)
	if !ok {
		for k, j := range cens {
			cond[k] = mu[j]
		}
		return cond
	}

	var gain mat.Dense
	gain.Mul(sco, inv)

	diff := make([]float64, no)
	for b, jb := range obs {
		diff[b] = row[jb] - mu[jb]
	}

	for k, j := range cens {
		v := mu[j]
		for b := 0; b < no; b++ {
			v += gain.At(k, b) * diff[b]
		}
		cond[k] = v
	}
	return cond
}

// moments estimates the column means and the sample covariance matrix of
// the alr coordinates.
func moments(y [][]float64) ([]float64, *mat.SymDense) {
	n := len(y)
	p := len(y[0])

	mu := make([]float64, p)
	flat := make([]float64, 0, n*p)
	for _, row := range y {
		for j, v := range row {
			mu[j] += v
		}
		flat = append(flat, row...)
	}
	for j := range mu {
		mu[j] /= float64(n)
	}

	sigma := mat.NewSymDense(p, nil)
	stat.CovarianceMatrix(sigma, mat.NewDense(n, p, flat), nil)
	return mu, sigma
}

func scaleSym(s *mat.SymDense, factor float64) {
	p, _ := s.Dims()
	for i := 0; i < p; i++ {
		for j := i; j < p; j++ {
			s.SetSym(i, j, s.At(i, j)*factor)
		}
	}
}

func fullyObservedRows(censored [][]bool) []int {
	var rows []int
	for i, row := range censored {
		complete := true
		for _, c := range row {
			if c {
				complete = false
				break
			}
		}
		if complete {
			rows = append(rows, i)
		}
	}
	return rows
}

func selectRows(y [][]float64, rows []int) [][]float64 {
	out := make([][]float64, len(rows))
	for i, r := range rows {
		out[i] = y[r]
	}
	return out
}

// relativeChange is the maximum absolute cell change between consecutive
// iterates, normalized by the previous iterate's maximum absolute value.
func relativeChange(xNew, xOld [][]float64) float64 {
	maxDiff := 0.0
	maxOld := 0.0
	for i := range xOld {
		for j := range xOld[i] {
			if diff := math.Abs(xNew[i][j] - xOld[i][j]); diff > maxDiff {
				maxDiff = diff
			}
			if v := math.Abs(xOld[i][j]); v > maxOld {
				maxOld = v
			}
		}
	}
	return maxDiff / (maxOld + small)
}

func meanAt(x [][]float64, mask [][]bool) float64 {
	sum := 0.0
	count := 0
	for i := range x {
		for j := range x[i] {
			if mask[i][j] {
				sum += x[i][j]
				count++
			}
		}
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// Summary reports the outcome of one EM run.
type Summary struct {
	Converged       bool
	Iterations      int
	AchievedChange  float64
	NSamples        int
	NVariables      int
	Init            string
	Frac            float64
	TotalCensored   int
	PercentCensored float64
}

// IterationRecord reports the convergence progress of one iteration.
type IterationRecord struct {
	Iteration    int
	MaxRelChange float64
	MeanImputed  float64
}

// ColumnRecord reports the statistics of the imputed cells of one column.
type ColumnRecord struct {
	Column    string
	LOD       float64
	NCensored int
	Mean      float64
	Min       float64
	Max       float64
	Std       float64
}

// Log holds the run summary, the per-iteration convergence trace, and the
// per-column imputation statistics.
type Log struct {
	Summary    Summary
	Iterations []IterationRecord
	Columns    []ColumnRecord
}

func trivialLog(n, d int, opts *Options) *Log {
	return &Log{Summary: Summary{
		Converged:  true,
		NSamples:   n,
		NVariables: d,
		Init:       opts.Init.String(),
		Frac:       opts.Frac,
	}}
}

// Header returns the log column names. The run-level convergence outcome is
// repeated on every per-column row so the table stands alone as a CSV.
func (l *Log) Header() []string {
	return []string{
		"column", "lod", "n_censored", "mean_imputed", "min_imputed",
		"max_imputed", "std_imputed", "converged", "iterations", "achieved_change",
	}
}

// Rows returns the per-column records as strings, one row per record.
func (l *Log) Rows() [][]string {
	rows := make([][]string, len(l.Columns))
	for i, r := range l.Columns {
		rows[i] = []string{
			r.Column,
			formatFloat(r.LOD),
			strconv.Itoa(r.NCensored),
			formatFloat(r.Mean),
			formatFloat(r.Min),
			formatFloat(r.Max),
			formatFloat(r.Std),
			strconv.FormatBool(l.Summary.Converged),
			strconv.Itoa(l.Summary.Iterations),
			formatFloat(l.Summary.AchievedChange),
		}
	}
	return rows
}

// Len returns the number of per-column records.
func (l *Log) Len() int {
	return len(l.Columns)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
