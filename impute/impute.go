// Package impute routes a unified imputation request to one of the engines.
package impute

import (
	"errors"
	"fmt"

	"github.com/sartorproj/golod/beta"
	"github.com/sartorproj/golod/dataset"
	"github.com/sartorproj/golod/idw"
	"github.com/sartorproj/golod/lrem"
	"github.com/sartorproj/golod/multrepl"
	"github.com/sartorproj/golod/simple"
)

// ErrUnknownMethod is returned when a method selector cannot be resolved.
var ErrUnknownMethod = errors.New("impute: unrecognized method (options: simple, multiplicative, beta, lrem, idw)")

// Method selects an imputation engine.
type Method int

const (
	// Simple is truncated-normal substitution with mean correction.
	Simple Method = iota
	// Multiplicative is constant delta*LOD replacement.
	Multiplicative
	// Beta is Ganser-Hewett β-substitution.
	Beta
	// LREM is log-ratio EM imputation.
	LREM
	// IDW is spatial inverse-distance-weighted imputation.
	IDW
)

// String returns the method selector tag.
func (m Method) String() string {
	switch m {
	case Simple:
		return "simple"
	case Multiplicative:
		return "multiplicative"
	case Beta:
		return "beta"
	case LREM:
		return "lrem"
	case IDW:
		return "idw"
	}
	return "unknown"
}

// ParseMethod resolves a textual method selector, as used on the CLI.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "simple":
		return Simple, nil
	case "multiplicative":
		return Multiplicative, nil
	case "beta":
		return Beta, nil
	case "lrem":
		return LREM, nil
	case "idw":
		return IDW, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

// Options bundles the method-specific option sets. Nil engine options mean
// that engine's defaults.
type Options struct {
	Simple *simple.Options
	Mult   *multrepl.Options
	IDW    *idw.Options
	LREM   *lrem.Options
}

// DefaultOptions returns defaults for every engine.
func DefaultOptions() *Options {
	return &Options{
		Simple: simple.DefaultOptions(),
		Mult:   multrepl.DefaultOptions(),
		IDW:    idw.DefaultOptions(),
		LREM:   lrem.DefaultOptions(),
	}
}

// Log is the tabular operation log every engine produces. The schema varies
// per method; Header and Rows expose it uniformly for output.
type Log interface {
	Header() []string
	Rows() [][]string
	Len() int
}

// Apply imputes the censored cells of a measurement table with the selected
// method. The coordinate table is only consulted by the spatial method,
// which rejects an empty one. The input tables are never mutated; the
// returned table has the same shape and column order as the input.
func Apply(t *dataset.Table, limits *dataset.Limits, method Method, coords *dataset.Table, opts *Options) (*dataset.Table, Log, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	switch method {
	case Simple:
		result, log := simple.Impute(t, limits, opts.Simple)
		return result, log, nil
	case Multiplicative:
		return multrepl.Impute(t, limits, opts.Mult)
	case Beta:
		result, log := beta.Impute(t, limits)
		return result, log, nil
	case LREM:
		return lrem.Impute(t, limits, opts.LREM)
	case IDW:
		return idw.Impute(t, coords, limits, opts.IDW)
	}
	return nil, nil, fmt.Errorf("%w: %d", ErrUnknownMethod, method)
}
