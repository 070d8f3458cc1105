package stats

import (
	"fmt"
	"math"
	"strings"
)

// Center selects the central replacement value derived from a detection
// limit L.
type Center int

const (
	// CenterSqrt2 places the center at L/sqrt(2).
	CenterSqrt2 Center = iota
	// CenterDiv2 places the center at L/2.
	CenterDiv2
)

// String returns the textual tag used in logs and on the CLI.
func (c Center) String() string {
	switch c {
	case CenterSqrt2:
		return "sqrt2"
	case CenterDiv2:
		return "div2"
	}
	return "unknown"
}

// ParseCenter parses a center variant tag ("sqrt2" or "div2"). Matching is
// case-insensitive.
func ParseCenter(s string) (Center, error) {
	switch strings.ToLower(s) {
	case "sqrt2":
		return CenterSqrt2, nil
	case "div2":
		return CenterDiv2, nil
	}
	return 0, fmt.Errorf("unrecognized center variant %q (options: sqrt2, div2)", s)
}

// Value returns the center value for the given detection limit.
func (c Center) Value(lod float64) float64 {
	if c == CenterDiv2 {
		return lod / 2
	}
	return lod / math.Sqrt2
}

// Clip bounds v to the closed interval [lo, hi].
func Clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ImputationRange returns the canonical range for imputed values under a
// detection limit: [0.001, 0.99*lod]. Values are kept strictly positive and
// strictly below the limit.
func ImputationRange(lod float64) (lo, hi float64) {
	return 0.001, 0.99 * lod
}
