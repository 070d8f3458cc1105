package stats

import (
	"math"

	mstats "github.com/montanaflynn/stats"
)

// Description summarizes a set of values. Std is the population standard
// deviation.
type Description struct {
	Mean float64
	Std  float64
	Min  float64
	Max  float64
}

// Describe computes summary statistics for a set of values. An empty input
// yields NaN fields.
func Describe(values []float64) Description {
	if len(values) == 0 {
		nan := math.NaN()
		return Description{Mean: nan, Std: nan, Min: nan, Max: nan}
	}
	mean, _ := mstats.Mean(values)
	std, _ := mstats.StandardDeviation(values)
	min, _ := mstats.Min(values)
	max, _ := mstats.Max(values)
	return Description{Mean: mean, Std: std, Min: min, Max: max}
}

// Mean returns the arithmetic mean, or NaN for an empty input.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	m, _ := mstats.Mean(values)
	return m
}

// GeometricMean returns the geometric mean, or NaN for an empty input.
func GeometricMean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	gm, err := mstats.GeometricMean(values)
	if err != nil {
		return math.NaN()
	}
	return gm
}

// GSD estimates the geometric standard deviation from the arithmetic and
// geometric means of n values. When the ratio mean/gm does not exceed 1 the
// data carry no usable spread and the GSD is 1.
func GSD(mean, gm float64, n int) float64 {
	if n < 2 || gm <= 0 || mean/gm <= 1 {
		return 1.0
	}
	sy := math.Sqrt(2*float64(n)/float64(n-1)) * math.Log(mean/gm)
	return math.Exp(sy)
}
