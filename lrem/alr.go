package lrem

import "math"

// alrTransform maps each composition row to additive log-ratio coordinates
// using the last column as the reference denominator. Components are
// floored at a small positive value before taking logs.
func alrTransform(x [][]float64) [][]float64 {
	n := len(x)
	d := len(x[0])

	y := make([][]float64, n)
	for i := 0; i < n; i++ {
		ref := math.Max(x[i][d-1], small)
		y[i] = make([]float64, d-1)
		for j := 0; j < d-1; j++ {
			y[i][j] = math.Log(math.Max(x[i][j], small) / ref)
		}
	}
	return y
}

// alrInverse maps alr coordinates back to measurement space by scaling each
// exponentiated coordinate with the row's reference component. Coordinates
// of observed cells round-trip exactly; the reference column passes through
// unchanged.
func alrInverse(y [][]float64, x [][]float64) [][]float64 {
	n := len(y)
	d := len(y[0]) + 1

	out := make([][]float64, n)
	for i := 0; i < n; i++ {
		ref := math.Max(x[i][d-1], small)
		out[i] = make([]float64, d)
		for j, v := range y[i] {
			out[i][j] = math.Exp(v) * ref
		}
		out[i][d-1] = x[i][d-1]
	}
	return out
}
