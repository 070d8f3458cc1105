package lrem

import "gonum.org/v1/gonum/mat"

// pseudoInverse computes the Moore-Penrose pseudo-inverse of a via SVD.
// Singular values below a scale-relative tolerance are treated as zero, so
// singular covariance blocks still produce a usable inverse. The second
// return value is false when the factorization itself fails.
func pseudoInverse(a *mat.Dense) (*mat.Dense, bool) {
	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, false
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	s := svd.Values(nil)

	rows, cols := a.Dims()
	dim := rows
	if cols > dim {
		dim = cols
	}
	maxS := 0.0
	for _, sv := range s {
		if sv > maxS {
			maxS = sv
		}
	}
	tol := 1e-15 * float64(dim) * maxS

	inv := mat.NewDense(len(s), len(s), nil)
	for i, sv := range s {
		if sv > tol {
			inv.Set(i, i, 1/sv)
		}
	}

	var tmp, out mat.Dense
	tmp.Mul(&v, inv)
	out.Mul(&tmp, u.T())
	return &out, true
}
