package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// BetaFactors holds the Ganser-Hewett bias-corrected substitution factors
// estimated from the observed (non-censored) values of a column.
//
// Reference: Ganser & Hewett (2010), J. Occup. Environ. Hyg., 7:4, 233-244.
type BetaFactors struct {
	N        int     // total sample count
	K        int     // censored count
	Z        float64 // inverse-normal-CDF of the censored fraction
	SHat     float64 // estimated log-scale
	BetaMean float64 // arithmetic-mean substitution factor
	BetaGM   float64 // geometric-mean substitution factor
}

// GanserHewett estimates the β-substitution factors for a column with n
// total samples, k censored cells, detection limit lod, and the observed
// values. The second return value reports whether the estimates are usable:
// a non-positive or non-finite log-scale, or either β outside the open
// interval (0, 1), makes the column fall back to a fixed substitution.
func GanserHewett(n, k int, lod float64, observed []float64) (*BetaFactors, bool) {
	norm := distuv.UnitNormal

	ybar := 0.0
	for _, v := range observed {
		ybar += math.Log(v)
	}
	ybar /= float64(len(observed))

	nf := float64(n)
	kf := float64(k)

	z := norm.Quantile(kf / nf)
	fz := norm.Prob(z) / (1 - norm.CDF(z))
	shat := (ybar - math.Log(lod)) / (fz - z)

	f := &BetaFactors{N: n, K: k, Z: z, SHat: shat}

	if shat <= 0 || math.IsInf(shat, 0) || math.IsNaN(shat) {
		return f, false
	}

	fsyz := (1 - norm.CDF(z-shat/nf)) / (1 - norm.CDF(z))

	f.BetaMean = (nf / kf) * norm.CDF(z-shat) * math.Exp(-shat*z+shat*shat/2)
	f.BetaGM = math.Exp(-(nf-kf)*nf/kf*math.Log(fsyz) - shat*z - (nf-kf)/(2*kf*nf)*shat*shat)

	if !betaUsable(f.BetaMean) || !betaUsable(f.BetaGM) {
		return f, false
	}
	return f, true
}

// betaUsable reports whether a substitution factor lies in (0, 1).
func betaUsable(b float64) bool {
	return b > 0 && b < 1 && !math.IsNaN(b) && !math.IsInf(b, 0)
}
