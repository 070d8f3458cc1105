// Package golod provides imputation of left-censored geochemical data.
//
// GoLOD replaces measurements reported only as "below a detection limit"
// (for example "<5") with statistically defensible numeric estimates while
// preserving the structure of the dataset for downstream compositional
// analysis. It implements the substitution methods commonly used for
// left-censored concentration data.
//
// # Features
//
//   - Automatic detection of "<value" notation and per-column detection limits
//   - Simple truncated-normal substitution with exact mean correction
//   - Multiplicative replacement (constant fraction of the limit)
//   - Bias-corrected β-substitution (Ganser & Hewett, 2010)
//   - Spatial inverse-distance-weighted interpolation with a quadratic
//     shape function bounded by the detection limit
//   - Log-ratio EM imputation for compositional data
//     (Palarea-Albaladejo & Martín-Fernández, 2015)
//
// # Quick Start
//
// Detect limits and impute with β-substitution:
//
//	raw, _ := dataset.LoadCSV("samples.csv", nil)
//	table, limits, _ := dataset.DetectLOD(raw)
//	geo, coords := dataset.ExtractCoordinates(table)
//	result, log, _ := impute.Apply(geo, limits, impute.Beta, coords, nil)
//
// Use the spatial method when coordinates are available:
//
//	opts := impute.DefaultOptions()
//	opts.IDW.Power = 2.0
//	result, log, _ := impute.Apply(geo, limits, impute.IDW, coords, opts)
//
// # Packages
//
// The library is organized into the following packages:
//
//   - dataset: Tabular data structures, CSV loading, LOD detection,
//     coordinate extraction
//   - stats: Statistical helpers shared by the imputation engines
//   - simple: Truncated-normal substitution
//   - multrepl: Multiplicative replacement
//   - beta: β-substitution
//   - idw: Spatial inverse-distance-weighted imputation
//   - lrem: Log-ratio EM imputation
//   - impute: Unified method dispatch
//   - session: Organized output directories for imputation runs
//
// # References
//
//   - Ganser, G.H., & Hewett, P. (2010). An Accurate Substitution Method for
//     Analyzing Censored Data. J. Occup. Environ. Hyg., 7:4, 233-244
//   - Palarea-Albaladejo, J., & Martín-Fernández, J.A. (2015). zCompositions:
//     R package for multivariate imputation of left-censored data under a
//     compositional approach. Chemom. Intell. Lab. Syst., 143, 85-96
package golod
