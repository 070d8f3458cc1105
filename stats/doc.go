// Package stats provides the shared statistical utilities used by the
// imputation engines: imputation centers and value clipping, descriptive
// summaries of observed concentrations, geometric statistics, and the
// Ganser-Hewett bias-correction factors behind beta-substitution.
package stats
