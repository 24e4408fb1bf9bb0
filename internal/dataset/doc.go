// Package dataset contains the cleaning pipelines for the two tobacco
// datasets the analysis consumes.
//
// The consumption pipeline turns the per-capita adult tobacco consumption
// file into year/topic totals: the combustible rollup measure is kept as
// is, noncombustible submeasures are summed, and the constant location
// columns are discarded.
//
// The prevalence pipeline turns the BRFSS smoking survey file into an
// estimated national smoker count per year. Survey rows reporting a year
// range ("2015-2016") are excluded by a strict 4-digit year check, rows
// past the DisplayOrder relevance threshold are dropped, and the smoker
// count is approximated as reported percentage times sample size. That is
// a deliberate, documented approximation of the surveyed sample, not a
// population estimate.
//
// Both pipelines are thin compositions of internal/table operations and
// fail fast on schema or parse problems.
package dataset
