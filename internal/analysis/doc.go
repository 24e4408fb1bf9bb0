// Package analysis orchestrates a full report run.
//
// A Runner loads the consumption and prevalence CSV files, cleans both
// through the dataset pipelines, fits the two least-squares models, and
// writes the CSV summaries, the Excel workbook with charts, and the
// plain-text summary table. Every log record of a run carries a unique
// run_id attribute.
//
// The run is strictly sequential and fail-fast: the first error from any
// stage aborts the run and is returned to the caller.
package analysis
