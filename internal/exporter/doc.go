// Package exporter renders the analysis results: summary tables as CSV,
// an Excel workbook with embedded line and bar charts, and an aligned
// text summary for stdout. Exported artifacts are presentation output
// with no compatibility contract.
package exporter
