// Package regression fits ordinary least squares lines over cleaned
// pipeline tables and reports the usual inference quantities: slope and
// intercept with standard errors, the two-sided p-value for a zero slope,
// R², fitted values and residuals. The math delegates to gonum.
package regression
