package regression

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"tobaccocli/internal/errors"
	"tobaccocli/internal/table"
)

// Model holds an ordinary least squares fit of y = Intercept + Slope*x.
type Model struct {
	Slope     float64
	Intercept float64

	// Standard errors of the coefficients. NaN when the fit has no
	// residual degrees of freedom (n == 2).
	SlopeStdErr     float64
	InterceptStdErr float64

	// TStat and PValue test H0: slope == 0 (two-sided).
	TStat  float64
	PValue float64

	R2 float64
	N  int
	DF int

	x, y []float64
}

// Fit computes the least squares line through (x, y). The predictor must
// have at least two observations and nonzero variance, otherwise the
// solution is undefined and a validation error is returned.
func Fit(x, y []float64) (*Model, error) {
	if len(x) != len(y) {
		return nil, errors.NewValidationError(
			fmt.Sprintf("predictor has %d values, response has %d", len(x), len(y)), nil)
	}
	n := len(x)
	if n < 2 {
		return nil, errors.NewValidationError(
			fmt.Sprintf("regression requires at least 2 observations, got %d", n), nil)
	}

	xMean := stat.Mean(x, nil)
	var sxx float64
	for _, xi := range x {
		d := xi - xMean
		sxx += d * d
	}
	if sxx == 0 {
		return nil, errors.NewValidationError("predictor has zero variance, fit is undefined", nil)
	}

	intercept, slope := stat.LinearRegression(x, y, nil, false)

	m := &Model{
		Slope:     slope,
		Intercept: intercept,
		R2:        stat.RSquared(x, y, nil, intercept, slope),
		N:         n,
		DF:        n - 2,
		x:         append([]float64(nil), x...),
		y:         append([]float64(nil), y...),
	}

	var rss float64
	for _, r := range m.Residuals() {
		rss += r * r
	}

	if m.DF > 0 {
		s2 := rss / float64(m.DF)
		m.SlopeStdErr = math.Sqrt(s2 / sxx)
		m.InterceptStdErr = math.Sqrt(s2 * (1/float64(n) + xMean*xMean/sxx))
	} else {
		m.SlopeStdErr = math.NaN()
		m.InterceptStdErr = math.NaN()
	}

	switch {
	case m.DF <= 0:
		m.TStat = math.NaN()
		m.PValue = math.NaN()
	case m.SlopeStdErr == 0:
		// Perfect fit: zero residual variance.
		m.TStat = math.Inf(sign(slope))
		m.PValue = 0
	default:
		m.TStat = slope / m.SlopeStdErr
		t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(m.DF)}
		m.PValue = 2 * t.CDF(-math.Abs(m.TStat))
	}

	return m, nil
}

// Fitted returns the model's predicted response for each observation.
func (m *Model) Fitted() []float64 {
	out := make([]float64, m.N)
	for i, xi := range m.x {
		out[i] = m.Intercept + m.Slope*xi
	}
	return out
}

// Residuals returns observed minus fitted values.
func (m *Model) Residuals() []float64 {
	fitted := m.Fitted()
	out := make([]float64, m.N)
	for i, yi := range m.y {
		out[i] = yi - fitted[i]
	}
	return out
}

// Predict evaluates the fitted line at x.
func (m *Model) Predict(x float64) float64 {
	return m.Intercept + m.Slope*x
}

// SlopeIsSignificant reports whether the slope differs from zero at the
// given significance level (e.g. 0.05).
func (m *Model) SlopeIsSignificant(alpha float64) bool {
	return !math.IsNaN(m.PValue) && m.PValue < alpha
}

// FromTable fits a regression of the named response column on the named
// predictor column, skipping rows where either value is missing.
func FromTable(t *table.Table, xCol, yCol string) (*Model, error) {
	var x, y []float64
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		xv, ok := row.Value(xCol)
		if !ok {
			return nil, errors.NewSchemaError(fmt.Sprintf("column %q not found", xCol), nil)
		}
		yv, ok := row.Value(yCol)
		if !ok {
			return nil, errors.NewSchemaError(fmt.Sprintf("column %q not found", yCol), nil)
		}
		if !xv.Kind().Numeric() || !yv.Kind().Numeric() {
			return nil, errors.NewSchemaError(
				fmt.Sprintf("regression columns %q and %q must be numeric", xCol, yCol), nil)
		}
		if xv.IsMissing() || yv.IsMissing() {
			continue
		}
		x = append(x, xv.Float())
		y = append(y, yv.Float())
	}
	if len(x) == 0 {
		return nil, errors.NewEmptyResultError(fmt.Sprintf("regression of %s on %s", yCol, xCol))
	}
	return Fit(x, y)
}

func sign(v float64) int {
	if v < 0 {
		return -1
	}
	return 1
}
