package regression

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tobaccocli/internal/errors"
	"tobaccocli/internal/table"
)

func TestFit_PerfectlyLinear(t *testing.T) {
	// Domestic = 3*Population + 2 exactly.
	x := []float64{1, 2, 3, 4, 5}
	y := make([]float64, len(x))
	for i, xi := range x {
		y[i] = 3*xi + 2
	}

	m, err := Fit(x, y)
	require.NoError(t, err)

	assert.InDelta(t, 3.0, m.Slope, 1e-12)
	assert.InDelta(t, 2.0, m.Intercept, 1e-12)
	for _, r := range m.Residuals() {
		assert.InDelta(t, 0.0, r, 1e-9)
	}
	assert.InDelta(t, 1.0, m.R2, 1e-12)
	assert.InDelta(t, 0.0, m.PValue, 1e-12)
	assert.True(t, m.SlopeIsSignificant(0.05))
}

func TestFit_NoisyLine(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	y := []float64{2.1, 3.9, 6.2, 7.8, 10.1, 11.9, 14.2, 15.8}

	m, err := Fit(x, y)
	require.NoError(t, err)

	assert.InDelta(t, 2.0, m.Slope, 0.1)
	assert.Equal(t, 8, m.N)
	assert.Equal(t, 6, m.DF)
	assert.Greater(t, m.SlopeStdErr, 0.0)
	assert.Greater(t, m.TStat, 0.0)
	// A slope this clean against n=8 is overwhelmingly significant.
	assert.Less(t, m.PValue, 1e-6)
	assert.Greater(t, m.R2, 0.99)
}

func TestFit_FlatResponse(t *testing.T) {
	// Zero slope: the null hypothesis should survive.
	x := []float64{1, 2, 3, 4, 5, 6}
	y := []float64{5.1, 4.9, 5.2, 4.8, 5.05, 4.95}

	m, err := Fit(x, y)
	require.NoError(t, err)

	assert.InDelta(t, 0.0, m.Slope, 0.1)
	assert.Greater(t, m.PValue, 0.05)
	assert.False(t, m.SlopeIsSignificant(0.05))
}

func TestFit_Errors(t *testing.T) {
	tests := []struct {
		name string
		x    []float64
		y    []float64
	}{
		{name: "length mismatch", x: []float64{1, 2}, y: []float64{1}},
		{name: "too few observations", x: []float64{1}, y: []float64{1}},
		{name: "constant predictor", x: []float64{2, 2, 2}, y: []float64{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Fit(tt.x, tt.y)
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.ErrTypeValidation))
		})
	}
}

func TestFit_TwoPoints(t *testing.T) {
	m, err := Fit([]float64{0, 1}, []float64{2, 5})
	require.NoError(t, err)

	assert.InDelta(t, 3.0, m.Slope, 1e-12)
	assert.InDelta(t, 2.0, m.Intercept, 1e-12)
	// No residual degrees of freedom: inference is undefined.
	assert.Equal(t, 0, m.DF)
	assert.True(t, math.IsNaN(m.SlopeStdErr))
	assert.True(t, math.IsNaN(m.PValue))
	assert.False(t, m.SlopeIsSignificant(0.05))
}

func TestFit_Predict(t *testing.T) {
	m, err := Fit([]float64{0, 1, 2}, []float64{1, 3, 5})
	require.NoError(t, err)
	assert.InDelta(t, 7.0, m.Predict(3), 1e-9)
}

func TestFromTable(t *testing.T) {
	tbl, err := table.New(table.Schema{
		{Name: "Population", Kind: table.KindFloat},
		{Name: "Domestic", Kind: table.KindFloat},
	}, [][]table.Value{
		{table.Float(10), table.Float(32)},
		{table.Float(20), table.Float(62)},
		{table.Missing(table.KindFloat), table.Float(99)},
		{table.Float(30), table.Float(92)},
	})
	require.NoError(t, err)

	m, err := FromTable(tbl, "Population", "Domestic")
	require.NoError(t, err)

	// The missing-population row is skipped.
	assert.Equal(t, 3, m.N)
	assert.InDelta(t, 3.0, m.Slope, 1e-9)
	assert.InDelta(t, 2.0, m.Intercept, 1e-9)
}

func TestFromTable_Errors(t *testing.T) {
	tbl, err := table.New(table.Schema{
		{Name: "X", Kind: table.KindFloat},
		{Name: "Name", Kind: table.KindString},
	}, [][]table.Value{
		{table.Float(1), table.String("a")},
	})
	require.NoError(t, err)

	_, err = FromTable(tbl, "X", "Nope")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeSchema))

	_, err = FromTable(tbl, "X", "Name")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeSchema))

	empty, err := table.New(table.Schema{
		{Name: "X", Kind: table.KindFloat},
		{Name: "Y", Kind: table.KindFloat},
	}, [][]table.Value{
		{table.Missing(table.KindFloat), table.Float(1)},
	})
	require.NoError(t, err)

	_, err = FromTable(empty, "X", "Y")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeEmptyResult))
}
