package dataset

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tobaccocli/internal/errors"
	"tobaccocli/internal/table"
)

func consumptionTable(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.New(table.Schema{
		{Name: "LocationAbbrev", Kind: table.KindString},
		{Name: "LocationDesc", Kind: table.KindString},
		{Name: ConsumptionYear, Kind: table.KindInt},
		{Name: ConsumptionTopic, Kind: table.KindString},
		{Name: ConsumptionMeasure, Kind: table.KindString},
		{Name: ConsumptionSubmeasure, Kind: table.KindString},
		{Name: ConsumptionTotal, Kind: table.KindFloat},
		{Name: ConsumptionPopulation, Kind: table.KindFloat},
		{Name: ConsumptionDomestic, Kind: table.KindFloat},
		{Name: ConsumptionImports, Kind: table.KindFloat},
	}, [][]table.Value{
		// Combustible rollup plus a per-product row that must be excluded.
		row("US", "United States", 2000, "Combustible Tobacco", "All Combustibles", "Total", 100, 200e6, 80, 20),
		row("US", "United States", 2000, "Combustible Tobacco", "Cigarettes", "Total", 90, 200e6, 75, 15),
		// Two noncombustible submeasures that must be summed.
		row("US", "United States", 2000, "Noncombustible Tobacco", "Chewing Tobacco", "Total", 10, 200e6, 9, 1),
		row("US", "United States", 2000, "Noncombustible Tobacco", "Snuff", "Total", 5, 200e6, 4, 1),
		row("US", "United States", 2001, "Combustible Tobacco", "All Combustibles", "Total", 95, 202e6, 78, 17),
	})
	require.NoError(t, err)
	return tbl
}

func row(loc, desc string, year int64, topic, measure, sub string, total, pop, dom, imp float64) []table.Value {
	return []table.Value{
		table.String(loc), table.String(desc), table.Int(year),
		table.String(topic), table.String(measure), table.String(sub),
		table.Float(total), table.Float(pop), table.Float(dom), table.Float(imp),
	}
}

func TestConsumptionPipeline_Clean(t *testing.T) {
	p := NewConsumptionPipeline(slog.Default(), "All Combustibles")

	cleaned, err := p.Clean(context.Background(), consumptionTable(t))
	require.NoError(t, err)

	assert.Equal(t, []string{
		ConsumptionYear, ConsumptionTopic, ConsumptionTotal,
		ConsumptionDomestic, ConsumptionImports, ConsumptionPopulation,
		ConsumptionPerCapita,
	}, cleaned.Columns())

	base, err := cleaned.DropColumns(ConsumptionPerCapita)
	require.NoError(t, err)
	want := [][]string{
		{"2000", "Combustible Tobacco", "100", "80", "20", "200000000"},
		{"2000", "Noncombustible Tobacco", "15", "13", "2", "200000000"},
		{"2001", "Combustible Tobacco", "95", "78", "17", "202000000"},
	}
	assert.Equal(t, want, base.Records())

	perCapita, err := cleaned.Row(0).Float(ConsumptionPerCapita)
	require.NoError(t, err)
	assert.InDelta(t, 100.0/200e6, perCapita, 1e-15)
	perCapita, err = cleaned.Row(2).Float(ConsumptionPerCapita)
	require.NoError(t, err)
	assert.InDelta(t, 95.0/202e6, perCapita, 1e-15)
}

func TestConsumptionPipeline_CleanMissingColumn(t *testing.T) {
	p := NewConsumptionPipeline(slog.Default(), "All Combustibles")

	tbl, err := table.New(table.Schema{
		{Name: "Year", Kind: table.KindInt},
	}, [][]table.Value{{table.Int(2000)}})
	require.NoError(t, err)

	_, err = p.Clean(context.Background(), tbl)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeSchema))
}

func TestConsumptionPipeline_CleanEmptyAfterFilter(t *testing.T) {
	p := NewConsumptionPipeline(slog.Default(), "No Such Measure")

	tbl, err := table.New(table.Schema{
		{Name: "LocationAbbrev", Kind: table.KindString},
		{Name: "LocationDesc", Kind: table.KindString},
		{Name: ConsumptionYear, Kind: table.KindInt},
		{Name: ConsumptionTopic, Kind: table.KindString},
		{Name: ConsumptionMeasure, Kind: table.KindString},
		{Name: ConsumptionSubmeasure, Kind: table.KindString},
		{Name: ConsumptionTotal, Kind: table.KindFloat},
		{Name: ConsumptionPopulation, Kind: table.KindFloat},
		{Name: ConsumptionDomestic, Kind: table.KindFloat},
		{Name: ConsumptionImports, Kind: table.KindFloat},
	}, [][]table.Value{
		row("US", "United States", 2000, "Combustible Tobacco", "Cigarettes", "Total", 90, 200e6, 75, 15),
	})
	require.NoError(t, err)

	_, err = p.Clean(context.Background(), tbl)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrTypeEmptyResult))
}

func TestConsumptionPipeline_Trend(t *testing.T) {
	p := NewConsumptionPipeline(slog.Default(), "All Combustibles")

	cleaned, err := p.Clean(context.Background(), consumptionTable(t))
	require.NoError(t, err)

	trend, err := p.Trend(cleaned)
	require.NoError(t, err)

	want := [][]string{
		{"2000", "115", "93", "200000000"},
		{"2001", "95", "78", "202000000"},
	}
	assert.Equal(t, want, trend.Records())
}

func TestConsumptionPipeline_Summaries(t *testing.T) {
	p := NewConsumptionPipeline(slog.Default(), "All Combustibles")

	cleaned, err := p.Clean(context.Background(), consumptionTable(t))
	require.NoError(t, err)

	summaries, err := p.Summaries(cleaned)
	require.NoError(t, err)

	require.Len(t, summaries, 3)
	assert.Equal(t, 2000, summaries[0].Year)
	assert.Equal(t, "Combustible Tobacco", summaries[0].Topic)
	assert.Equal(t, 100.0, summaries[0].Total)
	assert.InDelta(t, 100.0/200e6, summaries[0].PerCapita, 1e-15)
	assert.Equal(t, 15.0, summaries[1].Total)
	assert.Equal(t, 2001, summaries[2].Year)
}
