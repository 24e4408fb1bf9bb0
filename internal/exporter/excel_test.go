package exporter

import (
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"tobaccocli/pkg/contracts/domain"
)

func testReportData() ReportData {
	return ReportData{
		Consumption: []domain.ConsumptionSummary{
			{Year: 2000, Topic: "Combustible Tobacco", Total: 100, Domestic: 80, Imports: 20, Population: 200e6, PerCapita: 100 / 200e6},
			{Year: 2000, Topic: "Noncombustible Tobacco", Total: 15, Domestic: 13, Imports: 2, Population: 200e6, PerCapita: 15 / 200e6},
		},
		Trend: []domain.ConsumptionTrendPoint{
			{Year: 2000, Total: 115, Domestic: 93, Population: 200e6},
			{Year: 2001, Total: 95, Domestic: 78, Population: 202e6},
		},
		Prevalence: []domain.PrevalenceSummary{
			{Year: 2000, Smokers: 220, SampleSize: 1500, SmokersPct: 14.67},
		},
		States: []domain.StatePrevalence{
			{Year: 2000, Location: "TX", Percent: 20},
			{Year: 2000, Location: "CA", Percent: 12},
		},
		Regressions: []domain.RegressionSummary{
			{Name: "consumption trend", Predictor: "Year", Response: "Total",
				Slope: -20, Intercept: 40215, TStat: -12.5, PValue: 0.001, R2: 0.98, N: 2},
		},
	}
}

func TestExcelReport_Write(t *testing.T) {
	r := NewExcelReport(slog.Default())
	path := filepath.Join(t.TempDir(), "reports", "tobacco_report.xlsx")

	require.NoError(t, r.Write(path, testReportData()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t,
		[]string{sheetConsumption, sheetTrend, sheetPrevalence, sheetStates, sheetRegressions},
		f.GetSheetList())

	year, err := f.GetCellValue(sheetTrend, "A2")
	require.NoError(t, err)
	assert.Equal(t, "2000", year)

	total, err := f.GetCellValue(sheetTrend, "B3")
	require.NoError(t, err)
	assert.Equal(t, "95", total)

	state, err := f.GetCellValue(sheetStates, "A2")
	require.NoError(t, err)
	assert.Equal(t, "TX", state)

	slope, err := f.GetCellValue(sheetRegressions, "D2")
	require.NoError(t, err)
	assert.Equal(t, "-20", slope)
}

func TestExcelReport_WriteEmptySeries(t *testing.T) {
	// No chart data at all: the workbook still writes headers without
	// attempting to add charts over empty ranges.
	r := NewExcelReport(slog.Default())
	path := filepath.Join(t.TempDir(), "empty.xlsx")

	require.NoError(t, r.Write(path, ReportData{}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue(sheetPrevalence, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Year", header)
}
