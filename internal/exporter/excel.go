package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"tobaccocli/internal/errors"
	"tobaccocli/pkg/contracts/domain"
)

// Sheet names in the generated workbook.
const (
	sheetConsumption = "Consumption"
	sheetTrend       = "Trend"
	sheetPrevalence  = "Prevalence"
	sheetStates      = "States"
	sheetRegressions = "Regressions"
)

// ReportData is everything the workbook renders.
type ReportData struct {
	Consumption []domain.ConsumptionSummary
	Trend       []domain.ConsumptionTrendPoint
	Prevalence  []domain.PrevalenceSummary
	States      []domain.StatePrevalence
	Regressions []domain.RegressionSummary
}

// ExcelReport writes the analysis results to a single Excel workbook with
// one sheet per summary table and embedded line/bar charts.
type ExcelReport struct {
	logger *slog.Logger
}

// NewExcelReport creates an Excel report writer
func NewExcelReport(logger *slog.Logger) *ExcelReport {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelReport{logger: logger}
}

// Write renders the workbook to path.
func (r *ExcelReport) Write(path string, data ReportData) error {
	r.logger.Info("writing Excel report",
		slog.String("path", path),
		slog.Int("trend_years", len(data.Trend)),
		slog.Int("prevalence_years", len(data.Prevalence)),
		slog.Int("states", len(data.States)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.NewStorageError("failed to create directory for Excel report", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := r.writeConsumption(f, data.Consumption); err != nil {
		return err
	}
	if err := r.writeTrend(f, data.Trend); err != nil {
		return err
	}
	if err := r.writePrevalence(f, data.Prevalence); err != nil {
		return err
	}
	if err := r.writeStates(f, data.States); err != nil {
		return err
	}
	if err := r.writeRegressions(f, data.Regressions); err != nil {
		return err
	}

	// The workbook opens on the trend chart, and the default sheet goes.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return errors.NewStorageError("failed to remove default sheet", err)
	}
	idx, err := f.GetSheetIndex(sheetTrend)
	if err == nil && idx >= 0 {
		f.SetActiveSheet(idx)
	}

	if err := f.SaveAs(path); err != nil {
		return errors.NewStorageError("failed to save Excel report", err)
	}
	return nil
}

func (r *ExcelReport) writeConsumption(f *excelize.File, rows []domain.ConsumptionSummary) error {
	if _, err := f.NewSheet(sheetConsumption); err != nil {
		return errors.NewStorageError("failed to create consumption sheet", err)
	}
	header := []interface{}{"Year", "Topic", "Total", "Domestic", "Imports", "Population", "PerCapita"}
	if err := f.SetSheetRow(sheetConsumption, "A1", &header); err != nil {
		return errors.NewStorageError("failed to write consumption header", err)
	}
	for i, row := range rows {
		cells := []interface{}{row.Year, row.Topic, row.Total, row.Domestic, row.Imports, row.Population, row.PerCapita}
		if err := f.SetSheetRow(sheetConsumption, fmt.Sprintf("A%d", i+2), &cells); err != nil {
			return errors.NewStorageError("failed to write consumption row", err)
		}
	}
	return nil
}

func (r *ExcelReport) writeTrend(f *excelize.File, rows []domain.ConsumptionTrendPoint) error {
	if _, err := f.NewSheet(sheetTrend); err != nil {
		return errors.NewStorageError("failed to create trend sheet", err)
	}
	header := []interface{}{"Year", "Total", "Domestic", "Population"}
	if err := f.SetSheetRow(sheetTrend, "A1", &header); err != nil {
		return errors.NewStorageError("failed to write trend header", err)
	}
	for i, row := range rows {
		cells := []interface{}{row.Year, row.Total, row.Domestic, row.Population}
		if err := f.SetSheetRow(sheetTrend, fmt.Sprintf("A%d", i+2), &cells); err != nil {
			return errors.NewStorageError("failed to write trend row", err)
		}
	}
	if len(rows) == 0 {
		return nil
	}

	last := len(rows) + 1
	chart := &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{
			{
				Name:       fmt.Sprintf("%s!$B$1", sheetTrend),
				Categories: fmt.Sprintf("%s!$A$2:$A$%d", sheetTrend, last),
				Values:     fmt.Sprintf("%s!$B$2:$B$%d", sheetTrend, last),
			},
			{
				Name:       fmt.Sprintf("%s!$C$1", sheetTrend),
				Categories: fmt.Sprintf("%s!$A$2:$A$%d", sheetTrend, last),
				Values:     fmt.Sprintf("%s!$C$2:$C$%d", sheetTrend, last),
			},
		},
		Title:  []excelize.RichTextRun{{Text: "Per-capita tobacco consumption by year"}},
		Legend: excelize.ChartLegend{Position: "bottom"},
	}
	if err := f.AddChart(sheetTrend, "F2", chart); err != nil {
		return errors.NewStorageError("failed to add trend chart", err)
	}
	return nil
}

func (r *ExcelReport) writePrevalence(f *excelize.File, rows []domain.PrevalenceSummary) error {
	if _, err := f.NewSheet(sheetPrevalence); err != nil {
		return errors.NewStorageError("failed to create prevalence sheet", err)
	}
	header := []interface{}{"Year", "Smokers", "SampleSize", "SmokersPct"}
	if err := f.SetSheetRow(sheetPrevalence, "A1", &header); err != nil {
		return errors.NewStorageError("failed to write prevalence header", err)
	}
	for i, row := range rows {
		cells := []interface{}{row.Year, row.Smokers, row.SampleSize, row.SmokersPct}
		if err := f.SetSheetRow(sheetPrevalence, fmt.Sprintf("A%d", i+2), &cells); err != nil {
			return errors.NewStorageError("failed to write prevalence row", err)
		}
	}
	if len(rows) == 0 {
		return nil
	}

	last := len(rows) + 1
	chart := &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{
			{
				Name:       fmt.Sprintf("%s!$D$1", sheetPrevalence),
				Categories: fmt.Sprintf("%s!$A$2:$A$%d", sheetPrevalence, last),
				Values:     fmt.Sprintf("%s!$D$2:$D$%d", sheetPrevalence, last),
			},
		},
		Title:  []excelize.RichTextRun{{Text: "Estimated smoking prevalence by year"}},
		Legend: excelize.ChartLegend{Position: "bottom"},
	}
	if err := f.AddChart(sheetPrevalence, "F2", chart); err != nil {
		return errors.NewStorageError("failed to add prevalence chart", err)
	}
	return nil
}

func (r *ExcelReport) writeStates(f *excelize.File, rows []domain.StatePrevalence) error {
	if _, err := f.NewSheet(sheetStates); err != nil {
		return errors.NewStorageError("failed to create states sheet", err)
	}
	header := []interface{}{"Location", "Percent"}
	if err := f.SetSheetRow(sheetStates, "A1", &header); err != nil {
		return errors.NewStorageError("failed to write states header", err)
	}
	for i, row := range rows {
		cells := []interface{}{row.Location, row.Percent}
		if err := f.SetSheetRow(sheetStates, fmt.Sprintf("A%d", i+2), &cells); err != nil {
			return errors.NewStorageError("failed to write states row", err)
		}
	}
	if len(rows) == 0 {
		return nil
	}

	title := "Smoking prevalence by state"
	if rows[0].Year > 0 {
		title = fmt.Sprintf("Smoking prevalence by state, %d", rows[0].Year)
	}
	last := len(rows) + 1
	chart := &excelize.Chart{
		Type: excelize.Col,
		Series: []excelize.ChartSeries{
			{
				Name:       fmt.Sprintf("%s!$B$1", sheetStates),
				Categories: fmt.Sprintf("%s!$A$2:$A$%d", sheetStates, last),
				Values:     fmt.Sprintf("%s!$B$2:$B$%d", sheetStates, last),
			},
		},
		Title:  []excelize.RichTextRun{{Text: title}},
		Legend: excelize.ChartLegend{Position: "none"},
	}
	if err := f.AddChart(sheetStates, "D2", chart); err != nil {
		return errors.NewStorageError("failed to add states chart", err)
	}
	return nil
}

func (r *ExcelReport) writeRegressions(f *excelize.File, rows []domain.RegressionSummary) error {
	if _, err := f.NewSheet(sheetRegressions); err != nil {
		return errors.NewStorageError("failed to create regressions sheet", err)
	}
	header := []interface{}{
		"Name", "Predictor", "Response", "Slope", "Intercept",
		"SlopeStdErr", "InterceptStdErr", "TStat", "PValue", "R2", "N",
	}
	if err := f.SetSheetRow(sheetRegressions, "A1", &header); err != nil {
		return errors.NewStorageError("failed to write regressions header", err)
	}
	for i, row := range rows {
		cells := []interface{}{
			row.Name, row.Predictor, row.Response, row.Slope, row.Intercept,
			row.SlopeStdErr, row.InterceptStdErr, row.TStat, row.PValue, row.R2, row.N,
		}
		if err := f.SetSheetRow(sheetRegressions, fmt.Sprintf("A%d", i+2), &cells); err != nil {
			return errors.NewStorageError("failed to write regressions row", err)
		}
	}
	return nil
}
