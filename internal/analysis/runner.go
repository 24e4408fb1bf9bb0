package analysis

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"

	"tobaccocli/internal/config"
	"tobaccocli/internal/dataset"
	"tobaccocli/internal/exporter"
	"tobaccocli/internal/regression"
	"tobaccocli/internal/table"
	"tobaccocli/pkg/contracts/domain"
)

// Result aggregates everything one analysis run computed.
type Result struct {
	Consumption []domain.ConsumptionSummary
	Trend       []domain.ConsumptionTrendPoint
	Prevalence  []domain.PrevalenceSummary
	States      []domain.StatePrevalence
	Regressions []domain.RegressionSummary

	TrendFit    *regression.Model
	DomesticFit *regression.Model
}

// Runner executes the full analysis: load both datasets, clean them, fit
// the regressions, export the report artifacts and print the summary.
// Each run is tagged with a fresh run ID in every log record. The run is
// strictly sequential and aborts on the first error.
type Runner struct {
	cfg    *config.Config
	logger *slog.Logger
	out    io.Writer

	consumption *dataset.ConsumptionPipeline
	prevalence  *dataset.PrevalencePipeline
	csv         *exporter.CSVWriter
	excel       *exporter.ExcelReport
}

// NewRunner creates a runner from loaded configuration.
func NewRunner(cfg *config.Config, logger *slog.Logger, out io.Writer) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		cfg:         cfg,
		logger:      logger,
		out:         out,
		consumption: dataset.NewConsumptionPipeline(logger, cfg.Analysis.CombustibleMeasure),
		prevalence:  dataset.NewPrevalencePipeline(logger, cfg.Analysis.DisplayOrderMax),
		csv:         exporter.NewCSVWriter(logger),
		excel:       exporter.NewExcelReport(logger),
	}
}

// Run executes the analysis once and writes all artifacts.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	runID := uuid.New().String()
	logger := r.logger.With(slog.String("run_id", runID))
	logger.InfoContext(ctx, "starting analysis run")

	result := &Result{}

	trendTable, err := r.analyzeConsumption(ctx, logger, result)
	if err != nil {
		return nil, err
	}

	prevalenceTable, err := r.analyzePrevalence(ctx, logger, result)
	if err != nil {
		return nil, err
	}

	if err := r.export(result, trendTable, prevalenceTable); err != nil {
		return nil, err
	}

	if err := exporter.WriteSummaryText(r.out, result.Trend, result.Prevalence, result.Regressions); err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "analysis run complete",
		slog.Int("trend_years", len(result.Trend)),
		slog.Int("prevalence_years", len(result.Prevalence)))

	return result, nil
}

func (r *Runner) analyzeConsumption(ctx context.Context, logger *slog.Logger, result *Result) (*table.Table, error) {
	logger.InfoContext(ctx, "loading consumption dataset",
		slog.String("path", r.cfg.Paths.ConsumptionCSV))

	raw, err := table.Load(r.cfg.Paths.ConsumptionCSV, ',')
	if err != nil {
		return nil, err
	}

	cleaned, err := r.consumption.Clean(ctx, raw)
	if err != nil {
		return nil, err
	}
	result.Consumption, err = r.consumption.Summaries(cleaned)
	if err != nil {
		return nil, err
	}

	trend, err := r.consumption.Trend(cleaned)
	if err != nil {
		return nil, err
	}
	result.Trend, err = r.consumption.TrendPoints(trend)
	if err != nil {
		return nil, err
	}

	// Consumption trend over time: is total per-capita use falling?
	trendFit, err := regression.FromTable(trend, dataset.ConsumptionYear, dataset.ConsumptionTotal)
	if err != nil {
		return nil, err
	}
	result.TrendFit = trendFit
	result.Regressions = append(result.Regressions, regressionSummary(
		"consumption trend", dataset.ConsumptionYear, dataset.ConsumptionTotal, trendFit))

	// Domestic production against population size.
	domesticFit, err := regression.FromTable(trend, dataset.ConsumptionPopulation, dataset.ConsumptionDomestic)
	if err != nil {
		return nil, err
	}
	result.DomesticFit = domesticFit
	result.Regressions = append(result.Regressions, regressionSummary(
		"domestic vs population", dataset.ConsumptionPopulation, dataset.ConsumptionDomestic, domesticFit))

	logger.InfoContext(ctx, "consumption analysis done",
		slog.Float64("trend_slope", trendFit.Slope),
		slog.Float64("trend_p_value", trendFit.PValue))

	return trend, nil
}

func (r *Runner) analyzePrevalence(ctx context.Context, logger *slog.Logger, result *Result) (*table.Table, error) {
	logger.InfoContext(ctx, "loading prevalence dataset",
		slog.String("path", r.cfg.Paths.PrevalenceCSV))

	raw, err := table.Load(r.cfg.Paths.PrevalenceCSV, ',')
	if err != nil {
		return nil, err
	}

	cleaned, err := r.prevalence.Clean(ctx, raw)
	if err != nil {
		return nil, err
	}

	byYear, err := r.prevalence.ByYear(cleaned)
	if err != nil {
		return nil, err
	}
	result.Prevalence, err = r.prevalence.Summaries(byYear)
	if err != nil {
		return nil, err
	}

	chartYear := r.cfg.Analysis.PrevalenceChartYear
	if chartYear == 0 {
		chartYear, err = r.prevalence.LatestYear(cleaned)
		if err != nil {
			return nil, err
		}
	}

	byState, err := r.prevalence.ByState(cleaned, chartYear)
	if err != nil {
		return nil, err
	}
	result.States, err = r.prevalence.StateSummaries(byState, chartYear)
	if err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "prevalence analysis done",
		slog.Int("chart_year", chartYear),
		slog.Int("states", len(result.States)))

	return byYear, nil
}

func (r *Runner) export(result *Result, trend, prevalence *table.Table) error {
	if err := r.csv.WriteTable(r.cfg.Paths.SummaryCSV, trend); err != nil {
		return err
	}
	prevalencePath := filepath.Join(r.cfg.Paths.ReportsDir, "prevalence_by_year.csv")
	if err := r.csv.WriteTable(prevalencePath, prevalence); err != nil {
		return err
	}

	return r.excel.Write(r.cfg.Paths.ReportWorkbook, exporter.ReportData{
		Consumption: result.Consumption,
		Trend:       result.Trend,
		Prevalence:  result.Prevalence,
		States:      result.States,
		Regressions: result.Regressions,
	})
}

func regressionSummary(name, predictor, response string, m *regression.Model) domain.RegressionSummary {
	return domain.RegressionSummary{
		Name:            name,
		Predictor:       predictor,
		Response:        response,
		Slope:           m.Slope,
		Intercept:       m.Intercept,
		SlopeStdErr:     m.SlopeStdErr,
		InterceptStdErr: m.InterceptStdErr,
		TStat:           m.TStat,
		PValue:          m.PValue,
		R2:              m.R2,
		N:               m.N,
	}
}
