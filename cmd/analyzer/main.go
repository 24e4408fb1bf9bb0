package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"tobaccocli/internal/analysis"
	"tobaccocli/internal/config"
)

func main() {
	configFile := flag.String("config", "config.yaml", "path to the YAML config file (optional)")
	consumption := flag.String("consumption", "", "consumption CSV path (overrides config)")
	prevalence := flag.String("prevalence", "", "prevalence CSV path (overrides config)")
	workbook := flag.String("report", "", "Excel report path (overrides config)")
	chartYear := flag.Int("chart-year", 0, "survey year for the per-state chart (0 = latest)")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	if *consumption != "" {
		cfg.Paths.ConsumptionCSV = *consumption
	}
	if *prevalence != "" {
		cfg.Paths.PrevalenceCSV = *prevalence
	}
	if *workbook != "" {
		cfg.Paths.ReportWorkbook = *workbook
	}
	if *chartYear != 0 {
		cfg.Analysis.PrevalenceChartYear = *chartYear
	}
	if *verbose {
		cfg.Logging.Level = "debug"
	}

	logger := config.NewLogger(cfg.Logging, os.Stderr)
	slog.SetDefault(logger)

	if err := cfg.EnsureDirectories(); err != nil {
		logger.Error("Failed to create output directories", "error", err)
		os.Exit(1)
	}

	runner := analysis.NewRunner(cfg, logger, os.Stdout)
	result, err := runner.Run(context.Background())
	if err != nil {
		logger.Error("Analysis run failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Report written",
		slog.String("workbook", cfg.Paths.ReportWorkbook),
		slog.String("summary_csv", cfg.Paths.SummaryCSV),
		slog.Int("regressions", len(result.Regressions)))
}
