package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Analysis AnalysisConfig `yaml:"analysis" envconfig:"ANALYSIS"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	DataDir         string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data" validate:"required"`
	ReportsDir      string `yaml:"reports_dir" envconfig:"REPORTS_DIR" default:"reports" validate:"required"`
	ConsumptionCSV  string `yaml:"consumption_csv" envconfig:"CONSUMPTION_CSV" default:"data/tobacco_consumption.csv" validate:"required"`
	PrevalenceCSV   string `yaml:"prevalence_csv" envconfig:"PREVALENCE_CSV" default:"data/smoking_prevalence.csv" validate:"required"`
	SummaryCSV      string `yaml:"summary_csv" envconfig:"SUMMARY_CSV" default:"reports/summary.csv"`
	ReportWorkbook  string `yaml:"report_workbook" envconfig:"REPORT_WORKBOOK" default:"reports/tobacco_report.xlsx"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" envconfig:"FORMAT" default:"text" validate:"oneof=text json"`
}

// AnalysisConfig contains dataset cleaning thresholds and column constants
type AnalysisConfig struct {
	// DisplayOrderMax is the row-relevance threshold for the prevalence
	// dataset: rows with a larger DisplayOrder are survey breakdowns the
	// analysis does not use.
	DisplayOrderMax int `yaml:"display_order_max" envconfig:"DISPLAY_ORDER_MAX" default:"10" validate:"gte=1"`

	// CombustibleMeasure is the consumption measure naming the
	// all-combustibles rollup rows.
	CombustibleMeasure string `yaml:"combustible_measure" envconfig:"COMBUSTIBLE_MEASURE" default:"All Combustibles" validate:"required"`

	// PrevalenceChartYear selects the year rendered in the per-state
	// prevalence bar chart. Zero means the latest year in the data.
	PrevalenceChartYear int `yaml:"prevalence_chart_year" envconfig:"PREVALENCE_CHART_YEAR" default:"0" validate:"gte=0"`
}

// Load loads configuration from environment variables and an optional
// YAML config file. Environment variables take precedence.
func Load(configFile string) (*Config, error) {
	var cfg Config

	if err := envconfig.Process("TOBACCO", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			fileCfg, err := loadFromFile(configFile)
			if err != nil {
				return nil, fmt.Errorf("failed to load config from file: %w", err)
			}
			cfg = mergeConfigs(*fileCfg, cfg)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config into env config (env takes precedence)
func mergeConfigs(fileConfig, envConfig Config) Config {
	if isDefault("DATA_DIR", envConfig.Paths.DataDir, "data") && fileConfig.Paths.DataDir != "" {
		envConfig.Paths.DataDir = fileConfig.Paths.DataDir
	}
	if isDefault("REPORTS_DIR", envConfig.Paths.ReportsDir, "reports") && fileConfig.Paths.ReportsDir != "" {
		envConfig.Paths.ReportsDir = fileConfig.Paths.ReportsDir
	}
	if isDefault("CONSUMPTION_CSV", envConfig.Paths.ConsumptionCSV, "data/tobacco_consumption.csv") && fileConfig.Paths.ConsumptionCSV != "" {
		envConfig.Paths.ConsumptionCSV = fileConfig.Paths.ConsumptionCSV
	}
	if isDefault("PREVALENCE_CSV", envConfig.Paths.PrevalenceCSV, "data/smoking_prevalence.csv") && fileConfig.Paths.PrevalenceCSV != "" {
		envConfig.Paths.PrevalenceCSV = fileConfig.Paths.PrevalenceCSV
	}
	if isDefault("SUMMARY_CSV", envConfig.Paths.SummaryCSV, "reports/summary.csv") && fileConfig.Paths.SummaryCSV != "" {
		envConfig.Paths.SummaryCSV = fileConfig.Paths.SummaryCSV
	}
	if isDefault("REPORT_WORKBOOK", envConfig.Paths.ReportWorkbook, "reports/tobacco_report.xlsx") && fileConfig.Paths.ReportWorkbook != "" {
		envConfig.Paths.ReportWorkbook = fileConfig.Paths.ReportWorkbook
	}
	if fileConfig.Logging.Level != "" && os.Getenv("TOBACCO_LOGGING_LEVEL") == "" {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if fileConfig.Logging.Format != "" && os.Getenv("TOBACCO_LOGGING_FORMAT") == "" {
		envConfig.Logging.Format = fileConfig.Logging.Format
	}
	if fileConfig.Analysis.DisplayOrderMax != 0 && os.Getenv("TOBACCO_ANALYSIS_DISPLAY_ORDER_MAX") == "" {
		envConfig.Analysis.DisplayOrderMax = fileConfig.Analysis.DisplayOrderMax
	}
	if fileConfig.Analysis.CombustibleMeasure != "" && os.Getenv("TOBACCO_ANALYSIS_COMBUSTIBLE_MEASURE") == "" {
		envConfig.Analysis.CombustibleMeasure = fileConfig.Analysis.CombustibleMeasure
	}
	if fileConfig.Analysis.PrevalenceChartYear != 0 && os.Getenv("TOBACCO_ANALYSIS_PREVALENCE_CHART_YEAR") == "" {
		envConfig.Analysis.PrevalenceChartYear = fileConfig.Analysis.PrevalenceChartYear
	}
	return envConfig
}

func isDefault(envSuffix, value, def string) bool {
	return value == def && os.Getenv("TOBACCO_PATHS_"+envSuffix) == ""
}

// validate checks the configuration with struct tags
func (c *Config) validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return err
	}
	return nil
}

// EnsureDirectories creates the output directories if they do not exist
func (c *Config) EnsureDirectories() error {
	dirs := []string{
		c.Paths.ReportsDir,
		filepath.Dir(c.Paths.SummaryCSV),
		filepath.Dir(c.Paths.ReportWorkbook),
	}
	for _, dir := range dirs {
		if dir == "" || dir == "." {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
