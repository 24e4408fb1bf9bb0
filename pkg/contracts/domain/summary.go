// Package domain defines the shared result types produced by the tobacco
// analysis pipelines. The exporter, the printed summary table and the cmd
// binary all consume these structures, so the cleaned numbers have one
// authoritative shape.
package domain

// ConsumptionSummary is one (year, topic) row of the cleaned consumption
// dataset: combustible and noncombustible per-capita consumption in the
// United States for a single year.
type ConsumptionSummary struct {
	Year       int     `json:"year" csv:"Year" validate:"required,gte=1900"`
	Topic      string  `json:"topic" csv:"Topic" validate:"required"`
	Total      float64 `json:"total" csv:"Total"`
	Domestic   float64 `json:"domestic" csv:"Domestic"`
	Imports    float64 `json:"imports" csv:"Imports"`
	Population float64 `json:"population" csv:"Population" validate:"gte=0"`
	PerCapita  float64 `json:"per_capita" csv:"PerCapita" validate:"gte=0"`
}

// PrevalenceSummary is one year of the cleaned BRFSS smoking prevalence
// dataset. Smokers approximates the smoking sample as reported percentage
// times sample size summed over states; it is not a census count.
type PrevalenceSummary struct {
	Year       int     `json:"year" csv:"Year" validate:"required,gte=1900"`
	Smokers    float64 `json:"smokers" csv:"Smokers" validate:"gte=0"`
	SampleSize float64 `json:"sample_size" csv:"SampleSize" validate:"gte=0"`
	SmokersPct float64 `json:"smokers_pct" csv:"SmokersPct" validate:"gte=0,lte=100"`
}

// StatePrevalence is one state's reported smoking percentage for a single
// year, used by the per-state bar chart.
type StatePrevalence struct {
	Year     int     `json:"year" csv:"Year"`
	Location string  `json:"location" csv:"Location" validate:"required"`
	Percent  float64 `json:"percent" csv:"Percent" validate:"gte=0,lte=100"`
}

// ConsumptionTrendPoint is the per-year consumption rollup across all
// kept topics, the series behind the trend chart and regressions.
type ConsumptionTrendPoint struct {
	Year       int     `json:"year" csv:"Year" validate:"required,gte=1900"`
	Total      float64 `json:"total" csv:"Total"`
	Domestic   float64 `json:"domestic" csv:"Domestic"`
	Population float64 `json:"population" csv:"Population" validate:"gte=0"`
}

// RegressionSummary carries the inference results of one fitted OLS model
// in a render-ready form.
type RegressionSummary struct {
	Name            string  `json:"name" csv:"Name" validate:"required"`
	Predictor       string  `json:"predictor" csv:"Predictor"`
	Response        string  `json:"response" csv:"Response"`
	Slope           float64 `json:"slope" csv:"Slope"`
	Intercept       float64 `json:"intercept" csv:"Intercept"`
	SlopeStdErr     float64 `json:"slope_std_err" csv:"SlopeStdErr"`
	InterceptStdErr float64 `json:"intercept_std_err" csv:"InterceptStdErr"`
	TStat           float64 `json:"t_stat" csv:"TStat"`
	PValue          float64 `json:"p_value" csv:"PValue"`
	R2              float64 `json:"r2" csv:"R2"`
	N               int     `json:"n" csv:"N"`
}
