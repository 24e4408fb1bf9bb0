package dataset

import (
	"context"
	"log/slog"

	"tobaccocli/internal/errors"
	"tobaccocli/internal/table"
	"tobaccocli/pkg/contracts/domain"
)

// Column names in the adult tobacco consumption dataset.
const (
	ConsumptionYear       = "Year"
	ConsumptionTopic      = "Topic"
	ConsumptionMeasure    = "Measure"
	ConsumptionSubmeasure = "Submeasure"
	ConsumptionTotal      = "Total"
	ConsumptionPopulation = "Population"
	ConsumptionDomestic   = "Domestic"
	ConsumptionImports    = "Imports"
	ConsumptionPerCapita  = "PerCapita"

	// NoncombustibleTopic names the smokeless product rows, which have no
	// all-product rollup measure and are kept per submeasure.
	NoncombustibleTopic = "Noncombustible Tobacco"
)

// consumptionConstantColumns hold the same value on every row of the
// source file and are dropped immediately.
var consumptionConstantColumns = []string{"LocationAbbrev", "LocationDesc"}

// ConsumptionPipeline cleans the per-capita tobacco consumption dataset
// into year/topic totals.
type ConsumptionPipeline struct {
	logger *slog.Logger

	// combustibleMeasure names the rollup measure for combustible
	// products ("All Combustibles"); per-product rows under the same
	// topic are excluded to avoid double counting.
	combustibleMeasure string
}

// NewConsumptionPipeline creates a consumption cleaning pipeline.
func NewConsumptionPipeline(logger *slog.Logger, combustibleMeasure string) *ConsumptionPipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConsumptionPipeline{logger: logger, combustibleMeasure: combustibleMeasure}
}

// Clean drops the constant location columns, keeps the combustible rollup
// rows plus all noncombustible rows, sums totals per (Year, Topic), and
// derives PerCapita = Total/Population. The result is sorted by year then
// topic for stable downstream output.
func (p *ConsumptionPipeline) Clean(ctx context.Context, t *table.Table) (*table.Table, error) {
	p.logger.InfoContext(ctx, "cleaning consumption dataset",
		slog.Int("rows", t.Len()))

	t, err := t.DropColumns(consumptionConstantColumns...)
	if err != nil {
		return nil, err
	}

	t = t.FilterRows(func(r table.Row) bool {
		measure, err := r.String(ConsumptionMeasure)
		if err != nil {
			return false
		}
		topic, err := r.String(ConsumptionTopic)
		if err != nil {
			return false
		}
		return measure == p.combustibleMeasure || topic == NoncombustibleTopic
	})
	if err := t.RequireRows("consumption measure filter"); err != nil {
		return nil, err
	}

	t, err = t.GroupAggregate(
		[]string{ConsumptionYear, ConsumptionTopic},
		[]table.AggSpec{
			{Name: ConsumptionTotal, Source: ConsumptionTotal, Reduce: table.Sum},
			{Name: ConsumptionDomestic, Source: ConsumptionDomestic, Reduce: table.Sum},
			{Name: ConsumptionImports, Source: ConsumptionImports, Reduce: table.Sum},
			{Name: ConsumptionPopulation, Source: ConsumptionPopulation, Reduce: table.Mean},
		},
	)
	if err != nil {
		return nil, err
	}

	t, err = t.Derive(ConsumptionPerCapita, func(r table.Row) (table.Value, error) {
		total, ok := r.Value(ConsumptionTotal)
		if !ok {
			return table.Value{}, errors.NewSchemaError("column Total not found", nil)
		}
		pop, ok := r.Value(ConsumptionPopulation)
		if !ok {
			return table.Value{}, errors.NewSchemaError("column Population not found", nil)
		}
		if total.IsMissing() || pop.IsMissing() || pop.Float() == 0 {
			return table.Missing(table.KindFloat), nil
		}
		return table.Float(total.Float() / pop.Float()), nil
	})
	if err != nil {
		return nil, err
	}

	t, err = t.Sort(
		[]string{ConsumptionYear, ConsumptionTopic},
		[]table.Direction{table.Ascending, table.Ascending},
	)
	if err != nil {
		return nil, err
	}

	p.logger.InfoContext(ctx, "consumption dataset cleaned",
		slog.Int("year_topic_rows", t.Len()))

	return t, nil
}

// Trend collapses the cleaned table into one total per year, the series
// behind the consumption line chart and the year-trend regression.
func (p *ConsumptionPipeline) Trend(t *table.Table) (*table.Table, error) {
	trend, err := t.GroupAggregate(
		[]string{ConsumptionYear},
		[]table.AggSpec{
			{Name: ConsumptionTotal, Source: ConsumptionTotal, Reduce: table.Sum},
			{Name: ConsumptionDomestic, Source: ConsumptionDomestic, Reduce: table.Sum},
			{Name: ConsumptionPopulation, Source: ConsumptionPopulation, Reduce: table.Mean},
		},
	)
	if err != nil {
		return nil, err
	}
	return trend.Sort([]string{ConsumptionYear}, []table.Direction{table.Ascending})
}

// TrendPoints converts the per-year trend table into the shared domain rows.
func (p *ConsumptionPipeline) TrendPoints(t *table.Table) ([]domain.ConsumptionTrendPoint, error) {
	out := make([]domain.ConsumptionTrendPoint, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		year, err := row.Int(ConsumptionYear)
		if err != nil {
			return nil, err
		}
		total, err := row.Float(ConsumptionTotal)
		if err != nil {
			return nil, err
		}
		domestic, err := row.Float(ConsumptionDomestic)
		if err != nil {
			return nil, err
		}
		population, err := row.Float(ConsumptionPopulation)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.ConsumptionTrendPoint{
			Year:       int(year),
			Total:      total,
			Domestic:   domestic,
			Population: population,
		})
	}
	return out, nil
}

// Summaries converts the cleaned table into the shared domain rows.
func (p *ConsumptionPipeline) Summaries(t *table.Table) ([]domain.ConsumptionSummary, error) {
	out := make([]domain.ConsumptionSummary, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		year, err := row.Int(ConsumptionYear)
		if err != nil {
			return nil, err
		}
		topic, err := row.String(ConsumptionTopic)
		if err != nil {
			return nil, err
		}
		total, err := row.Float(ConsumptionTotal)
		if err != nil {
			return nil, err
		}
		domestic, err := row.Float(ConsumptionDomestic)
		if err != nil {
			return nil, err
		}
		imports, err := row.Float(ConsumptionImports)
		if err != nil {
			return nil, err
		}
		population, err := row.Float(ConsumptionPopulation)
		if err != nil {
			return nil, err
		}
		perCapita, err := row.Float(ConsumptionPerCapita)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.ConsumptionSummary{
			Year:       int(year),
			Topic:      topic,
			Total:      total,
			Domestic:   domestic,
			Imports:    imports,
			Population: population,
			PerCapita:  perCapita,
		})
	}
	return out, nil
}
