package dataset

import (
	"context"
	"log/slog"
	"regexp"
	"strconv"

	"tobaccocli/internal/errors"
	"tobaccocli/internal/table"
	"tobaccocli/pkg/contracts/domain"
)

// Column names in the BRFSS smoking prevalence dataset.
const (
	PrevalenceYearRaw      = "YEAR"
	PrevalenceYear         = "Year"
	PrevalenceLocation     = "LocationAbbr"
	PrevalenceValue        = "Data_Value"
	PrevalenceSampleSize   = "Sample_Size"
	PrevalenceDisplayOrder = "DisplayOrder"
	PrevalenceSmokers      = "Smokers"
	PrevalenceSmokersPct   = "SmokersPct"
)

// prevalenceDroppedColumns contain only footnote markers or values unused
// by the analysis and are removed up front.
var prevalenceDroppedColumns = []string{
	"Data_Value_Footnote_Symbol",
	"Data_Value_Footnote",
	"Data_Value_Std_Err",
}

// singleYear matches a plain 4-digit survey year. Rows reporting a range
// such as "2015-2016" overlap the single-year rows and are excluded.
var singleYear = regexp.MustCompile(`^\d{4}$`)

// PrevalencePipeline cleans the smoking prevalence survey dataset.
type PrevalencePipeline struct {
	logger *slog.Logger

	// displayOrderMax is the row-relevance threshold: rows with a larger
	// DisplayOrder are demographic breakdowns, not the state topline.
	displayOrderMax int64
}

// NewPrevalencePipeline creates a prevalence cleaning pipeline.
func NewPrevalencePipeline(logger *slog.Logger, displayOrderMax int) *PrevalencePipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if displayOrderMax <= 0 {
		displayOrderMax = 10
	}
	return &PrevalencePipeline{logger: logger, displayOrderMax: int64(displayOrderMax)}
}

// Clean produces the row-level prepared table: footnote columns dropped,
// year ranges excluded, YEAR converted to an integer Year column, rows
// past the DisplayOrder threshold removed, exact duplicates collapsed,
// and the estimated smoker count derived per row.
//
// Smokers = Data_Value/100 * Sample_Size is a stated approximation of the
// survey's smoking population and is preserved as documented behavior.
func (p *PrevalencePipeline) Clean(ctx context.Context, t *table.Table) (*table.Table, error) {
	p.logger.InfoContext(ctx, "cleaning prevalence dataset",
		slog.Int("rows", t.Len()))

	t, err := t.DropColumns(prevalenceDroppedColumns...)
	if err != nil {
		return nil, err
	}

	// The raw YEAR column is textual when range rows such as "2015-2016"
	// are present and numeric when they are not; match on the formatted
	// value so both load shapes clean identically.
	t = t.FilterRows(func(r table.Row) bool {
		v, ok := r.Value(PrevalenceYearRaw)
		return ok && !v.IsMissing() && singleYear.MatchString(v.Format())
	})
	if err := t.RequireRows("single-year filter"); err != nil {
		return nil, err
	}

	t, err = t.Derive(PrevalenceYear, func(r table.Row) (table.Value, error) {
		v, ok := r.Value(PrevalenceYearRaw)
		if !ok {
			return table.Value{}, errors.NewSchemaError("column YEAR not found", nil)
		}
		year, err := strconv.ParseInt(v.Format(), 10, 64)
		if err != nil {
			return table.Value{}, errors.NewParseError("cannot parse survey year", err).
				WithContext("value", v.Format())
		}
		return table.Int(year), nil
	})
	if err != nil {
		return nil, err
	}

	t = t.FilterRows(func(r table.Row) bool {
		order, err := r.Int(PrevalenceDisplayOrder)
		return err == nil && order <= p.displayOrderMax
	})
	if err := t.RequireRows("display-order filter"); err != nil {
		return nil, err
	}

	t = t.Distinct()

	t, err = t.Derive(PrevalenceSmokers, func(r table.Row) (table.Value, error) {
		pctVal, ok := r.Value(PrevalenceValue)
		if !ok {
			return table.Value{}, errors.NewSchemaError("column Data_Value not found", nil)
		}
		sizeVal, ok := r.Value(PrevalenceSampleSize)
		if !ok {
			return table.Value{}, errors.NewSchemaError("column Sample_Size not found", nil)
		}
		if pctVal.IsMissing() || sizeVal.IsMissing() {
			return table.Missing(table.KindFloat), nil
		}
		return table.Float(pctVal.Float() / 100 * sizeVal.Float()), nil
	})
	if err != nil {
		return nil, err
	}

	p.logger.InfoContext(ctx, "prevalence dataset cleaned",
		slog.Int("rows", t.Len()))

	return t, nil
}

// ByYear aggregates the prepared rows into one estimated national count
// per year, with the aggregate percentage re-derived from the sums.
func (p *PrevalencePipeline) ByYear(t *table.Table) (*table.Table, error) {
	grouped, err := t.GroupAggregate(
		[]string{PrevalenceYear},
		[]table.AggSpec{
			{Name: PrevalenceSmokers, Source: PrevalenceSmokers, Reduce: table.Sum},
			{Name: PrevalenceSampleSize, Source: PrevalenceSampleSize, Reduce: table.Sum},
		},
	)
	if err != nil {
		return nil, err
	}

	grouped, err = grouped.Derive(PrevalenceSmokersPct, func(r table.Row) (table.Value, error) {
		smokers, err := r.Float(PrevalenceSmokers)
		if err != nil {
			return table.Value{}, err
		}
		size, err := r.Float(PrevalenceSampleSize)
		if err != nil {
			return table.Value{}, err
		}
		if size == 0 {
			return table.Missing(table.KindFloat), nil
		}
		return table.Float(100 * smokers / size), nil
	})
	if err != nil {
		return nil, err
	}

	return grouped.Sort([]string{PrevalenceYear}, []table.Direction{table.Ascending})
}

// ByState returns each state's reported percentage for one year, highest
// first, for the per-state bar chart.
func (p *PrevalencePipeline) ByState(t *table.Table, year int) (*table.Table, error) {
	filtered := t.FilterRows(func(r table.Row) bool {
		y, err := r.Int(PrevalenceYear)
		return err == nil && y == int64(year)
	})
	if err := filtered.RequireRows("state filter"); err != nil {
		return nil, err
	}

	grouped, err := filtered.GroupAggregate(
		[]string{PrevalenceLocation},
		[]table.AggSpec{
			{Name: PrevalenceValue, Source: PrevalenceValue, Reduce: table.Mean},
		},
	)
	if err != nil {
		return nil, err
	}

	return grouped.Sort(
		[]string{PrevalenceValue, PrevalenceLocation},
		[]table.Direction{table.Descending, table.Ascending},
	)
}

// LatestYear returns the largest survey year in the prepared table.
func (p *PrevalencePipeline) LatestYear(t *table.Table) (int, error) {
	if err := t.RequireRows("prepared prevalence table"); err != nil {
		return 0, err
	}
	var latest int64
	for i := 0; i < t.Len(); i++ {
		year, err := t.Row(i).Int(PrevalenceYear)
		if err != nil {
			return 0, err
		}
		if year > latest {
			latest = year
		}
	}
	return int(latest), nil
}

// Summaries converts the per-year table into the shared domain rows.
func (p *PrevalencePipeline) Summaries(t *table.Table) ([]domain.PrevalenceSummary, error) {
	out := make([]domain.PrevalenceSummary, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		year, err := row.Int(PrevalenceYear)
		if err != nil {
			return nil, err
		}
		smokers, err := row.Float(PrevalenceSmokers)
		if err != nil {
			return nil, err
		}
		size, err := row.Float(PrevalenceSampleSize)
		if err != nil {
			return nil, err
		}
		pct, err := row.Float(PrevalenceSmokersPct)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.PrevalenceSummary{
			Year:       int(year),
			Smokers:    smokers,
			SampleSize: size,
			SmokersPct: pct,
		})
	}
	return out, nil
}

// StateSummaries converts a per-state table into the shared domain rows.
func (p *PrevalencePipeline) StateSummaries(t *table.Table, year int) ([]domain.StatePrevalence, error) {
	out := make([]domain.StatePrevalence, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		row := t.Row(i)
		loc, err := row.String(PrevalenceLocation)
		if err != nil {
			return nil, err
		}
		pct, err := row.Float(PrevalenceValue)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.StatePrevalence{Year: year, Location: loc, Percent: pct})
	}
	return out, nil
}
