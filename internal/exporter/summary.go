package exporter

import (
	"fmt"
	"io"
	"text/tabwriter"

	"tobaccocli/pkg/contracts/domain"
)

// WriteSummaryText prints the per-year summaries and regression results
// as an aligned text table, the run's human-readable output.
func WriteSummaryText(w io.Writer, trend []domain.ConsumptionTrendPoint,
	prevalence []domain.PrevalenceSummary, regressions []domain.RegressionSummary) error {

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "Year\tConsumption\tDomestic\tSmokers (est.)\tPrevalence %")
	prevByYear := make(map[int]domain.PrevalenceSummary, len(prevalence))
	for _, p := range prevalence {
		prevByYear[p.Year] = p
	}
	for _, tp := range trend {
		smokers, pct := "-", "-"
		if p, ok := prevByYear[tp.Year]; ok {
			smokers = formatFloat(p.Smokers)
			pct = formatFloat(p.SmokersPct)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			tp.Year, formatFloat(tp.Total), formatFloat(tp.Domestic), smokers, pct)
	}
	// Prevalence-only years still show in the summary.
	trendYears := make(map[int]bool, len(trend))
	for _, tp := range trend {
		trendYears[tp.Year] = true
	}
	for _, p := range prevalence {
		if trendYears[p.Year] {
			continue
		}
		fmt.Fprintf(tw, "%d\t-\t-\t%s\t%s\n",
			p.Year, formatFloat(p.Smokers), formatFloat(p.SmokersPct))
	}

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "Regression\tSlope\tStdErr\tt\tp-value\tR2\tn")
	for _, r := range regressions {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Name, formatFloat(r.Slope), formatFloat(r.SlopeStdErr),
			formatFloat(r.TStat), formatPValue(r.PValue), formatFloat(r.R2),
			formatInt(int64(r.N)))
	}

	return tw.Flush()
}
