package exporter

import (
	"fmt"
	"math"
)

// formatFloat formats a float64 value for table output with exactly 2
// decimal places, so values like 13.4 appear as 13.40.
func formatFloat(f float64) string {
	return fmt.Sprintf("%.2f", f)
}

// formatInt formats an integer value for table output
func formatInt(i int64) string {
	return fmt.Sprintf("%d", i)
}

// formatPValue renders a p-value, switching to scientific notation when
// the value would round to zero at 4 decimal places.
func formatPValue(p float64) string {
	if math.IsNaN(p) {
		return "n/a"
	}
	if p != 0 && p < 0.0001 {
		return fmt.Sprintf("%.2e", p)
	}
	return fmt.Sprintf("%.4f", p)
}
