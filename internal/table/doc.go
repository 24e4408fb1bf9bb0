// Package table implements an immutable, in-memory tabular aggregation
// pipeline over delimited text files.
//
// # Architecture
//
// A Table is an ordered sequence of rows sharing one Schema, where each
// cell is a typed scalar Value (int, float, string, or a missing marker).
// Column kinds are inferred once at load time. Every operation consumes a
// table and returns a new one, so a cleaning pipeline composes as a chain
// of pure transformations:
//
//	t, err := table.Load("consumption.csv", ',')
//	t, err = t.DropColumns("LocationAbbrev", "LocationDesc")
//	t = t.FilterRows(func(r table.Row) bool { ... })
//	t, err = t.GroupAggregate([]string{"Year", "Topic"},
//		[]table.AggSpec{{Name: "Total", Source: "Total", Reduce: table.Sum}})
//	t, err = t.Sort([]string{"Year", "Topic"},
//		[]table.Direction{table.Ascending, table.Ascending})
//
// # Determinism
//
// GroupAggregate only accepts registered associative/commutative
// reductions (sum, mean, count, min, max), buckets are emitted in order
// of first appearance, and Sort is stable. Given the same input, every
// operation produces bit-identical output.
//
// # Error Handling
//
// Operations fail fast with typed errors from internal/errors: parse
// errors for malformed input, schema errors for absent columns or kind
// mismatches, and empty-result errors via RequireRows when a stage leaves
// nothing for downstream charting or regression to consume.
package table
