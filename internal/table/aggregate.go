package table

import (
	"fmt"
	"strings"

	"tobaccocli/internal/errors"
)

// Reduction names a per-bucket reduction function. Only associative,
// commutative reductions are registered, so grouping results never depend
// on row iteration order. Requesting an unregistered reduction fails.
type Reduction string

const (
	// Sum adds all non-missing values in the bucket
	Sum Reduction = "sum"
	// Mean averages all non-missing values in the bucket
	Mean Reduction = "mean"
	// Count counts non-missing values in the bucket
	Count Reduction = "count"
	// Min takes the smallest non-missing value in the bucket
	Min Reduction = "min"
	// Max takes the largest non-missing value in the bucket
	Max Reduction = "max"
)

var reductions = map[Reduction]bool{
	Sum:   true,
	Mean:  true,
	Count: true,
	Min:   true,
	Max:   true,
}

// AggSpec requests one aggregate output column.
type AggSpec struct {
	Name   string    // output column name
	Source string    // source column to reduce
	Reduce Reduction // registered reduction function
}

// accumulator holds commutative running state for one aggregate in one
// bucket, so the result is identical for any row order.
type accumulator struct {
	sum   float64
	count int64
	min   float64
	max   float64
}

func (a *accumulator) add(v float64) {
	if a.count == 0 {
		a.min = v
		a.max = v
	} else {
		if v < a.min {
			a.min = v
		}
		if v > a.max {
			a.max = v
		}
	}
	a.sum += v
	a.count++
}

func (a *accumulator) result(r Reduction) Value {
	switch r {
	case Count:
		return Int(a.count)
	case Sum:
		return Float(a.sum)
	case Mean:
		if a.count == 0 {
			return Missing(KindFloat)
		}
		return Float(a.sum / float64(a.count))
	case Min:
		if a.count == 0 {
			return Missing(KindFloat)
		}
		return Float(a.min)
	default: // Max
		if a.count == 0 {
			return Missing(KindFloat)
		}
		return Float(a.max)
	}
}

// GroupAggregate partitions rows into buckets by the tuple of values in
// the key columns and emits exactly one output row per bucket: the key
// values followed by each requested aggregate. Buckets appear in order of
// first appearance in the input, which makes the output deterministic for
// a given input table.
func (t *Table) GroupAggregate(keys []string, aggs []AggSpec) (*Table, error) {
	if len(keys) == 0 {
		return nil, errors.NewValidationError("group requires at least one key column", nil)
	}
	if len(aggs) == 0 {
		return nil, errors.NewValidationError("group requires at least one aggregate", nil)
	}

	keyIdxs := make([]int, len(keys))
	for i, key := range keys {
		idx := t.schema.Index(key)
		if idx < 0 {
			return nil, errors.NewSchemaError(fmt.Sprintf("key column %q not found", key), nil)
		}
		keyIdxs[i] = idx
	}

	srcIdxs := make([]int, len(aggs))
	for i, agg := range aggs {
		if !reductions[agg.Reduce] {
			return nil, errors.NewValidationError(
				fmt.Sprintf("reduction %q is not a registered commutative reduction", agg.Reduce), nil)
		}
		idx := t.schema.Index(agg.Source)
		if idx < 0 {
			return nil, errors.NewSchemaError(
				fmt.Sprintf("aggregate source column %q not found", agg.Source), nil)
		}
		if agg.Reduce != Count && !t.schema[idx].Kind.Numeric() {
			return nil, errors.NewSchemaError(
				fmt.Sprintf("aggregate %q reduces column %q of kind %s, expected a numeric column",
					agg.Name, agg.Source, t.schema[idx].Kind), nil)
		}
		srcIdxs[i] = idx
	}

	type bucket struct {
		keyValues []Value
		accs      []accumulator
	}

	buckets := make(map[string]*bucket)
	var order []string

	for _, row := range t.rows {
		keyParts := make([]string, len(keyIdxs))
		keyValues := make([]Value, len(keyIdxs))
		for i, idx := range keyIdxs {
			keyValues[i] = row[idx]
			keyParts[i] = keyPart(row[idx])
		}
		key := strings.Join(keyParts, "\x1f")

		b, ok := buckets[key]
		if !ok {
			b = &bucket{keyValues: keyValues, accs: make([]accumulator, len(aggs))}
			buckets[key] = b
			order = append(order, key)
		}

		for i, idx := range srcIdxs {
			v := row[idx]
			if v.IsMissing() {
				continue
			}
			if aggs[i].Reduce == Count && !v.Kind().Numeric() {
				// Count works on any kind; record presence only.
				b.accs[i].count++
				continue
			}
			b.accs[i].add(v.Float())
		}
	}

	schema := make(Schema, 0, len(keys)+len(aggs))
	for i, idx := range keyIdxs {
		schema = append(schema, Column{Name: keys[i], Kind: t.schema[idx].Kind})
	}
	for _, agg := range aggs {
		kind := KindFloat
		if agg.Reduce == Count {
			kind = KindInt
		}
		schema = append(schema, Column{Name: agg.Name, Kind: kind})
	}

	rows := make([][]Value, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		row := make([]Value, 0, len(schema))
		row = append(row, b.keyValues...)
		for i, agg := range aggs {
			row = append(row, b.accs[i].result(agg.Reduce))
		}
		rows = append(rows, row)
	}

	return &Table{schema: schema, rows: rows}, nil
}
