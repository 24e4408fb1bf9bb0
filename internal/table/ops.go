package table

import (
	"fmt"
	"sort"
	"strings"

	"tobaccocli/internal/errors"
)

// DropColumns returns a table without the named columns. Row count and
// order are unchanged. Naming an absent column is a schema error.
func (t *Table) DropColumns(names ...string) (*Table, error) {
	drop := make(map[string]bool, len(names))
	for _, name := range names {
		if t.schema.Index(name) < 0 {
			return nil, errors.NewSchemaError(fmt.Sprintf("column %q not found", name), nil)
		}
		drop[name] = true
	}

	var keep []int
	for i, c := range t.schema {
		if !drop[c.Name] {
			keep = append(keep, i)
		}
	}

	schema := make(Schema, len(keep))
	for i, idx := range keep {
		schema[i] = t.schema[idx]
	}

	rows := make([][]Value, len(t.rows))
	for i, row := range t.rows {
		out := make([]Value, len(keep))
		for j, idx := range keep {
			out[j] = row[idx]
		}
		rows[i] = out
	}

	return &Table{schema: schema, rows: rows}, nil
}

// FilterRows returns the ordered subsequence of rows for which pred is
// true. The predicate must be a pure function of the row's values.
func (t *Table) FilterRows(pred func(Row) bool) *Table {
	var rows [][]Value
	for _, row := range t.rows {
		if pred(Row{schema: t.schema, values: row}) {
			rows = append(rows, row)
		}
	}
	return &Table{schema: t.schema, rows: rows}
}

// Distinct removes rows that are exact duplicates of an earlier row,
// keeping the first occurrence. Order preserving and idempotent.
func (t *Table) Distinct() *Table {
	seen := make(map[string]bool, len(t.rows))
	var rows [][]Value
	for _, row := range t.rows {
		key := rowKey(row)
		if seen[key] {
			continue
		}
		seen[key] = true
		rows = append(rows, row)
	}
	return &Table{schema: t.schema, rows: rows}
}

// Direction controls per-key sort order.
type Direction int

const (
	// Ascending sorts smallest first
	Ascending Direction = iota
	// Descending sorts largest first
	Descending
)

// Sort returns rows ordered by the key columns lexicographically, each
// ascending or descending per dirs. The sort is stable: ties keep their
// original relative order, so repeated sorts are bit-identical.
func (t *Table) Sort(keys []string, dirs []Direction) (*Table, error) {
	if len(dirs) != len(keys) {
		return nil, errors.NewValidationError(
			fmt.Sprintf("sort has %d keys but %d directions", len(keys), len(dirs)), nil)
	}
	idxs := make([]int, len(keys))
	for i, key := range keys {
		idx := t.schema.Index(key)
		if idx < 0 {
			return nil, errors.NewSchemaError(fmt.Sprintf("column %q not found", key), nil)
		}
		idxs[i] = idx
	}

	rows := t.clone()
	sort.SliceStable(rows, func(a, b int) bool {
		for i, idx := range idxs {
			cmp := rows[a][idx].Compare(rows[b][idx])
			if cmp == 0 {
				continue
			}
			if dirs[i] == Descending {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})

	return &Table{schema: t.schema, rows: rows}, nil
}

// Derive appends a new column computed per row by expr. The expression
// must yield values of one consistent kind across all rows (integers may
// promote to float); mixing text with numbers is a schema error because
// the result could not feed numeric aggregation downstream.
func (t *Table) Derive(name string, expr func(Row) (Value, error)) (*Table, error) {
	if t.schema.Index(name) >= 0 {
		return nil, errors.NewSchemaError(fmt.Sprintf("column %q already exists", name), nil)
	}

	derived := make([]Value, len(t.rows))
	kind := KindInt
	kindSet := false
	for i, row := range t.rows {
		v, err := expr(Row{schema: t.schema, values: row})
		if err != nil {
			return nil, err
		}
		derived[i] = v
		if v.IsMissing() {
			continue
		}
		if !kindSet {
			kind = v.Kind()
			kindSet = true
			continue
		}
		if v.Kind() != kind {
			if v.Kind().Numeric() && kind.Numeric() {
				kind = KindFloat
				continue
			}
			return nil, errors.NewSchemaError(
				fmt.Sprintf("derived column %q mixes %s and %s values", name, kind, v.Kind()), nil)
		}
	}

	rows := make([][]Value, len(t.rows))
	for i, row := range t.rows {
		v := derived[i]
		switch {
		case v.IsMissing():
			v = Missing(kind)
		case kind == KindFloat && v.Kind() == KindInt:
			v = Float(v.Float())
		}
		out := make([]Value, len(row)+1)
		copy(out, row)
		out[len(row)] = v
		rows[i] = out
	}

	schema := make(Schema, len(t.schema)+1)
	copy(schema, t.schema)
	schema[len(t.schema)] = Column{Name: name, Kind: kind}

	return &Table{schema: schema, rows: rows}, nil
}

// RequireRows returns an empty-result error naming the stage when the
// table has no rows, making downstream charting or regression meaningless.
func (t *Table) RequireRows(stage string) error {
	if len(t.rows) == 0 {
		return errors.NewEmptyResultError(stage)
	}
	return nil
}

// rowKey builds the duplicate-detection key for a full row.
func rowKey(row []Value) string {
	parts := make([]string, len(row))
	for i, v := range row {
		parts[i] = keyPart(v)
	}
	return strings.Join(parts, "\x1f")
}

// keyPart encodes one cell for key building. The marker byte keeps a
// missing cell distinct from an empty string, which Format renders
// identically.
func keyPart(v Value) string {
	if v.IsMissing() {
		return "\x00"
	}
	return "\x01" + v.Format()
}
