package table

import (
	"fmt"

	"tobaccocli/internal/errors"
)

// Column describes one column of a table schema.
type Column struct {
	Name string
	Kind Kind
}

// Schema is the ordered column list shared by every row of a table.
type Schema []Column

// Index returns the position of the named column, or -1 if absent.
func (s Schema) Index(name string) int {
	for i, c := range s {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Names returns the column names in schema order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, c := range s {
		names[i] = c.Name
	}
	return names
}

// Table is an ordered sequence of uniformly-schemaed rows.
// Tables are immutable: every operation returns a new Table and never
// mutates its receiver, so intermediate results can be held and compared.
type Table struct {
	schema Schema
	rows   [][]Value
}

// New creates a table from a schema and pre-typed rows.
// Each row must match the schema in length and column kinds.
func New(schema Schema, rows [][]Value) (*Table, error) {
	for i, row := range rows {
		if len(row) != len(schema) {
			return nil, errors.NewParseError(
				fmt.Sprintf("row %d has %d values, schema has %d columns", i, len(row), len(schema)), nil)
		}
		for j, v := range row {
			if v.Kind() != schema[j].Kind {
				return nil, errors.NewSchemaError(
					fmt.Sprintf("row %d column %q is %s, schema expects %s",
						i, schema[j].Name, v.Kind(), schema[j].Kind), nil)
			}
		}
	}
	return &Table{schema: schema, rows: rows}, nil
}

// Len returns the number of rows
func (t *Table) Len() int { return len(t.rows) }

// Schema returns a copy of the table schema
func (t *Table) Schema() Schema {
	s := make(Schema, len(t.schema))
	copy(s, t.schema)
	return s
}

// Columns returns the column names in order
func (t *Table) Columns() []string { return t.schema.Names() }

// Row returns an accessor for row i.
func (t *Table) Row(i int) Row {
	return Row{schema: t.schema, values: t.rows[i]}
}

// Records renders every row as strings in schema order, for CSV export.
func (t *Table) Records() [][]string {
	out := make([][]string, len(t.rows))
	for i, row := range t.rows {
		rec := make([]string, len(row))
		for j, v := range row {
			rec[j] = v.Format()
		}
		out[i] = rec
	}
	return out
}

// Row is a read-only view of one table row.
type Row struct {
	schema Schema
	values []Value
}

// Value returns the named cell, reporting whether the column exists.
func (r Row) Value(name string) (Value, bool) {
	idx := r.schema.Index(name)
	if idx < 0 {
		return Value{}, false
	}
	return r.values[idx], true
}

// String returns the named cell as text. Missing cells are an error;
// callers that tolerate missing values use Value instead.
func (r Row) String(name string) (string, error) {
	v, err := r.lookup(name, KindString)
	if err != nil {
		return "", err
	}
	return v.Str(), nil
}

// Int returns the named cell as an integer. Missing cells are an error,
// never zero, so filters and summaries cannot silently coerce absent data.
func (r Row) Int(name string) (int64, error) {
	v, err := r.lookup(name, KindInt)
	if err != nil {
		return 0, err
	}
	return v.Int(), nil
}

// Float returns the named cell as a float, promoting integer columns.
// Missing cells are an error, never zero.
func (r Row) Float(name string) (float64, error) {
	idx := r.schema.Index(name)
	if idx < 0 {
		return 0, errors.NewSchemaError(fmt.Sprintf("column %q not found", name), nil)
	}
	v := r.values[idx]
	if !v.Kind().Numeric() {
		return 0, errors.NewSchemaError(
			fmt.Sprintf("column %q is %s, expected a numeric column", name, v.Kind()), nil)
	}
	if v.IsMissing() {
		return 0, errors.NewValidationError(fmt.Sprintf("column %q value is missing", name), nil)
	}
	return v.Float(), nil
}

func (r Row) lookup(name string, kind Kind) (Value, error) {
	idx := r.schema.Index(name)
	if idx < 0 {
		return Value{}, errors.NewSchemaError(fmt.Sprintf("column %q not found", name), nil)
	}
	v := r.values[idx]
	if v.Kind() != kind {
		return Value{}, errors.NewSchemaError(
			fmt.Sprintf("column %q is %s, expected %s", name, v.Kind(), kind), nil)
	}
	if v.IsMissing() {
		return Value{}, errors.NewValidationError(fmt.Sprintf("column %q value is missing", name), nil)
	}
	return v, nil
}

// clone duplicates the backing rows so derived tables never share storage.
func (t *Table) clone() [][]Value {
	rows := make([][]Value, len(t.rows))
	for i, row := range t.rows {
		dup := make([]Value, len(row))
		copy(dup, row)
		rows[i] = dup
	}
	return rows
}
