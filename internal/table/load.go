package table

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"tobaccocli/internal/errors"
)

// Load parses a delimited text file into a Table. The first record names
// the columns; every data record must have the same field count or the
// load fails with a parse error. Each column's kind is inferred from its
// values: integer if every non-empty value parses as an integer, float if
// every non-empty value parses as a number, string otherwise. Empty
// fields become missing markers of the column kind.
func Load(path string, delim rune) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewStorageError(fmt.Sprintf("failed to open %s", path), err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = delim
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.NewParseError(fmt.Sprintf("failed to parse %s", path), err)
	}
	if len(records) == 0 {
		return nil, errors.NewParseError(fmt.Sprintf("%s has no header row", path), nil)
	}

	header := records[0]
	names := make([]string, len(header))
	for i, h := range header {
		names[i] = strings.TrimSpace(h)
	}

	data := records[1:]
	kinds := inferKinds(data, len(names))

	schema := make(Schema, len(names))
	for i, name := range names {
		schema[i] = Column{Name: name, Kind: kinds[i]}
	}

	rows := make([][]Value, len(data))
	for i, rec := range data {
		row := make([]Value, len(schema))
		for j, field := range rec {
			v, err := parseCell(strings.TrimSpace(field), kinds[j])
			if err != nil {
				return nil, errors.NewParseError(
					fmt.Sprintf("row %d column %q: cannot parse %q", i+1, names[j], field), err)
			}
			row[j] = v
		}
		rows[i] = row
	}

	return &Table{schema: schema, rows: rows}, nil
}

// inferKinds scans every value of each column, narrowing from int to
// float to string as soon as a value stops parsing.
func inferKinds(records [][]string, cols int) []Kind {
	kinds := make([]Kind, cols)
	for col := 0; col < cols; col++ {
		kind := KindInt
		seen := false
		for _, rec := range records {
			field := strings.TrimSpace(rec[col])
			if field == "" {
				continue
			}
			seen = true
			if kind == KindInt {
				if _, err := strconv.ParseInt(stripThousands(field), 10, 64); err == nil {
					continue
				}
				kind = KindFloat
			}
			if kind == KindFloat {
				if _, err := strconv.ParseFloat(stripThousands(field), 64); err == nil {
					continue
				}
				kind = KindString
				break
			}
		}
		if !seen {
			// All-empty column; treat as string of missing markers.
			kind = KindString
		}
		kinds[col] = kind
	}
	return kinds
}

func parseCell(field string, kind Kind) (Value, error) {
	if field == "" {
		return Missing(kind), nil
	}
	switch kind {
	case KindInt:
		n, err := strconv.ParseInt(stripThousands(field), 10, 64)
		if err != nil {
			return Value{}, err
		}
		return Int(n), nil
	case KindFloat:
		f, err := strconv.ParseFloat(stripThousands(field), 64)
		if err != nil {
			return Value{}, err
		}
		return Float(f), nil
	default:
		return String(field), nil
	}
}

// stripThousands removes comma separators so values like "1,234.5" parse.
func stripThousands(s string) string {
	return strings.ReplaceAll(s, ",", "")
}
