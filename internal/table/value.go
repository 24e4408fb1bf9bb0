package table

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the scalar type of a column.
type Kind int

const (
	// KindInt is a 64-bit signed integer column
	KindInt Kind = iota
	// KindFloat is a 64-bit floating point column
	KindFloat
	// KindString is a text column
	KindString
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Numeric reports whether values of this kind can feed numeric reductions.
func (k Kind) Numeric() bool {
	return k == KindInt || k == KindFloat
}

// Value is a single typed cell. The zero Value is a missing int.
type Value struct {
	kind    Kind
	missing bool
	str     string
	num     float64
	integer int64
}

// Int creates an integer value
func Int(v int64) Value {
	return Value{kind: KindInt, integer: v}
}

// Float creates a floating point value
func Float(v float64) Value {
	return Value{kind: KindFloat, num: v}
}

// String creates a text value
func String(v string) Value {
	return Value{kind: KindString, str: v}
}

// Missing creates a missing marker of the given kind
func Missing(kind Kind) Value {
	return Value{kind: kind, missing: true}
}

// Kind returns the scalar kind of the value
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether the cell holds no value
func (v Value) IsMissing() bool { return v.missing }

// Int returns the integer payload. Only meaningful for KindInt values.
func (v Value) Int() int64 { return v.integer }

// Str returns the text payload. Only meaningful for KindString values.
func (v Value) Str() string { return v.str }

// Float returns the numeric payload with int promoted to float.
func (v Value) Float() float64 {
	if v.kind == KindInt {
		return float64(v.integer)
	}
	return v.num
}

// Equal reports exact equality, including kind and missingness.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind || v.missing != o.missing {
		return false
	}
	if v.missing {
		return true
	}
	switch v.kind {
	case KindInt:
		return v.integer == o.integer
	case KindFloat:
		return v.num == o.num
	default:
		return v.str == o.str
	}
}

// Compare orders two values of the same kind. Missing sorts before present.
func (v Value) Compare(o Value) int {
	if v.missing || o.missing {
		switch {
		case v.missing && o.missing:
			return 0
		case v.missing:
			return -1
		default:
			return 1
		}
	}
	switch v.kind {
	case KindInt:
		switch {
		case v.integer < o.integer:
			return -1
		case v.integer > o.integer:
			return 1
		}
		return 0
	case KindFloat:
		switch {
		case v.num < o.num:
			return -1
		case v.num > o.num:
			return 1
		}
		return 0
	default:
		return strings.Compare(v.str, o.str)
	}
}

// Format renders the value for CSV output and duplicate detection.
func (v Value) Format() string {
	if v.missing {
		return ""
	}
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.integer, 10)
	case KindFloat:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	default:
		return v.str
	}
}

// GoString aids debugging output in tests
func (v Value) GoString() string {
	if v.missing {
		return fmt.Sprintf("table.Missing(%s)", v.kind)
	}
	return fmt.Sprintf("table.Value(%s %s)", v.kind, v.Format())
}
