package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Row is a single record as decoded from a JSON response.
type Row map[string]any

// Column describes one table column.
type Column struct {
	// ID identifies the column in filters and widths. Without an Accessor it is
	// also the dotted path of the value inside a Row (e.g. "company.name").
	ID string

	// Label is the header text.
	Label string

	// DefaultWidth seeds the column width.
	DefaultWidth int

	// Accessor derives the cell text. Optional.
	Accessor func(Row) string
}

// Value returns the display text of the column for row.
func (c Column) Value(row Row) string {
	if c.Accessor != nil {
		return c.Accessor(row)
	}
	return FormatValue(Lookup(row, c.ID))
}

// Lookup resolves a dotted path inside nested JSON objects.
// It returns nil when any segment is missing.
func Lookup(row Row, path string) any {
	var current any = map[string]any(row)
	for _, part := range strings.Split(path, ".") {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current, ok = obj[part]
		if !ok {
			return nil
		}
	}
	return current
}

// FormatValue renders a decoded JSON value as cell text.
func FormatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		if val == math.Trunc(val) && math.Abs(val) < 1e15 {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}
