// =============================================================================
// Travel Booking Reports - Table Encoder
// =============================================================================
//
// This module converts an ordered sequence of flat records into delimited
// text that spreadsheet tools open directly.
//
// OUTPUT FORMAT:
//   - A UTF-8 byte-order mark, then the header row of column labels
//   - One row per record, cells in column order
//   - Every row, including the last, ends in CRLF
//
// ESCAPING:
//   A cell containing a comma, a double quote, CR or LF is wrapped in double
//   quotes and every embedded double quote is doubled:
//
//   Input:  He said "hi", then left
//   Output: "He said ""hi"", then left"
//
// MISSING VALUES:
//   A record without a declared column, or holding nil for it, yields an
//   empty cell. Records of different shapes can share one table.
//
// =============================================================================

package csvtable

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// BOM is the UTF-8 byte-order mark written before the header row.
const BOM = "\uFEFF"

// EOL terminates every row.
const EOL = "\r\n"

// =============================================================================
// COLUMNS AND ROWS
// =============================================================================

// Column maps a record field to its header label.
type Column struct {
	// Key is the field read from each record.
	Key string

	// Label is the text written in the header row.
	Label string
}

// Row is a record the encoder can read fields from. Field reports false when
// the record has no such field.
type Row interface {
	Field(key string) (any, bool)
}

// MapRow adapts a generic map record to Row.
type MapRow map[string]any

// Field implements Row.
func (m MapRow) Field(key string) (any, bool) {
	v, ok := m[key]
	return v, ok
}

// Rows converts a typed slice into a slice of Row.
func Rows[T Row](records []T) []Row {
	out := make([]Row, len(records))
	for i, r := range records {
		out[i] = r
	}
	return out
}

// =============================================================================
// ENCODING
// =============================================================================

// Encode renders the header row and one row per record.
func Encode(rows []Row, columns []Column) []byte {
	var buffer bytes.Buffer
	buffer.WriteString(BOM)

	labels := make([]string, len(columns))
	for i, col := range columns {
		labels[i] = col.Label
	}
	writeRow(&buffer, labels)

	cells := make([]string, len(columns))
	for _, row := range rows {
		for i, col := range columns {
			cells[i] = ""
			if row == nil {
				continue
			}
			if v, ok := row.Field(col.Key); ok {
				cells[i] = FormatValue(v)
			}
		}
		writeRow(&buffer, cells)
	}

	return buffer.Bytes()
}

func writeRow(buffer *bytes.Buffer, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			buffer.WriteByte(',')
		}
		buffer.WriteString(EscapeCell(cell))
	}
	buffer.WriteString(EOL)
}

// EscapeCell quotes s when it contains a comma, a double quote, CR or LF.
func EscapeCell(s string) string {
	if !needsQuoting(s) {
		return s
	}
	return `"` + doubleQuotes(s) + `"`
}

func needsQuoting(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ',', '"', '\r', '\n':
			return true
		}
	}
	return false
}

func doubleQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, `""`)
}

// =============================================================================
// VALUE FORMATTING
// =============================================================================

// FormatValue renders a field value as cell text. Numbers use the shortest
// representation that round-trips (300, 100.5); nil and zero identifiers
// render as "".
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return formatFloat(x)
	case float32:
		return formatFloat(float64(x))
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case bool:
		return strconv.FormatBool(x)
	case *float64:
		if x == nil {
			return ""
		}
		return formatFloat(*x)
	case *string:
		if x == nil {
			return ""
		}
		return *x
	case interface{ IsZero() bool }:
		if x.IsZero() {
			return ""
		}
	}
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprint(v)
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
