package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ID is a record identifier that may be numeric or textual in the source
// data. It is comparable, so it can be used as a grouping key, and it keeps
// its original JSON form: numeric identifiers encode as JSON numbers, textual
// ones as strings. The zero ID stands for a missing identifier and encodes as
// null.
type ID struct {
	value   string
	numeric bool
}

// StringID returns a textual identifier.
func StringID(s string) ID {
	return ID{value: s}
}

// NumericID returns a numeric identifier.
func NumericID(n int64) ID {
	return ID{value: fmt.Sprintf("%d", n), numeric: true}
}

// ParseID interprets raw text from an untyped source (CSV cell, spreadsheet
// cell, SQL text column). Values that are valid JSON numbers become numeric
// identifiers; blank values become the zero ID.
func ParseID(raw string) ID {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ID{}
	}
	if isJSONNumber(s) {
		return ID{value: s, numeric: true}
	}
	return ID{value: s}
}

// String returns the identifier text, or "" for the zero ID.
func (id ID) String() string { return id.value }

// IsZero reports whether the identifier is missing.
func (id ID) IsZero() bool { return id.value == "" }

// IsNumeric reports whether the identifier came from a numeric value.
func (id ID) IsNumeric() bool { return id.numeric }

// MarshalJSON implements json.Marshaler.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.IsZero() {
		return []byte("null"), nil
	}
	if id.numeric {
		return []byte(id.value), nil
	}
	return json.Marshal(id.value)
}

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ID{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("invalid identifier %s: %w", data, err)
		}
		*id = StringID(s)
		return nil
	}
	if !isJSONNumber(string(data)) {
		return fmt.Errorf("invalid identifier %s: must be a number or a string", data)
	}
	*id = ID{value: string(data), numeric: true}
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (id *ID) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: identifier must be a scalar", node.Line)
	}
	switch node.ShortTag() {
	case "!!null":
		*id = ID{}
	case "!!int", "!!float":
		*id = ParseID(node.Value)
		if !id.numeric {
			// YAML-only number forms (0x1F, .inf) stay textual.
			*id = StringID(node.Value)
		}
	default:
		*id = StringID(node.Value)
	}
	return nil
}

func isJSONNumber(s string) bool {
	if s == "" {
		return false
	}
	if c := s[0]; c != '-' && (c < '0' || c > '9') {
		return false
	}
	var n json.Number
	return json.Unmarshal([]byte(s), &n) == nil
}
