package csvtable

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// Decode parses a table produced by Encode back into rows of cells, header
// row first. A leading byte-order mark is skipped.
func Decode(data []byte) ([][]string, error) {
	data = bytes.TrimPrefix(data, []byte(BOM))

	reader := csv.NewReader(bytes.NewReader(data))

	// Allow variable number of fields per row; heterogeneous tables are
	// decoded as written.
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to decode table: %w", err)
	}
	return records, nil
}
