package source

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/ginjaninja78/travel-booking-reports/internal/csvtable"
)

// ReadCSV reads a delimited-text dataset: one header row followed by data
// rows. A leading byte order mark is ignored.
//
// PARAMETERS:
//   - filePath: The path to the CSV file.
//   - delimiter: The field separator ("," when empty). The names "tab",
//     "pipe" and "semicolon" are accepted too.
//
// RETURNS:
//   - The rows keyed by normalized header.
//   - An error if the file cannot be read or parsed.
func ReadCSV(filePath, delimiter string) (*Table, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte(csvtable.BOM))

	reader := csv.NewReader(bytes.NewReader(data))
	configureReader(reader, delimiter)

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV %s: %w", filePath, err)
	}

	return &Table{Source: filePath, Rows: rowsFromRecords(records)}, nil
}

// configureReader applies the delimiter and the lenient parsing options.
func configureReader(reader *csv.Reader, delimiter string) {
	switch delimiter {
	case "\\t", "\t", "tab", "TAB":
		reader.Comma = '\t'
	case "|", "pipe", "PIPE":
		reader.Comma = '|'
	case ";", "semicolon":
		reader.Comma = ';'
	default:
		if len(delimiter) > 0 {
			reader.Comma = rune(delimiter[0])
		} else {
			reader.Comma = ','
		}
	}

	// Rows may be shorter than the header; missing cells read as blank.
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
}
