package source

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads a dataset from a worksheet laid out like a CSV file: the
// first row holds the headers.
//
// PARAMETERS:
//   - filePath: The path to the workbook.
//   - sheet: The worksheet name. Empty means the first sheet.
//
// RETURNS:
//   - The rows keyed by normalized header.
//   - An error if the workbook or sheet cannot be read.
func ReadXLSX(filePath, sheet string) (*Table, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, fmt.Errorf("sheet %q not found in %s", sheet, filePath)
	}

	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	return &Table{Source: fmt.Sprintf("%s[%s]", filePath, sheet), Rows: rowsFromRecords(records)}, nil
}
