// =============================================================================
// Travel Booking Reports - XLSX Writer
// =============================================================================
//
// This module renders the report tables into a single workbook, one sheet
// per table, using the same column contracts as the delimited-text tables.
// Numbers stay numeric cells so the workbook can be summed and sorted.
//
// =============================================================================

package xlsxwriter

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/travel-booking-reports/internal/report"
	"github.com/ginjaninja78/travel-booking-reports/internal/types"
)

// SheetNames maps table names to worksheet names.
var SheetNames = map[string]string{
	report.TravelerSummaryName: "Travelers",
	report.RegionSummaryName:   "Regions",
	report.BookingsSortedName:  "Bookings",
}

// Generate builds the workbook for the given tables.
//
// PARAMETERS:
//   - tables: The tables to render, in sheet order.
//
// RETURNS:
//   - The encoded workbook.
//   - An error if a sheet cannot be written.
func Generate(tables []report.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, table := range tables {
		sheet := sheetName(table.Name)
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sheet); err != nil {
				return nil, fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("failed to add sheet %s: %w", sheet, err)
		}

		if err := writeTable(f, sheet, table, headerStyle); err != nil {
			return nil, fmt.Errorf("failed to write sheet %s: %w", sheet, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}
	return bytes.Clone(buf.Bytes()), nil
}

func writeTable(f *excelize.File, sheet string, table report.Table, headerStyle int) error {
	header := make([]any, len(table.Columns))
	for i, col := range table.Columns {
		header[i] = col.Label
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	if len(table.Columns) > 0 {
		last, err := excelize.CoordinatesToCellName(len(table.Columns), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
			return err
		}
	}

	for r, row := range table.Rows {
		values := make([]any, len(table.Columns))
		if row != nil {
			for c, col := range table.Columns {
				if v, ok := row.Field(col.Key); ok {
					values[c] = CellValue(v)
				}
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}

	return nil
}

// CellValue converts a table value into what excelize should store. Missing
// values become empty cells and numeric identifiers become numbers.
func CellValue(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case *float64:
		if val == nil {
			return nil
		}
		return *val
	case types.ID:
		if val.IsZero() {
			return nil
		}
		if val.IsNumeric() {
			if f, err := strconv.ParseFloat(val.String(), 64); err == nil {
				return f
			}
		}
		return val.String()
	default:
		return v
	}
}

func sheetName(table string) string {
	if name, ok := SheetNames[table]; ok {
		return name
	}
	return table
}
