// =============================================================================
// Travel Booking Reports - Dataset Sources
// =============================================================================
//
// This module loads the two input datasets (bookings and destinations) from
// the source described by config.SourceSettings:
//   - "json" / "yaml": an array of records, decoded directly
//   - "csv":           a header row followed by data rows
//   - "xlsx":          the same layout on a worksheet
//   - "sql":           the rows of a SELECT statement
//
// TABULAR SOURCES:
//   CSV, XLSX and SQL sources are first read into rows of header -> value.
//   Headers are matched case-insensitively and ignoring "_", " " and "-",
//   so "booking_id", "BookingID" and "Booking Id" all name the same field.
//   An empty cell is a missing value: a missing cost stays missing, a missing
//   identifier becomes the zero ID.
//
// =============================================================================

package source

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ginjaninja78/travel-booking-reports/internal/config"
	"github.com/ginjaninja78/travel-booking-reports/internal/types"
)

// Row is one tabular record keyed by normalized header.
type Row map[string]string

// Table is the intermediate form shared by the tabular sources.
type Table struct {
	// Source names where the rows came from, for error messages.
	Source string

	Rows []Row
}

// LoadBookings reads the booking dataset.
func LoadBookings(ctx context.Context, settings config.SourceSettings) ([]types.Booking, error) {
	return load(ctx, settings, defaultBookingsQuery, bookingFromRow)
}

// LoadDestinations reads the destination dataset.
func LoadDestinations(ctx context.Context, settings config.SourceSettings) ([]types.Destination, error) {
	return load(ctx, settings, defaultDestinationsQuery, destinationFromRow)
}

func load[T any](ctx context.Context, settings config.SourceSettings, defaultQuery string, fromRow func(Row) (T, error)) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		table *Table
		err   error
	)

	switch settings.Type {
	case config.SourceJSON:
		return decodeJSONFile[T](settings.Path)
	case config.SourceYAML:
		return decodeYAMLFile[T](settings.Path)
	case config.SourceCSV:
		table, err = ReadCSV(settings.Path, settings.Delimiter)
	case config.SourceXLSX:
		table, err = ReadXLSX(settings.Path, settings.Sheet)
	case config.SourceSQL:
		query := settings.Query
		if query == "" {
			query = defaultQuery
		}
		table, err = ReadSQL(ctx, settings.DSN, query)
	default:
		return nil, fmt.Errorf("unsupported source type %q", settings.Type)
	}
	if err != nil {
		return nil, err
	}

	return convertRows(table, fromRow)
}

// BookingsFromTable converts tabular rows into bookings.
func BookingsFromTable(table *Table) ([]types.Booking, error) {
	return convertRows(table, bookingFromRow)
}

// DestinationsFromTable converts tabular rows into destinations.
func DestinationsFromTable(table *Table) ([]types.Destination, error) {
	return convertRows(table, destinationFromRow)
}

// convertRows turns every row of the table into a record.
func convertRows[T any](table *Table, fromRow func(Row) (T, error)) ([]T, error) {
	records := make([]T, 0, len(table.Rows))
	for i, row := range table.Rows {
		record, err := fromRow(row)
		if err != nil {
			return nil, fmt.Errorf("%s: record %d: %w", table.Source, i+1, err)
		}
		records = append(records, record)
	}
	return records, nil
}

// =============================================================================
// RECORD CONVERSION
// =============================================================================

func bookingFromRow(row Row) (types.Booking, error) {
	cost, err := optionalFloat(row["cost"])
	if err != nil {
		return types.Booking{}, fmt.Errorf("invalid cost: %w", err)
	}
	return types.Booking{
		BookingID:  types.ParseID(row["bookingid"]),
		TravelerID: types.ParseID(row["travelerid"]),
		City:       row["city"],
		StartDate:  row["startdate"],
		EndDate:    row["enddate"],
		Cost:       cost,
		Region:     row["region"],
	}, nil
}

func destinationFromRow(row Row) (types.Destination, error) {
	score, err := optionalFloat(row["popularityscore"])
	if err != nil {
		return types.Destination{}, fmt.Errorf("invalid popularity score: %w", err)
	}
	d := types.Destination{City: row["city"], Region: row["region"]}
	if score != nil {
		d.PopularityScore = *score
	}
	return d, nil
}

// optionalFloat parses a numeric cell. A blank cell yields nil.
func optionalFloat(raw string) (*float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// =============================================================================
// HEADER HANDLING
// =============================================================================

// NormalizeHeader folds a column header to its lookup key.
func NormalizeHeader(header string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(header)) {
		switch r {
		case '_', ' ', '-', '\uFEFF':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// rowsFromRecords converts a header record plus data records into rows,
// skipping rows whose cells are all blank.
func rowsFromRecords(records [][]string) []Row {
	if len(records) == 0 {
		return []Row{}
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = NormalizeHeader(h)
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		if isRecordEmpty(record) {
			continue
		}
		row := make(Row, len(headers))
		for i, header := range headers {
			if header == "" {
				continue
			}
			if i < len(record) {
				row[header] = strings.TrimSpace(record[i])
			} else {
				row[header] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}

func isRecordEmpty(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
