package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/xuri/excelize/v2"

	"github.com/ginjaninja78/travel-booking-reports/internal/config"
	"github.com/ginjaninja78/travel-booking-reports/internal/types"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func checkBooking(t *testing.T, got types.Booking, id, traveler, city string, cost *float64) {
	t.Helper()
	if got.BookingID.String() != id || got.TravelerID.String() != traveler || got.City != city {
		t.Errorf("booking = %+v, want id=%s traveler=%s city=%s", got, id, traveler, city)
	}
	switch {
	case cost == nil && got.Cost != nil:
		t.Errorf("booking %s cost = %v, want missing", id, *got.Cost)
	case cost != nil && (got.Cost == nil || *got.Cost != *cost):
		t.Errorf("booking %s cost = %v, want %v", id, got.Cost, *cost)
	}
}

func ptr(f float64) *float64 { return &f }

func TestLoadBookingsJSON(t *testing.T) {
	path := writeFile(t, "bookings.json", `[
  {"booking_id": 1, "traveler_id": "T1", "city": "Rome", "start_date": "2024-01-01", "end_date": "2024-01-03", "cost": 120.5},
  {"booking_id": 2, "traveler_id": "T2", "city": "Oslo", "start_date": "2024-02-01", "end_date": "2024-02-03", "cost": null}
]`)

	got, err := LoadBookings(context.Background(), config.SourceSettings{Type: config.SourceJSON, Path: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d bookings, want 2", len(got))
	}
	checkBooking(t, got[0], "1", "T1", "Rome", ptr(120.5))
	checkBooking(t, got[1], "2", "T2", "Oslo", nil)
	if !got[0].BookingID.IsNumeric() || got[0].TravelerID.IsNumeric() {
		t.Error("identifier forms were not preserved")
	}
}

func TestLoadDestinationsYAML(t *testing.T) {
	path := writeFile(t, "destinations.yaml", `
- city: Rome
  region: South
  popularity_score: 8
- city: Oslo
  region: North
  popularity_score: 6.5
`)

	got, err := LoadDestinations(context.Background(), config.SourceSettings{Type: config.SourceYAML, Path: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []types.Destination{{City: "Rome", Region: "South", PopularityScore: 8}, {City: "Oslo", Region: "North", PopularityScore: 6.5}}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestLoadEmptyYAML(t *testing.T) {
	path := writeFile(t, "empty.yaml", "")
	got, err := LoadDestinations(context.Background(), config.SourceSettings{Type: config.SourceYAML, Path: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

func TestLoadBookingsCSV(t *testing.T) {
	path := writeFile(t, "bookings.csv", "\uFEFFBooking ID|traveler_id|City|start_date|end_date|Cost\n"+
		"1|T1|Rome|2024-01-01|2024-01-03|120.5\n"+
		"\n"+
		"2|T2|\"New York, NY\"|2024-02-01|2024-02-03|\n"+
		"3|T1|Oslo\n")

	got, err := LoadBookings(context.Background(), config.SourceSettings{Type: config.SourceCSV, Path: path, Delimiter: "pipe"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d bookings, want 3", len(got))
	}
	checkBooking(t, got[0], "1", "T1", "Rome", ptr(120.5))
	checkBooking(t, got[1], "2", "T2", "New York, NY", nil)
	checkBooking(t, got[2], "3", "T1", "Oslo", nil)
	if got[2].EndDate != "" {
		t.Errorf("short row end date = %q", got[2].EndDate)
	}
}

func TestLoadBookingsCSVInvalidCost(t *testing.T) {
	path := writeFile(t, "bookings.csv", "booking_id,traveler_id,city,cost\n1,T1,Rome,cheap\n")

	_, err := LoadBookings(context.Background(), config.SourceSettings{Type: config.SourceCSV, Path: path})
	if err == nil || !strings.Contains(err.Error(), "record 1: invalid cost") {
		t.Fatalf("err = %v, want invalid cost", err)
	}
}

func TestLoadDestinationsXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	if _, err := f.NewSheet("Cities"); err != nil {
		t.Fatalf("failed to add sheet: %v", err)
	}
	rows := [][]any{
		{"City", "Region", "Popularity Score"},
		{"Rome", "South", 8},
		{"Oslo", "North", 6.5},
		{"Nowhere", "", nil},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Cities", cell, &row); err != nil {
			t.Fatalf("failed to set row: %v", err)
		}
	}
	path := filepath.Join(t.TempDir(), "destinations.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save workbook: %v", err)
	}

	got, err := LoadDestinations(context.Background(), config.SourceSettings{Type: config.SourceXLSX, Path: path, Sheet: "Cities"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []types.Destination{
		{City: "Rome", Region: "South", PopularityScore: 8},
		{City: "Oslo", Region: "North", PopularityScore: 6.5},
		{City: "Nowhere"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d destinations, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("destination %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	if _, err := ReadXLSX(path, "Missing"); err == nil {
		t.Error("expected an error for a missing sheet")
	}
}

func TestQueryTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT booking_id").
		WillReturnRows(sqlmock.NewRows([]string{"booking_id", "traveler_id", "city", "start_date", "end_date", "cost"}).
			AddRow(1, "T1", "Rome", "2024-01-01", "2024-01-03", 120.5).
			AddRow(2, 7, "Oslo", "2024-02-01", "2024-02-03", nil))

	table, err := QueryTable(context.Background(), db, defaultBookingsQuery)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := BookingsFromTable(table)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d bookings, want 2", len(got))
	}
	checkBooking(t, got[0], "1", "T1", "Rome", ptr(120.5))
	checkBooking(t, got[1], "2", "7", "Oslo", nil)
	if !got[1].TravelerID.IsNumeric() {
		t.Error("numeric traveler column should give a numeric ID")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestDestinationsFromTable(t *testing.T) {
	table := &Table{Source: "test", Rows: []Row{{"city": "Rome", "region": "South", "popularityscore": "x"}}}
	if _, err := DestinationsFromTable(table); err == nil || !strings.Contains(err.Error(), "test: record 1") {
		t.Errorf("err = %v, want record error", err)
	}
}

func TestNormalizeHeader(t *testing.T) {
	tests := map[string]string{
		"booking_id":        "bookingid",
		" Booking ID ":      "bookingid",
		"popularityScore":   "popularityscore",
		"\uFEFFcity":        "city",
		"start-date":        "startdate",
		"Popularity_Score ": "popularityscore",
	}
	for in, want := range tests {
		if got := NormalizeHeader(in); got != want {
			t.Errorf("NormalizeHeader(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLoadCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := LoadBookings(ctx, config.SourceSettings{Type: config.SourceJSON, Path: "unused.json"}); err == nil {
		t.Error("expected context error")
	}
}

func TestLoadUnsupportedType(t *testing.T) {
	if _, err := LoadBookings(context.Background(), config.SourceSettings{Type: "parquet"}); err == nil {
		t.Error("expected an error")
	}
}
