package csvtable

import (
	"strings"
	"testing"

	"github.com/ginjaninja78/travel-booking-reports/internal/types"
)

func TestEscapeCell(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "Paris", want: "Paris"},
		{name: "empty", in: "", want: ""},
		{name: "comma", in: "a,b", want: `"a,b"`},
		{name: "quote", in: `say "x"`, want: `"say ""x"""`},
		{name: "line feed", in: "a\nb", want: "\"a\nb\""},
		{name: "carriage return", in: "a\rb", want: "\"a\rb\""},
		{name: "spaces only", in: "  padded  ", want: "  padded  "},
		{name: "mixed", in: "He said \"hi\", then left\n", want: "\"He said \"\"hi\"\", then left\n\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeCell(tt.in); got != tt.want {
				t.Errorf("EscapeCell(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEscapeRoundTrip(t *testing.T) {
	original := "He said \"hi\", then left\n"
	data := Encode([]Row{MapRow{"note": original}}, []Column{{Key: "note", Label: "Note"}})

	records, err := Decode(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("decoded %d rows, want 2", len(records))
	}
	if records[1][0] != original {
		t.Errorf("round trip = %q, want %q", records[1][0], original)
	}
}

func TestEncodeTravelerTable(t *testing.T) {
	rows := Rows([]types.TravelerSummary{
		{TravelerID: types.NumericID(1), TotalBookings: 3, TotalSpent: 300, AverageCostPerBooking: 100},
		{TravelerID: types.StringID("B"), TotalBookings: 2, TotalSpent: 30.5, AverageCostPerBooking: 15.25},
	})

	got := string(Encode(rows, TravelerColumns))

	want := BOM +
		"Traveler ID,Total Bookings,Total Spent,Avg Cost / Booking\r\n" +
		"1,3,300,100\r\n" +
		"B,2,30.5,15.25\r\n"
	if got != want {
		t.Errorf("Encode() =\n%q\nwant\n%q", got, want)
	}
}

func TestEncodeRegionTableUsesResolvedColumns(t *testing.T) {
	rows := Rows([]types.RegionSummary{
		{Region: "East", TotalRegionalSpent: 300, UniqueTravelersByRegion: 2, TotalRegionalVisits: 3},
	})

	got := string(Encode(rows, RegionColumns))

	want := BOM +
		"Region,Total Visits,Unique Travelers,Total Spent\r\n" +
		"East,3,2,300\r\n"
	if got != want {
		t.Errorf("Encode() =\n%q\nwant\n%q", got, want)
	}
}

func TestEncodeMissingValuesAreEmpty(t *testing.T) {
	columns := []Column{{Key: "a", Label: "A"}, {Key: "b", Label: "B"}, {Key: "c", Label: "C"}}
	rows := []Row{
		MapRow{"a": 1, "b": nil},
		MapRow{"c": "x"},
		nil,
		types.EnrichedBooking{City: "Rome"},
	}

	got := string(Encode(rows, columns))

	want := BOM + "A,B,C\r\n" + "1,,\r\n" + ",,x\r\n" + ",,\r\n" + ",,\r\n"
	if got != want {
		t.Errorf("Encode() =\n%q\nwant\n%q", got, want)
	}
}

func TestEncodeNoRows(t *testing.T) {
	got := string(Encode(nil, []Column{{Key: "a", Label: "A, quoted"}}))
	want := BOM + "\"A, quoted\"\r\n"
	if got != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}
}

func TestEveryRowEndsInCRLF(t *testing.T) {
	data := string(Encode(Rows([]types.EnrichedBooking{
		{BookingID: types.NumericID(1), City: "A"},
		{BookingID: types.NumericID(2), City: "B"},
	}), BookingColumns))

	body := strings.TrimPrefix(data, BOM)
	if !strings.HasSuffix(body, "\r\n") {
		t.Fatal("last row must end in CRLF")
	}
	lines := strings.Split(strings.TrimSuffix(body, "\r\n"), "\r\n")
	if len(lines) != 3 {
		t.Errorf("got %d lines, want 3", len(lines))
	}
}

func TestFormatValue(t *testing.T) {
	f := 2.5
	tests := []struct {
		name string
		in   any
		want string
	}{
		{name: "nil", in: nil, want: ""},
		{name: "integral float", in: 300.0, want: "300"},
		{name: "fraction", in: 100.5, want: "100.5"},
		{name: "negative", in: -12.75, want: "-12.75"},
		{name: "int", in: 42, want: "42"},
		{name: "bool", in: true, want: "true"},
		{name: "float pointer", in: &f, want: "2.5"},
		{name: "nil float pointer", in: (*float64)(nil), want: ""},
		{name: "zero id", in: types.ID{}, want: ""},
		{name: "numeric id", in: types.NumericID(9), want: "9"},
		{name: "text id", in: types.StringID("T1"), want: "T1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatValue(tt.in); got != tt.want {
				t.Errorf("FormatValue(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDecodeSkipsBOM(t *testing.T) {
	records, err := Decode([]byte(BOM + "A,B\r\n1,2\r\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if records[0][0] != "A" {
		t.Errorf("header cell = %q, want A", records[0][0])
	}
}
