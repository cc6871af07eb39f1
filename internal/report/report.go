// =============================================================================
// Travel Booking Reports - Report Assembler
// =============================================================================
//
// This module composes the aggregator outputs into the combined report and
// exposes each section on its own. It also turns the report into encoded
// artifacts (JSON documents and delimited-text tables).
//
// REPORT PIPELINE:
//   1. Build the city lookup from the destinations (last write wins)
//   2. Enrich every booking with region and popularity score
//   3. Summarize per traveler and per region
//   4. Sort the enriched bookings by popularity, then cost
//   5. Assemble the sections
//
// Assembly never recomputes or re-sorts: every section is exactly the slice
// the corresponding aggregator returned.
//
// =============================================================================

package report

import (
	"github.com/ginjaninja78/travel-booking-reports/internal/aggregate"
	"github.com/ginjaninja78/travel-booking-reports/internal/csvtable"
	"github.com/ginjaninja78/travel-booking-reports/internal/enrich"
	"github.com/ginjaninja78/travel-booking-reports/internal/types"
)

// Artifact names. Each becomes a file name once an extension is added.
const (
	TravelerSummaryName = "travelerSummary"
	RegionSummaryName   = "regionSummary"
	BookingsSortedName  = "bookingsSorted"
	FinalOutputName     = "finalOutput"
)

// =============================================================================
// REPORT STRUCTURE
// =============================================================================

// Report is the combined report document.
type Report struct {
	TravelerSummary  []types.TravelerSummary `json:"travelerSummary"`
	RegionSummary    []types.RegionSummary   `json:"regionSummary"`
	DetailedBookings []types.EnrichedBooking `json:"detailedBookings"`
}

// Options tunes Build.
type Options struct {
	// FallbackRegion is the region given to bookings whose city has no
	// destination. Empty means types.UnknownRegion.
	FallbackRegion string
}

// Document is one structured document to encode.
type Document struct {
	Name  string
	Value any
}

// Table is one delimited-text table to encode.
type Table struct {
	Name    string
	Rows    []csvtable.Row
	Columns []csvtable.Column
}

// =============================================================================
// ASSEMBLY
// =============================================================================

// Build runs the whole pipeline over the two datasets. Neither input is
// modified.
func Build(bookings []types.Booking, destinations []types.Destination, opts Options) *Report {
	fallback := opts.FallbackRegion
	if fallback == "" {
		fallback = types.UnknownRegion
	}

	lookup := enrich.BuildLookup(destinations)
	enriched := enrich.JoinWithFallback(bookings, lookup, fallback)

	return Assemble(
		aggregate.Travelers(enriched),
		aggregate.Regions(enriched),
		aggregate.ByPopularity(enriched),
	)
}

// Assemble pairs the aggregator outputs into one report. Nil sections are
// replaced by empty ones so every document encodes as a list.
func Assemble(travelers []types.TravelerSummary, regions []types.RegionSummary, detailed []types.EnrichedBooking) *Report {
	if travelers == nil {
		travelers = []types.TravelerSummary{}
	}
	if regions == nil {
		regions = []types.RegionSummary{}
	}
	if detailed == nil {
		detailed = []types.EnrichedBooking{}
	}
	return &Report{
		TravelerSummary:  travelers,
		RegionSummary:    regions,
		DetailedBookings: detailed,
	}
}

// Travelers returns the traveler summary section.
func (r *Report) Travelers() []types.TravelerSummary { return r.TravelerSummary }

// Regions returns the region summary section.
func (r *Report) Regions() []types.RegionSummary { return r.RegionSummary }

// Bookings returns the popularity-sorted booking section.
func (r *Report) Bookings() []types.EnrichedBooking { return r.DetailedBookings }

// Documents lists the three standalone documents followed by the combined one.
func (r *Report) Documents() []Document {
	return []Document{
		{Name: TravelerSummaryName, Value: r.TravelerSummary},
		{Name: RegionSummaryName, Value: r.RegionSummary},
		{Name: BookingsSortedName, Value: r.DetailedBookings},
		{Name: FinalOutputName, Value: r},
	}
}

// Tables lists the three summary tables with their column contracts.
func (r *Report) Tables() []Table {
	return []Table{
		{Name: TravelerSummaryName, Rows: csvtable.Rows(r.TravelerSummary), Columns: csvtable.TravelerColumns},
		{Name: RegionSummaryName, Rows: csvtable.Rows(r.RegionSummary), Columns: csvtable.RegionColumns},
		{Name: BookingsSortedName, Rows: csvtable.Rows(r.DetailedBookings), Columns: csvtable.BookingColumns},
	}
}
