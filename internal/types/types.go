// =============================================================================
// Travel Booking Reports - Shared Types
// =============================================================================
//
// This package contains the record model shared by every stage of the report
// pipeline. Types defined here are used by:
//   - source      (loading bookings and destinations)
//   - enrich      (joining bookings with destinations)
//   - aggregate   (traveler and region summaries, popularity sort)
//   - report      (assembling documents and tables)
//
// Input records (Booking, Destination) are never mutated by the pipeline.
// Every derived record is a new value.
//
// =============================================================================

package types

// UnknownRegion is the region assigned to a booking whose city has no
// destination record.
const UnknownRegion = "Unknown"

// =============================================================================
// INPUT RECORDS
// =============================================================================

// Booking is a single travel booking as supplied by the source dataset.
type Booking struct {
	// BookingID identifies the booking. Uniqueness is assumed, not enforced.
	BookingID ID `json:"booking_id" yaml:"booking_id"`

	// TravelerID identifies the traveler who made the booking.
	TravelerID ID `json:"traveler_id" yaml:"traveler_id"`

	// City is the join key against Destination.City.
	City string `json:"city" yaml:"city"`

	// StartDate and EndDate are carried through verbatim.
	StartDate string `json:"start_date" yaml:"start_date"`
	EndDate   string `json:"end_date" yaml:"end_date"`

	// Cost is nil when the source record has no cost.
	Cost *float64 `json:"cost" yaml:"cost"`

	// Region as supplied by the source. It is not trusted and is replaced
	// during enrichment.
	Region string `json:"region,omitempty" yaml:"region,omitempty"`
}

// Traveler returns the traveler the booking belongs to.
func (b Booking) Traveler() ID { return b.TravelerID }

// Amount returns the booking cost, or 0 when the cost is missing.
func (b Booking) Amount() float64 {
	if b.Cost == nil {
		return 0
	}
	return *b.Cost
}

// HasCost reports whether the source record carried a cost.
func (b Booking) HasCost() bool { return b.Cost != nil }

// Destination is the metadata for one city.
type Destination struct {
	City            string  `json:"city" yaml:"city"`
	Region          string  `json:"region" yaml:"region"`
	PopularityScore float64 `json:"popularity_score" yaml:"popularity_score"`
}

// =============================================================================
// DERIVED RECORDS
// =============================================================================

// EnrichedBooking is a booking joined with its destination's region and
// popularity score.
type EnrichedBooking struct {
	BookingID       ID       `json:"booking_id"`
	TravelerID      ID       `json:"traveler_id"`
	City            string   `json:"city"`
	StartDate       string   `json:"start_date"`
	EndDate         string   `json:"end_date"`
	Cost            *float64 `json:"cost"`
	Region          string   `json:"region"`
	PopularityScore float64  `json:"popularityScore"`
}

// Traveler returns the traveler the booking belongs to.
func (e EnrichedBooking) Traveler() ID { return e.TravelerID }

// Amount returns the booking cost, or 0 when the cost is missing.
func (e EnrichedBooking) Amount() float64 {
	if e.Cost == nil {
		return 0
	}
	return *e.Cost
}

// Field returns the value stored under a table column key.
func (e EnrichedBooking) Field(key string) (any, bool) {
	switch key {
	case "booking_id":
		return e.BookingID, true
	case "traveler_id":
		return e.TravelerID, true
	case "city":
		return e.City, true
	case "region":
		return e.Region, true
	case "start_date":
		return e.StartDate, true
	case "end_date":
		return e.EndDate, true
	case "cost":
		if e.Cost == nil {
			return nil, true
		}
		return *e.Cost, true
	case "popularityScore":
		return e.PopularityScore, true
	}
	return nil, false
}

// TravelerSummary holds the spending totals of one traveler.
type TravelerSummary struct {
	TravelerID            ID      `json:"travelerId"`
	TotalBookings         int     `json:"totalBookings"`
	TotalSpent            float64 `json:"totalSpent"`
	AverageCostPerBooking float64 `json:"averageCostPerBooking"`
}

// Field returns the value stored under a table column key.
func (s TravelerSummary) Field(key string) (any, bool) {
	switch key {
	case "travelerId":
		return s.TravelerID, true
	case "totalBookings":
		return s.TotalBookings, true
	case "totalSpent":
		return s.TotalSpent, true
	case "averageCostPerBooking":
		return s.AverageCostPerBooking, true
	}
	return nil, false
}

// RegionSummary holds the spending totals of one region.
type RegionSummary struct {
	Region                  string  `json:"region"`
	TotalRegionalSpent      float64 `json:"totalRegionalSpent"`
	UniqueTravelersByRegion int     `json:"uniqueTravelersByRegion"`

	// TotalRegionalVisits is the number of bookings in the region. It backs
	// the "Total Visits" table column and is not part of the document.
	TotalRegionalVisits int `json:"-"`
}

// Field returns the value stored under a table column key. The table keys
// "totalRegionalVisits" and "uniqueTravelers" resolve to the visit count and
// the distinct traveler count.
func (s RegionSummary) Field(key string) (any, bool) {
	switch key {
	case "region":
		return s.Region, true
	case "totalRegionalSpent":
		return s.TotalRegionalSpent, true
	case "totalRegionalVisits":
		return s.TotalRegionalVisits, true
	case "uniqueTravelers", "uniqueTravelersByRegion":
		return s.UniqueTravelersByRegion, true
	}
	return nil, false
}
