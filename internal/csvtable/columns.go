package csvtable

// TravelerColumns is the column contract of the traveler summary table.
var TravelerColumns = []Column{
	{Key: "travelerId", Label: "Traveler ID"},
	{Key: "totalBookings", Label: "Total Bookings"},
	{Key: "totalSpent", Label: "Total Spent"},
	{Key: "averageCostPerBooking", Label: "Avg Cost / Booking"},
}

// RegionColumns is the column contract of the region summary table.
// "totalRegionalVisits" and "uniqueTravelers" are resolved by
// types.RegionSummary.Field.
var RegionColumns = []Column{
	{Key: "region", Label: "Region"},
	{Key: "totalRegionalVisits", Label: "Total Visits"},
	{Key: "uniqueTravelers", Label: "Unique Travelers"},
	{Key: "totalRegionalSpent", Label: "Total Spent"},
}

// BookingColumns is the column contract of the sorted bookings table.
var BookingColumns = []Column{
	{Key: "booking_id", Label: "Booking ID"},
	{Key: "traveler_id", Label: "Traveler ID"},
	{Key: "city", Label: "City"},
	{Key: "region", Label: "Region"},
	{Key: "start_date", Label: "Start Date"},
	{Key: "end_date", Label: "End Date"},
	{Key: "cost", Label: "Cost"},
	{Key: "popularityScore", Label: "Popularity Score"},
}
