// Package enrich left-joins bookings against destination metadata by city.
package enrich

import (
	"github.com/ginjaninja78/travel-booking-reports/internal/grouping"
	"github.com/ginjaninja78/travel-booking-reports/internal/types"
)

// Info is the destination data copied onto a matching booking.
type Info struct {
	Region          string
	PopularityScore float64
}

// BuildLookup maps each city to its destination info. If a city appears more
// than once the last destination in input order wins.
func BuildLookup(destinations []types.Destination) map[string]Info {
	return grouping.Last(destinations,
		func(d types.Destination) string { return d.City },
		func(d types.Destination) Info {
			return Info{Region: d.Region, PopularityScore: d.PopularityScore}
		},
	)
}

// Join enriches every booking, in input order, using types.UnknownRegion as
// the fallback region.
func Join(bookings []types.Booking, lookup map[string]Info) []types.EnrichedBooking {
	return JoinWithFallback(bookings, lookup, types.UnknownRegion)
}

// JoinWithFallback enriches every booking, in input order. Bookings whose
// city has no entry in lookup get fallbackRegion and a popularity score of 0.
// No booking is dropped and the input is left untouched.
func JoinWithFallback(bookings []types.Booking, lookup map[string]Info, fallbackRegion string) []types.EnrichedBooking {
	out := make([]types.EnrichedBooking, len(bookings))
	for i, b := range bookings {
		info, ok := lookup[b.City]
		if !ok {
			info = Info{Region: fallbackRegion, PopularityScore: 0}
		}
		out[i] = types.EnrichedBooking{
			BookingID:       b.BookingID,
			TravelerID:      b.TravelerID,
			City:            b.City,
			StartDate:       b.StartDate,
			EndDate:         b.EndDate,
			Cost:            copyCost(b.Cost),
			Region:          info.Region,
			PopularityScore: info.PopularityScore,
		}
	}
	return out
}

// Unmatched returns the distinct cities that have no lookup entry, in the
// order they first appear in bookings.
func Unmatched(bookings []types.Booking, lookup map[string]Info) []string {
	byCity := grouping.By(bookings, func(b types.Booking) string { return b.City })
	var cities []string
	for _, city := range byCity.Keys() {
		if _, ok := lookup[city]; !ok {
			cities = append(cities, city)
		}
	}
	return cities
}

// DuplicateCities returns the cities that have more than one destination
// record, in first-seen order.
func DuplicateCities(destinations []types.Destination) []string {
	byCity := grouping.By(destinations, func(d types.Destination) string { return d.City })
	var dups []string
	for city, members := range byCity.All() {
		if len(members) > 1 {
			dups = append(dups, city)
		}
	}
	return dups
}

func copyCost(c *float64) *float64 {
	if c == nil {
		return nil
	}
	v := *c
	return &v
}
