// =============================================================================
// Travel Booking Reports - Aggregators
// =============================================================================
//
// Three independent reducers over booking records:
//   - Travelers:    count, total and mean cost per traveler
//   - Regions:      total cost and distinct travelers per region
//   - ByPopularity: every booking, most popular destination first
//
// Each reducer returns new values and leaves its input untouched.
//
// =============================================================================

package aggregate

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/ginjaninja78/travel-booking-reports/internal/grouping"
	"github.com/ginjaninja78/travel-booking-reports/internal/types"
)

// Spender is a record that belongs to a traveler and carries a cost. Both
// types.Booking and types.EnrichedBooking satisfy it.
type Spender interface {
	Traveler() types.ID
	Amount() float64
}

// =============================================================================
// TRAVELER SUMMARY
// =============================================================================

// Travelers summarizes bookings per traveler, in first-seen traveler order.
func Travelers[B Spender](bookings []B) []types.TravelerSummary {
	groups := grouping.By(bookings, func(b B) types.ID { return b.Traveler() })

	return grouping.Map(groups, func(traveler types.ID, members []B) types.TravelerSummary {
		var total float64
		for _, b := range members {
			total += b.Amount()
		}
		return types.TravelerSummary{
			TravelerID:            traveler,
			TotalBookings:         len(members),
			TotalSpent:            total,
			AverageCostPerBooking: average(total, len(members)),
		}
	})
}

// average divides total by count. Every group produced by grouping.By has at
// least one member, so a zero count means a caller broke that contract.
func average(total float64, count int) float64 {
	if count <= 0 {
		panic(fmt.Sprintf("aggregate: average over %d bookings", count))
	}
	return total / float64(count)
}

// =============================================================================
// REGION SUMMARY
// =============================================================================

// Regions summarizes enriched bookings per region, in first-seen region
// order. Missing costs count as 0.
func Regions(bookings []types.EnrichedBooking) []types.RegionSummary {
	groups := grouping.By(bookings, func(b types.EnrichedBooking) string { return b.Region })

	return grouping.Map(groups, func(region string, members []types.EnrichedBooking) types.RegionSummary {
		var total float64
		travelers := make(map[types.ID]struct{}, len(members))
		for _, b := range members {
			total += b.Amount()
			travelers[b.TravelerID] = struct{}{}
		}
		return types.RegionSummary{
			Region:                  region,
			TotalRegionalSpent:      total,
			UniqueTravelersByRegion: len(travelers),
			TotalRegionalVisits:     len(members),
		}
	})
}

// =============================================================================
// POPULARITY SORT
// =============================================================================

// ByPopularity returns a sorted copy of bookings: popularity score
// descending, then cost descending. Bookings equal on both keep their input
// order.
func ByPopularity(bookings []types.EnrichedBooking) []types.EnrichedBooking {
	sorted := make([]types.EnrichedBooking, len(bookings))
	copy(sorted, bookings)
	slices.SortStableFunc(sorted, ComparePopularity)
	return sorted
}

// ComparePopularity orders a before b when a is more popular, or equally
// popular and more expensive. The cost is only consulted when the scores are
// exactly equal.
func ComparePopularity(a, b types.EnrichedBooking) int {
	if c := cmp.Compare(b.PopularityScore, a.PopularityScore); c != 0 {
		return c
	}
	return cmp.Compare(b.Amount(), a.Amount())
}
