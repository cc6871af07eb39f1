// =============================================================================
// Travel Booking Reports - Main Entry Point
// =============================================================================
//
// USAGE:
//   reporter process       - Build the reports
//   reporter inspect FILE  - Show a written CSV table
//   reporter version       - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Report pipeline, sources and writers
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/travel-booking-reports/cmd"
)

func main() {
	cmd.Execute()
}
