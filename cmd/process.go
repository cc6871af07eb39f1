// =============================================================================
// Travel Booking Reports - Process Command
// =============================================================================
//
// This file defines the 'process' command, which runs the report pipeline.
//
// COMMAND USAGE:
//   reporter process [flags]
//
// FLAGS:
//   --bookings        : Booking dataset file (overrides the config)
//   --destinations    : Destination dataset file (overrides the config)
//   --output          : Output directory
//   --format          : Output formats (json, csv, xlsx, pdf)
//   --fallback-region : Region for bookings with an unknown city
//   --dry-run         : Build everything but write nothing
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/travel-booking-reports/internal/config"
	"github.com/ginjaninja78/travel-booking-reports/internal/runner"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	bookingsPath     string
	destinationsPath string
	outputDir        string
	formats          []string
	fallbackRegion   string
	dryRun           bool
)

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Build the travel reports",
	Long: `The process command loads the bookings and destinations, enriches every
booking with its destination's region and popularity score, and writes:

  travelerSummary  bookings, total and average spend per traveler
  regionSummary    visits, distinct travelers and spend per region
  bookingsSorted   enriched bookings, most popular destination first
  finalOutput      the three sections in one JSON document

Bookings whose city has no destination are kept and reported under the
fallback region ("Unknown" by default).`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd)
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringVar(&bookingsPath, "bookings", "", "Booking dataset file (.json, .yaml, .csv, .xlsx)")
	processCmd.Flags().StringVar(&destinationsPath, "destinations", "", "Destination dataset file (.json, .yaml, .csv, .xlsx)")
	processCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Output directory")
	processCmd.Flags().StringSliceVarP(&formats, "format", "f", nil, "Output formats: json, csv, xlsx, pdf")
	processCmd.Flags().StringVar(&fallbackRegion, "fallback-region", "", "Region for bookings whose city has no destination")
	processCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Build and encode the reports without writing files")
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

func runProcess(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd, applyProcessFlags)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	result := runner.New(cfg, runner.Options{Logger: log, DryRun: dryRun}).Run(cmd.Context())

	fmt.Fprintln(cmd.OutOrStdout(), renderResult(result, dryRun))

	if !result.Success {
		return result.Error
	}
	return nil
}

// applyProcessFlags copies the command-line overrides into the configuration.
func applyProcessFlags(cfg *config.MainConfig) {
	if bookingsPath != "" {
		cfg.Bookings = config.SourceSettings{Path: bookingsPath}
	}
	if destinationsPath != "" {
		cfg.Destinations = config.SourceSettings{Path: destinationsPath}
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if len(formats) > 0 {
		cfg.Formats = formats
	}
	if fallbackRegion != "" {
		cfg.FallbackRegion = fallbackRegion
	}
}
