// =============================================================================
// Travel Booking Reports - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Every other command
// is attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (reporter)
//   ├── processCmd (reporter process)
//   ├── inspectCmd (reporter inspect)
//   └── versionCmd (reporter version)
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/travel-booking-reports/internal/config"
	"github.com/ginjaninja78/travel-booking-reports/internal/logger"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
var cfgFile string

// envFile is loaded into the environment before the configuration.
var envFile string

// verbose forces debug logging.
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "reporter",
	Short: "Travel Booking Reports - Enrich bookings and build travel summaries",
	Long: `Travel Booking Reports joins a booking dataset with destination metadata
and produces traveler and region summaries plus a popularity-sorted booking
list, written as JSON documents and spreadsheet-friendly CSV tables.

Key Features:
  - Bookings and destinations from JSON, YAML, CSV, XLSX or a SQL query
  - Unknown cities fall back to a configurable region
  - JSON, CSV (Excel-ready), XLSX and PDF output
  - Timestamped or run-scoped artifact names

Example Usage:
  reporter process                                   # Use config.yaml
  reporter process --bookings b.json --destinations d.json
  reporter inspect out/regionSummary.csv             # Show a written table`,

	SilenceUsage:  true,
	SilenceErrors: true,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the CLI. It is called by main.main(). An interrupt cancels
// the running command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file",
	)

	rootCmd.PersistentFlags().StringVar(
		&envFile,
		"env-file",
		".env",
		"Environment file loaded before the configuration (ignored if missing)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// loadConfig loads the environment file and the configuration. A missing
// config.yaml is tolerated unless --config was given explicitly.
func loadConfig(cmd *cobra.Command, overrides ...func(*config.MainConfig)) (*config.MainConfig, error) {
	if err := config.LoadDotEnv(envFile); err != nil {
		return nil, err
	}

	allowMissing := !cmd.Flags().Changed("config")
	return config.LoadMainConfig(cfgFile, allowMissing, overrides...)
}

// newLogger builds the logger for a loaded configuration.
func newLogger(cfg *config.MainConfig) (*logger.Logger, error) {
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	return logger.New(level, cfg.LogMode)
}
