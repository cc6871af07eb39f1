// =============================================================================
// Travel Booking Reports - Configuration Module
// =============================================================================
//
// This module is responsible for loading the report configuration. It covers:
//   1. Where the two datasets come from (file or SQL query)
//   2. Where and in which formats the artifacts are written
//   3. Logging settings
//
// CONFIGURATION SOURCES (later wins):
//   1. Built-in defaults
//   2. The YAML configuration file (config.yaml)
//   3. Environment variables, optionally loaded from a .env file
//   4. Command-line flags (applied by the cmd package)
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// SUPPORTED VALUES
// =============================================================================

// Source types.
const (
	SourceJSON = "json"
	SourceYAML = "yaml"
	SourceCSV  = "csv"
	SourceXLSX = "xlsx"
	SourceSQL  = "sql"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

// Environment variables that override file values.
const (
	EnvOutputDir       = "REPORTER_OUTPUT_DIR"
	EnvLogLevel        = "REPORTER_LOG_LEVEL"
	EnvBookingsDSN     = "REPORTER_BOOKINGS_DSN"
	EnvDestinationsDSN = "REPORTER_DESTINATIONS_DSN"
)

var (
	sourceTypes = []string{SourceJSON, SourceYAML, SourceCSV, SourceXLSX, SourceSQL}
	formats     = []string{FormatJSON, FormatCSV, FormatXLSX, FormatPDF}
	logLevels   = []string{"debug", "info", "warn", "error"}
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the report configuration.
type MainConfig struct {
	// =========================================================================
	// DATASETS
	// =========================================================================

	// Bookings describes where the booking records are read from.
	Bookings SourceSettings `yaml:"bookings"`

	// Destinations describes where the destination records are read from.
	Destinations SourceSettings `yaml:"destinations"`

	// =========================================================================
	// OUTPUT SETTINGS
	// =========================================================================

	// OutputDir is the directory the artifacts are written to.
	// Default: "./out"
	OutputDir string `yaml:"output_dir"`

	// FileNameFormat builds each artifact's file name (without extension).
	// Placeholders:
	//   {name}      - Artifact name, e.g. "travelerSummary"
	//   {timestamp} - Run timestamp (YYYYMMDD_HHMMSS)
	//   {date}      - Run date (YYYYMMDD)
	//   {uuid}      - Run identifier
	//
	// Example: "{name}-{timestamp}"
	// Default: "{name}"
	FileNameFormat string `yaml:"file_name_format"`

	// Formats lists the artifact formats to write.
	// Valid values: "json", "csv", "xlsx", "pdf"
	// Default: ["json", "csv"]
	Formats []string `yaml:"formats"`

	// FallbackRegion is assigned to bookings whose city has no destination.
	// Default: "Unknown"
	FallbackRegion string `yaml:"fallback_region"`

	// SummaryLog writes a plain-text run summary next to the artifacts.
	SummaryLog bool `yaml:"summary_log"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// LogMode selects the log encoder: "development" (console) or
	// "production" (JSON).
	// Default: "development"
	LogMode string `yaml:"log_mode"`
}

// SourceSettings describes one dataset source.
type SourceSettings struct {
	// Type is one of "json", "yaml", "csv", "xlsx", "sql". When empty it is
	// inferred from the extension of Path.
	Type string `yaml:"type"`

	// Path is the dataset file for file-based sources.
	Path string `yaml:"path"`

	// Sheet is the worksheet to read for "xlsx" sources.
	// Default: the first sheet
	Sheet string `yaml:"sheet,omitempty"`

	// Delimiter is the field separator for "csv" sources.
	// Common values: "," (comma), "|" (pipe), "\t" (tab)
	// Default: ","
	Delimiter string `yaml:"delimiter,omitempty"`

	// DSN is the database connection string for "sql" sources.
	DSN string `yaml:"dsn,omitempty"`

	// Query overrides the SELECT statement for "sql" sources. The result
	// columns must be named like the record fields.
	Query string `yaml:"query,omitempty"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration holding only default values.
func Default() *MainConfig {
	var config MainConfig
	applyMainConfigDefaults(&config)
	return &config
}

// LoadMainConfig loads the configuration from a YAML file, applies
// environment overrides, caller overrides and defaults, and validates the
// result.
//
// PARAMETERS:
//   - configPath: The path to the configuration file.
//   - allowMissing: When true, a missing file yields the defaults instead of
//     an error (the CLI allows this when datasets are given as flags).
//   - overrides: Applied after the environment, before defaults.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file cannot be read or parsed, or is invalid.
func LoadMainConfig(configPath string, allowMissing bool, overrides ...func(*MainConfig)) (*MainConfig, error) {
	var config MainConfig

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	case errors.Is(err, os.ErrNotExist) && allowMissing:
		// Defaults only.
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	ApplyEnv(&config)
	for _, override := range overrides {
		override(&config)
	}
	applyMainConfigDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// LoadDotEnv loads variables from the given .env files into the process
// environment. Missing files are ignored; existing variables are kept.
func LoadDotEnv(files ...string) error {
	for _, file := range files {
		if _, err := os.Stat(file); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return nil
}

// ApplyEnv copies environment overrides into config.
func ApplyEnv(config *MainConfig) {
	if v := strings.TrimSpace(os.Getenv(EnvOutputDir)); v != "" {
		config.OutputDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		config.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvBookingsDSN)); v != "" {
		config.Bookings.DSN = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDestinationsDSN)); v != "" {
		config.Destinations.DSN = v
	}
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.OutputDir == "" {
		config.OutputDir = "./out"
	}
	if config.FileNameFormat == "" {
		config.FileNameFormat = "{name}"
	}
	if len(config.Formats) == 0 {
		config.Formats = []string{FormatJSON, FormatCSV}
	}
	if config.FallbackRegion == "" {
		config.FallbackRegion = "Unknown"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.LogMode == "" {
		config.LogMode = "development"
	}

	for i := range config.Formats {
		config.Formats[i] = strings.ToLower(strings.TrimSpace(config.Formats[i]))
	}
	config.LogLevel = strings.ToLower(config.LogLevel)

	applySourceDefaults(&config.Bookings)
	applySourceDefaults(&config.Destinations)
}

// applySourceDefaults infers the source type from the file extension and
// fills in the CSV delimiter.
func applySourceDefaults(source *SourceSettings) {
	source.Type = strings.ToLower(strings.TrimSpace(source.Type))
	if source.Type == "" {
		source.Type = InferSourceType(source.Path)
	}
	if source.Type == SourceCSV && source.Delimiter == "" {
		source.Delimiter = ","
	}
}

// InferSourceType maps a file extension to a source type. It returns "" for
// unknown extensions.
func InferSourceType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return SourceJSON
	case ".yaml", ".yml":
		return SourceYAML
	case ".csv", ".tsv":
		return SourceCSV
	case ".xlsx":
		return SourceXLSX
	}
	return ""
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the configuration for unusable values. It does not touch
// the file system.
func (c *MainConfig) Validate() error {
	if err := c.Bookings.validate("bookings"); err != nil {
		return err
	}
	if err := c.Destinations.validate("destinations"); err != nil {
		return err
	}
	for _, f := range c.Formats {
		if !slices.Contains(formats, f) {
			return fmt.Errorf("unsupported output format %q (want one of %s)", f, strings.Join(formats, ", "))
		}
	}
	if !slices.Contains(logLevels, c.LogLevel) {
		return fmt.Errorf("unsupported log level %q", c.LogLevel)
	}
	if !strings.Contains(c.FileNameFormat, "{name}") {
		return fmt.Errorf("file_name_format %q must contain {name}", c.FileNameFormat)
	}
	return nil
}

// HasFormat reports whether the given output format is enabled.
func (c *MainConfig) HasFormat(format string) bool {
	return slices.Contains(c.Formats, format)
}

func (s SourceSettings) validate(name string) error {
	if s.Type == "" {
		if s.Path == "" {
			return fmt.Errorf("%s: no source configured (set path or type)", name)
		}
		return fmt.Errorf("%s: cannot infer source type from %q", name, s.Path)
	}
	if !slices.Contains(sourceTypes, s.Type) {
		return fmt.Errorf("%s: unsupported source type %q", name, s.Type)
	}
	if s.Type == SourceSQL {
		if s.DSN == "" {
			return fmt.Errorf("%s: sql source requires dsn", name)
		}
		return nil
	}
	if s.Path == "" {
		return fmt.Errorf("%s: %s source requires path", name, s.Type)
	}
	return nil
}
