package config

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadMainConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
bookings:
  path: data/bookings.csv
  delimiter: "|"
destinations:
  path: data/destinations.xlsx
  sheet: Cities
output_dir: reports
file_name_format: "{name}-{timestamp}"
formats: [JSON, csv, xlsx]
log_level: DEBUG
`)

	cfg, err := LoadMainConfig(path, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Bookings.Type != SourceCSV || cfg.Bookings.Delimiter != "|" {
		t.Errorf("bookings = %+v", cfg.Bookings)
	}
	if cfg.Destinations.Type != SourceXLSX || cfg.Destinations.Sheet != "Cities" {
		t.Errorf("destinations = %+v", cfg.Destinations)
	}
	if cfg.OutputDir != "reports" {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
	if !slices.Equal(cfg.Formats, []string{"json", "csv", "xlsx"}) {
		t.Errorf("Formats = %v", cfg.Formats)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.FallbackRegion != "Unknown" {
		t.Errorf("FallbackRegion = %q", cfg.FallbackRegion)
	}
}

func TestLoadMainConfigDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")

	cfg, err := LoadMainConfig(path, true, func(c *MainConfig) {
		c.Bookings.Path = "b.json"
		c.Destinations.Path = "d.yml"
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.OutputDir != "./out" || cfg.FileNameFormat != "{name}" || cfg.LogMode != "development" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if !slices.Equal(cfg.Formats, []string{"json", "csv"}) {
		t.Errorf("Formats = %v", cfg.Formats)
	}
	if cfg.Bookings.Type != SourceJSON || cfg.Destinations.Type != SourceYAML {
		t.Errorf("types = %q, %q", cfg.Bookings.Type, cfg.Destinations.Type)
	}
}

func TestLoadMainConfigMissingFile(t *testing.T) {
	_, err := LoadMainConfig(filepath.Join(t.TempDir(), "missing.yaml"), false)
	if err == nil || !strings.Contains(err.Error(), "failed to read config file") {
		t.Fatalf("err = %v, want read error", err)
	}
}

func TestLoadMainConfigEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
bookings:
  type: sql
destinations:
  type: sql
output_dir: from-file
`)
	t.Setenv(EnvOutputDir, "from-env")
	t.Setenv(EnvBookingsDSN, "postgres://bookings")
	t.Setenv(EnvDestinationsDSN, "postgres://destinations")

	cfg, err := LoadMainConfig(path, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OutputDir != "from-env" {
		t.Errorf("OutputDir = %q, want from-env", cfg.OutputDir)
	}
	if cfg.Bookings.DSN != "postgres://bookings" || cfg.Destinations.DSN != "postgres://destinations" {
		t.Errorf("DSNs = %q, %q", cfg.Bookings.DSN, cfg.Destinations.DSN)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := writeFile(t, dir, ".env", EnvLogLevel+"=warn\n")
	t.Setenv(EnvLogLevel, "")
	os.Unsetenv(EnvLogLevel)

	if err := LoadDotEnv(filepath.Join(dir, "absent.env"), envFile); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := os.Getenv(EnvLogLevel); got != "warn" {
		t.Errorf("%s = %q, want warn", EnvLogLevel, got)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *MainConfig {
		cfg := Default()
		cfg.Bookings = SourceSettings{Type: SourceJSON, Path: "b.json"}
		cfg.Destinations = SourceSettings{Type: SourceSQL, DSN: "postgres://x"}
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*MainConfig)
		wantErr string
	}{
		{name: "valid", mutate: func(*MainConfig) {}},
		{name: "no bookings source", mutate: func(c *MainConfig) { c.Bookings = SourceSettings{} }, wantErr: "no source configured"},
		{name: "unknown extension", mutate: func(c *MainConfig) { c.Bookings = SourceSettings{Path: "b.txt"} }, wantErr: "cannot infer"},
		{name: "bad type", mutate: func(c *MainConfig) { c.Bookings.Type = "parquet" }, wantErr: "unsupported source type"},
		{name: "sql without dsn", mutate: func(c *MainConfig) { c.Destinations.DSN = "" }, wantErr: "requires dsn"},
		{name: "bad format", mutate: func(c *MainConfig) { c.Formats = []string{"html"} }, wantErr: "unsupported output format"},
		{name: "bad level", mutate: func(c *MainConfig) { c.LogLevel = "loud" }, wantErr: "unsupported log level"},
		{name: "name placeholder", mutate: func(c *MainConfig) { c.FileNameFormat = "{uuid}" }, wantErr: "must contain {name}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestHasFormat(t *testing.T) {
	cfg := Default()
	if !cfg.HasFormat(FormatCSV) || cfg.HasFormat(FormatPDF) {
		t.Errorf("HasFormat with %v", cfg.Formats)
	}
}
