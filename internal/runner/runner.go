// =============================================================================
// Travel Booking Reports - Runner Module
// =============================================================================
//
// This module orchestrates one report run, from loading the datasets to
// writing the artifacts.
//
// RUN PIPELINE:
//   1. Load bookings and destinations (concurrently)
//   2. Check the datasets and log what the join will hide
//   3. Build the report
//   4. Encode the artifacts for every configured format
//   5. Write the artifacts (concurrently, each one atomically)
//   6. Write the run summary if enabled
//
// A dry run stops after step 4 and reports what would have been written.
//
// =============================================================================

package runner

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ginjaninja78/travel-booking-reports/internal/config"
	"github.com/ginjaninja78/travel-booking-reports/internal/enrich"
	"github.com/ginjaninja78/travel-booking-reports/internal/logger"
	"github.com/ginjaninja78/travel-booking-reports/internal/pdfwriter"
	"github.com/ginjaninja78/travel-booking-reports/internal/report"
	"github.com/ginjaninja78/travel-booking-reports/internal/source"
	"github.com/ginjaninja78/travel-booking-reports/internal/types"
	"github.com/ginjaninja78/travel-booking-reports/internal/xlsxwriter"
	"github.com/ginjaninja78/travel-booking-reports/pkg/utils"
)

// WorkbookName names the XLSX and PDF artifacts, which hold every table.
const WorkbookName = "report"

// maxConcurrentWrites bounds the number of artifacts written at once.
const maxConcurrentWrites = 4

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of a run.
type Result struct {
	// RunID identifies the run; it also fills the {uuid} name placeholder.
	RunID string

	// OutputFiles are the paths written, in artifact order. For a dry run
	// they are the paths that would have been written.
	OutputFiles []string

	// SummaryFile is the run summary path, if one was written.
	SummaryFile string

	// Success indicates whether the run completed.
	Success bool

	// Error contains the error if the run failed.
	Error error

	Stats ProcessingStats

	// Report is the assembled report; nil if the run failed before assembly.
	Report *report.Report
}

// ProcessingStats contains statistics about the run.
type ProcessingStats struct {
	Bookings     int
	Destinations int
	Travelers    int
	Regions      int

	// MissingCost is the number of bookings without a cost. Those bookings
	// count as 0 in every total.
	MissingCost int

	// UnmatchedCities are booking cities with no destination record. Their
	// bookings land in the fallback region.
	UnmatchedCities []string

	// DuplicateCities are cities with more than one destination record. The
	// last record wins.
	DuplicateCities []string

	ProcessingTime time.Duration
}

// =============================================================================
// RUNNER STRUCTURE
// =============================================================================

// Logger is the logging interface the runner writes to. Arguments after the
// message are alternating keys and values.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// Options tunes a Runner.
type Options struct {
	// Logger receives progress and diagnostics. Nil discards them.
	Logger Logger

	// DryRun builds and encodes everything but writes nothing.
	DryRun bool
}

// Runner executes report runs for one configuration.
type Runner struct {
	config *config.MainConfig
	logger Logger
	dryRun bool
	files  *utils.FileManager
}

// New creates a Runner.
func New(cfg *config.MainConfig, opts Options) *Runner {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Runner{
		config: cfg,
		logger: log,
		dryRun: opts.DryRun,
		files:  utils.NewFileManager(cfg.OutputDir, cfg.FileNameFormat),
	}
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Run executes the report pipeline once.
func (r *Runner) Run(ctx context.Context) Result {
	result := Result{RunID: r.files.RunID}

	// =========================================================================
	// STEP 1: LOAD DATASETS
	// =========================================================================

	r.logger.Info("starting report run", "run_id", result.RunID, "dry_run", r.dryRun)

	bookings, destinations, err := r.load(ctx)
	if err != nil {
		result.Error = fmt.Errorf("failed to load datasets: %w", err)
		return r.finish(result)
	}
	result.Stats.Bookings = len(bookings)
	result.Stats.Destinations = len(destinations)
	r.logger.Debug("loaded datasets", "bookings", len(bookings), "destinations", len(destinations))

	// =========================================================================
	// STEP 2: DIAGNOSTICS
	// =========================================================================

	r.diagnose(bookings, destinations, &result.Stats)

	// =========================================================================
	// STEP 3: BUILD REPORT
	// =========================================================================

	rep := report.Build(bookings, destinations, report.Options{FallbackRegion: r.config.FallbackRegion})
	result.Report = rep
	result.Stats.Travelers = len(rep.Travelers())
	result.Stats.Regions = len(rep.Regions())
	r.logger.Debug("built report", "travelers", result.Stats.Travelers, "regions", result.Stats.Regions)

	// =========================================================================
	// STEP 4: ENCODE ARTIFACTS
	// =========================================================================

	artifacts, err := r.render(rep)
	if err != nil {
		result.Error = err
		return r.finish(result)
	}

	// =========================================================================
	// STEP 5: WRITE ARTIFACTS
	// =========================================================================

	if r.dryRun {
		for _, a := range artifacts {
			path := r.files.Path(r.outputName(a))
			result.OutputFiles = append(result.OutputFiles, path)
			r.logger.Info("dry run: would write artifact", "path", path, "bytes", len(a.Data))
		}
		result.Success = true
		return r.finish(result)
	}

	paths, err := r.write(ctx, artifacts)
	if err != nil {
		result.Error = fmt.Errorf("failed to write output: %w", err)
		return r.finish(result)
	}
	result.OutputFiles = paths

	// =========================================================================
	// COMPLETE
	// =========================================================================

	result.Success = true
	return r.finish(result)
}

// load reads both datasets concurrently.
func (r *Runner) load(ctx context.Context) ([]types.Booking, []types.Destination, error) {
	var (
		bookings     []types.Booking
		destinations []types.Destination
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bookings, err = source.LoadBookings(ctx, r.config.Bookings)
		if err != nil {
			return fmt.Errorf("bookings: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		destinations, err = source.LoadDestinations(ctx, r.config.Destinations)
		if err != nil {
			return fmt.Errorf("destinations: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return bookings, destinations, nil
}

// diagnose records and logs the data issues the report silently absorbs.
func (r *Runner) diagnose(bookings []types.Booking, destinations []types.Destination, stats *ProcessingStats) {
	lookup := enrich.BuildLookup(destinations)

	stats.UnmatchedCities = enrich.Unmatched(bookings, lookup)
	for _, city := range stats.UnmatchedCities {
		r.logger.Warn("booking city has no destination", "city", city, "region", r.config.FallbackRegion)
	}

	stats.DuplicateCities = enrich.DuplicateCities(destinations)
	for _, city := range stats.DuplicateCities {
		r.logger.Warn("destination city listed more than once, using the last record", "city", city)
	}

	for _, b := range bookings {
		if !b.HasCost() {
			stats.MissingCost++
		}
	}
	if stats.MissingCost > 0 {
		r.logger.Warn("bookings without cost count as 0", "count", stats.MissingCost)
	}
}

// render encodes the report in every configured format.
func (r *Runner) render(rep *report.Report) ([]report.Artifact, error) {
	var artifacts []report.Artifact

	if r.config.HasFormat(config.FormatJSON) {
		docs, err := rep.EncodeDocuments()
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, docs...)
	}

	if r.config.HasFormat(config.FormatCSV) {
		artifacts = append(artifacts, rep.EncodeTables()...)
	}

	if r.config.HasFormat(config.FormatXLSX) {
		data, err := xlsxwriter.Generate(rep.Tables())
		if err != nil {
			return nil, fmt.Errorf("failed to generate XLSX: %w", err)
		}
		artifacts = append(artifacts, report.Artifact{FileName: WorkbookName + ".xlsx", Name: WorkbookName, Data: data})
	}

	if r.config.HasFormat(config.FormatPDF) {
		data, err := pdfwriter.Generate(rep.Tables(), pdfwriter.Options{GeneratedAt: r.files.Started})
		if err != nil {
			return nil, fmt.Errorf("failed to generate PDF: %w", err)
		}
		artifacts = append(artifacts, report.Artifact{FileName: WorkbookName + ".pdf", Name: WorkbookName, Data: data})
	}

	return artifacts, nil
}

// write stores the artifacts, at most maxConcurrentWrites at a time.
func (r *Runner) write(ctx context.Context, artifacts []report.Artifact) ([]string, error) {
	if err := r.files.EnsureDirectories(); err != nil {
		return nil, err
	}

	paths := make([]string, len(artifacts))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentWrites)

	for i, a := range artifacts {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path, err := r.files.WriteFile(r.outputName(a), a.Data)
			if err != nil {
				return err
			}
			paths[i] = path
			r.logger.Info("wrote artifact", "path", path, "bytes", len(a.Data))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return paths, nil
}

// outputName applies the configured name format to an artifact.
func (r *Runner) outputName(a report.Artifact) string {
	return r.files.FileName(a.Name, filepath.Ext(a.FileName))
}

// finish stamps the timing, writes the summary log and logs the outcome.
func (r *Runner) finish(result Result) Result {
	end := time.Now()
	result.Stats.ProcessingTime = end.Sub(r.files.Started)

	if r.config.SummaryLog && !r.dryRun {
		summary := utils.RunSummary{
			RunID:           result.RunID,
			StartTime:       r.files.Started,
			EndTime:         end,
			Bookings:        result.Stats.Bookings,
			Destinations:    result.Stats.Destinations,
			Travelers:       result.Stats.Travelers,
			Regions:         result.Stats.Regions,
			UnmatchedCities: result.Stats.UnmatchedCities,
			DuplicateCities: result.Stats.DuplicateCities,
			MissingCost:     result.Stats.MissingCost,
			OutputFiles:     result.OutputFiles,
		}
		if result.Error != nil {
			summary.Error = result.Error.Error()
		}
		if err := r.files.EnsureDirectories(); err != nil {
			r.logger.Warn("failed to write run summary", "error", err)
		} else if path, err := utils.WriteSummaryLog(summary, r.files.OutputDir); err != nil {
			r.logger.Warn("failed to write run summary", "error", err)
		} else {
			result.SummaryFile = path
		}
	}

	if result.Error != nil {
		r.logger.Error("report run failed", "run_id", result.RunID, "error", result.Error)
	} else {
		r.logger.Info("report run complete", "run_id", result.RunID, "artifacts", len(result.OutputFiles), "duration", result.Stats.ProcessingTime)
	}

	return result
}
