// =============================================================================
// Travel Booking Reports - File Manager Utility
// =============================================================================
//
// This module provides the file handling around a report run:
//   - Output directory management
//   - Artifact naming from the configured name format
//   - Atomic artifact writes
//   - The plain-text run summary
//
// WRITE STRATEGY:
//   Every artifact is written to a temporary file in the output directory
//   and renamed into place, so a reader never sees a half-written file. An
//   existing artifact with the same name is replaced.
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager places the artifacts of one run.
type FileManager struct {
	// OutputDir is the directory artifacts are written to.
	OutputDir string

	// NameFormat builds artifact names; see GenerateOutputFileName.
	NameFormat string

	// RunID fills the {uuid} placeholder so all artifacts of a run share it.
	RunID string

	// Started fills the {timestamp} and {date} placeholders.
	Started time.Time
}

// NewFileManager creates a FileManager for a run that started now.
func NewFileManager(outputDir, nameFormat string) *FileManager {
	return &FileManager{
		OutputDir:  outputDir,
		NameFormat: nameFormat,
		RunID:      uuid.New().String(),
		Started:    time.Now(),
	}
}

// EnsureDirectories creates the output directory if it doesn't exist.
func (fm *FileManager) EnsureDirectories() error {
	if err := os.MkdirAll(fm.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", fm.OutputDir, err)
	}
	return nil
}

// FileName returns the file name of the named artifact with the given
// extension (including the dot).
func (fm *FileManager) FileName(name, ext string) string {
	return GenerateOutputFileName(fm.NameFormat, fm.Started, map[string]string{
		"name": name,
		"uuid": fm.RunID,
	}) + ext
}

// Path returns the full output path of a file name.
func (fm *FileManager) Path(fileName string) string {
	return filepath.Join(fm.OutputDir, fileName)
}

// WriteFile atomically writes data under fileName in the output directory.
//
// RETURNS:
//   - The path of the written file.
//   - An error if the file cannot be written.
func (fm *FileManager) WriteFile(fileName string, data []byte) (string, error) {
	target := fm.Path(fileName)

	tmp, err := os.CreateTemp(fm.OutputDir, "."+fileName+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to write %s: %w", fileName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to close %s: %w", fileName, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to set permissions on %s: %w", fileName, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("failed to move %s into place: %w", fileName, err)
	}

	return target, nil
}

// =============================================================================
// OUTPUT FILE NAMING
// =============================================================================

// GenerateOutputFileName expands the placeholders of a name format.
//
// PARAMETERS:
//   - format: The format string for the file name.
//             Placeholders:
//               {uuid}      - A random UUID unless params sets it
//               {timestamp} - Timestamp of now (YYYYMMDD_HHMMSS)
//               {date}      - Date of now (YYYYMMDD)
//               {time}      - Time of now (HHMMSS)
//               {<key>}     - Any key of params, e.g. {name}
//   - now: The time the placeholders describe.
//   - params: A map of placeholder values.
//
// RETURNS:
//   - The generated file name, without extension.
//
// EXAMPLE:
//   format: "{name}_{timestamp}"
//   params: {"name": "regionSummary"}
//   output: "regionSummary_20240115_143022"
func GenerateOutputFileName(format string, now time.Time, params map[string]string) string {
	replacements := []string{
		"{timestamp}", now.Format("20060102_150405"),
		"{date}", now.Format("20060102"),
		"{time}", now.Format("150405"),
	}
	if _, ok := params["uuid"]; !ok {
		replacements = append(replacements, "{uuid}", uuid.New().String())
	}
	for key, value := range params {
		replacements = append(replacements, "{"+key+"}", value)
	}

	return strings.NewReplacer(replacements...).Replace(format)
}

// =============================================================================
// RUN SUMMARY
// =============================================================================

// RunSummary contains summary information about a report run.
type RunSummary struct {
	RunID     string
	StartTime time.Time
	EndTime   time.Time

	Bookings     int
	Destinations int
	Travelers    int
	Regions      int

	// UnmatchedCities are booking cities with no destination record.
	UnmatchedCities []string

	// DuplicateCities are cities with more than one destination record.
	DuplicateCities []string

	// MissingCost is the number of bookings without a cost.
	MissingCost int

	OutputFiles []string

	// Error is empty for successful runs.
	Error string
}

// WriteSummaryLog writes a run summary to a log file.
//
// PARAMETERS:
//   - summary: The run summary.
//   - outputDir: The directory to write the summary file.
//
// RETURNS:
//   - The path to the summary file.
//   - An error if writing fails.
func WriteSummaryLog(summary RunSummary, outputDir string) (string, error) {
	timestamp := summary.StartTime.Format("20060102_150405")
	summaryPath := filepath.Join(outputDir, fmt.Sprintf("run_summary_%s.txt", timestamp))

	file, err := os.Create(summaryPath)
	if err != nil {
		return "", fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	status := "success"
	if summary.Error != "" {
		status = "failed: " + summary.Error
	}

	fmt.Fprintf(writer, "Travel Booking Reports - Run Summary\n"+
		"================================================================================\n\n"+
		"Run Information:\n"+
		"  Run ID:         %s\n"+
		"  Start Time:     %s\n"+
		"  End Time:       %s\n"+
		"  Duration:       %s\n"+
		"  Status:         %s\n\n"+
		"Statistics:\n"+
		"  Bookings:           %d\n"+
		"  Destinations:       %d\n"+
		"  Travelers:          %d\n"+
		"  Regions:            %d\n"+
		"  Missing Cost:       %d\n\n",
		summary.RunID,
		summary.StartTime.Format("2006-01-02 15:04:05"),
		summary.EndTime.Format("2006-01-02 15:04:05"),
		summary.EndTime.Sub(summary.StartTime).String(),
		status,
		summary.Bookings,
		summary.Destinations,
		summary.Travelers,
		summary.Regions,
		summary.MissingCost)

	writeList(writer, "Unmatched Cities", summary.UnmatchedCities)
	writeList(writer, "Duplicate Destination Cities", summary.DuplicateCities)
	writeList(writer, "Output Files", summary.OutputFiles)

	writer.WriteString("================================================================================\n" +
		"End of Summary\n")

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush summary file: %w", err)
	}

	return summaryPath, nil
}

func writeList(w *bufio.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	w.WriteString(title + ":\n")
	w.WriteString("--------------------------------------------------------------------------------\n")
	for _, item := range items {
		fmt.Fprintf(w, "  %s\n", item)
	}
	w.WriteString("\n")
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}
