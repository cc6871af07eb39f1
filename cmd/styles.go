package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/ginjaninja78/travel-booking-reports/internal/runner"
)

var (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorMuted   = lipgloss.Color("#6B7280")

	styleTitle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleLabel = lipgloss.NewStyle().
			Foreground(colorMuted).
			Width(16)

	styleSuccess = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	styleWarning = lipgloss.NewStyle().Foreground(colorWarning)
	styleError   = lipgloss.NewStyle().Foreground(colorError).Bold(true)

	styleBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)
)

// renderResult formats the outcome of a run for the terminal.
func renderResult(result runner.Result, dryRun bool) string {
	var lines []string

	title := "Travel Booking Reports"
	if dryRun {
		title += " (dry run)"
	}
	lines = append(lines, styleTitle.Render(title), "")

	row := func(label, value string) {
		lines = append(lines, styleLabel.Render(label)+value)
	}

	if result.Success {
		row("Status", styleSuccess.Render("success"))
	} else {
		row("Status", styleError.Render("failed"))
		if result.Error != nil {
			row("Error", result.Error.Error())
		}
	}
	row("Run ID", result.RunID)
	row("Bookings", fmt.Sprint(result.Stats.Bookings))
	row("Destinations", fmt.Sprint(result.Stats.Destinations))
	row("Travelers", fmt.Sprint(result.Stats.Travelers))
	row("Regions", fmt.Sprint(result.Stats.Regions))
	row("Duration", result.Stats.ProcessingTime.Round(time.Millisecond).String())

	if n := len(result.Stats.UnmatchedCities); n > 0 {
		row("Unmatched", styleWarning.Render(strings.Join(result.Stats.UnmatchedCities, ", ")))
	}
	if result.Stats.MissingCost > 0 {
		row("Missing cost", styleWarning.Render(fmt.Sprint(result.Stats.MissingCost)))
	}

	if len(result.OutputFiles) > 0 {
		lines = append(lines, "")
		verb := "Wrote"
		if dryRun {
			verb = "Would write"
		}
		lines = append(lines, styleTitle.Render(fmt.Sprintf("%s %d files", verb, len(result.OutputFiles))))
		for _, path := range result.OutputFiles {
			lines = append(lines, "  "+filepath.ToSlash(path))
		}
	}
	if result.SummaryFile != "" {
		row("Summary", filepath.ToSlash(result.SummaryFile))
	}

	return styleBox.Render(strings.Join(lines, "\n"))
}
