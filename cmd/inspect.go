// =============================================================================
// Travel Booking Reports - Inspect Command
// =============================================================================
//
// This file defines the 'inspect' command, which prints a written CSV table
// (byte order mark and CRLF included) as a terminal table.
//
// COMMAND USAGE:
//   reporter inspect <file.csv> [--limit N]
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/travel-booking-reports/internal/csvtable"
	"github.com/ginjaninja78/travel-booking-reports/pkg/utils"
)

// limit caps the number of data rows printed; 0 prints all.
var limit int

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.csv>",
	Short: "Show a written CSV table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInspect(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of rows to show (0 for all)")
}

func runInspect(cmd *cobra.Command, path string) error {
	if !utils.FileExists(path) {
		return fmt.Errorf("file not found: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	records, err := csvtable.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return fmt.Errorf("%s has no header row", path)
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderTable(records, limit))
	return nil
}

// renderTable draws the header and up to maxRows data rows.
func renderTable(records [][]string, maxRows int) string {
	rows := records[1:]
	shown := rows
	if maxRows > 0 && len(rows) > maxRows {
		shown = rows[:maxRows]
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleTitle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(records[0]...).
		Rows(shown...)

	footer := fmt.Sprintf("%d rows", len(rows))
	if len(shown) < len(rows) {
		footer = fmt.Sprintf("%d of %d rows", len(shown), len(rows))
	}
	return t.Render() + "\n" + styleLabel.UnsetWidth().Render(footer)
}
