// =============================================================================
// Travel Booking Reports - PDF Writer
// =============================================================================
//
// This module renders a printable summary of the report: a title block
// followed by one bordered table per report table. Values are formatted the
// same way as in the delimited-text tables.
//
// =============================================================================

package pdfwriter

import (
	"bytes"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"

	"github.com/ginjaninja78/travel-booking-reports/internal/csvtable"
	"github.com/ginjaninja78/travel-booking-reports/internal/report"
)

// Titles maps table names to section headings.
var Titles = map[string]string{
	report.TravelerSummaryName: "Traveler Summary",
	report.RegionSummaryName:   "Region Summary",
	report.BookingsSortedName:  "Bookings by Popularity",
}

// Options controls the document metadata.
type Options struct {
	// Title is printed at the top of the first page.
	// Default: "Travel Booking Report"
	Title string

	// GeneratedAt is printed under the title and used as the creation date.
	GeneratedAt time.Time
}

const (
	rowHeight = 6.0
	margin    = 10.0
)

// Generate renders the tables into a landscape A4 document.
func Generate(tables []report.Table, opts Options) ([]byte, error) {
	if opts.Title == "" {
		opts.Title = "Travel Booking Report"
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetTitle(opts.Title, false)
	if !opts.GeneratedAt.IsZero() {
		pdf.SetCreationDate(opts.GeneratedAt)
	}
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, tr(opts.Title))
	pdf.Ln(10)

	if !opts.GeneratedAt.IsZero() {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.Cell(0, 6, "Generated "+opts.GeneratedAt.Format("2006-01-02 15:04"))
		pdf.Ln(8)
	}

	pageWidth, _ := pdf.GetPageSize()
	usable := pageWidth - 2*margin

	for _, table := range tables {
		writeTable(pdf, tr, table, usable)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func writeTable(pdf *gofpdf.Fpdf, tr func(string) string, table report.Table, usable float64) {
	title, ok := Titles[table.Name]
	if !ok {
		title = table.Name
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, tr(title))
	pdf.Ln(9)

	if len(table.Columns) == 0 {
		return
	}
	width := usable / float64(len(table.Columns))

	header := func() {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.SetFillColor(225, 225, 225)
		for _, col := range table.Columns {
			pdf.CellFormat(width, rowHeight+1, tr(col.Label), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
	}
	header()

	if len(table.Rows) == 0 {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(usable, rowHeight, "No records", "1", 1, "C", false, 0, "")
		return
	}

	_, pageHeight := pdf.GetPageSize()
	for _, row := range table.Rows {
		if pdf.GetY()+rowHeight > pageHeight-margin {
			pdf.AddPage()
			header()
		}
		for _, col := range table.Columns {
			cell := ""
			if row != nil {
				if v, ok := row.Field(col.Key); ok {
					cell = csvtable.FormatValue(v)
				}
			}
			pdf.CellFormat(width, rowHeight, tr(cell), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
}
