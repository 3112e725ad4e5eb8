// Package export writes the roster as JSON, CSV or PDF.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/Iron-Ham/taskroster/internal/errors"
	"github.com/Iron-Ham/taskroster/internal/roster"
)

// Supported formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatPDF  = "pdf"
)

// Formats returns the supported export formats.
func Formats() []string {
	return []string{FormatJSON, FormatCSV, FormatPDF}
}

// record is the exported shape of one row.
type record struct {
	Row         string `json:"row"`
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Write renders rows to w in the given format.
func Write(w io.Writer, format string, rows []roster.Row) error {
	switch strings.ToLower(format) {
	case FormatJSON:
		return writeJSON(w, rows)
	case FormatCSV:
		return writeCSV(w, rows)
	case FormatPDF:
		return writePDF(w, rows)
	default:
		return fmt.Errorf("%w: unknown format %q (want one of %s)",
			errors.ErrInvalidInput, format, strings.Join(Formats(), ", "))
	}
}

func writeJSON(w io.Writer, rows []roster.Row) error {
	out := make([]record, 0, len(rows))
	for _, r := range rows {
		out = append(out, record{Row: r.Label, ID: r.Task.ID, Name: r.Task.Name, Description: r.Task.Description})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeCSV(w io.Writer, rows []roster.Row) error {
	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"row", "id", "name", "description"})
	for _, r := range rows {
		_ = cw.Write([]string{r.Label, strconv.FormatInt(r.Task.ID, 10), r.Task.Name, r.Task.Description})
	}
	cw.Flush()
	return cw.Error()
}

func writePDF(w io.Writer, rows []roster.Row) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Tasks")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(12, 7, "#", "1", 0, "C", false, 0, "")
	pdf.CellFormat(60, 7, "Task Name", "1", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, "Description", "1", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, r := range rows {
		pdf.CellFormat(12, 7, r.Label, "1", 0, "C", false, 0, "")
		pdf.CellFormat(60, 7, tr(r.Task.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, tr(r.Task.Description), "1", 1, "L", false, 0, "")
	}
	if len(rows) == 0 {
		pdf.SetFont("Arial", "I", 10)
		pdf.Cell(40, 8, "No tasks.")
	}

	return pdf.Output(w)
}
