package report

import (
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/pkg/errors"

	"github.com/bigredeye/gradebook/internal/scorer"
)

// RenderPDF lays out the same lines as Render on A4 pages.
func RenderPDF(w io.Writer, standings *scorer.Standings) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// core fonts are cp1252, the report is not
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, l := range build(standings) {
		switch l.kind {
		case lineTitle:
			pdf.SetFont("Arial", "B", 14)
			pdf.CellFormat(0, 10, tr(l.text), "", 1, "C", false, 0, "")
		case lineSection:
			pdf.SetFont("Arial", "B", 11)
			pdf.CellFormat(0, 8, tr(l.text), "", 1, "", false, 0, "")
		case lineBlank:
			pdf.Ln(4)
		default:
			if l.text == "" || l.text[0] == '=' {
				continue
			}
			pdf.SetFont("Arial", "", 10)
			pdf.CellFormat(0, 6, tr(l.text), "", 1, "", false, 0, "")
		}
	}

	if err := pdf.Output(w); err != nil {
		return errors.Wrap(err, "Failed to render pdf")
	}
	return nil
}
