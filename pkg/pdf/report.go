package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"meddigest-backend/internal/search/domain"
)

const reportTitle = "Med-Digest AI Report"

// Render lays out one archived entry as a paginated PDF. Rendering the same
// entry twice yields byte-identical output: the document creation date is
// pinned to the entry's own date.
func Render(entry *domain.SearchLog) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(entry.Date)
	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 10, reportTitle, "", 1, "C", false, 0, "")
		pdf.Ln(10)
	})
	pdf.AddPage()

	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 10, clean(fmt.Sprintf("Topic: %s", entry.Query)), "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "I", 10)
	meta := fmt.Sprintf("Audience: %s | Date: %s", entry.Persona, entry.Date.Format("2006-01-02"))
	pdf.CellFormat(0, 10, clean(meta), "", 1, "L", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "", 11)
	pdf.MultiCell(0, 7, clean(stripMarkers(entry.Summary)), "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}
	return buf.Bytes(), nil
}

// stripMarkers removes the section and emphasis markers the summary format
// mandates before laying the text out as plain body copy.
func stripMarkers(summary string) string {
	s := strings.ReplaceAll(summary, "### ", "")
	return strings.ReplaceAll(s, "**", "")
}

// clean coerces text into the Latin-1 range of the built-in PDF fonts. Runes
// outside it are replaced, not rejected.
func clean(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r < 256 {
			b.WriteRune(r)
		} else {
			b.WriteByte('?')
		}
	}
	return b.String()
}
