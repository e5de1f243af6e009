package export

import (
	"bytes"
	"strings"

	"github.com/go-pdf/fpdf"
)

// renderPDF lays out markdown line by line: headings get larger bold type,
// fenced code blocks switch to a monospace face, everything else flows as
// body text. Inline markdown markers are left as-is.
func renderPDF(content string) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(20, 20, 20)
	doc.SetAutoPageBreak(true, 20)
	doc.AddPage()
	tr := doc.UnicodeTranslatorFromDescriptor("")

	inCode := false
	for _, line := range strings.Split(content, "\n") {
		switch {
		case strings.HasPrefix(line, "```"):
			inCode = !inCode
			continue
		case inCode:
			doc.SetFont("Courier", "", 9)
			doc.MultiCell(0, 4.5, tr(line), "", "L", false)
		case strings.HasPrefix(line, "### "):
			doc.SetFont("Helvetica", "B", 12)
			doc.MultiCell(0, 7, tr(strings.TrimPrefix(line, "### ")), "", "L", false)
			doc.Ln(1)
		case strings.HasPrefix(line, "## "):
			doc.SetFont("Helvetica", "B", 14)
			doc.MultiCell(0, 8, tr(strings.TrimPrefix(line, "## ")), "", "L", false)
			doc.Ln(1)
		case strings.HasPrefix(line, "# "):
			doc.SetFont("Helvetica", "B", 18)
			doc.MultiCell(0, 10, tr(strings.TrimPrefix(line, "# ")), "", "L", false)
			doc.Ln(2)
		case strings.TrimSpace(line) == "":
			doc.Ln(3)
		default:
			doc.SetFont("Helvetica", "", 11)
			doc.MultiCell(0, 5.5, tr(line), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
