// Package testpdf builds small PDF fixtures for tests.
package testpdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Options adds active content to a fixture.
type Options struct {
	JavaScript string // document-level script
	LinkURL    string // URI link annotation on the first page
}

// New returns a PDF with one page per entry of pages, each line drawn on its
// own row. A nil or empty entry produces a page without text.
func New(t testing.TB, opts Options, pages ...[]string) []byte {
	t.Helper()

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	pdf.SetFont("Helvetica", "", 12)
	if opts.JavaScript != "" {
		pdf.SetJavascript(opts.JavaScript)
	}

	for i, lines := range pages {
		pdf.AddPage()
		if i == 0 && opts.LinkURL != "" {
			pdf.LinkString(72, 72, 100, 14, opts.LinkURL)
		}
		for _, line := range lines {
			pdf.CellFormat(0, 16, line, "", 1, "L", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		t.Fatalf("build fixture pdf: %v", err)
	}
	return buf.Bytes()
}
