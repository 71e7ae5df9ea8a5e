package render

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"

	"github.com/dgallion1/cleanfile/internal/document"
)

const (
	pageSize = "A4"
	margin   = 72.0 // 1 inch, in points
	fontName = "Helvetica"
	creator  = "cleanfile"
)

// Style describes how one element kind is drawn.
type Style struct {
	FontStyle   string // gofpdf style: "", "B"
	Size        float64
	Leading     float64
	Align       string // "L", "C"
	SpaceBefore float64
	SpaceAfter  float64
}

// Styles maps element kinds to their text style.
var Styles = map[document.ElementKind]Style{
	document.Title:   {FontStyle: "B", Size: 18, Leading: 22, Align: "C", SpaceAfter: 0.3 * 72},
	document.Heading: {FontStyle: "B", Size: 13, Leading: 16, Align: "L", SpaceBefore: 12, SpaceAfter: 6},
	document.Body:    {FontStyle: "", Size: 11, Leading: 14, Align: "L"},
}

// Options controls document metadata.
type Options struct {
	Title        string
	CreationDate time.Time // zero means now
}

// Render draws elements into a new A4 PDF and returns its bytes. Only text is
// written: the result never carries scripts, forms, annotations or
// attachments.
func Render(elements []document.Element, opts Options) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", pageSize, "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetCreator(creator, true)
	pdf.SetCatalogSort(true)
	if opts.Title != "" {
		pdf.SetTitle(opts.Title, true)
	}
	if !opts.CreationDate.IsZero() {
		pdf.SetCreationDate(opts.CreationDate)
	}
	pdf.AddPage()

	for _, el := range elements {
		if el.Kind == document.Spacer {
			pdf.Ln(el.Height)
			continue
		}
		style, ok := Styles[el.Kind]
		if !ok {
			return nil, fmt.Errorf("no style for element kind %s", el.Kind)
		}
		if style.SpaceBefore > 0 && pdf.GetY() > margin {
			pdf.Ln(style.SpaceBefore)
		}
		pdf.SetFont(fontName, style.FontStyle, style.Size)
		pdf.MultiCell(0, style.Leading, encodeText(el.Text), "", style.Align, false)
		if style.SpaceAfter > 0 {
			pdf.Ln(style.SpaceAfter)
		}
		if pdf.Err() {
			break
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// encodeText maps text onto Windows-1252, the encoding of the core PDF
// fonts. Runes outside it are replaced by '?'.
func encodeText(s string) string {
	s = norm.NFC.String(s)
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		b, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			b = '?'
		}
		sb.WriteByte(b)
	}
	return sb.String()
}
