package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/dgallion1/cleanfile/internal/document"
)

// errLayoutUnsupported means row reconstruction is not possible for a page
// and plain extraction should be used instead.
var errLayoutUnsupported = errors.New("layout extraction unsupported")

const (
	// spaceRatio is the fraction of the font size treated as one space when
	// padding horizontal gaps in layout mode.
	spaceRatio = 0.25
	// charRatio estimates glyph advance when the library reports no width.
	charRatio       = 0.5
	defaultFontSize = 10.0
	maxPadding      = 40
)

// PDFParser extracts page text with github.com/ledongthuc/pdf. Each page is
// first read in layout mode (rows top to bottom, glyphs left to right) and,
// when that is not possible, in plain mode. Pages that yield nothing are
// kept as empty strings.
type PDFParser struct {
	LayoutMode bool
}

func (p *PDFParser) Parse(r io.Reader, filename string) (document.Pages, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}

	reader, numPages, err := openPDF(data)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	pages := make(document.Pages, numPages)
	for i := 1; i <= numPages; i++ {
		pages[i-1] = p.pageText(reader, i)
	}
	return pages, nil
}

// openPDF opens data in memory. The library panics on some malformed
// inputs; that is reported as an open failure.
func openPDF(data []byte) (reader *pdflib.Reader, numPages int, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			reader, numPages, err = nil, 0, fmt.Errorf("malformed pdf: %v", rec)
		}
	}()
	reader, err = pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, 0, err
	}
	return reader, reader.NumPage(), nil
}

func (p *PDFParser) pageText(reader *pdflib.Reader, num int) (text string) {
	defer func() {
		if recover() != nil {
			text = ""
		}
	}()

	page := reader.Page(num)
	if page.V.IsNull() {
		return ""
	}
	if p.LayoutMode {
		text, err := layoutText(page)
		if err == nil {
			return text
		}
	}
	text, err := plainText(page)
	if err != nil {
		return ""
	}
	return text
}

func layoutText(page pdflib.Page) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text, err = "", fmt.Errorf("%w: %v", errLayoutUnsupported, rec)
		}
	}()

	rows, err := page.GetTextByRow()
	if err != nil {
		return "", fmt.Errorf("%w: %v", errLayoutUnsupported, err)
	}
	if len(rows) == 0 {
		return "", errLayoutUnsupported
	}

	// Row position is the baseline Y; larger is higher on the page.
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Position > rows[j].Position
	})

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, joinRow(row.Content))
	}
	return strings.Join(lines, "\n"), nil
}

// joinRow concatenates the glyphs of one row from left to right, padding
// visible horizontal gaps with spaces.
func joinRow(glyphs pdflib.TextHorizontal) string {
	sorted := make([]pdflib.Text, len(glyphs))
	copy(sorted, glyphs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	var sb strings.Builder
	var prevEnd float64
	lastSpace := true
	for i, g := range sorted {
		if i > 0 && !lastSpace && !strings.HasPrefix(g.S, " ") {
			sb.WriteString(gapPadding(g.X-prevEnd, fontSize(g)))
		}
		sb.WriteString(g.S)
		prevEnd = glyphEnd(g)
		lastSpace = strings.HasSuffix(g.S, " ")
	}
	return sb.String()
}

func fontSize(g pdflib.Text) float64 {
	if g.FontSize > 0 {
		return g.FontSize
	}
	return defaultFontSize
}

// glyphEnd is the right edge of a text run. Row extraction does not always
// report widths, so the advance is then estimated from the rune count.
func glyphEnd(g pdflib.Text) float64 {
	if g.W > 0 {
		return g.X + g.W
	}
	return g.X + float64(utf8.RuneCountInString(g.S))*fontSize(g)*charRatio
}

func gapPadding(gap, size float64) string {
	unit := size * spaceRatio
	if gap < unit {
		return ""
	}
	n := int(gap / unit)
	if n > maxPadding {
		n = maxPadding
	}
	return strings.Repeat(" ", n)
}

func plainText(page pdflib.Page) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text, err = "", fmt.Errorf("plain extraction: %v", rec)
		}
	}()
	return page.GetPlainText(nil)
}
