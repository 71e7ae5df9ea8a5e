package document

// Pages holds the raw extracted text of a source document, one entry per
// source page in page order. Unreadable pages are kept as empty strings so
// len(Pages) always equals the source page count.
type Pages []string

// Readable reports whether at least one page produced text. A page holding
// only whitespace counts; it renders as spacers.
func (p Pages) Readable() bool {
	for _, text := range p {
		if text != "" {
			return true
		}
	}
	return false
}

// ElementKind identifies how a render element is styled.
type ElementKind int

const (
	Spacer ElementKind = iota
	Title
	Heading
	Body
)

func (k ElementKind) String() string {
	switch k {
	case Title:
		return "title"
	case Heading:
		return "heading"
	case Body:
		return "body"
	case Spacer:
		return "spacer"
	}
	return "unknown"
}

// Vertical spacer heights in points (1 inch = 72 pt).
const (
	LineSpacerHeight = 0.15 * 72 // blank source line
	PageSpacerHeight = 0.4 * 72  // end of a source page
)

// Element is one styled unit of the rebuilt document.
type Element struct {
	Kind   ElementKind
	Text   string  // normalized text; empty for Spacer
	Height float64 // Spacer only
}

// NewSpacer returns a blank element of the given height in points.
func NewSpacer(height float64) Element {
	return Element{Kind: Spacer, Height: height}
}
