package layout

import (
	"fmt"
	"strings"

	"github.com/dgallion1/cleanfile/internal/document"
)

// Build turns extracted pages into the ordered render elements of the clean
// document. Blank lines become short spacers, every page ends with a page
// spacer (the last one included) and exactly one title is assigned across
// the whole document.
func Build(pages document.Pages) []document.Element {
	var elements []document.Element
	titled := false
	for _, text := range pages {
		elements, titled = appendPage(elements, text, titled)
	}
	return elements
}

// appendPage lays out one page and returns the updated title flag. Lines
// are split on "\n" only; a stray "\r" is whitespace to Normalize.
func appendPage(elements []document.Element, text string, titled bool) ([]document.Element, bool) {
	for _, raw := range strings.Split(text, "\n") {
		line := Normalize(raw)
		if line == "" {
			elements = append(elements, document.NewSpacer(document.LineSpacerHeight))
			continue
		}
		elements = append(elements, document.Element{
			Kind: Classify(line, !titled),
			Text: line,
		})
		titled = true
	}
	return append(elements, document.NewSpacer(document.PageSpacerHeight)), titled
}

// Outline renders elements as one line each, for inspection on a terminal.
func Outline(elements []document.Element) string {
	var sb strings.Builder
	for _, el := range elements {
		switch el.Kind {
		case document.Spacer:
			fmt.Fprintf(&sb, "%-8s %.1fpt\n", "SPACER", el.Height)
		default:
			fmt.Fprintf(&sb, "%-8s %s\n", strings.ToUpper(el.Kind.String()), el.Text)
		}
	}
	return sb.String()
}
