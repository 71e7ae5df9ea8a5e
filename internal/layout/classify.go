package layout

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dgallion1/cleanfile/internal/document"
)

// Heading shape limits.
const (
	maxHeadingChars = 80
	maxHeadingWords = 12
)

// Classify decides how a normalized, non-empty line renders. The first
// non-empty line of the whole document is the title. After that a line is a
// heading when it is short, has no trailing period and contains no lowercase
// letters. Lines of only digits or punctuation therefore also count as
// headings, as do all-caps sentences without a period.
func Classify(line string, firstNonEmpty bool) document.ElementKind {
	if firstNonEmpty {
		return document.Title
	}
	if isHeading(line) {
		return document.Heading
	}
	return document.Body
}

func isHeading(line string) bool {
	return utf8.RuneCountInString(line) < maxHeadingChars &&
		len(strings.Fields(line)) <= maxHeadingWords &&
		!strings.HasSuffix(line, ".") &&
		strings.ToUpper(line) == line &&
		!strings.ContainsFunc(line, unicode.IsLower)
}
