package layout

import (
	"regexp"
	"strings"
	"unicode"
)

// FillerGlyph is emitted by PDF text extraction for symbols it cannot map.
const FillerGlyph = "■"

// equalsTokenRe matches the "/equals" artifact together with any whitespace
// around it (the same set isSpace accepts).
var equalsTokenRe = regexp.MustCompile(`[\s\v\x{1c}-\x{1f}\x{85}\p{Z}]*/equals[\s\v\x{1c}-\x{1f}\x{85}\p{Z}]*`)

// Normalize cleans a single extracted line: filler glyphs are dropped, the
// "/equals" extraction artifact becomes "=", whitespace runs collapse to one
// space and the result is trimmed. Normalize is idempotent.
func Normalize(line string) string {
	if line == "" {
		return ""
	}
	line = strings.ReplaceAll(line, FillerGlyph, "")
	line = equalsTokenRe.ReplaceAllString(line, "=")
	return strings.Join(strings.FieldsFunc(line, isSpace), " ")
}

// isSpace extends unicode.IsSpace with the file, group, record and unit
// separators (U+001C..U+001F), which text extraction can leave in a line.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}
