package parser

import (
	"io"
	"strings"

	"github.com/dgallion1/cleanfile/internal/document"
)

// TextParser handles plain text files. Form feeds separate pages.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (document.Pages, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	return document.Pages(strings.Split(text, "\f")), nil
}
