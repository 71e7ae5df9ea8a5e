// Package cleaner turns an untrusted document into a plain, re-rendered PDF.
// Only text survives: it is extracted page by page, normalized, classified
// and laid out again from scratch.
package cleaner

import (
	"bytes"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/dgallion1/cleanfile/internal/document"
	"github.com/dgallion1/cleanfile/internal/inspect"
	"github.com/dgallion1/cleanfile/internal/layout"
	"github.com/dgallion1/cleanfile/internal/parser"
	"github.com/dgallion1/cleanfile/internal/render"
)

// Options configures a Cleaner.
type Options struct {
	// LayoutMode tries row-preserving PDF extraction before plain mode.
	LayoutMode bool
	// CreationDate is stamped into the output; zero means now.
	CreationDate time.Time
}

// Cleaner runs extraction and rebuilding. It holds no per-document state
// and is safe for concurrent use.
type Cleaner struct {
	opts Options
	log  zerolog.Logger
}

// Result is a cleaned document.
type Result struct {
	PDF      []byte
	Pages    int
	Elements []document.Element
	// Report lists the active content of a PDF input that was discarded.
	// Nil for other inputs or when the input could not be inspected.
	Report *inspect.Report
}

func New(opts Options, log zerolog.Logger) *Cleaner {
	return &Cleaner{opts: opts, log: log}
}

// Process extracts the text of data and renders it into a new PDF.
func (c *Cleaner) Process(data []byte, filename string) (*Result, error) {
	pages, err := c.Extract(data, filename)
	if err != nil {
		return nil, err
	}

	out, elements, err := c.Rebuild(pages)
	if err != nil {
		return nil, err
	}

	res := &Result{
		PDF:      out,
		Pages:    len(pages),
		Elements: elements,
	}
	if parser.IsPDF(filename) {
		res.Report = c.inspect(data, filename)
	}
	return res, nil
}

// Extract returns the text of every page. ErrNoReadableText is returned,
// together with the pages, when none of them holds any text.
func (c *Cleaner) Extract(data []byte, filename string) (document.Pages, error) {
	p, err := parser.ForFile(filename, parser.Options{LayoutMode: c.opts.LayoutMode})
	if err != nil {
		return nil, err
	}

	start := time.Now()
	pages, err := p.Parse(bytes.NewReader(data), filename)
	if err != nil {
		return nil, &ExtractionError{Filename: filename, Err: err}
	}
	c.log.Debug().
		Str("file", filename).
		Int("pages", len(pages)).
		Dur("took", time.Since(start)).
		Msg("extracted")

	if !pages.Readable() {
		return pages, ErrNoReadableText
	}
	return pages, nil
}

// Rebuild lays out pages and renders the clean PDF.
func (c *Cleaner) Rebuild(pages document.Pages) ([]byte, []document.Element, error) {
	elements := layout.Build(pages)

	out, err := render.Render(elements, render.Options{
		Title:        titleOf(elements),
		CreationDate: c.opts.CreationDate,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrRebuild, err)
	}
	return out, elements, nil
}

func (c *Cleaner) inspect(data []byte, filename string) *inspect.Report {
	report, err := inspect.Scan(data)
	if err != nil {
		c.log.Debug().Err(err).Str("file", filename).Msg("inspect skipped")
		return nil
	}
	if findings := report.Findings(); len(findings) > 0 {
		c.log.Info().Str("file", filename).Strs("discarded", findings).Msg("active content removed")
	}
	return report
}

func titleOf(elements []document.Element) string {
	for _, el := range elements {
		if el.Kind == document.Title {
			return el.Text
		}
	}
	return ""
}
