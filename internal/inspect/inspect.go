// Package inspect reports the active content a PDF carries. The cleaner
// never copies any of it; the report tells the caller what was discarded.
package inspect

import (
	"bytes"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

func init() {
	// pdfcpu otherwise creates a config directory under the user's home.
	api.DisableConfigDir()
}

// Report summarizes the interactive and executable content of a PDF.
type Report struct {
	Pages int `json:"pages" yaml:"pages"`

	DocumentJavaScript bool `json:"document_javascript" yaml:"document_javascript"`
	OpenAction         bool `json:"open_action" yaml:"open_action"`
	AcroForm           bool `json:"acroform" yaml:"acroform"`
	XFA                bool `json:"xfa" yaml:"xfa"`

	JavaScriptActions int `json:"javascript_actions" yaml:"javascript_actions"`
	LaunchActions     int `json:"launch_actions" yaml:"launch_actions"`
	FormActions       int `json:"form_actions" yaml:"form_actions"`
	URIActions        int `json:"uri_actions" yaml:"uri_actions"`
	RemoteGoToActions int `json:"remote_goto_actions" yaml:"remote_goto_actions"`
	AdditionalActions int `json:"additional_actions" yaml:"additional_actions"`

	Annotations   int `json:"annotations" yaml:"annotations"`
	Widgets       int `json:"widgets" yaml:"widgets"`
	EmbeddedFiles int `json:"embedded_files" yaml:"embedded_files"`
}

// Findings lists the categories of active content present, in a stable order.
func (r *Report) Findings() []string {
	var out []string
	add := func(present bool, name string) {
		if present {
			out = append(out, name)
		}
	}
	add(r.DocumentJavaScript || r.JavaScriptActions > 0, "javascript")
	add(r.OpenAction, "open-action")
	add(r.AdditionalActions > 0, "additional-actions")
	add(r.LaunchActions > 0, "launch")
	add(r.AcroForm || r.Widgets > 0 || r.FormActions > 0, "forms")
	add(r.XFA, "xfa")
	add(r.URIActions > 0 || r.RemoteGoToActions > 0, "links")
	add(r.EmbeddedFiles > 0, "embedded-files")
	add(r.Annotations > r.Widgets, "annotations")
	return out
}

// Clean reports whether no active content was found.
func (r *Report) Clean() bool {
	return len(r.Findings()) == 0
}

func newConfig() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// Scan reads data as a PDF and reports its active content.
func Scan(data []byte) (*Report, error) {
	ctx, err := api.ReadContext(bytes.NewReader(data), newConfig())
	if err != nil {
		return nil, fmt.Errorf("read pdf: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("page count: %w", err)
	}

	r := &Report{Pages: ctx.PageCount}
	for _, entry := range ctx.Table {
		if entry == nil || entry.Free || entry.Object == nil {
			continue
		}
		walk(entry.Object, r)
	}
	scanCatalog(ctx, r)
	return r, nil
}

// Validate checks that data is a well-formed PDF.
func Validate(data []byte) error {
	if err := api.Validate(bytes.NewReader(data), newConfig()); err != nil {
		return fmt.Errorf("validate pdf: %w", err)
	}
	return nil
}

func scanCatalog(ctx *model.Context, r *Report) {
	root, err := ctx.Catalog()
	if err != nil || root == nil {
		return
	}
	if _, ok := root.Find("OpenAction"); ok {
		r.OpenAction = true
	}
	if o, ok := root.Find("AcroForm"); ok {
		r.AcroForm = true
		if form, err := ctx.DereferenceDict(o); err == nil && form != nil {
			if _, ok := form.Find("XFA"); ok {
				r.XFA = true
			}
		}
	}
	if o, ok := root.Find("Names"); ok {
		names, err := ctx.DereferenceDict(o)
		if err != nil || names == nil {
			return
		}
		if _, ok := names.Find("JavaScript"); ok {
			r.DocumentJavaScript = true
		}
		if _, ok := names.Find("EmbeddedFiles"); ok && r.EmbeddedFiles == 0 {
			r.EmbeddedFiles = 1
		}
	}
}

func scanDict(d types.Dict, r *Report) {
	if _, ok := d.Find("AA"); ok {
		r.AdditionalActions++
	}
	if _, ok := d.Find("JS"); ok {
		if name(d, "S") != "JavaScript" {
			r.JavaScriptActions++
		}
	}

	switch name(d, "S") {
	case "JavaScript":
		r.JavaScriptActions++
	case "Launch":
		r.LaunchActions++
	case "SubmitForm", "ImportData", "ResetForm":
		r.FormActions++
	case "URI":
		r.URIActions++
	case "GoToR", "GoToE":
		r.RemoteGoToActions++
	}

	switch name(d, "Type") {
	case "Annot":
		r.Annotations++
		if name(d, "Subtype") == "Widget" {
			r.Widgets++
		}
	case "EmbeddedFile":
		r.EmbeddedFiles++
	}
}

// walk visits o and every direct object nested inside it. Indirect
// references are not followed; each indirect object is visited on its own.
func walk(o types.Object, r *Report) {
	switch v := o.(type) {
	case types.Dict:
		scanDict(v, r)
		for _, child := range v {
			walk(child, r)
		}
	case types.StreamDict:
		walk(v.Dict, r)
	case types.Array:
		for _, child := range v {
			walk(child, r)
		}
	}
}

func name(d types.Dict, key string) string {
	o, ok := d.Find(key)
	if !ok {
		return ""
	}
	if n, ok := o.(types.Name); ok {
		return string(n)
	}
	return ""
}
