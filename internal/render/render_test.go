package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/cleanfile/internal/document"
	"github.com/dgallion1/cleanfile/internal/inspect"
	"github.com/dgallion1/cleanfile/internal/layout"
)

var fixedDate = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

func TestRender_ProducesValidPDF(t *testing.T) {
	elements := layout.Build(document.Pages{
		"Report\nSUMMARY\nThis is body text.",
		"\nMORE",
	})

	out, err := Render(elements, Options{Title: "Report", CreationDate: fixedDate})
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	require.NoError(t, inspect.Validate(out))

	report, err := inspect.Scan(out)
	require.NoError(t, err)
	assert.True(t, report.Clean(), "findings: %v", report.Findings())
}

func TestRender_Deterministic(t *testing.T) {
	elements := layout.Build(document.Pages{"Title\nHEADING\nbody."})

	a, err := Render(elements, Options{CreationDate: fixedDate})
	require.NoError(t, err)
	b, err := Render(elements, Options{CreationDate: fixedDate})
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestRender_PaginatesLongInput(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("Long Document\n")
	for i := 0; i < 200; i++ {
		sb.WriteString("This paragraph is long enough to need its own line in the output document.\n")
	}

	out, err := Render(layout.Build(document.Pages{sb.String()}), Options{})
	require.NoError(t, err)

	report, err := inspect.Scan(out)
	require.NoError(t, err)
	assert.Greater(t, report.Pages, 1)
}

func TestRender_NoElements(t *testing.T) {
	out, err := Render(nil, Options{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestRender_UnknownKind(t *testing.T) {
	_, err := Render([]document.Element{{Kind: document.ElementKind(42), Text: "x"}}, Options{})
	assert.Error(t, err)
}

func TestEncodeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"café", "caf\xe9"},
		{"cafe\u0301", "caf\xe9"}, // decomposed form composes first
		{"€5", "\x805"},
		{"日本", "??"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, encodeText(tt.in), "input %q", tt.in)
	}
}
