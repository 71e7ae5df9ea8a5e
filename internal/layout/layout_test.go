package layout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/cleanfile/internal/document"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", " \t\n ", ""},
		{"equals token", "a/equals b", "a=b"},
		{"equals token spaced", "x /equals 2", "x=2"},
		{"whitespace runs", "a   b\tc", "a b c"},
		{"trim", "  padded line  ", "padded line"},
		{"filler glyphs", "■Total■ ■cost■", "Total cost"},
		{"nbsp collapses", "a  b", "a b"},
		{"plain text untouched", "Hello, world.", "Hello, world."},
		{"separator controls are whitespace", "a\x1cb\x1dc\x1ed\x1fe", "a b c d e"},
		{"equals token between separators", "x\x1f/equals\x1c2", "x=2"},
		{"stray carriage return", "Doc\rBODY here\r", "Doc BODY here"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"a/equals b",
		"■■■",
		"/eq■uals",
		"  lots \t of \n space  ",
		"//equals/equals",
		"x = y",
		" em space ",
		"VAT /equals 20% ■",
		"\x1c/equals\x1f",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestNormalize_RemovesEveryFillerGlyph(t *testing.T) {
	for n := 0; n < 10; n++ {
		in := strings.Repeat("ab"+FillerGlyph, n)
		out := Normalize(in)
		assert.Equal(t, 0, strings.Count(out, FillerGlyph), "n=%d", n)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		first bool
		want  document.ElementKind
	}{
		{"first line is title", "quarterly report.", true, document.Title},
		{"all caps heading", "SUMMARY", false, document.Heading},
		{"caps with digits", "SECTION 2: RESULTS", false, document.Heading},
		{"trailing period is body", "SUMMARY.", false, document.Body},
		{"lowercase is body", "Summary", false, document.Body},
		{"sentence is body", "This is body text.", false, document.Body},
		{"digits only is heading", "2024", false, document.Heading},
		{"punctuation only is heading", "---", false, document.Heading},
		{"all caps sentence without period", "DO NOT REMOVE THIS LABEL", false, document.Heading},
		{"thirteen words is body", "A B C D E F G H I J K L M", false, document.Body},
		{"twelve words is heading", "A B C D E F G H I J K L", false, document.Heading},
		{"eighty chars is body", strings.Repeat("X", 80), false, document.Body},
		{"seventy nine chars is heading", strings.Repeat("X", 79), false, document.Heading},
		{"sharp s is lowercase", "STRAßE", false, document.Body},
		{"fi ligature is lowercase", "ﬁ", false, document.Body},
		{"accented capitals", "ÉTÉ", false, document.Heading},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.line, tt.first))
		})
	}
}

func TestBuild_TwoPageSequence(t *testing.T) {
	pages := document.Pages{
		"Report\nSUMMARY\nThis is body text.",
		"\nMORE",
	}

	got := Build(pages)

	want := []document.Element{
		{Kind: document.Title, Text: "Report"},
		{Kind: document.Heading, Text: "SUMMARY"},
		{Kind: document.Body, Text: "This is body text."},
		document.NewSpacer(document.PageSpacerHeight),
		document.NewSpacer(document.LineSpacerHeight),
		{Kind: document.Heading, Text: "MORE"},
		document.NewSpacer(document.PageSpacerHeight),
	}
	assert.Equal(t, want, got)
}

func TestBuild_SingleTitleAcrossPages(t *testing.T) {
	pages := document.Pages{
		"First Page Title\nbody one",
		"Second Page Title\nbody two",
		"Third Page Title",
	}

	titles := 0
	for _, el := range Build(pages) {
		if el.Kind == document.Title {
			titles++
			assert.Equal(t, "First Page Title", el.Text)
		}
	}
	assert.Equal(t, 1, titles)
}

func TestBuild_TitleSkipsLeadingBlankPages(t *testing.T) {
	got := Build(document.Pages{"", "  \n", "Actual Title"})

	var titled []string
	for _, el := range got {
		if el.Kind == document.Title {
			titled = append(titled, el.Text)
		}
	}
	assert.Equal(t, []string{"Actual Title"}, titled)
}

func TestBuild_EmptyPageOnlyAddsSpacers(t *testing.T) {
	got := Build(document.Pages{""})

	require.NotEmpty(t, got)
	for _, el := range got {
		assert.Equal(t, document.Spacer, el.Kind)
	}
	assert.Equal(t, document.NewSpacer(document.PageSpacerHeight), got[len(got)-1])
}

func TestBuild_PageSpacerPerPage(t *testing.T) {
	pages := document.Pages{"one", "", "THREE\nfour."}

	spacers := 0
	for _, el := range Build(pages) {
		if el.Kind == document.Spacer && el.Height == document.PageSpacerHeight {
			spacers++
		}
	}
	assert.Equal(t, len(pages), spacers)
}

func TestBuild_CarriageReturns(t *testing.T) {
	got := Build(document.Pages{"Title\r\nBODY LINE\r\nlast line."})

	require.Len(t, got, 4)
	assert.Equal(t, document.Element{Kind: document.Title, Text: "Title"}, got[0])
	assert.Equal(t, document.Element{Kind: document.Heading, Text: "BODY LINE"}, got[1])
	assert.Equal(t, document.Element{Kind: document.Body, Text: "last line."}, got[2])
}

func TestBuild_LoneCarriageReturnIsNotALineBreak(t *testing.T) {
	got := Build(document.Pages{"Doc\rBODY here"})

	require.Len(t, got, 2)
	assert.Equal(t, document.Element{Kind: document.Title, Text: "Doc BODY here"}, got[0])
	assert.Equal(t, document.NewSpacer(document.PageSpacerHeight), got[1])
}

func TestBuild_NormalizesBeforeClassifying(t *testing.T) {
	got := Build(document.Pages{"Doc\n■■ \t■\nRATE /equals 5"})

	require.Len(t, got, 4)
	assert.Equal(t, document.NewSpacer(document.LineSpacerHeight), got[1])
	assert.Equal(t, document.Element{Kind: document.Heading, Text: "RATE=5"}, got[2])
}

func TestOutline(t *testing.T) {
	out := Outline(Build(document.Pages{"Report\nSUMMARY"}))

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "TITLE"))
	assert.Contains(t, lines[0], "Report")
	assert.True(t, strings.HasPrefix(lines[1], "HEADING"))
	assert.Equal(t, "SPACER   28.8pt", lines[2])
}
