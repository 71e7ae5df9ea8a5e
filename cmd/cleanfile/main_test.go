package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dgallion1/cleanfile/internal/cleaner"
	"github.com/dgallion1/cleanfile/internal/inspect"
	"github.com/dgallion1/cleanfile/internal/testpdf"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCleanCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.pdf")
	output := filepath.Join(dir, "out.pdf")
	require.NoError(t, os.WriteFile(input, testpdf.New(t, testpdf.Options{JavaScript: "app.alert(1);"},
		[]string{"Report", "SUMMARY", "Body text."},
	), 0o644))

	out, err := execute(t, "clean", input, "-o", output, "--verify")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+output)
	assert.Contains(t, out, "Discarded: javascript")

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	require.NoError(t, verifyOutput(data))
}

func TestCleanCommand_NoText(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "blank.txt")
	require.NoError(t, os.WriteFile(input, []byte{}, 0o644))

	_, err := execute(t, "clean", input, "-o", filepath.Join(dir, "out.pdf"))
	assert.ErrorIs(t, err, cleaner.ErrNoReadableText)
	assert.NoFileExists(t, filepath.Join(dir, "out.pdf"))
}

func TestOutlineCommand(t *testing.T) {
	input := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(input, []byte("Report\nSUMMARY\nThis is body text."), 0o644))

	out, err := execute(t, "outline", input)
	require.NoError(t, err)
	assert.Equal(t, "TITLE    Report\nHEADING  SUMMARY\nBODY     This is body text.\nSPACER   28.8pt\n", out)
}

func TestInspectCommand_YAML(t *testing.T) {
	input := filepath.Join(t.TempDir(), "a.pdf")
	require.NoError(t, os.WriteFile(input, testpdf.New(t, testpdf.Options{LinkURL: "https://x.example"}, []string{"Hi"}), 0o644))

	out, err := execute(t, "inspect", input, "--format", "yaml")
	require.NoError(t, err)

	var doc struct {
		File     string         `yaml:"file"`
		Findings []string       `yaml:"findings"`
		Report   inspect.Report `yaml:"report"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, input, doc.File)
	assert.Contains(t, doc.Findings, "links")
	assert.Equal(t, 1, doc.Report.Pages)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "cleanfile dev\n", out)
}
