package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dgallion1/cleanfile/internal/inspect"
)

var cleanCmd = &cobra.Command{
	Use:   "clean <input>",
	Short: "Rebuild a document as a clean text-only PDF",
	Long: `Clean extracts the text of the input and writes it to a new PDF. The first
non-empty line becomes the title; short upper-case lines become headings and
everything else body text.

Exits with status 2 when the input holds no readable text.`,
	Args: cobra.ExactArgs(1),
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().StringP("output", "o", "", "output path (default: output_filename from config)")
	cleanCmd.Flags().Bool("verify", false, "validate the output and confirm it carries no active content")

	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	input := args[0]
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	res, err := newCleaner(cfg, log).Process(data, input)
	if err != nil {
		return err
	}

	if verify, _ := cmd.Flags().GetBool("verify"); verify {
		if err := verifyOutput(res.PDF); err != nil {
			return err
		}
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = cfg.OutputFilename
	}
	if err := os.WriteFile(output, res.PDF, 0o644); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Wrote %s (%d pages in, %d elements)\n", output, res.Pages, len(res.Elements))
	if res.Report != nil && !res.Report.Clean() {
		fmt.Fprintf(out, "Discarded: %s\n", strings.Join(res.Report.Findings(), ", "))
	}
	return nil
}

func verifyOutput(pdf []byte) error {
	if err := inspect.Validate(pdf); err != nil {
		return fmt.Errorf("output failed validation: %w", err)
	}
	report, err := inspect.Scan(pdf)
	if err != nil {
		return fmt.Errorf("inspect output: %w", err)
	}
	if !report.Clean() {
		return fmt.Errorf("output carries active content: %s", strings.Join(report.Findings(), ", "))
	}
	return nil
}
