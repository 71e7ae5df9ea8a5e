package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dgallion1/cleanfile/internal/inspect"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <input.pdf>",
	Short: "Report the active content a PDF carries",
	Long: `Inspect lists the JavaScript, automatic actions, forms, links, annotations
and embedded files found in a PDF. None of these survive cleaning.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		report, err := inspect.Scan(data)
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		return writeReport(cmd, report, format)
	},
}

type reportOutput struct {
	File     string          `json:"file" yaml:"file"`
	Findings []string        `json:"findings" yaml:"findings"`
	Report   *inspect.Report `json:"report" yaml:"report"`
}

func writeReport(cmd *cobra.Command, report *inspect.Report, format string) error {
	findings := report.Findings()
	if findings == nil {
		findings = []string{}
	}
	doc := reportOutput{
		File:     cmd.Flags().Arg(0),
		Findings: findings,
		Report:   report,
	}

	out := cmd.OutOrStdout()
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	default:
		return fmt.Errorf("unknown format %q (want yaml or json)", format)
	}
}

func init() {
	inspectCmd.Flags().String("format", "yaml", "output format: yaml or json")

	rootCmd.AddCommand(inspectCmd)
}
