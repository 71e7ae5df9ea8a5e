package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgallion1/cleanfile/internal/cleaner"
	"github.com/dgallion1/cleanfile/internal/layout"
)

var outlineCmd = &cobra.Command{
	Use:   "outline <input>",
	Short: "Print how each line of a document would be rendered",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}

		pages, err := newCleaner(cfg, newLogger(cfg)).Extract(data, args[0])
		if err != nil && !errors.Is(err, cleaner.ErrNoReadableText) {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), layout.Outline(layout.Build(pages)))
		return err
	},
}

func init() {
	rootCmd.AddCommand(outlineCmd)
}
