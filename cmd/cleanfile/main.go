// Package main is the entry point for the cleanfile CLI.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dgallion1/cleanfile/internal/cleaner"
	"github.com/dgallion1/cleanfile/internal/config"
)

// version is set at build time via ldflags.
var version = "dev"

// exitNoText is the exit status when a document has no readable text.
const exitNoText = 2

var rootCmd = &cobra.Command{
	Use:   "cleanfile",
	Short: "Rebuild untrusted documents as plain text-only PDFs",
	Long: `cleanfile extracts the text of a document page by page, normalizes each
line and renders it into a brand-new PDF. Nothing but text survives: scripts,
forms, links, annotations and embedded files in the input are never copied.

PDF, DOCX, Markdown, HTML and plain text inputs are accepted.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./cleanfile.yaml or ~/.config/cleanfile/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().Bool("plain", false, "skip layout-preserving PDF extraction")
}

func initConfig() {
	config.SetDefaults(viper.GetViper())

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("cleanfile")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "cleanfile"))
		}
	}

	config.BindEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig returns the validated configuration with command-line
// overrides applied.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Load(viper.GetViper())
	if plain, _ := cmd.Flags().GetBool("plain"); plain {
		cfg.LayoutMode = false
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.LogLevel = zerolog.LevelDebugValue
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg config.Config) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var out io.Writer = os.Stderr
	if cfg.LogFormat != "json" {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func newCleaner(cfg config.Config, log zerolog.Logger) *cleaner.Cleaner {
	return cleaner.New(cleaner.Options{LayoutMode: cfg.LayoutMode}, log)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, cleaner.ErrNoReadableText) {
			fmt.Fprintln(os.Stderr, cleaner.UserMessage(err))
			os.Exit(exitNoText)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
