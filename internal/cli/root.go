// Package cli provides the Cobra command structure for searchlight.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/searchlight/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root searchlight command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var (
		debug      bool
		configPath string
		color      string
	)

	rootCmd := &cobra.Command{
		Use:   "searchlight",
		Short: "Highlight search phrases in HTML, Markdown and text",
		Long: `searchlight finds phrases in documents and wraps every occurrence in
highlight markup, streaming each document once.

A phrase may run across inline elements such as <b> or <em>; block
elements, scripts, styles and character references are never matched
through. Primary phrases are highlighted and counted. Secondary phrases
are highlighted only when no primary phrase is configured.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto", "colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return withExitCode(ExitInvalidUsage, err)
	})

	rootCmd.AddCommand(newHighlightCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	NewHelpFormatter(color, os.Stdout).ApplyToCommand(rootCmd)

	return rootCmd
}
