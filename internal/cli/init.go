package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/searchlight/internal/configloader"
	"github.com/yaklabco/searchlight/internal/logging"
	"github.com/yaklabco/searchlight/pkg/config"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

type initFlags struct {
	force   bool
	full    bool
	format  string
	output  string
	primary []string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a searchlight configuration file",
		Long: `Create a .searchlight.yml configuration file in the current directory.

Examples:
  searchlight init                        Create a minimal .searchlight.yml
  searchlight init --full                 Write every setting with its default
  searchlight init -p error,warning       Pre-fill the primary phrases
  searchlight init --format json          Create searchlight.json instead
  searchlight init --output custom.yml    Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(flags)
		},
	}

	cmd.Flags().BoolVar(&flags.force, "force", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "write every setting with its default value")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "file format: yaml or json")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file path (default: .searchlight.yml or searchlight.json)")
	cmd.Flags().StringSliceVarP(&flags.primary, "primary", "p", nil, "primary search phrases to pre-fill")

	return cmd
}

func runInit(flags *initFlags) error {
	logger := logging.NewInteractive()

	format := strings.ToLower(flags.format)
	if format != "yaml" && format != "json" {
		return withExitCode(ExitInvalidUsage, fmt.Errorf("invalid format %q: must be yaml or json", flags.format))
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = configloader.ProjectConfigFileName()
		if format == "json" {
			outputPath = "searchlight.json"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return withExitCode(ExitInvalidUsage, fmt.Errorf("file %q already exists; use --force to overwrite", outputPath))
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:         flags.full,
		Format:       format,
		PrimaryTerms: flags.primary,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := os.WriteFile(absPath, content, configFilePermissions); err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("write file: %w", err))
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	if format == "json" && flags.output == "" {
		logger.Info("pass it with --config; only YAML names are discovered automatically")
	}
	if len(flags.primary) == 0 {
		logger.Info("add phrases under search.primary_terms to start highlighting")
	}
	return nil
}
