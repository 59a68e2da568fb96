// Package runner highlights many files concurrently.
package runner

import (
	"github.com/charmbracelet/log"

	"github.com/yaklabco/searchlight/pkg/config"
)

// Options controls a multi-file run.
type Options struct {
	// Paths are files or directories to process. Empty means the working
	// directory.
	Paths []string

	// WorkingDir resolves relative Paths. Empty means the process working
	// directory.
	WorkingDir string

	// Extensions selects files found while walking directories (lowercase,
	// with leading dot). Files named explicitly in Paths are always
	// processed. Defaults to config.DefaultExtensions.
	Extensions []string

	// Ignore holds glob patterns, relative to WorkingDir, for files and
	// directories to skip. "**" crosses directory boundaries.
	Ignore []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs is the number of concurrent workers. 0 or less means
	// runtime.NumCPU().
	Jobs int

	// InputType forces a tokenizer for every file. Empty detects by
	// extension.
	InputType config.InputType

	// Flavor is the Markdown flavor used for Markdown inputs.
	Flavor config.Flavor

	// KeepOutput retains each rewritten document in FileOutcome.Output.
	KeepOutput bool

	// Logger receives per-file debug logging. Nil is silent.
	Logger *log.Logger
}

// OptionsFromConfig fills the file selection and tokenizer fields from cfg.
func OptionsFromConfig(cfg *config.Config, paths []string) Options {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return Options{
		Paths:      paths,
		Extensions: cfg.Extensions,
		Ignore:     cfg.Ignore,
		Jobs:       cfg.Jobs,
		InputType:  cfg.InputType,
		Flavor:     cfg.MarkdownFlavor,
		KeepOutput: true,
	}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return config.DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
