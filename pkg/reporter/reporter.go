// Package reporter writes highlight results in the supported output formats.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/searchlight/pkg/config"
	"github.com/yaklabco/searchlight/pkg/runner"
)

// Reporter formats and writes highlight results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of highlighted spans reported and any write error.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
//
//nolint:ireturn // callers select the implementation by format.
func New(opts Options) (Reporter, error) {
	defaults := DefaultOptions()
	if opts.Writer == nil {
		opts.Writer = defaults.Writer
	}
	if opts.ErrorWriter == nil {
		opts.ErrorWriter = defaults.ErrorWriter
	}

	format := opts.Format
	if format == "" {
		format = config.FormatHTML
	}

	switch format {
	case config.FormatHTML:
		return NewHTMLReporter(opts), nil
	case config.FormatText:
		return NewTextReporter(opts), nil
	case config.FormatJSON:
		return NewJSONReporter(opts), nil
	case config.FormatList:
		return NewListReporter(opts), nil
	case config.FormatSummary:
		return NewSummaryReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// countSpans totals the highlighted spans of successfully processed files.
func countSpans(result *runner.Result) int {
	if result == nil {
		return 0
	}
	var total int
	for _, file := range result.Files {
		total += len(file.Matches)
	}
	return total
}
