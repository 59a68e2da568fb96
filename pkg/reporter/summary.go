package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/searchlight/internal/ui/pretty"
	"github.com/yaklabco/searchlight/pkg/runner"
)

// SummaryReporter writes a per-file statistics table followed by totals.
type SummaryReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)

	return &SummaryReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, terminalWidth(opts.Width, opts.Writer), opts.WorkingDir),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		fmt.Fprintln(r.bw, r.styles.Success.Render("No files to search."))
		return 0, nil
	}

	fmt.Fprint(r.bw, r.formatter.FormatTable(result))
	fmt.Fprint(r.bw, r.styles.FormatSummary(result.Stats))

	return countSpans(result), nil
}
