package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/searchlight/pkg/runner"
)

// HTMLReporter writes each rewritten document unchanged, in path order.
// Per-file errors go to ErrorWriter.
type HTMLReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewHTMLReporter creates a new HTML reporter.
func NewHTMLReporter(opts Options) *HTMLReporter {
	return &HTMLReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *HTMLReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	for _, file := range result.Files {
		if ctx.Err() != nil {
			return 0, fmt.Errorf("report cancelled: %w", ctx.Err())
		}
		if file.Error != nil {
			fmt.Fprintf(r.opts.ErrorWriter, "%s: %v\n", displayPath(file.Path, r.opts.WorkingDir), file.Error)
			continue
		}
		if _, err := r.bw.Write(file.Output); err != nil {
			return 0, fmt.Errorf("write %s: %w", file.Path, err)
		}
	}

	return countSpans(result), nil
}
