package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/searchlight/internal/ui/pretty"
	"github.com/yaklabco/searchlight/pkg/runner"
)

// minExcerptWidth keeps excerpts readable on narrow terminals.
const minExcerptWidth = 10

// ListReporter writes one line per highlighted span:
//
//	path:start-end: text
//
// The text is shortened to fit the terminal width.
type ListReporter struct {
	opts   Options
	styles *pretty.Styles
	width  int
	bw     *bufio.Writer
}

// NewListReporter creates a new list reporter.
func NewListReporter(opts Options) *ListReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &ListReporter{
		opts:   opts,
		styles: pretty.NewStylesFor(colorEnabled, opts.Style.Color, opts.Style.Bold),
		width:  terminalWidth(opts.Width, opts.Writer),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *ListReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		if ctx.Err() != nil {
			return total, fmt.Errorf("report cancelled: %w", ctx.Err())
		}

		path := displayPath(file.Path, r.opts.WorkingDir)
		if file.Error != nil {
			fmt.Fprintf(r.opts.ErrorWriter, "%s: %v\n", path, file.Error)
			continue
		}

		for _, m := range file.Matches {
			r.writeMatch(path, m.Start, m.End, m.Text)
			total++
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

func (r *ListReporter) writeMatch(path string, start, end int, text string) {
	location := fmt.Sprintf("%d-%d", start, end)
	prefix := path + ":" + location + ": "

	budget := max(minExcerptWidth, r.width-pretty.DisplayWidth(prefix))
	excerpt := pretty.Truncate(pretty.SingleLine(text), budget)

	fmt.Fprintf(r.bw, "%s:%s: %s\n",
		r.styles.FilePath.Render(path),
		r.styles.Location.Render(location),
		r.styles.Match.Render(excerpt),
	)
}
