package reporter

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/yaklabco/searchlight/internal/ui/pretty"
	"github.com/yaklabco/searchlight/pkg/runner"
	"github.com/yaklabco/searchlight/pkg/source"
)

// maxRuleWidth caps the separator drawn between documents.
const maxRuleWidth = 80

// TextReporter renders rewritten documents for the terminal: markup is
// dropped, character references are decoded, and highlighted spans are
// styled instead of wrapped in tags.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	width  int
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStylesFor(colorEnabled, opts.Style.Color, opts.Style.Bold),
		width:  terminalWidth(opts.Width, opts.Writer),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to search."))
		}
		return 0, nil
	}

	withHeaders := len(result.Files) > 1
	rule := r.styles.Dim.Render(strings.Repeat("─", min(r.width, maxRuleWidth)))

	for i, file := range result.Files {
		if ctx.Err() != nil {
			return 0, fmt.Errorf("report cancelled: %w", ctx.Err())
		}

		path := displayPath(file.Path, r.opts.WorkingDir)
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}

		if withHeaders {
			if i > 0 {
				fmt.Fprintln(r.bw, rule)
			}
			fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(file.Matches)))
		}

		rendered := r.Render(file.Output)
		r.bw.WriteString(rendered)
		if rendered != "" && !strings.HasSuffix(rendered, "\n") {
			r.bw.WriteString("\n")
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return countSpans(result), nil
}

// Render converts one rewritten document to styled terminal text.
func (r *TextReporter) Render(document []byte) string {
	open := r.opts.Style.OpenMarkup()[0]
	closing := r.opts.Style.CloseMarkup()
	closeTag := closing[len(closing)-1]

	var sb strings.Builder
	inMatch := false

	src := source.NewHTML(bytes.NewReader(document))
	for src.HasMore() {
		tok := src.Next()

		text := tok.Text
		if tok.IsTag() {
			switch {
			case text == open:
				inMatch = true
				continue
			case text == closeTag:
				inMatch = false
				continue
			case strings.HasPrefix(text, "&"):
				text = html.UnescapeString(text)
			default:
				continue
			}
		}

		if inMatch {
			r.writeStyled(&sb, text)
		} else {
			sb.WriteString(text)
		}
	}
	return sb.String()
}

// writeStyled styles each line of text separately so that lipgloss does
// not pad a multi-line span into a block.
func (r *TextReporter) writeStyled(sb *strings.Builder, text string) {
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			sb.WriteByte('\n')
		}
		if line != "" {
			sb.WriteString(r.styles.Match.Render(line))
		}
	}
}
