package pretty

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/yaklabco/searchlight/pkg/runner"
)

// Table formatting constants.
const (
	tablePadding     = 2
	numColumnCount   = 4 // SPANS, MATCHES, TOKENS, TIME
	minFileWidth     = 20
	numColumnWidth   = 8
	heavySeparator   = "="
	lightSeparator   = "-"
	defaultTermWidth = 100
)

// TableRow is one file in the summary table.
type TableRow struct {
	File     string
	Spans    int
	Matches  int
	Tokens   int
	Duration time.Duration
	Failed   bool
}

// TableFormatter formats per-file statistics as a styled table.
type TableFormatter struct {
	styles     *Styles
	termWidth  int
	workingDir string
}

// NewTableFormatter creates a new table formatter. Paths are shown
// relative to workingDir when it is set.
func NewTableFormatter(styles *Styles, termWidth int, workingDir string) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:     styles,
		termWidth:  termWidth,
		workingDir: workingDir,
	}
}

// FormatTable formats runner results as a table with a totals row.
func (t *TableFormatter) FormatTable(result *runner.Result) string {
	if result == nil || len(result.Files) == 0 {
		return ""
	}

	rows := t.collectRows(result)
	fileWidth := t.fileColumnWidth(rows)

	var builder strings.Builder

	builder.WriteString(t.formatHeader(fileWidth))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(fileWidth, heavySeparator))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatRow(row, fileWidth))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(fileWidth, lightSeparator))
	builder.WriteString("\n")
	builder.WriteString(t.formatRow(TableRow{
		File:     "TOTAL",
		Spans:    result.Stats.Spans,
		Matches:  result.Stats.Matches,
		Tokens:   result.Stats.Tokens,
		Duration: result.Stats.Duration,
	}, fileWidth))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(fileWidth, heavySeparator))
	builder.WriteString("\n")

	return builder.String()
}

func (t *TableFormatter) collectRows(result *runner.Result) []TableRow {
	rows := make([]TableRow, 0, len(result.Files))
	for _, file := range result.Files {
		rows = append(rows, TableRow{
			File:     t.displayPath(file.Path),
			Spans:    len(file.Matches),
			Matches:  file.MatchCount,
			Tokens:   file.Stats.TokensIn,
			Duration: file.Duration,
			Failed:   file.Error != nil,
		})
	}
	return rows
}

func (t *TableFormatter) displayPath(path string) string {
	if t.workingDir == "" || !filepath.IsAbs(path) {
		return path
	}
	if rel, err := filepath.Rel(t.workingDir, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return path
}

// fileColumnWidth fits the longest path, constrained to the terminal.
func (t *TableFormatter) fileColumnWidth(rows []TableRow) int {
	width := minFileWidth
	for _, row := range rows {
		width = max(width, DisplayWidth(row.File))
	}

	available := t.termWidth - numColumnCount*(numColumnWidth+tablePadding) - tablePadding
	return max(minFileWidth, min(width, available))
}

func (t *TableFormatter) formatHeader(fileWidth int) string {
	header := " " + PadRight("FILE", fileWidth) +
		PadLeft("SPANS", numColumnWidth+tablePadding) +
		PadLeft("MATCHES", numColumnWidth+tablePadding) +
		PadLeft("TOKENS", numColumnWidth+tablePadding) +
		PadLeft("TIME", numColumnWidth+tablePadding)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(fileWidth int, char string) string {
	total := 1 + fileWidth + numColumnCount*(numColumnWidth+tablePadding)
	return t.styles.TableSeparator.Render(strings.Repeat(char, total))
}

func (t *TableFormatter) formatRow(row TableRow, fileWidth int) string {
	content := " " + PadRight(TruncateLeft(row.File, fileWidth), fileWidth) +
		PadLeft(strconv.Itoa(row.Spans), numColumnWidth+tablePadding) +
		PadLeft(strconv.Itoa(row.Matches), numColumnWidth+tablePadding) +
		PadLeft(strconv.Itoa(row.Tokens), numColumnWidth+tablePadding) +
		PadLeft(formatDuration(row.Duration), numColumnWidth+tablePadding)

	switch {
	case row.Failed:
		return t.styles.TableErrorRow.Render(content)
	case row.Spans > 0:
		return t.styles.TableMatchRow.Render(content)
	default:
		return content
	}
}

func formatDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return "-"
	case d < time.Millisecond:
		return strconv.FormatInt(d.Microseconds(), 10) + "µs"
	case d < time.Second:
		return strconv.FormatInt(d.Milliseconds(), 10) + "ms"
	default:
		return strconv.FormatFloat(d.Seconds(), 'f', 1, 64) + "s"
	}
}
