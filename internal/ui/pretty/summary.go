package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/searchlight/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "7 matches in 3 files (12 files searched)".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	searched := s.Dim.Render(fmt.Sprintf(" (%d %s searched)",
		stats.FilesProcessed, plural(stats.FilesProcessed, wordFile, wordFiles)))

	var msg string
	if stats.Spans == 0 {
		msg = s.Success.Render("No matches found") + searched
	} else {
		msg = fmt.Sprintf("%s in %d %s",
			s.Bold.Render(fmt.Sprintf("%d %s", stats.Spans, plural(stats.Spans, "match", "matches"))),
			stats.FilesWithMatches, plural(stats.FilesWithMatches, wordFile, wordFiles)) + searched
	}

	if stats.FilesErrored > 0 {
		msg += ", " + s.Error.Render(fmt.Sprintf("%d %s failed",
			stats.FilesErrored, plural(stats.FilesErrored, wordFile, wordFiles)))
	}
	return msg + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files searched:     " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesProcessed)) + "\n")

	if stats.FilesWithMatches > 0 {
		builder.WriteString("  Files with matches: " +
			s.SummaryValue.Render(strconv.Itoa(stats.FilesWithMatches)) + "\n")
	}
	if stats.FilesErrored > 0 {
		builder.WriteString("  Files failed:       " +
			s.Failure.Render(strconv.Itoa(stats.FilesErrored)) + "\n")
	}

	builder.WriteString("\n")

	builder.WriteString("  Highlighted spans:  " +
		s.SummaryValue.Render(strconv.Itoa(stats.Spans)) + "\n")
	builder.WriteString("  Primary matches:    " +
		s.SummaryValue.Render(strconv.Itoa(stats.Matches)) + "\n")
	builder.WriteString("  Tokens read:        " +
		s.SummaryValue.Render(strconv.Itoa(stats.Tokens)) + "\n")
	if stats.ForcedFlushes > 0 {
		builder.WriteString("  Forced flushes:     " +
			s.Warning.Render(strconv.Itoa(stats.ForcedFlushes)) + "\n")
	}

	builder.WriteString("\n")

	switch {
	case stats.FilesErrored > 0:
		builder.WriteString(s.Failure.Render("Search finished with errors"))
	case stats.Spans > 0:
		builder.WriteString(s.Success.Render("Search finished with matches"))
	default:
		builder.WriteString(s.Dim.Render("Search finished without matches"))
	}
	builder.WriteString("\n")

	return builder.String()
}

// FormatFileHeader formats the heading printed above a file's matches.
func (s *Styles) FormatFileHeader(path string, matches int) string {
	return s.FilePath.Render(path) + " " +
		s.Dim.Render(fmt.Sprintf("(%d %s)", matches, plural(matches, "match", "matches")))
}
