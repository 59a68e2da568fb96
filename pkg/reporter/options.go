package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/searchlight/pkg/config"
	"github.com/yaklabco/searchlight/pkg/highlight"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// ErrorWriter is the destination for per-file errors (typically os.Stderr).
	ErrorWriter io.Writer

	// Format specifies the output format.
	Format config.OutputFormat

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// Style is the highlight markup the documents were rewritten with. The
	// text reporter uses it to find highlighted spans.
	Style highlight.Style

	// ShowSummary appends aggregate statistics to text and list output.
	ShowSummary bool

	// Compact uses minified JSON.
	Compact bool

	// Width is the terminal width. 0 detects it from Writer.
	Width int

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
		Format:      config.FormatHTML,
		Color:       "auto",
		Style:       highlight.DefaultStyle(),
		ShowSummary: true,
	}
}
