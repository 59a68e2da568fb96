package reporter

import (
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/term"
)

// defaultTermWidth is used when terminal width cannot be determined.
const defaultTermWidth = 100

// terminalWidth returns the configured width, the width of the terminal
// behind w, or defaultTermWidth.
func terminalWidth(configured int, w io.Writer) int {
	if configured > 0 {
		return configured
	}
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}

// displayPath shortens path relative to workingDir when it lies beneath it.
func displayPath(path, workingDir string) string {
	if workingDir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(workingDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
