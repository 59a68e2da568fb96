package fsutil

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultDirMode is the permission mode for created output directories.
const DefaultDirMode os.FileMode = 0o755

// StdinOutputName is the file name used for output read from standard input.
const StdinOutputName = "stdin.html"

// ErrOutsideOutputDir is returned when an output path would escape the
// output directory.
var ErrOutsideOutputDir = errors.New("path escapes output directory")

// OutputPath maps inputPath to its mirror under outputDir. Inputs inside
// workingDir keep their relative layout; other inputs are placed by base
// name. "-" maps to StdinOutputName.
func OutputPath(outputDir, workingDir, inputPath string) (string, error) {
	if inputPath == "-" {
		return filepath.Join(outputDir, StdinOutputName), nil
	}

	rel := filepath.Base(inputPath)
	if workingDir != "" {
		abs := inputPath
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(workingDir, abs)
		}
		if r, err := filepath.Rel(workingDir, abs); err == nil && !escapes(r) {
			rel = r
		}
	}

	out := filepath.Join(outputDir, rel)
	if r, err := filepath.Rel(outputDir, out); err != nil || escapes(r) {
		return "", fmt.Errorf("%w: %s", ErrOutsideOutputDir, inputPath)
	}
	return out, nil
}

func escapes(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// WriteOutput writes content to the mirror of inputPath under outputDir,
// creating directories as needed. The input's permission bits are kept
// when it can be stat'ed. It returns the path written and whether the
// file changed.
func WriteOutput(ctx context.Context, outputDir, workingDir, inputPath string, content []byte) (string, bool, error) {
	out, err := OutputPath(outputDir, workingDir, inputPath)
	if err != nil {
		return "", false, err
	}

	if err := os.MkdirAll(filepath.Dir(out), DefaultDirMode); err != nil {
		return "", false, fmt.Errorf("create output directory: %w", err)
	}

	var mode os.FileMode
	if inputPath != "-" {
		if stat, err := os.Stat(inputPath); err == nil {
			mode = stat.Mode().Perm()
		}
	}

	written, err := WriteAtomicIfChanged(ctx, out, content, mode)
	if err != nil {
		return "", false, fmt.Errorf("write %s: %w", out, err)
	}
	return out, written, nil
}
