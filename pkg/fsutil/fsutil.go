// Package fsutil provides file system helpers for writing highlighted
// output: atomic writes, output directory mirroring, and content
// fingerprints for change detection.
package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"time"
)

// Sentinel errors for error categorization via errors.Is.
var (
	// ErrNilFingerprint is returned when a nil Fingerprint is passed.
	ErrNilFingerprint = errors.New("nil fingerprint")

	// ErrNotFound indicates the file does not exist.
	ErrNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrIsDirectory indicates the path is a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")
)

// Fingerprint captures the state of a file at a point in time.
type Fingerprint struct {
	Path    string
	ModTime time.Time
	Size    int64
	Hash    [sha256.Size]byte
}

// TakeFingerprint reads path and records its state.
func TakeFingerprint(ctx context.Context, path string) (*Fingerprint, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("fingerprint: %w", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, classify(path, err)
	}
	if stat.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, classify(path, err)
	}

	return &Fingerprint{
		Path:    path,
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
		Hash:    sha256.Sum256(content),
	}, nil
}

func classify(path string, err error) error {
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case os.IsPermission(err):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("stat %s: %w", path, err)
	}
}

// Changed reports whether the file differs from fp. A size or time change
// is confirmed by hashing, so touching a file without editing it does not
// count. A deleted file has changed.
func Changed(ctx context.Context, fp *Fingerprint) (bool, error) {
	if fp == nil {
		return false, ErrNilFingerprint
	}
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("check changed: %w", err)
	}

	stat, err := os.Stat(fp.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return true, nil
		}
		return false, fmt.Errorf("stat %s: %w", fp.Path, err)
	}

	if stat.ModTime().Equal(fp.ModTime) && stat.Size() == fp.Size {
		return false, nil
	}
	if stat.Size() != fp.Size {
		return true, nil
	}

	content, err := os.ReadFile(fp.Path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", fp.Path, err)
	}
	return sha256.Sum256(content) != fp.Hash, nil
}
