// Package watch reports batches of changed files under watched paths.
//
// Directories are watched recursively; new subdirectories are picked up
// as they appear. Editors often write a file several times per save, so
// events are collected until the tree has been quiet for the debounce
// interval, and files whose content did not change are dropped.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/searchlight/pkg/config"
	"github.com/yaklabco/searchlight/pkg/fsutil"
)

// DefaultDebounce is the quiet period that ends a batch.
const DefaultDebounce = 100 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	// Extensions selects files inside watched directories. Defaults to
	// config.DefaultExtensions. Files added explicitly always match.
	Extensions []string

	// Debounce is the quiet period that ends a batch. Defaults to
	// DefaultDebounce.
	Debounce time.Duration

	// Logger receives debug events. Nil is silent.
	Logger *log.Logger
}

// Watcher watches files and directories for content changes.
type Watcher struct {
	fw   *fsnotify.Watcher
	opts Options

	mu       sync.Mutex
	roots    []string
	explicit map[string]bool
	prints   map[string]*fsutil.Fingerprint
	closed   bool
}

// New creates a Watcher. Call Close to release it.
func New(opts Options) (*Watcher, error) {
	if len(opts.Extensions) == 0 {
		opts.Extensions = config.DefaultExtensions()
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	return &Watcher{
		fw:       fw,
		opts:     opts,
		explicit: make(map[string]bool),
		prints:   make(map[string]*fsutil.Fingerprint),
	}, nil
}

// Add starts watching paths. Directories are watched recursively, skipping
// hidden ones; a file is watched through its parent directory.
func (w *Watcher) Add(paths ...string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", p, err)
		}

		info, err := os.Stat(abs)
		if err != nil {
			return fmt.Errorf("stat %s: %w", p, err)
		}

		if !info.IsDir() {
			w.explicit[abs] = true
			if err := w.fw.Add(filepath.Dir(abs)); err != nil {
				return fmt.Errorf("watch %s: %w", p, err)
			}
			continue
		}

		w.roots = append(w.roots, abs)
		if err := w.addTree(abs); err != nil {
			return err
		}
	}
	return nil
}

// addTree registers root and every non-hidden directory beneath it.
func (w *Watcher) addTree(root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // inaccessible paths are skipped
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && hidden(entry.Name()) {
			return filepath.SkipDir
		}
		return w.fw.Add(path)
	})
	if err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	return nil
}

// Run delivers batches of changed files, sorted, to onChange until ctx is
// cancelled or the watcher is closed. onChange runs on the Run goroutine;
// events arriving meanwhile start the next batch.
func (w *Watcher) Run(ctx context.Context, onChange func(ctx context.Context, paths []string)) error {
	pending := make(map[string]struct{})

	timer := time.NewTimer(w.opts.Debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fw.Events:
			if !ok {
				return nil
			}
			if w.handle(event) {
				pending[event.Name] = struct{}{}
				timer.Reset(w.opts.Debounce)
			}

		case err, ok := <-w.fw.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) && w.opts.Logger != nil {
				w.opts.Logger.Warn("file events were dropped", "error", err)
			} else if w.opts.Logger != nil {
				w.opts.Logger.Debug("watch error", "error", err)
			}

		case <-timer.C:
			batch := w.changed(ctx, pending)
			clear(pending)
			if len(batch) > 0 {
				onChange(ctx, batch)
			}
		}
	}
}

// handle registers new directories and reports whether the event names a
// file worth re-checking.
func (w *Watcher) handle(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if w.underRoot(event.Name) && !hidden(filepath.Base(event.Name)) {
				if err := w.addTree(event.Name); err != nil && w.opts.Logger != nil {
					w.opts.Logger.Debug("watch new directory", "path", event.Name, "error", err)
				}
			}
			return false
		}
	}

	return w.relevant(event.Name)
}

// relevant reports whether path was added explicitly or is a visible file
// with a selected extension inside a watched directory.
func (w *Watcher) relevant(path string) bool {
	if w.explicit[path] {
		return true
	}
	if !w.underRoot(path) {
		return false
	}

	for _, part := range strings.Split(filepath.ToSlash(w.relToRoot(path)), "/") {
		if hidden(part) {
			return false
		}
	}

	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range w.opts.Extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

func (w *Watcher) underRoot(path string) bool {
	return w.relToRoot(path) != ""
}

// relToRoot returns path relative to the first root containing it, or ""
// when no root does.
func (w *Watcher) relToRoot(path string) string {
	for _, root := range w.roots {
		rel, err := filepath.Rel(root, path)
		if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return rel
		}
	}
	return ""
}

// changed filters pending down to files whose content differs from the
// last time they were seen, updating the fingerprints.
func (w *Watcher) changed(ctx context.Context, pending map[string]struct{}) []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	batch := make([]string, 0, len(pending))
	for path := range pending {
		if fp, ok := w.prints[path]; ok {
			if diff, err := fsutil.Changed(ctx, fp); err == nil && !diff {
				continue
			}
		}

		fp, err := fsutil.TakeFingerprint(ctx, path)
		if err != nil {
			delete(w.prints, path)
			if w.opts.Logger != nil {
				w.opts.Logger.Debug("skipping vanished file", "path", path, "error", err)
			}
			continue
		}
		w.prints[path] = fp
		batch = append(batch, path)
	}

	slices.Sort(batch)
	return batch
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true
	if err := w.fw.Close(); err != nil {
		return fmt.Errorf("close watcher: %w", err)
	}
	return nil
}

func hidden(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}
