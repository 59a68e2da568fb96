package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/searchlight/pkg/runner"
)

// writeTree creates files under dir with the given contents.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func relPaths(t *testing.T, dir string, files []string) []string {
	t.Helper()
	rel := make([]string, len(files))
	for i, f := range files {
		r, err := filepath.Rel(dir, f)
		require.NoError(t, err)
		rel[i] = filepath.ToSlash(r)
	}
	return rel
}

func TestDiscover_Directory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"index.html":        "<p>x</p>",
		"docs/guide.md":     "# x",
		"docs/api.markdown": "# x",
		"notes.txt":         "x",
		"src/main.go":       "package main",
		"image.png":         "",
	})

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"docs/api.markdown",
		"docs/guide.md",
		"index.html",
		"notes.txt",
	}, relPaths(t, dir, files))
}

func TestDiscover_ExplicitFileIgnoresExtension(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"main.go": "package main"})

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Paths:      []string{"main.go"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "main.go")}, files)
}

func TestDiscover_CustomExtensions(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a.HTML": "",
		"b.md":   "",
		"c.tmpl": "",
	})

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Extensions: []string{".html", ".tmpl"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.HTML", "c.tmpl"}, relPaths(t, dir, files))
}

func TestDiscover_Ignore(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"keep.md":              "",
		"draft.md":             "",
		"vendor/lib/readme.md": "",
		"docs/a/changelog.md":  "",
		"docs/b/guide.md":      "",
	})

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Ignore:     []string{"draft.md", "vendor", "**/changelog.md"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"docs/b/guide.md", "keep.md"}, relPaths(t, dir, files))
}

func TestDiscover_InvalidIgnorePattern(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: t.TempDir(),
		Ignore:     []string{"[unclosed"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid ignore pattern")
}

func TestDiscover_SkipsHiddenEntries(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"visible.md":      "",
		".hidden.md":      "",
		".git/config.md":  "",
		"docs/.secret.md": "",
	})

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{"visible.md"}, relPaths(t, dir, files))
}

func TestDiscover_DeduplicatesOverlappingPaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"docs/a.md": "", "docs/b.md": ""})

	files, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: dir,
		Paths:      []string{"docs", "docs/a.md", "."},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"docs/a.md", "docs/b.md"}, relPaths(t, dir, files))
}

func TestDiscover_NonExistentPath(t *testing.T) {
	t.Parallel()

	_, err := runner.Discover(context.Background(), runner.Options{
		WorkingDir: t.TempDir(),
		Paths:      []string{"missing"},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDiscover_ContextCancellation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.md": ""})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Discover(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_Symlinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	outside := t.TempDir()
	writeTree(t, dir, map[string]string{"docs/a.md": ""})
	writeTree(t, outside, map[string]string{"shared/b.md": "", "c.md": ""})

	if err := os.Symlink(filepath.Join(outside, "shared"), filepath.Join(dir, "shared")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	require.NoError(t, os.Symlink(filepath.Join(outside, "c.md"), filepath.Join(dir, "c.md")))
	require.NoError(t, os.Symlink(filepath.Join(dir, "nowhere.md"), filepath.Join(dir, "broken.md")))

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Equal(t, []string{"c.md", "docs/a.md"}, relPaths(t, dir, files))

	files, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	require.NoError(t, err)
	resolved, err := filepath.EvalSymlinks(outside)
	require.NoError(t, err)
	assert.Len(t, files, 3)
	assert.Contains(t, files, filepath.Join(resolved, "shared", "b.md"))
}
