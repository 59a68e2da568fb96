package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/searchlight/pkg/fsutil"
)

func TestOutputPath(t *testing.T) {
	t.Parallel()

	work := filepath.FromSlash("/work")
	out := filepath.FromSlash("/out")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "relative input", input: "docs/a.md", want: "/out/docs/a.md"},
		{name: "absolute input inside working dir", input: "/work/b.html", want: "/out/b.html"},
		{name: "input outside working dir", input: "/elsewhere/c.txt", want: "/out/c.txt"},
		{name: "stdin", input: "-", want: "/out/stdin.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := fsutil.OutputPath(out, work, filepath.FromSlash(tt.input))
			require.NoError(t, err)
			assert.Equal(t, filepath.FromSlash(tt.want), got)
		})
	}
}

func TestWriteOutput(t *testing.T) {
	t.Parallel()

	work := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "highlighted")
	input := filepath.Join(work, "docs", "a.html")
	require.NoError(t, os.MkdirAll(filepath.Dir(input), 0o755))
	require.NoError(t, os.WriteFile(input, []byte("<p>cat</p>"), 0o640))

	ctx := context.Background()
	content := []byte(`<p><font color="red">cat</font></p>`)

	path, written, err := fsutil.WriteOutput(ctx, outDir, work, input, content)
	require.NoError(t, err)
	assert.True(t, written)
	assert.Equal(t, filepath.Join(outDir, "docs", "a.html"), path)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	_, written, err = fsutil.WriteOutput(ctx, outDir, work, input, content)
	require.NoError(t, err)
	assert.False(t, written, "unchanged output is not rewritten")
}
