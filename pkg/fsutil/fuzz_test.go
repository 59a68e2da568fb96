package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/searchlight/pkg/fsutil"
)

func FuzzWriteAtomic(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("<p>hello</p>"))
	f.Add([]byte("hello\nworld\n"))
	f.Add([]byte("\x00\x01\x02\x03"))
	f.Add(make([]byte, 1024))

	f.Fuzz(func(t *testing.T, content []byte) {
		path := filepath.Join(t.TempDir(), "out.html")

		ctx := context.Background()
		if err := fsutil.WriteAtomic(ctx, path, content, 0o644); err != nil {
			t.Fatalf("WriteAtomic failed: %v", err)
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}
		if string(got) != string(content) {
			t.Fatalf("content mismatch: got %d bytes, want %d", len(got), len(content))
		}

		fp, err := fsutil.TakeFingerprint(ctx, path)
		if err != nil {
			t.Fatalf("TakeFingerprint failed: %v", err)
		}
		changed, err := fsutil.Changed(ctx, fp)
		if err != nil {
			t.Fatalf("Changed failed: %v", err)
		}
		if changed {
			t.Fatal("freshly fingerprinted file reported as changed")
		}
	})
}
