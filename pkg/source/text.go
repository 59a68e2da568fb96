package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/yaklabco/searchlight/pkg/token"
)

// Compile-time interface check.
var _ Source = (*Text)(nil)

// Text streams plain text as one token per line, newline included.
type Text struct {
	r      *bufio.Reader
	offset int
	next   token.Token
	ready  bool
	done   bool
	err    error
}

// NewText returns a source reading plain text from r.
func NewText(r io.Reader) *Text {
	return &Text{r: bufio.NewReader(r)}
}

// HasMore implements token.Source.
func (t *Text) HasMore() bool {
	if t.ready {
		return true
	}
	if t.done {
		return false
	}

	line, err := t.r.ReadString('\n')
	if err != nil {
		t.done = true
		if !errors.Is(err, io.EOF) {
			t.err = fmt.Errorf("read text: %w", err)
		}
	}
	if line == "" {
		return false
	}

	t.next = token.Text(line, t.offset)
	t.offset += len(line)
	t.ready = true
	return true
}

// Next implements token.Source.
func (t *Text) Next() token.Token {
	if !t.HasMore() {
		return token.Token{}
	}
	t.ready = false
	return t.next
}

// Err implements Source.
func (t *Text) Err() error {
	return t.err
}
