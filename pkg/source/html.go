// Package source adapts real document formats to token.Source streams.
//
// Every adapter preserves the input bytes: concatenating the tokens it
// yields reproduces what it read.
package source

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"

	"github.com/yaklabco/searchlight/pkg/token"
)

// Source is a token.Source that can fail while reading.
type Source interface {
	token.Source

	// Err returns the first read error other than io.EOF. It is meaningful
	// once HasMore has returned false.
	Err() error
}

// Compile-time interface check.
var _ Source = (*HTML)(nil)

// HTML streams tokens from an HTML tokenizer. Text is split so that
// character references become their own unsearchable tokens, and the
// content of script, style and similar elements is never searched.
type HTML struct {
	z       *html.Tokenizer
	offset  int
	pending []token.Token
	rawText bool
	done    bool
	err     error
}

// NewHTML returns a source reading HTML from r.
func NewHTML(r io.Reader) *HTML {
	return &HTML{z: html.NewTokenizer(r)}
}

// NewHTMLCharset converts r to UTF-8 using the encoding named by
// contentType, a sniffed <meta> element or a byte order mark, and returns
// a source over the result. Offsets refer to the converted stream.
func NewHTMLCharset(r io.Reader, contentType string) (*HTML, error) {
	utf8Reader, err := charset.NewReader(r, contentType)
	if err != nil {
		return nil, fmt.Errorf("detect charset: %w", err)
	}
	return NewHTML(utf8Reader), nil
}

// HasMore implements token.Source.
func (h *HTML) HasMore() bool {
	for len(h.pending) == 0 && !h.done {
		h.advance()
	}
	return len(h.pending) > 0
}

// Next implements token.Source.
func (h *HTML) Next() token.Token {
	if !h.HasMore() {
		return token.Token{}
	}
	tok := h.pending[0]
	h.pending = h.pending[1:]
	return tok
}

// Err implements Source.
func (h *HTML) Err() error {
	return h.err
}

func (h *HTML) advance() {
	tt := h.z.Next()
	if tt == html.ErrorToken {
		if err := h.z.Err(); !errors.Is(err, io.EOF) {
			h.err = fmt.Errorf("tokenize html: %w", err)
		}
		h.done = true
		return
	}

	// Raw is only valid until the next call to Next, so copy it now.
	raw := string(h.z.Raw())
	offset := h.offset
	h.offset += len(raw)

	switch tt {
	case html.TextToken:
		if h.rawText {
			h.pending = append(h.pending, token.Tag(raw, offset))
			return
		}
		h.pending = splitReferences(h.pending, raw, offset)
	case html.StartTagToken:
		h.rawText = isRawTextElement(token.TagName(raw))
		h.pending = append(h.pending, token.Tag(raw, offset))
	case html.EndTagToken:
		h.rawText = false
		h.pending = append(h.pending, token.Tag(raw, offset))
	default:
		h.pending = append(h.pending, token.Tag(raw, offset))
	}
}

// isRawTextElement reports elements whose content the tokenizer returns
// unparsed. Rewriting inside them would corrupt scripts and styles.
func isRawTextElement(name string) bool {
	switch name {
	case "script", "style", "textarea", "title", "xmp", "iframe", "noembed", "noframes", "noscript", "plaintext":
		return true
	default:
		return false
	}
}
