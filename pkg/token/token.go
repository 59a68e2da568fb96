// Package token defines the unit of a markup stream and the pull-based
// source contract consumed by the highlighter.
package token

import (
	"io"
	"strings"
)

// Kind classifies a token in the stream.
type Kind uint8

const (
	// KindText is a run of plain text.
	KindText Kind = iota

	// KindTag is markup that is never searched: tags, comments, doctype
	// declarations, character references and raw text element content.
	KindTag
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindTag:
		return "tag"
	default:
		return "unknown"
	}
}

// Token is either a text run or a tag, tagged with the absolute byte offset
// where it begins in the logical stream.
type Token struct {
	// Kind classifies what this token represents.
	Kind Kind

	// Text is the raw content of the token. For tags this includes the
	// angle brackets.
	Text string

	// Offset is the byte index where this token begins (inclusive).
	Offset int
}

// Text returns a text token.
func Text(text string, offset int) Token {
	return Token{Kind: KindText, Text: text, Offset: offset}
}

// Tag returns a tag token.
func Tag(text string, offset int) Token {
	return Token{Kind: KindTag, Text: text, Offset: offset}
}

// IsTag reports whether the token is a tag.
func (t Token) IsTag() bool {
	return t.Kind == KindTag
}

// Len returns the length of this token in bytes.
func (t Token) Len() int {
	return len(t.Text)
}

// End returns the byte index where this token ends (exclusive).
func (t Token) End() int {
	return t.Offset + len(t.Text)
}

// IsEmpty returns true if this token has zero length.
func (t Token) IsEmpty() bool {
	return len(t.Text) == 0
}

// Source supplies tokens on demand. A source is lazy, finite and cannot be
// restarted; Next must only be called after HasMore returned true.
type Source interface {
	// HasMore reports whether another token is available.
	HasMore() bool

	// Next returns the next token in the stream.
	Next() Token
}

// SliceSource serves tokens from memory.
type SliceSource struct {
	tokens []Token
	pos    int
}

// NewSliceSource returns a source over tokens, in order.
func NewSliceSource(tokens ...Token) *SliceSource {
	return &SliceSource{tokens: tokens}
}

// FromStrings builds a source from alternating raw pieces, assigning
// contiguous offsets. Pieces that start with '<' become tags.
func FromStrings(pieces ...string) *SliceSource {
	tokens := make([]Token, 0, len(pieces))
	offset := 0
	for _, piece := range pieces {
		if strings.HasPrefix(piece, "<") {
			tokens = append(tokens, Tag(piece, offset))
		} else {
			tokens = append(tokens, Text(piece, offset))
		}
		offset += len(piece)
	}
	return NewSliceSource(tokens...)
}

// HasMore implements Source.
func (s *SliceSource) HasMore() bool {
	return s.pos < len(s.tokens)
}

// Next implements Source.
func (s *SliceSource) Next() Token {
	if s.pos >= len(s.tokens) {
		return Token{}
	}
	tok := s.tokens[s.pos]
	s.pos++
	return tok
}

// Collect drains src into a slice.
func Collect(src Source) []Token {
	var tokens []Token
	for src.HasMore() {
		tokens = append(tokens, src.Next())
	}
	return tokens
}

// Concat returns the concatenated raw text of tokens.
func Concat(tokens []Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		sb.WriteString(tok.Text)
	}
	return sb.String()
}

// Copy drains src into w and returns the number of bytes written.
func Copy(w io.Writer, src Source) (int64, error) {
	var written int64
	for src.HasMore() {
		tok := src.Next()
		n, err := io.WriteString(w, tok.Text)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}
