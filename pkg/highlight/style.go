package highlight

import (
	"strconv"

	"github.com/yaklabco/searchlight/pkg/token"
)

// DefaultColor is the highlight color used when none is configured.
const DefaultColor = "red"

// Style controls the markup wrapped around matched text.
type Style struct {
	// Color is the value of the font color attribute.
	Color string

	// Bold adds a <b> element inside the font element.
	Bold bool
}

// DefaultStyle returns the red, non-bold style.
func DefaultStyle() Style {
	return Style{Color: DefaultColor}
}

func (s Style) color() string {
	if s.Color == "" {
		return DefaultColor
	}
	return s.Color
}

// OpenMarkup returns the raw tags that start a highlighted span.
func (s Style) OpenMarkup() []string {
	tags := []string{"<font color=" + strconv.Quote(s.color()) + ">"}
	if s.Bold {
		tags = append(tags, "<b>")
	}
	return tags
}

// CloseMarkup returns the raw tags that end a highlighted span.
func (s Style) CloseMarkup() []string {
	if s.Bold {
		return []string{"</b>", "</font>"}
	}
	return []string{"</font>"}
}

func (s Style) openTokens(offset int) []token.Token {
	return markupTokens(s.OpenMarkup(), offset)
}

func (s Style) closeTokens(offset int) []token.Token {
	return markupTokens(s.CloseMarkup(), offset)
}

func markupTokens(raw []string, offset int) []token.Token {
	tokens := make([]token.Token, len(raw))
	for i, tag := range raw {
		tokens[i] = token.Tag(tag, offset)
	}
	return tokens
}
