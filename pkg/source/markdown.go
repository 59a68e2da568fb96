package source

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/yaklabco/searchlight/pkg/config"
)

// RenderMarkdown converts Markdown to HTML using the given flavor.
// Unknown flavors render as CommonMark.
func RenderMarkdown(content []byte, flavor config.Flavor) ([]byte, error) {
	var buf bytes.Buffer
	if err := newGoldmarkInstance(flavor).Convert(content, &buf); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}
	return buf.Bytes(), nil
}

// NewMarkdown renders content to HTML and returns a source over the result.
// Offsets refer to the rendered HTML, not to the Markdown input.
func NewMarkdown(content []byte, flavor config.Flavor) (*HTML, error) {
	rendered, err := RenderMarkdown(content, flavor)
	if err != nil {
		return nil, err
	}
	return NewHTML(bytes.NewReader(rendered)), nil
}

// newGoldmarkInstance creates a configured goldmark.Markdown instance.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor config.Flavor) goldmark.Markdown {
	var opts []goldmark.Option

	if flavor == config.FlavorGFM {
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	}

	return goldmark.New(opts...)
}
