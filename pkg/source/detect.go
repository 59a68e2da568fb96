package source

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/yaklabco/searchlight/pkg/config"
)

// DetectInputType maps a file extension to an input type. Unknown
// extensions are treated as plain text.
func DetectInputType(path string) config.InputType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".xhtml", ".shtml":
		return config.InputHTML
	case ".md", ".markdown", ".mdown", ".mkd":
		return config.InputMarkdown
	default:
		return config.InputText
	}
}

// Options selects how ForPath tokenizes its input.
type Options struct {
	// InputType overrides extension detection when not empty.
	InputType config.InputType

	// Flavor is the Markdown flavor.
	Flavor config.Flavor

	// ContentType is a MIME type whose charset parameter, if any, names the
	// HTML encoding. Empty assumes sniffing.
	ContentType string
}

// ForPath returns a source for r, choosing the tokenizer from opts or from
// the extension of path.
//
//nolint:ireturn // Source is the abstraction callers need.
func ForPath(path string, r io.Reader, opts Options) (Source, error) {
	inputType := opts.InputType
	if inputType == config.InputAuto {
		inputType = DetectInputType(path)
	}

	switch inputType {
	case config.InputHTML:
		contentType := opts.ContentType
		if contentType == "" {
			contentType = "text/html"
		}
		return NewHTMLCharset(r, contentType)
	case config.InputMarkdown:
		content, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read markdown: %w", err)
		}
		return NewMarkdown(content, opts.Flavor)
	case config.InputText:
		return NewText(r), nil
	default:
		return nil, fmt.Errorf("unsupported input type %q", inputType)
	}
}
