package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting uncommented, with its default value.
	// If false, generates a minimal commented template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string

	// PrimaryTerms pre-fills search.primary_terms.
	PrimaryTerms []string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON(opts)
	}
	if opts.Full {
		return generateFullTemplate(opts)
	}
	return generateMinimalTemplate(opts), nil
}

// generateMinimalTemplate creates a minimal commented template.
func generateMinimalTemplate(opts TemplateOptions) []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString("\n\nsearch:\n")
	writeTerms(&buf, opts.PrimaryTerms)
	buf.WriteString(`  # primary_case_sensitive: false
  # secondary_terms: []
  # secondary_case_sensitive: false

# Highlight markup: <font color="..."> with optional <b>
highlight:
  color: red
  # bold: false

# Markdown flavor: commonmark or gfm
markdown_flavor: commonmark

# Inline elements that do not interrupt a match (default: b, i, em, span, ...)
# transparent_tags: [b, i, em, strong, span]

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"
#   - "node_modules/**"
`)

	return buf.Bytes()
}

func writeTerms(buf *bytes.Buffer, terms []string) {
	if len(terms) == 0 {
		buf.WriteString("  # Phrases to highlight; matches are counted\n")
		buf.WriteString("  primary_terms: []\n")
		return
	}
	buf.WriteString("  primary_terms:\n")
	for _, term := range terms {
		quoted, _ := yaml.Marshal(term)
		fmt.Fprintf(buf, "    - %s\n", strings.TrimSpace(string(quoted)))
	}
}

// generateFullTemplate writes every persisted setting with its default.
func generateFullTemplate(opts TemplateOptions) ([]byte, error) {
	cfg := templateConfig(opts)
	return cfg.ToYAMLWithHeader(DefaultTemplateHeader() + "\n#\n# Every setting is listed with its default value.")
}

// templateToJSON renders the full template as JSON.
func templateToJSON(opts TemplateOptions) ([]byte, error) {
	cfg := templateConfig(opts)

	doc := map[string]any{
		"search": map[string]any{
			"primary_terms":            nonNil(cfg.Search.PrimaryTerms),
			"primary_case_sensitive":   cfg.PrimaryCaseSensitive(),
			"secondary_terms":          nonNil(cfg.Search.SecondaryTerms),
			"secondary_case_sensitive": cfg.SecondaryCaseSensitive(),
		},
		"highlight": map[string]any{
			"color": cfg.Highlight.Color,
			"bold":  cfg.Bold(),
		},
		"transparent_tags": nonNil(cfg.TransparentTags),
		"markdown_flavor":  cfg.MarkdownFlavor,
		"extensions":       nonNil(cfg.Extensions),
		"ignore":           nonNil(cfg.Ignore),
	}

	jsonBytes, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return jsonBytes, nil
}

func templateConfig(opts TemplateOptions) *Config {
	cfg := NewConfig()
	cfg.Search.PrimaryTerms = opts.PrimaryTerms
	cfg.Search.PrimaryCaseSensitive = Bool(false)
	cfg.Search.SecondaryCaseSensitive = Bool(false)
	cfg.Highlight.Bold = Bool(false)
	cfg.Ignore = []string{"vendor/**", "node_modules/**", ".git/**"}
	return cfg
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# searchlight configuration
# See: https://github.com/yaklabco/searchlight`
}
