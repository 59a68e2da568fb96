// Package config defines core configuration types for searchlight.
// These types are pure data structures with no dependency on how they are loaded.
package config

// OutputFormat specifies how highlight results are written.
type OutputFormat string

const (
	FormatHTML    OutputFormat = "html"
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatList    OutputFormat = "list"
	FormatSummary OutputFormat = "summary"
)

// IsValid returns true if the output format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatHTML, FormatText, FormatJSON, FormatList, FormatSummary:
		return true
	default:
		return false
	}
}

// Flavor specifies the Markdown flavor used when rendering Markdown input.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// IsValid returns true if the flavor is known.
func (f Flavor) IsValid() bool {
	return f == FlavorCommonMark || f == FlavorGFM
}

// InputType forces how input is tokenized regardless of file extension.
type InputType string

const (
	InputAuto     InputType = ""
	InputHTML     InputType = "html"
	InputMarkdown InputType = "markdown"
	InputText     InputType = "text"
)

// IsValid returns true if the input type is known.
func (t InputType) IsValid() bool {
	switch t {
	case InputAuto, InputHTML, InputMarkdown, InputText:
		return true
	default:
		return false
	}
}

// SearchConfig holds the two phrase sets.
type SearchConfig struct {
	// PrimaryTerms are the phrases whose matches are counted.
	PrimaryTerms []string `mapstructure:"primary_terms" yaml:"primary_terms,omitempty"`

	// PrimaryCaseSensitive disables case folding for primary terms.
	PrimaryCaseSensitive *bool `mapstructure:"primary_case_sensitive" yaml:"primary_case_sensitive,omitempty"`

	// SecondaryTerms are highlighted only when no primary terms are set.
	SecondaryTerms []string `mapstructure:"secondary_terms" yaml:"secondary_terms,omitempty"`

	// SecondaryCaseSensitive disables case folding for secondary terms.
	SecondaryCaseSensitive *bool `mapstructure:"secondary_case_sensitive" yaml:"secondary_case_sensitive,omitempty"`
}

// HighlightConfig controls the markup wrapped around matches.
type HighlightConfig struct {
	Color string `mapstructure:"color" yaml:"color,omitempty"`
	Bold  *bool  `mapstructure:"bold" yaml:"bold,omitempty"`
}

// Config is the root configuration structure for searchlight.
type Config struct {
	// Search holds the phrase sets.
	Search SearchConfig `mapstructure:"search" yaml:"search"`

	// Highlight controls the markup style.
	Highlight HighlightConfig `mapstructure:"highlight" yaml:"highlight"`

	// TransparentTags lists element names that do not interrupt a match.
	// Empty selects the built-in inline elements.
	TransparentTags []string `mapstructure:"transparent_tags" yaml:"transparent_tags,omitempty"`

	// MarkdownFlavor selects the Markdown dialect ("commonmark" or "gfm").
	MarkdownFlavor Flavor `mapstructure:"markdown_flavor" yaml:"markdown_flavor"`

	// Extensions lists the file extensions picked up when walking directories.
	Extensions []string `mapstructure:"extensions" yaml:"extensions,omitempty"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `mapstructure:"ignore" yaml:"ignore,omitempty"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `mapstructure:"-" yaml:"-"`

	// OutputDir receives rewritten files instead of standard output.
	OutputDir string `mapstructure:"-" yaml:"-"`

	// InputType overrides extension-based tokenizer selection.
	InputType InputType `mapstructure:"-" yaml:"-"`
}

// DefaultExtensions returns the file extensions searched by default.
func DefaultExtensions() []string {
	return []string{".html", ".htm", ".xhtml", ".md", ".markdown", ".txt"}
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Highlight: HighlightConfig{
			Color: "red",
		},
		MarkdownFlavor: FlavorCommonMark,
		Extensions:     DefaultExtensions(),
		Format:         FormatHTML,
		Jobs:           0, // 0 means use GOMAXPROCS
	}
}

// PrimaryCaseSensitive reports the effective primary case sensitivity.
func (c *Config) PrimaryCaseSensitive() bool {
	return boolValue(c.Search.PrimaryCaseSensitive)
}

// SecondaryCaseSensitive reports the effective secondary case sensitivity.
func (c *Config) SecondaryCaseSensitive() bool {
	return boolValue(c.Search.SecondaryCaseSensitive)
}

// Bold reports whether highlights are bold.
func (c *Config) Bold() bool {
	return boolValue(c.Highlight.Bold)
}

// HasTerms reports whether any phrase is configured.
func (c *Config) HasTerms() bool {
	return len(c.Search.PrimaryTerms) > 0 || len(c.Search.SecondaryTerms) > 0
}

func boolValue(b *bool) bool {
	return b != nil && *b
}

// Bool returns a pointer to b, for optional fields.
func Bool(b bool) *bool {
	return &b
}
