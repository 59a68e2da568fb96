package configloader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/searchlight/pkg/config"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(*config.Config)
		wantField string
	}{
		{"empty primary term", func(c *config.Config) { c.Search.PrimaryTerms = []string{"ok", "  "} }, "search.primary_terms[1]"},
		{"bad color", func(c *config.Config) { c.Highlight.Color = `red" onclick="x` }, "highlight.color"},
		{"short hex color", func(c *config.Config) { c.Highlight.Color = "#12" }, "highlight.color"},
		{"bad flavor", func(c *config.Config) { c.MarkdownFlavor = "asciidoc" }, "markdown_flavor"},
		{"bad format", func(c *config.Config) { c.Format = "sarif" }, "format"},
		{"bad input type", func(c *config.Config) { c.InputType = "pdf" }, "input_type"},
		{"negative jobs", func(c *config.Config) { c.Jobs = -1 }, "jobs"},
		{"bad tag name", func(c *config.Config) { c.TransparentTags = []string{"b", "<i>"} }, "transparent_tags[1]"},
		{"bad extension", func(c *config.Config) { c.Extensions = []string{"md"} }, "extensions[0]"},
		{"bad glob", func(c *config.Config) { c.Ignore = []string{"[unclosed"} }, "ignore[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.NewConfig()
			tt.mutate(cfg)

			result := Validate(cfg)
			require.False(t, result.Valid())
			assert.Equal(t, tt.wantField, result.Errors[0].Field)
		})
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Search.PrimaryTerms = []string{"lahey"}
	cfg.Highlight.Color = "#FFCC00"
	cfg.TransparentTags = []string{"b", "my-tag"}

	result := Validate(cfg)
	assert.True(t, result.Valid())
	assert.False(t, result.HasWarnings())
	assert.True(t, Validate(nil).Valid())
}

func TestValidate_DuplicateTermsWarn(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Search.SecondaryTerms = []string{"cat", "dog", "cat"}

	result := ValidateWithFile(cfg, "a.yml")
	require.True(t, result.Valid())
	require.True(t, result.HasWarnings())
	assert.Equal(t, "a.yml: search.secondary_terms[2]: duplicate of search.secondary_terms[0]", result.Warnings[0].Error())
	assert.Equal(t, []string{"warning: a.yml: search.secondary_terms[2]: duplicate of search.secondary_terms[0]"}, result.AllMessages())
}

func TestMergeAll(t *testing.T) {
	t.Parallel()

	base := config.NewConfig()
	base.Ignore = []string{"vendor/**"}

	override := &config.Config{
		Search:    config.SearchConfig{SecondaryTerms: []string{"x"}, SecondaryCaseSensitive: config.Bool(false)},
		Highlight: config.HighlightConfig{Bold: config.Bool(true)},
		Jobs:      2,
	}

	merged := MergeAll(base, override, nil)

	assert.Equal(t, []string{"vendor/**"}, merged.Ignore)
	assert.Equal(t, []string{"x"}, merged.Search.SecondaryTerms)
	require.NotNil(t, merged.Search.SecondaryCaseSensitive)
	assert.True(t, merged.Bold())
	assert.Equal(t, 2, merged.Jobs)
	assert.Equal(t, "red", merged.Highlight.Color)
	assert.Nil(t, MergeAll())

	merged.Ignore[0] = "changed"
	assert.Equal(t, "vendor/**", base.Ignore[0], "merge does not alias base slices")
}
