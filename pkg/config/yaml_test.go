package config_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/searchlight/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var c *config.Config
		clone := c.Clone()
		assert.Nil(t, clone)
	})

	t.Run("empty config", func(t *testing.T) {
		c := &config.Config{}
		clone := c.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, c, clone)
	})

	t.Run("deep copies term slices", func(t *testing.T) {
		original := &config.Config{
			Search: config.SearchConfig{
				PrimaryTerms:   []string{"lahey", "catalog"},
				SecondaryTerms: []string{"chris"},
			},
		}

		clone := original.Clone()
		require.NotNil(t, clone)
		assert.Equal(t, original.Search, clone.Search)

		clone.Search.PrimaryTerms[0] = "changed"
		clone.Search.SecondaryTerms[0] = "changed"
		assert.Equal(t, "lahey", original.Search.PrimaryTerms[0])
		assert.Equal(t, "chris", original.Search.SecondaryTerms[0])
	})

	t.Run("deep copies optional booleans", func(t *testing.T) {
		original := &config.Config{
			Search:    config.SearchConfig{PrimaryCaseSensitive: config.Bool(true)},
			Highlight: config.HighlightConfig{Bold: config.Bool(true)},
		}

		clone := original.Clone()
		*clone.Search.PrimaryCaseSensitive = false
		*clone.Highlight.Bold = false

		assert.True(t, original.PrimaryCaseSensitive())
		assert.True(t, original.Bold())
	})

	t.Run("preserves all fields", func(t *testing.T) {
		original := &config.Config{
			Highlight:       config.HighlightConfig{Color: "blue"},
			TransparentTags: []string{"b", "i"},
			MarkdownFlavor:  config.FlavorGFM,
			Extensions:      []string{".htm"},
			Ignore:          []string{"*.bak"},
			Format:          config.FormatJSON,
			Jobs:            4,
			OutputDir:       "out",
			InputType:       config.InputMarkdown,
		}

		clone := original.Clone()
		require.NotNil(t, clone)

		assert.Equal(t, original, clone)
	})
}

func TestConfigToYAML(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var cfg *config.Config
		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("basic config serializes", func(t *testing.T) {
		cfg := &config.Config{
			Search:         config.SearchConfig{PrimaryTerms: []string{"lahey"}},
			MarkdownFlavor: config.FlavorGFM,
			Format:         config.FormatJSON,
		}

		data, err := cfg.ToYAML()
		require.NoError(t, err)
		assert.Contains(t, string(data), "markdown_flavor: gfm")
		assert.Contains(t, string(data), "- lahey")
		assert.NotContains(t, string(data), "json", "CLI-only fields are not persisted")
	})

	t.Run("header is prepended", func(t *testing.T) {
		cfg := &config.Config{MarkdownFlavor: config.FlavorCommonMark}

		data, err := cfg.ToYAMLWithHeader("# hello")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "# hello\n\n"))
		assert.Contains(t, string(data), "markdown_flavor: commonmark")
	})
}

func TestFromYAML(t *testing.T) {
	t.Run("parses valid YAML", func(t *testing.T) {
		yaml := []byte(`
search:
  primary_terms: [lahey, catalog]
  primary_case_sensitive: true
  secondary_terms: [chris]
highlight:
  color: "#ff0000"
  bold: true
markdown_flavor: gfm
transparent_tags: [b, mark]
`)
		cfg, err := config.FromYAML(yaml)
		require.NoError(t, err)
		assert.Equal(t, []string{"lahey", "catalog"}, cfg.Search.PrimaryTerms)
		assert.True(t, cfg.PrimaryCaseSensitive())
		assert.Nil(t, cfg.Search.SecondaryCaseSensitive)
		assert.Equal(t, []string{"chris"}, cfg.Search.SecondaryTerms)
		assert.Equal(t, "#ff0000", cfg.Highlight.Color)
		assert.True(t, cfg.Bold())
		assert.Equal(t, config.FlavorGFM, cfg.MarkdownFlavor)
		assert.Equal(t, []string{"b", "mark"}, cfg.TransparentTags)
	})

	t.Run("rejects malformed YAML", func(t *testing.T) {
		_, err := config.FromYAML([]byte("search: [unterminated"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse yaml")
	})
}

func TestGenerateTemplate(t *testing.T) {
	t.Parallel()

	t.Run("minimal template parses", func(t *testing.T) {
		t.Parallel()

		data, err := config.GenerateTemplate(config.TemplateOptions{PrimaryTerms: []string{"lahey", "yes"}})
		require.NoError(t, err)
		assert.Contains(t, string(data), "# searchlight configuration")

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		assert.Equal(t, []string{"lahey", "yes"}, cfg.Search.PrimaryTerms)
		assert.Equal(t, "red", cfg.Highlight.Color)
		assert.Equal(t, config.FlavorCommonMark, cfg.MarkdownFlavor)
	})

	t.Run("full template round trips", func(t *testing.T) {
		t.Parallel()

		data, err := config.GenerateTemplate(config.TemplateOptions{Full: true})
		require.NoError(t, err)

		cfg, err := config.FromYAML(data)
		require.NoError(t, err)
		require.NotNil(t, cfg.Highlight.Bold)
		assert.False(t, cfg.Bold())
		assert.Equal(t, config.DefaultExtensions(), cfg.Extensions)
		assert.Contains(t, cfg.Ignore, "vendor/**")
	})

	t.Run("json template", func(t *testing.T) {
		t.Parallel()

		data, err := config.GenerateTemplate(config.TemplateOptions{Format: "json"})
		require.NoError(t, err)

		var doc map[string]any
		require.NoError(t, json.Unmarshal(data, &doc))
		assert.Equal(t, "commonmark", doc["markdown_flavor"])
		assert.Contains(t, doc, "search")
	})
}
