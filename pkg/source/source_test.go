package source_test

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/searchlight/pkg/config"
	"github.com/yaklabco/searchlight/pkg/search"
	"github.com/yaklabco/searchlight/pkg/source"
	"github.com/yaklabco/searchlight/pkg/token"
)

func TestHTML_PreservesBytes(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"plain text only",
		`<!DOCTYPE html><html><head><title>x</title></head><body><p class="a">Hi &amp; bye</p><!-- c --><br/></body></html>`,
		"<p>unclosed <b>tags",
		"<script>if (a < b) { lahey(); }</script>",
	}

	for _, input := range inputs {
		src := source.NewHTML(strings.NewReader(input))
		assert.Equal(t, input, token.Concat(token.Collect(src)))
		assert.NoError(t, src.Err())
	}
}

func TestHTML_TokenKindsAndOffsets(t *testing.T) {
	t.Parallel()

	src := source.NewHTML(strings.NewReader(`<p>Tom &amp; Jerry</p>`))

	want := []token.Token{
		token.Tag("<p>", 0),
		token.Text("Tom ", 3),
		token.Tag("&amp;", 7),
		token.Text(" Jerry", 12),
		token.Tag("</p>", 18),
	}
	assert.Equal(t, want, token.Collect(src))
}

func TestHTML_RawTextElementsAreNotSearched(t *testing.T) {
	t.Parallel()

	const input = `<style>.lahey{}</style><p>lahey</p><script>lahey()</script>`

	s := search.New(search.WithPrimaryTerms(false, "lahey"))
	out := token.Concat(token.Collect(s.Begin(source.NewHTML(strings.NewReader(input)))))

	assert.Equal(t, `<style>.lahey{}</style><p><font color="red">lahey</font></p><script>lahey()</script>`, out)
	assert.Equal(t, 1, s.MatchCount())
}

func TestHTML_ReadError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	src := source.NewHTML(iotest.ErrReader(boom))

	assert.Empty(t, token.Collect(src))
	require.Error(t, src.Err())
	assert.ErrorIs(t, src.Err(), boom)
}

func TestNewHTMLCharset(t *testing.T) {
	t.Parallel()

	// "café" in ISO-8859-1.
	input := "<p>caf\xe9</p>"

	src, err := source.NewHTMLCharset(strings.NewReader(input), "text/html; charset=iso-8859-1")
	require.NoError(t, err)

	assert.Equal(t, "<p>café</p>", token.Concat(token.Collect(src)))
}

func TestReferences(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"named", "a&lt;b", []string{"a", "&lt;", "b"}},
		{"decimal", "&#233;t&#233;", []string{"&#233;", "t", "&#233;"}},
		{"hex", "x&#x1F600;", []string{"x", "&#x1F600;"}},
		{"bare ampersand", "fish & chips", []string{"fish & chips"}},
		{"unterminated", "&amp no", []string{"&amp no"}},
		{"empty numeric", "&#;", []string{"&#;"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got []string
			for _, tok := range token.Collect(source.NewHTML(strings.NewReader(tt.input))) {
				got = append(got, tok.Text)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMarkdown(t *testing.T) {
	t.Parallel()

	t.Run("commonmark", func(t *testing.T) {
		t.Parallel()

		src, err := source.NewMarkdown([]byte("# Title\n\nHello *Lahey*\n"), config.FlavorCommonMark)
		require.NoError(t, err)

		assert.Equal(t, "<h1>Title</h1>\n<p>Hello <em>Lahey</em></p>\n", token.Concat(token.Collect(src)))
	})

	t.Run("gfm strikethrough", func(t *testing.T) {
		t.Parallel()

		gfm, err := source.RenderMarkdown([]byte("~~old~~\n"), config.FlavorGFM)
		require.NoError(t, err)
		assert.Contains(t, string(gfm), "<del>old</del>")

		plain, err := source.RenderMarkdown([]byte("~~old~~\n"), config.FlavorCommonMark)
		require.NoError(t, err)
		assert.NotContains(t, string(plain), "<del>")
	})
}

func TestText(t *testing.T) {
	t.Parallel()

	src := source.NewText(strings.NewReader("one\ntwo\n\nthree"))

	want := []token.Token{
		token.Text("one\n", 0),
		token.Text("two\n", 4),
		token.Text("\n", 8),
		token.Text("three", 9),
	}
	assert.Equal(t, want, token.Collect(src))
	assert.NoError(t, src.Err())
	assert.Equal(t, token.Token{}, src.Next())
}

func TestText_ReadError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	src := source.NewText(iotest.ErrReader(boom))

	assert.Empty(t, token.Collect(src))
	assert.ErrorIs(t, src.Err(), boom)
}

func TestDetectInputType(t *testing.T) {
	t.Parallel()

	tests := map[string]config.InputType{
		"index.html":   config.InputHTML,
		"PAGE.HTM":     config.InputHTML,
		"README.md":    config.InputMarkdown,
		"notes.txt":    config.InputText,
		"Makefile":     config.InputText,
		"doc.markdown": config.InputMarkdown,
	}

	for path, want := range tests {
		assert.Equal(t, want, source.DetectInputType(path), path)
	}
}

func TestForPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		path  string
		opts  source.Options
		input string
		want  string
	}{
		{"html by extension", "a.html", source.Options{}, "<i>x</i>", "<i>x</i>"},
		{"markdown by extension", "a.md", source.Options{}, "*x*", "<p><em>x</em></p>\n"},
		{"text by extension", "a.txt", source.Options{}, "<i>x</i>", "<i>x</i>"},
		{"forced markdown", "-", source.Options{InputType: config.InputMarkdown}, "*x*", "<p><em>x</em></p>\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src, err := source.ForPath(tt.path, strings.NewReader(tt.input), tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, token.Concat(token.Collect(src)))
		})
	}

	t.Run("text input keeps tags as text", func(t *testing.T) {
		t.Parallel()

		src, err := source.ForPath("a.txt", strings.NewReader("<i>x</i>"), source.Options{})
		require.NoError(t, err)
		for _, tok := range token.Collect(src) {
			assert.False(t, tok.IsTag())
		}
	})

	t.Run("unknown input type", func(t *testing.T) {
		t.Parallel()

		_, err := source.ForPath("a", strings.NewReader(""), source.Options{InputType: "pdf"})
		require.Error(t, err)
	})
}
