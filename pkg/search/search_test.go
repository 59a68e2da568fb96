package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/searchlight/pkg/config"
	"github.com/yaklabco/searchlight/pkg/highlight"
	"github.com/yaklabco/searchlight/pkg/search"
	"github.com/yaklabco/searchlight/pkg/token"
)

const (
	openRed = `<font color="red">`
	closeFt = "</font>"
)

func highlightString(s *search.Search, pieces ...string) string {
	return token.Concat(token.Collect(s.Begin(token.FromStrings(pieces...))))
}

func TestSearch_NoTermsPassesThrough(t *testing.T) {
	t.Parallel()

	s := search.New()
	assert.False(t, s.Active())

	session := s.Begin(token.FromStrings("Chris Lahey", "<br>"))
	assert.Equal(t, highlight.PhaseIdle, session.Phase())
	assert.Equal(t, "Chris Lahey<br>", token.Concat(token.Collect(session)))
	assert.Equal(t, 0, s.MatchCount())
}

func TestSearch_PrimaryMatchesAreCounted(t *testing.T) {
	t.Parallel()

	s := search.New(search.WithPrimaryTerms(false, "lahey"))

	out := highlightString(s, "Chris Lahey is here, lahey")

	assert.Equal(t, "Chris "+openRed+"Lahey"+closeFt+" is here, "+openRed+"lahey"+closeFt, out)
	assert.Equal(t, 2, s.MatchCount())
}

func TestSearch_SecondaryMatchesAreNotCounted(t *testing.T) {
	t.Parallel()

	var spans int
	s := search.New(
		search.WithSecondaryTerms(false, "chris"),
		search.WithMatchHandler(func(highlight.Match) { spans++ }),
	)

	out := highlightString(s, "Chris Lahey")

	assert.Equal(t, openRed+"Chris"+closeFt+" Lahey", out)
	assert.Equal(t, 0, s.MatchCount())
	assert.Equal(t, 1, spans, "the match event still fires")
}

func TestSearch_PrimaryTakesPrecedence(t *testing.T) {
	t.Parallel()

	s := search.New(
		search.WithPrimaryTerms(false, "lahey"),
		search.WithSecondaryTerms(false, "chris"),
	)
	assert.True(t, s.UsesPrimary())

	out := highlightString(s, "Chris Lahey")
	assert.Equal(t, "Chris "+openRed+"Lahey"+closeFt, out)
	assert.Equal(t, 1, s.MatchCount())

	s.SetPrimaryTerms()
	assert.False(t, s.UsesPrimary())

	out = highlightString(s, "Chris Lahey")
	assert.Equal(t, openRed+"Chris"+closeFt+" Lahey", out)
	assert.Equal(t, 0, s.MatchCount())
}

func TestSearch_CaseSensitivitySetters(t *testing.T) {
	t.Parallel()

	s := search.New(search.WithPrimaryTerms(false, "lahey"))
	assert.Equal(t, 1, countMatches(s, "Lahey"))

	s.SetPrimaryCaseSensitivity(true)
	assert.Equal(t, 0, countMatches(s, "Lahey"))
	assert.Equal(t, 1, countMatches(s, "lahey"))
	assert.Equal(t, []string{"lahey"}, s.PrimaryTerms(), "terms are kept")

	s.SetSecondaryTerms("CHRIS")
	s.SetSecondaryCaseSensitivity(true)
	assert.Equal(t, []string{"CHRIS"}, s.SecondaryTerms())
}

func countMatches(s *search.Search, text string) int {
	token.Collect(s.Begin(token.FromStrings(text)))
	return s.MatchCount()
}

func TestSearch_ReconfigureDetachesSession(t *testing.T) {
	t.Parallel()

	s := search.New(search.WithPrimaryTerms(false, "cat"))
	session := s.Begin(token.FromStrings("a cat"))
	token.Collect(session)
	require.Equal(t, 1, s.MatchCount())

	s.SetHighlightStyle(highlight.Style{Color: "blue", Bold: true})
	assert.Equal(t, 0, s.MatchCount(), "counter belongs to the detached session")
	assert.Equal(t, 1, session.MatchCount(), "the session itself is unaffected")

	out := highlightString(s, "a cat")
	assert.Equal(t, `a <font color="blue"><b>cat</b></font>`, out)
}

func TestSearch_TransparentTags(t *testing.T) {
	t.Parallel()

	s := search.New(search.WithPrimaryTerms(false, "cat"))
	assert.Equal(t, openRed+"ca<b>t"+closeFt, highlightString(s, "ca", "<b>", "t"))

	s.SetTransparentTags("div")
	assert.Equal(t, "ca<b>t", highlightString(s, "ca", "<b>", "t"))
	assert.Equal(t, openRed+"ca<div>t"+closeFt, highlightString(s, "ca", "<div>", "t"))
}

func TestSearch_CloneSharesAutomata(t *testing.T) {
	t.Parallel()

	var original, cloned int
	s := search.New(
		search.WithPrimaryTerms(false, "cat", "catalog"),
		search.WithMatchHandler(func(highlight.Match) { original++ }),
	)
	clone := s.Clone(search.WithMatchHandler(func(highlight.Match) { cloned++ }))

	assert.Same(t, s.Automaton(), clone.Automaton())

	token.Collect(clone.Begin(token.FromStrings("the catalog")))
	assert.Equal(t, 1, clone.MatchCount())
	assert.Equal(t, 0, s.MatchCount())
	assert.Equal(t, 1, cloned)
	assert.Equal(t, 0, original)

	clone.SetPrimaryTerms("dog")
	assert.NotSame(t, s.Automaton(), clone.Automaton())
	assert.Equal(t, []string{"cat", "catalog"}, s.PrimaryTerms())
}

func TestFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.NewConfig()
	cfg.Search.PrimaryTerms = []string{"Lahey"}
	cfg.Search.PrimaryCaseSensitive = config.Bool(true)
	cfg.Search.SecondaryTerms = []string{"chris"}
	cfg.Highlight = config.HighlightConfig{Color: "green", Bold: config.Bool(true)}
	cfg.TransparentTags = []string{"mark"}

	s := search.FromConfig(cfg)

	assert.Equal(t, highlight.Style{Color: "green", Bold: true}, s.Style())
	assert.Equal(t, []string{"Lahey"}, s.PrimaryTerms())
	assert.Equal(t, []string{"chris"}, s.SecondaryTerms())

	out := highlightString(s, "lahey ", "<mark>", "La", "<mark>", "hey")
	assert.Equal(t, `lahey <mark><font color="green"><b>La<mark>hey</b></font>`, out)
	assert.Equal(t, 1, s.MatchCount())
}

func TestFromConfig_Nil(t *testing.T) {
	t.Parallel()

	s := search.FromConfig(nil)
	assert.False(t, s.Active())
	assert.Equal(t, highlight.DefaultStyle(), s.Style())
}
