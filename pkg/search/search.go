// Package search holds the highlight configuration for a document: the
// primary and secondary phrase sets, their case sensitivity, and the
// markup style. It compiles the phrase sets into automata and starts
// highlighting sessions over token streams.
package search

import (
	"maps"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/searchlight/pkg/automaton"
	"github.com/yaklabco/searchlight/pkg/config"
	"github.com/yaklabco/searchlight/pkg/highlight"
	"github.com/yaklabco/searchlight/pkg/token"
)

// An Option configures a Search.
type Option func(*Search)

// WithPrimaryTerms sets the primary phrases and their case sensitivity.
func WithPrimaryTerms(caseSensitive bool, terms ...string) Option {
	return func(s *Search) {
		s.primary = newTermSet(terms, caseSensitive)
	}
}

// WithSecondaryTerms sets the secondary phrases and their case sensitivity.
func WithSecondaryTerms(caseSensitive bool, terms ...string) Option {
	return func(s *Search) {
		s.secondary = newTermSet(terms, caseSensitive)
	}
}

// WithStyle sets the highlight markup.
func WithStyle(style highlight.Style) Option {
	return func(s *Search) {
		s.style = style
	}
}

// WithTransparentTags replaces the set of tags that do not interrupt a match.
func WithTransparentTags(names ...string) Option {
	return func(s *Search) {
		s.transparent = highlight.NewTagSet(names...)
	}
}

// WithMatchHandler registers fn to be called once per highlighted span.
func WithMatchHandler(fn func(highlight.Match)) Option {
	return func(s *Search) {
		s.onMatch = fn
	}
}

// WithLogger sets the logger handed to each session.
func WithLogger(logger *log.Logger) Option {
	return func(s *Search) {
		s.logger = logger
	}
}

// termSet is one phrase set with its compiled automaton.
type termSet struct {
	terms         []string
	caseSensitive bool
	auto          *automaton.Automaton
}

func newTermSet(terms []string, caseSensitive bool) termSet {
	terms = slices.Clone(terms)
	return termSet{
		terms:         terms,
		caseSensitive: caseSensitive,
		auto:          automaton.Compile(terms, caseSensitive),
	}
}

// Search is the highlight configuration. It is not safe for concurrent use;
// give each goroutine its own Clone.
type Search struct {
	primary     termSet
	secondary   termSet
	style       highlight.Style
	transparent highlight.TagSet
	onMatch     func(highlight.Match)
	logger      *log.Logger

	session        *highlight.Searcher
	sessionPrimary bool
}

// New creates a Search. Without phrase options every session passes its
// input through unchanged.
func New(opts ...Option) *Search {
	s := &Search{
		primary:   newTermSet(nil, false),
		secondary: newTermSet(nil, false),
		style:     highlight.DefaultStyle(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FromConfig builds a Search from resolved configuration.
func FromConfig(cfg *config.Config, opts ...Option) *Search {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	base := []Option{
		WithPrimaryTerms(cfg.PrimaryCaseSensitive(), cfg.Search.PrimaryTerms...),
		WithSecondaryTerms(cfg.SecondaryCaseSensitive(), cfg.Search.SecondaryTerms...),
		WithStyle(highlight.Style{Color: cfg.Highlight.Color, Bold: cfg.Bold()}),
	}
	if len(cfg.TransparentTags) > 0 {
		base = append(base, WithTransparentTags(cfg.TransparentTags...))
	}

	return New(append(base, opts...)...)
}

// SetPrimaryTerms replaces the primary phrases, keeping their case
// sensitivity.
func (s *Search) SetPrimaryTerms(terms ...string) {
	s.primary = newTermSet(terms, s.primary.caseSensitive)
	s.detach()
}

// SetPrimaryCaseSensitivity changes how the primary phrases are compared.
func (s *Search) SetPrimaryCaseSensitivity(caseSensitive bool) {
	s.primary = newTermSet(s.primary.terms, caseSensitive)
	s.detach()
}

// SetSecondaryTerms replaces the secondary phrases, keeping their case
// sensitivity.
func (s *Search) SetSecondaryTerms(terms ...string) {
	s.secondary = newTermSet(terms, s.secondary.caseSensitive)
	s.detach()
}

// SetSecondaryCaseSensitivity changes how the secondary phrases are compared.
func (s *Search) SetSecondaryCaseSensitivity(caseSensitive bool) {
	s.secondary = newTermSet(s.secondary.terms, caseSensitive)
	s.detach()
}

// SetHighlightStyle changes the markup used by future sessions.
func (s *Search) SetHighlightStyle(style highlight.Style) {
	s.style = style
	s.detach()
}

// SetTransparentTags replaces the transparent tag set for future sessions.
func (s *Search) SetTransparentTags(names ...string) {
	s.transparent = highlight.NewTagSet(names...)
	s.detach()
}

// PrimaryTerms returns a copy of the primary phrases.
func (s *Search) PrimaryTerms() []string {
	return slices.Clone(s.primary.terms)
}

// SecondaryTerms returns a copy of the secondary phrases.
func (s *Search) SecondaryTerms() []string {
	return slices.Clone(s.secondary.terms)
}

// Style returns the highlight markup style.
func (s *Search) Style() highlight.Style {
	return s.style
}

// Active reports whether sessions will highlight anything.
func (s *Search) Active() bool {
	return !s.primary.auto.Empty() || !s.secondary.auto.Empty()
}

// UsesPrimary reports whether sessions match the primary phrases. The
// secondary phrases are used only when no primary phrase is set.
func (s *Search) UsesPrimary() bool {
	return !s.primary.auto.Empty()
}

// Automaton returns the compiled automaton the next session will use.
func (s *Search) Automaton() *automaton.Automaton {
	if s.UsesPrimary() {
		return s.primary.auto
	}
	return s.secondary.auto
}

// Begin starts a highlighting session over src and returns it. The
// returned Searcher is the rewritten stream.
func (s *Search) Begin(src token.Source) *highlight.Searcher {
	s.sessionPrimary = s.UsesPrimary()
	s.session = highlight.New(s.Automaton(), src, highlight.Options{
		Style:           s.style,
		TransparentTags: s.transparent,
		OnMatch:         s.onMatch,
		Logger:          s.logger,
	})
	return s.session
}

// MatchCount returns the number of primary-phrase spans highlighted by the
// current session. Secondary matches are never counted.
func (s *Search) MatchCount() int {
	if s.session == nil || !s.sessionPrimary {
		return 0
	}
	return s.session.MatchCount()
}

// Clone returns an independent Search sharing the compiled automata, which
// are immutable. The clone has no session; opts are applied to it.
func (s *Search) Clone(opts ...Option) *Search {
	clone := *s
	clone.transparent = maps.Clone(s.transparent)
	clone.session = nil
	clone.sessionPrimary = false
	for _, opt := range opts {
		opt(&clone)
	}
	return &clone
}

func (s *Search) detach() {
	s.session = nil
	s.sessionPrimary = false
}
