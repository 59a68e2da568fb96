// Package highlight rewrites a token stream so that every occurrence of a
// compiled phrase is wrapped in highlight markup.
//
// A Searcher pulls tokens from a token.Source one at a time, feeds the text
// through an automaton across token boundaries, and holds back only as much
// of the stream as a pending match could still claim. The Searcher is itself
// a token.Source, so output is consumed by pulling.
//
// A Searcher is not safe for concurrent use. The automaton it reads is.
package highlight

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/searchlight/pkg/automaton"
	"github.com/yaklabco/searchlight/pkg/token"
)

// Compile-time interface check.
var _ token.Source = (*Searcher)(nil)

// Phase is the lifecycle position of a Searcher.
type Phase uint8

const (
	// PhaseIdle forwards every token unmodified; no patterns are configured.
	PhaseIdle Phase = iota

	// PhaseScanning pulls and matches tokens.
	PhaseScanning

	// PhaseFlushing drains pending matches and tokens after the source ends.
	PhaseFlushing

	// PhaseDone is terminal.
	PhaseDone
)

// String returns the lowercase phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseScanning:
		return "scanning"
	case PhaseFlushing:
		return "flushing"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// Submatch is a pending highlight region [Start, End) in stream offsets.
type Submatch struct {
	Start int
	End   int
}

// Match describes one emitted highlight span.
type Match struct {
	// Start is the byte offset where the highlighted text begins.
	Start int

	// End is the byte offset where the highlighted text ends (exclusive).
	End int

	// Text is the highlighted text, without any tags it spanned.
	Text string
}

// Options configures a Searcher.
type Options struct {
	// Style is the highlight markup. The zero value is DefaultStyle.
	Style Style

	// TransparentTags are element names that do not reset matching.
	// Nil selects DefaultTransparentTags.
	TransparentTags TagSet

	// OnMatch is called synchronously once per emitted highlight span.
	OnMatch func(Match)

	// Logger receives debug events. Nil disables logging.
	Logger *log.Logger
}

// Stats counts what a Searcher has done since it began.
type Stats struct {
	TokensIn      int
	TokensOut     int
	Matches       int
	ForcedFlushes int
	Resets        int
	PeakPending   int
}

// Searcher is the streaming matcher and rewriter.
type Searcher struct {
	auto        *automaton.Automaton
	src         token.Source
	style       Style
	transparent TagSet
	onMatch     func(Match)
	logger      *log.Logger

	phase  Phase
	state  int
	ring   *PositionRing
	cursor int // offset just past the last consumed code point

	subs    []Submatch
	maxSubs int
	pending tokenQueue
	out     tokenQueue

	stats Stats
}

// New creates a Searcher reading from src. With a nil or empty automaton
// the Searcher stays idle and forwards src unchanged.
func New(auto *automaton.Automaton, src token.Source, opts Options) *Searcher {
	s := &Searcher{
		auto:        auto,
		style:       opts.Style,
		transparent: opts.TransparentTags,
		onMatch:     opts.OnMatch,
		logger:      opts.Logger,
	}
	if s.transparent == nil {
		s.transparent = NewTagSet(defaultTransparentTags...)
	}
	s.Reset(src)
	return s
}

// Reset starts a new scan over src, discarding all buffered state and
// counters.
func (s *Searcher) Reset(src token.Source) {
	s.src = src
	s.state = 0
	s.cursor = 0
	s.subs = s.subs[:0]
	s.pending.reset()
	s.out.reset()
	s.stats = Stats{}

	if s.auto.Empty() {
		s.phase = PhaseIdle
		s.ring = nil
		return
	}

	s.phase = PhaseScanning
	s.maxSubs = max(s.auto.PatternCount(), 1)
	if s.ring == nil || s.ring.Cap() != s.auto.MaxPatternLength()+1 {
		s.ring = NewPositionRing(s.auto.MaxPatternLength() + 1)
	} else {
		s.ring.Reset()
	}
}

// Phase returns the current lifecycle phase.
func (s *Searcher) Phase() Phase {
	return s.phase
}

// MatchCount returns the number of highlight spans emitted so far.
func (s *Searcher) MatchCount() int {
	return s.stats.Matches
}

// Stats returns a snapshot of the Searcher's counters.
func (s *Searcher) Stats() Stats {
	return s.stats
}

// HasMore implements token.Source.
func (s *Searcher) HasMore() bool {
	if s.phase == PhaseIdle {
		return s.src != nil && s.src.HasMore()
	}
	s.fill()
	return s.out.len() > 0
}

// Next implements token.Source.
func (s *Searcher) Next() token.Token {
	if s.phase == PhaseIdle {
		if s.src == nil || !s.src.HasMore() {
			return token.Token{}
		}
		s.stats.TokensIn++
		s.stats.TokensOut++
		return s.src.Next()
	}

	s.fill()
	if s.out.len() == 0 {
		return token.Token{}
	}
	s.stats.TokensOut++
	return s.out.pop()
}

// fill advances the state machine until an output token is ready or the
// scan is done.
func (s *Searcher) fill() {
	for s.out.len() == 0 && s.phase != PhaseDone {
		switch s.phase {
		case PhaseScanning:
			if s.src == nil || !s.src.HasMore() {
				s.phase = PhaseFlushing
				continue
			}
			s.consume(s.src.Next())
		case PhaseFlushing:
			s.flushAll()
			s.resetAutomaton()
			s.phase = PhaseDone
		default:
			return
		}
	}
}

func (s *Searcher) consume(tok token.Token) {
	s.stats.TokensIn++

	if tok.IsTag() {
		s.consumeTag(tok)
	} else {
		s.consumeText(tok)
	}

	if n := s.pending.len(); n > s.stats.PeakPending {
		s.stats.PeakPending = n
	}
}

func (s *Searcher) consumeTag(tok token.Token) {
	if s.transparent.Contains(token.TagName(tok.Text)) {
		s.pending.push(tok)
		s.flushReady()
		return
	}

	s.flushAll()
	s.resetAutomaton()
	s.stats.Resets++
	s.out.push(tok)
}

func (s *Searcher) consumeText(tok token.Token) {
	s.pending.push(tok)

	text := tok.Text
	for i := 0; i < len(text); {
		r, size := automaton.Decode(text[i:])
		offset := tok.Offset + i
		i += size

		s.ring.Push(offset)
		s.cursor = offset + size

		var matched int
		s.state, matched = s.auto.Step(s.state, s.auto.Fold(r))
		if matched > 0 {
			start, _ := s.ring.Back(matched)
			s.addSubmatch(Submatch{Start: start, End: s.cursor})
		}

		s.resolve()
	}

	s.flushReady()
}

// windowStart is the earliest offset at which a future match could begin.
func (s *Searcher) windowStart() int {
	if depth := s.auto.Lookback(s.state); depth > 0 {
		if offset, ok := s.ring.Back(depth); ok {
			return offset
		}
	}
	return s.cursor
}

// holdOffset is the earliest offset the Searcher may still need to rewrite.
// Tokens ending at or before it can be released verbatim.
func (s *Searcher) holdOffset() int {
	hold := math.MaxInt
	if depth := s.auto.Lookback(s.state); depth > 0 {
		if offset, ok := s.ring.Back(depth); ok {
			hold = offset
		}
	}
	if len(s.subs) > 0 && s.subs[0].Start < hold {
		hold = s.subs[0].Start
	}
	return hold
}

// addSubmatch pushes sub onto the stack, merging it with every entry it
// overlaps or abuts.
func (s *Searcher) addSubmatch(sub Submatch) {
	for n := len(s.subs); n > 0; n = len(s.subs) {
		top := s.subs[n-1]
		if sub.Start > top.End {
			break
		}
		sub.Start = min(sub.Start, top.Start)
		sub.End = max(sub.End, top.End)
		s.subs = s.subs[:n-1]
	}

	if len(s.subs) >= s.maxSubs {
		oldest := s.subs[0]
		s.subs = append(s.subs[:0], s.subs[1:]...)
		s.stats.ForcedFlushes++
		if s.logger != nil {
			s.logger.Debug("submatch stack full, flushing oldest",
				"start", oldest.Start, "end", oldest.End, "limit", s.maxSubs)
		}
		s.emitMatch(oldest)
	}

	s.subs = append(s.subs, sub)
}

// resolve emits every submatch that no future match can merge with.
func (s *Searcher) resolve() {
	if len(s.subs) == 0 {
		return
	}

	window := s.windowStart()
	resolved := 0
	for resolved < len(s.subs) && s.subs[resolved].End < window {
		s.emitMatch(s.subs[resolved])
		resolved++
	}
	if resolved > 0 {
		s.subs = append(s.subs[:0], s.subs[resolved:]...)
	}
}

// flushReady releases queued tokens that lie entirely before the hold offset.
func (s *Searcher) flushReady() {
	hold := s.holdOffset()
	for s.pending.len() > 0 && s.pending.front().End() <= hold {
		s.out.push(s.pending.pop())
	}
}

// flushAll emits every pending submatch, oldest first, then every queued
// token verbatim.
func (s *Searcher) flushAll() {
	for _, sub := range s.subs {
		s.emitMatch(sub)
	}
	s.subs = s.subs[:0]

	for s.pending.len() > 0 {
		s.out.push(s.pending.pop())
	}
}

func (s *Searcher) resetAutomaton() {
	s.state = s.auto.Root()
	if s.ring != nil {
		s.ring.Reset()
	}
}
