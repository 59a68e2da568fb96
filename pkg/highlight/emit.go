package highlight

import (
	"strings"

	"github.com/yaklabco/searchlight/pkg/token"
)

// emitMatch moves queued tokens to the output, wrapping the bytes in
// [sub.Start, sub.End) in highlight markup. Text tokens that straddle a
// boundary are split; the unmatched tail stays queued. Tags inside the span
// are forwarded in place.
func (s *Searcher) emitMatch(sub Submatch) {
	var (
		opened  bool
		matched strings.Builder
	)

	open := func(offset int) {
		if !opened {
			s.out.push(s.style.openTokens(offset)...)
			opened = true
		}
	}

	for s.pending.len() > 0 {
		tok := s.pending.front()

		if !opened && tok.End() <= sub.Start {
			s.out.push(s.pending.pop())
			continue
		}
		if tok.Offset >= sub.End {
			break
		}

		if tok.IsTag() || tok.IsEmpty() {
			if tok.IsTag() {
				open(tok.Offset)
			}
			s.out.push(s.pending.pop())
			continue
		}

		lo := max(sub.Start-tok.Offset, 0)
		hi := min(sub.End-tok.Offset, len(tok.Text))

		if lo > 0 {
			s.out.push(token.Text(tok.Text[:lo], tok.Offset))
		}
		open(tok.Offset + lo)
		s.out.push(token.Text(tok.Text[lo:hi], tok.Offset+lo))
		matched.WriteString(tok.Text[lo:hi])

		if hi < len(tok.Text) {
			s.pending.replaceFront(token.Text(tok.Text[hi:], tok.Offset+hi))
			break
		}
		s.pending.pop()
	}

	if !opened {
		return
	}

	s.out.push(s.style.closeTokens(sub.End)...)
	s.stats.Matches++
	if s.onMatch != nil {
		s.onMatch(Match{Start: sub.Start, End: sub.End, Text: matched.String()})
	}
}
