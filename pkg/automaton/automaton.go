// Package automaton compiles literal search phrases into an Aho-Corasick
// automaton and answers single-step transition queries over it.
//
// The automaton is immutable once built and may be shared read-only by any
// number of scanners.
package automaton

// root is the index of the root state in the arena.
const root = 0

// noFailure marks the root state, which has no failure link.
const noFailure = -1

// state is a node in the automaton.
type state struct {
	// edges maps a (possibly folded) code point to the next state.
	// Leaves keep a nil map.
	edges map[rune]int32

	// fail is the state holding the longest proper suffix of this state's
	// path that is also a prefix in the trie.
	fail int32

	// final is the length, in code points, of the longest pattern ending
	// at this state, including patterns reached through the failure chain.
	// Zero means this is not a match boundary.
	final int

	// depth is the length of the path from root to this state.
	depth int

	// lookback is the depth of the first state on the failure chain
	// (starting with this one) that still has outgoing edges. No future
	// match can start earlier than lookback code points back.
	lookback int
}

// Automaton is a compiled set of patterns.
// An automaton built from no patterns has zero states and never matches.
type Automaton struct {
	states        []state
	caseSensitive bool
	maxLen        int
	patterns      int
}

// Step follows the transition for r from the given state, falling back
// through failure links until an edge is found or root is reached.
// It returns the resulting state and the length of the longest pattern
// ending there (0 when no pattern ends there).
//
// Callers fold r with Fold before stepping when the automaton is
// case-insensitive.
func (a *Automaton) Step(from int, r rune) (next int, matched int) {
	if len(a.states) == 0 {
		return root, 0
	}

	current := from
	for {
		if target, ok := a.states[current].edges[r]; ok {
			return int(target), a.states[target].final
		}
		if current == root {
			return root, 0
		}
		current = int(a.states[current].fail)
	}
}

// Fold returns r folded for comparison under this automaton's case rules.
func (a *Automaton) Fold(r rune) rune {
	if a.caseSensitive {
		return r
	}
	return Fold(r)
}

// Root returns the initial state.
func (a *Automaton) Root() int {
	return root
}

// Empty reports whether the automaton has no states and therefore can
// never match.
func (a *Automaton) Empty() bool {
	return a == nil || len(a.states) == 0
}

// Len returns the number of states.
func (a *Automaton) Len() int {
	if a == nil {
		return 0
	}
	return len(a.states)
}

// CaseSensitive reports whether patterns were compiled without folding.
func (a *Automaton) CaseSensitive() bool {
	return a.caseSensitive
}

// MaxPatternLength returns the length, in code points, of the longest
// compiled pattern.
func (a *Automaton) MaxPatternLength() int {
	if a == nil {
		return 0
	}
	return a.maxLen
}

// PatternCount returns the number of non-empty patterns compiled.
func (a *Automaton) PatternCount() int {
	if a == nil {
		return 0
	}
	return a.patterns
}

// Depth returns the path length from root to the given state.
func (a *Automaton) Depth(s int) int {
	if s < 0 || s >= len(a.states) {
		return 0
	}
	return a.states[s].depth
}

// Lookback returns how many of the most recent code points may still begin
// a future match when the scanner is in state s.
func (a *Automaton) Lookback(s int) int {
	if s < 0 || s >= len(a.states) {
		return 0
	}
	return a.states[s].lookback
}

// Final returns the longest pattern length ending at state s.
func (a *Automaton) Final(s int) int {
	if s < 0 || s >= len(a.states) {
		return 0
	}
	return a.states[s].final
}

// Failure returns the failure link of state s, or -1 for root.
func (a *Automaton) Failure(s int) int {
	if s < 0 || s >= len(a.states) {
		return noFailure
	}
	return int(a.states[s].fail)
}
