package automaton

// Builder constructs automata from literal patterns.
type Builder struct {
	caseSensitive bool
	patterns      []string
}

// NewBuilder creates a Builder. When caseSensitive is false, patterns and
// scanned text are compared after Fold.
func NewBuilder(caseSensitive bool) *Builder {
	return &Builder{caseSensitive: caseSensitive}
}

// Add queues a pattern. Empty patterns are ignored at build time.
func (b *Builder) Add(patterns ...string) *Builder {
	b.patterns = append(b.patterns, patterns...)
	return b
}

// Compile is shorthand for NewBuilder(caseSensitive).Add(patterns...).Build().
func Compile(patterns []string, caseSensitive bool) *Automaton {
	return NewBuilder(caseSensitive).Add(patterns...).Build()
}

// Build constructs the automaton. The build process has two phases:
//  1. Trie construction: insert every pattern, sharing prefixes.
//  2. Failure link computation: breadth-first, by depth.
//
// If no pattern is non-empty the result has zero states.
func (b *Builder) Build() *Automaton {
	a := &Automaton{caseSensitive: b.caseSensitive}

	for _, pattern := range b.patterns {
		if pattern == "" {
			continue
		}
		b.insert(a, pattern)
	}

	if len(a.states) == 0 {
		return a
	}

	b.computeFailureLinks(a)

	return a
}

// insert adds a single pattern to the trie, recording its length at the
// terminal state if it is the longest pattern ending there.
func (b *Builder) insert(a *Automaton, pattern string) {
	if len(a.states) == 0 {
		a.states = append(a.states, state{fail: noFailure})
	}

	current := root
	length := 0

	for i := 0; i < len(pattern); {
		r, size := Decode(pattern[i:])
		i += size
		if !b.caseSensitive {
			r = Fold(r)
		}
		length++

		if next, ok := a.states[current].edges[r]; ok {
			current = int(next)
			continue
		}

		if a.states[current].edges == nil {
			a.states[current].edges = make(map[rune]int32)
		}
		next := len(a.states)
		a.states = append(a.states, state{depth: length})
		a.states[current].edges[r] = int32(next)
		current = next
	}

	if length > a.states[current].final {
		a.states[current].final = length
	}
	if length > a.maxLen {
		a.maxLen = length
	}
	a.patterns++
}

// computeFailureLinks walks the trie breadth-first. Every state's failure
// target is shallower than the state itself, so it is always finished
// before its dependents; this lets final and lookback propagate in the
// same pass.
func (b *Builder) computeFailureLinks(a *Automaton) {
	queue := make([]int, 0, len(a.states))

	for _, child := range a.states[root].edges {
		a.states[child].fail = root
		queue = append(queue, int(child))
	}

	for head := 0; head < len(queue); head++ {
		current := queue[head]

		for char, child := range a.states[current].edges {
			queue = append(queue, int(child))

			failState := int(a.states[current].fail)
			for failState != root {
				if _, ok := a.states[failState].edges[char]; ok {
					break
				}
				failState = int(a.states[failState].fail)
			}

			target := root
			if next, ok := a.states[failState].edges[char]; ok && int(next) != int(child) {
				target = int(next)
			}
			a.states[child].fail = int32(target)

			// A shorter pattern that is a suffix of this path is folded
			// into the longest-match report here.
			if a.states[target].final > a.states[child].final {
				a.states[child].final = a.states[target].final
			}
		}

		b.assignLookback(a, current)
	}
}

// assignLookback sets the lookback of state s from its own edges or, for
// leaves, from its failure target.
func (b *Builder) assignLookback(a *Automaton, s int) {
	if len(a.states[s].edges) > 0 {
		a.states[s].lookback = a.states[s].depth
		return
	}
	a.states[s].lookback = a.states[a.states[s].fail].lookback
}
