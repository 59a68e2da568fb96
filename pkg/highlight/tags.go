package highlight

import "strings"

// defaultTransparentTags are inline styling elements that do not interrupt
// a match in progress.
//
//nolint:gochecknoglobals // Read-only lookup table.
var defaultTransparentTags = []string{
	"b", "i", "u", "s", "tt", "em", "strong", "font", "small", "big",
	"strike", "cite", "kbd", "var", "dfn", "code", "samp", "abbr",
	"acronym", "ins", "del", "span", "sub", "sup",
}

// DefaultTransparentTags returns a copy of the built-in transparent tag names.
func DefaultTransparentTags() []string {
	names := make([]string, len(defaultTransparentTags))
	copy(names, defaultTransparentTags)
	return names
}

// TagSet is a set of lowercase element names.
type TagSet map[string]struct{}

// NewTagSet builds a set from element names, ignoring case and blanks.
func NewTagSet(names ...string) TagSet {
	set := make(TagSet, len(names))
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" {
			set[name] = struct{}{}
		}
	}
	return set
}

// Contains reports whether name is in the set.
func (s TagSet) Contains(name string) bool {
	if name == "" {
		return false
	}
	_, ok := s[name]
	return ok
}
