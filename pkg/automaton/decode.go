package automaton

import (
	"unicode"
	"unicode/utf8"
)

// opaqueBase maps a malformed byte into the low-surrogate range. Surrogates
// are never produced by UTF-8 decoding, so an opaque unit only compares
// equal to the same malformed byte.
const opaqueBase = 0xDC00

// Decode returns the first code point of s and its width in bytes.
// A byte that does not start a valid UTF-8 sequence decodes to a single
// opaque unit of width 1 instead of failing.
func Decode(s string) (rune, int) {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		if size == 0 {
			return utf8.RuneError, 0
		}
		return opaqueBase | rune(s[0]), 1
	}
	return r, size
}

// IsOpaque reports whether r is a unit produced by Decode for a malformed
// byte.
func IsOpaque(r rune) bool {
	return r >= opaqueBase && r <= opaqueBase|0xFF
}

// Fold maps r to its case-insensitive comparison form.
func Fold(r rune) rune {
	if r < utf8.RuneSelf {
		if 'A' <= r && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}
	if IsOpaque(r) {
		return r
	}
	return unicode.ToLower(r)
}
