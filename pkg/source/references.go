package source

import (
	"strings"

	"github.com/yaklabco/searchlight/pkg/token"
)

// maxReferenceLen bounds how far past '&' a reference terminator is sought.
const maxReferenceLen = 32

// splitReferences appends raw to dst as text tokens, cutting out each
// character reference ("&amp;", "&#233;", "&#x1F600;") as a tag token so
// that a highlight never lands inside one.
func splitReferences(dst []token.Token, raw string, offset int) []token.Token {
	start := 0
	for i := 0; i < len(raw); {
		amp := strings.IndexByte(raw[i:], '&')
		if amp < 0 {
			break
		}
		amp += i

		n := referenceLen(raw[amp:])
		if n == 0 {
			i = amp + 1
			continue
		}

		if amp > start {
			dst = append(dst, token.Text(raw[start:amp], offset+start))
		}
		dst = append(dst, token.Tag(raw[amp:amp+n], offset+amp))
		start = amp + n
		i = start
	}

	if start < len(raw) {
		dst = append(dst, token.Text(raw[start:], offset+start))
	}
	return dst
}

// referenceLen returns the length of the character reference at the start
// of s, or 0 if s does not start with one.
func referenceLen(s string) int {
	if len(s) < 3 || s[0] != '&' {
		return 0
	}

	i := 1
	valid := isAlnum
	if s[i] == '#' {
		i++
		valid = isDecimal
		if i < len(s) && (s[i] == 'x' || s[i] == 'X') {
			i++
			valid = isHex
		}
	}

	begin := i
	for i < len(s) && i < maxReferenceLen && valid(s[i]) {
		i++
	}
	if i == begin || i >= len(s) || s[i] != ';' {
		return 0
	}
	return i + 1
}

func isDecimal(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHex(c byte) bool {
	return isDecimal(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isAlnum(c byte) bool {
	return isDecimal(c) || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
