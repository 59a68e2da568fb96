package token

import "strings"

// TagName returns the lowercase element name of a tag token's raw text,
// without the leading slash of an end tag. It returns "" for comments,
// doctype declarations and anything that is not a well-formed tag opener.
func TagName(raw string) string {
	if len(raw) < 2 || raw[0] != '<' {
		return ""
	}

	i := 1
	if raw[i] == '/' {
		i++
	}

	start := i
	for i < len(raw) && isNameByte(raw[i]) {
		i++
	}
	if i == start {
		return ""
	}

	return strings.ToLower(raw[start:i])
}

// IsEndTag reports whether raw is an end tag such as "</b>".
func IsEndTag(raw string) bool {
	return len(raw) > 2 && raw[0] == '<' && raw[1] == '/'
}

func isNameByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-' || c == ':'
}
