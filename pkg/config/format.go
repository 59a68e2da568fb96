package config

import (
	"fmt"
	"strings"
)

// Formats returns every supported output format, in display order.
func Formats() []OutputFormat {
	return []OutputFormat{FormatHTML, FormatText, FormatJSON, FormatList, FormatSummary}
}

// ParseFormat converts a user-supplied name to an OutputFormat.
func ParseFormat(name string) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(strings.TrimSpace(name)))
	if !format.IsValid() {
		return "", fmt.Errorf("unknown output format %q (valid: %s)", name, joinFormats())
	}
	return format, nil
}

func joinFormats() string {
	names := make([]string, 0, len(Formats()))
	for _, f := range Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, ", ")
}
