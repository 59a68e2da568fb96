package configloader

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/yaklabco/searchlight/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "search.primary_terms[2]").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., duplicate terms).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) addError(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) addWarning(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// colorPattern accepts color keywords and #rgb / #rrggbb hex values.
//
//nolint:gochecknoglobals // Compiled once.
var colorPattern = regexp.MustCompile(`^(?:[A-Za-z]+|#[0-9A-Fa-f]{3}|#[0-9A-Fa-f]{6})$`)

// tagNamePattern matches a bare HTML element name.
//
//nolint:gochecknoglobals // Compiled once.
var tagNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9:-]*$`)

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	validateTerms("search.primary_terms", cfg.Search.PrimaryTerms, result)
	validateTerms("search.secondary_terms", cfg.Search.SecondaryTerms, result)

	if cfg.Highlight.Color != "" && !colorPattern.MatchString(cfg.Highlight.Color) {
		result.addError("highlight.color", cfg.Highlight.Color,
			"invalid color %q; use a color name or #rgb / #rrggbb", cfg.Highlight.Color)
	}

	if cfg.MarkdownFlavor != "" && !cfg.MarkdownFlavor.IsValid() {
		result.addError("markdown_flavor", cfg.MarkdownFlavor,
			"invalid flavor %q; must be one of: commonmark, gfm", cfg.MarkdownFlavor)
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.addError("format", cfg.Format,
			"invalid format %q; must be one of: html, text, json, list, summary", cfg.Format)
	}

	if !cfg.InputType.IsValid() {
		result.addError("input_type", cfg.InputType,
			"invalid input type %q; must be one of: html, markdown, text", cfg.InputType)
	}

	if cfg.Jobs < 0 {
		result.addError("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)")
	}

	for i, name := range cfg.TransparentTags {
		if !tagNamePattern.MatchString(strings.TrimSpace(name)) {
			result.addError(fmt.Sprintf("transparent_tags[%d]", i), name, "invalid element name %q", name)
		}
	}

	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			result.addError(fmt.Sprintf("extensions[%d]", i), ext, "extension %q must start with a dot", ext)
		}
	}

	validateIgnorePatterns(cfg, result)

	return result
}

// validateTerms rejects blank phrases and warns about duplicates.
func validateTerms(field string, terms []string, result *ValidationResult) {
	seen := make(map[string]int, len(terms))
	for i, term := range terms {
		name := fmt.Sprintf("%s[%d]", field, i)
		if strings.TrimSpace(term) == "" {
			result.addError(name, term, "search term must not be empty")
			continue
		}
		if first, ok := seen[term]; ok {
			result.addWarning(name, term, "duplicate of %s[%d]", field, first)
			continue
		}
		seen[term] = i
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		// filepath.Match returns an error only for malformed patterns
		if _, err := filepath.Match(pattern, ""); err != nil {
			result.addError(fmt.Sprintf("ignore[%d]", i), pattern, "invalid glob pattern: %v", err)
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}
