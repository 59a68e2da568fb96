package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/searchlight/pkg/config"
)

// envVarPrefix is the prefix for all searchlight environment variables.
const envVarPrefix = "SEARCHLIGHT_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines an environment variable to config field mapping.
type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"PRIMARY_TERMS":            {"search.primary_terms", envTypeSlice, "Comma-separated primary phrases"},
	"PRIMARY_CASE_SENSITIVE":   {"search.primary_case_sensitive", envTypeBool, "Match primary phrases case-sensitively"},
	"SECONDARY_TERMS":          {"search.secondary_terms", envTypeSlice, "Comma-separated secondary phrases"},
	"SECONDARY_CASE_SENSITIVE": {"search.secondary_case_sensitive", envTypeBool, "Match secondary phrases case-sensitively"},
	"COLOR":                    {"highlight.color", envTypeString, "Highlight color name or #rrggbb"},
	"BOLD":                     {"highlight.bold", envTypeBool, "Wrap highlights in <b>"},
	"TRANSPARENT_TAGS":         {"transparent_tags", envTypeSlice, "Comma-separated inline tags that do not break a match"},
	"MARKDOWN_FLAVOR":          {"markdown_flavor", envTypeString, "Markdown flavor: commonmark or gfm"},
	"EXTENSIONS":               {"extensions", envTypeSlice, "Comma-separated file extensions searched in directories"},
	"IGNORE":                   {"ignore", envTypeSlice, "Comma-separated list of ignore patterns"},
	"FORMAT":                   {"format", envTypeString, "Output format: html, text, json, list, or summary"},
	"JOBS":                     {"jobs", envTypeInt, "Number of parallel workers (0 = auto)"},
	"INPUT_TYPE":               {"input_type", envTypeString, "Force input type: html, markdown, or text"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with SEARCHLIGHT_ (e.g., SEARCHLIGHT_COLOR).
func LoadFromEnv(cfg *config.Config) error {
	return loadFromEnv(cfg, os.Getenv)
}

func loadFromEnv(cfg *config.Config, getenv func(string) string) error {
	if cfg == nil {
		return nil
	}

	for _, envSuffix := range sortedEnvSuffixes() {
		envVar := envVarPrefix + envSuffix
		value := getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, envMappings[envSuffix], value, envVar); err != nil {
			return err
		}
	}

	return nil
}

func sortedEnvSuffixes() []string {
	suffixes := make([]string, 0, len(envMappings))
	for suffix := range envMappings {
		suffixes = append(suffixes, suffix)
	}
	sort.Strings(suffixes)
	return suffixes
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "highlight.color":
		cfg.Highlight.Color = value
	case "markdown_flavor":
		cfg.MarkdownFlavor = config.Flavor(value)
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "input_type":
		cfg.InputType = config.InputType(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "search.primary_case_sensitive":
		cfg.Search.PrimaryCaseSensitive = config.Bool(value)
	case "search.secondary_case_sensitive":
		cfg.Search.SecondaryCaseSensitive = config.Bool(value)
	case "highlight.bold":
		cfg.Highlight.Bold = config.Bool(value)
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "search.primary_terms":
		cfg.Search.PrimaryTerms = value
	case "search.secondary_terms":
		cfg.Search.SecondaryTerms = value
	case "transparent_tags":
		cfg.TransparentTags = value
	case "extensions":
		cfg.Extensions = value
	case "ignore":
		cfg.Ignore = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns every supported environment variable with its description.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.description
	}
	return vars
}
