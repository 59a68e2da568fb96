package configloader

import "github.com/yaklabco/searchlight/pkg/config"

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Strings and integers: override wins when non-zero
//   - Optional booleans: override wins when set, so false can be configured
//   - Slices: override replaces base entirely if override is non-nil
//   - Nil/unset values in override do not override values in base
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	mergeSearch(&result.Search, override.Search)

	if override.Highlight.Color != "" {
		result.Highlight.Color = override.Highlight.Color
	}
	if override.Highlight.Bold != nil {
		result.Highlight.Bold = override.Highlight.Bold
	}

	if override.MarkdownFlavor != "" {
		result.MarkdownFlavor = override.MarkdownFlavor
	}
	if override.TransparentTags != nil {
		result.TransparentTags = override.TransparentTags
	}
	if override.Extensions != nil {
		result.Extensions = override.Extensions
	}
	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	// CLI-only fields.
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.OutputDir != "" {
		result.OutputDir = override.OutputDir
	}
	if override.InputType != "" {
		result.InputType = override.InputType
	}

	return result
}

func mergeSearch(result *config.SearchConfig, override config.SearchConfig) {
	if override.PrimaryTerms != nil {
		result.PrimaryTerms = override.PrimaryTerms
	}
	if override.PrimaryCaseSensitive != nil {
		result.PrimaryCaseSensitive = override.PrimaryCaseSensitive
	}
	if override.SecondaryTerms != nil {
		result.SecondaryTerms = override.SecondaryTerms
	}
	if override.SecondaryCaseSensitive != nil {
		result.SecondaryCaseSensitive = override.SecondaryCaseSensitive
	}
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
