// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldConfigFile = "config_file"

	// Search fields.
	FieldPrimaryTerms   = "primary_terms"
	FieldSecondaryTerms = "secondary_terms"
	FieldCaseSensitive  = "case_sensitive"
	FieldUsesPrimary    = "uses_primary"

	// Run fields.
	FieldFormat    = "format"
	FieldJobs      = "jobs"
	FieldInputType = "input_type"
	FieldFlavor    = "flavor"

	// Statistics fields.
	FieldFilesDiscovered  = "files_discovered"
	FieldFilesProcessed   = "files_processed"
	FieldFilesWithMatches = "files_with_matches"
	FieldMatches          = "matches"
	FieldTokens           = "tokens"
	FieldForcedFlushes    = "forced_flushes"
	FieldDuration         = "duration"

	// Watch fields.
	FieldEvent = "event"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
