package runner

import (
	"time"

	"github.com/yaklabco/searchlight/pkg/highlight"
)

// FileOutcome is the result of highlighting one file.
type FileOutcome struct {
	// Path is the file that was processed, or "-" for standard input.
	Path string

	// Output is the rewritten document. Set only when Options.KeepOutput is.
	Output []byte

	// Matches lists every highlighted span in stream order.
	Matches []highlight.Match

	// MatchCount is the number of primary-phrase spans. It is zero when the
	// secondary phrases were used.
	MatchCount int

	// UsesPrimary reports whether the primary phrases were matched.
	UsesPrimary bool

	// Stats are the searcher counters for the file.
	Stats highlight.Stats

	// Duration is the time spent on the file.
	Duration time.Duration

	// Error is set if the file could not be processed.
	Error error
}

// HasMatches reports whether anything was highlighted.
func (o FileOutcome) HasMatches() bool {
	return len(o.Matches) > 0
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the number of files selected for processing.
	FilesDiscovered int

	// FilesProcessed is the number of files highlighted without error.
	FilesProcessed int

	// FilesErrored is the number of files that failed.
	FilesErrored int

	// FilesWithMatches is the number of files with at least one span.
	FilesWithMatches int

	// Matches is the number of primary-phrase spans across all files.
	Matches int

	// Spans is the number of highlighted spans of either phrase set.
	Spans int

	// Tokens is the number of input tokens read.
	Tokens int

	// ForcedFlushes counts matches emitted early under stack pressure.
	ForcedFlushes int

	// Duration is the wall time of the run.
	Duration time.Duration
}

// Result is the overall runner result.
type Result struct {
	// Files holds one outcome per discovered file, in path order.
	Files []FileOutcome

	// Stats are aggregated over Files.
	Stats Stats
}

// HasMatches reports whether any file had a highlighted span.
func (r *Result) HasMatches() bool {
	if r == nil {
		return false
	}
	return r.Stats.Spans > 0
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// Errors returns the per-file errors in path order.
func (r *Result) Errors() []error {
	if r == nil {
		return nil
	}
	var errs []error
	for _, f := range r.Files {
		if f.Error != nil {
			errs = append(errs, f.Error)
		}
	}
	return errs
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesProcessed++
	r.Stats.Matches += outcome.MatchCount
	r.Stats.Spans += len(outcome.Matches)
	r.Stats.Tokens += outcome.Stats.TokensIn
	r.Stats.ForcedFlushes += outcome.Stats.ForcedFlushes

	if outcome.HasMatches() {
		r.Stats.FilesWithMatches++
	}
}

// NewResult aggregates outcomes produced outside Run, such as standard
// input or a batch of changed files.
func NewResult(outcomes ...FileOutcome) *Result {
	result := &Result{Files: make([]FileOutcome, 0, len(outcomes))}
	result.Stats.FilesDiscovered = len(outcomes)
	for _, outcome := range outcomes {
		result.accumulate(outcome)
		result.Stats.Duration += outcome.Duration
	}
	return result
}
