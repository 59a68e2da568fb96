package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/searchlight/pkg/runner"
)

// jsonVersion identifies the JSON document layout.
const jsonVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path        string      `json:"path"`
	Matches     []JSONMatch `json:"matches"`
	MatchCount  int         `json:"matchCount"`
	UsesPrimary bool        `json:"usesPrimary"`
	Error       string      `json:"error,omitempty"`
}

// JSONMatch is one highlighted span in input byte offsets.
type JSONMatch struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesSearched    int `json:"filesSearched"`
	FilesWithMatches int `json:"filesWithMatches"`
	FilesErrored     int `json:"filesErrored"`
	TotalMatches     int `json:"totalMatches"`
	TotalSpans       int `json:"totalSpans"`
	ForcedFlushes    int `json:"forcedFlushes"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.TotalSpans, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonVersion,
		Files:   make([]JSONFileResult, 0),
	}

	if result == nil {
		return output
	}

	for _, file := range result.Files {
		fileResult := JSONFileResult{
			Path:        displayPath(file.Path, r.opts.WorkingDir),
			Matches:     make([]JSONMatch, 0, len(file.Matches)),
			MatchCount:  file.MatchCount,
			UsesPrimary: file.UsesPrimary,
		}

		if file.Error != nil {
			fileResult.Error = file.Error.Error()
			output.Summary.FilesErrored++
		} else {
			output.Summary.FilesSearched++
		}

		for _, m := range file.Matches {
			fileResult.Matches = append(fileResult.Matches, JSONMatch{Start: m.Start, End: m.End, Text: m.Text})
		}

		if len(fileResult.Matches) > 0 {
			output.Summary.FilesWithMatches++
		}
		output.Summary.TotalMatches += file.MatchCount
		output.Summary.TotalSpans += len(file.Matches)
		output.Summary.ForcedFlushes += file.Stats.ForcedFlushes

		output.Files = append(output.Files, fileResult)
	}

	return output
}
