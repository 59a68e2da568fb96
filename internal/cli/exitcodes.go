package cli

import (
	"errors"

	"github.com/yaklabco/searchlight/internal/configloader"
	"github.com/yaklabco/searchlight/pkg/runner"
)

// Exit codes for searchlight.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitMatchesFound indicates that --fail-on-match was set and something
	// was highlighted.
	ExitMatchesFound = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// ErrMatchesFound is returned when --fail-on-match is set and a run
// highlighted at least one span.
var ErrMatchesFound = errors.New("matches found")

// ExitError attaches an exit code to an error.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func withExitCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &ExitError{Code: code, Err: err}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, ErrMatchesFound) {
		return ExitMatchesFound
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	var validationErr *configloader.ValidationError
	if errors.As(err, &validationErr) {
		return ExitConfigError
	}

	return ExitInternalError
}

// ExitCodeFromResult determines the exit code of a completed run.
func ExitCodeFromResult(result *runner.Result, failOnMatch bool) int {
	switch {
	case result.HasErrors():
		return ExitIOError
	case failOnMatch && result.HasMatches():
		return ExitMatchesFound
	default:
		return ExitSuccess
	}
}
