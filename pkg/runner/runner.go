package runner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/yaklabco/searchlight/pkg/highlight"
	"github.com/yaklabco/searchlight/pkg/search"
	"github.com/yaklabco/searchlight/pkg/source"
	"github.com/yaklabco/searchlight/pkg/token"
)

// StdinPath names standard input in Paths and outcomes.
const StdinPath = "-"

// cancelCheckInterval is how many tokens are copied between context checks.
const cancelCheckInterval = 256

// Runner highlights files with clones of one Search. The compiled automata
// are shared by every worker.
type Runner struct {
	// Search is the configuration each file is highlighted with.
	Search *search.Search
}

// New creates a Runner for s.
func New(s *search.Search) *Runner {
	return &Runner{Search: s}
}

// Run discovers files under opts.Paths and highlights them concurrently.
// Outcomes are returned in path order regardless of completion order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	started := time.Now()

	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	workCh := make(chan string)
	outCh := make(chan FileOutcome)

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.worker(ctx, workCh, outCh, opts)
		}()
	}

	go func() {
		defer close(workCh)
		for _, path := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- path:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	outcomes := make(map[string]FileOutcome, len(files))
	for outcome := range outCh {
		outcomes[outcome.Path] = outcome
	}

	for _, path := range files {
		if outcome, ok := outcomes[path]; ok {
			result.accumulate(outcome)
		}
	}
	result.Stats.Duration = time.Since(started)

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}
	return result, nil
}

func (r *Runner) worker(ctx context.Context, workCh <-chan string, outCh chan<- FileOutcome, opts Options) {
	for path := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := r.ProcessFile(ctx, path, opts)

		select {
		case <-ctx.Done():
			return
		case outCh <- outcome:
		}
	}
}

// ProcessFile highlights the file at path.
func (r *Runner) ProcessFile(ctx context.Context, path string, opts Options) FileOutcome {
	f, err := os.Open(path)
	if err != nil {
		return FileOutcome{Path: path, Error: fmt.Errorf("open %s: %w", path, err)}
	}
	defer f.Close()

	return r.Process(ctx, path, f, opts)
}

// Process highlights the document read from rd. The path selects the
// tokenizer unless opts.InputType is set; for standard input pass
// StdinPath.
func (r *Runner) Process(ctx context.Context, path string, rd io.Reader, opts Options) FileOutcome {
	started := time.Now()
	outcome := FileOutcome{Path: path}

	src, err := source.ForPath(path, rd, source.Options{InputType: opts.InputType, Flavor: opts.Flavor})
	if err != nil {
		outcome.Error = fmt.Errorf("%s: %w", path, err)
		return outcome
	}

	session := r.Search.Clone(search.WithMatchHandler(func(m highlight.Match) {
		outcome.Matches = append(outcome.Matches, m)
	}))
	searcher := session.Begin(src)

	var out bytes.Buffer
	var w io.Writer = io.Discard
	if opts.KeepOutput {
		w = &out
	}

	if err := copyTokens(ctx, w, searcher); err != nil {
		outcome.Error = fmt.Errorf("%s: %w", path, err)
		return outcome
	}
	if err := src.Err(); err != nil {
		outcome.Error = fmt.Errorf("%s: %w", path, err)
		return outcome
	}

	if opts.KeepOutput {
		outcome.Output = out.Bytes()
	}
	outcome.MatchCount = session.MatchCount()
	outcome.UsesPrimary = session.UsesPrimary()
	outcome.Stats = searcher.Stats()
	outcome.Duration = time.Since(started)

	if opts.Logger != nil {
		opts.Logger.Debug("highlighted file",
			"path", path,
			"spans", len(outcome.Matches),
			"matches", outcome.MatchCount,
			"tokens", outcome.Stats.TokensIn,
			"duration", outcome.Duration)
	}
	return outcome
}

// copyTokens drains src into w, stopping early if ctx is cancelled.
func copyTokens(ctx context.Context, w io.Writer, src token.Source) error {
	for n := 0; src.HasMore(); n++ {
		if n%cancelCheckInterval == 0 && ctx.Err() != nil {
			return ctx.Err()
		}
		if _, err := io.WriteString(w, src.Next().Text); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}
