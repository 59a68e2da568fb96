package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/searchlight/internal/logging"
	"github.com/yaklabco/searchlight/internal/watch"
	"github.com/yaklabco/searchlight/pkg/config"
	"github.com/yaklabco/searchlight/pkg/runner"
)

type watchFlags struct {
	searchFlags

	debounce time.Duration
}

func newWatchCommand() *cobra.Command {
	flags := &watchFlags{}

	cmd := &cobra.Command{
		Use:   "watch [paths...]",
		Short: "Re-highlight files whenever they change",
		Long: `Highlight the given files and directories, then watch them and
re-highlight every file whose content changes.

With --output-dir, highlighted documents are kept up to date under that
directory. Otherwise each batch of changes is reported on standard output,
as a list of matches unless --format is given.

Examples:
  searchlight watch -p todo -o build/ docs/     # Keep build/ in sync
  searchlight watch -p todo                     # Print matches as files change`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, args, flags)
		},
	}

	addSearchFlags(cmd, &flags.searchFlags)
	cmd.Flags().DurationVar(&flags.debounce, "debounce", watch.DefaultDebounce, "quiet period before a batch of changes is processed")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string, flags *watchFlags) error {
	if slices.Contains(args, runner.StdinPath) {
		return withExitCode(ExitInvalidUsage, errors.New("watch cannot read standard input"))
	}

	sess, err := newSession(cmd, &flags.searchFlags)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	format := sess.cfg.Format
	if !cmd.Flags().Changed("format") && sess.cfg.OutputDir == "" {
		format = config.FormatList
	}

	logger := logging.NewInteractive()
	if sess.logger.GetLevel() < logger.GetLevel() {
		logger.SetLevel(sess.logger.GetLevel())
	}
	sess.logger = logger

	opts := sess.runOptions(args)
	result, err := sess.runner.Run(ctx, opts)
	if err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("initial run failed: %w", err))
	}
	if err := sess.deliver(ctx, result, format); err != nil {
		return err
	}

	watcher, err := watch.New(watch.Options{
		Extensions: opts.Extensions,
		Debounce:   flags.debounce,
		Logger:     logger,
	})
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := watcher.Close(); closeErr != nil {
			logger.Debug("close watcher", logging.FieldError, closeErr)
		}
	}()

	roots := slices.Clone(opts.Paths)
	if len(roots) == 0 {
		roots = []string{"."}
	}
	for i, root := range roots {
		if !filepath.IsAbs(root) {
			roots[i] = filepath.Join(sess.workDir, root)
		}
	}
	if err := watcher.Add(roots...); err != nil {
		return withExitCode(ExitIOError, err)
	}

	logger.Info("watching for changes", logging.FieldPaths, roots)

	err = watcher.Run(ctx, func(ctx context.Context, paths []string) {
		outcomes := make([]runner.FileOutcome, 0, len(paths))
		for _, path := range paths {
			outcomes = append(outcomes, sess.runner.ProcessFile(ctx, path, opts))
		}
		batch := runner.NewResult(outcomes...)

		logger.Info("re-highlighted",
			logging.FieldFiles, len(paths),
			logging.FieldMatches, batch.Stats.Spans,
		)
		for _, fileErr := range batch.Errors() {
			logger.Error("highlight failed", logging.FieldError, fileErr)
		}
		if err := sess.deliver(ctx, batch, format); err != nil {
			logger.Error("deliver results", logging.FieldError, err)
		}
	})
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	logger.Info("stopped watching")
	return nil
}
