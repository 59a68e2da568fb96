package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/yaklabco/searchlight/internal/logging"
	"github.com/yaklabco/searchlight/pkg/runner"
)

type highlightFlags struct {
	searchFlags

	failOnMatch bool
}

func newHighlightCommand() *cobra.Command {
	flags := &highlightFlags{}

	cmd := &cobra.Command{
		Use:     "highlight [paths...]",
		Aliases: []string{"hl"},
		Short:   "Highlight search phrases in HTML, Markdown and text files",
		Long:    highlightLongDescription,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHighlight(cmd, args, flags)
		},
	}

	addSearchFlags(cmd, &flags.searchFlags)
	cmd.Flags().BoolVar(&flags.failOnMatch, "fail-on-match", false, "exit with status 1 when anything is highlighted")

	return cmd
}

const highlightLongDescription = `Highlight every occurrence of the configured phrases.

Matches are wrapped in <font color="..."> markup, optionally bold. Phrases
may span inline elements such as <b> or <em>, but never cross block
elements, scripts, styles or character references. Markdown is rendered to
HTML first; plain text is highlighted as is.

By default, searches .html, .htm, .xhtml, .md, .markdown and .txt files in
the current directory and subdirectories. Use "-" to read HTML from
standard input.

Examples:
  searchlight highlight -p "error,warning" docs/       # Highlight a tree
  searchlight highlight -p needle page.html > out.html # Single document
  cat page.html | searchlight highlight -p needle -    # Standard input
  searchlight highlight -p todo -o build/ .            # Mirror into build/
  searchlight highlight -p todo --format list          # One line per match
  searchlight highlight -p todo --fail-on-match        # Exit 1 on match`

func runHighlight(cmd *cobra.Command, args []string, flags *highlightFlags) error {
	if slices.Contains(args, runner.StdinPath) && len(args) > 1 {
		return withExitCode(ExitInvalidUsage, errors.New(`"-" cannot be combined with other paths`))
	}

	sess, err := newSession(cmd, &flags.searchFlags)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var result *runner.Result
	if len(args) == 1 && args[0] == runner.StdinPath {
		outcome := sess.runner.Process(ctx, runner.StdinPath, cmd.InOrStdin(), sess.stdinOptions())
		result = runner.NewResult(outcome)
	} else {
		opts := sess.runOptions(args)
		sess.logger.Debug("starting highlight run",
			logging.FieldPaths, opts.Paths,
			logging.FieldWorkingDir, opts.WorkingDir,
			logging.FieldJobs, opts.Jobs,
		)

		result, err = sess.runner.Run(ctx, opts)
		if err != nil {
			return withExitCode(ExitIOError, fmt.Errorf("highlight run failed: %w", err))
		}
	}

	sess.logger.Debug("highlight run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesWithMatches, result.Stats.FilesWithMatches,
		logging.FieldMatches, result.Stats.Matches,
		logging.FieldTokens, result.Stats.Tokens,
		logging.FieldForcedFlushes, result.Stats.ForcedFlushes,
		logging.FieldDuration, result.Stats.Duration,
	)

	if err := sess.deliver(ctx, result, sess.cfg.Format); err != nil {
		return err
	}

	switch ExitCodeFromResult(result, flags.failOnMatch) {
	case ExitIOError:
		return withExitCode(ExitIOError, errors.Join(result.Errors()...))
	case ExitMatchesFound:
		return ErrMatchesFound
	default:
		return nil
	}
}
