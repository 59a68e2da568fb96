package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/searchlight/internal/configloader"
	"github.com/yaklabco/searchlight/internal/logging"
	"github.com/yaklabco/searchlight/pkg/config"
	"github.com/yaklabco/searchlight/pkg/fsutil"
	"github.com/yaklabco/searchlight/pkg/highlight"
	"github.com/yaklabco/searchlight/pkg/reporter"
	"github.com/yaklabco/searchlight/pkg/runner"
	"github.com/yaklabco/searchlight/pkg/search"
)

// searchFlags are the flags shared by highlight and watch.
type searchFlags struct {
	format          string
	jobs            int
	outputDir       string
	inputType       string
	flavor          string
	ignore          []string
	extensions      []string
	primary         []string
	secondary       []string
	caseSensitive   bool
	secondaryCase   bool
	color           string
	bold            bool
	transparentTags []string
	followSymlinks  bool
	compact         bool
	noSummary       bool
	width           int
}

func addSearchFlags(cmd *cobra.Command, flags *searchFlags) {
	f := cmd.Flags()
	f.StringVarP(&flags.format, "format", "f", "", "output format: html, text, json, list, summary")
	f.IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	f.StringVarP(&flags.outputDir, "output-dir", "o", "", "write highlighted documents under this directory")
	f.StringVar(&flags.inputType, "input-type", "", "force the input type: html, markdown, text")
	f.StringVar(&flags.flavor, "flavor", "commonmark", "Markdown flavor: commonmark, gfm")
	f.StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	f.StringSliceVar(&flags.extensions, "extensions", nil, "file extensions to search in directories")
	f.StringSliceVarP(&flags.primary, "primary", "p", nil, "primary search phrases")
	f.StringSliceVarP(&flags.secondary, "secondary", "s", nil, "secondary phrases, used when no primary phrase is set")
	f.BoolVar(&flags.caseSensitive, "case-sensitive", false, "match primary phrases case-sensitively")
	f.BoolVar(&flags.secondaryCase, "secondary-case-sensitive", false, "match secondary phrases case-sensitively")
	f.StringVar(&flags.color, "highlight-color", "", "highlight color (default red)")
	f.BoolVar(&flags.bold, "bold", false, "wrap highlights in <b>")
	f.StringSliceVar(&flags.transparentTags, "transparent-tags", nil, "inline elements that do not interrupt a match")
	f.BoolVar(&flags.followSymlinks, "follow-symlinks", false, "follow symbolic links to directories")
	f.BoolVar(&flags.compact, "compact", false, "use compact JSON output")
	f.BoolVar(&flags.noSummary, "no-summary", false, "omit the summary after text and list output")
	f.IntVar(&flags.width, "width", 0, "terminal width for text, list and summary output (0 = detect)")
}

// cliConfig builds the highest-precedence config layer. Only flags given
// on the command line are set, so lower layers show through.
func (f *searchFlags) cliConfig(cmd *cobra.Command) *config.Config {
	changed := cmd.Flags().Changed

	cfg := &config.Config{
		Format:    config.OutputFormat(f.format),
		Jobs:      f.jobs,
		OutputDir: f.outputDir,
		InputType: config.InputType(f.inputType),
	}
	if changed("flavor") {
		cfg.MarkdownFlavor = config.Flavor(f.flavor)
	}
	if changed("ignore") {
		cfg.Ignore = f.ignore
	}
	if changed("extensions") {
		cfg.Extensions = normalizeExtensions(f.extensions)
	}
	if changed("primary") {
		cfg.Search.PrimaryTerms = f.primary
	}
	if changed("secondary") {
		cfg.Search.SecondaryTerms = f.secondary
	}
	if changed("case-sensitive") {
		cfg.Search.PrimaryCaseSensitive = config.Bool(f.caseSensitive)
	}
	if changed("secondary-case-sensitive") {
		cfg.Search.SecondaryCaseSensitive = config.Bool(f.secondaryCase)
	}
	if changed("highlight-color") {
		cfg.Highlight.Color = f.color
	}
	if changed("bold") {
		cfg.Highlight.Bold = config.Bool(f.bold)
	}
	if changed("transparent-tags") {
		cfg.TransparentTags = f.transparentTags
	}
	return cfg
}

// normalizeExtensions lowercases extensions and adds the leading dot, so
// "--extensions md,HTML" works.
func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}

// session is the resolved state of one highlight or watch invocation.
type session struct {
	cmd     *cobra.Command
	flags   *searchFlags
	cfg     *config.Config
	workDir string
	search  *search.Search
	runner  *runner.Runner
	logger  *log.Logger
}

func newSession(cmd *cobra.Command, flags *searchFlags) (*session, error) {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    flags.cliConfig(cmd),
	})
	if err != nil {
		return nil, withExitCode(ExitConfigError, errors.Join(errors.New("failed to load configuration"), err))
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldPrimaryTerms, cfg.Search.PrimaryTerms,
		logging.FieldSecondaryTerms, cfg.Search.SecondaryTerms,
		logging.FieldCaseSensitive, cfg.PrimaryCaseSensitive(),
		logging.FieldFlavor, cfg.MarkdownFlavor,
		logging.FieldJobs, cfg.Jobs,
	)

	s := search.FromConfig(cfg, search.WithLogger(logger))
	return &session{
		cmd:     cmd,
		flags:   flags,
		cfg:     cfg,
		workDir: workDir,
		search:  s,
		runner:  runner.New(s),
		logger:  logger,
	}, nil
}

func (s *session) runOptions(paths []string) runner.Options {
	opts := runner.OptionsFromConfig(s.cfg, paths)
	opts.WorkingDir = s.workDir
	opts.FollowSymlinks = s.flags.followSymlinks
	opts.Logger = s.logger
	return opts
}

// stdinOptions defaults standard input to HTML, since it has no extension
// to detect from.
func (s *session) stdinOptions() runner.Options {
	opts := s.runOptions(nil)
	if opts.InputType == config.InputAuto {
		opts.InputType = config.InputHTML
	}
	return opts
}

func (s *session) reporter(format config.OutputFormat) (reporter.Reporter, error) {
	colorMode, err := s.cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      s.cmd.OutOrStdout(),
		ErrorWriter: s.cmd.ErrOrStderr(),
		Format:      format,
		Color:       colorMode,
		Style:       highlight.Style{Color: s.cfg.Highlight.Color, Bold: s.cfg.Bold()},
		ShowSummary: !s.flags.noSummary,
		Compact:     s.flags.compact,
		Width:       s.flags.width,
		WorkingDir:  s.workDir,
	})
	if err != nil {
		return nil, withExitCode(ExitInvalidUsage, fmt.Errorf("create reporter: %w", err))
	}
	return rep, nil
}

// writeOutputs mirrors every highlighted document under the output
// directory. Unchanged files are left alone.
func (s *session) writeOutputs(ctx context.Context, result *runner.Result) error {
	for _, file := range result.Files {
		if file.Error != nil {
			continue
		}
		dest, written, err := fsutil.WriteOutput(ctx, s.cfg.OutputDir, s.workDir, file.Path, file.Output)
		if err != nil {
			return withExitCode(ExitIOError, err)
		}
		s.logger.Debug("wrote highlighted document",
			logging.FieldPath, file.Path,
			logging.FieldOutput, dest,
			"changed", written,
		)
	}
	return nil
}

// deliver writes or reports a finished result. With an output directory
// the documents go to files and an html format falls back to summary.
func (s *session) deliver(ctx context.Context, result *runner.Result, format config.OutputFormat) error {
	if s.cfg.OutputDir != "" {
		if err := s.writeOutputs(ctx, result); err != nil {
			return err
		}
		if format == config.FormatHTML {
			format = config.FormatSummary
		}
	}

	rep, err := s.reporter(format)
	if err != nil {
		return err
	}
	if _, err := rep.Report(ctx, result); err != nil {
		return withExitCode(ExitIOError, fmt.Errorf("report results: %w", err))
	}
	return nil
}
