package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/searchlight/pkg/config"
)

// isolatedOptions returns options that only see files under tmpDir.
func isolatedOptions(tmpDir string) LoadOptions {
	return LoadOptions{
		WorkingDir: tmpDir,
		SystemDir:  filepath.Join(tmpDir, "etc"),
		UserDir:    filepath.Join(tmpDir, "xdg"),
		Getenv:     func(string) string { return "" },
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()

	result, err := Load(context.Background(), isolatedOptions(tmpDir))
	require.NoError(t, err)
	require.NotNil(t, result.Config)

	assert.Equal(t, config.FlavorCommonMark, result.Config.MarkdownFlavor)
	assert.Equal(t, config.FormatHTML, result.Config.Format)
	assert.Equal(t, "red", result.Config.Highlight.Color)
	assert.Empty(t, result.LoadedFrom)
	assert.Contains(t, result.Warnings, "no search terms configured; input passes through unchanged")
}

func TestLoad_ProjectConfig(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".searchlight.yml"), `
search:
  primary_terms: [lahey]
markdown_flavor: gfm
`)

	result, err := Load(context.Background(), isolatedOptions(tmpDir))
	require.NoError(t, err)

	assert.Equal(t, config.FlavorGFM, result.Config.MarkdownFlavor)
	assert.Equal(t, []string{"lahey"}, result.Config.Search.PrimaryTerms)
	assert.Equal(t, "red", result.Config.Highlight.Color, "defaults survive")
	assert.Len(t, result.LoadedFrom, 1)
	assert.Empty(t, result.Warnings)
}

func TestLoad_ProjectConfigFoundUpward(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755))
	writeFile(t, filepath.Join(tmpDir, ".searchlight.yaml"), "search:\n  primary_terms: [x]\n")

	nested := filepath.Join(tmpDir, "docs", "guide")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	path, err := FindProjectConfig(context.Background(), nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, ".searchlight.yaml"), path)
}

func TestFindProjectConfig_StopsAtVCSRoot(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".searchlight.yml"), "search: {}\n")

	repo := filepath.Join(tmpDir, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))

	path, err := FindProjectConfig(context.Background(), repo)
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestLoad_Precedence(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	opts := isolatedOptions(tmpDir)

	writeFile(t, filepath.Join(opts.SystemDir, "config.yaml"), `
highlight:
  color: blue
  bold: true
search:
  primary_terms: [system]
`)
	writeFile(t, filepath.Join(opts.UserDir, "config.yml"), `
search:
  primary_terms: [user]
  primary_case_sensitive: true
`)
	writeFile(t, filepath.Join(tmpDir, ".searchlight.yml"), `
search:
  primary_terms: [project]
`)
	explicit := filepath.Join(tmpDir, "custom.yml")
	writeFile(t, explicit, `
highlight:
  color: green
`)

	opts.ExplicitPath = explicit
	opts.Getenv = func(name string) string {
		if name == "SEARCHLIGHT_BOLD" {
			return "false"
		}
		return ""
	}
	opts.CLIConfig = &config.Config{
		Search: config.SearchConfig{PrimaryTerms: []string{"cli"}},
		Format: config.FormatJSON,
	}

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)

	cfg := result.Config
	assert.Equal(t, []string{"cli"}, cfg.Search.PrimaryTerms)
	assert.True(t, cfg.PrimaryCaseSensitive(), "user layer sets case sensitivity")
	assert.Equal(t, "green", cfg.Highlight.Color, "explicit file beats system")
	assert.False(t, cfg.Bold(), "environment can turn bold off")
	assert.Equal(t, config.FormatJSON, cfg.Format)
	assert.Len(t, result.LoadedFrom, 4)
	assert.Equal(t, explicit, result.Paths.Explicit)
}

func TestLoad_IgnoreLayers(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	opts := isolatedOptions(tmpDir)
	writeFile(t, filepath.Join(opts.UserDir, "config.yaml"), "highlight:\n  color: blue\n")
	writeFile(t, filepath.Join(tmpDir, ".searchlight.yml"), "highlight:\n  color: green\n")

	opts.IgnoreUserConfig = true
	opts.IgnoreProjectConfig = true

	result, err := Load(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, "red", result.Config.Highlight.Color)
	assert.Empty(t, result.LoadedFrom)
}

func TestLoad_InvalidFileReportsPath(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, ".searchlight.yml")
	writeFile(t, path, "markdown_flavor: asciidoc\n")

	_, err := Load(context.Background(), isolatedOptions(tmpDir))
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, path, validationErr.FilePath)
	assert.Equal(t, "markdown_flavor", validationErr.Field)
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, ".searchlight.yml"), "search: [oops\n")

	_, err := Load(context.Background(), isolatedOptions(tmpDir))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load project config")
}

func TestLoad_InvalidEnvironment(t *testing.T) {
	t.Parallel()

	opts := isolatedOptions(t.TempDir())
	opts.Getenv = func(name string) string {
		if name == "SEARCHLIGHT_JOBS" {
			return "many"
		}
		return ""
	}

	_, err := Load(context.Background(), opts)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SEARCHLIGHT_JOBS")
}

func TestLoad_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolatedOptions(t.TempDir()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestLoadFromEnv(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"SEARCHLIGHT_PRIMARY_TERMS":            "lahey, chris ,",
		"SEARCHLIGHT_SECONDARY_CASE_SENSITIVE": "1",
		"SEARCHLIGHT_COLOR":                    "#00ff00",
		"SEARCHLIGHT_TRANSPARENT_TAGS":         "b,mark",
		"SEARCHLIGHT_MARKDOWN_FLAVOR":          "gfm",
		"SEARCHLIGHT_FORMAT":                   "list",
		"SEARCHLIGHT_JOBS":                     "3",
		"SEARCHLIGHT_INPUT_TYPE":               "text",
	}

	cfg := config.NewConfig()
	require.NoError(t, loadFromEnv(cfg, func(name string) string { return env[name] }))

	assert.Equal(t, []string{"lahey", "chris"}, cfg.Search.PrimaryTerms)
	assert.True(t, cfg.SecondaryCaseSensitive())
	assert.Equal(t, "#00ff00", cfg.Highlight.Color)
	assert.Equal(t, []string{"b", "mark"}, cfg.TransparentTags)
	assert.Equal(t, config.FlavorGFM, cfg.MarkdownFlavor)
	assert.Equal(t, config.FormatList, cfg.Format)
	assert.Equal(t, 3, cfg.Jobs)
	assert.Equal(t, config.InputText, cfg.InputType)
}

func TestLoadFromEnv_InvalidBool(t *testing.T) {
	t.Parallel()

	err := loadFromEnv(config.NewConfig(), func(name string) string {
		if name == "SEARCHLIGHT_BOLD" {
			return "sometimes"
		}
		return ""
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid boolean for SEARCHLIGHT_BOLD")
}

func TestEnvVarNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "SEARCHLIGHT_COLOR", GetEnvVarName("highlight.color"))
	assert.Empty(t, GetEnvVarName("nope"))

	vars := ListEnvVars()
	assert.Len(t, vars, len(envMappings))
	assert.Contains(t, vars, "SEARCHLIGHT_PRIMARY_TERMS")
}
