// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Status styles
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Match report components
	FilePath lipgloss.Style
	Location lipgloss.Style
	Match    lipgloss.Style
	Excerpt  lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Table styles
	TableHeader    lipgloss.Style
	TableMatchRow  lipgloss.Style
	TableErrorRow  lipgloss.Style
	TableSeparator lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode. Matches use
// the default highlight color.
func NewStyles(colorEnabled bool) *Styles {
	return NewStylesFor(colorEnabled, "", false)
}

// NewStylesFor creates Styles whose Match style follows the configured
// highlight color and weight.
func NewStylesFor(colorEnabled bool, color string, bold bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	styles := newColorStyles()
	styles.Match = lipgloss.NewStyle().Foreground(TerminalColor(color)).Bold(bold).Underline(true)
	return styles
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),

		FilePath: lipgloss.NewStyle().Bold(true),
		Location: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Match:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Underline(true),
		Excerpt:  lipgloss.NewStyle().Foreground(lipgloss.Color("7")),

		SummaryTitle: lipgloss.NewStyle().Bold(true),
		SummaryValue: lipgloss.NewStyle(),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		TableHeader:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		TableMatchRow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		TableErrorRow:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		TableSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Error:          plain,
		Warning:        plain,
		Info:           plain,
		FilePath:       plain,
		Location:       plain,
		Match:          plain,
		Excerpt:        plain,
		SummaryTitle:   plain,
		SummaryValue:   plain,
		Success:        plain,
		Failure:        plain,
		TableHeader:    plain,
		TableMatchRow:  plain,
		TableErrorRow:  plain,
		TableSeparator: plain,
		Dim:            plain,
		Bold:           plain,
	}
}

// namedColors maps HTML color keywords to the nearest ANSI colors.
var namedColors = map[string]string{
	"black":   "0",
	"maroon":  "1",
	"green":   "2",
	"olive":   "3",
	"navy":    "4",
	"purple":  "5",
	"teal":    "6",
	"silver":  "7",
	"gray":    "8",
	"grey":    "8",
	"red":     "9",
	"lime":    "10",
	"yellow":  "11",
	"blue":    "12",
	"fuchsia": "13",
	"magenta": "13",
	"aqua":    "14",
	"cyan":    "14",
	"white":   "15",
	"orange":  "208",
}

// TerminalColor converts an HTML highlight color to a terminal color.
// Hex colors pass through; unknown names fall back to red.
func TerminalColor(color string) lipgloss.Color {
	color = strings.ToLower(strings.TrimSpace(color))
	if strings.HasPrefix(color, "#") {
		return lipgloss.Color(color)
	}
	if ansi, ok := namedColors[color]; ok {
		return lipgloss.Color(ansi)
	}
	return lipgloss.Color(namedColors["red"])
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
