// Package pretty renders styled terminal output for the mdconv command line.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

const defaultTermWidth = 100

// Styles contains the lipgloss styles used by the tree dump.
type Styles struct {
	// Node tags
	BlockTag  lipgloss.Style
	InlineTag lipgloss.Style

	// Attributes
	AttrKey   lipgloss.Style
	AttrValue lipgloss.Style
	Literal   lipgloss.Style

	// Tree guides
	Guide lipgloss.Style

	// Summary
	SummaryTitle lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates Styles for the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

func newColorStyles() *Styles {
	return &Styles{
		BlockTag:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		InlineTag: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),

		AttrKey:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		AttrValue: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Literal:   lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Italic(true),

		Guide: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		SummaryTitle: lipgloss.NewStyle().Bold(true),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		BlockTag:     plain,
		InlineTag:    plain,
		AttrKey:      plain,
		AttrValue:    plain,
		Literal:      plain,
		Guide:        plain,
		SummaryTitle: plain,
		Success:      plain,
		Failure:      plain,
		Dim:          plain,
		Bold:         plain,
	}
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
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}

// TerminalWidth returns the width of the terminal behind writer, or a
// default when writer is not a terminal.
func TerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
