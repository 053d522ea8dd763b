package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdconv/pkg/runner"
)

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// FormatRunSummary formats the outcome of a batch conversion.
// Example: "Converted 3 files (2 written, 1 unchanged), 1 file failed".
func (s *Styles) FormatRunSummary(stats runner.Stats) string {
	if stats.FilesDiscovered == 0 {
		return s.Dim.Render("No Markdown files found") + "\n"
	}

	var b strings.Builder
	b.WriteString(s.Success.Render("Converted " + plural(stats.FilesConverted, "file")))
	b.WriteString(s.Dim.Render(fmt.Sprintf(" (%d written, %d unchanged)",
		stats.FilesWritten, stats.FilesUnchanged)))
	if stats.FilesErrored > 0 {
		b.WriteString(", ")
		b.WriteString(s.Failure.Render(plural(stats.FilesErrored, "file") + " failed"))
	}
	b.WriteString("\n")
	return b.String()
}

// FormatOutcome formats one line per file: the target for converted files,
// the error for failed ones.
func (s *Styles) FormatOutcome(outcome runner.FileOutcome) string {
	switch {
	case outcome.Error != nil:
		return s.Failure.Render("✗ ") + outcome.Path + s.Dim.Render(": "+outcome.Error.Error()) + "\n"
	case outcome.Written:
		return s.Success.Render("✓ ") + outcome.Path + s.Dim.Render(" → ") + outcome.Target + "\n"
	default:
		return s.Dim.Render("= "+outcome.Path+" (unchanged)") + "\n"
	}
}
