package pretty_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mdconv/internal/ui/pretty"
	"github.com/yaklabco/mdconv/pkg/runner"
)

func TestFormatRunSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{"nothing found", runner.Stats{}, "No Markdown files found\n"},
		{
			"all converted",
			runner.Stats{FilesDiscovered: 3, FilesConverted: 3, FilesWritten: 2, FilesUnchanged: 1},
			"Converted 3 files (2 written, 1 unchanged)\n",
		},
		{
			"with failure",
			runner.Stats{FilesDiscovered: 2, FilesConverted: 1, FilesWritten: 1, FilesErrored: 1},
			"Converted 1 file (1 written, 0 unchanged), 1 file failed\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatRunSummary(tt.stats))
		})
	}
}

func TestFormatOutcome(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	assert.Equal(t, "✓ a.md → a.html\n",
		styles.FormatOutcome(runner.FileOutcome{Path: "a.md", Target: "a.html", Written: true}))
	assert.Equal(t, "= a.md (unchanged)\n",
		styles.FormatOutcome(runner.FileOutcome{Path: "a.md", Target: "a.html"}))
	assert.Equal(t, "✗ b.md: boom\n",
		styles.FormatOutcome(runner.FileOutcome{Path: "b.md", Error: errors.New("boom")}))
}
