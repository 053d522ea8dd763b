package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdconv/internal/configloader"
	"github.com/yaklabco/mdconv/internal/logging"
	"github.com/yaklabco/mdconv/internal/ui/pretty"
	"github.com/yaklabco/mdconv/pkg/convert"
	"github.com/yaklabco/mdconv/pkg/runner"
)

// buildFlags holds the flags for the build command.
type buildFlags struct {
	format         string
	outDir         string
	jobs           int
	exclude        []string
	extensions     []string
	followSymlinks bool
	quiet          bool
}

func newBuildCommand(global *globalFlags) *cobra.Command {
	flags := &buildFlags{}

	cmd := &cobra.Command{
		Use:   "build [path...]",
		Short: "Convert every Markdown file under the given paths",
		Long: `Convert Markdown files and directories in one run. Directories are walked
recursively, skipping hidden entries. Each input gets an .html (or, with
--format ast, a .json) file next to it, or below --out-dir mirroring the
source layout. Outputs whose content is unchanged are not rewritten.

Examples:
  mdconv build                       Convert everything below the current directory
  mdconv build docs -d site          Write docs/**/*.md as site/docs/**/*.html
  mdconv build --format ast README.md
  mdconv build --exclude 'vendor/**' --jobs 4`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, global, flags, args)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", string(runner.FormatHTML), "output format: html, ast")
	cmd.Flags().StringVarP(&flags.outDir, "out-dir", "d", "", "write outputs below this directory")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "files converted at once (0 uses all CPUs)")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "glob of files or directories to skip (repeatable)")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil,
		"Markdown file extensions (default "+strings.Join(runner.DefaultExtensions(), ",")+")")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "walk into symlinked directories")
	cmd.Flags().BoolVarP(&flags.quiet, "quiet", "q", false, "print only the summary")

	return cmd
}

func runBuild(cmd *cobra.Command, global *globalFlags, flags *buildFlags, args []string) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	format, err := runner.ParseFormat(flags.format)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	}

	loaded, err := loadConfig(ctx, global)
	if err != nil {
		return err
	}
	conv, err := convert.New(loaded.Options)
	if err != nil {
		return fmt.Errorf("%w: %w", configloader.ErrInvalidConfig, err)
	}

	result, err := runner.New(conv).Run(ctx, runner.Options{
		Paths:          args,
		Extensions:     flags.extensions,
		ExcludeGlobs:   flags.exclude,
		FollowSymlinks: flags.followSymlinks,
		OutputDir:      flags.outDir,
		Format:         format,
		Jobs:           flags.jobs,
	})
	if err != nil {
		if errors.Is(err, runner.ErrInvalidPattern) {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		return err
	}

	w := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(global.color, w))

	var out strings.Builder
	for _, outcome := range result.Files {
		logger.Debug("converted",
			logging.FieldInput, outcome.Path,
			logging.FieldOutput, outcome.Target,
			logging.FieldBytes, outcome.BytesOut,
			logging.FieldWritten, outcome.Written,
		)
		if !flags.quiet || outcome.Error != nil {
			out.WriteString(styles.FormatOutcome(outcome))
		}
	}
	out.WriteString(styles.FormatRunSummary(result.Stats))

	if _, err := fmt.Fprint(w, out.String()); err != nil {
		return fmt.Errorf("write stdout: %w", err)
	}

	if result.HasFailures() {
		return fmt.Errorf("%d of %d files failed: %w",
			result.Stats.FilesErrored, result.Stats.FilesDiscovered, result.Err())
	}
	return nil
}
