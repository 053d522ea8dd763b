package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdconv/internal/configloader"
	"github.com/yaklabco/mdconv/internal/logging"
	"github.com/yaklabco/mdconv/pkg/options"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force     bool
	effective bool
	output    string
}

func newInitCommand(global *globalFlags) *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a .mdconv.yml configuration file",
		Long: `Create a .mdconv.yml file in the current directory holding every option
with its default value, ready to edit.

Examples:
  mdconv init                     Write the defaults to .mdconv.yml
  mdconv init --effective         Write the currently effective options
  mdconv init -o docs/.mdconv.yml Write to another path`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, global, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.effective, "effective", false,
		"write the options resolved from existing config files and environment")
	cmd.Flags().StringVarP(&flags.output, "output", "o", configloader.ProjectConfigName, "output file path")

	return cmd
}

func runInit(cmd *cobra.Command, global *globalFlags, flags *initFlags) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("file %q already exists; use --force to overwrite", flags.output)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	}

	opts := options.Default()
	if flags.effective {
		loaded, err := loadConfig(ctx, global)
		if err != nil {
			return err
		}
		opts = loaded.Options
	}

	if err := configloader.WriteProjectConfig(ctx, absPath, opts); err != nil {
		return err
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	return nil
}
