// Package cli provides the Cobra command structure for mdconv.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdconv/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	debug      bool
	configPath string
	noConfig   bool
	color      string
}

// NewRootCommand creates the root mdconv command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "mdconv",
		Short: "Convert Markdown to HTML or a JSON syntax tree",
		Long: `mdconv converts Markdown to HTML and to a JSON-encoded syntax tree.

Both outputs come from one parser configuration: GitHub Flavored Markdown
plus footnotes, alerts, math, spoilers, sub- and superscript, highlights,
emoji shortcodes and more. The configuration is read from .mdconv.yml,
the user config directory, --config and MDCONV_* environment variables.`,
		Args: usageArgs(cobra.NoArgs),
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := "info"
			if flags.debug {
				level = "debug"
				logging.SetLevel(level)
			}
			logger := logging.NewWithWriter(cmd.ErrOrStderr(), level)
			cmd.SetContext(logging.With(logging.WithLogger(cmd.Context(), logger),
				logging.FieldCommand, cmd.Name()))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&flags.noConfig, "no-config", false,
		"ignore user and project config files")
	rootCmd.PersistentFlags().StringVar(&flags.color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrUsage, err)
	})

	rootCmd.AddCommand(newHTMLCommand(flags))
	rootCmd.AddCommand(newASTCommand(flags))
	rootCmd.AddCommand(newTreeCommand(flags))
	rootCmd.AddCommand(newMetaCommand(flags))
	rootCmd.AddCommand(newBuildCommand(flags))
	rootCmd.AddCommand(newOptionsCommand(flags))
	rootCmd.AddCommand(newInitCommand(flags))
	rootCmd.AddCommand(newVersionCommand(info))

	installHelp(rootCmd, &flags.color)

	return rootCmd
}

// usageArgs tags argument validation failures as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		return nil
	}
}
