package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdconv/internal/configloader"
)

func newOptionsCommand(global *globalFlags) *cobra.Command {
	var env bool

	cmd := &cobra.Command{
		Use:   "options",
		Short: "Print the effective configuration",
		Long: `Print the configuration mdconv would use in the current directory, as
YAML. The output can be saved as a .mdconv.yml file.

With --env, list the environment variables that override options instead.`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()

			if env {
				_, err := fmt.Fprintln(w, strings.Join(configloader.EnvVarNames(), "\n"))
				if err != nil {
					return fmt.Errorf("write stdout: %w", err)
				}
				return nil
			}

			loaded, err := loadConfig(cmd.Context(), global)
			if err != nil {
				return err
			}

			header := "# effective mdconv configuration"
			for _, source := range loaded.LoadedFrom {
				header += "\n# loaded from " + source
			}

			content, err := loaded.Options.ToYAMLWithHeader(header)
			if err != nil {
				return fmt.Errorf("encode options: %w", err)
			}
			if _, err := w.Write(content); err != nil {
				return fmt.Errorf("write stdout: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&env, "env", false, "list the supported environment variables")
	return cmd
}
