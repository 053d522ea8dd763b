package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/mdconv/internal/configloader"
	"github.com/yaklabco/mdconv/internal/logging"
	"github.com/yaklabco/mdconv/internal/ui/pretty"
	"github.com/yaklabco/mdconv/pkg/astjson"
	"github.com/yaklabco/mdconv/pkg/convert"
	"github.com/yaklabco/mdconv/pkg/fsutil"
)

const inputUsage = "[file|-]"

// outputFlags are shared by the commands that can write to a file.
type outputFlags struct {
	output string
}

func (o *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.output, "output", "o", fsutil.StdioPath,
		"write output to this file instead of stdout")
}

func newHTMLCommand(global *globalFlags) *cobra.Command {
	out := &outputFlags{}

	cmd := &cobra.Command{
		Use:   "html " + inputUsage,
		Short: "Render Markdown to HTML",
		Long: `Render a Markdown file, or stdin, to HTML.

Examples:
  mdconv html README.md
  cat notes.md | mdconv html -o notes.html`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			conv, text, err := prepare(cmd, global, args)
			if err != nil {
				return err
			}

			html, err := conv.HTML(cmd.Context(), text)
			if err != nil {
				return fmt.Errorf("render html: %w", err)
			}
			return writeOutput(cmd, out.output, []byte(html))
		},
	}

	out.register(cmd)
	return cmd
}

func newASTCommand(global *globalFlags) *cobra.Command {
	out := &outputFlags{}
	var indent int

	cmd := &cobra.Command{
		Use:   "ast " + inputUsage,
		Short: "Print the JSON syntax tree of Markdown",
		Long: `Parse a Markdown file, or stdin, and print its syntax tree as JSON.

Every node is an object with a "type" key, the attributes of its kind and,
when it has any, a "children" array.

Examples:
  mdconv ast README.md
  mdconv ast --indent 2 README.md -o readme.json`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			if indent < 0 {
				return fmt.Errorf("%w: --indent must not be negative", ErrUsage)
			}

			conv, text, err := prepare(cmd, global, args)
			if err != nil {
				return err
			}

			doc, err := conv.AST(cmd.Context(), text)
			if err != nil {
				return fmt.Errorf("parse markdown: %w", err)
			}

			var data []byte
			if indent > 0 {
				data = astjson.MarshalIndent(doc, strings.Repeat(" ", indent))
			} else {
				data = astjson.Marshal(doc)
			}
			return writeOutput(cmd, out.output, append(data, '\n'))
		},
	}

	out.register(cmd)
	cmd.Flags().IntVar(&indent, "indent", 0, "indent JSON by this many spaces (0 prints compact JSON)")
	return cmd
}

func newTreeCommand(global *globalFlags) *cobra.Command {
	var stats bool

	cmd := &cobra.Command{
		Use:   "tree " + inputUsage,
		Short: "Show the syntax tree of Markdown as an outline",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			conv, text, err := prepare(cmd, global, args)
			if err != nil {
				return err
			}

			doc, err := conv.AST(cmd.Context(), text)
			if err != nil {
				return fmt.Errorf("parse markdown: %w", err)
			}

			w := cmd.OutOrStdout()
			styles := pretty.NewStyles(pretty.IsColorEnabled(global.color, w))
			formatter := pretty.NewTreeFormatter(styles, pretty.TerminalWidth(w))

			output := formatter.FormatTree(doc)
			if stats {
				output += "\n" + styles.FormatSummary(pretty.CollectStats(doc))
			}

			if _, err := fmt.Fprint(w, output); err != nil {
				return fmt.Errorf("write stdout: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&stats, "stats", false, "print node counts after the tree")
	return cmd
}

func newMetaCommand(global *globalFlags) *cobra.Command {
	out := &outputFlags{}

	cmd := &cobra.Command{
		Use:   "meta " + inputUsage,
		Short: "Print the YAML front matter of Markdown",
		Long: `Decode the YAML front matter at the top of a Markdown file and print
it as YAML. Prints an empty mapping when there is no front matter.`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			conv, text, err := prepare(cmd, global, args)
			if err != nil {
				return err
			}

			data, err := conv.Metadata(cmd.Context(), text)
			if err != nil {
				return fmt.Errorf("read front matter: %w", err)
			}

			content, err := yaml.Marshal(data)
			if err != nil {
				return fmt.Errorf("encode front matter: %w", err)
			}
			return writeOutput(cmd, out.output, content)
		},
	}

	out.register(cmd)
	return cmd
}

// prepare loads the configuration, builds a converter and reads the input.
func prepare(cmd *cobra.Command, global *globalFlags, args []string) (*convert.Converter, string, error) {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	loaded, err := loadConfig(ctx, global)
	if err != nil {
		return nil, "", err
	}

	conv, err := convert.New(loaded.Options)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", configloader.ErrInvalidConfig, err)
	}

	path := fsutil.StdioPath
	if len(args) == 1 {
		path = args[0]
	}

	content, err := fsutil.ReadInput(ctx, path, cmd.InOrStdin())
	if err != nil {
		return nil, "", err
	}
	logger.Debug("read input", logging.FieldInput, path, logging.FieldBytes, len(content))

	return conv, string(content), nil
}

// loadConfig resolves the options for this run and logs where they came from.
func loadConfig(ctx context.Context, global *globalFlags) (*configloader.LoadResult, error) {
	logger := logging.FromContext(ctx)

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loaded, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:          workDir,
		ExplicitPath:        global.configPath,
		IgnoreUserConfig:    global.noConfig,
		IgnoreProjectConfig: global.noConfig,
	})
	if err != nil {
		return nil, err
	}

	for _, source := range loaded.LoadedFrom {
		logger.Debug("loaded config", logging.FieldConfigSource, source)
	}
	for _, warning := range loaded.Warnings {
		logger.Warn("config", logging.FieldWarning, warning)
	}
	return loaded, nil
}

func writeOutput(cmd *cobra.Command, path string, content []byte) error {
	written, err := fsutil.WriteOutput(cmd.Context(), path, content, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	if !fsutil.IsStdio(path) {
		logging.FromContext(cmd.Context()).Debug("wrote output",
			logging.FieldOutput, path, logging.FieldWritten, written)
	}
	return nil
}
