package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdconv/internal/ui/pretty"
)

const usageTemplate = `{{ heading "Usage:" }}
{{- if .Runnable }}
  {{ command .UseLine }}{{ end }}
{{- if .HasAvailableSubCommands }}
  {{ command .CommandPath }} [command]{{ end }}

{{- if .HasAvailableSubCommands }}

{{ heading "Commands:" }}
{{- range .Commands }}{{ if or .IsAvailableCommand (eq .Name "help") }}
  {{ subcommand (pad .Name .NamePadding) }} {{ .Short }}{{ end }}{{ end }}
{{- end }}

{{- if .HasAvailableLocalFlags }}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end }}

{{- if .HasAvailableInheritedFlags }}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end }}

{{- if .HasAvailableSubCommands }}

Run "{{ command (print .CommandPath " [command] --help") }}" for details on a command.
{{- end }}
`

const helpTemplate = `{{ command .CommandPath }}{{ if .Version }} {{ dim .Version }}{{ end }}
{{ with or .Long .Short }}
{{ trim . }}
{{ end }}
` + usageTemplate

// helpRenderer draws cobra help with the palette used for tree output.
type helpRenderer struct {
	styles *pretty.Styles
}

func newHelpRenderer(colorMode string, w io.Writer) *helpRenderer {
	return &helpRenderer{styles: pretty.NewStyles(pretty.IsColorEnabled(colorMode, w))}
}

func (h *helpRenderer) funcs() template.FuncMap {
	return template.FuncMap{
		"heading":    h.styles.SummaryTitle.Render,
		"command":    h.styles.BlockTag.Render,
		"subcommand": h.styles.InlineTag.Render,
		"dim":        h.styles.Dim.Render,
		"flags":      h.flagUsages,
		"pad":        padRight,
		"trim":       trimLines,
	}
}

func (h *helpRenderer) render(w io.Writer, name, text string, cmd *cobra.Command) error {
	tmpl, err := template.New(name).Funcs(h.funcs()).Parse(text)
	if err != nil {
		return fmt.Errorf("parse %s template: %w", name, err)
	}
	if err := tmpl.Execute(w, cmd); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}

// flagUsages restyles pflag's usage block. Each line looks like
// "  -o, --output string   description"; the flag part ends at the first
// run of two spaces.
func (h *helpRenderer) flagUsages(set interface{ FlagUsages() string }) string {
	block := strings.TrimSuffix(set.FlagUsages(), "\n")
	if block == "" {
		return ""
	}

	lines := strings.Split(block, "\n")
	for i, line := range lines {
		body := strings.TrimLeft(line, " ")
		gap := strings.Index(body, "  ")
		if gap < 0 {
			continue
		}
		indent := line[:len(line)-len(body)]

		words := strings.Fields(body[:gap])
		for j, word := range words {
			if name, comma := strings.CutSuffix(word, ","); strings.HasPrefix(name, "-") {
				words[j] = h.styles.AttrValue.Render(name)
				if comma {
					words[j] += ","
				}
			} else {
				words[j] = h.styles.Dim.Render(word)
			}
		}
		lines[i] = indent + strings.Join(words, " ") + "   " + strings.TrimLeft(body[gap:], " ")
	}
	return strings.Join(lines, "\n")
}

// installHelp replaces cobra's help and usage output on root and, by
// inheritance, on every subcommand. The color mode is read when help is
// printed, after flags have been parsed.
func installHelp(root *cobra.Command, colorMode *string) {
	root.SetUsageFunc(func(cmd *cobra.Command) error {
		return newHelpRenderer(*colorMode, cmd.OutOrStderr()).
			render(cmd.OutOrStderr(), "usage", usageTemplate, cmd)
	})
	root.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		out := cmd.OutOrStdout()
		if err := newHelpRenderer(*colorMode, out).render(out, "help", helpTemplate, cmd); err != nil {
			cmd.PrintErrln(err)
		}
	})
}

func padRight(s string, width int) string {
	if n := width - len(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

func trimLines(s string) string {
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t")
	}
	return strings.Join(lines, "\n")
}
