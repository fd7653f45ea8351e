package cli

import (
	"fmt"
	"regexp"
	"strings"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/yaklabco/bonsai/internal/ui/pretty"
)

// flagLinePattern splits a pflag usage line into indent, flag names and
// description.
var flagLinePattern = regexp.MustCompile(`^(\s*)(\S.*?)(\s{2,})(\S.*)$`)

// HelpFormatter provides styled help output for Cobra commands.
type HelpFormatter struct {
	flags *globalFlags
}

// NewHelpFormatter creates a help formatter. Color is decided when help is
// rendered, after the --color flag has been parsed.
func NewHelpFormatter(flags *globalFlags) *HelpFormatter {
	return &HelpFormatter{flags: flags}
}

func (h *HelpFormatter) templateFuncs(styles *pretty.Styles) template.FuncMap {
	return template.FuncMap{
		"styleCommand":    styles.Kind.Render,
		"styleHeading":    styles.SummaryTitle.Render,
		"styleSubcommand": styles.Token.Render,
		"styleDim":        styles.Dim.Render,
		"styleFlagsUsage": func(flags interface{ FlagUsages() string }) string {
			return styleFlagUsages(styles, flags.FlagUsages())
		},
		"rpad": func(s string, padding int) string {
			return fmt.Sprintf("%-*s", padding, s)
		},
		"trimTrailingWhitespaces": func(s string) string {
			return strings.TrimRightFunc(s, func(r rune) bool { return r == ' ' || r == '\t' || r == '\n' })
		},
	}
}

const usageTemplate = `{{ styleHeading "Usage:" }}
{{- if .Runnable}}
  {{ styleCommand .UseLine }}{{end}}
{{- if .HasAvailableSubCommands}}
  {{ styleCommand .CommandPath }} [command]{{end}}

{{- if .HasExample}}

{{ styleHeading "Examples:" }}
{{ styleDim .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ styleHeading "Available Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ styleSubcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ styleHeading "Flags:" }}
{{ styleFlagsUsage .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ styleHeading "Global Flags:" }}
{{ styleFlagsUsage .InheritedFlags }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ styleCommand (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{ . | trimTrailingWhitespaces }}

{{end}}` + usageTemplate

// styleFlagUsages colors flag names and dims their value types.
func styleFlagUsages(styles *pretty.Styles, usages string) string {
	lines := strings.Split(strings.TrimSuffix(usages, "\n"), "\n")
	for i, line := range lines {
		m := flagLinePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		var names []string
		for _, field := range strings.Fields(m[2]) {
			if strings.HasPrefix(field, "-") {
				names = append(names, styles.DiffPath.Render(strings.TrimSuffix(field, ","))+
					strings.Repeat(",", strings.Count(field, ",")))
			} else {
				names = append(names, styles.Dim.Render(field))
			}
		}
		lines[i] = m[1] + strings.Join(names, " ") + m[3] + m[4]
	}
	return strings.Join(lines, "\n")
}

// ApplyToCommand applies styled help templates to a command and its
// subcommands.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	render := func(name, text string, command *cobra.Command) error {
		styles := pretty.NewStyles(pretty.IsColorEnabled(h.flags.color, command.OutOrStdout()))
		tmpl, err := template.New(name).Funcs(h.templateFuncs(styles)).Parse(text)
		if err != nil {
			return fmt.Errorf("parse %s template: %w", name, err)
		}
		return tmpl.Execute(command.OutOrStdout(), command)
	}

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		return render("usage", usageTemplate, command)
	})
	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := render("help", helpTemplate, command); err != nil {
			command.PrintErrln(err)
		}
	})
}
