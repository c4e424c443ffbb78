package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/dhamidi/csgen/workspace"
	"github.com/spf13/cobra"
)

func newValidateCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check tree documents for decoding and identifier problems",
		Long: `Decode each tree document, check every declared name and try to
render it. Problems are printed as file:line:column: severity: message.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := g.options(cmd)
			if err != nil {
				return err
			}

			problems := 0
			out := cmd.OutOrStdout()
			for _, path := range args {
				content, err := os.ReadFile(path)
				if err != nil {
					return errors.Wrapf(err, "read %s", path)
				}
				info := workspace.Analyze(path, content, opts)
				for _, d := range info.Diagnostics {
					fmt.Fprintf(out, "%s:%d:%d: %s: %s\n", path, d.Pos.Line, d.Pos.Column, severityName(d.Severity), d.Message)
				}
				problems += len(info.Diagnostics)
			}
			if problems > 0 {
				return errors.Newf("%d problems found", problems)
			}
			return nil
		},
	}
}

func severityName(s workspace.Severity) string {
	if s == workspace.SeverityWarning {
		return "warning"
	}
	return "error"
}
