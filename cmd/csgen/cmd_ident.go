package main

import (
	"fmt"

	"github.com/dhamidi/csgen/format"
	"github.com/spf13/cobra"
)

func newIdentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ident <name>...",
		Short: "Check names against the C# identifier rules",
		Long: `Print one line per name: the name, whether it is a valid identifier,
and the identifier CreateValidIdentifier makes of it.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range args {
				fmt.Fprintf(out, "%s\t%t\t%s\n", name, format.IsValidIdentifier(name), format.CreateValidIdentifier(name))
			}
			return nil
		},
	}
}
