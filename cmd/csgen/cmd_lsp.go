package main

import (
	"github.com/dhamidi/csgen/workspace"
	"github.com/spf13/cobra"
)

func newLSPCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Long: `Start a language server on stdio.

The server reports decoding and identifier problems in YAML and JSON tree
documents and offers the csgen.render and csgen.preview commands.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := g.options(cmd)
			if err != nil {
				return err
			}
			server := workspace.NewLSPServer(version, opts)
			return server.RunStdio()
		},
	}
}
