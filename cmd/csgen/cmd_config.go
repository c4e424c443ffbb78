package main

import (
	"fmt"

	"github.com/dhamidi/csgen/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(g *globals) *cobra.Command {
	var initFile bool

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective generator options as TOML",
		Long: `Print the options that render would use, after applying the
configuration file, CSGEN_* environment variables and flags.

Use --init to write them to ./csgen.toml instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := g.options(cmd)
			if err != nil {
				return err
			}
			if initFile {
				if err := config.WriteFile(config.FileName, opts); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", config.FileName)
				return nil
			}
			return config.Write(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().BoolVar(&initFile, "init", false, "write "+config.FileName+" in the current directory")

	return cmd
}
