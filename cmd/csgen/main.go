package main

import (
	"os"

	"github.com/dhamidi/csgen/config"
	"github.com/dhamidi/csgen/format"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

// globals are the flags shared by every command.
type globals struct {
	configPath string
	verbose    int
}

// options resolves the generator options for cmd: defaults, the config
// file, CSGEN_* variables and flags.
func (g *globals) options(cmd *cobra.Command) (format.Options, error) {
	return config.Load(g.configPath, cmd.Flags())
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:          "csgen",
		Short:        "Render CodeDom trees as C# source",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(g.verbose, nil)
		},
	}

	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", "", "configuration file (default: csgen.toml found upward)")
	rootCmd.PersistentFlags().CountVarP(&g.verbose, "verbose", "v", "increase log verbosity")
	config.AddFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newRenderCmd(g))
	rootCmd.AddCommand(newValidateCmd(g))
	rootCmd.AddCommand(newOutlineCmd())
	rootCmd.AddCommand(newIdentCmd())
	rootCmd.AddCommand(newConfigCmd(g))
	rootCmd.AddCommand(newLSPCmd(g))

	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
