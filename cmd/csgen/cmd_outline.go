package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dhamidi/csgen/codedom"
	"github.com/dhamidi/csgen/format"
	"github.com/spf13/cobra"
)

func newOutlineCmd() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "outline [file]",
		Short: "List the declarations of a tree document",
		Long: `List the namespaces, types and members declared in a tree document.

Output formats:
  line  tab separated kind, path, type, parameter types and modifiers (default)
  json  a JSON array of declarations

If no file is provided, reads the document from stdin.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			unit, err := codedom.UnitFromDocument(data)
			if err != nil {
				return err
			}

			var enc format.Encoder
			switch outputFormat {
			case "line":
				enc = format.NewLineEncoder(cmd.OutOrStdout())
			case "json":
				enc = format.NewJSONEncoder(cmd.OutOrStdout())
			default:
				return fmt.Errorf("unknown format: %s (supported: line, json)", outputFormat)
			}
			return enc.Encode(unit)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "line", "output format (line, json)")

	return cmd
}

// readInput returns the content of the single file in args, or stdin.
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}
