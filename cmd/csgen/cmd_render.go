package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/dhamidi/csgen/codedom"
	"github.com/dhamidi/csgen/format"
	"github.com/dhamidi/csgen/workspace"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"
)

var log = commonlog.GetLogger("csgen")

func newRenderCmd(g *globals) *cobra.Command {
	var outDir string
	var watch bool
	var jobs int

	cmd := &cobra.Command{
		Use:   "render [file]...",
		Short: "Render tree documents as C# source",
		Long: `Render YAML or JSON tree documents as C# source.

Without -o the generated source is written to stdout, in argument order.
With -o each document is written to <dir>/<name>.cs.
If no file is provided, reads a single document from stdin.

Use --watch together with -o to re-render documents when they change.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := g.options(cmd)
			if err != nil {
				return err
			}
			if len(args) == 0 {
				if watch {
					return errors.New("--watch requires file arguments")
				}
				return renderStdin(cmd, opts)
			}
			if watch && outDir == "" {
				return errors.WithHint(errors.New("--watch requires -o"), "pass an output directory, e.g. -o .")
			}
			if outDir != "" {
				if err := os.MkdirAll(outDir, 0o755); err != nil {
					return errors.Wrapf(err, "create %s", outDir)
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			ws := workspace.New(".", opts)
			if err := renderAll(ctx, cmd, ws, args, outDir, jobs); err != nil {
				return err
			}
			if !watch {
				return nil
			}
			return watchAndRender(ctx, cmd, ws, args, outDir)
		},
	}

	cmd.Flags().StringVarP(&outDir, "output", "o", "", "write <name>.cs files into this directory")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-render documents when they change")
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "number of documents rendered concurrently")

	return cmd
}

func renderStdin(cmd *cobra.Command, opts format.Options) error {
	data, err := readInput(cmd, nil)
	if err != nil {
		return err
	}
	unit, err := codedom.UnitFromDocument(data)
	if err != nil {
		return err
	}
	return format.NewCSharpEncoder(cmd.OutOrStdout(), opts).Encode(unit)
}

// renderAll renders every document with at most jobs generators running at
// once. Without outDir the results are printed in argument order.
func renderAll(ctx context.Context, cmd *cobra.Command, ws *workspace.Workspace, paths []string, outDir string, jobs int) error {
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(max(jobs, 1))

	results := make([][]byte, len(paths))
	for i, path := range paths {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if outDir != "" {
				out, err := ws.WriteOutput(path, outDir)
				if err != nil {
					return err
				}
				log.Debugf("%s -> %s", path, out)
				return nil
			}
			text, err := ws.Render(path)
			if err != nil {
				return err
			}
			results[i] = text
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, text := range results {
		if _, err := out.Write(text); err != nil {
			return err
		}
	}
	return nil
}

func watchAndRender(ctx context.Context, cmd *cobra.Command, ws *workspace.Workspace, paths []string, outDir string) error {
	tracked := make(map[string]bool, len(paths))
	for _, p := range paths {
		tracked[filepath.Clean(p)] = true
	}

	watcher, err := workspace.NewWatcher(ws, paths, func(path string, removed bool) {
		if removed || !tracked[path] {
			return
		}
		if _, err := ws.WriteOutput(path, outDir); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s\n", err)
		}
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "watching %d documents\n", len(paths))
	return watcher.Run(ctx)
}
