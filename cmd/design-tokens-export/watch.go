package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"bennypowers.dev/dtexport/internal/log"
	"bennypowers.dev/dtexport/internal/watch"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	opts := &exportOptions{}
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Export, then export again whenever the snapshot or config changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.resolveConfig(); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, opts, cmd.OutOrStdout())
		},
	}
	opts.addFlags(cmd)
	return cmd
}

// runWatch keeps running after failed exports so a broken save can be fixed
func runWatch(ctx context.Context, opts *exportOptions, stdout io.Writer) error {
	if err := runExport(ctx, opts, stdout); err != nil {
		reportError(err)
	}

	w, err := watch.New([]string{opts.snapshot, opts.config}, func(ctx context.Context, path string) {
		log.Info("%s changed, exporting", path)
		if err := runExport(ctx, opts, stdout); err != nil {
			reportError(err)
		}
	}, watch.Options{})
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		return err
	}
	log.Info("Watching %s and %s", opts.snapshot, opts.config)

	<-ctx.Done()
	return w.Stop()
}
