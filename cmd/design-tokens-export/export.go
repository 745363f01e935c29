package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"bennypowers.dev/dtexport/internal/config"
	"bennypowers.dev/dtexport/internal/export"
	"bennypowers.dev/dtexport/internal/log"
	"bennypowers.dev/dtexport/internal/parser"
	"bennypowers.dev/dtexport/internal/variables"
	"github.com/spf13/cobra"
)

type exportOptions struct {
	snapshot string
	config   string
	out      string
	include  []string
	lang     string
	compact  bool
}

func (o *exportOptions) addFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&o.snapshot, "snapshot", "s", "", "Variables snapshot (.json, .jsonc, .yaml, .yml)")
	flags.StringVarP(&o.config, "config", "c", "", "Export config file (default: "+config.DiscoverPattern+" in the working directory)")
	flags.StringVarP(&o.out, "out", "o", "", "Write the document to this file instead of stdout")
	flags.StringArrayVar(&o.include, "include", nil, "Only export variables matching this glob (repeatable)")
	flags.StringVar(&o.lang, "lang", "", "Language for notifications (en, de, fr, es)")
	flags.BoolVar(&o.compact, "compact", false, "Write compact JSON")
	_ = cmd.MarkFlagRequired("snapshot")
}

// resolveConfig fills in a discovered config path when none was given
func (o *exportOptions) resolveConfig() error {
	if o.config != "" {
		return nil
	}
	path, err := config.Discover(".")
	if err != nil {
		return err
	}
	if path == "" {
		return errors.New("no config file found; pass --config")
	}
	o.config = path
	return nil
}

func newExportCmd() *cobra.Command {
	opts := &exportOptions{}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export color variables once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.resolveConfig(); err != nil {
				return err
			}
			return runExport(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}
	opts.addFlags(cmd)
	return cmd
}

// runExport loads the inputs and runs one export. With --out the file is only
// replaced when the export succeeds.
func runExport(ctx context.Context, opts *exportOptions, stdout io.Writer) error {
	cfg, err := config.Load(opts.config)
	if err != nil {
		return err
	}
	config.Overrides{Lang: opts.lang, Include: opts.include}.Apply(cfg)

	snapshot, err := parser.ParseFile(opts.snapshot)
	if err != nil {
		return err
	}
	store := variables.NewStore(snapshot)
	log.Debug("Loaded %d variables from %s", store.Count(), opts.snapshot)

	source, err := variables.NewCachingSource(store, variables.DefaultCacheSize)
	if err != nil {
		return err
	}

	output := config.DefaultOutput()
	if opts.compact {
		output.Indent = ""
	}

	var buf bytes.Buffer
	w := stdout
	if opts.out != "" {
		w = &buf
	}

	host := &export.WriterHost{W: w, Indent: output.Indent, Lang: cfg.Lang}
	if err := export.New(source, host).Export(ctx, *cfg); err != nil {
		return err
	}

	if opts.out != "" {
		if err := os.WriteFile(opts.out, buf.Bytes(), 0o644); err != nil { //nolint:gosec // G306: exported documents are meant to be shared
			return fmt.Errorf("failed to write %s: %w", opts.out, err)
		}
		log.Debug("Wrote %s", opts.out)
	}
	return nil
}
