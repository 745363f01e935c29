package main

import (
	"fmt"

	"bennypowers.dev/dtexport/internal/log"
	"bennypowers.dev/dtexport/internal/version"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var (
		debug    bool
		logLevel string
	)

	rootCmd := &cobra.Command{
		Use:           "design-tokens-export",
		Short:         "Export color variables as a sorted, brand-grouped token tree",
		Version:       version.GetVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			if debug {
				level = log.LevelDebug
			}
			log.SetLevel(level)
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Minimum log level (debug, info, warn, error)")

	rootCmd.AddCommand(newExportCmd(), newWatchCmd(), newVersionCmd())
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.GetFullVersion())
			return err
		},
	}
}
