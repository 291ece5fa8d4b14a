package main

import (
	"github.com/spf13/cobra"
)

type runFlags struct {
	input        string
	output       string
	missing      string
	log          string
	forceRebuild bool
	chunkSize    int
	yes          bool
	lenientNames bool
	json         bool
}

func newRootCommand() *cobra.Command {
	var configFlag string
	var flags runFlags

	ctx := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "napcon",
		Short:         "Consolidate NAPLAN StudentOutcomeLevel exports into a master CSV",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConsolidate(cmd, ctx, &flags)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	f := rootCmd.Flags()
	f.StringVar(&flags.input, "input", "", "Input folder with campus files")
	f.StringVar(&flags.output, "output", "", "Path to save or append the master CSV")
	f.StringVar(&flags.missing, "missing", "missing_ids.csv", "Path to save missing student IDs")
	f.StringVar(&flags.log, "log", "Append_log.csv", "Processed-files log")
	f.BoolVar(&flags.forceRebuild, "force_rebuild", false, "Rebuild the master CSV from scratch, ignoring the processed-files log")
	f.IntVar(&flags.chunkSize, "chunk-size", 5000, "Rows read per chunk")
	f.BoolVarP(&flags.yes, "yes", "y", false, "Skip the naming convention confirmation")
	f.BoolVar(&flags.lenientNames, "lenient-names", false, "Derive metadata from underscore positions when a name does not match the convention")
	f.BoolVar(&flags.json, "json", false, "Print the run summary as JSON")

	rootCmd.AddCommand(newInspectCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newLogsCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
