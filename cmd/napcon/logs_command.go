package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"napcon/internal/logging"
	"napcon/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var lines int
	var follow bool

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the latest session log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if strings.TrimSpace(cfg.Paths.LogDir) == "" {
				return errors.New("session logs are disabled (set paths.log_dir)")
			}
			path, err := logs.Latest(cfg.Paths.LogDir, logging.SessionLogPattern)
			if err != nil {
				return err
			}

			tail, offset, err := logs.Tail(path, lines)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, line := range tail {
				fmt.Fprintln(out, line)
			}
			if !follow {
				return nil
			}
			_, err = logs.Follow(cmd.Context(), path, offset, 250*time.Millisecond, func(line string) {
				fmt.Fprintln(out, line)
			})
			return err
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of trailing lines to show")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing lines as they are written")
	return cmd
}
