package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"napcon/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var runID string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent consolidation runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.History.Enabled {
				return errors.New("run history is disabled (history.enabled = false)")
			}
			store, err := history.Open(cfg.History.Path)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			if id := strings.TrimSpace(runID); id != "" {
				run, err := store.GetRun(cmd.Context(), id)
				if err != nil {
					return err
				}
				if run == nil {
					return fmt.Errorf("run %s not found", id)
				}
				if jsonOutput {
					return writeJSON(cmd, run)
				}
				renderRunDetail(cmd, *run)
				return nil
			}

			runs, err := store.RecentRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if jsonOutput {
				if runs == nil {
					runs = []history.Run{}
				}
				return writeJSON(cmd, runs)
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					shortID(run.ID),
					run.StartedAt.Local().Format("2006-01-02 15:04:05"),
					string(run.Status),
					fmt.Sprintf("%d/%d", run.FilesProcessed, run.FilesSeen),
					strconv.FormatInt(run.RowsWritten, 10),
					strconv.FormatInt(run.MissingRows, 10),
					formatDuration(run.Duration()),
				})
			}
			fmt.Fprintln(out, renderTable(tableLayout{
				headers: []string{"Run", "Started", "Status", "Files", "Rows", "Missing IDs", "Duration"},
				aligns:  []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight},
			}, rows))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of runs to show")
	cmd.Flags().StringVar(&runID, "run", "", "Show the files of a single run")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print runs as JSON")
	return cmd
}

func renderRunDetail(cmd *cobra.Command, run history.Run) {
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)

	kind := statusOK
	switch run.Status {
	case history.StatusFailed:
		kind = statusError
	case history.StatusCancelled:
		kind = statusWarn
	}
	fmt.Fprintln(out, renderStatusLine("Run", kind, run.ID+" "+string(run.Status), colorize))
	fmt.Fprintln(out, renderStatusLine("Started", statusInfo, run.StartedAt.Local().Format("2006-01-02 15:04:05"), colorize))
	fmt.Fprintln(out, renderStatusLine("Input", statusInfo, run.InputDir, colorize))
	fmt.Fprintln(out, renderStatusLine("Master", statusInfo, run.MasterPath, colorize))
	if run.ForceRebuild {
		fmt.Fprintln(out, renderStatusLine("Rebuild", statusWarn, "master rebuilt from scratch", colorize))
	}
	if run.ErrorMessage != "" {
		fmt.Fprintln(out, renderStatusLine("Error", statusError, run.ErrorMessage, colorize))
	}
	if len(run.Files) == 0 {
		return
	}
	rows := make([][]string, 0, len(run.Files))
	for _, f := range run.Files {
		rows = append(rows, []string{
			f.Name,
			string(f.Status),
			strconv.FormatInt(f.Rows, 10),
			strconv.FormatInt(f.MissingRows, 10),
			f.ErrorMessage,
		})
	}
	fmt.Fprintln(out, renderTable(tableLayout{
		headers: []string{"File", "Status", "Rows", "Missing IDs", "Error"},
		aligns:  []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignLeft},
	}, rows))
}
