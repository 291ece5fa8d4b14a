package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"napcon/internal/consolidate"
	"napcon/internal/preflight"
)

type inspectReport struct {
	Entries []consolidate.Entry `json:"entries"`
	Checks  []preflight.Result  `json:"checks,omitempty"`
}

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show which exports the next run would append",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := applyRunFlags(cmd, cfg, &flags); err != nil {
				return err
			}
			if strings.TrimSpace(cfg.Paths.InputDir) == "" {
				return errors.New("input folder is required (--input or paths.input_dir)")
			}

			entries, err := consolidate.Inspect(consolidate.OptionsFromConfig(cfg))
			if err != nil {
				return err
			}
			var checks []preflight.Result
			if strings.TrimSpace(cfg.Paths.Output) != "" {
				checks = preflight.RunAll(cmd.Context(), cfg, false)
			}

			if flags.json {
				return writeJSON(cmd, inspectReport{Entries: entries, Checks: checks})
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			if len(entries) == 0 {
				fmt.Fprintf(out, "No CSV files in %s\n", cfg.Paths.InputDir)
			} else {
				rows := make([][]string, 0, len(entries))
				counts := make(map[consolidate.EntryStatus]int)
				for _, e := range entries {
					counts[e.Status]++
					rows = append(rows, []string{
						e.Name,
						string(e.Status),
						e.TestYear,
						e.YearLevel,
						e.Campus,
						humanize.Bytes(uint64(e.Size)),
						e.Detail,
					})
				}
				fmt.Fprintln(out, renderTable(tableLayout{
					title:   cfg.Paths.InputDir,
					headers: []string{"File", "Status", "Test Year", "Year Level", "Campus", "Size", "Detail"},
					aligns:  []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
				}, rows))
				fmt.Fprintf(out, "%d pending, %d processed, %d invalid\n",
					counts[consolidate.EntryPending], counts[consolidate.EntryProcessed], counts[consolidate.EntryInvalid])
			}

			for _, check := range checks {
				kind := statusOK
				if !check.Passed {
					kind = statusError
				}
				fmt.Fprintln(out, renderStatusLine(check.Name, kind, check.Detail, colorize))
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.input, "input", "", "Input folder with campus files")
	f.StringVar(&flags.output, "output", "", "Master CSV path, used to skip outputs and run checks")
	f.StringVar(&flags.missing, "missing", "missing_ids.csv", "Missing-ID report path")
	f.StringVar(&flags.log, "log", "Append_log.csv", "Processed-files log")
	f.BoolVar(&flags.lenientNames, "lenient-names", false, "Accept names that only match the positional token rules")
	f.BoolVar(&flags.json, "json", false, "Print the report as JSON")
	return cmd
}
