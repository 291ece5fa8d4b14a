package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"napcon/internal/config"
	"napcon/internal/consolidate"
	"napcon/internal/history"
	"napcon/internal/logging"
	"napcon/internal/preflight"
)

func runConsolidate(cmd *cobra.Command, ctx *commandContext, flags *runFlags) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	if err := applyRunFlags(cmd, cfg, flags); err != nil {
		return err
	}
	if err := cfg.ValidateRun(); err != nil {
		return err
	}

	if !cfg.Pipeline.AssumeYes {
		confirmed, err := confirmNamingConvention(cmd.InOrStdin(), cmd.OutOrStdout())
		if err != nil || !confirmed {
			return err
		}
	}

	if err := cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("ensure directories: %w", err)
	}

	logger, sessionPath, err := logging.NewFromConfig(cfg, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	if cfg.Paths.LogDir != "" {
		logging.CleanupOldLogs(cmd.Context(), logger, cfg.Logging.RetentionDays, logging.RetentionTarget{
			Dir:     cfg.Paths.LogDir,
			Pattern: logging.SessionLogPattern,
			Exclude: []string{sessionPath},
		})
	}

	if err := preflight.Err(preflight.RunAll(cmd.Context(), cfg, flags.forceRebuild)); err != nil {
		return fmt.Errorf("preflight failed: %w", err)
	}

	options := []consolidate.Option{consolidate.WithLogger(logger)}
	if cfg.History.Enabled {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			logger.Warn("run history unavailable",
				logging.String(logging.FieldEventType, "history_open_failed"),
				logging.String(logging.FieldErrorHint, "check history.path or set history.enabled = false"),
				logging.String(logging.FieldImpact, "this run will not appear in napcon history"),
				logging.Error(err),
			)
		} else {
			defer store.Close()
			options = append(options, consolidate.WithRecorder(store))
		}
	}

	opts := consolidate.OptionsFromConfig(cfg)
	opts.ForceRebuild = flags.forceRebuild

	summary, err := consolidate.New(opts, options...).Run(cmd.Context())
	if err != nil {
		if errors.Is(err, consolidate.ErrLocked) {
			return fmt.Errorf("%w: another napcon run is writing %s", err, cfg.Paths.Output)
		}
		return err
	}

	if flags.json {
		return writeJSON(cmd, summary)
	}
	renderRunSummary(cmd.OutOrStdout(), summary, shouldColorize(cmd.OutOrStdout()))
	return nil
}

// applyRunFlags overrides configuration values with explicitly set flags.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config, flags *runFlags) error {
	paths := []struct {
		name   string
		value  string
		target *string
	}{
		{"input", flags.input, &cfg.Paths.InputDir},
		{"output", flags.output, &cfg.Paths.Output},
		{"missing", flags.missing, &cfg.Paths.Missing},
		{"log", flags.log, &cfg.Paths.ProcessedLog},
	}
	for _, p := range paths {
		if err := expandFlag(cmd, p.name, p.value, p.target); err != nil {
			return fmt.Errorf("--%s: %w", p.name, err)
		}
	}
	if cmd.Flags().Changed("chunk-size") {
		cfg.Pipeline.ChunkSize = flags.chunkSize
	}
	if flags.yes {
		cfg.Pipeline.AssumeYes = true
	}
	if flags.lenientNames {
		cfg.Pipeline.StrictNames = false
	}
	return cfg.Validate()
}

func renderRunSummary(out io.Writer, summary consolidate.Summary, colorize bool) {
	if summary.ForceRebuild {
		fmt.Fprintln(out, "Force rebuild: master file and processed log cleared.")
	}
	if summary.RecoveredFile != "" {
		fmt.Fprintln(out, renderStatusLine("Recovered", statusWarn, "rolled back partial append of "+summary.RecoveredFile, colorize))
	}

	if len(summary.Files) == 0 {
		fmt.Fprintln(out, "No new files to append.")
	} else {
		rows := make([][]string, 0, len(summary.Files))
		for _, f := range summary.Files {
			rows = append(rows, []string{
				f.Name,
				f.TestYear,
				f.YearLevel,
				f.Campus,
				strconv.FormatInt(f.Rows, 10),
				strconv.FormatInt(f.MissingRows, 10),
				string(f.Status),
			})
		}
		fmt.Fprintln(out, renderTable(tableLayout{
			headers: []string{"File", "Test Year", "Year Level", "Campus", "Rows", "Missing IDs", "Status"},
			aligns:  []columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
			footer: []string{
				fmt.Sprintf("%d appended", summary.FilesProcessed), "", "", "",
				strconv.FormatInt(summary.RowsWritten, 10),
				strconv.FormatInt(summary.MissingRows, 10),
				"",
			},
		}, rows))
	}

	fmt.Fprintln(out, renderStatusLine("Files", statusInfo,
		fmt.Sprintf("%d seen, %d already processed, %d appended", summary.FilesSeen, summary.FilesSkipped, summary.FilesProcessed), colorize))
	if summary.MissingRows > 0 {
		fmt.Fprintln(out, renderStatusLine("Missing IDs", statusWarn,
			fmt.Sprintf("%d rows without a Student ID", summary.MissingRows), colorize))
	}
	fmt.Fprintln(out, renderStatusLine("Duration", statusOK, formatDuration(summary.Duration()), colorize))
	fmt.Fprintf(out, "Master CSV saved to: %s\n", summary.MasterPath)
	fmt.Fprintf(out, "Missing IDs saved to: %s\n", summary.MissingPath)
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return d.Round(time.Millisecond).String()
	default:
		return d.Round(100 * time.Millisecond).String()
	}
}

func shortID(id string) string {
	id = strings.TrimSpace(id)
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
