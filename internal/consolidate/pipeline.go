package consolidate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"napcon/internal/fileutil"
	"napcon/internal/history"
	"napcon/internal/ledger"
	"napcon/internal/logging"
	"napcon/internal/naming"
	"napcon/internal/runctx"
)

// LockSuffix names the advisory lock file kept beside the master table.
const LockSuffix = ".lock"

// Pipeline appends pending source files to the master table.
type Pipeline struct {
	opts     Options
	logger   *slog.Logger
	now      func() time.Time
	recorder Recorder
}

// New builds a pipeline for opts.
func New(opts Options, options ...Option) *Pipeline {
	p := &Pipeline{
		opts: opts.withAbsolutePaths(),
		now:  time.Now,
	}
	for _, opt := range options {
		opt(p)
	}
	p.logger = logging.NewComponentLogger(p.logger, "consolidate")
	return p
}

// Run performs one incremental pass over the input folder. The summary is
// populated even when an error is returned.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	runID := uuid.NewString()
	ctx = runctx.WithRunID(ctx, runID)
	logger := logging.WithContext(ctx, p.logger)

	summary := Summary{
		RunID:        runID,
		StartedAt:    p.now(),
		InputDir:     p.opts.InputDir,
		MasterPath:   p.opts.Output,
		MissingPath:  p.opts.Missing,
		ProcessedLog: p.opts.ProcessedLog,
		ForceRebuild: p.opts.ForceRebuild,
	}

	err := p.run(ctx, logger, &summary)
	summary.FinishedAt = p.now()

	status := history.StatusSucceeded
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = history.StatusCancelled
		logger.Warn("consolidation interrupted",
			logging.String(logging.FieldEventType, "run_cancelled"),
			logging.String(logging.FieldErrorHint, "rerun to append the remaining files"),
			logging.String(logging.FieldImpact, "the current file was rolled back"),
			logging.Int("files_processed", summary.FilesProcessed),
		)
	case errors.Is(err, ErrLocked):
		// Nothing ran; the lock holder records its own run.
		return summary, err
	case err != nil:
		status = history.StatusFailed
		logging.ErrorWithContext(ctx, logger, "consolidation failed", "run_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "fix the reported problem and rerun; committed files are not reprocessed"),
		)
	default:
		logger.Info("consolidation finished",
			logging.String(logging.FieldEventType, "run_complete"),
			logging.Int("files_seen", summary.FilesSeen),
			logging.Int("files_skipped", summary.FilesSkipped),
			logging.Int("files_processed", summary.FilesProcessed),
			logging.Int64("rows_written", summary.RowsWritten),
			logging.Int64("missing_rows", summary.MissingRows),
			logging.Duration("duration", summary.Duration()),
		)
	}

	p.record(ctx, logger, summary, status, err)
	return summary, err
}

func (p *Pipeline) record(ctx context.Context, logger *slog.Logger, summary Summary, status history.Status, runErr error) {
	if p.recorder == nil {
		return
	}
	if err := p.recorder.RecordRun(context.WithoutCancel(ctx), summary.HistoryRun(status, runErr)); err != nil {
		logging.WarnWithContext(ctx, logger, "failed to record run history", "history_write_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check history.path permissions or disable history"),
			logging.String(logging.FieldImpact, "this run is missing from napcon history"),
		)
	}
}

func (p *Pipeline) run(ctx context.Context, logger *slog.Logger, summary *Summary) error {
	info, err := os.Stat(p.opts.InputDir)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInputDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrInputDir, p.opts.InputDir)
	}
	for _, path := range []string{p.opts.Output, p.opts.Missing, p.opts.ProcessedLog} {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	lock := flock.New(p.opts.Output + LockSuffix)
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("%w (%s)", ErrLocked, lock.Path())
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release master lock", logging.Error(err))
		}
	}()

	if p.opts.ForceRebuild {
		if _, err := fileutil.RemoveIfExists(
			p.opts.Output,
			p.opts.Missing,
			p.opts.ProcessedLog,
			ledger.CheckpointPath(p.opts.ProcessedLog),
		); err != nil {
			return fmt.Errorf("force rebuild: %w", err)
		}
		logger.Info("force rebuild: master file, missing report and processed log cleared",
			logging.String(logging.FieldEventType, "force_rebuild"),
		)
	}

	log, err := ledger.LoadLog(p.opts.ProcessedLog)
	if err != nil {
		return err
	}

	recovered, err := p.recover(ctx, logger, log)
	if err != nil {
		return err
	}
	summary.RecoveredFile = recovered

	entries, err := discover(p.opts, log)
	if err != nil {
		return err
	}

	var pending []Entry
	for _, e := range entries {
		switch e.Status {
		case EntryOutput:
			continue
		case EntryProcessed:
			summary.FilesSkipped++
			logger.Debug("file already processed", logging.String(logging.FieldSourceFile, e.Name))
		case EntryPending:
			pending = append(pending, e)
		}
		summary.FilesSeen++
	}

	if err := invalidNames(entries); err != nil {
		return err
	}
	for _, e := range pending {
		if e.Lenient {
			logging.WarnWithContext(runctx.WithSourceFile(ctx, e.Name), logger,
				"source filename does not follow the naming convention", "lenient_filename",
				logging.String("campus", e.Campus),
				logging.String("test_year", e.TestYear),
				logging.String("year_level", e.YearLevel),
				logging.String(logging.FieldErrorHint, "rename the file to follow "+naming.Convention),
				logging.String(logging.FieldImpact, "metadata was taken from fixed underscore positions"),
			)
		}
	}

	logger.Info("consolidation started",
		logging.String(logging.FieldEventType, "run_start"),
		logging.String("input_dir", p.opts.InputDir),
		logging.String("output", p.opts.Output),
		logging.Int("pending", len(pending)),
		logging.Int("skipped", summary.FilesSkipped),
		logging.Int("chunk_size", p.opts.ChunkSize),
	)

	for _, e := range pending {
		if err := ctx.Err(); err != nil {
			return err
		}
		result, err := p.appendFile(ctx, e, log)
		summary.Files = append(summary.Files, result)
		if err != nil {
			return fmt.Errorf("append %s: %w", e.Name, err)
		}
		if result.Status == history.FileAppended {
			summary.FilesProcessed++
			summary.RowsWritten += result.Rows
			summary.MissingRows += result.MissingRows
		}
	}
	return nil
}

// recover rolls back an append interrupted by a previous run. A checkpoint
// whose file already reached the processed log only needs clearing.
func (p *Pipeline) recover(ctx context.Context, logger *slog.Logger, log *ledger.Log) (string, error) {
	cp, ok, err := ledger.LoadCheckpoint(p.opts.ProcessedLog)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}
	if log.Contains(cp.File) {
		logger.Debug("clearing checkpoint for committed file", logging.String(logging.FieldSourceFile, cp.File))
		return "", cp.Clear()
	}
	if err := cp.Rollback(); err != nil {
		return "", fmt.Errorf("roll back interrupted append of %s: %w", cp.File, err)
	}
	if err := cp.Clear(); err != nil {
		return "", fmt.Errorf("clear checkpoint: %w", err)
	}
	logging.WarnWithContext(runctx.WithSourceFile(ctx, cp.File), logger,
		"rolled back an interrupted append", "checkpoint_recovered",
		logging.String("interrupted_run_id", cp.RunID),
		logging.String(logging.FieldErrorHint, "no action needed; the file is appended again in this run"),
		logging.String(logging.FieldImpact, "partial rows from the interrupted run were removed"),
	)
	return cp.File, nil
}
