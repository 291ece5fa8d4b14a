package consolidate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"napcon/internal/history"
	"napcon/internal/ledger"
	"napcon/internal/logging"
	"napcon/internal/runctx"
	"napcon/internal/table"
	"napcon/internal/transform"
)

// appendFile streams one source file into the outputs and commits it to the
// processed log. On error the outputs are restored to their prior sizes.
func (p *Pipeline) appendFile(ctx context.Context, e Entry, log *ledger.Log) (FileSummary, error) {
	ctx = runctx.WithSourceFile(ctx, e.Name)
	logger := logging.WithContext(ctx, p.logger)
	result := FileSummary{Source: e.Source}
	start := time.Now()

	reader, err := table.Open(e.Path)
	if errors.Is(err, table.ErrEmptyHeader) {
		result.Status = history.FileEmpty
		logging.WarnWithContext(ctx, logger, "source file has no header row", "empty_source",
			logging.String(logging.FieldErrorHint, "re-export the file and rerun"),
			logging.String(logging.FieldImpact, "file left pending"),
		)
		return result, nil
	}
	if err != nil {
		result.Status = history.FileRolledBack
		result.Error = err.Error()
		return result, err
	}
	defer reader.Close()

	runID, _ := runctx.RunIDFromContext(ctx)
	cp, err := ledger.Begin(p.opts.ProcessedLog, runID, e.Name, p.now(), p.opts.Output, p.opts.Missing)
	if err != nil {
		result.Status = history.FileRolledBack
		result.Error = err.Error()
		return result, err
	}

	fail := func(cause error) (FileSummary, error) {
		result.Status = history.FileRolledBack
		result.Error = cause.Error()
		if rbErr := cp.Rollback(); rbErr != nil {
			return result, errors.Join(cause, fmt.Errorf("roll back outputs: %w", rbErr))
		}
		if clrErr := cp.Clear(); clrErr != nil {
			return result, errors.Join(cause, fmt.Errorf("clear checkpoint: %w", clrErr))
		}
		logger.Info("rolled back partial append",
			logging.String(logging.FieldEventType, "file_rolled_back"),
			logging.Int64("rows_discarded", result.Rows),
		)
		return result, cause
	}

	master, err := table.OpenAppender(p.opts.Output)
	if err != nil {
		return fail(err)
	}
	missing, err := table.OpenAppender(p.opts.Missing)
	if err != nil {
		return fail(err)
	}

	processedAt := p.now()
	dropped := make(map[string]struct{})
	for {
		if err := ctx.Err(); err != nil {
			return fail(err)
		}
		chunk, err := reader.Next(p.opts.ChunkSize)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fail(fmt.Errorf("read chunk: %w", err))
		}

		out := transform.Transform(chunk, e.Source, processedAt)
		if master.Header() == nil {
			// Preferred columns absent from the first file stay in the schema.
			out, _ = table.Project(out, transform.MasterHeader(out.Header))
		}
		cols, err := master.Append(out)
		if err != nil {
			return fail(err)
		}
		for _, col := range cols {
			dropped[col] = struct{}{}
		}

		miss := transform.MissingIDs(out)
		if miss.Len() > 0 {
			if _, err := missing.Append(miss); err != nil {
				return fail(err)
			}
		}

		result.Chunks++
		result.Rows += int64(out.Len())
		result.MissingRows += int64(miss.Len())
		logger.Debug("chunk appended",
			logging.Int("chunk", result.Chunks),
			logging.Int("rows", out.Len()),
			logging.Int("missing_rows", miss.Len()),
		)
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}
	if err := p.commit(logger, log, e.Name, cp); err != nil {
		return fail(err)
	}

	result.Status = history.FileAppended
	if len(dropped) > 0 {
		for col := range dropped {
			result.DroppedColumns = append(result.DroppedColumns, col)
		}
		sort.Strings(result.DroppedColumns)
		logging.WarnWithContext(ctx, logger, "source columns missing from the master header were dropped", "dropped_columns",
			logging.Strings("columns", result.DroppedColumns),
			logging.String(logging.FieldErrorHint, "rerun with --force_rebuild to rebuild the master header"),
			logging.String(logging.FieldImpact, "values in these columns are not in the master table"),
		)
	}
	logger.Info("source file appended",
		logging.String(logging.FieldEventType, "file_appended"),
		logging.String("campus", e.Campus),
		logging.String("test_year", e.TestYear),
		logging.String("year_level", e.YearLevel),
		logging.Int64("rows", result.Rows),
		logging.Int64("missing_rows", result.MissingRows),
		logging.Int("chunks", result.Chunks),
		logging.Duration("duration", time.Since(start)),
	)
	return result, nil
}

// commit records name in the processed log, then drops the checkpoint. A
// checkpoint left behind after the log write is cleared by the next run.
func (p *Pipeline) commit(logger *slog.Logger, log *ledger.Log, name string, cp *ledger.Checkpoint) error {
	if err := log.Append(name); err != nil {
		return err
	}
	if err := cp.Clear(); err != nil {
		logger.Warn("failed to clear checkpoint", logging.Error(err))
	}
	return nil
}
