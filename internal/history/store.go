package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

const runColumns = "id, started_at, finished_at, status, input_dir, master_path, missing_path, force_rebuild, files_seen, files_skipped, files_processed, rows_written, missing_rows, error_message"

// RecordRun stores run and its file results in a single transaction.
func (s *Store) RecordRun(ctx context.Context, run Run) error {
	ctx = ensureContext(ctx)
	if strings.TrimSpace(run.ID) == "" {
		return errors.New("run id is required")
	}
	return retryOnBusy(ctx, func() error {
		return s.insertRun(ctx, run)
	})
}

func (s *Store) insertRun(ctx context.Context, run Run) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin run tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (`+runColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		formatTime(run.StartedAt),
		formatTime(run.FinishedAt),
		string(run.Status),
		run.InputDir,
		run.MasterPath,
		run.MissingPath,
		boolToInt(run.ForceRebuild),
		run.FilesSeen,
		run.FilesSkipped,
		run.FilesProcessed,
		run.RowsWritten,
		run.MissingRows,
		nullableString(run.ErrorMessage),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, file := range run.Files {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO run_files (
                run_id, file_name, test_year, year_level, campus,
                rows, missing_rows, status, error_message
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID,
			file.Name,
			nullableString(file.TestYear),
			nullableString(file.YearLevel),
			nullableString(file.Campus),
			file.Rows,
			file.MissingRows,
			string(file.Status),
			nullableString(file.ErrorMessage),
		)
		if err != nil {
			return fmt.Errorf("insert run file %s: %w", file.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first, with their file results.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	ctx = ensureContext(ctx)
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	rows.Close()

	for i := range runs {
		files, err := s.runFiles(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Files = files
	}
	return runs, nil
}

// GetRun fetches a single run by id. It returns nil when the run is unknown.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	files, err := s.runFiles(ctx, id)
	if err != nil {
		return nil, err
	}
	run.Files = files
	return &run, nil
}

func (s *Store) runFiles(ctx context.Context, runID string) ([]FileResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT file_name, test_year, year_level, campus, rows, missing_rows, status, error_message
         FROM run_files WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run files: %w", err)
	}
	defer rows.Close()

	var files []FileResult
	for rows.Next() {
		var (
			file                        FileResult
			testYear, yearLevel, campus sql.NullString
			status                      string
			errorMessage                sql.NullString
		)
		if err := rows.Scan(&file.Name, &testYear, &yearLevel, &campus, &file.Rows, &file.MissingRows, &status, &errorMessage); err != nil {
			return nil, fmt.Errorf("scan run file: %w", err)
		}
		file.TestYear = testYear.String
		file.YearLevel = yearLevel.String
		file.Campus = campus.String
		file.Status = FileStatus(status)
		file.ErrorMessage = errorMessage.String
		files = append(files, file)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run files: %w", err)
	}
	return files, nil
}
