package history

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// timeLayout keeps a fixed fraction width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func scanRun(scanner interface{ Scan(dest ...any) error }) (Run, error) {
	var (
		run          Run
		startedRaw   string
		finishedRaw  string
		status       string
		forceRebuild int64
		errorMessage sql.NullString
	)
	if err := scanner.Scan(
		&run.ID,
		&startedRaw,
		&finishedRaw,
		&status,
		&run.InputDir,
		&run.MasterPath,
		&run.MissingPath,
		&forceRebuild,
		&run.FilesSeen,
		&run.FilesSkipped,
		&run.FilesProcessed,
		&run.RowsWritten,
		&run.MissingRows,
		&errorMessage,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.StartedAt = parseTime(startedRaw)
	run.FinishedAt = parseTime(finishedRaw)
	run.Status = Status(status)
	run.ForceRebuild = forceRebuild != 0
	run.ErrorMessage = errorMessage.String
	return run, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(timeLayout)
}

func parseTime(raw string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
