package consolidate

import (
	"time"

	"napcon/internal/history"
	"napcon/internal/naming"
)

// FileSummary describes one source file handled by a run.
type FileSummary struct {
	naming.Source
	Rows           int64              `json:"rows"`
	MissingRows    int64              `json:"missing_rows"`
	Chunks         int                `json:"chunks"`
	Status         history.FileStatus `json:"status"`
	DroppedColumns []string           `json:"dropped_columns,omitempty"`
	Error          string             `json:"error,omitempty"`
}

// Summary reports what a run did.
type Summary struct {
	RunID          string        `json:"run_id"`
	StartedAt      time.Time     `json:"started_at"`
	FinishedAt     time.Time     `json:"finished_at"`
	InputDir       string        `json:"input_dir"`
	MasterPath     string        `json:"master_path"`
	MissingPath    string        `json:"missing_path"`
	ProcessedLog   string        `json:"processed_log"`
	ForceRebuild   bool          `json:"force_rebuild"`
	RecoveredFile  string        `json:"recovered_file,omitempty"`
	FilesSeen      int           `json:"files_seen"`
	FilesSkipped   int           `json:"files_skipped"`
	FilesProcessed int           `json:"files_processed"`
	RowsWritten    int64         `json:"rows_written"`
	MissingRows    int64         `json:"missing_rows"`
	Files          []FileSummary `json:"files"`
}

// Duration returns the wall time of the run.
func (s Summary) Duration() time.Duration {
	if s.FinishedAt.Before(s.StartedAt) {
		return 0
	}
	return s.FinishedAt.Sub(s.StartedAt)
}

// HistoryRun converts the summary into a history record.
func (s Summary) HistoryRun(status history.Status, runErr error) history.Run {
	run := history.Run{
		ID:             s.RunID,
		StartedAt:      s.StartedAt,
		FinishedAt:     s.FinishedAt,
		Status:         status,
		InputDir:       s.InputDir,
		MasterPath:     s.MasterPath,
		MissingPath:    s.MissingPath,
		ForceRebuild:   s.ForceRebuild,
		FilesSeen:      s.FilesSeen,
		FilesSkipped:   s.FilesSkipped,
		FilesProcessed: s.FilesProcessed,
		RowsWritten:    s.RowsWritten,
		MissingRows:    s.MissingRows,
	}
	if runErr != nil {
		run.ErrorMessage = runErr.Error()
	}
	for _, f := range s.Files {
		run.Files = append(run.Files, history.FileResult{
			Name:         f.Name,
			TestYear:     f.TestYear,
			YearLevel:    f.YearLevel,
			Campus:       f.Campus,
			Rows:         f.Rows,
			MissingRows:  f.MissingRows,
			Status:       f.Status,
			ErrorMessage: f.Error,
		})
	}
	return run
}
