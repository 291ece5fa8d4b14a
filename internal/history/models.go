package history

import "time"

// Status is the outcome of a run.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// FileStatus is the outcome of a single source file within a run.
type FileStatus string

const (
	FileAppended   FileStatus = "appended"
	FileEmpty      FileStatus = "empty"
	FileRolledBack FileStatus = "rolled_back"
)

// Run is one invocation of the consolidator.
type Run struct {
	ID             string       `json:"id"`
	StartedAt      time.Time    `json:"started_at"`
	FinishedAt     time.Time    `json:"finished_at"`
	Status         Status       `json:"status"`
	InputDir       string       `json:"input_dir"`
	MasterPath     string       `json:"master_path"`
	MissingPath    string       `json:"missing_path"`
	ForceRebuild   bool         `json:"force_rebuild"`
	FilesSeen      int          `json:"files_seen"`
	FilesSkipped   int          `json:"files_skipped"`
	FilesProcessed int          `json:"files_processed"`
	RowsWritten    int64        `json:"rows_written"`
	MissingRows    int64        `json:"missing_rows"`
	ErrorMessage   string       `json:"error_message,omitempty"`
	Files          []FileResult `json:"files,omitempty"`
}

// Duration returns the wall time of the run.
func (r Run) Duration() time.Duration {
	if r.FinishedAt.Before(r.StartedAt) {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// FileResult is one source file handled by a run.
type FileResult struct {
	Name         string     `json:"name"`
	TestYear     string     `json:"test_year"`
	YearLevel    string     `json:"year_level"`
	Campus       string     `json:"campus"`
	Rows         int64      `json:"rows"`
	MissingRows  int64      `json:"missing_rows"`
	Status       FileStatus `json:"status"`
	ErrorMessage string     `json:"error_message,omitempty"`
}
