package ledger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"napcon/internal/fileutil"
)

// PendingSuffix is appended to the processed log path to name the checkpoint.
const PendingSuffix = ".pending"

// Output records the size of one output file before an append began.
type Output struct {
	Path    string `toml:"path"`
	Size    int64  `toml:"size"`
	Existed bool   `toml:"existed"`
}

// Checkpoint describes a source file whose rows are being appended.
type Checkpoint struct {
	RunID     string    `toml:"run_id"`
	File      string    `toml:"file"`
	StartedAt time.Time `toml:"started_at"`
	Outputs   []Output  `toml:"outputs"`

	path string
}

// CheckpointPath returns the checkpoint location for a processed log.
func CheckpointPath(logPath string) string {
	return logPath + PendingSuffix
}

// Begin snapshots the sizes of outputs and durably writes the checkpoint
// before any rows for file are appended.
func Begin(logPath, runID, file string, startedAt time.Time, outputs ...string) (*Checkpoint, error) {
	cp := &Checkpoint{
		RunID:     runID,
		File:      file,
		StartedAt: startedAt.UTC().Truncate(time.Second),
		path:      CheckpointPath(logPath),
	}
	for _, path := range outputs {
		size, exists, err := fileutil.Size(path)
		if err != nil {
			return nil, fmt.Errorf("stat output %s: %w", path, err)
		}
		cp.Outputs = append(cp.Outputs, Output{Path: path, Size: size, Existed: exists})
	}
	data, err := toml.Marshal(cp)
	if err != nil {
		return nil, fmt.Errorf("encode checkpoint: %w", err)
	}
	if err := fileutil.WriteFileAtomic(cp.path, data, 0o644); err != nil {
		return nil, fmt.Errorf("write checkpoint: %w", err)
	}
	return cp, nil
}

// LoadCheckpoint reads a leftover checkpoint for the processed log. The
// boolean is false when none exists.
func LoadCheckpoint(logPath string) (*Checkpoint, bool, error) {
	path := CheckpointPath(logPath)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read checkpoint: %w", err)
	}
	var cp Checkpoint
	if err := toml.Unmarshal(data, &cp); err != nil {
		return nil, false, fmt.Errorf("decode checkpoint %s: %w", path, err)
	}
	cp.path = path
	return &cp, true, nil
}

// Path returns the checkpoint location.
func (c *Checkpoint) Path() string {
	return c.path
}

// Rollback restores every output to its recorded size. Outputs that did not
// exist before the append are removed.
func (c *Checkpoint) Rollback() error {
	var errs []error
	for _, out := range c.Outputs {
		if !out.Existed {
			if _, err := fileutil.RemoveIfExists(out.Path); err != nil {
				errs = append(errs, err)
			}
			continue
		}
		if err := fileutil.TruncateTo(out.Path, out.Size); err != nil {
			errs = append(errs, fmt.Errorf("truncate %s: %w", out.Path, err))
		}
	}
	return errors.Join(errs...)
}

// Clear removes the checkpoint file.
func (c *Checkpoint) Clear() error {
	_, err := fileutil.RemoveIfExists(c.path)
	return err
}
