package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Appender appends chunks to a CSV output. The first write creates the file
// with a header; later writes project chunks onto that header.
type Appender struct {
	path   string
	header []string
}

// OpenAppender inspects path and remembers its header when the file already
// has one. The file is not created until the first Append.
func OpenAppender(path string) (*Appender, error) {
	a := &Appender{path: path}
	header, err := ReadHeader(path)
	switch {
	case err == nil:
		a.header = header
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, ErrEmptyHeader):
	default:
		return nil, err
	}
	return a, nil
}

// ReadHeader returns the header row of an existing CSV file. Missing files
// report fs.ErrNotExist and empty files ErrEmptyHeader.
func ReadHeader(path string) ([]string, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return r.Header(), nil
}

// Path returns the output location.
func (a *Appender) Path() string {
	return a.path
}

// Header returns the output header, or nil before the first write.
func (a *Appender) Header() []string {
	return append([]string(nil), a.header...)
}

// Append writes chunk and flushes it to stable storage. It returns the
// columns dropped because the existing header does not know them.
func (a *Appender) Append(chunk Chunk) ([]string, error) {
	if chunk.Len() == 0 && a.header != nil {
		return nil, nil
	}

	writeHeader := a.header == nil
	var dropped []string
	if !writeHeader && !sameHeader(chunk.Header, a.header) {
		chunk, dropped = Project(chunk, a.header)
	}

	file, err := os.OpenFile(a.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open %s for append: %w", a.path, err)
	}
	w := csv.NewWriter(file)
	if writeHeader {
		if err := w.Write(chunk.Header); err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("write header to %s: %w", a.path, err)
		}
	}
	if err := w.WriteAll(chunk.Rows); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("write rows to %s: %w", a.path, err)
	}
	if err := file.Sync(); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("sync %s: %w", a.path, err)
	}
	if err := file.Close(); err != nil {
		return nil, fmt.Errorf("close %s: %w", a.path, err)
	}
	if writeHeader {
		a.header = append([]string(nil), chunk.Header...)
	}
	return dropped, nil
}
