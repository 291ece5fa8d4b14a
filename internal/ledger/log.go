package ledger

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"napcon/internal/fileutil"
)

// Log is the set of source files already folded into the master table.
type Log struct {
	path  string
	names map[string]struct{}
	order []string
}

// LoadLog reads the processed log at path. A missing file yields an empty log.
func LoadLog(path string) (*Log, error) {
	log := &Log{path: path, names: make(map[string]struct{})}
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return log, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open processed log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		log.remember(strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read processed log: %w", err)
	}
	return log, nil
}

func (l *Log) remember(name string) {
	if name == "" {
		return
	}
	if _, ok := l.names[name]; ok {
		return
	}
	l.names[name] = struct{}{}
	l.order = append(l.order, name)
}

// Path returns the log location.
func (l *Log) Path() string {
	return l.path
}

// Contains reports whether name has been processed.
func (l *Log) Contains(name string) bool {
	_, ok := l.names[name]
	return ok
}

// Len returns the number of processed files.
func (l *Log) Len() int {
	return len(l.order)
}

// Names returns processed names in the order they were recorded.
func (l *Log) Names() []string {
	return append([]string(nil), l.order...)
}

// Append durably records name as processed.
func (l *Log) Append(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("processed log entry must not be empty")
	}
	if l.Contains(name) {
		return nil
	}
	if err := fileutil.AppendLine(l.path, name); err != nil {
		return fmt.Errorf("append processed log: %w", err)
	}
	l.remember(name)
	return nil
}
