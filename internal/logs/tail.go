package logs

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// ErrNoSessionLogs is returned when log_dir holds no session log.
var ErrNoSessionLogs = errors.New("no session logs")

const maxLineBytes = 1024 * 1024

// Latest returns the most recently modified file in dir matching pattern.
func Latest(dir, pattern string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return "", fmt.Errorf("match session logs: %w", err)
	}
	var newest string
	var newestMod time.Time
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		// Names embed a second-resolution timestamp; break ties on name.
		if newest == "" || info.ModTime().After(newestMod) ||
			(info.ModTime().Equal(newestMod) && path > newest) {
			newest = path
			newestMod = info.ModTime()
		}
	}
	if newest == "" {
		return "", fmt.Errorf("%w in %s", ErrNoSessionLogs, dir)
	}
	return newest, nil
}

// Tail returns up to limit trailing lines of path and the offset of the end
// of the file. A limit of 0 returns no lines, only the offset.
func Tail(path string, limit int) ([]string, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	if limit <= 0 {
		offset, err := file.Seek(0, io.SeekEnd)
		if err != nil {
			return nil, 0, fmt.Errorf("seek log file: %w", err)
		}
		return nil, offset, nil
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	ring := make([]string, limit)
	count, idx := 0, 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % limit
		if count < limit {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Errorf("read log file: %w", err)
	}

	offset, err := file.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, 0, fmt.Errorf("determine log offset: %w", err)
	}

	lines := make([]string, count)
	if count == limit {
		for i := range count {
			lines[i] = ring[(idx+i)%limit]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, offset, nil
}

// Follow polls path every interval and calls emit for each complete line
// written after offset. It returns when ctx ends, with the offset reached.
func Follow(ctx context.Context, path string, offset int64, interval time.Duration, emit func(string)) (int64, error) {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		next, err := readForward(path, offset, emit)
		if err != nil {
			return offset, err
		}
		offset = next

		select {
		case <-ctx.Done():
			return offset, nil
		case <-ticker.C:
		}
	}
}

// readForward emits complete lines after offset. A trailing partial line is
// left for the next poll.
func readForward(path string, offset int64, emit func(string)) (int64, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return offset, fmt.Errorf("open log file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return offset, fmt.Errorf("stat log file: %w", err)
	}
	if offset > info.Size() {
		// Truncated or replaced; start over.
		offset = 0
	}
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return offset, fmt.Errorf("seek log file: %w", err)
	}

	reader := bufio.NewReaderSize(file, 64*1024)
	for {
		line, err := reader.ReadString('\n')
		if errors.Is(err, io.EOF) {
			return offset, nil
		}
		if err != nil {
			return offset, fmt.Errorf("read log file: %w", err)
		}
		offset += int64(len(line))
		emit(line[:len(line)-1])
	}
}
