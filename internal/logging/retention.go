package logging

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// RetentionTarget names the files in Dir matching Pattern that may be pruned.
// Paths in Exclude are kept regardless of age.
type RetentionTarget struct {
	Dir     string
	Pattern string
	Exclude []string
}

// CleanupOldLogs deletes target files last modified more than retentionDays
// ago and returns how many it removed. retentionDays <= 0 keeps everything.
func CleanupOldLogs(ctx context.Context, logger *slog.Logger, retentionDays int, targets ...RetentionTarget) int {
	if retentionDays <= 0 {
		return 0
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	removed := 0
	for _, target := range targets {
		for _, path := range expired(target, cutoff) {
			if err := os.Remove(path); err != nil {
				WarnWithContext(ctx, logger, "could not prune old session log", "log_retention_failed",
					String("path", path),
					Error(err),
					String(FieldErrorHint, "check permissions on paths.log_dir"),
					String(FieldImpact, "the old log stays on disk"),
				)
				continue
			}
			removed++
			if logger != nil {
				logger.DebugContext(ctx, "session log pruned", String("path", path), String(FieldEventType, "log_pruned"))
			}
		}
	}
	return removed
}

func expired(target RetentionTarget, cutoff time.Time) []string {
	dir := strings.TrimSpace(target.Dir)
	if dir == "" {
		return nil
	}
	pattern := strings.TrimSpace(target.Pattern)
	if pattern == "" {
		pattern = "*"
	}
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil
	}

	keep := make(map[string]bool, len(target.Exclude))
	for _, path := range target.Exclude {
		if abs := absPath(path); abs != "" {
			keep[abs] = true
		}
	}

	var out []string
	for _, path := range matches {
		path = absPath(path)
		if keep[path] {
			continue
		}
		info, err := os.Stat(path)
		if err != nil || info.IsDir() || !info.ModTime().Before(cutoff) {
			continue
		}
		out = append(out, path)
	}
	return out
}

func absPath(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return ""
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
