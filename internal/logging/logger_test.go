package logging_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"napcon/internal/config"
	"napcon/internal/logging"
	"napcon/internal/runctx"
)

func TestNewFromConfigWritesSessionLog(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()

	logger, sessionPath, err := logging.NewFromConfig(&cfg, io.Discard)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	if sessionPath == "" {
		t.Fatal("expected session log path when log_dir is set")
	}
	if matched, _ := filepath.Match(logging.SessionLogPattern, filepath.Base(sessionPath)); !matched {
		t.Fatalf("session log %q does not match %q", sessionPath, logging.SessionLogPattern)
	}

	logger.Info("session message")

	content, err := os.ReadFile(sessionPath)
	if err != nil {
		t.Fatalf("read session log: %v", err)
	}
	if !strings.Contains(string(content), "session message") {
		t.Fatalf("expected message in session log, got %q", content)
	}
}

func TestNewFromConfigWithoutLogDir(t *testing.T) {
	cfg := config.Default()
	_, sessionPath, err := logging.NewFromConfig(&cfg, io.Discard)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	if sessionPath != "" {
		t.Fatalf("expected no session log, got %q", sessionPath)
	}
}

func TestConsoleLoggerOmitsCallerForInfo(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console-info.log")

	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("message without caller", logging.Int("rows", 3))

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if strings.Contains(string(content), ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", content)
	}
	if !strings.Contains(string(content), "    - rows: 3") {
		t.Fatalf("expected field line, got %q", content)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console-debug.log")

	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("message with caller")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), ".go:") {
		t.Fatalf("expected caller information in debug logs, got %q", content)
	}
}

func TestConsoleLoggerHeaderCarriesComponentAndSourceFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console.log")
	base, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := runctx.WithSourceFile(context.Background(), "2023_StudentOutcomeLevel_Yr3_North.csv")
	logger := logging.WithContext(ctx, logging.NewComponentLogger(base, "consolidate"))
	logger.Info("chunk appended")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	header := strings.SplitN(string(content), "\n", 2)[0]
	if !strings.Contains(header, "INFO [consolidate] 2023_StudentOutcomeLevel_Yr3_North.csv – chunk appended") {
		t.Fatalf("unexpected header: %q", header)
	}
}

func TestJSONLoggerFieldNames(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "json.log")
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	ctx := runctx.WithRunID(context.Background(), "run-abc")
	logging.WithContext(ctx, logger).Info("json message", logging.String("k", "v"))

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var record map[string]any
	if err := json.Unmarshal(content, &record); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if record["level"] != "info" || record["msg"] != "json message" {
		t.Fatalf("unexpected record: %v", record)
	}
	if record[logging.FieldRunID] != "run-abc" {
		t.Fatalf("expected run id field, got %v", record)
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", record)
	}
}

func TestDefaultOutputIsConsole(t *testing.T) {
	var console strings.Builder
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", Console: &console})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("to console")
	if !strings.Contains(console.String(), `"msg":"to console"`) {
		t.Fatalf("expected record on console writer, got %q", console.String())
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "warn.log")
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.WarnWithContext(context.Background(), logger, "columns dropped", "schema_mismatch", logging.Error(errors.New("boom")))

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var record map[string]any
	if err := json.Unmarshal(content, &record); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	for _, key := range []string{logging.FieldEventType, logging.FieldErrorHint, logging.FieldImpact} {
		if _, ok := record[key]; !ok {
			t.Fatalf("expected %s in warning record: %v", key, record)
		}
	}
	if record[logging.FieldEventType] != "schema_mismatch" {
		t.Fatalf("unexpected event type: %v", record[logging.FieldEventType])
	}
}

func TestCleanupOldLogs(t *testing.T) {
	dir := t.TempDir()
	old := filepath.Join(dir, "napcon-20200101-000000.log")
	current := filepath.Join(dir, "napcon-20200102-000000.log")
	fresh := filepath.Join(dir, "napcon-29990101-000000.log")
	other := filepath.Join(dir, "notes.txt")
	for _, path := range []string{old, current, fresh, other} {
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	past := time.Now().AddDate(0, 0, -40)
	for _, path := range []string{old, current, other} {
		if err := os.Chtimes(path, past, past); err != nil {
			t.Fatalf("chtimes %s: %v", path, err)
		}
	}

	removed := logging.CleanupOldLogs(context.Background(), logging.NewNop(), 30, logging.RetentionTarget{
		Dir:     dir,
		Pattern: logging.SessionLogPattern,
		Exclude: []string{current},
	})
	if removed != 1 {
		t.Fatalf("expected 1 removed log, got %d", removed)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Fatalf("expected old log removed, stat err=%v", err)
	}
	for _, path := range []string{current, fresh, other} {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected %s to remain: %v", path, err)
		}
	}
}

func TestCleanupOldLogsDisabled(t *testing.T) {
	if removed := logging.CleanupOldLogs(context.Background(), nil, 0, logging.RetentionTarget{Dir: t.TempDir()}); removed != 0 {
		t.Fatalf("expected no removals when disabled, got %d", removed)
	}
}
