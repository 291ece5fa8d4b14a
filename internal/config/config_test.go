package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"napcon/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("NAPCON_LOG_LEVEL", "")
	workDir := t.TempDir()
	t.Chdir(workDir)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if cfg.Paths.Missing != filepath.Join(workDir, "missing_ids.csv") {
		t.Fatalf("unexpected missing path: %q", cfg.Paths.Missing)
	}
	if cfg.Paths.ProcessedLog != filepath.Join(workDir, "Append_log.csv") {
		t.Fatalf("unexpected processed log path: %q", cfg.Paths.ProcessedLog)
	}
	wantHistory := filepath.Join(tempHome, ".local", "share", "napcon", "history.db")
	if cfg.History.Path != wantHistory {
		t.Fatalf("unexpected history path: got %q want %q", cfg.History.Path, wantHistory)
	}
	if cfg.Paths.InputDir != "" || cfg.Paths.Output != "" {
		t.Fatalf("expected input and output to be unset, got %q and %q", cfg.Paths.InputDir, cfg.Paths.Output)
	}
	if cfg.Pipeline.ChunkSize != 5000 {
		t.Fatalf("unexpected chunk size: %d", cfg.Pipeline.ChunkSize)
	}
	if !cfg.Pipeline.StrictNames {
		t.Fatal("expected strict names by default")
	}
	if cfg.Pipeline.AssumeYes {
		t.Fatal("expected confirmation prompt by default")
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "napcon.toml")

	type payload struct {
		Paths struct {
			InputDir string `toml:"input_dir"`
			Output   string `toml:"output"`
		} `toml:"paths"`
		Pipeline struct {
			ChunkSize   int  `toml:"chunk_size"`
			StrictNames bool `toml:"strict_names"`
		} `toml:"pipeline"`
		Logging struct {
			Format string `toml:"format"`
			Level  string `toml:"level"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Paths.InputDir = filepath.Join(tempDir, "exports")
	custom.Paths.Output = filepath.Join(tempDir, "out", "master.csv")
	custom.Pipeline.ChunkSize = 250
	custom.Pipeline.StrictNames = false
	custom.Logging.Format = "JSON"
	custom.Logging.Level = "DEBUG"

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("NAPCON_LOG_LEVEL", "")

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: %q", resolved)
	}
	if cfg.Paths.InputDir != custom.Paths.InputDir {
		t.Fatalf("unexpected input dir: %q", cfg.Paths.InputDir)
	}
	if cfg.Pipeline.ChunkSize != 250 {
		t.Fatalf("unexpected chunk size: %d", cfg.Pipeline.ChunkSize)
	}
	if cfg.Pipeline.StrictNames {
		t.Fatal("expected strict names to be disabled")
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected normalized logging values, got %+v", cfg.Logging)
	}
	if err := cfg.ValidateRun(); err != nil {
		t.Fatalf("ValidateRun returned error: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories returned error: %v", err)
	}
	if info, err := os.Stat(filepath.Join(tempDir, "out")); err != nil || !info.IsDir() {
		t.Fatalf("expected output directory to be created: %v", err)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "napcon.toml")
	if err := os.WriteFile(configPath, []byte("[pipeline]\nchunk_sise = 10\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected unknown key to be rejected")
	}
}

func TestEnvLogLevelOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("NAPCON_LOG_LEVEL", " Warn ")
	t.Chdir(t.TempDir())

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("expected env log level, got %q", cfg.Logging.Level)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"negative chunk", func(c *config.Config) { c.Pipeline.ChunkSize = -1 }, "chunk_size"},
		{"huge chunk", func(c *config.Config) { c.Pipeline.ChunkSize = config.MaxChunkSize + 1 }, "chunk_size"},
		{"history path", func(c *config.Config) { c.History.Path = "" }, "history.path"},
		{"log level", func(c *config.Config) { c.Logging.Level = "verbose" }, "logging.level"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}

func TestValidateRunRequiresInputAndOutput(t *testing.T) {
	cfg := config.Default()
	if err := cfg.ValidateRun(); err == nil || !strings.Contains(err.Error(), "input") {
		t.Fatalf("expected input error, got %v", err)
	}
	cfg.Paths.InputDir = "/data/in"
	if err := cfg.ValidateRun(); err == nil || !strings.Contains(err.Error(), "output") {
		t.Fatalf("expected output error, got %v", err)
	}
	cfg.Paths.Output = "/data/master.csv"
	cfg.Paths.Missing = "/data/master.csv"
	if err := cfg.ValidateRun(); err == nil || !strings.Contains(err.Error(), "different files") {
		t.Fatalf("expected distinct path error, got %v", err)
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}
	t.Setenv("NAPCON_LOG_LEVEL", "")
	cfg, _, exists, err := config.Load(target)
	if err != nil {
		t.Fatalf("Load sample returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.Pipeline.ChunkSize != 5000 {
		t.Fatalf("unexpected sample chunk size: %d", cfg.Pipeline.ChunkSize)
	}
}
