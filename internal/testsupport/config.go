package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"napcon/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The input folder is created empty; outputs live under an out directory.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.InputDir = filepath.Join(base, "input")
	cfgVal.Paths.Output = filepath.Join(base, "out", "master.csv")
	cfgVal.Paths.Missing = filepath.Join(base, "out", "missing_ids.csv")
	cfgVal.Paths.ProcessedLog = filepath.Join(base, "out", "Append_log.csv")
	cfgVal.Paths.LogDir = ""
	cfgVal.History.Path = filepath.Join(base, "state", "history.db")
	cfgVal.Pipeline.AssumeYes = true

	if err := os.MkdirAll(cfgVal.Paths.InputDir, 0o755); err != nil {
		t.Fatalf("mkdir input dir: %v", err)
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithChunkSize overrides the pipeline chunk size.
func WithChunkSize(size int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Pipeline.ChunkSize = size
	}
}

// WithLenientNames disables strict filename validation.
func WithLenientNames() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Pipeline.StrictNames = false
	}
}

// WithoutHistory disables the run history database.
func WithoutHistory() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.History.Enabled = false
	}
}

// WithLogDir enables session log files under the temp root.
func WithLogDir() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.LogDir = filepath.Join(b.baseDir, "logs")
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.InputDir)
}
