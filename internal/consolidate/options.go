package consolidate

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"napcon/internal/config"
	"napcon/internal/history"
)

// Options describes the folders and files a run touches.
type Options struct {
	InputDir     string
	Output       string
	Missing      string
	ProcessedLog string
	ChunkSize    int
	StrictNames  bool
	ForceRebuild bool
}

// OptionsFromConfig copies run settings from a loaded configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		InputDir:     cfg.Paths.InputDir,
		Output:       cfg.Paths.Output,
		Missing:      cfg.Paths.Missing,
		ProcessedLog: cfg.Paths.ProcessedLog,
		ChunkSize:    cfg.Pipeline.ChunkSize,
		StrictNames:  cfg.Pipeline.StrictNames,
	}
}

func (o Options) withAbsolutePaths() Options {
	for _, p := range []*string{&o.InputDir, &o.Output, &o.Missing, &o.ProcessedLog} {
		if *p == "" {
			continue
		}
		if abs, err := filepath.Abs(*p); err == nil {
			*p = abs
		}
	}
	if o.ChunkSize <= 0 {
		o.ChunkSize = config.Default().Pipeline.ChunkSize
	}
	return o
}

// Recorder persists finished runs.
type Recorder interface {
	RecordRun(ctx context.Context, run history.Run) error
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the base logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithClock replaces time.Now for Processed On stamps and run timestamps.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}

// WithRecorder stores every finished run, including failed ones.
func WithRecorder(rec Recorder) Option {
	return func(p *Pipeline) {
		p.recorder = rec
	}
}
