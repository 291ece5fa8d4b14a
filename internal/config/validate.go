package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var validLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePipeline(); err != nil {
		return err
	}
	if err := c.validateHistory(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

// ValidateRun checks the settings a consolidation run needs on top of Validate.
// Input and output are optional in the file because they usually arrive as flags.
func (c *Config) ValidateRun() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Paths.InputDir) == "" {
		return errors.New("input folder is required (--input or paths.input_dir)")
	}
	if strings.TrimSpace(c.Paths.Output) == "" {
		return errors.New("output file is required (--output or paths.output)")
	}
	if err := ensureDistinct(map[string]string{
		"output":        c.Paths.Output,
		"missing":       c.Paths.Missing,
		"processed_log": c.Paths.ProcessedLog,
	}); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePipeline() error {
	if c.Pipeline.ChunkSize <= 0 {
		return errors.New("pipeline.chunk_size must be positive")
	}
	if c.Pipeline.ChunkSize > MaxChunkSize {
		return fmt.Errorf("pipeline.chunk_size must be <= %d", MaxChunkSize)
	}
	return nil
}

func (c *Config) validateHistory() error {
	if c.History.Enabled && strings.TrimSpace(c.History.Path) == "" {
		return errors.New("history.path must be set when history.enabled is true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	if _, ok := validLogLevels[c.Logging.Level]; !ok {
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	return nil
}

func ensureDistinct(paths map[string]string) error {
	seen := make(map[string]string, len(paths))
	for _, key := range []string{"output", "missing", "processed_log"} {
		value := filepath.Clean(paths[key])
		if other, ok := seen[value]; ok {
			return fmt.Errorf("%s and %s must point to different files (%s)", other, key, value)
		}
		seen[value] = key
	}
	return nil
}
