package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeHistory(); err != nil {
		return err
	}
	c.normalizePipeline()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.InputDir, err = expandPath(strings.TrimSpace(c.Paths.InputDir)); err != nil {
		return fmt.Errorf("paths.input_dir: %w", err)
	}
	if c.Paths.Output, err = expandPath(strings.TrimSpace(c.Paths.Output)); err != nil {
		return fmt.Errorf("paths.output: %w", err)
	}
	if strings.TrimSpace(c.Paths.Missing) == "" {
		c.Paths.Missing = defaultMissingPath
	}
	if c.Paths.Missing, err = expandPath(strings.TrimSpace(c.Paths.Missing)); err != nil {
		return fmt.Errorf("paths.missing: %w", err)
	}
	if strings.TrimSpace(c.Paths.ProcessedLog) == "" {
		c.Paths.ProcessedLog = defaultProcessedLogPath
	}
	if c.Paths.ProcessedLog, err = expandPath(strings.TrimSpace(c.Paths.ProcessedLog)); err != nil {
		return fmt.Errorf("paths.processed_log: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeHistory() error {
	if strings.TrimSpace(c.History.Path) == "" {
		c.History.Path = defaultHistoryPath()
	}
	var err error
	if c.History.Path, err = expandPath(strings.TrimSpace(c.History.Path)); err != nil {
		return fmt.Errorf("history.path: %w", err)
	}
	return nil
}

func (c *Config) normalizePipeline() {
	if c.Pipeline.ChunkSize == 0 {
		c.Pipeline.ChunkSize = defaultChunkSize
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	if value, ok := os.LookupEnv("NAPCON_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = value
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
