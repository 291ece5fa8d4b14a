package preflight

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"napcon/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RunAll executes the checks for the configured input and output paths.
// rebuild sizes the free space check for a --force_rebuild run.
func RunAll(ctx context.Context, cfg *config.Config, rebuild bool) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	results = append(results, CheckReadableDirectory("Input folder", cfg.Paths.InputDir))

	for _, dir := range outputDirs(cfg) {
		results = append(results, CheckDirectoryAccess("Output folder", dir))
	}

	if ctx.Err() != nil {
		return results
	}

	required, err := PendingBytes(cfg, rebuild)
	if err != nil {
		results = append(results, Result{Name: "Free space", Detail: fmt.Sprintf("size inputs: %v", err)})
		return results
	}
	results = append(results, CheckFreeSpace("Free space", filepath.Dir(cfg.Paths.Output), required))
	return results
}

// Err joins every failed result into one error, or returns nil.
func Err(results []Result) error {
	var errs []error
	for _, r := range results {
		if !r.Passed {
			errs = append(errs, fmt.Errorf("%s: %s", r.Name, r.Detail))
		}
	}
	return errors.Join(errs...)
}

// outputDirs returns the distinct parent folders of the run outputs.
func outputDirs(cfg *config.Config) []string {
	seen := make(map[string]struct{})
	var dirs []string
	for _, path := range []string{cfg.Paths.Output, cfg.Paths.Missing, cfg.Paths.ProcessedLog} {
		if path == "" {
			continue
		}
		dir := filepath.Dir(path)
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		dirs = append(dirs, dir)
	}
	return dirs
}
