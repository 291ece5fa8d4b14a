package consolidate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"napcon/internal/ledger"
	"napcon/internal/naming"
)

// EntryStatus classifies a CSV found in the input folder.
type EntryStatus string

const (
	EntryPending   EntryStatus = "pending"
	EntryProcessed EntryStatus = "processed"
	EntryInvalid   EntryStatus = "invalid"
	EntryOutput    EntryStatus = "output"
)

// Entry is one CSV in the input folder and what a run would do with it.
type Entry struct {
	naming.Source
	Path    string      `json:"path"`
	Size    int64       `json:"size"`
	Status  EntryStatus `json:"status"`
	Lenient bool        `json:"lenient,omitempty"`
	Detail  string      `json:"detail,omitempty"`
	err     error
}

// Inspect classifies every CSV in the input folder against the processed log
// without writing anything.
func Inspect(opts Options) ([]Entry, error) {
	opts = opts.withAbsolutePaths()
	log, err := ledger.LoadLog(opts.ProcessedLog)
	if err != nil {
		return nil, err
	}
	return discover(opts, log)
}

// discover lists *.csv files in lexical order and classifies them.
func discover(opts Options, log *ledger.Log) ([]Entry, error) {
	info, err := os.Stat(opts.InputDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInputDir, opts.InputDir)
	}

	dirEntries, err := os.ReadDir(opts.InputDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputDir, err)
	}
	sort.Slice(dirEntries, func(i, j int) bool { return dirEntries[i].Name() < dirEntries[j].Name() })

	outputs := map[string]struct{}{
		filepath.Clean(opts.Output):       {},
		filepath.Clean(opts.Missing):      {},
		filepath.Clean(opts.ProcessedLog): {},
	}

	var entries []Entry
	for _, de := range dirEntries {
		name := de.Name()
		if !naming.IsCandidate(name) {
			continue
		}
		path := filepath.Join(opts.InputDir, name)
		// Stat follows symlinks; dangling links and directories are skipped.
		fi, err := os.Stat(path)
		if err != nil || !fi.Mode().IsRegular() {
			continue
		}
		entry := Entry{Source: naming.Source{Name: name}, Path: path, Size: fi.Size()}

		if _, isOutput := outputs[filepath.Clean(path)]; isOutput {
			entry.Status = EntryOutput
			entry.Detail = "consolidator output"
			entries = append(entries, entry)
			continue
		}

		src, lenient, parseErr := parseName(name, opts.StrictNames)
		if parseErr == nil {
			entry.Source = src
			entry.Lenient = lenient
		}
		switch {
		case log.Contains(name):
			entry.Status = EntryProcessed
		case parseErr != nil:
			entry.Status = EntryInvalid
			entry.Detail = parseErr.Error()
			entry.err = parseErr
		default:
			entry.Status = EntryPending
			if lenient {
				entry.Detail = "does not follow " + naming.Convention + "; using positional tokens"
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// parseName applies the strict convention and, when strict is false, falls
// back to the positional rules. lenient reports whether the fallback was used.
func parseName(name string, strict bool) (naming.Source, bool, error) {
	src, err := naming.Parse(name)
	if err == nil {
		return src, false, nil
	}
	if strict {
		return naming.Source{}, false, err
	}
	src, lenientErr := naming.ParseLenient(name)
	if lenientErr != nil {
		return naming.Source{}, false, lenientErr
	}
	return src, true, nil
}

// invalidNames joins the parse errors of every invalid entry.
func invalidNames(entries []Entry) error {
	var errs []error
	for _, e := range entries {
		if e.Status == EntryInvalid {
			errs = append(errs, e.err)
		}
	}
	return errors.Join(errs...)
}
