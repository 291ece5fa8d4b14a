package consolidate

import "errors"

var (
	// ErrLocked is returned when another run holds the master table lock.
	ErrLocked = errors.New("another consolidation run is using this master file")
	// ErrInputDir is returned when the input folder is missing or not a directory.
	ErrInputDir = errors.New("input folder unavailable")
)
