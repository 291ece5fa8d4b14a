// Package consolidate runs the incremental pipeline that folds per-campus
// StudentOutcomeLevel exports into the master table.
//
// A run holds an exclusive lock beside the master table, rolls back any append
// a previous run left unfinished, and then appends every export not yet named
// in the processed log. Each file is streamed in chunks through the
// transformer; its rows reach the master table and the missing-ID report
// before its name reaches the processed log. A failure mid-file truncates both
// outputs back to their sizes before the file started, so a rerun never
// duplicates rows.
//
// Inspect reports what a run would do without writing anything.
package consolidate
