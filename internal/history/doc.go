// Package history records consolidation runs in a SQLite database.
//
// Each run stores its counters, outcome and output paths, plus one row per
// source file it appended. The schema is embedded and versioned; a database
// created by a different schema version is rejected with ErrSchemaMismatch.
package history
