// Package logs reads the per-run session logs written under paths.log_dir.
//
// Latest picks the newest session log, Tail returns its last lines with the
// byte offset they end at, and Follow streams lines appended after an offset
// until the context ends.
package logs
