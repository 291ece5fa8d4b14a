// Package ledger persists consolidation progress.
//
// The processed log lists every source file that has been fully appended to
// the master table, one name per line. The checkpoint is a TOML journal
// written beside the log while a file is being appended; it records the
// output sizes before the append so an interrupted run can be rolled back.
package ledger
